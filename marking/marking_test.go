package marking

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/junction"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

var atJunction = junction.Report{IsIntersection: true, Count: 1, Partners: []string{"x"}, Type: junction.TShape}

func TestLayoutCrosswalk(t *testing.T) {
	points := []vec.Vec2{pt(0, 0), pt(7, 0.5), pt(20, 0)}
	spec := Crosswalk{Width: 0.5, Spacing: 0.5, CrossingWidth: DefaultCrossingWidth}

	res := Layout(points, spec, junction.Report{})
	require.Len(t, res, 20)
	for i, p := range res {
		assert.InDelta(t, float64(i), p.Center.X, 1e-12)
		assert.Equal(t, 0.0, p.Center.Y)
		assert.GreaterOrEqual(t, p.Center.X, 0.0)
		assert.LessOrEqual(t, p.Center.X, 20.0)
		assert.InDelta(t, math.Pi/2, p.Orientation, 1e-12)
		assert.Equal(t, 20.0, p.Length)
		assert.Equal(t, 0.5, p.Width)
		assert.Equal(t, Bar, p.Shape)
	}
}

func TestLayoutCrosswalkEdgeCases(t *testing.T) {
	short := []vec.Vec2{pt(0, 0), pt(0.3, 0)}
	res := Layout(short, Crosswalk{Width: 0.5, Spacing: 0.5, CrossingWidth: 4}, junction.Report{})
	assert.Len(t, res, 1, "at least one stripe")

	loop := []vec.Vec2{pt(0, 0), pt(5, 5), pt(0, 0)}
	assert.Empty(t, Layout(loop, Crosswalk{Width: 0.5, Spacing: 0.5}, junction.Report{}))

	line := []vec.Vec2{pt(0, 0), pt(5, 0)}
	assert.Empty(t, Layout(line, Crosswalk{}, junction.Report{}))
}

func TestLayoutCrosswalkTinyStripes(t *testing.T) {
	line := []vec.Vec2{pt(0, 0), pt(20, 0)}
	for _, width := range []float64{1e-13, 1e-7, 1e-300} {
		res := Layout(line, Crosswalk{Width: width, CrossingWidth: 20}, junction.Report{})
		require.Len(t, res, maxStripes)
		assert.Equal(t, pt(0, 0), res[0].Center)
		assert.LessOrEqual(t, res[len(res)-1].Center.X, 20.0)
	}

	// just below the limit, every stripe fits
	long := []vec.Vec2{pt(0, 0), pt(0.5*(maxStripes-1), 0)}
	res := Layout(long, Crosswalk{Width: 0.25, Spacing: 0.25, CrossingWidth: 20}, junction.Report{})
	assert.Len(t, res, maxStripes-1)
}

func TestLayoutGuide(t *testing.T) {
	points := []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10), pt(10, 10)}
	spec := GuideLine{Width: 0.15, ArrowLength: DefaultArrowLength}

	res := Layout(points, spec, atJunction)
	require.Len(t, res, 1)
	arrow := res[0]
	assert.Equal(t, pt(10, 10), arrow.Center)
	assert.Equal(t, Arrow, arrow.Shape)
	assert.InDelta(t, math.Pi/2, arrow.Orientation, 1e-12)
	assert.InDelta(t, 0.3, arrow.Width, 1e-12)
	assert.Equal(t, 5.0, arrow.Length)

	outline := arrow.Outline()
	require.Len(t, outline, 3)
	assert.InDelta(t, 10, outline[1].X, 1e-9)
	assert.InDelta(t, 15, outline[1].Y, 1e-9)

	m := Build(points, spec, atJunction, Yellow)
	assert.Equal(t, KindGuide, m.Kind)
	assert.False(t, m.Dashed)
	assert.Nil(t, m.Path)
	assert.Equal(t, Yellow, m.Color)

	m = Build(points, spec, junction.Report{}, White)
	assert.True(t, m.Dashed)
	assert.InDelta(t, 0.3, m.Spacing, 1e-12)
	assert.Equal(t, points, m.Path)
	require.Len(t, m.Placements, 1)
	assert.Equal(t, Bar, m.Placements[0].Shape)
}

func TestLayoutLine(t *testing.T) {
	points := []vec.Vec2{pt(0, 0), pt(3, 4), pt(6, 0)}

	res := Layout(points, SolidLine{Width: 0.15}, atJunction)
	require.Len(t, res, 1)
	p := res[0]
	assert.InDelta(t, 10, p.Length, 1e-12)
	assert.InDelta(t, 3, p.Center.X, 1e-12)
	assert.InDelta(t, 4, p.Center.Y, 1e-12)
	assert.Equal(t, 0.0, p.Orientation)
	assert.Equal(t, 0.15, p.Width)

	closed := []vec.Vec2{pt(0, 0), pt(0, 0), pt(0, 2), pt(0, 0)}
	res = Layout(closed, DashedLine{Width: 0.1, Spacing: 1}, junction.Report{})
	require.Len(t, res, 1)
	assert.InDelta(t, math.Pi/2, res[0].Orientation, 1e-12)

	m := Build(points, DashedLine{Width: 0.1, Spacing: 1}, junction.Report{}, White)
	assert.True(t, m.Dashed)
	assert.Equal(t, 1.0, m.Spacing)
	assert.Equal(t, KindDashed, m.Kind)
}

func TestLayoutInsufficient(t *testing.T) {
	specs := []Spec{
		SolidLine{Width: 1},
		DashedLine{Width: 1, Spacing: 1},
		Crosswalk{Width: 1, Spacing: 1, CrossingWidth: 5},
		GuideLine{Width: 1, ArrowLength: 5},
	}
	for _, spec := range specs {
		for _, pts := range [][]vec.Vec2{nil, {pt(1, 1)}} {
			assert.Empty(t, Layout(pts, spec, atJunction), "%T", spec)
			m := Build(pts, spec, atJunction, White)
			assert.True(t, m.IsEmpty())
			assert.Nil(t, m.Path)
		}
	}
	assert.Empty(t, Layout([]vec.Vec2{pt(0, 0), pt(0, 0)}, SolidLine{Width: 1}, junction.Report{}))
	assert.Equal(t, Marking{}, Build([]vec.Vec2{pt(0, 0), pt(1, 0)}, nil, atJunction, White))
}

func TestLayoutIdempotent(t *testing.T) {
	points := []vec.Vec2{pt(0, 0), pt(4, 1), pt(9, 3), pt(15, 3.5)}
	specs := []Spec{
		NewSpec(KindSolid, 0.15, 0.3),
		NewSpec(KindDashed, 0.15, 0.3),
		NewSpec(KindCrosswalk, 0.15, 0.3),
		NewSpec(KindGuide, 0.15, 0.3),
	}
	for _, spec := range specs {
		a := Build(points, spec, atJunction, White)
		b := Build(points, spec, atJunction, White)
		if d := cmp.Diff(a, b); d != "" {
			t.Errorf("%T: results differ (-a +b):\n%s", spec, d)
		}
	}
}

func TestPlacementOutline(t *testing.T) {
	p := Placement{Center: pt(5, 5), Orientation: math.Pi / 2, Length: 4, Width: 2, Shape: Bar}
	got := p.Outline()
	want := []vec.Vec2{pt(6, 3), pt(6, 7), pt(4, 7), pt(4, 3)}
	require.Len(t, got, 4)
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-12)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-12)
	}

	d := p.Direction()
	assert.InDelta(t, 0, d.X, 1e-12)
	assert.InDelta(t, 1, d.Y, 1e-12)
}

func TestMarkingBounds(t *testing.T) {
	m := Build([]vec.Vec2{pt(0, 0), pt(10, 0)}, SolidLine{Width: 2}, junction.Report{}, White)
	b := m.Bounds()
	assert.InDelta(t, -1, b.LLx, 1e-12)
	assert.InDelta(t, -1, b.LLy, 1e-12)
	assert.InDelta(t, 11, b.URx, 1e-12)
	assert.InDelta(t, 1, b.URy, 1e-12)

	assert.Equal(t, Marking{}.Bounds(), Marking{}.Bounds())
	assert.Zero(t, Marking{}.Bounds().URx)
}

func TestKindText(t *testing.T) {
	var cfg struct {
		Kind Kind `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"crosswalk"}`), &cfg))
	assert.Equal(t, KindCrosswalk, cfg.Kind)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"crosswalk"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"zebra"}`), &cfg))
	_, err = Kind(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestNewSpec(t *testing.T) {
	assert.Equal(t, SolidLine{Width: 1}, NewSpec(KindSolid, 1, 2))
	assert.Equal(t, DashedLine{Width: 1, Spacing: 2}, NewSpec(KindDashed, 1, 2))
	assert.Equal(t, Crosswalk{Width: 1, Spacing: 2, CrossingWidth: 20}, NewSpec(KindCrosswalk, 1, 2))
	assert.Equal(t, GuideLine{Width: 1, ArrowLength: 5}, NewSpec(KindGuide, 1, 2))
	assert.Equal(t, SolidLine{Width: 1}, NewSpec(Kind(42), 1, 2))
}

func TestColor(t *testing.T) {
	assert.Equal(t, uint8(255), White.RGBA().R)
	assert.Equal(t, uint8(0), Yellow.RGBA().B)
	assert.InDelta(t, 1, White.Gray(), 1e-12)
	assert.InDelta(t, 0.886, Yellow.Gray(), 1e-12)
}
