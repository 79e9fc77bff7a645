package junction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/sample"
)

// line returns n+1 points from (x0, y0) to (x1, y1).
func line(x0, y0, x1, y1 float64, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n+1)
	for i := range res {
		t := float64(i) / float64(n)
		res[i] = vec.Vec2{X: x0 + t*(x1-x0), Y: y0 + t*(y1-y0)}
	}
	return res
}

var mainRoad = sample.Path{ID: "main", Points: line(0, 0, 40, 0, 10)}

func TestDetectNoPartners(t *testing.T) {
	r := Detect(mainRoad, nil, DefaultProximity)
	assert.False(t, r.IsIntersection)
	assert.Equal(t, 0, r.Count)
	assert.Equal(t, Unknown, r.Type)
	assert.Empty(t, r.Partners)

	far := sample.Path{ID: "far", Points: line(0, 50, 40, 50, 10)}
	r = Detect(mainRoad, []sample.Path{far}, DefaultProximity)
	assert.False(t, r.IsIntersection)
	assert.Equal(t, Unknown, r.Type)
}

func TestDetectTShape(t *testing.T) {
	side := sample.Path{ID: "side", Points: line(44, -20, 44, 20, 10)}
	r := Detect(mainRoad, []sample.Path{side}, DefaultProximity)

	require.True(t, r.IsIntersection)
	assert.Equal(t, 1, r.Count)
	assert.Equal(t, []string{"side"}, r.Partners)
	assert.Equal(t, TShape, r.Type)
	assert.InDelta(t, 90, r.Angle, 1e-9)

	require.Len(t, r.Crossings, 1)
	c := r.Crossings[0]
	assert.Equal(t, 10, c.SubjectIndex)
	assert.Equal(t, 5, c.PartnerIndex)
	assert.InDelta(t, 4, c.Distance, 1e-12)
}

func TestDetectYShape(t *testing.T) {
	var pts []vec.Vec2
	for i := -5; i <= 5; i++ {
		s := 4 * float64(i)
		pts = append(pts, vec.Vec2{X: 44 + s*math.Sqrt2/2, Y: s * math.Sqrt2 / 2})
	}
	diagonal := sample.Path{ID: "diagonal", Points: pts}

	r := Detect(mainRoad, []sample.Path{diagonal}, DefaultProximity)
	assert.Equal(t, YShape, r.Type)
	assert.InDelta(t, 45, r.Angle, 1e-9)
}

func TestDetectFourWay(t *testing.T) {
	others := []sample.Path{
		{ID: "east", Points: line(44, -20, 44, 20, 10)},
		{ID: "middle", Points: line(20, -20, 20, 20, 10)},
		{ID: "far", Points: line(0, 80, 40, 80, 4)},
	}
	r := Detect(mainRoad, others, DefaultProximity)
	assert.Equal(t, FourWay, r.Type)
	assert.Equal(t, 2, r.Count)
	assert.Equal(t, []string{"east", "middle"}, r.Partners)
	assert.Zero(t, r.Angle)
	assert.InDelta(t, 0, r.Crossings[1].Distance, 1e-12)
}

func TestDetectSkips(t *testing.T) {
	others := []sample.Path{
		mainRoad,
		{ID: "empty"},
	}
	r := Detect(mainRoad, others, DefaultProximity)
	assert.False(t, r.IsIntersection)

	short := sample.Path{ID: "short", Points: []vec.Vec2{{X: 40, Y: 1}}}
	r = Detect(short, []sample.Path{mainRoad}, DefaultProximity)
	assert.Equal(t, Report{}, r)
}

func TestDetectWithoutPartnerTangent(t *testing.T) {
	post := sample.Path{ID: "post", Points: []vec.Vec2{{X: 41, Y: 1}}}
	r := Detect(mainRoad, []sample.Path{post}, DefaultProximity)
	assert.True(t, r.IsIntersection)
	assert.Equal(t, 1, r.Count)
	assert.Equal(t, Unknown, r.Type)
}

func TestDetectStrictProximity(t *testing.T) {
	side := sample.Path{ID: "side", Points: line(50, -20, 50, 20, 10)}
	r := Detect(mainRoad, []sample.Path{side}, 10)
	assert.False(t, r.IsIntersection, "distance equal to proximity is not a crossing")

	r = Detect(mainRoad, []sample.Path{side}, 10.001)
	assert.True(t, r.IsIntersection)
}

func TestTangent(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

	v, ok := Tangent(pts, 0)
	assert.True(t, ok)
	assert.Equal(t, vec.Vec2{X: 1, Y: 0}, v)

	v, ok = Tangent(pts, 1)
	assert.True(t, ok)
	assert.Equal(t, vec.Vec2{X: 1, Y: 1}, v)

	v, ok = Tangent(pts, 2)
	assert.True(t, ok)
	assert.Equal(t, vec.Vec2{X: 0, Y: 1}, v)

	_, ok = Tangent(pts[:1], 0)
	assert.False(t, ok)
	_, ok = Tangent([]vec.Vec2{{X: 1, Y: 1}, {X: 1, Y: 1}}, 1)
	assert.False(t, ok)
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, 0, Angle(vec.Vec2{X: 1}, vec.Vec2{X: 3}), 1e-9)
	assert.InDelta(t, 180, Angle(vec.Vec2{X: 1}, vec.Vec2{X: -1}), 1e-9)
	assert.InDelta(t, 60, Angle(vec.Vec2{X: 1}, vec.Vec2{X: 0.5, Y: math.Sqrt(3) / 2}), 1e-9)
	assert.True(t, math.IsNaN(Angle(vec.Vec2{}, vec.Vec2{X: 1})))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "t_shape", TShape.String())
	assert.Equal(t, "Type(9)", Type(9).String())
	b, err := FourWay.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "four_way", string(b))
	assert.Equal(t, 4, int(Roundabout))
}
