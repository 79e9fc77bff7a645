package exchange

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/sample"
)

const input = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "main",
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [10, 0], [20, 0]]},
     "properties": {}},
    {"type": "Feature", "id": 7,
     "geometry": {"type": "LineString", "coordinates": [[24, -10], [24, 10]]},
     "properties": {}},
    {"type": "Feature",
     "geometry": {"type": "MultiLineString", "coordinates": [[[0, 50], [5, 50]], [[0, 60], [5, 60]]]},
     "properties": {"id": "pair"}},
    {"type": "Feature",
     "geometry": {"type": "Point", "coordinates": [1, 1]},
     "properties": {"id": "lamp"}},
    {"type": "Feature",
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]},
     "properties": {}}
  ]
}`

func TestReadPaths(t *testing.T) {
	paths, err := ReadPaths(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, paths, 5)

	assert.Equal(t, "main", paths[0].ID)
	assert.Equal(t, []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}, paths[0].Points)
	assert.Equal(t, "7", paths[1].ID)
	assert.Equal(t, "pair#0", paths[2].ID)
	assert.Equal(t, "pair#1", paths[3].ID)
	assert.Equal(t, 60.0, paths[3].Points[0].Y)

	_, err = uuid.Parse(paths[4].ID)
	assert.NoError(t, err, "generated ID")
}

func TestReadPathsErrors(t *testing.T) {
	_, err := ReadPaths(strings.NewReader(`{"type": "FeatureCollection", "features": []}`))
	assert.ErrorIs(t, err, ErrNoPaths)

	_, err = ReadPaths(strings.NewReader(`{"type": `))
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	paths, err := ReadPaths(strings.NewReader(input))
	require.NoError(t, err)

	subject, others, err := Split(paths, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", subject.ID)
	assert.Len(t, others, 4)
	assert.Equal(t, "main", others[0].ID)
	assert.Equal(t, "pair#0", others[1].ID)

	subject, others, err = Split(paths, "")
	require.NoError(t, err)
	assert.Equal(t, "main", subject.ID)
	assert.Len(t, others, 4)

	_, _, err = Split(paths, "nowhere")
	assert.ErrorIs(t, err, ErrUnknownPath)
	_, _, err = Split(nil, "")
	assert.ErrorIs(t, err, ErrUnknownPath)
}

func TestFeatureCollection(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 6, Y: 8}}
	lane := marking.Build(pts, marking.DashedLine{Width: 0.2, Spacing: 1}, junction.Report{}, marking.Yellow)
	walk := marking.Build(pts, marking.Crosswalk{Width: 1, Spacing: 1, CrossingWidth: 6}, junction.Report{}, marking.White)

	fc := FeatureCollection(lane, walk)
	require.Len(t, fc.Features, 1+1+5)

	center := fc.Features[0]
	assert.Equal(t, "centerline", center.Properties["role"])
	assert.Equal(t, "#ffff00", center.Properties["color"])
	assert.Equal(t, true, center.Properties["dashed"])
	ls, ok := center.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.InDelta(t, sample.Length(pts), planar.Length(ls), 1e-12)
	assert.InDelta(t, 10, center.Properties["length"], 1e-12)

	stripe := fc.Features[2]
	assert.Equal(t, "crosswalk", stripe.Properties["kind"])
	assert.Equal(t, "bar", stripe.Properties["shape"])
	poly, ok := stripe.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 5)
	assert.Equal(t, poly[0][0], poly[0][4])
	assert.InDelta(t, 6, planar.Area(poly), 1e-9)

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	back, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, back.Features, len(fc.Features))
}
