// Package exchange converts between GeoJSON and the road marking types.
//
// Coordinates are used as they are; the caller is responsible for using a
// projected coordinate system in metres.
package exchange

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/sample"
)

var (
	// ErrNoPaths is returned when the input contains no line geometry.
	ErrNoPaths = errors.New("no paths in input")

	// ErrUnknownPath is returned when a requested path ID is not present.
	ErrUnknownPath = errors.New("unknown path")
)

// ReadPaths reads a GeoJSON FeatureCollection.  Every LineString gives one
// path and every MultiLineString gives one path per line.  Features of
// other geometry types are ignored.
//
// The path ID is taken from the feature ID or from the "id" property.
// Features without an ID get a random UUID.  Lines of a MultiLineString
// get the suffixes "#0", "#1", ...
func ReadPaths(r io.Reader) ([]sample.Path, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading GeoJSON: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decoding GeoJSON: %w", err)
	}

	var res []sample.Path
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			res = append(res, sample.Path{ID: featureID(f), Points: toVec(g)})
		case orb.MultiLineString:
			id := featureID(f)
			for k, ls := range g {
				res = append(res, sample.Path{ID: id + "#" + strconv.Itoa(k), Points: toVec(ls)})
			}
		}
	}
	if len(res) == 0 {
		return nil, ErrNoPaths
	}
	return res, nil
}

func featureID(f *geojson.Feature) string {
	switch id := f.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	switch id := f.Properties["id"].(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return uuid.NewString()
}

func toVec(ls orb.LineString) []vec.Vec2 {
	res := make([]vec.Vec2, len(ls))
	for i, p := range ls {
		res[i] = vec.Vec2{X: p.X(), Y: p.Y()}
	}
	return res
}

func toLineString(pts []vec.Vec2) orb.LineString {
	res := make(orb.LineString, len(pts))
	for i, p := range pts {
		res[i] = orb.Point{p.X, p.Y}
	}
	return res
}

// Split separates the path with the given ID from the others.
// If id is empty, the first path is the subject.
func Split(paths []sample.Path, id string) (sample.Path, []sample.Path, error) {
	idx := -1
	if id == "" && len(paths) > 0 {
		idx = 0
	}
	for i, p := range paths {
		if idx < 0 && p.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return sample.Path{}, nil, fmt.Errorf("%w: %q", ErrUnknownPath, id)
	}

	others := make([]sample.Path, 0, len(paths)-1)
	others = append(others, paths[:idx]...)
	others = append(others, paths[idx+1:]...)
	return paths[idx], others, nil
}

// FeatureCollection converts markings to GeoJSON.  The centerline of a
// line marking becomes a LineString feature, and every placement becomes
// a Polygon feature.  Centerline features carry their length.
func FeatureCollection(markings ...marking.Marking) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, mk := range markings {
		if len(mk.Path) >= 2 {
			ls := toLineString(mk.Path)
			f := geojson.NewFeature(ls)
			setStyle(f.Properties, mk)
			f.Properties["role"] = "centerline"
			f.Properties["length"] = planar.Length(ls)
			fc.Append(f)
		}
		for i, p := range mk.Placements {
			outline := p.Outline()
			ring := make(orb.Ring, 0, len(outline)+1)
			for _, q := range outline {
				ring = append(ring, orb.Point{q.X, q.Y})
			}
			ring = append(ring, ring[0])

			f := geojson.NewFeature(orb.Polygon{ring})
			setStyle(f.Properties, mk)
			f.Properties["role"] = "placement"
			f.Properties["index"] = i
			f.Properties["shape"] = p.Shape.String()
			f.Properties["orientation"] = p.Orientation
			f.Properties["length"] = p.Length
			f.Properties["width"] = p.Width
			f.Properties["center"] = []float64{p.Center.X, p.Center.Y}
			fc.Append(f)
		}
	}
	return fc
}

func setStyle(props geojson.Properties, mk marking.Marking) {
	props["kind"] = mk.Kind.String()
	props["dashed"] = mk.Dashed
	props["width"] = mk.Width
	props["spacing"] = mk.Spacing
	c := mk.Color.RGBA()
	props["color"] = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
