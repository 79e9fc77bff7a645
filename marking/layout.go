// seehuhn.de/go/roadmark - road marking geometry from traced centerlines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package marking

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/sample"
)

// Layout computes the placements for a marking along points.
// Fewer than two points give no placements.
func Layout(points []vec.Vec2, spec Spec, r junction.Report) []Placement {
	if len(points) < 2 {
		return nil
	}

	switch s := spec.(type) {
	case SolidLine:
		return layoutLine(points, s.Width)
	case DashedLine:
		return layoutLine(points, s.Width)
	case Crosswalk:
		return layoutCrosswalk(points, s)
	case GuideLine:
		if r.IsIntersection {
			return layoutArrow(points, s)
		}
		return layoutLine(points, s.Width)
	default:
		return nil
	}
}

// layoutLine places one bar covering the whole path.  The bar is centred
// at half the arc length and follows the chord from the first to the last
// point.
func layoutLine(points []vec.Vec2, width float64) []Placement {
	length := sample.Length(points)
	if length == 0 {
		return nil
	}

	dir := points[len(points)-1].Sub(points[0])
	if dir.Length() == 0 {
		dir = firstSegment(points)
	}

	return []Placement{{
		Center:      sample.PointAt(points, length/2),
		Orientation: math.Atan2(dir.Y, dir.X),
		Length:      length,
		Width:       width,
		Shape:       Bar,
	}}
}

// maxStripes limits the number of crosswalk stripes.  Paths which would
// need more stripes only get the first maxStripes of them.
const maxStripes = 10000

// layoutCrosswalk places stripes at regular intervals along the chord from
// the first to the last point.  Each stripe spans the road perpendicular to
// the chord.
func layoutCrosswalk(points []vec.Vec2, s Crosswalk) []Placement {
	start := points[0]
	d := points[len(points)-1].Sub(start)
	l := d.Length()
	step := s.Width + s.Spacing
	if l == 0 || !(step > 0) {
		return nil
	}

	perp := vec.Vec2{X: -d.Y, Y: d.X}.Mul(1 / l)
	orientation := math.Atan2(perp.Y, perp.X)

	n := maxStripes
	if count := l / step; count < maxStripes {
		n = max(1, int(math.Floor(count)))
	}
	res := make([]Placement, 0, n)
	for i := range n {
		pos := float64(i) * step
		if pos > l {
			break
		}
		res = append(res, Placement{
			Center:      start.Add(d.Mul(pos / l)),
			Orientation: orientation,
			Length:      s.CrossingWidth,
			Width:       s.Width,
			Shape:       Bar,
		})
	}
	return res
}

// layoutArrow places an arrow at the last point, pointing along the final
// direction of travel.
func layoutArrow(points []vec.Vec2, s GuideLine) []Placement {
	orientation := 0.0
	if dir := lastSegment(points); dir.Length() > 0 {
		orientation = math.Atan2(dir.Y, dir.X)
	}
	return []Placement{{
		Center:      points[len(points)-1],
		Orientation: orientation,
		Length:      s.ArrowLength,
		Width:       2 * s.Width,
		Shape:       Arrow,
	}}
}

func firstSegment(points []vec.Vec2) vec.Vec2 {
	for i := 1; i < len(points); i++ {
		if d := points[i].Sub(points[i-1]); d.Length() > 0 {
			return d
		}
	}
	return vec.Vec2{}
}

func lastSegment(points []vec.Vec2) vec.Vec2 {
	for i := len(points) - 1; i > 0; i-- {
		if d := points[i].Sub(points[i-1]); d.Length() > 0 {
			return d
		}
	}
	return vec.Vec2{}
}
