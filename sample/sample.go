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

// Package sample holds the point sequences traced along road centerlines
// and the arc-length helpers used by the fitting and layout stages.
//
// All functions return fresh slices and leave their arguments untouched.
package sample

import (
	"math"
	"slices"
	"sort"

	"github.com/samber/lo"
	"seehuhn.de/go/geom/vec"
)

// Path is a centerline as supplied by the host.
// The ID is used to report crossing partners.
type Path struct {
	ID     string
	Points []vec.Vec2
}

// Len returns the number of points in the path.
func (p Path) Len() int {
	return len(p.Points)
}

// Normalize removes non-finite points and collapses consecutive points
// which are closer than tol.  With tol <= 0 only exact repetitions are
// collapsed.
func Normalize(pts []vec.Vec2, tol float64) []vec.Vec2 {
	finite := lo.Filter(pts, func(p vec.Vec2, _ int) bool {
		return isFinite(p.X) && isFinite(p.Y)
	})

	res := make([]vec.Vec2, 0, len(finite))
	for _, p := range finite {
		if n := len(res); n > 0 {
			d := p.Sub(res[n-1]).Length()
			if d == 0 || d < tol {
				continue
			}
		}
		res = append(res, p)
	}
	return res
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Length returns the length of the polyline through pts.
func Length(pts []vec.Vec2) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Length()
	}
	return total
}

// Cumulative returns the arc length from pts[0] to each point.
func Cumulative(pts []vec.Vec2) []float64 {
	if len(pts) == 0 {
		return nil
	}
	res := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		res[i] = res[i-1] + pts[i].Sub(pts[i-1]).Length()
	}
	return res
}

// PointAt returns the point at arc length s along the polyline.
// s is clamped to the length of the polyline.
func PointAt(pts []vec.Vec2, s float64) vec.Vec2 {
	if len(pts) == 0 {
		return vec.Vec2{}
	}
	return pointAt(pts, Cumulative(pts), s)
}

func pointAt(pts []vec.Vec2, cum []float64, s float64) vec.Vec2 {
	s = lo.Clamp(s, 0, cum[len(cum)-1])
	i := sort.SearchFloat64s(cum, s)
	if i == 0 {
		return pts[0]
	}
	if i >= len(pts) {
		return pts[len(pts)-1]
	}

	// cum[i-1] < s <= cum[i]
	sLow, sHigh := cum[i-1], cum[i]
	t := (s - sLow) / (sHigh - sLow)
	return pts[i-1].Add(pts[i].Sub(pts[i-1]).Mul(t))
}

// maxResampleSegments bounds the output size of Resample.
const maxResampleSegments = 1 << 16

// Resample returns points spaced evenly by arc length, at most step apart.
// The first and last points of pts are kept exactly.  If step is not
// positive or the polyline has zero length, a copy of pts is returned.
// Very small steps are increased so that at most maxResampleSegments
// segments are formed.
func Resample(pts []vec.Vec2, step float64) []vec.Vec2 {
	if len(pts) < 2 || !(step > 0) {
		return slices.Clone(pts)
	}
	cum := Cumulative(pts)
	total := cum[len(cum)-1]
	if total == 0 {
		return slices.Clone(pts)
	}

	n := maxResampleSegments
	if count := total / step; count < maxResampleSegments {
		n = int(math.Ceil(count))
	}
	res := make([]vec.Vec2, 0, n+1)
	res = append(res, pts[0])
	for i := 1; i < n; i++ {
		res = append(res, pointAt(pts, cum, total*float64(i)/float64(n)))
	}
	res = append(res, pts[len(pts)-1])
	return res
}
