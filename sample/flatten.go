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

package sample

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// DefaultFlatness is the maximal distance, in metres, between a curve and
// the polyline which replaces it.
const DefaultFlatness = 0.05

// FromPath converts a host path into point sequences, one per subpath.
// Curves are replaced by line segments which deviate from the curve by at
// most flatness; flatness <= 0 selects DefaultFlatness.  Closed subpaths
// end with a repetition of their start point.  A MoveTo which is not
// followed by a drawing command does not produce a sequence.
func FromPath(p path.Path, flatness float64) [][]vec.Vec2 {
	if !(flatness > 0) {
		flatness = DefaultFlatness
	}

	var res [][]vec.Vec2
	var cur []vec.Vec2
	var currentPt, subpathStartPt vec.Vec2
	inSubpath := false
	sawDrawingCmd := false

	emit := func(_, to vec.Vec2) {
		cur = append(cur, to)
	}
	finish := func() {
		if inSubpath && sawDrawingCmd {
			res = append(res, cur)
		}
		cur = nil
		inSubpath = false
		sawDrawingCmd = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish()
			currentPt = pts[0]
			subpathStartPt = currentPt
			cur = []vec.Vec2{currentPt}
			inSubpath = true

		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			emit(currentPt, pts[0])
			currentPt = pts[0]

		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			flattenQuadratic(currentPt, pts[0], pts[1], flatness, emit)
			currentPt = pts[1]

		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			flattenCubic(currentPt, pts[0], pts[1], pts[2], flatness, emit)
			currentPt = pts[2]

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if currentPt != subpathStartPt {
				emit(currentPt, subpathStartPt)
				sawDrawingCmd = true
			}
			finish()
			currentPt = subpathStartPt
		}
	}
	finish()

	return res
}

// flattenQuadratic replaces a quadratic Bézier curve by line segments.
// p0 is the current point, p1 the control point and p2 the end point.
func flattenQuadratic(p0, p1, p2 vec.Vec2, flatness float64, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if err := e.Length(); err > flatness {
		n = int(math.Ceil(math.Sqrt(err / flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		if i == n {
			emit(prev, p2)
			break
		}
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic replaces a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func flattenCubic(p0, p1, p2, p3 vec.Vec2, flatness float64, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2) // P0 - 2*P1 + P2
	d2 := p1.Sub(p2.Mul(2)).Add(p3) // P1 - 2*P2 + P3

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		// n = ceil(sqrt(3m / (4ε)))
		nFloat := math.Sqrt(3 * m / (4 * flatness))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		if i == n {
			emit(prev, p3)
			break
		}
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}
