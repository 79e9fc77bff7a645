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

package preview

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

const zeroLengthThreshold = 1e-10

// segment is a line segment of a polyline.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

func newSegment(a, b vec.Vec2) (segment, bool) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return segment{}, false
	}
	t := d.Mul(1 / length)
	return segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}}, true
}

// segments splits a polyline into segments, skipping zero-length ones.
func segments(pts []vec.Vec2) []segment {
	var res []segment
	for i := 1; i < len(pts); i++ {
		if seg, ok := newSegment(pts[i-1], pts[i]); ok {
			res = append(res, seg)
		}
	}
	return res
}

// dashes applies a dash pattern to a polyline.  Elements of the pattern
// alternate between "on" and "off" lengths, starting with "on"; an odd
// pattern is repeated twice.  The result contains one list of segments for
// every visible dash.  An empty or zero-length pattern gives a single dash
// covering the whole line.
func dashes(segs []segment, dash []float64, phase float64) [][]segment {
	if len(segs) == 0 {
		return nil
	}

	dashLen := len(dash)
	patternLen := 0.0
	for _, d := range dash {
		patternLen += d
	}
	if dashLen%2 == 1 {
		patternLen *= 2
	}
	if !(patternLen > 0) {
		return [][]segment{segs}
	}

	phase = math.Mod(phase, patternLen)
	if phase < 0 {
		phase += patternLen
	}

	// find the dash element containing the phase
	dashIdx := 0
	dist := phase
	for dist >= dash[dashIdx%dashLen] && dash[dashIdx%dashLen] > 0 {
		dist -= dash[dashIdx%dashLen]
		dashIdx++
	}
	remaining := dash[dashIdx%dashLen] - dist
	isOn := dashIdx%2 == 0

	var res [][]segment
	var cur []segment
	segIdx := 0
	segDist := 0.0
	for segIdx < len(segs) {
		seg := segs[segIdx]
		segLen := seg.B.Sub(seg.A).Length()
		segRemaining := segLen - segDist

		if remaining >= segRemaining {
			// dash continues past this segment
			if isOn {
				if segDist > 0 {
					startPt := seg.A.Add(seg.B.Sub(seg.A).Mul(segDist / segLen))
					cur = append(cur, segment{A: startPt, B: seg.B, T: seg.T, N: seg.N})
				} else {
					cur = append(cur, seg)
				}
			}
			remaining -= segRemaining
			segIdx++
			segDist = 0
			continue
		}

		// dash ends within this segment
		endDist := segDist + remaining
		if isOn {
			startPt := seg.A.Add(seg.B.Sub(seg.A).Mul(segDist / segLen))
			splitPt := seg.A.Add(seg.B.Sub(seg.A).Mul(endDist / segLen))
			if part, ok := newSegment(startPt, splitPt); ok {
				cur = append(cur, part)
			}
			if len(cur) > 0 {
				res = append(res, cur)
				cur = nil
			}
		}

		segDist = endDist
		dashIdx++
		remaining = dash[dashIdx%dashLen]
		isOn = dashIdx%2 == 0
	}
	if len(cur) > 0 {
		res = append(res, cur)
	}
	return res
}
