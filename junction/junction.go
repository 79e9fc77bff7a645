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

// Package junction decides whether a centerline meets other centerlines,
// and classifies the junction by the number of partners and the angle
// between the roads.
package junction

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/sample"
)

// DefaultProximity is the distance, in metres, below which two
// centerlines are considered to meet.  It is the nominal width of a road.
const DefaultProximity = 10.0

// Angles strictly between these bounds, in degrees, make a T junction.
const (
	tMinAngle = 80.0
	tMaxAngle = 100.0
)

// Type classifies a junction.
// The numeric values are stable and may be stored by hosts.
type Type int

const (
	Unknown Type = iota
	FourWay
	TShape
	YShape
	Roundabout // never produced by Detect
)

var typeNames = []string{"unknown", "four_way", "t_shape", "y_shape", "roundabout"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// MarshalText implements [encoding.TextMarshaler].
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Crossing records where the subject comes closest to one partner.
type Crossing struct {
	Partner      string
	SubjectIndex int
	PartnerIndex int
	SubjectPoint vec.Vec2
	PartnerPoint vec.Vec2
	Distance     float64
}

// Report is the result of Detect.
type Report struct {
	IsIntersection bool
	Count          int
	Partners       []string
	Type           Type

	// Angle is the angle between the subject and its partner, in degrees.
	// It is only set when there is exactly one partner.
	Angle float64

	Crossings []Crossing
}

// Detect checks the subject against every other path.  A path counts as a
// crossing partner if some pair of points is closer than proximity.
// Paths with the subject's ID, and paths without points, are ignored.
func Detect(subject sample.Path, others []sample.Path, proximity float64) Report {
	if len(subject.Points) < 2 {
		return Report{}
	}

	var r Report
	var partnerPoints [][]vec.Vec2
	for _, other := range others {
		if len(other.Points) == 0 || (other.ID != "" && other.ID == subject.ID) {
			continue
		}
		c := nearest(subject.Points, other.Points)
		if !(c.Distance < proximity) {
			continue
		}
		c.Partner = other.ID
		r.Crossings = append(r.Crossings, c)
		partnerPoints = append(partnerPoints, other.Points)
	}

	r.Count = len(r.Crossings)
	if r.Count == 0 {
		return r
	}
	r.IsIntersection = true
	r.Partners = lo.Map(r.Crossings, func(c Crossing, _ int) string { return c.Partner })

	if r.Count >= 2 {
		r.Type = FourWay
		return r
	}

	c := r.Crossings[0]
	t1, ok1 := Tangent(subject.Points, c.SubjectIndex)
	t2, ok2 := Tangent(partnerPoints[0], c.PartnerIndex)
	if !ok1 || !ok2 {
		r.Type = Unknown
		return r
	}
	r.Angle = Angle(t1, t2)
	if r.Angle > tMinAngle && r.Angle < tMaxAngle {
		r.Type = TShape
	} else {
		r.Type = YShape
	}
	return r
}

// nearest finds the closest pair of points.  Ties go to the first pair in
// subject-major order.
func nearest(subject, other []vec.Vec2) Crossing {
	best := Crossing{Distance: math.Inf(1)}
	for i, p := range subject {
		for j, q := range other {
			if d := p.Sub(q).Length(); d < best.Distance {
				best = Crossing{
					SubjectIndex: i,
					PartnerIndex: j,
					SubjectPoint: p,
					PartnerPoint: q,
					Distance:     d,
				}
			}
		}
	}
	return best
}

// Tangent estimates the direction of the polyline at pts[i].  The end
// points use their only neighbour, interior points the difference of both
// neighbours.  The second result is false if no direction can be formed.
func Tangent(pts []vec.Vec2, i int) (vec.Vec2, bool) {
	n := len(pts)
	if n < 2 || i < 0 || i >= n {
		return vec.Vec2{}, false
	}

	var t vec.Vec2
	switch i {
	case 0:
		t = pts[1].Sub(pts[0])
	case n - 1:
		t = pts[n-1].Sub(pts[n-2])
	default:
		t = pts[i+1].Sub(pts[i-1])
	}
	return t, t.Length() > 0
}

// Angle returns the angle between u and v in degrees, in the range
// [0, 180].  The result is NaN if one of the vectors is zero.
func Angle(u, v vec.Vec2) float64 {
	cos := u.Dot(v) / (u.Length() * v.Length())
	return math.Acos(lo.Clamp(cos, -1, 1)) * 180 / math.Pi
}
