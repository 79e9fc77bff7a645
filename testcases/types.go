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

package testcases

import (
	"math"
	"math/rand/v2"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/sample"
)

// TestCase defines a single road marking scenario.
type TestCase struct {
	Name    string          // lowercase a-z and _ only
	Subject sample.Path     // the road to mark
	Others  []sample.Path   // neighbouring roads
	Config  roadmark.Config // generator settings

	Junction   junction.Type // expected junction classification
	Placements int           // expected number of placements
}

// config returns the default configuration with the given kind, after
// applying the optional modifications.
func config(kind marking.Kind, mods ...func(*roadmark.Config)) roadmark.Config {
	cfg := roadmark.DefaultConfig()
	cfg.Kind = kind
	for _, mod := range mods {
		mod(&cfg)
	}
	return cfg
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// road builds a path with n+1 evenly spaced points from (x0, y0) to
// (x1, y1).
func road(id string, x0, y0, x1, y1 float64, n int) sample.Path {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		pts[i] = pt(x0+t*(x1-x0), y0+t*(y1-y0))
	}
	return sample.Path{ID: id, Points: pts}
}

// bend builds a circular arc with n+1 points around (cx, cy), from angle
// a0 to a1 (in degrees).
func bend(id string, cx, cy, r, a0, a1 float64, n int) sample.Path {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		a := (a0 + (a1-a0)*float64(i)/float64(n)) * math.Pi / 180
		pts[i] = pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return sample.Path{ID: id, Points: pts}
}

// scatter builds a path with n points spread randomly over a square of
// the given size.  The points are the same on every call.
func scatter(id string, size float64, n int, seed uint64) sample.Path {
	rng := rand.New(rand.NewPCG(seed, seed))
	pts := make([]vec.Vec2, n)
	for i := range pts {
		pts[i] = pt(rng.Float64()*size, rng.Float64()*size)
	}
	return sample.Path{ID: id, Points: pts}
}

// curve builds a path along a quadratic Bezier curve from p0 to p1 with
// control point c, flattened with the default tolerance.
func curve(id string, p0, c, p1 vec.Vec2) sample.Path {
	d := (&path.Data{}).MoveTo(p0).QuadTo(c, p1)
	return sample.Path{ID: id, Points: sample.FromPath(d.Iter(), 0)[0]}
}
