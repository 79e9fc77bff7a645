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

// Package marking lays out road markings along a centerline.
//
// Layout turns a point sequence, a marking Spec and the junction report
// for the road into placements: positioned bars and arrows which the host
// renders.  Build wraps the placements with the style information needed
// for drawing.
package marking

import (
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/junction"
)

// Color is an RGB colour with components in [0, 1].
type Color struct {
	R float64 `json:"r" validate:"gte=0,lte=1"`
	G float64 `json:"g" validate:"gte=0,lte=1"`
	B float64 `json:"b" validate:"gte=0,lte=1"`
}

// Standard marking colours.
var (
	White  = Color{R: 1, G: 1, B: 1}
	Yellow = Color{R: 1, G: 1, B: 0}
)

// RGBA converts c to an 8-bit colour.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xFF}
}

// Gray returns the luminance of c.
func (c Color) Gray() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func to8(x float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(x, 0), 1) * 255))
}

// Marking is the complete description of one road marking.
type Marking struct {
	Kind    Kind
	Width   float64
	Spacing float64 // dash gap, or stripe gap for crosswalks
	Dashed  bool
	Color   Color

	// Path is the centerline to stroke for line markings.  It is nil for
	// markings which consist of placements only.
	Path []vec.Vec2

	Placements []Placement
}

// IsEmpty reports whether there is nothing to draw.
func (m Marking) IsEmpty() bool {
	return len(m.Placements) == 0
}

// Build lays out a marking and attaches the style information.
func Build(points []vec.Vec2, spec Spec, r junction.Report, c Color) Marking {
	if spec == nil {
		return Marking{}
	}

	m := Marking{
		Kind:       spec.Kind(),
		Color:      c,
		Placements: Layout(points, spec, r),
	}

	var linePath bool
	switch s := spec.(type) {
	case SolidLine:
		m.Width = s.Width
		linePath = true
	case DashedLine:
		m.Width = s.Width
		m.Spacing = s.Spacing
		m.Dashed = true
		linePath = true
	case Crosswalk:
		m.Width = s.Width
		m.Spacing = s.Spacing
	case GuideLine:
		m.Width = s.Width
		if !r.IsIntersection {
			m.Spacing = 2 * s.Width
			m.Dashed = true
			linePath = true
		}
	}
	if linePath && !m.IsEmpty() {
		m.Path = slices.Clone(points)
	}
	return m
}

// Bounds returns the smallest rectangle containing all placements and the
// stroked path.  The zero rectangle is returned for empty markings.
func (m Marking) Bounds() rect.Rect {
	var b rect.Rect
	first := true
	add := func(p vec.Vec2, margin float64) {
		if first {
			b = rect.Rect{LLx: p.X - margin, LLy: p.Y - margin, URx: p.X + margin, URy: p.Y + margin}
			first = false
			return
		}
		b.LLx = math.Min(b.LLx, p.X-margin)
		b.LLy = math.Min(b.LLy, p.Y-margin)
		b.URx = math.Max(b.URx, p.X+margin)
		b.URy = math.Max(b.URy, p.Y+margin)
	}

	for _, p := range m.Placements {
		for _, q := range p.Outline() {
			add(q, 0)
		}
	}
	for _, p := range m.Path {
		add(p, m.Width/2)
	}
	return b
}
