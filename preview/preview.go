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

// Package preview draws road markings as raster images and PDF files.
//
// The previews show the markings from above, scaled to fit the requested
// image size.  They are meant for checking the generated geometry, not as
// a faithful rendering of the road surface.
package preview

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/marking"
)

// Options control the appearance of a preview.
type Options struct {
	Size       int        // length of the longer image side, in pixels
	Margin     int        // empty border, in pixels
	Background color.RGBA // colour behind the markings
	DashLength float64    // length of a dash in metres
}

// DefaultOptions returns the settings used for the live preview.
func DefaultOptions() Options {
	return Options{
		Size:       512,
		Margin:     16,
		Background: color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF},
		DashLength: 3,
	}
}

// Viewport computes the transformation from marking coordinates (metres,
// y pointing up) to image coordinates (pixels, y pointing down), together
// with the size of the image.
func Viewport(markings []marking.Marking, opt Options) (matrix.Matrix, image.Rectangle) {
	b, ok := bounds(markings)
	if !ok {
		size := max(opt.Size, 1)
		return matrix.Identity, image.Rect(0, 0, size, size)
	}

	w, h := b.URx-b.LLx, b.URy-b.LLy
	inner := float64(max(opt.Size-2*opt.Margin, 1))
	scale := 1.0
	if extent := math.Max(w, h); extent > 0 {
		scale = inner / extent
	}

	m := float64(opt.Margin)
	width := int(math.Ceil(w*scale + 2*m))
	height := int(math.Ceil(h*scale + 2*m))
	width, height = max(width, 1), max(height, 1)

	// x' = scale*(x - LLx) + m,  y' = height - m - scale*(y - LLy)
	tr := matrix.Matrix{scale, 0, 0, -scale, m - scale*b.LLx, float64(height) - m + scale*b.LLy}
	return tr, image.Rect(0, 0, width, height)
}

// bounds returns the union of the bounding boxes of all non-empty
// markings.
func bounds(markings []marking.Marking) (rect.Rect, bool) {
	var res rect.Rect
	found := false
	for _, mk := range markings {
		if mk.IsEmpty() {
			continue
		}
		b := mk.Bounds()
		if !found {
			res = b
			found = true
			continue
		}
		res.LLx = math.Min(res.LLx, b.LLx)
		res.LLy = math.Min(res.LLy, b.LLy)
		res.URx = math.Max(res.URx, b.URx)
		res.URy = math.Max(res.URy, b.URy)
	}
	return res, found
}

// apply maps v through the affine transformation m.
func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// shapes returns the polygons to fill for a marking, in marking
// coordinates.  Line markings are drawn by stroking their path, so that
// curved roads are shown correctly; the bar placement describing the same
// line is skipped.
func shapes(mk marking.Marking, dashLength float64) [][]vec.Vec2 {
	var res [][]vec.Vec2
	if len(mk.Path) >= 2 {
		var pattern []float64
		if mk.Dashed {
			pattern = []float64{dashLength, mk.Spacing}
		}
		for _, dash := range dashes(segments(mk.Path), pattern, 0) {
			for _, seg := range dash {
				res = append(res, quad(seg, mk.Width/2))
			}
		}
	}
	for _, p := range mk.Placements {
		if p.Shape == marking.Bar && len(mk.Path) >= 2 {
			continue
		}
		res = append(res, p.Outline())
	}
	return res
}

// quad returns the butt-capped outline of a segment with half width d,
// in counterclockwise order.
func quad(seg segment, d float64) []vec.Vec2 {
	off := seg.N.Mul(d)
	return []vec.Vec2{seg.A.Sub(off), seg.B.Sub(off), seg.B.Add(off), seg.A.Add(off)}
}
