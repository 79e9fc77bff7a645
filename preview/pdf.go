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
	"fmt"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/roadmark/marking"
)

// WritePDF writes the markings to a single-page PDF file.  One PDF unit
// corresponds to one pixel of the raster preview.  Markings are drawn in
// shades of gray on a black background, and dashed lines use the PDF
// dash pattern.
func WritePDF(fileName string, markings []marking.Marking, opt Options) error {
	tr, bounds := Viewport(markings, opt)
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	scale := tr[0]

	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(fileName, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// PDF origin is bottom-left; the viewport assumes top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	page.SetLineCap(graphics.LineCapButt)
	page.SetLineJoin(graphics.LineJoinRound)

	// The dash pattern stays in effect once set, so solid lines go first.
	ordered := slices.Clone(markings)
	slices.SortStableFunc(ordered, func(a, b marking.Marking) int {
		switch {
		case !a.Dashed && b.Dashed:
			return -1
		case a.Dashed && !b.Dashed:
			return 1
		default:
			return 0
		}
	})

	for _, mk := range ordered {
		gray := color.DeviceGray(mk.Color.Gray())

		if len(mk.Path) >= 2 {
			page.SetStrokeColor(gray)
			page.SetLineWidth(mk.Width * scale)
			if mk.Dashed {
				page.SetLineDash([]float64{opt.DashLength * scale, mk.Spacing * scale}, 0)
			}
			for i, v := range mk.Path {
				p := apply(tr, v)
				if i == 0 {
					page.MoveTo(p.X, p.Y)
				} else {
					page.LineTo(p.X, p.Y)
				}
			}
			page.Stroke()
		}

		page.SetFillColor(gray)
		filled := false
		for _, pl := range mk.Placements {
			if pl.Shape == marking.Bar && len(mk.Path) >= 2 {
				continue
			}
			for i, v := range pl.Outline() {
				p := apply(tr, v)
				if i == 0 {
					page.MoveTo(p.X, p.Y)
				} else {
					page.LineTo(p.X, p.Y)
				}
			}
			page.ClosePath()
			filled = true
		}
		if filled {
			page.Fill()
		}
	}

	if err := page.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", fileName, err)
	}
	return nil
}
