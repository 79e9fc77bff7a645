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

// Command genpdf draws the markings of all test scenarios, for visual
// inspection.  For every scenario it writes a PDF and a PNG preview.
// If Ghostscript is installed, the PDF is also rendered to a second PNG,
// so that both renderings can be compared.
package main

import (
	"fmt"
	"image/png"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/preview"
	"seehuhn.de/go/roadmark/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}
	_, gsErr := exec.LookPath("gs")

	opt := preview.DefaultOptions()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name

			g, err := roadmark.New(tc.Config, nil)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			res := g.Generate(tc.Subject, tc.Others)
			markings := []marking.Marking{res.Marking}

			pdfPath := filepath.Join(refDir, name+".pdf")
			if err := preview.WritePDF(pdfPath, markings, opt); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := writePNG(filepath.Join(refDir, name+".png"), markings, opt); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if gsErr == nil {
				if err := renderPNG(pdfPath, filepath.Join(refDir, name+"_gs.png")); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func writePNG(pngPath string, markings []marking.Marking, opt preview.Options) error {
	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, preview.Raster(markings, opt)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -r72: one PDF unit per pixel, matching the raster preview
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
