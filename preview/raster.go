package preview

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"seehuhn.de/go/roadmark/marking"
)

// Raster draws the markings into a new image.  The image size follows from
// opt.Size and the aspect ratio of the markings.
func Raster(markings []marking.Marking, opt Options) *image.RGBA {
	tr, bounds := Viewport(markings, opt)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(opt.Background), image.Point{}, draw.Src)

	w, h := bounds.Dx(), bounds.Dy()
	z := vector.NewRasterizer(w, h)
	for _, mk := range markings {
		polys := shapes(mk, opt.DashLength)
		if len(polys) == 0 {
			continue
		}

		z.Reset(w, h)
		for _, poly := range polys {
			for i, v := range poly {
				p := apply(tr, v)
				if i == 0 {
					z.MoveTo(float32(p.X), float32(p.Y))
				} else {
					z.LineTo(float32(p.X), float32(p.Y))
				}
			}
			z.ClosePath()
		}
		z.Draw(img, img.Bounds(), image.NewUniform(mk.Color.RGBA()), image.Point{})
	}
	return img
}
