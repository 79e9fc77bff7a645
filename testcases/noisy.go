package testcases

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/sample"
)

// outlierRoad follows y = x/2 + 2, with four points displaced by 5m.
var outlierRoad = func() sample.Path {
	displaced := map[int]bool{3: true, 8: true, 13: true, 17: true}
	pts := make([]vec.Vec2, 21)
	for i := range pts {
		x := float64(i)
		y := 0.5*x + 2
		if displaced[i] {
			y += 5
		}
		pts[i] = pt(x, y)
	}
	return sample.Path{ID: "main", Points: pts}
}()

func fitted(c *roadmark.Config) {
	c.Fit = true
	c.Consensus = 15
}

var noisyCases = []TestCase{
	{
		Name:       "outliers_solid",
		Subject:    outlierRoad,
		Config:     config(marking.KindSolid, fitted),
		Junction:   junction.Unknown,
		Placements: 1,
	},
	{
		Name:    "outliers_crosswalk",
		Subject: outlierRoad,
		Config: config(marking.KindCrosswalk, fitted, func(c *roadmark.Config) {
			c.Width = 0.5
			c.Spacing = 0.5
		}),
		Junction:   junction.Unknown,
		Placements: 22,
	},
	{
		Name:    "no_consensus",
		Subject: scatter("main", 50, 25, 3),
		Config: config(marking.KindDashed, func(c *roadmark.Config) {
			c.Fit = true
			c.Consensus = 30
		}),
		Junction:   junction.Unknown,
		Placements: 1,
	},
}
