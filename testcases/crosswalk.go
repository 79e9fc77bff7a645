package testcases

import (
	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/sample"
)

var crosswalkCases = []TestCase{
	{
		Name:    "twenty_stripes",
		Subject: road("main", 0, 0, 20, 0, 4),
		Config: config(marking.KindCrosswalk, func(c *roadmark.Config) {
			c.Width = 0.5
			c.Spacing = 0.5
		}),
		Junction:   junction.Unknown,
		Placements: 20,
	},
	{
		Name:       "defaults",
		Subject:    road("main", 0, 0, 12, 0, 6),
		Config:     config(marking.KindCrosswalk),
		Junction:   junction.Unknown,
		Placements: 26,
	},
	{
		Name:    "diagonal",
		Subject: road("main", 0, 0, 30, 40, 5),
		Config: config(marking.KindCrosswalk, func(c *roadmark.Config) {
			c.Width = 1
			c.Spacing = 1.5
			c.CrossingWidth = 8
		}),
		Junction:   junction.Unknown,
		Placements: 20,
	},
	{
		Name:    "shorter_than_stripe",
		Subject: road("main", 0, 0, 0.4, 0, 1),
		Config: config(marking.KindCrosswalk, func(c *roadmark.Config) {
			c.Width = 0.5
			c.Spacing = 0.5
		}),
		Junction:   junction.Unknown,
		Placements: 1,
	},
	{
		Name:    "at_junction",
		Subject: road("main", 0, 0, 8, 0, 4),
		Others:  []sample.Path{road("cross", 10, -10, 10, 10, 4)},
		Config: config(marking.KindCrosswalk, func(c *roadmark.Config) {
			c.Width = 0.5
			c.Spacing = 0.5
		}),
		Junction:   junction.TShape,
		Placements: 8,
	},
}
