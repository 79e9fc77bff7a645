package testcases

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/sample"
)

var laneCases = []TestCase{
	{
		Name:       "solid_straight",
		Subject:    road("main", 0, 0, 50, 0, 10),
		Config:     config(marking.KindSolid),
		Junction:   junction.Unknown,
		Placements: 1,
	},
	{
		Name:       "solid_wide_yellow",
		Subject:    road("main", -10, 5, 30, 25, 8),
		Config:     config(marking.KindSolid, func(c *roadmark.Config) { c.Width = 0.5; c.Color = marking.Yellow }),
		Junction:   junction.Unknown,
		Placements: 1,
	},
	{
		Name:       "dashed_bend",
		Subject:    bend("main", 0, 0, 30, 0, 90, 15),
		Config:     config(marking.KindDashed, func(c *roadmark.Config) { c.Spacing = 3 }),
		Junction:   junction.Unknown,
		Placements: 1,
	},
	{
		Name:       "dashed_quadratic",
		Subject:    curve("main", pt(0, 0), pt(25, 20), pt(50, 0)),
		Config:     config(marking.KindDashed),
		Junction:   junction.Unknown,
		Placements: 1,
	},
	{
		Name: "solid_duplicates",
		Subject: sample.Path{ID: "main", Points: []vec.Vec2{
			pt(0, 0), pt(0, 0), pt(10, 0), pt(10, 0), pt(10, 0), pt(20, 0),
		}},
		Config:     config(marking.KindSolid),
		Junction:   junction.Unknown,
		Placements: 1,
	},
	{
		Name:       "solid_single_point",
		Subject:    sample.Path{ID: "main", Points: []vec.Vec2{pt(3, 4)}},
		Config:     config(marking.KindSolid),
		Junction:   junction.Unknown,
		Placements: 0,
	},
	{
		Name:       "dashed_far_neighbour",
		Subject:    road("main", 0, 0, 50, 0, 10),
		Others:     []sample.Path{road("parallel", 0, 30, 50, 30, 10)},
		Config:     config(marking.KindDashed),
		Junction:   junction.Unknown,
		Placements: 1,
	},
}
