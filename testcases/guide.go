package testcases

import (
	"math"

	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/sample"
)

// halfDiagonal is half the extent of a 40m road at 45 degrees.
var halfDiagonal = 20 * math.Sqrt2 / 2

var guideCases = []TestCase{
	{
		Name:       "t_junction",
		Subject:    road("main", 0, 0, 40, 0, 10),
		Others:     []sample.Path{road("cross", 44, -20, 44, 20, 10)},
		Config:     config(marking.KindGuide),
		Junction:   junction.TShape,
		Placements: 1,
	},
	{
		Name:       "y_junction",
		Subject:    road("main", 0, 0, 40, 0, 10),
		Others:     []sample.Path{road("diagonal", 44-halfDiagonal, -halfDiagonal, 44+halfDiagonal, halfDiagonal, 10)},
		Config:     config(marking.KindGuide),
		Junction:   junction.YShape,
		Placements: 1,
	},
	{
		Name:    "four_way",
		Subject: road("main", 0, 0, 40, 0, 10),
		Others: []sample.Path{
			road("cross", 44, -20, 44, 20, 10),
			road("middle", 20, -20, 20, 20, 10),
		},
		Config:     config(marking.KindGuide),
		Junction:   junction.FourWay,
		Placements: 1,
	},
	{
		Name:       "open_road",
		Subject:    road("main", 0, 0, 40, 0, 10),
		Config:     config(marking.KindGuide),
		Junction:   junction.Unknown,
		Placements: 1,
	},
	{
		Name:       "merging_ramp",
		Subject:    bend("ramp", 0, 0, 30, 180, 90, 15),
		Others:     []sample.Path{road("cross", -20, 34, 20, 34, 10)},
		Config:     config(marking.KindGuide, func(c *roadmark.Config) { c.Color = marking.Yellow }),
		Junction:   junction.YShape,
		Placements: 1,
	},
	{
		Name:       "densified_crossing",
		Subject:    road("main", 0, 0, 40, 0, 1),
		Others:     []sample.Path{road("cross", 20, -30, 20, 30, 1)},
		Config:     config(marking.KindGuide, func(c *roadmark.Config) { c.Densify = 1 }),
		Junction:   junction.TShape,
		Placements: 1,
	},
}
