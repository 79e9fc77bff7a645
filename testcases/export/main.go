// Command export writes the test scenarios and the markings generated for
// them to JSON, for comparison with other marking tools.
// Run from the roadmark module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/sample"
	"seehuhn.de/go/roadmark/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, tc)
			if err != nil {
				panic(err)
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name    string          `json:"name"`
	Subject jsonPath        `json:"subject"`
	Others  []jsonPath      `json:"others,omitempty"`
	Config  roadmark.Config `json:"config"`

	Junction   string          `json:"junction"`
	Angle      float64         `json:"angle,omitempty"`
	Partners   []string        `json:"partners,omitempty"`
	Converged  bool            `json:"converged"`
	Inliers    []int           `json:"inliers,omitempty"`
	Placements []jsonPlacement `json:"placements"`
}

type jsonPath struct {
	ID     string      `json:"id"`
	Points [][]float64 `json:"points"`
}

type jsonPlacement struct {
	Center      []float64 `json:"center"`
	Orientation float64   `json:"orientation"`
	Length      float64   `json:"length"`
	Width       float64   `json:"width"`
	Shape       string    `json:"shape"`
}

func toJSON(category string, tc testcases.TestCase) (jsonTestCase, error) {
	g, err := roadmark.New(tc.Config, nil)
	if err != nil {
		return jsonTestCase{}, err
	}
	res := g.Generate(tc.Subject, tc.Others)

	jtc := jsonTestCase{
		Name:      category + "_" + tc.Name,
		Subject:   pathToJSON(tc.Subject),
		Config:    tc.Config,
		Junction:  res.Junction.Type.String(),
		Angle:     res.Junction.Angle,
		Partners:  res.Junction.Partners,
		Converged: res.Fit.Converged,
		Inliers:   res.Fit.Inliers,
	}
	for _, o := range tc.Others {
		jtc.Others = append(jtc.Others, pathToJSON(o))
	}
	jtc.Placements = placementsToJSON(res.Marking.Placements)
	return jtc, nil
}

func pathToJSON(p sample.Path) jsonPath {
	return jsonPath{ID: p.ID, Points: pointsToJSON(p.Points)}
}

func pointsToJSON(pts []vec.Vec2) [][]float64 {
	res := make([][]float64, len(pts))
	for i, p := range pts {
		res[i] = []float64{p.X, p.Y}
	}
	return res
}

func placementsToJSON(ps []marking.Placement) []jsonPlacement {
	res := make([]jsonPlacement, len(ps))
	for i, p := range ps {
		res[i] = jsonPlacement{
			Center:      []float64{p.Center.X, p.Center.Y},
			Orientation: p.Orientation,
			Length:      p.Length,
			Width:       p.Width,
			Shape:       p.Shape.String(),
		}
	}
	return res
}
