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

// Package roadmark generates road marking geometry from traced road
// centerlines.
//
// A Generator runs the complete pipeline for one road: the points are
// cleaned, a straight line is fitted with RANSAC, the road is checked for
// junctions with other roads, and finally the marking placements are laid
// out.  The stages are available separately in the packages sample,
// ransac, junction and marking.
package roadmark

//go:generate go run ./testcases/export

import (
	"context"
	"io"
	"runtime"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/ransac"
	"seehuhn.de/go/roadmark/sample"
)

// Generator turns centerlines into markings.
type Generator struct {
	Config Config
	Log    logrus.FieldLogger
}

// New returns a generator for the given configuration.
// If log is nil, log messages are discarded.
func New(cfg Config, log logrus.FieldLogger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = discard
	}
	return &Generator{Config: cfg, Log: log}, nil
}

// Result is the outcome of generating the marking for one road.
type Result struct {
	Marking  marking.Marking
	Fit      ransac.Result
	Junction junction.Report

	// Refined is the least squares line through the inliers of a
	// converged fit.  It is the zero Line otherwise.
	Refined ransac.Line

	// Fallback is set if the line fit did not converge.  The marking then
	// follows all points of the road, even if Config.Fit is set.
	Fallback bool
}

// Generate computes the marking for subject.  The other roads are only
// used to detect junctions.
func (g *Generator) Generate(subject sample.Path, others []sample.Path) Result {
	cfg := g.Config
	log := g.logger().WithField("road", subject.ID)

	pts := sample.Normalize(subject.Points, cfg.Tolerance)
	if len(pts) < 2 {
		log.WithField("points", len(pts)).Debug("too few points for a marking")
	}

	var res Result
	res.Fit = ransac.Fit(pts, cfg.FitParams())
	work := pts
	if !res.Fit.Converged || len(res.Fit.Inliers) == 0 {
		res.Fallback = true
		entry := log.WithFields(logrus.Fields{
			"iterations": res.Fit.Iterations,
			"inliers":    len(res.Fit.Inliers),
			"points":     len(pts),
		})
		if cfg.Fit && len(pts) >= 2 {
			entry.Warn("line fit did not converge, using all points")
		} else {
			entry.Debug("line fit did not converge")
		}
	} else {
		log.WithFields(logrus.Fields{
			"iterations": res.Fit.Iterations,
			"inliers":    len(res.Fit.Inliers),
			"outliers":   len(res.Fit.Outliers),
		}).Debug("line fit converged")
		if line, ok := ransac.Refine(pts, res.Fit.Inliers); ok {
			res.Refined = line
		}
		if cfg.Fit {
			work = res.Fit.InlierPoints(pts)
		}
	}

	cleaned := make([]sample.Path, len(others))
	for i, o := range others {
		cleaned[i] = sample.Path{ID: o.ID, Points: g.prepare(o.Points)}
	}
	road := sample.Path{ID: subject.ID, Points: pts}
	if cfg.Densify > 0 {
		road.Points = sample.Resample(pts, cfg.Densify)
	}
	res.Junction = junction.Detect(road, cleaned, cfg.Proximity)
	if res.Junction.IsIntersection {
		log.WithFields(logrus.Fields{
			"type":     res.Junction.Type,
			"partners": res.Junction.Partners,
		}).Debug("junction detected")
	}

	res.Marking = marking.Build(work, cfg.Spec(), res.Junction, cfg.Color)
	log.WithFields(logrus.Fields{
		"kind":       res.Marking.Kind,
		"placements": len(res.Marking.Placements),
	}).Debug("marking generated")

	return res
}

// prepare cleans the points of a neighbouring road for junction
// detection.
func (g *Generator) prepare(pts []vec.Vec2) []vec.Vec2 {
	pts = sample.Normalize(pts, g.Config.Tolerance)
	if g.Config.Densify > 0 {
		pts = sample.Resample(pts, g.Config.Densify)
	}
	return pts
}

// GeneratePath computes the marking for a road given as a path, which may
// contain curves.  The first subpath is the road to mark.  Further
// subpaths take part in junction detection as roads with the IDs id#1,
// id#2, ..., in addition to others.  A path without any drawing command
// gives an empty result.
func (g *Generator) GeneratePath(id string, p path.Path, others []sample.Path) Result {
	subpaths := sample.FromPath(p, g.Config.Flatness)
	if len(subpaths) == 0 {
		g.logger().WithField("road", id).Debug("path has no segments")
		return Result{}
	}

	all := make([]sample.Path, 0, len(others)+len(subpaths)-1)
	for k, pts := range subpaths[1:] {
		all = append(all, sample.Path{ID: id + "#" + strconv.Itoa(k+1), Points: pts})
	}
	all = append(all, others...)
	return g.Generate(sample.Path{ID: id, Points: subpaths[0]}, all)
}

// GenerateAll computes the markings for several roads in parallel.
// Every road is checked for junctions against all subjects and all other
// roads.  Results are returned in the order of subjects.
func (g *Generator) GenerateAll(ctx context.Context, subjects, others []sample.Path) ([]Result, error) {
	all := make([]sample.Path, 0, len(subjects)+len(others))
	all = append(all, subjects...)
	all = append(all, others...)

	results := make([]Result, len(subjects))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, subject := range subjects {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = g.Generate(subject, withoutIndex(all, i))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// withoutIndex returns paths with the entry at index i removed.
func withoutIndex(paths []sample.Path, i int) []sample.Path {
	res := make([]sample.Path, 0, len(paths)-1)
	res = append(res, paths[:i]...)
	return append(res, paths[i+1:]...)
}

func (g *Generator) logger() logrus.FieldLogger {
	if g.Log == nil {
		return discard
	}
	return g.Log
}

var discard = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
