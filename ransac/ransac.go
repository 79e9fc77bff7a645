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

// Package ransac fits a straight line to a noisy point sequence using
// random sample consensus.
//
// Fit draws pairs of points, counts the points close to the line through
// each pair and keeps the line with the largest count.  The random
// generator is seeded per call, so that identical inputs always give
// identical results.
package ransac

import (
	"math"
	"math/rand/v2"

	"github.com/samber/lo"
	"seehuhn.de/go/geom/vec"
)

const (
	// DefaultSeed is the seed used when the caller has no preference.
	DefaultSeed uint64 = 10

	// DefaultConsensus is the number of inliers at which a fit is
	// accepted.
	DefaultConsensus = 10

	DefaultMaxIterations     = 100
	DefaultDistanceThreshold = 0.1
)

// maxDegenerateDraws limits the number of redraws per iteration when the
// two sampled points coincide.
const maxDegenerateDraws = 16

// pcgStream is the second PCG seed word.  It is fixed, so that results only
// depend on Params.Seed.
const pcgStream = 0x726f61646d61726b

// Line is the line A*x + B*y + C = 0.
type Line struct {
	A, B, C float64
}

// Through returns the line through p0 and p1.
func Through(p0, p1 vec.Vec2) Line {
	a := p1.Y - p0.Y
	b := -(p1.X - p0.X)
	return Line{A: a, B: b, C: -a*p1.X - b*p1.Y}
}

// IsDegenerate reports whether l does not describe a line.
func (l Line) IsDegenerate() bool {
	return l.A == 0 && l.B == 0
}

// Distance returns the perpendicular distance from p to l.
func (l Line) Distance(p vec.Vec2) float64 {
	return math.Abs(l.A*p.X+l.B*p.Y+l.C) / math.Sqrt(l.A*l.A+l.B*l.B)
}

// Direction returns a unit vector along l.
// For lines created by Through, this points from the first to the second
// point.
func (l Line) Direction() vec.Vec2 {
	if l.IsDegenerate() {
		return vec.Vec2{}
	}
	d := vec.Vec2{X: -l.B, Y: l.A}
	return d.Mul(1 / d.Length())
}

// Params controls a call to Fit.
type Params struct {
	MaxIterations     int
	Consensus         int     // inlier count at which the search stops
	DistanceThreshold float64 // points closer than this are inliers
	Seed              uint64
}

// DefaultParams returns the parameters used by the road marking dialog.
func DefaultParams() Params {
	return Params{
		MaxIterations:     DefaultMaxIterations,
		Consensus:         DefaultConsensus,
		DistanceThreshold: DefaultDistanceThreshold,
		Seed:              DefaultSeed,
	}
}

// Result describes the outcome of Fit.
//
// Inliers and Outliers hold ascending point indices and together cover
// every input index exactly once.
type Result struct {
	Line       Line
	Inliers    []int
	Outliers   []int
	Converged  bool
	Iterations int
}

// InlierPoints returns the inlier points, in input order.
func (r Result) InlierPoints(points []vec.Vec2) []vec.Vec2 {
	return lo.Map(r.Inliers, func(i int, _ int) vec.Vec2 { return points[i] })
}

// OutlierPoints returns the outlier points, in input order.
func (r Result) OutlierPoints(points []vec.Vec2) []vec.Vec2 {
	return lo.Map(r.Outliers, func(i int, _ int) vec.Vec2 { return points[i] })
}

// InlierFraction returns the share of points classified as inliers.
func (r Result) InlierFraction() float64 {
	n := len(r.Inliers) + len(r.Outliers)
	if n == 0 {
		return 0
	}
	return float64(len(r.Inliers)) / float64(n)
}

// Fit searches for the line supported by the largest number of points.
//
// With fewer than two points no line can be formed and the result has
// empty index sets.  If all points coincide, the result has a zero Line
// and every point is an outlier.  Otherwise the best line found is
// returned, with Converged set if it reached p.Consensus inliers.
func Fit(points []vec.Vec2, p Params) Result {
	n := len(points)
	if n < 2 {
		return Result{}
	}
	if allCoincide(points) {
		return Result{Outliers: indices(n)}
	}

	rng := rand.New(rand.NewPCG(p.Seed, pcgStream))

	var res Result
	bestCount := -1
	var best []int
	cur := make([]int, 0, n)
	for res.Iterations < p.MaxIterations {
		res.Iterations++

		line, ok := sampleLine(points, rng)
		if !ok {
			continue
		}

		cur = cur[:0]
		for i, q := range points {
			if line.Distance(q) < p.DistanceThreshold {
				cur = append(cur, i)
			}
		}

		if len(cur) > bestCount {
			bestCount = len(cur)
			res.Line = line
			best = append(best[:0], cur...)
			if len(cur) >= p.Consensus {
				res.Converged = true
				break
			}
		}
	}

	res.Inliers, res.Outliers = partition(n, best)
	return res
}

// sampleLine draws two distinct indices and returns the line through the
// corresponding points.  Draws where both points coincide are repeated up
// to maxDegenerateDraws times.
func sampleLine(points []vec.Vec2, rng *rand.Rand) (Line, bool) {
	n := len(points)
	for range maxDegenerateDraws {
		i := rng.IntN(n)
		j := rng.IntN(n - 1)
		if j >= i {
			j++
		}
		if j < i {
			i, j = j, i
		}

		p0, p1 := points[i], points[j]
		if p0 == p1 {
			continue
		}
		return Through(p0, p1), true
	}
	return Line{}, false
}

func allCoincide(points []vec.Vec2) bool {
	for _, p := range points[1:] {
		if p != points[0] {
			return false
		}
	}
	return true
}

func indices(n int) []int {
	res := make([]int, n)
	for i := range res {
		res[i] = i
	}
	return res
}

// partition splits [0, n) into the ascending index list in and its
// complement.
func partition(n int, in []int) (inliers, outliers []int) {
	inliers = make([]int, 0, len(in))
	outliers = make([]int, 0, n-len(in))
	k := 0
	for i := range n {
		if k < len(in) && in[k] == i {
			inliers = append(inliers, i)
			k++
		} else {
			outliers = append(outliers, i)
		}
	}
	return inliers, outliers
}
