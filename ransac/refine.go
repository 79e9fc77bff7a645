package ransac

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"seehuhn.de/go/geom/vec"
)

// Refine computes the total least squares line through the inlier points.
// The line passes through the centroid of the points and follows the
// principal axis of their covariance matrix.  The second return value is
// false if fewer than two distinct inliers are given.
func Refine(points []vec.Vec2, inliers []int) (Line, bool) {
	if len(inliers) < 2 {
		return Line{}, false
	}

	xs := make([]float64, len(inliers))
	ys := make([]float64, len(inliers))
	for k, i := range inliers {
		xs[k] = points[i].X
		ys[k] = points[i].Y
	}

	mx, my := stat.Mean(xs, nil), stat.Mean(ys, nil)
	cxx := stat.Variance(xs, nil)
	cyy := stat.Variance(ys, nil)
	cxy := stat.Covariance(xs, ys, nil)

	var eig mat.EigenSym
	ok := eig.Factorize(mat.NewSymDense(2, []float64{cxx, cxy, cxy, cyy}), true)
	if !ok {
		return Line{}, false
	}
	values := eig.Values(nil) // ascending
	if !(values[1] > 0) {
		return Line{}, false
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	dx, dy := vectors.At(0, 1), vectors.At(1, 1)

	a, b := dy, -dx
	return Line{A: a, B: b, C: -a*mx - b*my}, true
}
