package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Variance returns the population variance (divided by n) of samples. It is NaN for an empty slice.
func Variance(samples []float64) float64 {
	return stat.PopVariance(samples, nil)
}

// Covariance returns the population covariance matrix of points, the sum of (p-mean)(p-mean)^T
// divided by the number of points. The result is symmetric. An empty input yields the zero matrix.
func Covariance(points []r3.Vector) Matrix3x3 {
	if len(points) == 0 {
		return ZeroMatrix()
	}
	mean := centroid(points)

	var c00, c01, c02, c11, c12, c22 float64
	for _, p := range points {
		d := p.Sub(mean)
		c00 += d.X * d.X
		c01 += d.X * d.Y
		c02 += d.X * d.Z
		c11 += d.Y * d.Y
		c12 += d.Y * d.Z
		c22 += d.Z * d.Z
	}
	n := float64(len(points))
	return NewMatrix3x3(
		c00, c01, c02,
		c01, c11, c12,
		c02, c12, c22,
	).Scale(1 / n)
}

func centroid(points []r3.Vector) r3.Vector {
	var sum r3.Vector
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// PrincipalAxes eigen-decomposes a symmetric matrix, typically the output of Covariance. The
// returned matrix holds the unit eigenvectors as columns, sorted by descending eigenvalue and signed
// so the basis is right-handed. The eigenvalues are returned in the same order.
func PrincipalAxes(cov Matrix3x3) (Matrix3x3, r3.Vector, error) {
	sym := mat.NewSymDense(3, []float64{
		cov.At(0, 0), cov.At(0, 1), cov.At(0, 2),
		cov.At(1, 0), cov.At(1, 1), cov.At(1, 2),
		cov.At(2, 0), cov.At(2, 1), cov.At(2, 2),
	})
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return Matrix3x3{}, r3.Vector{}, errors.New("eigen decomposition of covariance matrix failed")
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	// gonum returns ascending eigenvalues
	axes := NewMatrix3x3FromColumns(
		r3.Vector{X: vectors.At(0, 2), Y: vectors.At(1, 2), Z: vectors.At(2, 2)},
		r3.Vector{X: vectors.At(0, 1), Y: vectors.At(1, 1), Z: vectors.At(2, 1)},
		r3.Vector{X: vectors.At(0, 0), Y: vectors.At(1, 0), Z: vectors.At(2, 0)},
	)
	if axes.Determinant() < 0 {
		for row := 0; row < 3; row++ {
			axes.Set(row, 2, -axes.At(row, 2))
		}
	}
	return axes, r3.Vector{X: values[2], Y: values[1], Z: values[0]}, nil
}

// FitOBB builds a box aligned with the principal axes of points and just large enough to hold them.
// The box is not guaranteed to have minimal volume.
func FitOBB(points []r3.Vector) (OBB, error) {
	if len(points) == 0 {
		return OBB{}, newTooFewPointsError(1, 0)
	}
	axes, _, err := PrincipalAxes(Covariance(points))
	if err != nil {
		return OBB{}, err
	}

	minLocal := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	maxLocal := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	toLocal := axes.Transpose()
	for _, p := range points {
		l := toLocal.MulVec(p)
		minLocal = r3.Vector{X: math.Min(minLocal.X, l.X), Y: math.Min(minLocal.Y, l.Y), Z: math.Min(minLocal.Z, l.Z)}
		maxLocal = r3.Vector{X: math.Max(maxLocal.X, l.X), Y: math.Max(maxLocal.Y, l.Y), Z: math.Max(maxLocal.Z, l.Z)}
	}

	center := axes.MulVec(minLocal.Add(maxLocal).Mul(0.5))
	extents := maxLocal.Sub(minLocal).Mul(0.5)
	return NewOBBWithOrientation(center, extents, axes), nil
}
