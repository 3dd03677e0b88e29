package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestVariance(t *testing.T) {
	test.That(t, Variance([]float64{2, 4, 4, 4, 5, 5, 7, 9}), test.ShouldAlmostEqual, 4)
	test.That(t, Variance([]float64{3, 3, 3}), test.ShouldEqual, 0.)
}

func TestCovarianceSymmetricCloud(t *testing.T) {
	// symmetric about the origin along each axis independently
	var points []r3.Vector
	for _, x := range []float64{-2, 2} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-0.5, 0.5} {
				points = append(points, r3.Vector{X: x, Y: y, Z: z})
			}
		}
	}
	cov := Covariance(points)
	test.That(t, cov.At(0, 1), test.ShouldEqual, 0.)
	test.That(t, cov.At(0, 2), test.ShouldEqual, 0.)
	test.That(t, cov.At(1, 2), test.ShouldEqual, 0.)
	test.That(t, cov.At(0, 0), test.ShouldAlmostEqual, 4)
	test.That(t, cov.At(1, 1), test.ShouldAlmostEqual, 1)
	test.That(t, cov.At(2, 2), test.ShouldAlmostEqual, 0.25)

	// translating the cloud does not change it
	var shifted []r3.Vector
	for _, p := range points {
		shifted = append(shifted, p.Add(r3.Vector{X: 10, Y: -3, Z: 7}))
	}
	test.That(t, Covariance(shifted).AlmostEqual(cov, 1e-9), test.ShouldBeTrue)
}

func TestCovarianceDiagonalIsVariance(t *testing.T) {
	points := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -4, Y: 0, Z: 1}, {X: 2, Y: 2, Z: -5}, {X: 0.5, Y: -1, Z: 0}}
	cov := Covariance(points)
	xs := make([]float64, 0, len(points))
	for _, p := range points {
		xs = append(xs, p.X)
	}
	test.That(t, cov.At(0, 0), test.ShouldAlmostEqual, Variance(xs))
	test.That(t, cov.At(1, 2), test.ShouldEqual, cov.At(2, 1))

	test.That(t, Covariance(nil), test.ShouldResemble, ZeroMatrix())
}

func TestPrincipalAxes(t *testing.T) {
	cov := NewMatrix3x3(
		1, 0, 0,
		0, 9, 0,
		0, 0, 4,
	)
	axes, values, err := PrincipalAxes(cov)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, values.X, test.ShouldAlmostEqual, 9)
	test.That(t, values.Y, test.ShouldAlmostEqual, 4)
	test.That(t, values.Z, test.ShouldAlmostEqual, 1)
	test.That(t, math.Abs(axes.ColumnX().Y), test.ShouldAlmostEqual, 1)
	test.That(t, math.Abs(axes.ColumnY().Z), test.ShouldAlmostEqual, 1)
	test.That(t, math.Abs(axes.ColumnZ().X), test.ShouldAlmostEqual, 1)
	test.That(t, axes.IsOrthonormal(1e-9), test.ShouldBeTrue)
}

func TestFitOBB(t *testing.T) {
	t.Run("axis aligned cloud", func(t *testing.T) {
		points := []r3.Vector{
			{X: 3}, {X: -3},
			{Y: 2}, {Y: -2},
			{Z: 1}, {Z: -1},
		}
		box, err := FitOBB(points)
		test.That(t, err, test.ShouldBeNil)
		vectorsAlmostEqual(t, box.Center(), r3.Vector{})
		vectorsAlmostEqual(t, box.Extents(), r3.Vector{X: 3, Y: 2, Z: 1})
		test.That(t, math.Abs(box.Orientation().ColumnX().X), test.ShouldAlmostEqual, 1)
	})

	t.Run("rotated cloud", func(t *testing.T) {
		deg := r3.Vector{X: 15, Y: -25, Z: 40}
		center := r3.Vector{X: 1, Y: 2, Z: 3}
		reference := NewOBB(center, r3.Vector{X: 4, Y: 2, Z: 1})
		reference.SetRotation(deg)
		corners := reference.Corners()

		box, err := FitOBB(corners[:])
		test.That(t, err, test.ShouldBeNil)
		vectorsAlmostEqual(t, box.Center(), center)
		vectorsAlmostEqual(t, box.Extents(), reference.Extents())
		test.That(t, box.Orientation().IsOrthonormal(1e-9), test.ShouldBeTrue)
		test.That(t, box.Volume(), test.ShouldAlmostEqual, reference.Volume(), 1e-6)
		for _, c := range corners {
			test.That(t, box.ContainsPoint(c, 1e-9), test.ShouldBeTrue)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := FitOBB(nil)
		test.That(t, err, test.ShouldNotBeNil)
	})
}
