package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

var (
	// ErrTooFewPoints is returned when a box is requested for fewer points than the construction needs.
	ErrTooFewPoints = errors.New("not enough points to build a bounding box")

	// ErrDegeneratePolygon is returned when every edge of the input polygon has zero length.
	ErrDegeneratePolygon = errors.New("polygon has no edge with non-zero length")

	// ErrNegativeExtents is returned by OBB.Validate when a half-width is negative.
	ErrNegativeExtents = errors.New("box extents must be non-negative")

	// ErrNonOrthonormal is returned by OBB.Validate when the orientation is not a rotation.
	ErrNonOrthonormal = errors.New("box orientation is not orthonormal")
)

func newBadExtentsError(extents r3.Vector) error {
	return errors.Wrapf(ErrNegativeExtents, "got (%.3f, %.3f, %.3f)", extents.X, extents.Y, extents.Z)
}

func newNonOrthonormalError(m Matrix3x3) error {
	return errors.Wrapf(ErrNonOrthonormal, "determinant %.6f", m.Determinant())
}

func newTooFewPointsError(need, got int) error {
	return errors.Wrapf(ErrTooFewPoints, "need at least %d, got %d", need, got)
}
