package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/obb/utils"
)

// EulerAnglesDegrees recovers the X, Y and Z angles, in degrees, of a rotation built as
// RotateZ(z) * RotateY(y) * RotateX(x). At the gimbal-lock poles (m[2,0] = ±1) the X angle is
// reported as zero and the whole remaining rotation is folded into Z.
// Reference: David Eberly, "Euler Angle Formulas", https://www.geometrictools.com/Documentation/EulerAngles.pdf
func EulerAnglesDegrees(m Matrix3x3) r3.Vector {
	var x, y, z float64
	r20 := m.At(2, 0)
	switch {
	case r20 < 1 && r20 > -1:
		y = math.Asin(-r20)
		z = math.Atan2(m.At(1, 0), m.At(0, 0))
		x = math.Atan2(m.At(2, 1), m.At(2, 2))
	case r20 <= -1:
		y = math.Pi / 2
		z = -math.Atan2(-m.At(1, 2), m.At(1, 1))
	default:
		y = -math.Pi / 2
		z = math.Atan2(-m.At(1, 2), m.At(1, 1))
	}
	return r3.Vector{X: utils.RadToDeg(x), Y: utils.RadToDeg(y), Z: utils.RadToDeg(z)}
}

// ZAngleDegrees returns only the Z (yaw) angle of m in degrees, using the same branches as
// EulerAnglesDegrees. The inverse cosine is never taken so the result stays well defined near ±90°.
func ZAngleDegrees(m Matrix3x3) float64 {
	return EulerAnglesDegrees(m).Z
}
