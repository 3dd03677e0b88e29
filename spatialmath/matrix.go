package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/obb/utils"
)

// Matrix3x3 is a dense 3x3 linear map stored row-major. It is a value type: every
// operation returns a new matrix and leaves its operands untouched.
type Matrix3x3 struct {
	mat [9]float64
}

// NewMatrix3x3 creates a matrix from nine entries given in row-major order.
func NewMatrix3x3(
	e00, e01, e02,
	e10, e11, e12,
	e20, e21, e22 float64,
) Matrix3x3 {
	return Matrix3x3{[9]float64{
		e00, e01, e02,
		e10, e11, e12,
		e20, e21, e22,
	}}
}

// NewMatrix3x3FromColumns creates a matrix whose columns are x, y and z. For an orientation
// matrix these are the local X, Y and Z axes expressed in the world frame.
func NewMatrix3x3FromColumns(x, y, z r3.Vector) Matrix3x3 {
	return NewMatrix3x3(
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	)
}

// NewMatrix3x3FromRows creates a matrix whose rows are r0, r1 and r2.
func NewMatrix3x3FromRows(r0, r1, r2 r3.Vector) Matrix3x3 {
	return NewMatrix3x3(
		r0.X, r0.Y, r0.Z,
		r1.X, r1.Y, r1.Z,
		r2.X, r2.Y, r2.Z,
	)
}

// IdentityMatrix returns the 3x3 identity.
func IdentityMatrix() Matrix3x3 {
	return NewMatrix3x3(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
}

// ZeroMatrix returns the 3x3 matrix with every entry zero.
func ZeroMatrix() Matrix3x3 {
	return Matrix3x3{}
}

// At returns the entry at the given row and column.
func (m Matrix3x3) At(row, col int) float64 {
	return m.mat[row*3+col]
}

// Set writes the entry at the given row and column.
func (m *Matrix3x3) Set(row, col int, v float64) {
	m.mat[row*3+col] = v
}

// Row returns row i as a vector.
func (m Matrix3x3) Row(i int) r3.Vector {
	return r3.Vector{X: m.mat[i*3], Y: m.mat[i*3+1], Z: m.mat[i*3+2]}
}

// Column returns column i as a vector.
func (m Matrix3x3) Column(i int) r3.Vector {
	return r3.Vector{X: m.mat[i], Y: m.mat[3+i], Z: m.mat[6+i]}
}

// ColumnX returns the first column, the local X axis of an orientation matrix.
func (m Matrix3x3) ColumnX() r3.Vector {
	return m.Column(0)
}

// ColumnY returns the second column, the local Y axis of an orientation matrix.
func (m Matrix3x3) ColumnY() r3.Vector {
	return m.Column(1)
}

// ColumnZ returns the third column, the local Z axis of an orientation matrix.
func (m Matrix3x3) ColumnZ() r3.Vector {
	return m.Column(2)
}

// Mul returns the matrix product m*o.
func (m Matrix3x3) Mul(o Matrix3x3) Matrix3x3 {
	var out Matrix3x3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m.mat[r*3+k] * o.mat[k*3+c]
			}
			out.mat[r*3+c] = sum
		}
	}
	return out
}

// MulVec returns the matrix-vector product m*v, result[r] = sum over c of m[r,c]*v[c].
func (m Matrix3x3) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.mat[0]*v.X + m.mat[1]*v.Y + m.mat[2]*v.Z,
		Y: m.mat[3]*v.X + m.mat[4]*v.Y + m.mat[5]*v.Z,
		Z: m.mat[6]*v.X + m.mat[7]*v.Y + m.mat[8]*v.Z,
	}
}

// Scale returns a copy of m with every entry multiplied by f.
func (m Matrix3x3) Scale(f float64) Matrix3x3 {
	for i := range m.mat {
		m.mat[i] *= f
	}
	return m
}

// Transpose returns m with rows and columns swapped. For an orthonormal matrix this is the inverse,
// converting world directions into the local frame.
func (m Matrix3x3) Transpose() Matrix3x3 {
	return NewMatrix3x3(
		m.mat[0], m.mat[3], m.mat[6],
		m.mat[1], m.mat[4], m.mat[7],
		m.mat[2], m.mat[5], m.mat[8],
	)
}

// Determinant returns the determinant of m.
func (m Matrix3x3) Determinant() float64 {
	return m.ColumnX().Dot(m.ColumnY().Cross(m.ColumnZ()))
}

// AlmostEqual reports whether every entry of m is within epsilon of the matching entry of o.
func (m Matrix3x3) AlmostEqual(o Matrix3x3, epsilon float64) bool {
	for i := range m.mat {
		if !utils.Float64AlmostEqual(m.mat[i], o.mat[i], epsilon) {
			return false
		}
	}
	return true
}

// IsOrthonormal reports whether the columns of m are unit length, mutually perpendicular and
// right-handed, each within epsilon.
func (m Matrix3x3) IsOrthonormal(epsilon float64) bool {
	x, y, z := m.ColumnX(), m.ColumnY(), m.ColumnZ()
	for _, col := range []r3.Vector{x, y, z} {
		if !utils.Float64AlmostEqual(col.Norm(), 1, epsilon) {
			return false
		}
	}
	if math.Abs(x.Dot(y)) > epsilon || math.Abs(x.Dot(z)) > epsilon || math.Abs(y.Dot(z)) > epsilon {
		return false
	}
	return m.Determinant() > 0
}

// MaxOffDiagonal returns the position of the off-diagonal entry with the largest absolute value.
// When every off-diagonal entry is zero (0, 1) is returned so the result never lands on the diagonal.
func (m Matrix3x3) MaxOffDiagonal() (p, q int) {
	p, q = 0, 1
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			if math.Abs(m.At(i, j)) > math.Abs(m.At(p, q)) {
				p, q = i, j
			}
		}
	}
	return p, q
}

// String prints the rows of the matrix, rounded to two decimals.
func (m Matrix3x3) String() string {
	return fmt.Sprintf("%.2f %.2f %.2f\n%.2f %.2f %.2f\n%.2f %.2f %.2f",
		m.mat[0], m.mat[1], m.mat[2],
		m.mat[3], m.mat[4], m.mat[5],
		m.mat[6], m.mat[7], m.mat[8])
}

// Quaternion converts an orthonormal rotation matrix to a unit quaternion.
// Reference: Shepperd's method, choosing the largest diagonal term for stability.
func (m Matrix3x3) Quaternion() quat.Number {
	m00, m11, m22 := m.At(0, 0), m.At(1, 1), m.At(2, 2)
	trace := m00 + m11 + m22
	var q quat.Number
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = quat.Number{
			Real: 0.25 / s,
			Imag: (m.At(2, 1) - m.At(1, 2)) * s,
			Jmag: (m.At(0, 2) - m.At(2, 0)) * s,
			Kmag: (m.At(1, 0) - m.At(0, 1)) * s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = quat.Number{
			Real: (m.At(2, 1) - m.At(1, 2)) / s,
			Imag: 0.25 * s,
			Jmag: (m.At(0, 1) + m.At(1, 0)) / s,
			Kmag: (m.At(0, 2) + m.At(2, 0)) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = quat.Number{
			Real: (m.At(0, 2) - m.At(2, 0)) / s,
			Imag: (m.At(0, 1) + m.At(1, 0)) / s,
			Jmag: 0.25 * s,
			Kmag: (m.At(1, 2) + m.At(2, 1)) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = quat.Number{
			Real: (m.At(1, 0) - m.At(0, 1)) / s,
			Imag: (m.At(0, 2) + m.At(2, 0)) / s,
			Jmag: (m.At(1, 2) + m.At(2, 1)) / s,
			Kmag: 0.25 * s,
		}
	}
	// keep the real part non-negative so equal rotations map to equal quaternions
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q
}

// Mat3 converts m to a mathgl matrix, which is stored column-major, for handing orientations to renderers.
func (m Matrix3x3) Mat3() mgl64.Mat3 {
	return mgl64.Mat3{
		m.mat[0], m.mat[3], m.mat[6],
		m.mat[1], m.mat[4], m.mat[7],
		m.mat[2], m.mat[5], m.mat[8],
	}
}

// RotateX returns the rotation of theta degrees about the X axis.
func RotateX(theta float64) Matrix3x3 {
	sin, cos := math.Sincos(utils.DegToRad(theta))
	return NewMatrix3x3FromColumns(
		r3.Vector{X: 1, Y: 0, Z: 0},
		r3.Vector{X: 0, Y: cos, Z: sin},
		r3.Vector{X: 0, Y: -sin, Z: cos},
	)
}

// RotateY returns the rotation of theta degrees about the Y axis.
func RotateY(theta float64) Matrix3x3 {
	sin, cos := math.Sincos(utils.DegToRad(theta))
	return NewMatrix3x3FromColumns(
		r3.Vector{X: cos, Y: 0, Z: -sin},
		r3.Vector{X: 0, Y: 1, Z: 0},
		r3.Vector{X: sin, Y: 0, Z: cos},
	)
}

// RotateZ returns the rotation of theta degrees about the Z axis.
func RotateZ(theta float64) Matrix3x3 {
	sin, cos := math.Sincos(utils.DegToRad(theta))
	return NewMatrix3x3FromColumns(
		r3.Vector{X: cos, Y: sin, Z: 0},
		r3.Vector{X: -sin, Y: cos, Z: 0},
		r3.Vector{X: 0, Y: 0, Z: 1},
	)
}

// Rotate returns the rotation for a triple of Euler angles in degrees. The X rotation is applied first,
// then Y, then Z: the result is RotateZ(z) * RotateY(y) * RotateX(x).
func Rotate(degrees r3.Vector) Matrix3x3 {
	return RotateZ(degrees.Z).Mul(RotateY(degrees.Y)).Mul(RotateX(degrees.X))
}
