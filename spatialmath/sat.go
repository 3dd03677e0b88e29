package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// parallelEpsilon biases every |R[i][j]| so that the cross product of two (nearly) parallel edges,
// which is pure rounding noise, cannot report a false separation. The bias scales with the box
// extents, so gaps narrower than about 3e-10 times the extents of the second box still collide.
const parallelEpsilon = 1e-10

// AxisSet selects which candidate separating axes SeparatingAxisTest evaluates.
type AxisSet int

const (
	// AllAxes runs the three face normals of each box and the nine edge-edge cross products.
	// This is the exact OBB-OBB overlap test.
	AllAxes AxisSet = iota
	// FaceAxes runs only the six face normals. Pairs that only an edge-edge axis separates are
	// reported as colliding.
	FaceAxes
)

// SeparatingAxis identifies the axis that proved two boxes disjoint.
type SeparatingAxis int

// Candidate axes in the order they are tested. AxisAiXBj is the cross product of the i-th local
// axis of the first box and the j-th local axis of the second.
const (
	NoSeparatingAxis SeparatingAxis = iota
	AxisA0
	AxisA1
	AxisA2
	AxisB0
	AxisB1
	AxisB2
	AxisA0XB0
	AxisA0XB1
	AxisA0XB2
	AxisA1XB0
	AxisA1XB1
	AxisA1XB2
	AxisA2XB0
	AxisA2XB1
	AxisA2XB2
)

func (s SeparatingAxis) String() string {
	switch {
	case s == NoSeparatingAxis:
		return "none"
	case s >= AxisA0 && s <= AxisA2:
		return fmt.Sprintf("A%d", s-AxisA0)
	case s >= AxisB0 && s <= AxisB2:
		return fmt.Sprintf("B%d", s-AxisB0)
	case s >= AxisA0XB0 && s <= AxisA2XB2:
		idx := int(s - AxisA0XB0)
		return fmt.Sprintf("A%dxB%d", idx/3, idx%3)
	default:
		return fmt.Sprintf("SeparatingAxis(%d)", int(s))
	}
}

// SATResult is the verdict of SeparatingAxisTest along with the intermediate values that are useful
// when visualizing or debugging a test.
type SATResult struct {
	Colliding bool
	// Rotation expresses the second box's axes in the first box's frame, Rotation[i][j] = A_i . B_j.
	Rotation Matrix3x3
	// Translation is the center offset b.Center - a.Center expressed in the first box's frame.
	Translation r3.Vector
	// SeparatingAxis is the first axis that separated the boxes, NoSeparatingAxis when colliding.
	SeparatingAxis SeparatingAxis
}

// Intersects reports whether two boxes overlap, testing all fifteen candidate axes.
func Intersects(a, b OBB) bool {
	return SeparatingAxisTest(a, b, AllAxes).Colliding
}

// CollidesWith reports whether b overlaps other, testing all fifteen candidate axes.
func (b OBB) CollidesWith(other OBB) bool {
	return Intersects(b, other)
}

// SeparatingAxisTest decides whether a and b overlap using the separating axis theorem, working in
// a's local frame. Face normals of a are tested first, then those of b, then (for AllAxes) the
// edge-edge cross products; the first separating axis ends the test. Touching boxes collide.
// Reference: Christer Ericson, "Real-Time Collision Detection", section 4.4.1.
func SeparatingAxisTest(a, b OBB, axes AxisSet) SATResult {
	rmA := a.orientation
	rmB := b.orientation

	// R[i][j] = A_i . B_j, the columns of B written in A's basis
	r := rmA.Transpose().Mul(rmB)
	var absR [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			absR[i][j] = math.Abs(r.At(i, j)) + parallelEpsilon
		}
	}

	tWorld := b.center.Sub(a.center)
	tVec := r3.Vector{X: tWorld.Dot(rmA.ColumnX()), Y: tWorld.Dot(rmA.ColumnY()), Z: tWorld.Dot(rmA.ColumnZ())}
	t := [3]float64{tVec.X, tVec.Y, tVec.Z}

	ea := [3]float64{a.extents.X, a.extents.Y, a.extents.Z}
	eb := [3]float64{b.extents.X, b.extents.Y, b.extents.Z}

	result := SATResult{Rotation: r, Translation: tVec}
	separated := func(axis SeparatingAxis) SATResult {
		result.SeparatingAxis = axis
		return result
	}

	// A's face normals
	for i := 0; i < 3; i++ {
		ra := ea[i]
		rb := eb[0]*absR[i][0] + eb[1]*absR[i][1] + eb[2]*absR[i][2]
		if math.Abs(t[i]) > ra+rb {
			return separated(AxisA0 + SeparatingAxis(i))
		}
	}

	// B's face normals
	for j := 0; j < 3; j++ {
		ra := ea[0]*absR[0][j] + ea[1]*absR[1][j] + ea[2]*absR[2][j]
		rb := eb[j]
		if math.Abs(t[0]*r.At(0, j)+t[1]*r.At(1, j)+t[2]*r.At(2, j)) > ra+rb {
			return separated(AxisB0 + SeparatingAxis(j))
		}
	}

	if axes == FaceAxes {
		result.Colliding = true
		return result
	}

	// A_i x B_j
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			ra := ea[i1]*absR[i2][j] + ea[i2]*absR[i1][j]
			rb := eb[j1]*absR[i][j2] + eb[j2]*absR[i][j1]
			if math.Abs(t[i2]*r.At(i1, j)-t[i1]*r.At(i2, j)) > ra+rb {
				return separated(AxisA0XB0 + SeparatingAxis(3*i+j))
			}
		}
	}

	result.Colliding = true
	return result
}
