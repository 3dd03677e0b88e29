package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func unitBox(center r3.Vector) OBB {
	return NewOBB(center, r3.Vector{X: 1, Y: 1, Z: 1})
}

func TestSATAxisAligned(t *testing.T) {
	a := unitBox(r3.Vector{})

	res := SeparatingAxisTest(a, unitBox(r3.Vector{X: 3}), AllAxes)
	test.That(t, res.Colliding, test.ShouldBeFalse)
	test.That(t, res.SeparatingAxis, test.ShouldEqual, AxisA0)
	test.That(t, res.Translation, test.ShouldResemble, r3.Vector{X: 3})

	res = SeparatingAxisTest(a, unitBox(r3.Vector{X: 1}), AllAxes)
	test.That(t, res.Colliding, test.ShouldBeTrue)
	test.That(t, res.SeparatingAxis, test.ShouldEqual, NoSeparatingAxis)

	// faces in contact count as a collision
	test.That(t, Intersects(a, unitBox(r3.Vector{X: 2})), test.ShouldBeTrue)
	test.That(t, Intersects(a, unitBox(r3.Vector{Z: -2.001})), test.ShouldBeFalse)
	test.That(t, a.CollidesWith(unitBox(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5})), test.ShouldBeTrue)
}

func TestSATGapTolerance(t *testing.T) {
	for _, tc := range []struct {
		name      string
		extent    float64
		gap       float64
		colliding bool
	}{
		{"unit boxes under tolerance", 1, 1e-11, true},
		{"unit boxes over tolerance", 1, 1e-9, false},
		{"large boxes under tolerance", 1e6, 1e-4, true},
		{"large boxes over tolerance", 1e6, 1e-3, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			extents := r3.Vector{X: tc.extent, Y: tc.extent, Z: tc.extent}
			a := NewOBB(r3.Vector{}, extents)
			b := NewOBB(r3.Vector{X: 2*tc.extent + tc.gap}, extents)
			test.That(t, Intersects(a, b), test.ShouldEqual, tc.colliding)
			test.That(t, Intersects(b, a), test.ShouldEqual, tc.colliding)
		})
	}
}

func TestSATRotated(t *testing.T) {
	a := unitBox(r3.Vector{})
	b := unitBox(r3.Vector{X: 2.3})
	test.That(t, Intersects(a, b), test.ShouldBeFalse)

	// turning b by 45 degrees brings its edge to x = 2.3 - sqrt(2)
	b.SetRotation(r3.Vector{Z: 45})
	test.That(t, Intersects(a, b), test.ShouldBeTrue)

	res := SeparatingAxisTest(a, b, AllAxes)
	test.That(t, res.Rotation.AlmostEqual(RotateZ(45), 1e-12), test.ShouldBeTrue)

	b.SetCenter(r3.Vector{X: 1 + math.Sqrt2 + 0.01})
	res = SeparatingAxisTest(a, b, AllAxes)
	test.That(t, res.Colliding, test.ShouldBeFalse)
	test.That(t, res.SeparatingAxis, test.ShouldEqual, AxisA0)

	// translation is reported in the first box frame
	a.SetRotation(r3.Vector{Z: 90})
	res = SeparatingAxisTest(a, unitBox(r3.Vector{X: 5}), AllAxes)
	test.That(t, res.Translation.X, test.ShouldAlmostEqual, 0)
	test.That(t, res.Translation.Y, test.ShouldAlmostEqual, -5)
	test.That(t, res.SeparatingAxis, test.ShouldEqual, AxisA1)
}

func TestSATEdgeEdge(t *testing.T) {
	// a vertical edge of a and a horizontal edge of b face each other across a small gap that no
	// face normal can see
	a := unitBox(r3.Vector{})
	a.SetRotation(r3.Vector{Z: 45})
	b := unitBox(r3.Vector{X: 2*math.Sqrt2 + 0.01})
	b.SetRotation(r3.Vector{Y: 45})

	full := SeparatingAxisTest(a, b, AllAxes)
	test.That(t, full.Colliding, test.ShouldBeFalse)
	test.That(t, full.SeparatingAxis, test.ShouldEqual, AxisA2XB1)
	test.That(t, full.SeparatingAxis.String(), test.ShouldEqual, "A2xB1")

	faces := SeparatingAxisTest(a, b, FaceAxes)
	test.That(t, faces.Colliding, test.ShouldBeTrue)

	test.That(t, Intersects(b, a), test.ShouldBeFalse)

	b.SetCenter(r3.Vector{X: 2*math.Sqrt2 - 0.01})
	test.That(t, Intersects(a, b), test.ShouldBeTrue)
	test.That(t, Intersects(b, a), test.ShouldBeTrue)
}

func TestSATParallelEdges(t *testing.T) {
	// identical orientations make every edge cross product degenerate
	deg := r3.Vector{X: 10, Y: 20, Z: 30}
	a := NewOBB(r3.Vector{}, r3.Vector{X: 1, Y: 2, Z: 3})
	a.SetRotation(deg)
	b := NewOBB(Rotate(deg).MulVec(r3.Vector{X: 1.6, Y: 1, Z: -1}), r3.Vector{X: 0.5, Y: 1.5, Z: 2.5})
	b.SetRotation(deg)
	res := SeparatingAxisTest(a, b, AllAxes)
	test.That(t, res.Colliding, test.ShouldBeFalse)
	test.That(t, res.SeparatingAxis, test.ShouldEqual, AxisA0)

	b.SetCenter(Rotate(deg).MulVec(r3.Vector{X: 1.4, Y: 1, Z: -1}))
	test.That(t, Intersects(a, b), test.ShouldBeTrue)
	test.That(t, Intersects(b, a), test.ShouldBeTrue)
}

// worldFrameOverlap runs the fifteen axis tests directly in world space by projecting both boxes
// onto every candidate plane normal.
// reference: https://gamedev.stackexchange.com/questions/112883/simple-3d-obb-collision-directx9-c
func worldFrameOverlap(a, b OBB) bool {
	positionDelta := a.Center().Sub(b.Center())
	aAxes := [3]r3.Vector{a.Orientation().ColumnX(), a.Orientation().ColumnY(), a.Orientation().ColumnZ()}
	bAxes := [3]r3.Vector{b.Orientation().ColumnX(), b.Orientation().ColumnY(), b.Orientation().ColumnZ()}
	aHalf := [3]float64{a.Extents().X, a.Extents().Y, a.Extents().Z}
	bHalf := [3]float64{b.Extents().X, b.Extents().Y, b.Extents().Z}

	planes := append(aAxes[:], bAxes[:]...)
	for _, ax := range aAxes {
		for _, bx := range bAxes {
			planes = append(planes, ax.Cross(bx))
		}
	}
	for _, plane := range planes {
		var radius float64
		for i := 0; i < 3; i++ {
			radius += math.Abs(aAxes[i].Mul(aHalf[i]).Dot(plane)) + math.Abs(bAxes[i].Mul(bHalf[i]).Dot(plane))
		}
		if math.Abs(positionDelta.Dot(plane)) > radius {
			return false
		}
	}
	return true
}

func TestSATSymmetry(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	randomBox := func() OBB {
		b := NewOBB(
			r3.Vector{X: rnd.Float64()*6 - 3, Y: rnd.Float64()*6 - 3, Z: rnd.Float64()*6 - 3},
			r3.Vector{X: 0.1 + rnd.Float64()*2, Y: 0.1 + rnd.Float64()*2, Z: 0.1 + rnd.Float64()*2},
		)
		b.SetRotation(r3.Vector{X: rnd.Float64()*360 - 180, Y: rnd.Float64()*360 - 180, Z: rnd.Float64()*360 - 180})
		return b
	}

	var colliding int
	for i := 0; i < 2000; i++ {
		a, b := randomBox(), randomBox()
		ab := Intersects(a, b)
		test.That(t, Intersects(b, a), test.ShouldEqual, ab)
		test.That(t, worldFrameOverlap(a, b), test.ShouldEqual, ab)

		// any corner of one box inside the other forces a collision
		for _, c := range b.Corners() {
			if a.ContainsPoint(c, 0) {
				test.That(t, ab, test.ShouldBeTrue)
			}
		}
		// so does any box containing the other's center
		if a.ContainsPoint(b.Center(), 0) {
			test.That(t, ab, test.ShouldBeTrue)
		}
		// face-only testing can only over-report
		if ab {
			test.That(t, SeparatingAxisTest(a, b, FaceAxes).Colliding, test.ShouldBeTrue)
			colliding++
		}
	}
	test.That(t, colliding, test.ShouldBeGreaterThan, 0)
	test.That(t, colliding, test.ShouldBeLessThan, 2000)
}

func TestSeparatingAxisString(t *testing.T) {
	test.That(t, NoSeparatingAxis.String(), test.ShouldEqual, "none")
	test.That(t, AxisA1.String(), test.ShouldEqual, "A1")
	test.That(t, AxisB2.String(), test.ShouldEqual, "B2")
	test.That(t, AxisA0XB0.String(), test.ShouldEqual, "A0xB0")
	test.That(t, AxisA1XB2.String(), test.ShouldEqual, "A1xB2")
}
