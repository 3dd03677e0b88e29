package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/obb/utils"
)

// orthonormalTolerance is the slack used when Validate checks an orientation matrix.
const orthonormalTolerance = 1e-6

// Corner names one of the eight vertices of an OBB by the signs of its local coordinates.
// "Top" and "Bottom" refer to +Y and -Y, "Left" and "Right" to +Z and -Z, and the trailing
// "Top"/"Bottom" of the edge to +X and -X.
type Corner int

// The eight corners, in the same order as Corners returns them.
const (
	TopEdgeTopLeft        Corner = iota // (+x, +y, +z)
	TopEdgeTopRight                     // (+x, +y, -z)
	BottomEdgeTopLeft                   // (+x, -y, +z)
	BottomEdgeTopRight                  // (+x, -y, -z)
	TopEdgeBottomLeft                   // (-x, +y, +z)
	TopEdgeBottomRight                  // (-x, +y, -z)
	BottomEdgeBottomLeft                // (-x, -y, +z)
	BottomEdgeBottomRight               // (-x, -y, -z)
)

var cornerNames = [8]string{
	"TopEdgeTopLeft",
	"TopEdgeTopRight",
	"BottomEdgeTopLeft",
	"BottomEdgeTopRight",
	"TopEdgeBottomLeft",
	"TopEdgeBottomRight",
	"BottomEdgeBottomLeft",
	"BottomEdgeBottomRight",
}

func (c Corner) String() string {
	if c < 0 || int(c) >= len(cornerNames) {
		return fmt.Sprintf("Corner(%d)", int(c))
	}
	return cornerNames[c]
}

// Sign multipliers of the box vertices, indexed by Corner.
var cornerSigns = [8]r3.Vector{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// OBB is an oriented bounding box: a center, three non-negative half-widths along the box's local
// axes, and an orientation matrix whose columns are those local axes in world coordinates.
// Corners and axis tips are derived on every call and never stored.
//
// The cached Euler angles (degrees) are only written together with the orientation, so the
// two can never disagree. The orientation remains the source of truth for all geometry.
type OBB struct {
	center      r3.Vector
	extents     r3.Vector
	orientation Matrix3x3
	rotation    r3.Vector
}

// NewOBB creates an axis-aligned box.
func NewOBB(center, extents r3.Vector) OBB {
	return OBB{
		center:      center,
		extents:     extents,
		orientation: IdentityMatrix(),
	}
}

// NewOBBWithOrientation creates a box with an explicit orientation. The cached Euler angles are
// derived from the orientation.
func NewOBBWithOrientation(center, extents r3.Vector, orientation Matrix3x3) OBB {
	return OBB{
		center:      center,
		extents:     extents,
		orientation: orientation,
		rotation:    EulerAnglesDegrees(orientation),
	}
}

// NewOBBWithRotation creates a box with an explicit orientation and the Euler angles (degrees)
// that produced it. The caller is responsible for the two agreeing.
func NewOBBWithRotation(center, extents r3.Vector, orientation Matrix3x3, rotation r3.Vector) OBB {
	return OBB{
		center:      center,
		extents:     extents,
		orientation: orientation,
		rotation:    rotation,
	}
}

// Center returns the world position of the box center.
func (b OBB) Center() r3.Vector {
	return b.center
}

// Extents returns the half-widths of the box along its local axes.
func (b OBB) Extents() r3.Vector {
	return b.extents
}

// Orientation returns the orientation matrix.
func (b OBB) Orientation() Matrix3x3 {
	return b.orientation
}

// Rotation returns the cached Euler angles in degrees.
func (b OBB) Rotation() r3.Vector {
	return b.rotation
}

// SetCenter moves the box.
func (b *OBB) SetCenter(center r3.Vector) {
	b.center = center
}

// SetExtents resizes the box.
func (b *OBB) SetExtents(extents r3.Vector) {
	b.extents = extents
}

// SetRotation replaces the orientation with Identity * Rotate(degrees). Edits are not composed:
// each call rebuilds the whole matrix from the full angle triple.
func (b *OBB) SetRotation(degrees r3.Vector) {
	b.orientation = IdentityMatrix().Mul(Rotate(degrees))
	b.rotation = degrees
}

// SetOrientation replaces the orientation matrix and re-derives the cached Euler angles from it.
func (b *OBB) SetOrientation(orientation Matrix3x3) {
	b.orientation = orientation
	b.rotation = EulerAnglesDegrees(orientation)
}

// AxisX returns the tip of the local X half-axis, center + extents.X * orientation.ColumnX.
func (b OBB) AxisX() r3.Vector {
	return b.center.Add(b.orientation.ColumnX().Mul(b.extents.X))
}

// AxisY returns the tip of the local Y half-axis.
func (b OBB) AxisY() r3.Vector {
	return b.center.Add(b.orientation.ColumnY().Mul(b.extents.Y))
}

// AxisZ returns the tip of the local Z half-axis.
func (b OBB) AxisZ() r3.Vector {
	return b.center.Add(b.orientation.ColumnZ().Mul(b.extents.Z))
}

// Corner returns the world position of a single vertex. The signed half-extent vector is rotated
// about the world origin and only then translated to the center, so no pivot correction is needed.
func (b OBB) Corner(c Corner) r3.Vector {
	s := cornerSigns[c]
	local := r3.Vector{X: s.X * b.extents.X, Y: s.Y * b.extents.Y, Z: s.Z * b.extents.Z}
	return b.orientation.MulVec(local).Add(b.center)
}

// Corners returns all eight vertices, ordered as the Corner constants.
func (b OBB) Corners() [8]r3.Vector {
	var out [8]r3.Vector
	for i := range cornerSigns {
		out[i] = b.Corner(Corner(i))
	}
	return out
}

// AABB returns the world axis-aligned bounds of the box.
func (b OBB) AABB() AABB {
	corners := b.Corners()
	bounds := AABB{Min: corners[0], Max: corners[0]}
	for _, c := range corners[1:] {
		bounds.Min = r3.Vector{X: math.Min(bounds.Min.X, c.X), Y: math.Min(bounds.Min.Y, c.Y), Z: math.Min(bounds.Min.Z, c.Z)}
		bounds.Max = r3.Vector{X: math.Max(bounds.Max.X, c.X), Y: math.Max(bounds.Max.Y, c.Y), Z: math.Max(bounds.Max.Z, c.Z)}
	}
	return bounds
}

// toLocal expresses a world point in the box frame, relative to the center.
func (b OBB) toLocal(pt r3.Vector) r3.Vector {
	return b.orientation.Transpose().MulVec(pt.Sub(b.center))
}

// ClosestPoint returns the point of the box (surface or interior) closest to pt.
// Reference: https://github.com/gszauer/GamePhysicsCookbook/blob/a0b8ee0c39fed6d4b90bb6d2195004dfcf5a1115/Code/Geometry3D.cpp#L165
func (b OBB) ClosestPoint(pt r3.Vector) r3.Vector {
	result := b.center
	direction := pt.Sub(result)
	halfSize := [3]float64{b.extents.X, b.extents.Y, b.extents.Z}
	for i := 0; i < 3; i++ {
		axis := b.orientation.Column(i)
		distance := utils.Clamp(direction.Dot(axis), -halfSize[i], halfSize[i])
		result = result.Add(axis.Mul(distance))
	}
	return result
}

// ContainsPoint reports whether pt lies inside or on the box, within epsilon.
func (b OBB) ContainsPoint(pt r3.Vector, epsilon float64) bool {
	local := b.toLocal(pt)
	return math.Abs(local.X) <= b.extents.X+epsilon &&
		math.Abs(local.Y) <= b.extents.Y+epsilon &&
		math.Abs(local.Z) <= b.extents.Z+epsilon
}

// Volume returns the volume enclosed by the box.
func (b OBB) Volume() float64 {
	return 8 * b.extents.X * b.extents.Y * b.extents.Z
}

// Validate reports boxes that break the geometric assumptions: negative extents or a
// non-orthonormal orientation.
func (b OBB) Validate() error {
	if b.extents.X < 0 || b.extents.Y < 0 || b.extents.Z < 0 {
		return newBadExtentsError(b.extents)
	}
	if !b.orientation.IsOrthonormal(orthonormalTolerance) {
		return newNonOrthonormalError(b.orientation)
	}
	return nil
}

// String returns a human readable string that represents the box.
func (b OBB) String() string {
	return fmt.Sprintf("Type: OBB | Center: X:%.2f, Y:%.2f, Z:%.2f | Extents: X:%.2f, Y:%.2f, Z:%.2f | Rotation: X:%.1f, Y:%.1f, Z:%.1f",
		b.center.X, b.center.Y, b.center.Z,
		b.extents.X, b.extents.Y, b.extents.Z,
		b.rotation.X, b.rotation.Y, b.rotation.Z)
}
