package spatialmath

import "github.com/golang/geo/r3"

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min r3.Vector
	Max r3.Vector
}

// ContainsPoint checks if a point is inside the AABB.
func (a AABB) ContainsPoint(point r3.Vector) bool {
	return point.X >= a.Min.X && point.X <= a.Max.X &&
		point.Y >= a.Min.Y && point.Y <= a.Max.Y &&
		point.Z >= a.Min.Z && point.Z <= a.Max.Z
}

// Overlaps checks if two AABBs overlap. Touching faces count as overlapping.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X >= other.Min.X && a.Min.X <= other.Max.X &&
		a.Max.Y >= other.Min.Y && a.Min.Y <= other.Max.Y &&
		a.Max.Z >= other.Min.Z && a.Min.Z <= other.Max.Z
}
