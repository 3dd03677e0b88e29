package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// MinimumAreaOBB returns the smallest-area rectangle, among those aligned with an edge of the
// polygon, that encloses every point. points are the polygon vertices in order; the closing edge
// from the last vertex back to the first is included. For a convex hull this is the exact minimum
// area enclosing rectangle.
//
// The result is flat: it lies in the XY plane with a zero Z extent, its local X axis runs along the
// winning edge and its local Y axis along that edge's left normal. Its cached rotation holds only
// the Z angle. Ties are won by the first edge visited, and zero-length edges are skipped.
func MinimumAreaOBB(points []r2.Point) (OBB, error) {
	n := len(points)
	if n < 2 {
		return OBB{}, newTooFewPointsError(2, n)
	}

	var (
		found     bool
		minArea   = math.Inf(1)
		bestE     r2.Point
		bestN     r2.Point
		bestCtr   r2.Point
		bestSizeE float64
		bestSizeN float64
	)

	// edge from points[j] to points[i], starting with the closing edge
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		edge := points[i].Sub(points[j])
		if edge.Norm() == 0 {
			continue
		}
		e := edge.Normalize()
		eNormal := e.Ortho()

		var minE, maxE, minN, maxN float64
		for k, p := range points {
			d := p.Sub(points[j])
			pe, pn := d.Dot(e), d.Dot(eNormal)
			if k == 0 {
				minE, maxE, minN, maxN = pe, pe, pn, pn
				continue
			}
			minE, maxE = math.Min(minE, pe), math.Max(maxE, pe)
			minN, maxN = math.Min(minN, pn), math.Max(maxN, pn)
		}

		area := (maxE - minE) * (maxN - minN)
		if area < minArea {
			found = true
			minArea = area
			bestE, bestN = e, eNormal
			bestSizeE, bestSizeN = maxE-minE, maxN-minN
			bestCtr = points[j].Add(e.Mul(0.5 * (minE + maxE))).Add(eNormal.Mul(0.5 * (minN + maxN)))
		}
	}
	if !found {
		return OBB{}, ErrDegeneratePolygon
	}

	orientation := NewMatrix3x3FromColumns(
		r3.Vector{X: bestE.X, Y: bestE.Y},
		r3.Vector{X: bestN.X, Y: bestN.Y},
		r3.Vector{Z: 1},
	)
	return NewOBBWithRotation(
		r3.Vector{X: bestCtr.X, Y: bestCtr.Y},
		r3.Vector{X: bestSizeE / 2, Y: bestSizeN / 2},
		orientation,
		r3.Vector{Z: ZAngleDegrees(orientation)},
	), nil
}

// MinimumAreaOBBFromPoints drops the Z coordinate of every point and runs MinimumAreaOBB on the
// resulting XY polygon.
func MinimumAreaOBBFromPoints(points []r3.Vector) (OBB, error) {
	return MinimumAreaOBB(ProjectXY(points))
}

// ProjectXY projects points onto the XY plane.
func ProjectXY(points []r3.Vector) []r2.Point {
	out := make([]r2.Point, 0, len(points))
	for _, p := range points {
		out = append(out, r2.Point{X: p.X, Y: p.Y})
	}
	return out
}
