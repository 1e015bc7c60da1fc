package models

import (
	"math"
	"sort"
)

// Point is a landmark in image-space coordinates
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between two points
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// PointSet is the ordered landmark sequence of one image. Index 0 and 1 are
// the primary landmarks.
type PointSet []Point

// Clone returns an independent copy of the set
func (ps PointSet) Clone() PointSet {
	if ps == nil {
		return nil
	}
	out := make(PointSet, len(ps))
	copy(out, ps)
	return out
}

// Remove returns the set without the point at index i
func (ps PointSet) Remove(i int) PointSet {
	if i < 0 || i >= len(ps) {
		return ps
	}
	return append(ps[:i], ps[i+1:]...)
}

// Equal reports whether both sets hold the same points in the same order
func (ps PointSet) Equal(o PointSet) bool {
	if len(ps) != len(o) {
		return false
	}
	for i := range ps {
		if ps[i] != o[i] {
			return false
		}
	}
	return true
}

// ReorderFaceLandmarks canonicalizes a three point face annotation into
// right eye, left eye, mouth order: points are sorted top to bottom, then the
// two topmost are ordered left to right. Sets of any other length are left
// alone. Reports whether the order changed.
func ReorderFaceLandmarks(ps PointSet) bool {
	if len(ps) != 3 {
		return false
	}

	before := ps.Clone()

	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].Y < ps[j].Y
	})
	if ps[0].X > ps[1].X {
		ps[0], ps[1] = ps[1], ps[0]
	}

	return !ps.Equal(before)
}
