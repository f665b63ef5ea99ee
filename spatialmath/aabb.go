// Package spatialmath defines the axis-aligned bounding volumes, planes and view frustums used to
// route and cull items stored in an octree.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/octree/utils"
)

// AABB is an axis-aligned bounding box described by its minimum and maximum corner points. Every component
// of Min is less than or equal to the corresponding component of Max.
type AABB struct {
	Min r3.Vector
	Max r3.Vector
}

// NewAABB returns the box spanning min to max, or an error if min exceeds max on any axis.
func NewAABB(minPt, maxPt r3.Vector) (AABB, error) {
	if minPt.X > maxPt.X || minPt.Y > maxPt.Y || minPt.Z > maxPt.Z {
		return AABB{}, newBadAABBError(minPt, maxPt)
	}
	return AABB{Min: minPt, Max: maxPt}, nil
}

// NewCube returns the cube centered at the origin spanning [-halfExtent, halfExtent] on every axis.
func NewCube(halfExtent float64) AABB {
	return AABB{
		Min: r3.Vector{X: -halfExtent, Y: -halfExtent, Z: -halfExtent},
		Max: r3.Vector{X: halfExtent, Y: halfExtent, Z: halfExtent},
	}
}

// NewAABBAround returns the box centered at center with the given full dimensions.
func NewAABBAround(center, dims r3.Vector) (AABB, error) {
	half := dims.Mul(0.5)
	return NewAABB(center.Sub(half), center.Add(half))
}

// ContainsPoint returns true if p lies inside the box or on its boundary.
func (b AABB) ContainsPoint(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Surrounds returns true if the box fully contains other on all three axes.
func (b AABB) Surrounds(other AABB) bool {
	return b.Min.X <= other.Min.X && b.Max.X >= other.Max.X &&
		b.Min.Y <= other.Min.Y && b.Max.Y >= other.Max.Y &&
		b.Min.Z <= other.Min.Z && b.Max.Z >= other.Max.Z
}

// Overlaps returns true if the two boxes share at least one point.
func (b AABB) Overlaps(other AABB) bool {
	return b.Max.X >= other.Min.X && b.Min.X <= other.Max.X &&
		b.Max.Y >= other.Min.Y && b.Min.Y <= other.Max.Y &&
		b.Max.Z >= other.Min.Z && b.Min.Z <= other.Max.Z
}

// IsMin returns true once the side length of the box along X is at or below threshold. Octree nodes use this
// to stop subdividing.
func (b AABB) IsMin(threshold float64) bool {
	return b.Max.X-b.Min.X <= threshold
}

// CanSplit returns true if splitting the box at its center makes the X side of every octant strictly smaller.
// It is false once the side is so close to float64 spacing that the center rounds onto a bound.
func (b AABB) CanSplit() bool {
	mid := b.Center()
	return mid.X > b.Min.X && mid.X < b.Max.X
}

// Center returns the geometric center of the box.
func (b AABB) Center() r3.Vector {
	return b.Min.Add(b.Max.Sub(b.Min).Mul(0.5))
}

// Size returns the full dimensions of the box.
func (b AABB) Size() r3.Vector {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest box containing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: r3.Vector{X: math.Min(b.Min.X, other.Min.X), Y: math.Min(b.Min.Y, other.Min.Y), Z: math.Min(b.Min.Z, other.Min.Z)},
		Max: r3.Vector{X: math.Max(b.Max.X, other.Max.X), Y: math.Max(b.Max.Y, other.Max.Y), Z: math.Max(b.Max.Z, other.Max.Z)},
	}
}

// Translate returns the box moved by offset.
func (b AABB) Translate(offset r3.Vector) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Scale returns the box scaled by factor about its center.
func (b AABB) Scale(factor float64) AABB {
	center := b.Center()
	half := b.Size().Mul(0.5 * factor)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Corners returns the eight vertices of the box. Bit 0 of the index selects Max.X, bit 1 Max.Y and bit 2 Max.Z.
func (b AABB) Corners() [8]r3.Vector {
	var corners [8]r3.Vector
	for i := range corners {
		corners[i] = b.corner(i)
	}
	return corners
}

func (b AABB) corner(i int) r3.Vector {
	c := b.Min
	if i&1 != 0 {
		c.X = b.Max.X
	}
	if i&2 != 0 {
		c.Y = b.Max.Y
	}
	if i&4 != 0 {
		c.Z = b.Max.Z
	}
	return c
}

// Octants splits the box at its center into eight sub-boxes that tile it with shared boundaries. The index of
// each octant uses the same bit layout as Corners: bit 0 set means the upper half along X, bit 1 along Y,
// bit 2 along Z.
func (b AABB) Octants() [8]AABB {
	mid := b.Center()
	var octants [8]AABB
	for i := range octants {
		o := AABB{Min: b.Min, Max: mid}
		if i&1 != 0 {
			o.Min.X, o.Max.X = mid.X, b.Max.X
		}
		if i&2 != 0 {
			o.Min.Y, o.Max.Y = mid.Y, b.Max.Y
		}
		if i&4 != 0 {
			o.Min.Z, o.Max.Z = mid.Z, b.Max.Z
		}
		octants[i] = o
	}
	return octants
}

// AlmostEqual returns true if both corners of the boxes are within epsilon of each other on every axis.
func (b AABB) AlmostEqual(other AABB, epsilon float64) bool {
	return vectorAlmostEqual(b.Min, other.Min, epsilon) && vectorAlmostEqual(b.Max, other.Max, epsilon)
}

// String returns a human readable string that represents the box.
func (b AABB) String() string {
	return fmt.Sprintf("[(%.2f, %.2f, %.2f) .. (%.2f, %.2f, %.2f)]",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

func vectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}

func newBadAABBError(minPt, maxPt r3.Vector) error {
	return errors.Errorf("invalid bounding box with min %v greater than max %v", minPt, maxPt)
}
