// Package octree implements an insert-only octree of bounded items for view frustum culling. Items are routed by
// a single index point, and the tree answers which stored items are not entirely outside a frustum.
package octree

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/octree/spatialmath"
)

// Each node in the octree is either an internal node which links to eight children, an empty leaf with no
// items, a leaf holding exactly one item, or a minimum sized leaf holding every item that could not be
// separated by further subdivision.
const (
	InternalNode = NodeType(iota)
	EmptyNode
	LeafNode
	MinLeafNode
)

// NodeType represents the possible types of nodes in an octree.
type NodeType uint8

func (nt NodeType) String() string {
	switch nt {
	case InternalNode:
		return "Internal"
	case EmptyNode:
		return "Empty"
	case LeafNode:
		return "Leaf"
	case MinLeafNode:
		return "MinLeaf"
	default:
		return "Unknown"
	}
}

// Item is a value that can be stored in an octree. T is the concrete stored type, usually a pointer.
type Item[T any] interface {
	// Index is the point used to route the item to a node during insertion.
	Index() r3.Vector
	// IsEqual reports whether other is the same item. A new item equal to the occupant of a single item leaf
	// is not stored.
	IsEqual(other T) bool
	// InFrustum returns false only if the item is determined to be entirely outside f.
	InFrustum(f *spatialmath.Frustum) bool
}

// Bounded items report the volume they occupy. Trees with node pruning enabled use it to widen the extents of
// the nodes an item is routed through.
type Bounded interface {
	Bounds() spatialmath.AABB
}

var (
	// ErrOutOfBounds is returned when an item's index point lies outside the root volume of the tree.
	ErrOutOfBounds = errors.New("item index is outside the bounds of this octree")
	// ErrAlreadyPresent is returned when an item is equal to the item already stored at its leaf.
	ErrAlreadyPresent = errors.New("item is already present in this octree")
	// ErrCorruptTree is returned when insertion finds a node that violates the structure of the tree.
	ErrCorruptTree = errors.New("invalid node detected, please check your tree")
)
