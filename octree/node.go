package octree

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/octree/spatialmath"
)

// body is the state of a node. Exactly one of emptyBody, leafBody, minLeafBody or internalBody.
type body[I Item[I]] interface {
	nodeType() NodeType
}

type emptyBody[I Item[I]] struct{}

type leafBody[I Item[I]] struct {
	item I
}

type minLeafBody[I Item[I]] struct {
	items []I
}

type internalBody[I Item[I]] struct {
	children [8]*node[I]
}

func (emptyBody[I]) nodeType() NodeType     { return EmptyNode }
func (*leafBody[I]) nodeType() NodeType     { return LeafNode }
func (*minLeafBody[I]) nodeType() NodeType  { return MinLeafNode }
func (*internalBody[I]) nodeType() NodeType { return InternalNode }

// childContaining returns the first child whose volume contains p. Children share boundaries, so a point on a
// shared face belongs to the child with the lower index.
func (b *internalBody[I]) childContaining(p r3.Vector) *node[I] {
	for _, child := range b.children {
		if child.volume.ContainsPoint(p) {
			return child
		}
	}
	return nil
}

// node is a cell of the octree. extent starts out equal to volume and, when pruning is enabled, grows to cover
// the bounds of every item routed through the node.
type node[I Item[I]] struct {
	volume spatialmath.AABB
	extent spatialmath.AABB
	body   body[I]
}

func newEmptyNode[I Item[I]](volume spatialmath.AABB) *node[I] {
	return &node[I]{volume: volume, extent: volume, body: emptyBody[I]{}}
}

// subdivide turns a leaf into an internal node with eight empty children and returns the item the leaf held.
// Nodes in any other state are left untouched.
func (n *node[I]) subdivide() (I, bool) {
	leaf, ok := n.body.(*leafBody[I])
	if !ok {
		var zero I
		return zero, false
	}

	internal := &internalBody[I]{}
	for i, octant := range n.volume.Octants() {
		internal.children[i] = newEmptyNode[I](octant)
	}
	n.body = internal
	return leaf.item, true
}

// insert stores item in the subtree rooted at n. The index point is checked against n once. The descent uses an
// explicit stack rather than recursion so that deep trees do not grow the call stack.
func (n *node[I]) insert(item I, cfg *Config) error {
	p := item.Index()
	if !n.volume.ContainsPoint(p) {
		return ErrOutOfBounds
	}

	var path []*node[I]
	stack := []*node[I]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch b := cur.body.(type) {
		case *internalBody[I]:
			path = append(path, cur)
			child := b.childContaining(p)
			if child == nil {
				return errors.Wrapf(ErrCorruptTree, "no child of internal node %v contains %v", cur.volume, p)
			}
			stack = append(stack, child)

		case emptyBody[I]:
			cur.body = &leafBody[I]{item: item}
			widen(append(path, cur), item, cfg)
			return nil

		case *leafBody[I]:
			if b.item.IsEqual(item) {
				return ErrAlreadyPresent
			}
			if cur.volume.IsMin(cfg.MinSideLength) || !cur.volume.CanSplit() {
				cur.body = &minLeafBody[I]{items: []I{b.item, item}}
				widen(append(path, cur), item, cfg)
				return nil
			}
			existing, _ := cur.subdivide()
			if err := cur.place(existing, cfg); err != nil {
				return err
			}
			// The new item continues from the now internal node.
			stack = append(stack, cur)

		case *minLeafBody[I]:
			b.items = append(b.items, item)
			widen(append(path, cur), item, cfg)
			return nil

		default:
			return errors.Wrapf(ErrCorruptTree, "node %v has unexpected body %T", cur.volume, cur.body)
		}
	}
	return errors.Wrap(ErrCorruptTree, "insertion ended without reaching a leaf")
}

// place moves an item displaced by subdivide into the empty child that contains it.
func (n *node[I]) place(item I, cfg *Config) error {
	internal, ok := n.body.(*internalBody[I])
	if !ok {
		return errors.Wrapf(ErrCorruptTree, "cannot place item into %s node %v", n.body.nodeType(), n.volume)
	}
	child := internal.childContaining(item.Index())
	if child == nil {
		return errors.Wrapf(ErrCorruptTree, "no child of %v contains displaced item at %v", n.volume, item.Index())
	}
	child.body = &leafBody[I]{item: item}
	widen([]*node[I]{child}, item, cfg)
	return nil
}

// widen grows the extent of every node on path to cover the bounds of item. It is a no-op unless pruning is
// enabled and the item is Bounded.
func widen[I Item[I]](path []*node[I], item I, cfg *Config) {
	if !cfg.NodePruning {
		return
	}
	bounded, ok := any(item).(Bounded)
	if !ok {
		return
	}
	bounds := bounded.Bounds()
	for _, nd := range path {
		nd.extent = nd.extent.Union(bounds)
	}
}

// walk visits every node below and including n depth first. Children of a node are only visited if fn returns
// true for it.
func (n *node[I]) walk(fn func(nd *node[I], depth int) bool) {
	type visit struct {
		nd    *node[I]
		depth int
	}
	stack := []visit{{n, 0}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(v.nd, v.depth) {
			continue
		}
		if internal, ok := v.nd.body.(*internalBody[I]); ok {
			for _, child := range internal.children {
				stack = append(stack, visit{child, v.depth + 1})
			}
		}
	}
}

// collect appends the items stored directly in n that pass keep.
func (n *node[I]) collect(dst []I, keep func(I) bool) []I {
	switch b := n.body.(type) {
	case *leafBody[I]:
		if keep(b.item) {
			dst = append(dst, b.item)
		}
	case *minLeafBody[I]:
		for _, item := range b.items {
			if keep(item) {
				dst = append(dst, item)
			}
		}
	}
	return dst
}
