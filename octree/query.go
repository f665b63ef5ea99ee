package octree

import (
	"go.viam.com/octree/spatialmath"
)

// FrustumCulling returns every stored item whose InFrustum test passes for f. The result order is
// unspecified.
func (t *Tree[I]) FrustumCulling(f *spatialmath.Frustum) []I {
	return t.cull(f, nil)
}

// CullingWithCapacity is FrustumCulling with the result pre-sized to hold capacity items. The capacity only
// affects allocation, never the result.
func (t *Tree[I]) CullingWithCapacity(f *spatialmath.Frustum, capacity int) []I {
	if capacity < 0 {
		capacity = 0
	}
	return t.cull(f, make([]I, 0, capacity))
}

func (t *Tree[I]) cull(f *spatialmath.Frustum, visible []I) []I {
	inFrustum := func(item I) bool { return item.InFrustum(f) }
	prune := t.cfg.NodePruning
	t.root.walk(func(nd *node[I], _ int) bool {
		if prune && f.ContainsAABB(nd.extent) == spatialmath.Outside {
			return false
		}
		visible = nd.collect(visible, inFrustum)
		return true
	})
	return visible
}

// InVolume returns the items stored in nodes whose volume is fully surrounded by vol. Items in nodes that only
// partially overlap vol are not returned, which makes this a coarse region query.
func (t *Tree[I]) InVolume(vol spatialmath.AABB) []I {
	var items []I
	all := func(I) bool { return true }
	t.root.walk(func(nd *node[I], _ int) bool {
		if vol.Surrounds(nd.volume) {
			items = nd.collect(items, all)
		}
		return true
	})
	return items
}
