package octree

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/octree/logging"
	"go.viam.com/octree/spatialmath"
)

// testItem is a cube of side 2*half centered on its index point.
type testItem struct {
	id     int
	center r3.Vector
	half   float64
}

func newTestItem(id int, x, y, z float64) *testItem {
	return &testItem{id: id, center: r3.Vector{X: x, Y: y, Z: z}, half: 1}
}

func (ti *testItem) Index() r3.Vector {
	return ti.center
}

func (ti *testItem) IsEqual(other *testItem) bool {
	return ti.id == other.id
}

func (ti *testItem) Bounds() spatialmath.AABB {
	half := r3.Vector{X: ti.half, Y: ti.half, Z: ti.half}
	return spatialmath.AABB{Min: ti.center.Sub(half), Max: ti.center.Add(half)}
}

func (ti *testItem) InFrustum(f *spatialmath.Frustum) bool {
	return f.ContainsAABB(ti.Bounds()) != spatialmath.Outside
}

func (ti *testItem) String() string {
	return fmt.Sprintf("item %d (%.1f, %.1f, %.1f)", ti.id, ti.center.X, ti.center.Y, ti.center.Z)
}

// pointItem has no Bounds, so pruning trees treat it as a point.
type pointItem struct {
	id int
	p  r3.Vector
}

func (pi pointItem) Index() r3.Vector                       { return pi.p }
func (pi pointItem) IsEqual(other pointItem) bool           { return pi.id == other.id }
func (pi pointItem) InFrustum(f *spatialmath.Frustum) bool { return f.ContainsPoint(pi.p) }

func createTree(t *testing.T, halfExtent float64, cfg *Config) *Tree[*testItem] {
	t.Helper()
	tree, err := New[*testItem](halfExtent, cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return tree
}

// randomItems returns n items with index points uniformly spread in [-spread, spread].
func randomItems(rng *rand.Rand, n int, spread float64) []*testItem {
	items := make([]*testItem, 0, n)
	for i := 0; i < n; i++ {
		item := newTestItem(i,
			(rng.Float64()*2-1)*spread,
			(rng.Float64()*2-1)*spread,
			(rng.Float64()*2-1)*spread,
		)
		item.half = rng.Float64() * 5
		items = append(items, item)
	}
	return items
}

func ids(items []*testItem) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.id)
	}
	sort.Ints(out)
	return out
}

// expectedVisible is the brute force culling result.
func expectedVisible(items []*testItem, f *spatialmath.Frustum) []int {
	var visible []*testItem
	for _, item := range items {
		if item.InFrustum(f) {
			visible = append(visible, item)
		}
	}
	return ids(visible)
}

// validateTree checks that every internal node's children exactly tile it and that every stored item lies in the
// volume of the node holding it.
func validateTree[I Item[I]](t *testing.T, tree *Tree[I]) {
	t.Helper()
	tree.root.walk(func(nd *node[I], _ int) bool {
		switch b := nd.body.(type) {
		case *internalBody[I]:
			union := b.children[0].volume
			childVolume := 0.0
			for i, child := range b.children {
				test.That(t, child, test.ShouldNotBeNil)
				test.That(t, nd.volume.Surrounds(child.volume), test.ShouldBeTrue)
				test.That(t, child.volume, test.ShouldResemble, nd.volume.Octants()[i])
				s := child.volume.Size()
				childVolume += s.X * s.Y * s.Z
				union = union.Union(child.volume)
			}
			s := nd.volume.Size()
			test.That(t, childVolume, test.ShouldAlmostEqual, s.X*s.Y*s.Z)
			test.That(t, union, test.ShouldResemble, nd.volume)
		case *leafBody[I]:
			test.That(t, nd.volume.ContainsPoint(b.item.Index()), test.ShouldBeTrue)
		case *minLeafBody[I]:
			test.That(t, len(b.items), test.ShouldBeGreaterThanOrEqualTo, 2)
			for _, item := range b.items {
				test.That(t, nd.volume.ContainsPoint(item.Index()), test.ShouldBeTrue)
			}
		}
		return true
	})
}
