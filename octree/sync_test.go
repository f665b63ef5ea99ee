package octree

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"go.viam.com/test"

	"go.viam.com/octree/spatialmath"
)

func TestSyncTreeConcurrentAccess(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	items := randomItems(rng, 800, 90)
	st := NewSyncTree(createTree(t, 100, &Config{MinSideLength: 2, NodePruning: true}))

	f := spatialmath.NewBoxFrustum(spatialmath.NewCube(40))

	var wg sync.WaitGroup
	var addErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, item := range items {
			if err := st.Add(item); err != nil {
				addErr = err
				return
			}
		}
	}()
	overCounted := make([]int, 4)
	for i := range overCounted {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				visible := st.CullingWithCapacity(f, 64)
				// Members is read after culling and only grows, so it bounds the visible count.
				if len(visible) > st.Members() {
					overCounted[i]++
				}
				st.Stats()
			}
		}()
	}
	wg.Wait()

	test.That(t, addErr, test.ShouldBeNil)
	test.That(t, overCounted, test.ShouldResemble, []int{0, 0, 0, 0})

	test.That(t, st.Members(), test.ShouldEqual, len(items))
	test.That(t, st.Insert(newTestItem(-1, 0, 0, 101)), test.ShouldBeFalse)
	test.That(t, ids(st.FrustumCulling(f)), test.ShouldResemble, expectedVisible(items, f))
	test.That(t, len(st.InVolume(spatialmath.NewCube(100))), test.ShouldEqual, len(items))
	test.That(t, st.Stats().LeafItems+st.Stats().MinLeafItems, test.ShouldEqual, len(items))

	var buf bytes.Buffer
	test.That(t, st.WriteVolumeByLevel(&buf), test.ShouldBeNil)
	test.That(t, buf.Len(), test.ShouldBeGreaterThan, 0)
}
