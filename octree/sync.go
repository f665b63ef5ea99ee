package octree

import (
	"io"
	"sync"

	"go.viam.com/octree/spatialmath"
)

// SyncTree guards a Tree with a single writer, multiple reader lock so that culling may run from several
// goroutines while insertions are serialized.
type SyncTree[I Item[I]] struct {
	mu   sync.RWMutex
	tree *Tree[I]
}

// NewSyncTree wraps tree. The caller must not use tree directly afterwards.
func NewSyncTree[I Item[I]](tree *Tree[I]) *SyncTree[I] {
	return &SyncTree[I]{tree: tree}
}

// Add inserts item under the write lock. See Tree.Add.
func (st *SyncTree[I]) Add(item I) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.tree.Add(item)
}

// Insert inserts item under the write lock and returns whether it was stored.
func (st *SyncTree[I]) Insert(item I) bool {
	return st.Add(item) == nil
}

// Members returns the number of stored items.
func (st *SyncTree[I]) Members() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.tree.Members()
}

// FrustumCulling runs Tree.FrustumCulling under the read lock.
func (st *SyncTree[I]) FrustumCulling(f *spatialmath.Frustum) []I {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.tree.FrustumCulling(f)
}

// CullingWithCapacity runs Tree.CullingWithCapacity under the read lock.
func (st *SyncTree[I]) CullingWithCapacity(f *spatialmath.Frustum, capacity int) []I {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.tree.CullingWithCapacity(f, capacity)
}

// InVolume runs Tree.InVolume under the read lock.
func (st *SyncTree[I]) InVolume(vol spatialmath.AABB) []I {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.tree.InVolume(vol)
}

// Stats runs Tree.Stats under the read lock.
func (st *SyncTree[I]) Stats() Stats {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.tree.Stats()
}

// WriteVolumeByLevel runs Tree.WriteVolumeByLevel under the read lock.
func (st *SyncTree[I]) WriteVolumeByLevel(w io.Writer) error {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.tree.WriteVolumeByLevel(w)
}
