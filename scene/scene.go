package scene

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/octree/camera"
	"go.viam.com/octree/logging"
	"go.viam.com/octree/octree"
)

// MaxInstanceScale bounds the random scale of instances created by Space.
const MaxInstanceScale = 1.05

// Scene is a set of instances, the camera they are viewed through and an optional octree indexing them.
type Scene struct {
	Instances []*Instance
	Camera    *camera.Camera
	Tree      *octree.Tree[*Instance]

	logger logging.Logger
}

// New creates a scene holding instances. The scene has no index until BuildIndex is called.
func New(instances []*Instance, cam *camera.Camera, logger logging.Logger) *Scene {
	if logger == nil {
		logger = logging.Global()
	}
	return &Scene{
		Instances: instances,
		Camera:    cam,
		logger:    logger.Sublogger("scene"),
	}
}

// Space scatters count instances of base uniformly over [-spread, spread] on every axis, each with a random
// scale in [0, MaxInstanceScale).
func Space(rng *rand.Rand, base Asset, count int, spread float64) []*Instance {
	instances := make([]*Instance, 0, count)
	for i := 0; i < count; i++ {
		position := r3.Vector{
			X: (rng.Float64()*2 - 1) * spread,
			Y: (rng.Float64()*2 - 1) * spread,
			Z: (rng.Float64()*2 - 1) * spread,
		}
		instances = append(instances, NewInstance(base, rng.Float64()*MaxInstanceScale, position))
	}
	return instances
}

// BuildIndex replaces the scene's tree with a new one spanning [-halfExtent, halfExtent] and inserts every
// instance into it. Instances that cannot be stored are logged and skipped. It returns the number of instances
// stored.
func (s *Scene) BuildIndex(halfExtent float64, cfg *octree.Config) (int, error) {
	tree, err := octree.New[*Instance](halfExtent, cfg, s.logger)
	if err != nil {
		return 0, err
	}

	var inserted int
	for _, inst := range s.Instances {
		err := tree.Add(inst)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, octree.ErrCorruptTree):
			return inserted, errors.Wrapf(err, "error indexing instance %s", inst.ID)
		}
	}
	s.Tree = tree

	if rejected := len(s.Instances) - inserted; rejected > 0 {
		s.logger.Infow("some instances were not indexed", "indexed", inserted, "rejected", rejected)
	} else {
		s.logger.Debugw("indexed scene", "indexed", inserted)
	}
	return inserted, nil
}

// Visible returns the indexed instances inside the camera frustum. capacity is passed to the tree as a hint for
// the expected number of visible instances.
func (s *Scene) Visible(capacity int) ([]*Instance, error) {
	if s.Tree == nil {
		return nil, errors.New("scene has no index, call BuildIndex first")
	}
	if s.Camera == nil {
		return nil, errors.New("scene has no camera")
	}
	return s.Tree.CullingWithCapacity(s.Camera.Frustum(), capacity), nil
}
