package octree

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/octree/logging"
	"go.viam.com/octree/spatialmath"
	"go.viam.com/octree/utils"
)

// Tree owns the root node of an octree. Its volume is fixed at construction and items whose index point lies
// outside of it cannot be inserted. A Tree is not safe for concurrent use; see SyncTree.
type Tree[I Item[I]] struct {
	logger logging.Logger
	cfg    Config
	root   *node[I]
}

// New creates an empty tree whose root is the cube spanning [-halfExtent, halfExtent] on every axis. A nil cfg
// uses DefaultConfig.
func New[I Item[I]](halfExtent float64, cfg *Config, logger logging.Logger) (*Tree[I], error) {
	if halfExtent <= 0 || !utils.IsFinite(halfExtent) {
		return nil, errors.Errorf("invalid half extent (%.2f) for octree", halfExtent)
	}
	return NewFromVolume[I](spatialmath.NewCube(halfExtent), cfg, logger)
}

// NewFromVolume creates an empty tree whose root covers vol. A nil cfg uses DefaultConfig.
func NewFromVolume[I Item[I]](vol spatialmath.AABB, cfg *Config, logger logging.Logger) (*Tree[I], error) {
	for _, v := range []float64{vol.Min.X, vol.Min.Y, vol.Min.Z, vol.Max.X, vol.Max.Y, vol.Max.Z} {
		if !utils.IsFinite(v) {
			return nil, errors.Errorf("invalid octree volume %v, all bounds must be finite", vol)
		}
	}
	if _, err := spatialmath.NewAABB(vol.Min, vol.Max); err != nil {
		return nil, errors.Wrap(err, "invalid octree volume")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate("octree"); err != nil {
		return nil, err
	}
	if spacing := floatSpacing(vol); cfg.MinSideLength < spacing {
		return nil, errors.Errorf("octree min side length %g is below the float64 spacing %g at volume %v",
			cfg.MinSideLength, spacing, vol)
	}
	if logger == nil {
		logger = logging.Global()
	}

	return &Tree[I]{
		logger: logger.Sublogger("octree"),
		cfg:    *cfg,
		root:   newEmptyNode[I](vol),
	}, nil
}

// floatSpacing returns the gap between the largest X bound of vol and the next float64 above it. Sides smaller
// than this cannot be produced by splitting near that bound.
func floatSpacing(vol spatialmath.AABB) float64 {
	m := math.Max(math.Abs(vol.Min.X), math.Abs(vol.Max.X))
	return math.Nextafter(m, math.Inf(1)) - m
}

// Add inserts item into the tree. It returns ErrOutOfBounds if the item's index point is outside the tree's
// volume and ErrAlreadyPresent if an equal item already occupies the leaf the item routes to. In both cases
// the tree is unchanged. An error wrapping ErrCorruptTree means the tree structure is broken.
func (t *Tree[I]) Add(item I) error {
	err := t.root.insert(item, &t.cfg)
	switch {
	case err == nil:
	case errors.Is(err, ErrOutOfBounds):
		t.logger.Debugw("item not in volume", "index", item.Index(), "volume", t.root.volume.String())
	case errors.Is(err, ErrAlreadyPresent):
		t.logger.Debugw("item already present", "index", item.Index())
	default:
		t.logger.Errorw("error inserting item", "index", item.Index(), "error", err)
	}
	return err
}

// Insert inserts item into the tree and returns whether it was stored.
func (t *Tree[I]) Insert(item I) bool {
	return t.Add(item) == nil
}

// Members returns the number of items stored in the tree.
func (t *Tree[I]) Members() int {
	var members int
	t.root.walk(func(nd *node[I], _ int) bool {
		switch b := nd.body.(type) {
		case *leafBody[I]:
			members++
		case *minLeafBody[I]:
			members += len(b.items)
		}
		return true
	})
	return members
}

// Volume returns the root volume of the tree.
func (t *Tree[I]) Volume() spatialmath.AABB {
	return t.root.volume
}

// Config returns a copy of the configuration the tree was built with.
func (t *Tree[I]) Config() Config {
	return t.cfg
}
