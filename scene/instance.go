// Package scene populates an octree with renderable instances and culls them against a camera every frame.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"go.viam.com/octree/spatialmath"
)

// Asset is the shared description instances are created from. Volume is the asset's bounding box in model
// space.
type Asset struct {
	Name   string
	Volume spatialmath.AABB
}

// Instance is a placed copy of an asset. Volume is its world space bounding box and what the octree indexes.
type Instance struct {
	ID     uuid.UUID
	Name   string
	Volume spatialmath.AABB
	// ToWorld is the model to world transform used when drawing.
	ToWorld mgl64.Mat4
}

// NewInstance places asset in the world scaled by scale about its center and then moved by translation.
func NewInstance(asset Asset, scale float64, translation r3.Vector) *Instance {
	return &Instance{
		ID:      uuid.New(),
		Name:    asset.Name,
		Volume:  asset.Volume.Scale(scale).Translate(translation),
		ToWorld: mgl64.Translate3D(translation.X, translation.Y, translation.Z).Mul4(mgl64.Scale3D(scale, scale, scale)),
	}
}

// Index is the center of the instance's volume.
func (inst *Instance) Index() r3.Vector {
	return inst.Volume.Center()
}

// IsEqual reports whether both instances occupy exactly the same volume.
func (inst *Instance) IsEqual(other *Instance) bool {
	return inst.Volume == other.Volume
}

// InFrustum is true unless the volume is entirely outside of f.
func (inst *Instance) InFrustum(f *spatialmath.Frustum) bool {
	return f.ContainsAABB(inst.Volume) != spatialmath.Outside
}

// Bounds returns the world space volume, which lets pruning trees skip subtrees of instances.
func (inst *Instance) Bounds() spatialmath.AABB {
	return inst.Volume
}

// Translate moves the drawn instance. The indexed volume is left as is so that a tree holding the instance stays
// consistent; rebuild the index to pick up the new position.
func (inst *Instance) Translate(x, y, z float64) {
	inst.ToWorld.Set(0, 3, inst.ToWorld.At(0, 3)+x)
	inst.ToWorld.Set(1, 3, inst.ToWorld.At(1, 3)+y)
	inst.ToWorld.Set(2, 3, inst.ToWorld.At(2, 3)+z)
}

func (inst *Instance) String() string {
	return fmt.Sprintf("%s %s %v", inst.Name, inst.ID, inst.Volume)
}
