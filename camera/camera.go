// Package camera implements a fly camera that produces the view and projection matrices of a scene and the
// frustum used to cull it.
package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/octree/spatialmath"
	"go.viam.com/octree/utils"
)

// Defaults of a newly created camera's perspective.
const (
	DefaultFovy   = 0.69
	DefaultAspect = 16.0 / 9.0
	DefaultNear   = 0.1
	DefaultFar    = 2000.0
)

// PerspectiveFov describes a symmetric perspective projection. Fovy is the vertical field of view in radians.
type PerspectiveFov struct {
	Fovy   float64
	Aspect float64
	Near   float64
	Far    float64
}

// DefaultPerspective returns the perspective of a newly created camera.
func DefaultPerspective() PerspectiveFov {
	return PerspectiveFov{Fovy: DefaultFovy, Aspect: DefaultAspect, Near: DefaultNear, Far: DefaultFar}
}

// Matrix returns the OpenGL style projection matrix of p.
func (p PerspectiveFov) Matrix() mgl64.Mat4 {
	return mgl64.Perspective(p.Fovy, p.Aspect, p.Near, p.Far)
}

// Camera is a position and a pitch/yaw orientation. It looks down -Z when both angles are zero.
type Camera struct {
	position        r3.Vector
	verticalAngle   float64
	horizontalAngle float64

	Perspective PerspectiveFov
	// MoveSpeed scales every offset given to OffsetPosition.
	MoveSpeed float64
	// TurnSpeed is the angle in radians callers turn the camera by per step.
	TurnSpeed float64
}

// New returns a camera at the origin with the default perspective.
func New(moveSpeed, turnSpeed float64) *Camera {
	return &Camera{
		Perspective: DefaultPerspective(),
		MoveSpeed:   moveSpeed,
		TurnSpeed:   turnSpeed,
	}
}

// Position returns the camera position.
func (c *Camera) Position() r3.Vector {
	return c.position
}

// SetPosition moves the camera to p.
func (c *Camera) SetPosition(p r3.Vector) {
	c.position = p
}

// SetFov sets the vertical field of view in radians.
func (c *Camera) SetFov(fovy float64) {
	c.Perspective.Fovy = fovy
}

// OffsetPosition moves the camera by offset scaled by the move speed.
func (c *Camera) OffsetPosition(offset r3.Vector) {
	c.position = c.position.Add(offset.Mul(c.MoveSpeed))
}

// OffsetOrientation pitches the camera up by upAngle and yaws it right by rightAngle.
func (c *Camera) OffsetOrientation(upAngle, rightAngle float64) {
	c.verticalAngle -= upAngle
	c.horizontalAngle += rightAngle
}

// UpdateMoveSpeed adds delta to the move speed.
func (c *Camera) UpdateMoveSpeed(delta float64) {
	c.MoveSpeed += delta
}

// ResetPosition moves the camera back to the origin.
func (c *Camera) ResetPosition() {
	c.position = r3.Vector{}
}

// ResetOrientation points the camera back down -Z.
func (c *Camera) ResetOrientation() {
	c.verticalAngle = 0
	c.horizontalAngle = 0
}

// Orientation returns the world to camera rotation.
func (c *Camera) Orientation() mgl64.Mat3 {
	vertical := mgl64.QuatRotate(c.verticalAngle, mgl64.Vec3{1, 0, 0})
	horizontal := mgl64.QuatRotate(c.horizontalAngle, mgl64.Vec3{0, 1, 0})
	return vertical.Mul(horizontal).Mat4().Mat3()
}

// Forward returns the direction the camera looks in, in world coordinates.
func (c *Camera) Forward() r3.Vector {
	return c.toWorld(mgl64.Vec3{0, 0, -1})
}

// Right returns the camera's right direction in world coordinates.
func (c *Camera) Right() r3.Vector {
	return c.toWorld(mgl64.Vec3{1, 0, 0})
}

// Up returns the camera's up direction in world coordinates.
func (c *Camera) Up() r3.Vector {
	return c.toWorld(mgl64.Vec3{0, 1, 0})
}

func (c *Camera) toWorld(v mgl64.Vec3) r3.Vector {
	w := c.Orientation().Transpose().Mul3x1(v)
	return r3.Vector{X: w[0], Y: w[1], Z: w[2]}
}

// View returns the world to camera transform.
func (c *Camera) View() mgl64.Mat4 {
	return c.Orientation().Mat4().Mul4(mgl64.Translate3D(-c.position.X, -c.position.Y, -c.position.Z))
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return c.Perspective.Matrix()
}

// OrthoProjection returns an orthographic projection spanning the perspective's near plane.
func (c *Camera) OrthoProjection() mgl64.Mat4 {
	top := c.Perspective.Near * math.Tan(c.Perspective.Fovy/2)
	right := top * c.Perspective.Aspect
	return mgl64.Ortho(-right, right, -top, top, c.Perspective.Near, c.Perspective.Far)
}

// Matrix returns the combined projection * view matrix.
func (c *Camera) Matrix() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Frustum returns the view frustum of the camera in world coordinates.
func (c *Camera) Frustum() *spatialmath.Frustum {
	return spatialmath.NewFrustumFromMatrix(c.Matrix())
}

func (c *Camera) String() string {
	forward := c.Forward()
	return fmt.Sprintf("camera at (%.2f, %.2f, %.2f) looking (%.2f, %.2f, %.2f), yaw %.1f° pitch %.1f°",
		c.position.X, c.position.Y, c.position.Z,
		forward.X, forward.Y, forward.Z,
		utils.RadToDeg(c.horizontalAngle), utils.RadToDeg(-c.verticalAngle))
}
