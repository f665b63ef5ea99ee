package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/octree/spatialmath"
)

func vectorShouldAlmostEqual(t *testing.T, got, expected r3.Vector) {
	t.Helper()
	test.That(t, got.X, test.ShouldAlmostEqual, expected.X)
	test.That(t, got.Y, test.ShouldAlmostEqual, expected.Y)
	test.That(t, got.Z, test.ShouldAlmostEqual, expected.Z)
}

func TestNewCamera(t *testing.T) {
	c := New(0.5, 0.01)
	test.That(t, c.Position(), test.ShouldResemble, r3.Vector{})
	test.That(t, c.Perspective, test.ShouldResemble, PerspectiveFov{Fovy: 0.69, Aspect: 16.0 / 9.0, Near: 0.1, Far: 2000})
	test.That(t, c.MoveSpeed, test.ShouldEqual, 0.5)
	test.That(t, c.TurnSpeed, test.ShouldEqual, 0.01)

	vectorShouldAlmostEqual(t, c.Forward(), r3.Vector{Z: -1})
	vectorShouldAlmostEqual(t, c.Right(), r3.Vector{X: 1})
	vectorShouldAlmostEqual(t, c.Up(), r3.Vector{Y: 1})
	test.That(t, c.View().ApproxEqual(mgl64.Ident4()), test.ShouldBeTrue)
}

func TestOrientation(t *testing.T) {
	t.Run("yaw right", func(t *testing.T) {
		c := New(1, 0)
		c.OffsetOrientation(0, math.Pi/2)
		vectorShouldAlmostEqual(t, c.Forward(), r3.Vector{X: 1})
		vectorShouldAlmostEqual(t, c.Right(), r3.Vector{Z: 1})
		vectorShouldAlmostEqual(t, c.Up(), r3.Vector{Y: 1})
	})

	t.Run("pitch up", func(t *testing.T) {
		c := New(1, 0)
		c.OffsetOrientation(math.Pi/2, 0)
		vectorShouldAlmostEqual(t, c.Forward(), r3.Vector{Y: 1})
		vectorShouldAlmostEqual(t, c.Right(), r3.Vector{X: 1})
	})

	t.Run("reset", func(t *testing.T) {
		c := New(1, 0)
		c.OffsetOrientation(0.3, -1.2)
		c.ResetOrientation()
		vectorShouldAlmostEqual(t, c.Forward(), r3.Vector{Z: -1})
	})

	t.Run("string in degrees", func(t *testing.T) {
		c := New(1, 0)
		c.SetPosition(r3.Vector{X: 1, Y: 2, Z: 3})
		c.OffsetOrientation(math.Pi/4, math.Pi/2)
		test.That(t, c.String(), test.ShouldContainSubstring, "camera at (1.00, 2.00, 3.00)")
		test.That(t, c.String(), test.ShouldContainSubstring, "yaw 90.0° pitch 45.0°")
	})
}

func TestMovement(t *testing.T) {
	c := New(2, 0)
	c.OffsetPosition(r3.Vector{X: 1, Y: -1, Z: 0.5})
	test.That(t, c.Position(), test.ShouldResemble, r3.Vector{X: 2, Y: -2, Z: 1})

	c.UpdateMoveSpeed(-1.5)
	test.That(t, c.MoveSpeed, test.ShouldEqual, 0.5)
	c.OffsetPosition(c.Forward())
	vectorShouldAlmostEqual(t, c.Position(), r3.Vector{X: 2, Y: -2, Z: 0.5})

	c.SetPosition(r3.Vector{X: 5, Y: 6, Z: 7})
	test.That(t, c.Position(), test.ShouldResemble, r3.Vector{X: 5, Y: 6, Z: 7})

	// The view transform moves the camera position to the origin.
	c.OffsetOrientation(0.4, 0.7)
	p := c.View().Mul4x1(mgl64.Vec4{5, 6, 7, 1})
	test.That(t, p.Vec3().ApproxEqual(mgl64.Vec3{}), test.ShouldBeTrue)

	c.ResetPosition()
	test.That(t, c.Position(), test.ShouldResemble, r3.Vector{})
}

func TestFrustum(t *testing.T) {
	c := New(1, 0)
	c.SetPosition(r3.Vector{Z: 10})
	f := c.Frustum()

	test.That(t, f.ContainsPoint(r3.Vector{}), test.ShouldBeTrue)
	test.That(t, f.ContainsPoint(r3.Vector{Z: 20}), test.ShouldBeFalse)
	test.That(t, f.ContainsPoint(r3.Vector{Z: -3000}), test.ShouldBeFalse)
	test.That(t, f.ContainsPoint(r3.Vector{X: 100}), test.ShouldBeFalse)

	ahead := spatialmath.NewCube(1)
	test.That(t, f.ContainsAABB(ahead), test.ShouldEqual, spatialmath.Inside)
	aroundCamera := spatialmath.NewCube(1).Translate(r3.Vector{Z: 10})
	test.That(t, f.ContainsAABB(aroundCamera), test.ShouldEqual, spatialmath.Intersecting)
	behind := spatialmath.NewCube(1).Translate(r3.Vector{Z: 30})
	test.That(t, f.ContainsAABB(behind), test.ShouldEqual, spatialmath.Outside)

	// Turning around brings the box behind the camera into view.
	c.OffsetOrientation(0, math.Pi)
	f = c.Frustum()
	test.That(t, f.ContainsAABB(behind), test.ShouldEqual, spatialmath.Inside)
	test.That(t, f.ContainsAABB(ahead), test.ShouldEqual, spatialmath.Outside)

	t.Run("narrower field of view", func(t *testing.T) {
		c := New(1, 0)
		c.SetPosition(r3.Vector{Z: 10})
		edge := r3.Vector{X: 5}
		test.That(t, c.Frustum().ContainsPoint(edge), test.ShouldBeTrue)
		c.SetFov(0.1)
		test.That(t, c.Frustum().ContainsPoint(edge), test.ShouldBeFalse)
	})
}

func TestOrthoProjection(t *testing.T) {
	c := New(1, 0)
	top := c.Perspective.Near * math.Tan(c.Perspective.Fovy/2)
	right := top * c.Perspective.Aspect

	p := c.OrthoProjection().Mul4x1(mgl64.Vec4{right, top, -c.Perspective.Near, 1})
	test.That(t, p.ApproxEqual(mgl64.Vec4{1, 1, -1, 1}), test.ShouldBeTrue)
}
