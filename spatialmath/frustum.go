package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Relation is the classification of a volume against a frustum.
type Relation uint8

// A volume is either completely outside the frustum, straddles at least one of its planes, or is completely
// inside it.
const (
	Outside = Relation(iota)
	Intersecting
	Inside
)

func (r Relation) String() string {
	switch r {
	case Outside:
		return "outside"
	case Intersecting:
		return "intersecting"
	case Inside:
		return "inside"
	default:
		return fmt.Sprintf("relation(%d)", uint8(r))
	}
}

// Plane is the set of points p for which Normal·p + D == 0. Points with a positive signed distance lie on the
// side the normal points to.
type Plane struct {
	Normal r3.Vector
	D      float64
}

// NewPlane returns the plane through point with the given normal.
func NewPlane(normal, point r3.Vector) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// Distance returns the signed distance from the plane to p, scaled by the length of the normal.
func (pl Plane) Distance(p r3.Vector) float64 {
	return pl.Normal.Dot(p) + pl.D
}

// Normalize scales the plane so that its normal has unit length. A degenerate plane is returned unchanged.
func (pl Plane) Normalize() Plane {
	n := pl.Normal.Norm()
	if n == 0 {
		return pl
	}
	return Plane{Normal: pl.Normal.Mul(1 / n), D: pl.D / n}
}

// Indices of the frustum planes.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum is a convex volume bounded by six planes whose normals all point inward.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromPlanes builds a frustum from six inward facing planes ordered left, right, bottom, top, near, far.
func NewFrustumFromPlanes(planes [6]Plane) (*Frustum, error) {
	f := &Frustum{}
	for i, pl := range planes {
		if pl.Normal.Norm2() == 0 {
			return nil, errors.Errorf("frustum plane %d has a zero normal", i)
		}
		f.Planes[i] = pl.Normalize()
	}
	return f, nil
}

// NewFrustumFromMatrix extracts the six clip planes from a combined projection * view matrix using OpenGL clip
// space conventions, where a point is visible when -w <= x, y, z <= w.
func NewFrustumFromMatrix(m mgl64.Mat4) *Frustum {
	x, y, z, w := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	rows := [6]mgl64.Vec4{
		w.Add(x),
		w.Sub(x),
		w.Add(y),
		w.Sub(y),
		w.Add(z),
		w.Sub(z),
	}
	f := &Frustum{}
	for i, row := range rows {
		f.Planes[i] = planeFromVec4(row).Normalize()
	}
	return f
}

// NewBoxFrustum returns the frustum whose six planes are the faces of box, which is the view volume of an
// orthographic camera looking at exactly that box.
func NewBoxFrustum(box AABB) *Frustum {
	return &Frustum{Planes: [6]Plane{
		NewPlane(r3.Vector{X: 1}, box.Min),
		NewPlane(r3.Vector{X: -1}, box.Max),
		NewPlane(r3.Vector{Y: 1}, box.Min),
		NewPlane(r3.Vector{Y: -1}, box.Max),
		NewPlane(r3.Vector{Z: 1}, box.Min),
		NewPlane(r3.Vector{Z: -1}, box.Max),
	}}
}

// ContainsPoint returns true if p is inside the frustum or on its boundary.
func (f *Frustum) ContainsPoint(p r3.Vector) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB classifies box against the frustum. For each plane the box corner furthest along the plane normal
// is tested first: if it is behind the plane, so is the whole box. The test is conservative and may report
// Intersecting for a box that is outside near a frustum corner, but it never reports Outside for a box that
// touches the frustum.
func (f *Frustum) ContainsAABB(box AABB) Relation {
	result := Inside
	for _, pl := range f.Planes {
		pos, neg := box.Min, box.Max
		if pl.Normal.X >= 0 {
			pos.X, neg.X = box.Max.X, box.Min.X
		}
		if pl.Normal.Y >= 0 {
			pos.Y, neg.Y = box.Max.Y, box.Min.Y
		}
		if pl.Normal.Z >= 0 {
			pos.Z, neg.Z = box.Max.Z, box.Min.Z
		}
		if pl.Distance(pos) < 0 {
			return Outside
		}
		if pl.Distance(neg) < 0 {
			result = Intersecting
		}
	}
	return result
}

// String returns a human readable string that represents the frustum planes.
func (f *Frustum) String() string {
	s := "Frustum"
	for i, pl := range f.Planes {
		s += fmt.Sprintf(" | %d: n(%.3f, %.3f, %.3f) d %.3f", i, pl.Normal.X, pl.Normal.Y, pl.Normal.Z, pl.D)
	}
	return s
}

func planeFromVec4(v mgl64.Vec4) Plane {
	return Plane{Normal: r3.Vector{X: v.X(), Y: v.Y(), Z: v.Z()}, D: v.W()}
}
