package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// determinantEpsilon rejects rays parallel to the triangle plane and
// zero-area triangles before dividing by the determinant
const determinantEpsilon = 1e-12

// Triangle is a view of one face of a Mesh. Vertex data stays in the mesh.
type Triangle struct {
	mesh       *Mesh
	v0, v1, v2 int       // Indices into the mesh's positions and normals
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a triangle viewing vertices v0, v1, v2 of the mesh
func NewTriangle(mesh *Mesh, v0, v1, v2 int) *Triangle {
	t := &Triangle{mesh: mesh, v0: v0, v1: v1, v2: v2}
	t.bbox = core.NewAABBFromPoints(mesh.Positions[v0], mesh.Positions[v1], mesh.Positions[v2])
	return t
}

// Vertices returns the three vertex positions
func (t *Triangle) Vertices() (p0, p1, p2 core.Vec3) {
	return t.mesh.Positions[t.v0], t.mesh.Positions[t.v1], t.mesh.Positions[t.v2]
}

// Barycentric solves the Möller–Trumbore system for the ray and returns the
// ray parameter and barycentric coordinates (b1, b2) of p1 and p2. ok is
// false when the determinant is too small to divide by.
func (t *Triangle) Barycentric(ray core.Ray) (tHit, b1, b2 float64, ok bool) {
	p0, p1, p2 := t.Vertices()

	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)
	s := ray.Origin.Subtract(p0)
	s1 := ray.Direction.Cross(edge2)
	s2 := s.Cross(edge1)

	det := s1.Dot(edge1)
	if math.Abs(det) < determinantEpsilon {
		return 0, 0, 0, false
	}

	inv := 1.0 / det
	tHit = s2.Dot(edge2) * inv
	b1 = s1.Dot(s) * inv
	b2 = s2.Dot(ray.Direction) * inv
	return tHit, b1, b2, true
}

// test returns the hit distance and barycentrics if the ray hits inside the
// triangle and its interval
func (t *Triangle) test(ray core.Ray) (tHit, b1, b2 float64, ok bool) {
	tHit, b1, b2, ok = t.Barycentric(ray)
	if !ok {
		return 0, 0, 0, false
	}
	if b1 < 0 || b2 < 0 || b1+b2 > 1 || tHit < ray.MinT || tHit > ray.MaxT {
		return 0, 0, 0, false
	}
	return tHit, b1, b2, true
}

// HasIntersection reports whether the ray hits the triangle within its interval
func (t *Triangle) HasIntersection(ray core.Ray) bool {
	_, _, _, ok := t.test(ray)
	return ok
}

// Intersect tests the ray against the triangle, narrowing ray.MaxT on a hit.
// The normal interpolates the vertex normals with weights (1-b1-b2, b1, b2).
func (t *Triangle) Intersect(ray *core.Ray, isect *Intersection) bool {
	tHit, b1, b2, ok := t.test(*ray)
	if !ok {
		return false
	}

	normals := t.mesh.Normals
	n := normals[t.v0].Multiply(1 - b1 - b2).
		Add(normals[t.v1].Multiply(b1)).
		Add(normals[t.v2].Multiply(b2)).
		Normalize()
	if n.IsZero() {
		p0, p1, p2 := t.Vertices()
		n = p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
	}

	ray.MaxT = tHit
	isect.T = tHit
	isect.Normal = n
	isect.BSDF = t.mesh.BSDF
	isect.Primitive = t
	return true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}
