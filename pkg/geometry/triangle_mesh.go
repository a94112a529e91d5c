package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// ErrInvalidMesh is returned when mesh vertex data and indices disagree
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh owns the vertex data shared by its triangles
type Mesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3 // One unit normal per position
	Indices   []int       // Three position indices per triangle
	BSDF      material.BSDF
}

// NewMesh validates vertex data and builds a mesh. When normals is nil the
// per-vertex normals are the area-weighted average of the adjacent faces.
func NewMesh(positions, normals []core.Vec3, indices []int, bsdf material.BSDF) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(indices))
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("%w: %d normals for %d positions", ErrInvalidMesh, len(normals), len(positions))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(positions) {
			return nil, fmt.Errorf("%w: index %d at %d out of range", ErrInvalidMesh, idx, i)
		}
	}

	m := &Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		BSDF:      bsdf,
	}
	if m.Normals == nil {
		m.computeVertexNormals()
	}
	return m, nil
}

// computeVertexNormals accumulates unnormalized face normals (whose length is
// twice the face area) onto each vertex
func (m *Mesh) computeVertexNormals() {
	m.Normals = make([]core.Vec3, len(m.Positions))
	for i := 0; i < len(m.Indices); i += 3 {
		p0 := m.Positions[m.Indices[i]]
		p1 := m.Positions[m.Indices[i+1]]
		p2 := m.Positions[m.Indices[i+2]]
		n := p1.Subtract(p0).Cross(p2.Subtract(p0))
		for _, idx := range m.Indices[i : i+3] {
			m.Normals[idx] = m.Normals[idx].Add(n)
		}
	}
	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangles returns one primitive per face, each viewing this mesh's data
func (m *Mesh) Triangles() []Primitive {
	prims := make([]Primitive, 0, m.TriangleCount())
	for i := 0; i < len(m.Indices); i += 3 {
		prims = append(prims, NewTriangle(m, m.Indices[i], m.Indices[i+1], m.Indices[i+2]))
	}
	return prims
}

// NewQuadMesh builds a two-triangle mesh for the parallelogram spanned by
// u and v at corner, with a flat normal along u × v
func NewQuadMesh(corner, u, v core.Vec3, bsdf material.BSDF) *Mesh {
	n := u.Cross(v).Normalize()
	positions := []core.Vec3{
		corner,
		corner.Add(u),
		corner.Add(u).Add(v),
		corner.Add(v),
	}
	return &Mesh{
		Positions: positions,
		Normals:   []core.Vec3{n, n, n, n},
		Indices:   []int{0, 1, 2, 0, 2, 3},
		BSDF:      bsdf,
	}
}
