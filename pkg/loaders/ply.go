// Package loaders reads triangle meshes from PLY files.
package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

var logger = log.New("loaders")

// ErrInvalidPLY is wrapped by every PLY parse error
var ErrInvalidPLY = errors.New("invalid PLY")

const (
	// maxElementCount bounds the count of any header element
	maxElementCount = 1 << 28
	// maxListLength bounds the item count of one list property
	maxListLength = 1 << 16
	// maxPrealloc caps slice capacity reserved from header counts
	maxPrealloc = 1 << 16
)

// plyProperty is one property line of an element in the header
type plyProperty struct {
	name     string
	dataType string // Scalar type, or the item type of a list
	listType string // Count type; empty for scalars
}

// plyElement is one element block of the header
type plyElement struct {
	name  string
	count int
	props []plyProperty
}

// plyHeader is the parsed header of a PLY file
type plyHeader struct {
	format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	elements []plyElement
}

// LoadPLY reads a PLY file into a mesh with the given BSDF
func LoadPLY(filename string, bsdf material.BSDF) (*geometry.Mesh, error) {
	start := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file, bsdf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(mesh.Positions), mesh.TriangleCount(), time.Since(start))
	return mesh, nil
}

// ReadPLY parses PLY data in any of the three standard encodings. Vertex
// positions come from x, y, z and normals from nx, ny, nz when all three are
// present. Faces are read from the vertex_indices (or vertex_index) list and
// fan-triangulated. Other elements and properties are skipped.
func ReadPLY(r io.Reader, bsdf material.BSDF) (*geometry.Mesh, error) {
	br := bufio.NewReader(r)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values valueReader
	switch header.format {
	case "ascii":
		values = &asciiReader{r: br}
	case "binary_little_endian":
		values = &binaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.format)
	}

	var positions, normals []core.Vec3
	var indices []int
	hasNormals := false

	for _, element := range header.elements {
		switch element.name {
		case "vertex":
			positions, normals, hasNormals, err = readVertices(values, element)
		case "face":
			indices, err = readFaces(values, element)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidPLY, element.name, err)
		}
	}

	if !hasNormals {
		normals = nil
	}
	return geometry.NewMesh(positions, normals, indices, bsdf)
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	first := true

	for {
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("%w: header ended early: %v", ErrInvalidPLY, err)
		}

		parts := strings.Fields(line)
		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.format == "" {
				return nil, fmt.Errorf("%w: missing format line", ErrInvalidPLY)
			}
			return header, nil
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("%w: bad format line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			header.format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 || count > maxElementCount {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.elements = append(header.elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(header.elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.elements[len(header.elements)-1]
			current.props = append(current.props, prop)
		case "comment", "obj_info":
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrInvalidPLY, parts[0])
		}
	}
}

// parsePLYProperty parses the fields after the property keyword
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		prop := plyProperty{listType: parts[1], dataType: parts[2], name: parts[3]}
		if typeSize(prop.listType) == 0 || typeSize(prop.dataType) == 0 {
			return plyProperty{}, fmt.Errorf("%w: unknown type in list %q", ErrInvalidPLY, prop.name)
		}
		return prop, nil
	}

	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}
	prop := plyProperty{dataType: parts[0], name: parts[1]}
	if typeSize(prop.dataType) == 0 {
		return plyProperty{}, fmt.Errorf("%w: unknown type %q for %q", ErrInvalidPLY, prop.dataType, prop.name)
	}
	return prop, nil
}

func readVertices(values valueReader, element plyElement) (positions, normals []core.Vec3, hasNormals bool, err error) {
	index := map[string]int{}
	for i, prop := range element.props {
		if prop.listType == "" {
			index[prop.name] = i
		}
	}
	for _, name := range []string{"x", "y", "z"} {
		if _, ok := index[name]; !ok {
			return nil, nil, false, fmt.Errorf("vertex has no %q property", name)
		}
	}
	_, hasX := index["nx"]
	_, hasY := index["ny"]
	_, hasZ := index["nz"]
	hasNormals = hasX && hasY && hasZ

	positions = make([]core.Vec3, 0, min(element.count, maxPrealloc))
	normals = make([]core.Vec3, 0, min(element.count, maxPrealloc))
	row := make([]float64, len(element.props))

	for v := 0; v < element.count; v++ {
		for i, prop := range element.props {
			if prop.listType != "" {
				if err := skipList(values, prop); err != nil {
					return nil, nil, false, err
				}
				continue
			}
			if row[i], err = values.read(prop.dataType); err != nil {
				return nil, nil, false, fmt.Errorf("vertex %d: %w", v, err)
			}
		}
		positions = append(positions, core.NewVec3(row[index["x"]], row[index["y"]], row[index["z"]]))
		if hasNormals {
			normals = append(normals, core.NewVec3(row[index["nx"]], row[index["ny"]], row[index["nz"]]).Normalize())
		}
	}
	return positions, normals, hasNormals, nil
}

func readFaces(values valueReader, element plyElement) ([]int, error) {
	listIndex := -1
	for i, prop := range element.props {
		if prop.listType != "" && (prop.name == "vertex_indices" || prop.name == "vertex_index") {
			listIndex = i
		}
	}
	if listIndex < 0 {
		return nil, errors.New("face has no vertex_indices list")
	}

	indices := make([]int, 0, 3*min(element.count, maxPrealloc))
	for f := 0; f < element.count; f++ {
		for i, prop := range element.props {
			if i != listIndex {
				if err := skipProperty(values, prop); err != nil {
					return nil, err
				}
				continue
			}

			n, err := readListLength(values, prop)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", f, err)
			}
			face := make([]int, n)
			for k := range face {
				idx, err := values.read(prop.dataType)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", f, err)
				}
				face[k] = int(idx)
			}
			// Fan triangulation; faces with fewer than three vertices add nothing
			for k := 1; k+1 < len(face); k++ {
				indices = append(indices, face[0], face[k], face[k+1])
			}
		}
	}
	return indices, nil
}

func skipElement(values valueReader, element plyElement) error {
	for e := 0; e < element.count; e++ {
		for _, prop := range element.props {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipProperty(values valueReader, prop plyProperty) error {
	if prop.listType != "" {
		return skipList(values, prop)
	}
	_, err := values.read(prop.dataType)
	return err
}

// readListLength reads the item count that prefixes a list property
func readListLength(values valueReader, prop plyProperty) (int, error) {
	n, err := values.read(prop.listType)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > maxListLength || n != math.Trunc(n) {
		return 0, fmt.Errorf("list %q has invalid length %g", prop.name, n)
	}
	return int(n), nil
}

func skipList(values valueReader, prop plyProperty) error {
	n, err := readListLength(values, prop)
	if err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		if _, err := values.read(prop.dataType); err != nil {
			return err
		}
	}
	return nil
}

// typeSize returns the encoded size of a PLY scalar type, 0 if unknown
func typeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "float", "int32", "uint32", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

// valueReader decodes one scalar of the body
type valueReader interface {
	read(dataType string) (float64, error)
}

type asciiReader struct {
	r *bufio.Reader
}

// read parses the next whitespace-separated token
func (a *asciiReader) read(dataType string) (float64, error) {
	var token []byte
	for {
		b, err := a.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				break
			}
			return 0, io.ErrUnexpectedEOF
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if len(token) > 0 {
				break
			}
			continue
		}
		token = append(token, b)
	}
	return strconv.ParseFloat(string(token), 64)
}

type binaryReader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) read(dataType string) (float64, error) {
	size := typeSize(dataType)
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, io.ErrUnexpectedEOF
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

// FitMesh uniformly scales and translates the mesh in place so its bounding
// box is centered in target and its longest side matches target's longest
// side. Normals are unchanged by a uniform scale.
func FitMesh(mesh *geometry.Mesh, target core.AABB) {
	if len(mesh.Positions) == 0 {
		return
	}
	box := core.NewAABBFromPoints(mesh.Positions...)

	longest := box.Extent().Axis(box.LongestAxis())
	targetLongest := target.Extent().Axis(target.LongestAxis())

	scale := 1.0
	if longest > 0 {
		scale = targetLongest / longest
	}
	center := box.Centroid()
	targetCenter := target.Centroid()
	for i, p := range mesh.Positions {
		mesh.Positions[i] = p.Subtract(center).Multiply(scale).Add(targetCenter)
	}
}
