package mesh

import (
	"image/color"

	"github.com/gorustyt/gomeshfield/common"
)

// Source is the read-only view of a mesh the algorithms consume. Indices are
// stable for the duration of one call.
type Source interface {
	VertexCount() int
	Vertex(i int) common.Vec3
	FaceCount() int
	Face(i int) Face
}

// Face holds the corner indices of a triangle (Count 3) or quad (Count 4).
// Corners are listed in winding order; Indices[3] is unused for triangles.
type Face struct {
	Indices [4]int
	Count   int
}

func Tri(a, b, c int) Face {
	return Face{Indices: [4]int{a, b, c, c}, Count: 3}
}

func Quad(a, b, c, d int) Face {
	return Face{Indices: [4]int{a, b, c, d}, Count: 4}
}

func (f Face) IsTriangle() bool { return f.Count == 3 }
func (f Face) IsQuad() bool     { return f.Count == 4 }

// Verts returns the used corner indices.
func (f Face) Verts() []int {
	n := common.Clamp(f.Count, 0, 4)
	return f.Indices[:n]
}

// Check validates the face against a vertex count. With trianglesOnly set a
// quad is reported as non-triangular.
func (f Face) Check(face, vertCount int, trianglesOnly bool) error {
	if f.Count != 3 && f.Count != 4 {
		return common.NewInvalidInput(common.KindUnsupportedArity, face, "%d corners", f.Count)
	}
	if trianglesOnly && f.Count != 3 {
		return common.NewInvalidInput(common.KindNonTriangularFace, face, "quad faces must be triangulated first")
	}
	for _, v := range f.Verts() {
		if v < 0 || v >= vertCount {
			return common.NewInvalidInput(common.KindIndexOutOfRange, face, "vertex %d, mesh has %d", v, vertCount)
		}
	}
	return nil
}

// Mesh is an in-memory triangle/quad mesh with optional per-vertex colors.
type Mesh struct {
	Vertices []common.Vec3
	Faces    []Face
	Colors   []color.NRGBA
}

func (m *Mesh) VertexCount() int            { return len(m.Vertices) }
func (m *Mesh) Vertex(i int) common.Vec3    { return m.Vertices[i] }
func (m *Mesh) FaceCount() int              { return len(m.Faces) }
func (m *Mesh) Face(i int) Face             { return m.Faces[i] }
func (m *Mesh) AddVertex(v common.Vec3) int { m.Vertices = append(m.Vertices, v); return len(m.Vertices) - 1 }
func (m *Mesh) AddFace(f Face)              { m.Faces = append(m.Faces, f) }

// HasColors reports whether every vertex carries a color.
func (m *Mesh) HasColors() bool {
	return len(m.Colors) > 0 && len(m.Colors) == len(m.Vertices)
}

// QuadCount returns the number of quad faces.
func (m *Mesh) QuadCount() int {
	n := 0
	for _, f := range m.Faces {
		if f.IsQuad() {
			n++
		}
	}
	return n
}

// Validate checks every face of src.
func Validate(src Source, trianglesOnly bool) error {
	nv := src.VertexCount()
	for i := 0; i < src.FaceCount(); i++ {
		if err := src.Face(i).Check(i, nv, trianglesOnly); err != nil {
			return err
		}
	}
	return nil
}

// Triangulate copies src, splitting every quad (A,B,C,D) into (A,B,C) and
// (A,C,D). Orientation is preserved. Faces of other arity are copied as is so
// the consumer reports them.
func Triangulate(src Source) *Mesh {
	nv, nf := src.VertexCount(), src.FaceCount()
	res := &Mesh{
		Vertices: make([]common.Vec3, nv),
		Faces:    make([]Face, 0, nf*2),
	}
	for i := 0; i < nv; i++ {
		res.Vertices[i] = src.Vertex(i)
	}
	if m, ok := src.(*Mesh); ok && m.HasColors() {
		res.Colors = append([]color.NRGBA(nil), m.Colors...)
	}
	for i := 0; i < nf; i++ {
		f := src.Face(i)
		if !f.IsQuad() {
			res.Faces = append(res.Faces, f)
			continue
		}
		a, b, c, d := f.Indices[0], f.Indices[1], f.Indices[2], f.Indices[3]
		res.Faces = append(res.Faces, Tri(a, b, c), Tri(a, c, d))
	}
	return res
}

// Grid builds an nx by ny grid of unit quads in the XY plane with its lower
// left corner at the origin. Vertex (i, j) has index j*(nx+1)+i.
func Grid(nx, ny int, size float64) *Mesh {
	m := &Mesh{
		Vertices: make([]common.Vec3, 0, (nx+1)*(ny+1)),
		Faces:    make([]Face, 0, nx*ny),
	}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.Vertices = append(m.Vertices, common.Vec3{float64(i) * size, float64(j) * size, 0})
		}
	}
	row := nx + 1
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a := j*row + i
			m.Faces = append(m.Faces, Quad(a, a+1, a+1+row, a+row))
		}
	}
	return m
}

// Box builds a closed axis-aligned box from 12 outward-facing triangles.
func Box(bmin, bmax common.Vec3) *Mesh {
	x0, y0, z0 := bmin[0], bmin[1], bmin[2]
	x1, y1, z1 := bmax[0], bmax[1], bmax[2]
	m := &Mesh{Vertices: []common.Vec3{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
	}}
	quads := [6][4]int{
		{0, 3, 2, 1}, // -z
		{4, 5, 6, 7}, // +z
		{0, 1, 5, 4}, // -y
		{2, 3, 7, 6}, // +y
		{0, 4, 7, 3}, // -x
		{1, 2, 6, 5}, // +x
	}
	for _, q := range quads {
		m.Faces = append(m.Faces, Tri(q[0], q[1], q[2]), Tri(q[0], q[2], q[3]))
	}
	return m
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() (bmin, bmax common.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	bmin, bmax = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			bmin[i] = min(bmin[i], v[i])
			bmax[i] = max(bmax[i], v[i])
		}
	}
	return bmin, bmax
}
