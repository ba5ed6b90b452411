package debug_utils

import (
	"github.com/gorustyt/gomeshfield/common"
)

type DuDebugDrawPrimitives int

const (
	DU_DRAW_POINTS DuDebugDrawPrimitives = iota
	DU_DRAW_LINES
	DU_DRAW_TRIS
	DU_DRAW_QUADS
)

// / Abstract debug draw interface.
type DuDebugDraw interface {
	DepthMask(state bool)

	/// Begin drawing primitives.
	///  @param prim [in] primitive type to draw, one of DuDebugDrawPrimitives.
	///  @param size [in] size of a primitive, applies to point size and line width only.
	Begin(prim DuDebugDrawPrimitives, size ...float64)

	/// Submit a vertex
	///  @param pos [in] position of the verts.
	///  @param color [in] color of the verts.
	Vertex(pos common.Vec3, color Colorb)

	/// Submit a vertex
	///  @param x,y,z [in] position of the verts.
	///  @param color [in] color of the verts.
	Vertex1(x, y, z float64, color Colorb)

	/// End drawing primitives.
	End()
}

type DuDebugDrawBase struct {
}

func NewDuDebugDraw() DuDebugDraw {
	return &DuDebugDrawBase{}
}
func (d *DuDebugDrawBase) DepthMask(state bool)                              {}
func (d *DuDebugDrawBase) Begin(prim DuDebugDrawPrimitives, size ...float64) {}
func (d *DuDebugDrawBase) Vertex(pos common.Vec3, color Colorb)              {}
func (d *DuDebugDrawBase) Vertex1(x, y, z float64, color Colorb)             {}
func (d *DuDebugDrawBase) End()                                              {}

func primSize(size []float64) float64 {
	if len(size) == 0 {
		return 1
	}
	return size[0]
}

func DuDebugDrawBoxWire(dd DuDebugDraw, bmin, bmax common.Vec3, col Colorb, lineWidth float64) {
	if dd == nil {
		return
	}

	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendBoxWire(dd, bmin, bmax, col)
	dd.End()
}

// DuDebugDrawGridXY draws a w by h grid of square cells in the z = o[2] plane.
func DuDebugDrawGridXY(dd DuDebugDraw, o common.Vec3, w, h int, size float64, col Colorb, lineWidth float64) {
	if dd == nil {
		return
	}

	dd.Begin(DU_DRAW_LINES, lineWidth)
	for i := 0; i <= h; i++ {
		dd.Vertex1(o[0], o[1]+float64(i)*size, o[2], col)
		dd.Vertex1(o[0]+float64(w)*size, o[1]+float64(i)*size, o[2], col)
	}
	for i := 0; i <= w; i++ {
		dd.Vertex1(o[0]+float64(i)*size, o[1], o[2], col)
		dd.Vertex1(o[0]+float64(i)*size, o[1]+float64(h)*size, o[2], col)
	}
	dd.End()
}

func DuAppendBoxWire(dd DuDebugDraw, bmin, bmax common.Vec3, col Colorb) {
	if dd == nil {
		return
	}
	minx, miny, minz := bmin[0], bmin[1], bmin[2]
	maxx, maxy, maxz := bmax[0], bmax[1], bmax[2]
	// bottom
	dd.Vertex1(minx, miny, minz, col)
	dd.Vertex1(maxx, miny, minz, col)
	dd.Vertex1(maxx, miny, minz, col)
	dd.Vertex1(maxx, maxy, minz, col)
	dd.Vertex1(maxx, maxy, minz, col)
	dd.Vertex1(minx, maxy, minz, col)
	dd.Vertex1(minx, maxy, minz, col)
	dd.Vertex1(minx, miny, minz, col)

	// top
	dd.Vertex1(minx, miny, maxz, col)
	dd.Vertex1(maxx, miny, maxz, col)
	dd.Vertex1(maxx, miny, maxz, col)
	dd.Vertex1(maxx, maxy, maxz, col)
	dd.Vertex1(maxx, maxy, maxz, col)
	dd.Vertex1(minx, maxy, maxz, col)
	dd.Vertex1(minx, maxy, maxz, col)
	dd.Vertex1(minx, miny, maxz, col)

	// sides
	dd.Vertex1(minx, miny, minz, col)
	dd.Vertex1(minx, miny, maxz, col)
	dd.Vertex1(maxx, miny, minz, col)
	dd.Vertex1(maxx, miny, maxz, col)
	dd.Vertex1(maxx, maxy, minz, col)
	dd.Vertex1(maxx, maxy, maxz, col)
	dd.Vertex1(minx, maxy, minz, col)
	dd.Vertex1(minx, maxy, maxz, col)
}

func DuAppendCross(dd DuDebugDraw, p common.Vec3, s float64, col Colorb) {
	if dd == nil {
		return
	}
	x, y, z := p[0], p[1], p[2]
	dd.Vertex1(x-s, y, z, col)
	dd.Vertex1(x+s, y, z, col)
	dd.Vertex1(x, y-s, z, col)
	dd.Vertex1(x, y+s, z, col)
	dd.Vertex1(x, y, z-s, col)
	dd.Vertex1(x, y, z+s, col)
}

// DuDisplayList records primitives so they can be replayed into any
// DuDebugDraw. It implements DuDebugDraw itself.
type DuDisplayList struct {
	m_pos   []common.Vec3
	m_color []Colorb

	m_prim      DuDebugDrawPrimitives
	m_primSize  float64
	m_depthMask bool
}

func NewDuDisplayList(cap int) *DuDisplayList {
	if cap < 8 {
		cap = 512
	}
	return &DuDisplayList{
		m_pos:       make([]common.Vec3, 0, cap),
		m_color:     make([]Colorb, 0, cap),
		m_primSize:  1.0,
		m_prim:      DU_DRAW_LINES,
		m_depthMask: true,
	}
}

func (d *DuDisplayList) Clear() {
	d.m_pos = d.m_pos[:0]
	d.m_color = d.m_color[:0]
}

func (d *DuDisplayList) Size() int {
	return len(d.m_pos)
}

func (d *DuDisplayList) Prim() DuDebugDrawPrimitives {
	return d.m_prim
}

func (d *DuDisplayList) DepthMask(state bool) {
	d.m_depthMask = state
}

func (d *DuDisplayList) Begin(prim DuDebugDrawPrimitives, size ...float64) {
	d.Clear()
	d.m_prim = prim
	d.m_primSize = primSize(size)
}

func (d *DuDisplayList) Vertex(pos common.Vec3, color Colorb) {
	d.m_pos = append(d.m_pos, pos)
	d.m_color = append(d.m_color, color)
}

func (d *DuDisplayList) Vertex1(x, y, z float64, color Colorb) {
	d.Vertex(common.Vec3{x, y, z}, color)
}

func (d *DuDisplayList) End() {
}

// Draw replays the recorded primitives into dd.
func (d *DuDisplayList) Draw(dd DuDebugDraw) {
	if dd == nil {
		return
	}
	if len(d.m_pos) == 0 {
		return
	}
	dd.DepthMask(d.m_depthMask)
	dd.Begin(d.m_prim, d.m_primSize)
	for i, p := range d.m_pos {
		dd.Vertex(p, d.m_color[i])
	}
	dd.End()
}
