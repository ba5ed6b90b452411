package debug_utils

import (
	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/isocurve"
	"github.com/gorustyt/gomeshfield/mesh"
	"github.com/gorustyt/gomeshfield/winding"
)

func alphaOf(alphas []float64) int {
	if len(alphas) > 0 {
		return int(common.Clamp(alphas[0], 0, 1) * 255)
	}
	return 255
}

// DuDebugDrawMeshWire draws every face edge of src. Faces with malformed
// indices are skipped.
func DuDebugDrawMeshWire(dd DuDebugDraw, src mesh.Source, col Colorb, lineWidth float64) {
	if dd == nil {
		return
	}

	nv := src.VertexCount()
	dd.Begin(DU_DRAW_LINES, lineWidth)
	for i := 0; i < src.FaceCount(); i++ {
		f := src.Face(i)
		if f.Check(i, nv, false) != nil {
			continue
		}
		j, k := 0, f.Count-1
		for j < f.Count {
			dd.Vertex(src.Vertex(f.Indices[k]), col)
			dd.Vertex(src.Vertex(f.Indices[j]), col)
			k = j
			j++
		}
	}
	dd.End()
}

// DuDebugDrawMeshField fills the faces of src with field, which is expected
// in [0,1], using per-vertex ramp colors. Quads are split into two triangles.
func DuDebugDrawMeshField(dd DuDebugDraw, src mesh.Source, field []float64, alphas ...float64) {
	if dd == nil {
		return
	}
	if len(field) != src.VertexCount() {
		return
	}

	a := uint8(alphaOf(alphas))
	nv := src.VertexCount()
	vert := func(v int) {
		dd.Vertex(src.Vertex(v), DuFieldCol(field[v], a))
	}
	dd.Begin(DU_DRAW_TRIS)
	for i := 0; i < src.FaceCount(); i++ {
		f := src.Face(i)
		if f.Check(i, nv, false) != nil {
			continue
		}
		v := f.Indices
		vert(v[0])
		vert(v[1])
		vert(v[2])
		if f.IsQuad() {
			vert(v[0])
			vert(v[2])
			vert(v[3])
		}
	}
	dd.End()
}

// DuDebugDrawSegments draws raw iso segments.
func DuDebugDrawSegments(dd DuDebugDraw, segs []isocurve.Segment, col Colorb, lineWidth float64) {
	if dd == nil {
		return
	}

	dd.Begin(DU_DRAW_LINES, lineWidth)
	for _, s := range segs {
		dd.Vertex(s.From, col)
		dd.Vertex(s.To, col)
	}
	dd.End()
}

// DuDebugDrawLevels draws one segment set per level, each in its own color,
// then marks the end points of open polylines.
func DuDebugDrawLevels(dd DuDebugDraw, levels [][]isocurve.Segment, tol float64, alphas ...float64) {
	if dd == nil {
		return
	}

	a := alphaOf(alphas)
	dd.Begin(DU_DRAW_LINES, 2.5)
	for i, segs := range levels {
		color := DuIntToCol(i+1, a)
		for _, s := range segs {
			dd.Vertex(s.From, color)
			dd.Vertex(s.To, color)
		}
	}
	dd.End()

	dd.Begin(DU_DRAW_POINTS, 3.0)
	for i, segs := range levels {
		color := DuDarkenCol(DuIntToCol(i+1, a))
		for _, pl := range isocurve.Join(segs, tol) {
			if pl.Closed {
				continue
			}
			dd.Vertex(pl.Points[0], color)
			dd.Vertex(pl.Points[len(pl.Points)-1], color)
		}
	}
	dd.End()
}

// DuDebugDrawWinding marks each query point with a cross, green when it
// classified as inside and red otherwise.
func DuDebugDrawWinding(dd DuDebugDraw, pts []common.Vec3, res []winding.Result, size float64) {
	if dd == nil {
		return
	}

	inside := DuRGBA(0, 192, 0, 255)
	outside := DuRGBA(224, 0, 0, 255)
	dd.Begin(DU_DRAW_LINES, 2.0)
	for i, p := range pts {
		if i >= len(res) {
			break
		}
		col := outside
		if res[i].Inside {
			col = inside
		}
		DuAppendCross(dd, p, size, col)
	}
	dd.End()
}
