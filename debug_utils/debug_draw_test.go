package debug_utils

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/isocurve"
	"github.com/gorustyt/gomeshfield/mesh"
	"github.com/gorustyt/gomeshfield/winding"
)

func TestColors(t *testing.T) {
	var c Colorb
	c.FromInt(DuRGBA(1, 2, 3, 4).Int())
	assert.Equal(t, Colorb{1, 2, 3, 4}, c)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, c.NRGBA())

	a, b := DuRGBA(0, 0, 0, 255), DuRGBA(255, 255, 255, 255)
	assert.Equal(t, a, DuLerpCol(a, b, 0))
	assert.Equal(t, b, DuLerpCol(a, b, 255))
	assert.Equal(t, uint8(7), DuTransCol(b, 7).A())

	assert.Equal(t, DuRGBA(32, 64, 224, 255), DuFieldCol(-1, 255))
	assert.Equal(t, DuRGBA(64, 200, 64, 255), DuFieldCol(0.5, 255))
	assert.Equal(t, DuRGBA(224, 48, 32, 255), DuFieldCol(2, 255))
	assert.NotEqual(t, DuIntToCol(1, 255), DuIntToCol(2, 255))
}

func TestDisplayListReplay(t *testing.T) {
	m := mesh.Grid(2, 1, 1)
	dl := NewDuDisplayList(0)
	DuDebugDrawMeshWire(dl, m, DuRGBA(0, 0, 0, 255), 1)
	assert.Equal(t, DU_DRAW_LINES, dl.Prim())
	// two quads, four edges each
	assert.Equal(t, 16, dl.Size())

	cp := NewDuDisplayList(8)
	dl.Draw(cp)
	assert.Equal(t, dl.Size(), cp.Size())
	dl.Draw(NewDuDebugDraw())

	DuDebugDrawBoxWire(dl, common.Vec3{}, common.Vec3{1, 1, 1}, DuRGBA(0, 0, 0, 255), 1)
	assert.Equal(t, 24, dl.Size())

	DuDebugDrawGridXY(dl, common.Vec3{}, 3, 2, 0.5, DuRGBA(0, 0, 0, 255), 1)
	assert.Equal(t, 2*(3+1)+2*(2+1), dl.Size())

}

func TestMeshFieldDraw(t *testing.T) {
	m := mesh.Grid(1, 1, 1)
	m.AddVertex(common.Vec3{5, 5, 0})
	m.AddFace(mesh.Tri(1, 4, 2))
	field := []float64{0, 0.25, 0.5, 1, 1}

	dl := NewDuDisplayList(0)
	DuDebugDrawMeshField(dl, m, field, 0.5)
	assert.Equal(t, DU_DRAW_TRIS, dl.Prim())
	assert.Equal(t, 9, dl.Size())

	other := NewDuDisplayList(0)
	DuDebugDrawMeshField(other, m, field[:2])
	assert.Equal(t, 0, other.Size())
}

func TestContourAndWindingDraw(t *testing.T) {
	m := mesh.Grid(4, 4, 1)
	field := mesh.ProjectField(m, func(p common.Vec3) float64 { return p[0] })
	segs, err := isocurve.Extract(m, field, 1.5)
	require.NoError(t, err)

	dl := NewDuDisplayList(0)
	DuDebugDrawSegments(dl, segs, DuRGBA(255, 255, 255, 255), 2)
	assert.Equal(t, 2*len(segs), dl.Size())

	// the x = 1.5 line is one open polyline, so two end markers
	levels, err := isocurve.NewExtractor().ExtractLevels(m, field, []float64{1.5})
	require.NoError(t, err)
	DuDebugDrawLevels(dl, levels, isocurve.DefaultJoinTolerance)
	assert.Equal(t, DU_DRAW_POINTS, dl.Prim())
	assert.Equal(t, 2, dl.Size())

	pts := []common.Vec3{{0.5, 0.5, 0.5}, {3, 3, 3}}
	res, err := winding.NewClassifier().ClassifyPoints(mesh.Box(common.Vec3{}, common.Vec3{1, 1, 1}), pts)
	require.NoError(t, err)
	DuDebugDrawWinding(dl, pts, res, 0.1)
	assert.Equal(t, 12, dl.Size())
}

func TestImageDebugDraw(t *testing.T) {
	black := color.RGBA{A: 255}
	d := NewImageDebugDraw(100, 100, common.Vec3{0, 0, 0}, common.Vec3{1, 1, 0}, 0)
	d.Fill(DuRGBA(0, 0, 0, 255))
	assert.Equal(t, common.Vec2{50, 50}, d.Project(common.Vec3{0.5, 0.5, 7}))

	d.Begin(DU_DRAW_LINES, 3)
	d.Vertex1(0, 0.5, 0, DuRGBA(255, 255, 255, 255))
	d.Vertex1(1, 0.5, 0, DuRGBA(255, 255, 255, 255))
	d.End()
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, d.Image().RGBAAt(50, 50))
	assert.Equal(t, black, d.Image().RGBAAt(50, 10))

	d.Begin(DU_DRAW_TRIS)
	d.Vertex1(0, 0, 0, DuRGBA(255, 0, 0, 255))
	d.Vertex1(1, 0, 0, DuRGBA(255, 0, 0, 255))
	d.Vertex1(0, 1, 0, DuRGBA(255, 0, 0, 255))
	d.End()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, d.Image().RGBAAt(10, 80))
	assert.Equal(t, black, d.Image().RGBAAt(90, 10))

	// an incomplete primitive is dropped
	d.Begin(DU_DRAW_QUADS)
	d.Vertex1(0, 0, 0, DuRGBA(0, 255, 0, 255))
	d.End()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, d.Image().RGBAAt(10, 80))
}

func TestImageDebugDrawClipsToPrimitive(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{A: 255}
	d := NewImageDebugDraw(100, 100, common.Vec3{0, 0, 0}, common.Vec3{1, 1, 0}, 0)
	d.Fill(DuRGBA(0, 0, 0, 255))

	// a diagonal line runs through its own box only
	d.Begin(DU_DRAW_LINES, 2)
	d.Vertex1(0.2, 0.2, 0, DuRGBA(255, 255, 255, 255))
	d.Vertex1(0.6, 0.6, 0, DuRGBA(255, 255, 255, 255))
	d.End()
	assert.Equal(t, white, d.Image().RGBAAt(40, 59))
	assert.Equal(t, white, d.Image().RGBAAt(30, 69))
	assert.Equal(t, black, d.Image().RGBAAt(40, 40))
	assert.Equal(t, black, d.Image().RGBAAt(70, 30))

	// a triangle sticking out of the image keeps the visible part
	d.Begin(DU_DRAW_TRIS)
	d.Vertex1(-1, -1, 0, DuRGBA(0, 0, 255, 255))
	d.Vertex1(1.5, -1, 0, DuRGBA(0, 0, 255, 255))
	d.Vertex1(-1, 1.5, 0, DuRGBA(0, 0, 255, 255))
	d.End()
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, d.Image().RGBAAt(2, 98))
	assert.Equal(t, black, d.Image().RGBAAt(90, 10))

	// fully off the image draws nothing
	d.Begin(DU_DRAW_POINTS, 4)
	d.Vertex1(5, 5, 0, DuRGBA(0, 255, 0, 255))
	d.End()
	assert.Equal(t, black, d.Image().RGBAAt(99, 0))
}

func TestImageDebugDrawLargeGrid(t *testing.T) {
	m := mesh.Grid(40, 40, 1)
	field := mesh.ProjectField(m, func(p common.Vec3) float64 { return p[0] / 40 })
	bmin, bmax := m.Bounds()
	d := NewImageDebugDraw(800, 800, bmin, bmax, 16)

	start := time.Now()
	DuDebugDrawMeshField(d, m, field, 0.6)
	DuDebugDrawMeshWire(d, m, DuRGBA(0, 0, 0, 64), 1)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.NotEqual(t, color.RGBA{}, d.Image().RGBAAt(400, 400))
}
