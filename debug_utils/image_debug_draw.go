package debug_utils

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gorustyt/gomeshfield/common"
)

// ImageDebugDraw rasterizes primitives into an RGBA image using an
// orthographic projection onto the XY plane. Z is ignored. Line width and
// point size are in pixels.
type ImageDebugDraw struct {
	img    *image.RGBA
	r      *vector.Rasterizer
	origin common.Vec2
	scale  float64

	prim  DuDebugDrawPrimitives
	size  float64
	verts []common.Vec2
	cols  []Colorb
}

// NewImageDebugDraw maps the XY extent [bmin, bmax] into a w by h image,
// keeping the aspect ratio, with margin pixels on every side.
func NewImageDebugDraw(w, h int, bmin, bmax common.Vec3, margin int) *ImageDebugDraw {
	d := &ImageDebugDraw{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		r:    vector.NewRasterizer(w, h),
		prim: DU_DRAW_LINES,
		size: 1,
	}
	ext := bmax.Sub(bmin)
	aw, ah := float64(w-2*margin), float64(h-2*margin)
	d.scale = 1
	if ext[0] > 0 || ext[1] > 0 {
		d.scale = math.Min(aw/math.Max(ext[0], 1e-12), ah/math.Max(ext[1], 1e-12))
	}
	// center the extent
	cx, cy := (bmin[0]+bmax[0])/2, (bmin[1]+bmax[1])/2
	d.origin = common.Vec2{float64(w)/2 - cx*d.scale, float64(h)/2 + cy*d.scale}
	return d
}

func (d *ImageDebugDraw) Image() *image.RGBA {
	return d.img
}

// Fill clears the whole image to col.
func (d *ImageDebugDraw) Fill(col Colorb) {
	draw.Draw(d.img, d.img.Bounds(), image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// Project returns the pixel position of p.
func (d *ImageDebugDraw) Project(p common.Vec3) common.Vec2 {
	return common.Vec2{d.origin[0] + p[0]*d.scale, d.origin[1] - p[1]*d.scale}
}

func (d *ImageDebugDraw) DepthMask(state bool) {}

func (d *ImageDebugDraw) Begin(prim DuDebugDrawPrimitives, size ...float64) {
	d.prim = prim
	d.size = primSize(size)
	d.verts = d.verts[:0]
	d.cols = d.cols[:0]
}

func (d *ImageDebugDraw) Vertex(pos common.Vec3, color Colorb) {
	d.verts = append(d.verts, d.Project(pos))
	d.cols = append(d.cols, color)
	if len(d.verts) == d.primVerts() {
		d.flush()
	}
}

func (d *ImageDebugDraw) Vertex1(x, y, z float64, color Colorb) {
	d.Vertex(common.Vec3{x, y, z}, color)
}

// End drops an incomplete trailing primitive.
func (d *ImageDebugDraw) End() {
	d.verts = d.verts[:0]
	d.cols = d.cols[:0]
}

func (d *ImageDebugDraw) primVerts() int {
	switch d.prim {
	case DU_DRAW_POINTS:
		return 1
	case DU_DRAW_LINES:
		return 2
	case DU_DRAW_TRIS:
		return 3
	default:
		return 4
	}
}

func (d *ImageDebugDraw) flush() {
	var pts []common.Vec2
	switch d.prim {
	case DU_DRAW_POINTS:
		pts = square(d.verts[0], d.size)
	case DU_DRAW_LINES:
		pts = line(d.verts[0], d.verts[1], d.size)
	default:
		pts = d.verts
	}
	d.fillPolygon(pts, avgColor(d.cols))
	d.verts = d.verts[:0]
	d.cols = d.cols[:0]
}

// fillPolygon rasterizes pts over their pixel bounding box only, clipped
// to the image.
func (d *ImageDebugDraw) fillPolygon(pts []common.Vec2, col color.NRGBA) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	if !common.IsFinite(minX) || !common.IsFinite(minY) || !common.IsFinite(maxX) || !common.IsFinite(maxY) {
		return
	}
	bb := image.Rect(
		int(math.Floor(math.Max(minX, -1))), int(math.Floor(math.Max(minY, -1))),
		int(math.Ceil(math.Min(maxX, float64(d.img.Bounds().Max.X+1)))),
		int(math.Ceil(math.Min(maxY, float64(d.img.Bounds().Max.Y+1)))),
	).Intersect(d.img.Bounds())
	if bb.Empty() {
		return
	}
	ox, oy := float32(bb.Min.X), float32(bb.Min.Y)
	d.r.Reset(bb.Dx(), bb.Dy())
	d.r.MoveTo(float32(pts[0][0])-ox, float32(pts[0][1])-oy)
	for _, p := range pts[1:] {
		d.r.LineTo(float32(p[0])-ox, float32(p[1])-oy)
	}
	d.r.ClosePath()
	d.r.DrawOp = draw.Over
	d.r.Draw(d.img, bb, image.NewUniform(col), image.Point{})
}

func square(c common.Vec2, size float64) []common.Vec2 {
	h := math.Max(size, 1) / 2
	return []common.Vec2{
		{c[0] - h, c[1] - h}, {c[0] + h, c[1] - h},
		{c[0] + h, c[1] + h}, {c[0] - h, c[1] + h},
	}
}

// line outlines a segment as a quad of the given width.
func line(a, b common.Vec2, width float64) []common.Vec2 {
	dir := b.Sub(a)
	l := dir.Len()
	if l < 1e-9 {
		return square(a, width)
	}
	n := common.Vec2{-dir[1], dir[0]}.Mul(math.Max(width, 1) / 2 / l)
	return []common.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

func avgColor(cols []Colorb) color.NRGBA {
	var sum [4]int
	for _, c := range cols {
		for i := range sum {
			sum[i] += int(c[i])
		}
	}
	n := len(cols)
	return color.NRGBA{
		R: uint8(sum[0] / n),
		G: uint8(sum[1] / n),
		B: uint8(sum[2] / n),
		A: uint8(sum[3] / n),
	}
}
