// Package isocurve extracts iso-contour line segments from a scalar field
// sampled at the vertices of a triangle/quad mesh.
//
// Every face is classified independently against a case table (marching
// triangles for triangles, marching squares for quads), so faces are
// processed in parallel and the result for a given mesh, field and iso value
// is reproducible. Segments are not stitched; see Join.
package isocurve

import (
	"math"

	"go.uber.org/zap"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/mesh"
)

// Segment is one piece of a contour, lying on face Face.
type Segment struct {
	From, To common.Vec3
	Face     int
}

type Option func(*Extractor)

func WithParallel(p common.Parallel) Option {
	return func(e *Extractor) { e.parallel = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) { e.log = common.OrNop(l) }
}

// Extractor runs contour extraction. It holds no per-call state and is safe
// for concurrent use.
type Extractor struct {
	parallel common.Parallel
	log      *zap.Logger
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{parallel: common.DefaultParallel(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// Extract runs the default extractor. field must hold one value per vertex,
// expressed in the same range as iso.
func Extract(src mesh.Source, field []float64, iso float64) ([]Segment, error) {
	return defaultExtractor.Extract(src, field, iso)
}

// Normalize is Normalize with the extractor's parallelism.
func (e *Extractor) Normalize(values []float64) []float64 {
	return normalize(values, e.parallel)
}

// faceSegs is the private output slot of one face.
type faceSegs struct {
	segs [2]Segment
	n    int8
}

// Extract returns the segments of the level set field == iso over src.
// A vertex is above the level when its value is strictly greater than iso.
func (e *Extractor) Extract(src mesh.Source, field []float64, iso float64) ([]Segment, error) {
	if err := checkInput(src, field, iso); err != nil {
		return nil, err
	}
	above := e.classify(field, iso)
	slots := make([]faceSegs, src.FaceCount())
	nv := src.VertexCount()
	err := common.ParallelFor(len(slots), e.parallel, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			f := src.Face(i)
			if err := f.Check(i, nv, false); err != nil {
				return err
			}
			contourFace(src, field, above, iso, i, f, &slots[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res := gather(slots)
	e.log.Debug("iso contour extracted",
		zap.Int("vertices", nv),
		zap.Int("faces", len(slots)),
		zap.Float64("iso", iso),
		zap.Int("segments", len(res)))
	return res, nil
}

// ExtractRaw normalizes values into [0,1] before extracting, so iso is a
// fraction of the field's range.
func (e *Extractor) ExtractRaw(src mesh.Source, values []float64, iso float64) ([]Segment, error) {
	if err := checkInput(src, values, iso); err != nil {
		return nil, err
	}
	return e.Extract(src, e.Normalize(values), iso)
}

// ExtractChannel contours one channel of the mesh's vertex colors, normalized
// into [0,1].
func (e *Extractor) ExtractChannel(m *mesh.Mesh, ch mesh.Channel, iso float64) ([]Segment, error) {
	if !m.HasColors() {
		return nil, common.NewInvalidInput(common.KindFieldCountMismatch, -1,
			"%d colors for %d vertices", len(m.Colors), m.VertexCount())
	}
	values, err := mesh.ChannelField(m.Colors, ch)
	if err != nil {
		return nil, err
	}
	return e.ExtractRaw(m, values, iso)
}

// ExtractLevels extracts one segment set per iso value, in the order given.
func (e *Extractor) ExtractLevels(src mesh.Source, field []float64, isos []float64) ([][]Segment, error) {
	res := make([][]Segment, len(isos))
	for i, iso := range isos {
		segs, err := e.Extract(src, field, iso)
		if err != nil {
			return nil, err
		}
		res[i] = segs
	}
	return res, nil
}

// Levels returns n iso values evenly spaced strictly inside (lo, hi).
func Levels(lo, hi float64, n int) []float64 {
	res := make([]float64, 0, max(n, 0))
	step := (hi - lo) / float64(n+1)
	for i := 1; i <= n; i++ {
		res = append(res, lo+step*float64(i))
	}
	return res
}

func checkInput(src mesh.Source, field []float64, iso float64) error {
	if math.IsNaN(iso) {
		return common.NewInvalidInput(common.KindInvalidIsoValue, -1, "NaN")
	}
	if len(field) != src.VertexCount() {
		return common.NewInvalidInput(common.KindFieldCountMismatch, -1,
			"%d values for %d vertices", len(field), src.VertexCount())
	}
	for i, v := range field {
		if !common.IsFinite(v) {
			return common.NewInvalidInput(common.KindNonFiniteValue, i, "%v", v)
		}
	}
	return nil
}

func (e *Extractor) classify(field []float64, iso float64) []bool {
	above := make([]bool, len(field))
	_ = common.ParallelFor(len(field), e.parallel, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			above[i] = field[i] > iso
		}
		return nil
	})
	return above
}

// caseIndex packs the corner states of f, first corner in the high bit.
func caseIndex(f mesh.Face, above []bool) int {
	powers := triPowers[:]
	if f.IsQuad() {
		powers = quadPowers[:]
	}
	idx := 0
	for j, v := range f.Verts() {
		if above[v] {
			idx += powers[j]
		}
	}
	return idx
}

func contourFace(src mesh.Source, field []float64, above []bool, iso float64, fi int, f mesh.Face, out *faceSegs) {
	k := f.Count
	c := caseIndex(f, above)
	if c == 0 || c == 1<<k-1 {
		return
	}
	ind := f.Verts()
	crossing := func(edge int8) common.Vec3 {
		a, b := ind[edge], ind[(int(edge)+1)%k]
		t := (iso - field[a]) / (field[b] - field[a])
		return common.Vlerp(src.Vertex(a), src.Vertex(b), t)
	}
	emit := func(pair [2]int8) {
		out.segs[out.n] = Segment{From: crossing(pair[0]), To: crossing(pair[1]), Face: fi}
		out.n++
	}

	if !f.IsQuad() {
		emit(triCases[c-1])
		return
	}
	if !isQuadSaddle(c) {
		emit(quadCases[c-1])
		return
	}
	center := (field[ind[0]] + field[ind[1]] + field[ind[2]] + field[ind[3]]) / 4
	pairs := saddlePairs[saddleConnection(c, center > iso)]
	emit(pairs[0])
	emit(pairs[1])
}

func gather(slots []faceSegs) []Segment {
	n := 0
	for i := range slots {
		n += int(slots[i].n)
	}
	res := make([]Segment, 0, n)
	for i := range slots {
		res = append(res, slots[i].segs[:slots[i].n]...)
	}
	return res
}
