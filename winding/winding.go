// Package winding classifies points against a triangle mesh with the
// generalized winding number: the signed solid angles of all faces, as seen
// from the query point, summed and divided by 4π. The mesh need not be closed.
package winding

import (
	"math"

	"go.uber.org/zap"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/mesh"
)

// InsideThreshold is the |winding number| above which a point is inside.
const InsideThreshold = 0.5

type Result struct {
	Inside bool
	Number float64
}

type Option func(*Classifier)

// WithParallel sets the per-face loop parallelism.
func WithParallel(p common.Parallel) Option {
	return func(c *Classifier) { c.faces = p }
}

// WithVertexThreshold sets the vertex count from which displacement vectors
// are computed in parallel.
func WithVertexThreshold(n int) Option {
	return func(c *Classifier) { c.vertThreshold = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Classifier) { c.log = common.OrNop(l) }
}

// Classifier is stateless between calls and safe for concurrent use.
type Classifier struct {
	faces         common.Parallel
	vertThreshold int
	log           *zap.Logger
}

func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		faces:         common.DefaultParallel(),
		vertThreshold: common.DefaultParallelThreshold,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = NewClassifier()

// Classify runs the default classifier.
func Classify(src mesh.Source, q common.Vec3) (Result, error) {
	return defaultClassifier.Classify(src, q)
}

// Classify computes the winding number of src around q. Every face must be a
// triangle; see mesh.Triangulate.
func (c *Classifier) Classify(src mesh.Source, q common.Vec3) (Result, error) {
	if err := mesh.Validate(src, true); err != nil {
		return Result{}, err
	}
	res := c.classify(src, q)
	c.log.Debug("winding number",
		zap.Int("faces", src.FaceCount()),
		zap.Float64s("point", q[:]),
		zap.Float64("number", res.Number),
		zap.Bool("inside", res.Inside))
	return res, nil
}

// ClassifyPoints classifies every point of qs, validating src once.
func (c *Classifier) ClassifyPoints(src mesh.Source, qs []common.Vec3) ([]Result, error) {
	if err := mesh.Validate(src, true); err != nil {
		return nil, err
	}
	res := make([]Result, len(qs))
	for i, q := range qs {
		res[i] = c.classify(src, q)
	}
	c.log.Debug("winding numbers",
		zap.Int("faces", src.FaceCount()),
		zap.Int("points", len(qs)))
	return res, nil
}

func (c *Classifier) classify(src mesh.Source, q common.Vec3) Result {
	nv, nf := src.VertexCount(), src.FaceCount()

	d := make([]common.Vec3, nv)
	l := make([]float64, nv)
	vp := common.Parallel{Threshold: c.vertThreshold, Workers: c.faces.Workers}
	_ = common.ParallelFor(nv, vp, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			d[i] = src.Vertex(i).Sub(q)
			l[i] = d[i].Len()
		}
		return nil
	})

	angles := make([]float64, nf)
	_ = common.ParallelFor(nf, c.faces, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			v := src.Face(i).Indices
			a, b, cc := v[0], v[1], v[2]
			angles[i] = SolidAngle(d[a], d[b], d[cc], l[a], l[b], l[cc])
		}
		return nil
	})

	sum := 0.0
	for _, a := range angles {
		sum += a
	}
	w := sum / (4 * math.Pi)
	return Result{Inside: math.Abs(w) > InsideThreshold, Number: w}
}

// SolidAngle returns the signed solid angle subtended by the triangle whose
// corners are at a, b, c relative to the viewpoint, with la, lb, lc their
// lengths (Van Oosterom and Strackee). A degenerate triangle gives 0.
func SolidAngle(a, b, c common.Vec3, la, lb, lc float64) float64 {
	top := common.Vtriple(a, b, c)
	bottom := la*lb*lc + a.Dot(b)*lc + b.Dot(c)*la + c.Dot(a)*lb
	return 2 * math.Atan2(top, bottom)
}

// TriangleSolidAngle is SolidAngle for a triangle given in world space.
func TriangleSolidAngle(p, a, b, c common.Vec3) float64 {
	da, db, dc := a.Sub(p), b.Sub(p), c.Sub(p)
	return SolidAngle(da, db, dc, da.Len(), db.Len(), dc.Len())
}
