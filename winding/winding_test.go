package winding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/mesh"
)

const tol = 1e-6

func unitCube() *mesh.Mesh {
	return mesh.Box(common.Vec3{0, 0, 0}, common.Vec3{1, 1, 1})
}

func TestCubeCenterAndFar(t *testing.T) {
	cube := unitCube()

	res, err := Classify(cube, common.Vec3{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, math.Abs(res.Number), tol)
	assert.True(t, res.Inside)

	for _, far := range []common.Vec3{{100.5, 0.5, 0.5}, {0.5, -100, 0.5}, {0.5, 0.5, 100.5}} {
		res, err = Classify(cube, far)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, res.Number, tol, "point %v", far)
		assert.False(t, res.Inside)
	}
}

func TestOutwardOrientationIsPositive(t *testing.T) {
	res, err := Classify(unitCube(), common.Vec3{0.25, 0.6, 0.9})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Number, tol)
}

func TestReversedOrientation(t *testing.T) {
	cube := unitCube()
	for i, f := range cube.Faces {
		cube.Faces[i] = mesh.Tri(f.Indices[0], f.Indices[2], f.Indices[1])
	}
	res, err := Classify(cube, common.Vec3{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, res.Number, tol)
	assert.True(t, res.Inside)
}

func TestOpenMesh(t *testing.T) {
	cube := unitCube()
	cube.Faces = cube.Faces[:10] // drop the +x side

	res, err := Classify(cube, common.Vec3{0.5, 0.5, 0.5})
	require.NoError(t, err)
	// five of six sides seen from the center
	assert.InDelta(t, 5.0/6.0, res.Number, tol)
	assert.True(t, res.Inside)

	res, err = Classify(cube, common.Vec3{0.5, 0.5, 3})
	require.NoError(t, err)
	assert.Less(t, math.Abs(res.Number), InsideThreshold)
	assert.False(t, res.Inside)
}

func TestSolidAngle(t *testing.T) {
	o := common.Vec3{0, 0, 0}
	x, y, z := common.Vec3{1, 0, 0}, common.Vec3{0, 1, 0}, common.Vec3{0, 0, 1}

	// one octant of the sphere
	assert.InDelta(t, math.Pi/2, TriangleSolidAngle(o, x, y, z), 1e-12)
	assert.InDelta(t, -math.Pi/2, TriangleSolidAngle(o, x, z, y), 1e-12)

	// degenerate triangles contribute nothing
	assert.Equal(t, 0.0, TriangleSolidAngle(o, x, x, y))
	assert.Equal(t, 0.0, TriangleSolidAngle(x, x, y, z))
	assert.Equal(t, 0.0, SolidAngle(o, o, o, 0, 0, 0))
}

func TestQueryOnVertex(t *testing.T) {
	res, err := Classify(unitCube(), common.Vec3{0, 0, 0})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(res.Number))
}

func TestQuadsMustBeTriangulated(t *testing.T) {
	quads := &mesh.Mesh{Vertices: unitCube().Vertices}
	for _, q := range [6][4]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{2, 3, 7, 6}, {0, 4, 7, 3}, {1, 2, 6, 5},
	} {
		quads.AddFace(mesh.Quad(q[0], q[1], q[2], q[3]))
	}
	_, err := Classify(quads, common.Vec3{0.5, 0.5, 0.5})
	assert.ErrorIs(t, err, common.ErrNonTriangularFace)

	res, err := Classify(mesh.Triangulate(quads), common.Vec3{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Number, tol)

	bad := unitCube()
	bad.AddFace(mesh.Tri(0, 1, 8))
	_, err = Classify(bad, common.Vec3{})
	assert.ErrorIs(t, err, common.ErrIndexOutOfRange)
}

func TestParallelMatchesSequential(t *testing.T) {
	cube := unitCube()
	q := common.Vec3{0.3, 0.2, 0.7}
	seq := NewClassifier(WithParallel(common.Parallel{Threshold: math.MaxInt}), WithVertexThreshold(math.MaxInt))
	par := NewClassifier(WithParallel(common.Parallel{Threshold: 1, Workers: 5}), WithVertexThreshold(1))

	a, err := seq.Classify(cube, q)
	require.NoError(t, err)
	b, err := par.Classify(cube, q)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClassifyPoints(t *testing.T) {
	cube := mesh.Box(common.Vec3{-1, -2, -3}, common.Vec3{1, 2, 3})
	var pts []common.Vec3
	var want []bool
	for _, x := range []float64{-1.5, -0.5, 0.5, 1.5} {
		for _, y := range []float64{-2.5, 0, 2.5} {
			for _, z := range []float64{-3.5, -1, 2, 3.5} {
				pts = append(pts, common.Vec3{x, y, z})
				want = append(want, math.Abs(x) < 1 && math.Abs(y) < 2 && math.Abs(z) < 3)
			}
		}
	}
	res, err := NewClassifier().ClassifyPoints(cube, pts)
	require.NoError(t, err)
	require.Len(t, res, len(pts))
	for i, r := range res {
		assert.Equal(t, want[i], r.Inside, "point %v: %v", pts[i], r.Number)
	}
}
