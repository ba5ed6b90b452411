package isocurve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorustyt/gomeshfield/common"
)

func seg(a, b common.Vec3) Segment {
	return Segment{From: a, To: b}
}

func TestJoinOpenChain(t *testing.T) {
	a, b, c := common.Vec3{0, 0, 0}, common.Vec3{1, 0, 0}, common.Vec3{1, 1, 0}
	lines := Join([]Segment{seg(a, b), seg(c, b)}, 0)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Closed)
	assert.Equal(t, []common.Vec3{a, b, c}, lines[0].Points)
}

func TestJoinClosedLoop(t *testing.T) {
	p := []common.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	segs := []Segment{seg(p[2], p[1]), seg(p[3], p[0]), seg(p[0], p[1]), seg(p[2], p[3])}
	lines := Join(segs, 0)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Closed)
	assert.Len(t, lines[0].Points, 4)
	assert.ElementsMatch(t, p, lines[0].Points)
}

func TestJoinTolerance(t *testing.T) {
	a, b := common.Vec3{0, 0, 0}, common.Vec3{1, 0, 0}
	b2 := common.Vec3{1, 1e-6, 0}
	c := common.Vec3{2, 0, 0}
	segs := []Segment{seg(a, b), seg(b2, c)}

	assert.Len(t, Join(segs, 1e-9), 2)

	lines := Join(segs, 1e-5)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0].Points, 3)
}

func TestJoinDropsDegenerateSegments(t *testing.T) {
	a, b := common.Vec3{0, 0, 0}, common.Vec3{1, 0, 0}
	lines := Join([]Segment{seg(a, a), seg(a, b)}, 0)
	require.Len(t, lines, 1)
	assert.Equal(t, []common.Vec3{a, b}, lines[0].Points)

	assert.Empty(t, Join(nil, 0))
}
