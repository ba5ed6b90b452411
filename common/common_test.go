package common

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForCoversRange(t *testing.T) {
	for _, p := range []Parallel{
		{Threshold: 1000},
		{Threshold: 1, Workers: 1},
		{Threshold: 1, Workers: 3},
		{Threshold: 1, Workers: 64},
		{Threshold: 1},
	} {
		const n = 257
		hits := make([]int32, n)
		var calls atomic.Int32
		err := ParallelFor(n, p, func(lo, hi int) error {
			calls.Add(1)
			for i := lo; i < hi; i++ {
				hits[i]++
			}
			return nil
		})
		require.NoError(t, err)
		for i, h := range hits {
			assert.Equal(t, int32(1), h, "index %d with %+v", i, p)
		}
		if p.Workers > 1 {
			assert.LessOrEqual(t, int(calls.Load()), p.Workers)
		}
	}
	assert.NoError(t, ParallelFor(0, DefaultParallel(), func(lo, hi int) error {
		return errors.New("never called")
	}))
}

func TestParallelForError(t *testing.T) {
	boom := errors.New("boom")
	err := ParallelFor(100, Parallel{Threshold: 1, Workers: 4}, func(lo, hi int) error {
		if lo <= 50 && 50 < hi {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestInvalidInputError(t *testing.T) {
	err := NewInvalidInput(KindIndexOutOfRange, 4, "index %d of %d", 9, 3)
	assert.Equal(t, "invalid input: vertex index out of range at 4: index 9 of 3", err.Error())
	wrapped := fmt.Errorf("extract: %w", err)
	assert.ErrorIs(t, wrapped, ErrIndexOutOfRange)
	assert.NotErrorIs(t, wrapped, ErrNonTriangularFace)

	var iie *InvalidInputError
	require.ErrorAs(t, wrapped, &iie)
	assert.Equal(t, 4, iie.Index)

	assert.Equal(t, "invalid input: invalid iso value", ErrInvalidIsoValue.Error())
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger(LogOptions{Level: "loud"})
	assert.Error(t, err)

	opts := DefaultLogOptions()
	opts.File = filepath.Join(t.TempDir(), "mesh.log")
	log, err := NewLogger(opts)
	require.NoError(t, err)
	log.Info("hello")
	log.Debug("filtered")
	_ = log.Sync()

	data, err := os.ReadFile(opts.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.NotContains(t, string(data), "filtered")

	assert.NotNil(t, OrNop(nil))
}

func TestVectorMath(t *testing.T) {
	x, y, z := Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}
	assert.Equal(t, 1.0, Vtriple(x, y, z))
	assert.Equal(t, -1.0, Vtriple(x, z, y))
	assert.Equal(t, Vec3{0.5, 0.5, 0}, Vlerp(x, y, 0.5))
	assert.True(t, Vequal(x, Vec3{1, 1e-10, 0}, 1e-9))
	assert.False(t, Vequal(x, y, 1e-9))
	assert.False(t, Visfinite(Vec3{0, math.Inf(1), 0}))
	assert.Equal(t, 2, Clamp(5, 0, 2))

	lo, hi := MinMax([]float64{3, -1, 7, 2})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)

	flat := FlattenVec3([]Vec3{x, z})
	assert.Equal(t, z, ToVec3(GetVert3(flat, 1)))
}
