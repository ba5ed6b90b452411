package isocurve

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorustyt/gomeshfield/common"
)

func TestNormalizeRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 5000)
	for i := range values {
		values[i] = rng.NormFloat64()*1e3 + 42
	}
	parallel := common.Parallel{Threshold: 1, Workers: 8}
	for _, got := range [][]float64{Normalize(values), normalize(values, parallel)} {
		require.Len(t, got, len(values))
		lo, hi := common.MinMax(got)
		assert.Equal(t, 0.0, lo)
		assert.Equal(t, 1.0, hi)
		for i := 0; i < 2000; i++ {
			a, b := rng.Intn(len(values)), rng.Intn(len(values))
			assert.Equal(t, values[a] <= values[b], got[a] <= got[b], "order of %d and %d", a, b)
		}
	}
}

func TestNormalizeValues(t *testing.T) {
	got := Normalize([]float64{0, 255, 51, 127.5})
	assert.InDeltaSlice(t, []float64{0, 1, 0.2, 0.5}, got, 1e-15)

	got = Normalize([]float64{-3, -1, -2})
	assert.Equal(t, []float64{0, 1, 0.5}, got)
}

func TestNormalizeConstantField(t *testing.T) {
	got := Normalize([]float64{5, 5, 5, 5})
	assert.Equal(t, []float64{0, 0, 0, 0}, got)
	for _, v := range got {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}

	assert.Empty(t, Normalize(nil))
	assert.Equal(t, []float64{0}, Normalize([]float64{-12}))
}

func TestNormalizeHugeRange(t *testing.T) {
	values := []float64{-math.MaxFloat64, 0, math.MaxFloat64}
	for _, got := range [][]float64{Normalize(values), normalize(values, common.Parallel{Threshold: 1, Workers: 2})} {
		assert.Equal(t, []float64{0, 0.5, 1}, got)
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Normalize(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}
