package isocurve

import (
	"math"

	"github.com/gorustyt/gomeshfield/common"
)

// Normalize min-max scales values into [0,1]. A constant field has no level
// set to extract, so it maps to all zeros instead of dividing by zero.
func Normalize(values []float64) []float64 {
	return normalize(values, common.DefaultParallel())
}

func normalize(values []float64, p common.Parallel) []float64 {
	res := make([]float64, len(values))
	lo, hi := common.MinMax(values)
	if hi == lo {
		return res
	}
	span := hi - lo
	// finite ranges wider than MaxFloat64 are scaled at half size
	half := math.IsInf(span, 0)
	if half {
		span = hi/2 - lo/2
	}
	_ = common.ParallelFor(len(values), p, func(start, end int) error {
		for i := start; i < end; i++ {
			if half {
				res[i] = (values[i]/2 - lo/2) / span
			} else {
				res[i] = (values[i] - lo) / span
			}
		}
		return nil
	})
	return res
}
