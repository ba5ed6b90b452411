package common

import (
	"cmp"
	"math"
)

func Clamp[T cmp.Ordered](value, minInclusive, maxInclusive T) T {
	if value < minInclusive {
		return minInclusive
	}
	if value > maxInclusive {
		return maxInclusive
	}
	return value
}

// / Performs a linear interpolation between two vectors. (@p v1 toward @p v2)
// /  @param[in]		v1		The starting vector.
// /  @param[in]		v2		The destination vector.
// /	 @param[in]		t		The interpolation factor. [Limits: 0 <= value <= 1.0]
func Vlerp(v1, v2 Vec3, t float64) Vec3 {
	return Vec3{
		v1[0] + (v2[0]-v1[0])*t,
		v1[1] + (v2[1]-v1[1])*t,
		v1[2] + (v2[2]-v1[2])*t,
	}
}

// / Returns the scalar triple product a . (b x c), expanded as the 3x3 determinant.
func Vtriple(a, b, c Vec3) float64 {
	return a[0]*(b[1]*c[2]-c[1]*b[2]) -
		a[1]*(b[0]*c[2]-c[0]*b[2]) +
		a[2]*(b[0]*c[1]-c[0]*b[1])
}

// / Returns the square of the distance between two points.
func VdistSqr(v1, v2 Vec3) float64 {
	dx := v2[0] - v1[0]
	dy := v2[1] - v1[1]
	dz := v2[2] - v1[2]
	return dx*dx + dy*dy + dz*dz
}

// / Performs a 'sloppy' colocation check of the specified points.
// / Returns true if the points are closer than eps.
func Vequal(p0, p1 Vec3, eps float64) bool {
	return VdistSqr(p0, p1) <= eps*eps
}

func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// / Checks that the specified vector's components are all finite.
func Visfinite(v Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// MinMax returns the smallest and largest values of vs. Both are zero for an
// empty slice.
func MinMax(vs []float64) (lo, hi float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
