package common

import "github.com/go-gl/mathgl/mgl64"

type Vec3 = mgl64.Vec3
type Vec2 = mgl64.Vec2

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
type IIndex interface {
	~int | ~int8 | ~int16 | ~int32 | ~uint | ~uint8 | ~uint16 | ~uint32
}

// GetVert3 returns the index-th xyz triple of a flat vertex buffer.
func GetVert3[T IT, T1 IIndex](verts []T, index T1) []T {
	return verts[index*3 : index*3+3]
}

// ToVec3 converts a flat xyz triple to a Vec3.
func ToVec3[T float32 | float64](v []T) Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// FlattenVec3 writes vertices into a flat xyz buffer.
func FlattenVec3(vs []Vec3) []float64 {
	res := make([]float64, 0, len(vs)*3)
	for _, v := range vs {
		res = append(res, v[0], v[1], v[2])
	}
	return res
}
