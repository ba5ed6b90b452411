package debug_utils

import (
	"image/color"

	"github.com/gorustyt/gomeshfield/common"
)

type Colorb [4]uint8

func (c Colorb) R() uint8 {
	return c[0]
}

func (c Colorb) G() uint8 {
	return c[1]
}

func (c Colorb) B() uint8 {
	return c[2]
}

func (c Colorb) A() uint8 {
	return c[3]
}

func (c Colorb) Int() uint32 {
	return uint32(c.R()) | (uint32(c.G()) << 8) | (uint32(c.B()) << 16) | (uint32(c.A()) << 24)
}

func (c *Colorb) FromInt(col uint32) {
	c[0] = uint8(col & 0xff)
	c[1] = uint8((col >> 8) & 0xff)
	c[2] = uint8((col >> 16) & 0xff)
	c[3] = uint8((col >> 24) & 0xff)
}

func (c Colorb) NRGBA() color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func DuRGBA[T int | int32 | uint8](r, g, b, a T) Colorb {
	return Colorb{uint8(r), uint8(g), uint8(b), uint8(a)}
}

func toByte(v float64) uint8 {
	return uint8(common.Clamp(v, 0, 1)*255 + 0.5)
}

func duMultCol(col Colorb, d uint8) Colorb {
	r := uint32(col.R())
	g := uint32(col.G())
	b := uint32(col.B())
	a := col.A()
	return DuRGBA(uint8((r*uint32(d))>>8), uint8((g*uint32(d))>>8), uint8((b*uint32(d))>>8), a)
}

func DuDarkenCol(col Colorb) Colorb {
	return duMultCol(col, 160)
}

func DuLerpCol(ca, cb Colorb, u uint8) Colorb {
	var res Colorb
	for i := range res {
		res[i] = uint8((uint32(ca[i])*(255-uint32(u)) + uint32(cb[i])*uint32(u)) / 255)
	}
	return res
}

func DuTransCol(c Colorb, a uint8) Colorb {
	c[3] = a
	return c
}

// DuFieldCol maps a normalized field value onto a blue, green, red ramp.
// Values outside [0,1] are clamped.
func DuFieldCol(t float64, a uint8) Colorb {
	t = common.Clamp(t, 0, 1)
	blue := DuRGBA[uint8](32, 64, 224, a)
	green := DuRGBA[uint8](64, 200, 64, a)
	red := DuRGBA[uint8](224, 48, 32, a)
	if t < 0.5 {
		return DuLerpCol(blue, green, toByte(t*2))
	}
	return DuLerpCol(green, red, toByte(t*2-1))
}

func bit(a, b int) int {
	return (a & (1 << b)) >> b
}

// DuIntToCol gives a distinct color for a small integer id such as a level
// or polyline index.
func DuIntToCol(i, a int) Colorb {
	r := bit(i, 1) + bit(i, 3)*2 + 1
	g := bit(i, 2) + bit(i, 4)*2 + 1
	b := bit(i, 0) + bit(i, 5)*2 + 1
	return DuRGBA(r*63, g*63, b*63, a)
}
