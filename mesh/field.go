package mesh

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gorustyt/gomeshfield/common"
)

// Channel selects a color component of a vertex color.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

func (c Channel) Valid() bool {
	return c >= ChannelR && c <= ChannelB
}

func (c Channel) String() string {
	switch c {
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	}
	return "invalid"
}

// ChannelField turns one channel of per-vertex colors into a scalar field,
// each byte divided by 255.
func ChannelField(colors []color.NRGBA, ch Channel) ([]float64, error) {
	if !ch.Valid() {
		return nil, common.NewInvalidInput(common.KindInvalidChannel, -1, "channel %d, want 0 (R), 1 (G) or 2 (B)", int(ch))
	}
	res := make([]float64, len(colors))
	for i, c := range colors {
		var b uint8
		switch ch {
		case ChannelR:
			b = c.R
		case ChannelG:
			b = c.G
		case ChannelB:
			b = c.B
		}
		res[i] = float64(b) / 255.0
	}
	return res, nil
}

// ProjectField evaluates fn at every vertex of src.
func ProjectField(src Source, fn func(p common.Vec3) float64) []float64 {
	res := make([]float64, src.VertexCount())
	for i := range res {
		res[i] = fn(src.Vertex(i))
	}
	return res
}

// NamedField picks a field by name: "r", "g" or "b" select a vertex color
// channel, "x", "y" or "z" a coordinate axis.
func NamedField(m *Mesh, name string) ([]float64, error) {
	switch name {
	case "r", "g", "b":
		if !m.HasColors() {
			return nil, fmt.Errorf("field %q: mesh has no vertex colors", name)
		}
		return ChannelField(m.Colors, Channel(strings.Index("rgb", name)))
	case "x", "y", "z":
		axis := strings.Index("xyz", name)
		return ProjectField(m, func(p common.Vec3) float64 { return p[axis] }), nil
	}
	return nil, fmt.Errorf("field %q: want one of r, g, b, x, y, z", name)
}
