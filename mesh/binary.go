package mesh

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/common/rw"
)

const (
	binMagic   = 'M'<<24 | 'F'<<16 | 'L'<<8 | 'D'
	binVersion = 1

	binFlagColors = 0x01
)

var ErrBadMagic = errors.New("mesh: not a mesh binary")

type binHeader struct {
	Magic     uint32
	Version   uint32
	Flags     uint32
	VertCount int32
	FaceCount int32
}

func (h *binHeader) ToBin(w *rw.ReaderWriter) {
	w.WriteUInt32(h.Magic)
	w.WriteUInt32(h.Version)
	w.WriteUInt32(h.Flags)
	w.WriteInt32(h.VertCount)
	w.WriteInt32(h.FaceCount)
}

func (h *binHeader) FromBin(r *rw.ReaderWriter) *binHeader {
	h.Magic = r.ReadUInt32()
	h.Version = r.ReadUInt32()
	h.Flags = r.ReadUInt32()
	h.VertCount = r.ReadInt32()
	h.FaceCount = r.ReadInt32()
	return h
}

func (f *Face) ToBin(w *rw.ReaderWriter) {
	w.WriteUInt8(uint8(f.Count))
	var idx [4]int32
	for i, v := range f.Indices {
		idx[i] = int32(v)
	}
	w.WriteInt32s(idx[:])
}

func (f *Face) FromBin(r *rw.ReaderWriter) *Face {
	f.Count = int(r.ReadUInt8())
	var idx [4]int32
	r.ReadInt32s(idx[:])
	for i, v := range idx {
		f.Indices[i] = int(v)
	}
	return f
}

// ToBin encodes the mesh as little-endian binary: header, float64 xyz
// vertices, faces, then RGBA colors when present.
func (m *Mesh) ToBin() []byte {
	w := rw.NewBinWriter()
	h := binHeader{
		Magic:     binMagic,
		Version:   binVersion,
		VertCount: int32(len(m.Vertices)),
		FaceCount: int32(len(m.Faces)),
	}
	if m.HasColors() {
		h.Flags |= binFlagColors
	}
	h.ToBin(w)
	w.WriteFloat64s(common.FlattenVec3(m.Vertices))
	for i := range m.Faces {
		m.Faces[i].ToBin(w)
	}
	if h.Flags&binFlagColors != 0 {
		for _, c := range m.Colors {
			w.WriteUInt8s([]uint8{c.R, c.G, c.B, c.A})
		}
	}
	return w.GetWriteBytes()
}

// FromBin replaces the contents of m with a mesh decoded from data.
func (m *Mesh) FromBin(data []byte) error {
	r := rw.NewBinReader(data)
	h := (&binHeader{}).FromBin(r)
	if err := r.Err(); err != nil {
		return fmt.Errorf("mesh header: %w", err)
	}
	if h.Magic != binMagic {
		return ErrBadMagic
	}
	if h.Version != binVersion {
		return fmt.Errorf("mesh: unsupported version %d", h.Version)
	}
	if h.VertCount < 0 || h.FaceCount < 0 {
		return fmt.Errorf("mesh: negative counts %d/%d", h.VertCount, h.FaceCount)
	}
	need := int(h.VertCount)*24 + int(h.FaceCount)*17
	if h.Flags&binFlagColors != 0 {
		need += int(h.VertCount) * 4
	}
	if r.Size() < need {
		return fmt.Errorf("mesh: truncated, need %d bytes, have %d", need, r.Size())
	}

	verts := make([]float64, 3*h.VertCount)
	r.ReadFloat64s(verts)
	res := Mesh{
		Vertices: make([]common.Vec3, h.VertCount),
		Faces:    make([]Face, h.FaceCount),
	}
	for i := range res.Vertices {
		res.Vertices[i] = common.ToVec3(common.GetVert3(verts, i))
	}
	for i := range res.Faces {
		res.Faces[i].FromBin(r)
	}
	if h.Flags&binFlagColors != 0 {
		res.Colors = make([]color.NRGBA, h.VertCount)
		var rgba [4]uint8
		for i := range res.Colors {
			r.ReadUInt8s(rgba[:])
			res.Colors[i] = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
		}
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("mesh body: %w", err)
	}
	*m = res
	return nil
}
