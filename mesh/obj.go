package mesh

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gorustyt/gomeshfield/common"
)

// objLoader reads the subset of Wavefront OBJ the mesh algorithms need:
// positions with optional trailing vertex colors, and faces.
type objLoader struct {
	mesh      *Mesh
	colors    []color.NRGBA
	colored   int
	line      int
	vertCount int
}

// LoadObj parses an OBJ stream. Faces with 3 or 4 corners are kept as
// triangles or quads; larger polygons are fan-triangulated. Vertex colors
// ("v x y z r g b", components in [0,1] or [0,255]) are kept only when every
// vertex has one.
func LoadObj(r io.Reader) (*Mesh, error) {
	l := &objLoader{mesh: &Mesh{}}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		l.line++
		row := strings.TrimSpace(sc.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		if err := l.parseRow(strings.Fields(row)); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", l.line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	if l.colored > 0 && l.colored == l.vertCount {
		l.mesh.Colors = l.colors
	}
	return l.mesh, nil
}

func (l *objLoader) parseRow(ss []string) error {
	switch ss[0] {
	case "v":
		return l.parseVertex(ss[1:])
	case "f":
		return l.parseFace(ss[1:])
	}
	return nil
}

func (l *objLoader) parseVertex(ss []string) error {
	if len(ss) < 3 {
		return fmt.Errorf("vertex needs 3 coordinates, got %d", len(ss))
	}
	var xyz [6]float64
	n := min(len(ss), 6)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(ss[i], 64)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		xyz[i] = v
	}
	p := common.Vec3{xyz[0], xyz[1], xyz[2]}
	if !common.Visfinite(p) {
		return fmt.Errorf("vertex %v is not finite", p)
	}
	l.mesh.AddVertex(p)
	l.vertCount++
	col := color.NRGBA{A: 255}
	if n == 6 {
		scale := 255.0
		if xyz[3] > 1 || xyz[4] > 1 || xyz[5] > 1 {
			scale = 1
		}
		col.R = toByte(xyz[3] * scale)
		col.G = toByte(xyz[4] * scale)
		col.B = toByte(xyz[5] * scale)
		l.colored++
	}
	l.colors = append(l.colors, col)
	return nil
}

func toByte(v float64) uint8 {
	return uint8(common.Clamp(math.Round(v), 0, 255))
}

func (l *objLoader) parseFace(ss []string) error {
	getV := func(v string) (int, error) {
		vi, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("face: %w", err)
		}
		if vi < 0 {
			vi += l.vertCount
		} else {
			vi--
		}
		if vi < 0 || vi >= l.vertCount {
			return 0, common.NewInvalidInput(common.KindIndexOutOfRange, vi, "face corner %q", v)
		}
		return vi, nil
	}
	data := make([]int, 0, len(ss))
	for _, s := range ss {
		vs := strings.Split(s, "/")
		vi, err := getV(vs[0])
		if err != nil {
			return err
		}
		data = append(data, vi)
	}
	switch {
	case len(data) < 3:
		return common.NewInvalidInput(common.KindUnsupportedArity, l.mesh.FaceCount(), "%d corners", len(data))
	case len(data) == 3:
		l.mesh.AddFace(Tri(data[0], data[1], data[2]))
	case len(data) == 4:
		l.mesh.AddFace(Quad(data[0], data[1], data[2], data[3]))
	default:
		for i := 2; i < len(data); i++ {
			l.mesh.AddFace(Tri(data[0], data[i-1], data[i]))
		}
	}
	return nil
}
