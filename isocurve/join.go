package isocurve

import (
	"math"

	"github.com/gorustyt/gomeshfield/common"
)

const DefaultJoinTolerance = 1e-9

// Polyline is a chain of joined segments. A closed polyline does not repeat
// its first point.
type Polyline struct {
	Points []common.Vec3
	Closed bool
}

// Join chains segments whose endpoints lie within tol of each other into
// polylines. Open chains are started from their free ends; what remains
// forms closed loops. Segments collapsing to a single point are dropped.
func Join(segs []Segment, tol float64) []Polyline {
	if tol <= 0 {
		tol = DefaultJoinTolerance
	}
	w := newWelder(tol)
	ends := make([][2]int, len(segs))
	for i, s := range segs {
		ends[i] = [2]int{w.node(s.From), w.node(s.To)}
	}
	adj := make([][]int, len(w.points))
	used := make([]bool, len(segs))
	for i, e := range ends {
		if e[0] == e[1] {
			used[i] = true
			continue
		}
		adj[e[0]] = append(adj[e[0]], i)
		adj[e[1]] = append(adj[e[1]], i)
	}

	nextSeg := func(n int) int {
		for _, si := range adj[n] {
			if !used[si] {
				return si
			}
		}
		return -1
	}
	walk := func(start int) Polyline {
		nodes := []int{start}
		for cur := start; ; {
			si := nextSeg(cur)
			if si < 0 {
				break
			}
			used[si] = true
			if ends[si][0] == cur {
				cur = ends[si][1]
			} else {
				cur = ends[si][0]
			}
			nodes = append(nodes, cur)
		}
		var pl Polyline
		if len(nodes) > 3 && nodes[0] == nodes[len(nodes)-1] {
			pl.Closed = true
			nodes = nodes[:len(nodes)-1]
		}
		pl.Points = make([]common.Vec3, len(nodes))
		for i, n := range nodes {
			pl.Points[i] = w.points[n]
		}
		return pl
	}

	var res []Polyline
	for n := range adj {
		if len(adj[n]) == 1 && nextSeg(n) >= 0 {
			res = append(res, walk(n))
		}
	}
	for n := range adj {
		for nextSeg(n) >= 0 {
			res = append(res, walk(n))
		}
	}
	return res
}

// welder merges points closer than tol into shared nodes using a uniform
// hash grid with cell size tol.
type welder struct {
	tol    float64
	cells  map[[3]int64][]int
	points []common.Vec3
}

func newWelder(tol float64) *welder {
	return &welder{tol: tol, cells: map[[3]int64][]int{}}
}

func (w *welder) cell(p common.Vec3) [3]int64 {
	return [3]int64{
		int64(math.Floor(p[0] / w.tol)),
		int64(math.Floor(p[1] / w.tol)),
		int64(math.Floor(p[2] / w.tol)),
	}
}

func (w *welder) node(p common.Vec3) int {
	c := w.cell(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, n := range w.cells[[3]int64{c[0] + dx, c[1] + dy, c[2] + dz}] {
					if common.Vequal(w.points[n], p, w.tol) {
						return n
					}
				}
			}
		}
	}
	n := len(w.points)
	w.points = append(w.points, p)
	w.cells[c] = append(w.cells[c], n)
	return n
}
