package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/navarea/nav"
)

// Box is an axis-aligned solid.
type Box struct {
	Min, Max r3.Vec
}

// BoxTracer answers line-of-sight queries against a set of solid boxes.
type BoxTracer struct {
	boxes []Box
}

// NewBoxTracer creates a tracer with no solids.
func NewBoxTracer(boxes ...Box) *BoxTracer {
	t := &BoxTracer{}
	for _, b := range boxes {
		t.Add(b)
	}
	return t
}

// Add registers a solid box. Corners may be given in any order.
func (t *BoxTracer) Add(b Box) {
	lo := r3.Vec{X: math.Min(b.Min.X, b.Max.X), Y: math.Min(b.Min.Y, b.Max.Y), Z: math.Min(b.Min.Z, b.Max.Z)}
	hi := r3.Vec{X: math.Max(b.Min.X, b.Max.X), Y: math.Max(b.Min.Y, b.Max.Y), Z: math.Max(b.Min.Z, b.Max.Z)}
	t.boxes = append(t.boxes, Box{Min: lo, Max: hi})
}

// Boxes returns the registered solids.
func (t *BoxTracer) Boxes() []Box { return t.boxes }

// TraceLine returns the fraction of the segment from..to travelled before
// entering the nearest box.
func (t *BoxTracer) TraceLine(from, to r3.Vec) nav.Trace {
	d := r3.Sub(to, from)
	tr := nav.Trace{Fraction: 1}
	for _, b := range t.boxes {
		enter, exit, ok := b.intersect(from, d)
		if !ok || exit <= 0 || enter >= 1 {
			continue
		}
		if enter < 0 {
			tr.StartSolid = true
			tr.Fraction = 0
			continue
		}
		if enter < tr.Fraction {
			tr.Fraction = enter
		}
	}
	return tr
}

// intersect clips the line origin+t*d against the box slabs. Lines that only
// graze a face do not count.
func (b Box) intersect(origin, d r3.Vec) (enter, exit float64, ok bool) {
	enter, exit = math.Inf(-1), math.Inf(1)
	o := [3]float64{origin.X, origin.Y, origin.Z}
	dir := [3]float64{d.X, d.Y, d.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if o[i] <= lo[i] || o[i] >= hi[i] {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / dir[i]
		t2 := (hi[i] - o[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		enter = math.Max(enter, t1)
		exit = math.Min(exit, t2)
	}
	return enter, exit, exit > enter
}
