package nav

import "gonum.org/v1/gonum/spatial/r3"

// Extent is an axis-aligned 2D box. Lo is the north-west corner and Hi the
// south-east corner; their Z values are the heights of those two corners.
type Extent struct {
	Lo, Hi r3.Vec
}

// SizeX returns the width of the extent.
func (e Extent) SizeX() float64 { return e.Hi.X - e.Lo.X }

// SizeY returns the depth of the extent.
func (e Extent) SizeY() float64 { return e.Hi.Y - e.Lo.Y }

// Area returns the planar area of the extent.
func (e Extent) Area() float64 { return e.SizeX() * e.SizeY() }

// ContainsXY reports whether p's planar projection lies inside the extent,
// boundary included.
func (e Extent) ContainsXY(p r3.Vec) bool {
	return p.X >= e.Lo.X && p.X <= e.Hi.X && p.Y >= e.Lo.Y && p.Y <= e.Hi.Y
}

// Overlaps reports whether the interiors of two extents intersect.
func (e Extent) Overlaps(o Extent) bool {
	return o.Lo.X < e.Hi.X && o.Hi.X > e.Lo.X && o.Lo.Y < e.Hi.Y && o.Hi.Y > e.Lo.Y
}

// normalized returns the extent with Lo <= Hi on both axes.
func (e Extent) normalized() Extent {
	if e.Lo.X > e.Hi.X {
		e.Lo.X, e.Hi.X = e.Hi.X, e.Lo.X
	}
	if e.Lo.Y > e.Hi.Y {
		e.Lo.Y, e.Hi.Y = e.Hi.Y, e.Lo.Y
	}
	return e
}
