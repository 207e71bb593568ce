package nav

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SpotFlag classifies a hiding spot.
type SpotFlag uint8

const (
	InCover         SpotFlag = 1 << iota // surrounded by enough geometry to hide in
	GoodSniperSpot                       // sees terrain beyond sniper range
	IdealSniperSpot                      // sees a large or very distant stretch of terrain
)

// HidingSpot is a position near a concave corner of an area.
type HidingSpot struct {
	id     uint32
	pos    r3.Vec
	flags  SpotFlag
	area   AreaID
	marker uint32
}

// ID returns the mesh-unique spot identifier.
func (s *HidingSpot) ID() uint32 { return s.id }

// Position returns the spot's position on the area surface.
func (s *HidingSpot) Position() r3.Vec { return s.pos }

// Area returns the id of the area the spot belongs to.
func (s *HidingSpot) Area() AreaID { return s.area }

// Flags returns the spot's classification.
func (s *HidingSpot) Flags() SpotFlag { return s.flags }

// SetFlags adds flags to the spot's classification.
func (s *HidingSpot) SetFlags(f SpotFlag) { s.flags |= f }

// HasGoodCover reports whether the spot is in cover.
func (s *HidingSpot) HasGoodCover() bool { return s.flags&InCover != 0 }

// IsGoodSniperSpot reports whether the spot is a good sniper spot.
func (s *HidingSpot) IsGoodSniperSpot() bool { return s.flags&GoodSniperSpot != 0 }

// IsIdealSniperSpot reports whether the spot is an ideal sniper spot.
func (s *HidingSpot) IsIdealSniperSpot() bool { return s.flags&IdealSniperSpot != 0 }

// HidingSpots returns the spots found in this area.
func (a *Area) HidingSpots() []*HidingSpot { return a.hidingSpots }

// HidingSpots returns every hiding spot of the mesh in discovery order.
func (m *Mesh) HidingSpots() []*HidingSpot { return m.spots }

// HidingSpot returns the spot with the given id, or nil.
func (m *Mesh) HidingSpot(id uint32) *HidingSpot {
	for _, s := range m.spots {
		if s.id == id {
			return s
		}
	}
	return nil
}

func (m *Mesh) addSpot(a *Area, pos r3.Vec, flags SpotFlag) *HidingSpot {
	m.nextSpotID++
	s := &HidingSpot{id: m.nextSpotID, pos: pos, flags: flags, area: a.id}
	a.hidingSpots = append(a.hidingSpots, s)
	m.spots = append(m.spots, s)
	return s
}

// removeSpotsOf drops an area's spots from the mesh and from every spot
// encounter that lists them.
func (m *Mesh) removeSpotsOf(a *Area) {
	if len(a.hidingSpots) == 0 {
		return
	}

	gone := make(map[uint32]struct{}, len(a.hidingSpots))
	for _, s := range a.hidingSpots {
		gone[s.id] = struct{}{}
	}
	a.hidingSpots = nil

	spots := m.spots[:0]
	for _, s := range m.spots {
		if _, ok := gone[s.id]; !ok {
			spots = append(spots, s)
		}
	}
	for i := len(spots); i < len(m.spots); i++ {
		m.spots[i] = nil
	}
	m.spots = spots

	for _, other := range m.order {
		for _, e := range other.encounters {
			kept := e.Spots[:0]
			for _, so := range e.Spots {
				if _, ok := gone[so.Spot]; !ok {
					kept = append(kept, so)
				}
			}
			e.Spots = kept
		}
	}
}

// ComputeHidingSpots finds the hiding spots of every area.
func (m *Mesh) ComputeHidingSpots() int {
	for _, a := range m.order {
		a.ComputeHidingSpots()
	}
	m.logger.Info("computed hiding spots", "areas", len(m.order), "spots", len(m.spots))
	return len(m.spots)
}

// ComputeHidingSpots replaces this area's hiding spots. A corner becomes a
// spot when the reciprocally connected neighbors on both of its sides stop
// at least HidingCornerSize short of it, so there is wall on both sides.
// Jump areas have no hiding spots.
func (a *Area) ComputeHidingSpots() {
	m := a.mesh
	if m == nil {
		return
	}
	m.removeSpotsOf(a)

	if a.HasAttributes(AttrJump) {
		return
	}

	p := &m.params
	var cornerCount [NumCorners]int

	for d := North; d < NumDirections; d++ {
		lo, hi := 999999.9, -999999.9

		for _, c := range a.connect[d] {
			adj := m.Area(c.Area)
			if adj == nil {
				continue
			}
			// A one-way connection is a drop, not a wall.
			if !adj.isConnectedID(a.id, d.Opposite()) {
				continue
			}
			if adj.HasAttributes(AttrJump) {
				continue
			}

			if d.IsHorizontal() {
				lo = math.Min(lo, adj.extent.Lo.X)
				hi = math.Max(hi, adj.extent.Hi.X)
			} else {
				lo = math.Min(lo, adj.extent.Lo.Y)
				hi = math.Max(hi, adj.extent.Hi.Y)
			}
		}

		var before, after Corner
		var ourLo, ourHi float64
		switch d {
		case North:
			before, after = NorthWest, NorthEast
			ourLo, ourHi = a.extent.Lo.X, a.extent.Hi.X
		case South:
			before, after = SouthWest, SouthEast
			ourLo, ourHi = a.extent.Lo.X, a.extent.Hi.X
		case East:
			before, after = NorthEast, SouthEast
			ourLo, ourHi = a.extent.Lo.Y, a.extent.Hi.Y
		case West:
			before, after = NorthWest, SouthWest
			ourLo, ourHi = a.extent.Lo.Y, a.extent.Hi.Y
		}

		if lo-ourLo >= p.HidingCornerSize {
			cornerCount[before]++
		}
		if ourHi-hi >= p.HidingCornerSize {
			cornerCount[after]++
		}
	}

	inset := p.HidingInset
	offsets := [NumCorners]r3.Vec{
		NorthWest: {X: inset, Y: inset},
		NorthEast: {X: -inset, Y: inset},
		SouthEast: {X: -inset, Y: -inset},
		SouthWest: {X: inset, Y: -inset},
	}

	for _, c := range [NumCorners]Corner{NorthWest, NorthEast, SouthWest, SouthEast} {
		if cornerCount[c] != 2 {
			continue
		}

		pos := r3.Add(a.Corner(c), offsets[c])
		if a.isHidingSpotCollision(pos) {
			continue
		}

		var flags SpotFlag
		if m.IsHidingSpotInCover(pos) {
			flags = InCover
		}
		m.addSpot(a, pos, flags)
	}
}

// isHidingSpotCollision reports whether an existing spot of this area lies
// within HidingCollisionRange of pos.
func (a *Area) isHidingSpotCollision(pos r3.Vec) bool {
	r := a.params().HidingCollisionRange
	for _, s := range a.hidingSpots {
		if r3.Norm2(r3.Sub(s.pos, pos)) < r*r {
			return true
		}
	}
	return false
}

// IsHidingSpotInCover reports whether a crouched observer at pos is
// sheltered: either something solid is right overhead, or at least
// CoverRequired of CoverRays rays cast around the spot are blocked.
func (m *Mesh) IsHidingSpotInCover(pos r3.Vec) bool {
	p := &m.params
	from := r3.Add(pos, r3.Vec{Z: p.HalfHumanHeight})

	up := r3.Add(from, r3.Vec{Z: p.CoverCeilingCheck})
	if m.traceLine(from, up).Fraction != 1 {
		return true
	}

	covered := 0
	for i := 0; i < p.CoverRays; i++ {
		angle := float64(i) * 2 * math.Pi / float64(p.CoverRays)
		to := r3.Add(from, r3.Vec{
			X: p.CoverRange * math.Cos(angle),
			Y: p.CoverRange * math.Sin(angle),
			Z: p.HalfHumanHeight,
		})
		if m.traceLine(from, to).Fraction != 1 {
			covered++
		}
	}

	return covered >= p.CoverRequired
}
