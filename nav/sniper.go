package nav

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ComputeSniperSpots classifies every hiding spot of the mesh.
func (m *Mesh) ComputeSniperSpots() {
	var good, ideal int
	for _, a := range m.order {
		a.ComputeSniperSpots()
		for _, s := range a.hidingSpots {
			switch {
			case s.IsIdealSniperSpot():
				ideal++
			case s.IsGoodSniperSpot():
				good++
			}
		}
	}
	m.logger.Info("computed sniper spots", "good", good, "ideal", ideal)
}

// ComputeSniperSpots classifies this area's hiding spots that are in cover.
func (a *Area) ComputeSniperSpots() {
	if a.mesh == nil {
		return
	}
	for _, s := range a.hidingSpots {
		if s.HasGoodCover() {
			a.mesh.ClassifySniperSpot(s)
		}
	}
}

// ClassifySniperSpot samples every area of the mesh on the generation grid
// and tests line of sight from a crouched eye at the spot. A spot that sees
// any sample at SniperMinRange or beyond is a good sniper spot; it is ideal
// when the visible far samples span at least SniperIdealSize squared, or
// the farthest visible sample is at SniperIdealRange or beyond.
func (m *Mesh) ClassifySniperSpot(s *HidingSpot) {
	p := &m.params
	step := p.GenerationStepSize
	if step <= 0 {
		return
	}

	eye := r3.Add(s.pos, r3.Vec{Z: p.HalfHumanHeight})
	minRangeSq := p.SniperMinRange * p.SniperMinRange

	var (
		farthestSq float64
		far        Extent
		found      bool
	)

	for _, a := range m.order {
		e := a.extent
		for y := e.Lo.Y + step/2; y < e.Hi.Y; y += step {
			for x := e.Lo.X + step/2; x < e.Hi.X; x += step {
				sample := r3.Vec{X: x, Y: y, Z: a.GetZ(x, y) + p.HalfHumanHeight}

				tr := m.traceLine(eye, sample)
				if tr.Fraction != 1 || tr.StartSolid {
					continue
				}

				rangeSq := r3.Norm2(r3.Sub(eye, sample))
				farthestSq = math.Max(farthestSq, rangeSq)
				if rangeSq < minRangeSq {
					continue
				}

				if !found {
					far = Extent{Lo: sample, Hi: sample}
					found = true
					continue
				}
				far.Lo.X = math.Min(far.Lo.X, x)
				far.Lo.Y = math.Min(far.Lo.Y, y)
				far.Hi.X = math.Max(far.Hi.X, x)
				far.Hi.Y = math.Max(far.Hi.Y, y)
			}
		}
	}

	if !found {
		return
	}

	idealArea := p.SniperIdealSize * p.SniperIdealSize
	if far.Area() >= idealArea || farthestSq >= p.SniperIdealRange*p.SniperIdealRange {
		s.SetFlags(IdealSniperSpot)
	} else {
		s.SetFlags(GoodSniperSpot)
	}
}
