package nav

import "gonum.org/v1/gonum/spatial/r3"

// SpotOrder is a hiding spot that comes into view at fraction T of an
// encounter path.
type SpotOrder struct {
	Spot uint32
	T    float64
}

// SpotEncounter lists the hiding spots that become visible, in order, to
// someone crossing an area from one neighbor toward another.
type SpotEncounter struct {
	From    AreaID
	FromDir Dir
	To      AreaID
	ToDir   Dir

	PathFrom r3.Vec // eye position at the portal toward From
	PathTo   r3.Vec // eye position at the portal toward To

	Spots []SpotOrder
}

// Encounters returns the spot encounters computed for this area.
func (a *Area) Encounters() []*SpotEncounter { return a.encounters }

// GetSpotEncounter returns the encounter for a crossing from one neighbor
// to another, or nil.
func (a *Area) GetSpotEncounter(from, to *Area) *SpotEncounter {
	if from == nil || to == nil {
		return nil
	}
	for _, e := range a.encounters {
		if e.From == from.id && e.To == to.id {
			return e
		}
	}
	return nil
}

// Strip drops the analysis data of the area.
func (a *Area) Strip() {
	a.encounters = nil
}

// ComputeSpotEncounters recomputes the spot encounters of every area and
// returns the number of encounters.
func (m *Mesh) ComputeSpotEncounters() int {
	total := 0
	for _, a := range m.order {
		a.ComputeSpotEncounters()
		total += len(a.encounters)
	}
	m.logger.Info("computed spot encounters", "areas", len(m.order), "encounters", total)
	return total
}

// ComputeSpotEncounters builds an encounter for every ordered pair of
// distinct connections of this area.
func (a *Area) ComputeSpotEncounters() {
	a.encounters = nil
	if a.mesh == nil {
		return
	}

	for fromDir := North; fromDir < NumDirections; fromDir++ {
		for fi, fromCon := range a.connect[fromDir] {
			for toDir := North; toDir < NumDirections; toDir++ {
				for ti, toCon := range a.connect[toDir] {
					if fromDir == toDir && fi == ti {
						continue
					}
					from, to := a.neighbor(fromCon.Area), a.neighbor(toCon.Area)
					if from == nil || to == nil {
						continue
					}
					a.addSpotEncounters(from, fromDir, to, toDir)
				}
			}
		}
	}
}

// addSpotEncounters walks from the portal toward from to the portal toward
// to at standing eye height. Every covered spot within EncounterSeeRange
// that is seen for the first time on the walk is marked; it is recorded
// when it lies ahead of the walker and was not already visible from the
// start of the walk.
func (a *Area) addSpotEncounters(from *Area, fromDir Dir, to *Area, toDir Dir) {
	m := a.mesh
	p := &m.params

	e := &SpotEncounter{
		From:    from.id,
		FromDir: fromDir,
		To:      to.id,
		ToDir:   toDir,
	}

	e.PathTo, _ = a.ComputePortal(to, toDir)
	e.PathFrom, _ = a.ComputePortal(from, fromDir)
	e.PathFrom.Z = from.GetZ(e.PathFrom.X, e.PathFrom.Y) + p.StandEyeHeight
	e.PathTo.Z = to.GetZ(e.PathTo.X, e.PathTo.Y) + p.StandEyeHeight

	dir, length := unitOrZero(r3.Sub(e.PathTo, e.PathFrom))

	m.spotMarker++
	marker := m.spotMarker

	step := p.EncounterStepSize
	seeRangeSq := p.EncounterSeeRange * p.EncounterSeeRange

	done := false
	for along := 0.0; !done; along += step {
		// Always check the end of the segment.
		if along >= length || step <= 0 {
			along = length
			done = true
		}

		eye := r3.Add(e.PathFrom, r3.Scale(along, dir))

		for _, s := range m.spots {
			if !s.HasGoodCover() || s.marker == marker {
				continue
			}

			target := r3.Add(s.pos, r3.Vec{Z: p.HalfHumanHeight})
			delta := r3.Sub(target, eye)
			if r3.Norm2(delta) > seeRangeSq {
				continue
			}

			if m.traceLine(eye, target).Fraction != 1 {
				continue
			}

			bearing, _ := unitOrZero(delta)
			if along > 0 && r3.Dot(dir, bearing) > p.EncounterFrontDot {
				e.Spots = append(e.Spots, SpotOrder{Spot: s.id, T: along / length})
			}

			s.marker = marker
		}
	}

	a.encounters = append(a.encounters, e)
}
