package world

import (
	"github.com/pthm-cable/navarea/telemetry"
)

// BakeResult counts what a bake produced.
type BakeResult struct {
	HidingSpots int
	Encounters  int
}

// Bake runs the tactical analysis passes over the whole mesh in dependency
// order: hiding spots, then sniper classification of those spots, then spot
// encounters. pc may be nil.
func (w *World) Bake(pc *telemetry.PerfCollector) BakeResult {
	if pc == nil {
		pc = telemetry.NewPerfCollector(1)
	}

	var res BakeResult
	pc.StartBake()

	pc.StartPhase(telemetry.PhaseHidingSpots)
	res.HidingSpots = w.Mesh.ComputeHidingSpots()

	pc.StartPhase(telemetry.PhaseSniperSpots)
	w.Mesh.ComputeSniperSpots()

	pc.StartPhase(telemetry.PhaseEncounters)
	res.Encounters = w.Mesh.ComputeSpotEncounters()

	pc.EndBake()
	return res
}
