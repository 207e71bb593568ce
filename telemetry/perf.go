package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for a bake pass.
const (
	PhaseHidingSpots = "hiding_spots"
	PhaseSniperSpots = "sniper_spots"
	PhaseEncounters  = "encounters"
)

var bakePhases = []string{PhaseHidingSpots, PhaseSniperSpots, PhaseEncounters}

// PerfSample holds timing data for a single bake.
type PerfSample struct {
	BakeDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks bake timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	bakeStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector keeping the last
// windowSize bakes.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartBake begins timing a new bake.
func (p *PerfCollector) StartBake() {
	p.bakeStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndBake finishes timing the current bake and records the sample.
func (p *PerfCollector) EndBake() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		BakeDuration: now.Sub(p.bakeStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.lastPhase = ""
}

// Samples returns the number of bakes in the window.
func (p *PerfCollector) Samples() int { return p.sampleCount }

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Bakes int

	AvgBakeDuration time.Duration
	MinBakeDuration time.Duration
	MaxBakeDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total bake time
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total, minBake, maxBake time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.BakeDuration

		if i == 0 || s.BakeDuration < minBake {
			minBake = s.BakeDuration
		}
		if s.BakeDuration > maxBake {
			maxBake = s.BakeDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	return PerfStats{
		Bakes:           p.sampleCount,
		AvgBakeDuration: avg,
		MinBakeDuration: minBake,
		MaxBakeDuration: maxBake,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{
		"bakes", s.Bakes,
		"avg_bake_us", s.AvgBakeDuration.Microseconds(),
		"min_bake_us", s.MinBakeDuration.Microseconds(),
		"max_bake_us", s.MaxBakeDuration.Microseconds(),
	}
	for _, phase := range bakePhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	logger.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("bakes", s.Bakes),
		slog.Int64("avg_bake_us", s.AvgBakeDuration.Microseconds()),
		slog.Int64("min_bake_us", s.MinBakeDuration.Microseconds()),
		slog.Int64("max_bake_us", s.MaxBakeDuration.Microseconds()),
	}
	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Bakes          int     `csv:"bakes"`
	AvgBakeUS      int64   `csv:"avg_bake_us"`
	MinBakeUS      int64   `csv:"min_bake_us"`
	MaxBakeUS      int64   `csv:"max_bake_us"`
	HidingSpotsPct float64 `csv:"hiding_spots_pct"`
	SniperSpotsPct float64 `csv:"sniper_spots_pct"`
	EncountersPct  float64 `csv:"encounters_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV() PerfStatsCSV {
	return PerfStatsCSV{
		Bakes:          s.Bakes,
		AvgBakeUS:      s.AvgBakeDuration.Microseconds(),
		MinBakeUS:      s.MinBakeDuration.Microseconds(),
		MaxBakeUS:      s.MaxBakeDuration.Microseconds(),
		HidingSpotsPct: s.PhasePct[PhaseHidingSpots],
		SniperSpotsPct: s.PhasePct[PhaseSniperSpots],
		EncountersPct:  s.PhasePct[PhaseEncounters],
	}
}
