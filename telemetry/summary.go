package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/navarea/nav"
)

// MeshSummary holds aggregate statistics over a mesh and its baked data.
type MeshSummary struct {
	Areas       int `csv:"areas"`
	Connections int `csv:"connections"`
	Ladders     int `csv:"ladders"`

	HidingSpots  int `csv:"hiding_spots"`
	CoveredSpots int `csv:"covered_spots"`
	GoodSniper   int `csv:"good_sniper"`
	IdealSniper  int `csv:"ideal_sniper"`
	Encounters   int `csv:"encounters"`

	AreaSizeMean float64 `csv:"area_size_mean"`
	AreaSizeStd  float64 `csv:"area_size_std"`
	AreaSizeP50  float64 `csv:"area_size_p50"`

	DegreeMean float64 `csv:"degree_mean"`
	DegreeStd  float64 `csv:"degree_std"`

	SpotsPerAreaMean float64 `csv:"spots_per_area_mean"`
	SpotsPerAreaStd  float64 `csv:"spots_per_area_std"`
}

// Summarize computes summary statistics for m.
func Summarize(m *nav.Mesh) MeshSummary {
	areas := m.Areas()
	s := MeshSummary{
		Areas:   len(areas),
		Ladders: len(m.Ladders()),
	}
	if len(areas) == 0 {
		return s
	}

	sizes := make([]float64, len(areas))
	degrees := make([]float64, len(areas))
	spots := make([]float64, len(areas))

	for i, a := range areas {
		sizes[i] = a.SizeX() * a.SizeY()

		deg := 0
		for d := nav.Dir(0); d < nav.NumDirections; d++ {
			deg += a.GetAdjacentCount(d)
		}
		degrees[i] = float64(deg)
		s.Connections += deg

		spots[i] = float64(len(a.HidingSpots()))
		s.Encounters += len(a.Encounters())
	}

	for _, hs := range m.HidingSpots() {
		s.HidingSpots++
		if hs.HasGoodCover() {
			s.CoveredSpots++
		}
		if hs.IsGoodSniperSpot() {
			s.GoodSniper++
		}
		if hs.IsIdealSniperSpot() {
			s.IdealSniper++
		}
	}

	s.AreaSizeMean, s.AreaSizeStd = meanStd(sizes)
	s.DegreeMean, s.DegreeStd = meanStd(degrees)
	s.SpotsPerAreaMean, s.SpotsPerAreaStd = meanStd(spots)

	sort.Float64s(sizes)
	s.AreaSizeP50 = stat.Quantile(0.5, stat.Empirical, sizes, nil)

	return s
}

// meanStd returns the mean and sample standard deviation, with a zero
// deviation for fewer than two values.
func meanStd(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s MeshSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("areas", s.Areas),
		slog.Int("connections", s.Connections),
		slog.Int("ladders", s.Ladders),
		slog.Int("hiding_spots", s.HidingSpots),
		slog.Int("covered_spots", s.CoveredSpots),
		slog.Int("good_sniper", s.GoodSniper),
		slog.Int("ideal_sniper", s.IdealSniper),
		slog.Int("encounters", s.Encounters),
		slog.Float64("area_size_mean", s.AreaSizeMean),
		slog.Float64("degree_mean", s.DegreeMean),
	)
}
