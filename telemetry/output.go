package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/navarea/config"
	"github.com/pthm-cable/navarea/nav"
)

// AreaRecord is one row of areas.csv.
type AreaRecord struct {
	ID          uint32  `csv:"id"`
	Name        string  `csv:"name"`
	LoX         float64 `csv:"lo_x"`
	LoY         float64 `csv:"lo_y"`
	HiX         float64 `csv:"hi_x"`
	HiY         float64 `csv:"hi_y"`
	CenterZ     float64 `csv:"center_z"`
	Attributes  uint8   `csv:"attributes"`
	Place       uint32  `csv:"place"`
	Connections int     `csv:"connections"`
	HidingSpots int     `csv:"hiding_spots"`
	Encounters  int     `csv:"encounters"`
	Danger0     float64 `csv:"danger_0"`
	Danger1     float64 `csv:"danger_1"`
}

// HidingSpotRecord is one row of hiding_spots.csv.
type HidingSpotRecord struct {
	ID          uint32  `csv:"id"`
	Area        uint32  `csv:"area"`
	X           float64 `csv:"x"`
	Y           float64 `csv:"y"`
	Z           float64 `csv:"z"`
	InCover     bool    `csv:"in_cover"`
	GoodSniper  bool    `csv:"good_sniper"`
	IdealSniper bool    `csv:"ideal_sniper"`
}

// EncounterRecord is one row of encounters.csv.
type EncounterRecord struct {
	Area    uint32 `csv:"area"`
	From    uint32 `csv:"from"`
	FromDir string `csv:"from_dir"`
	To      uint32 `csv:"to"`
	ToDir   string `csv:"to_dir"`
	Spots   string `csv:"spots"` // spot ids in encounter order, ';' separated
}

// Namer labels areas in reports. Nil labels areas by id only.
type Namer func(a *nav.Area) string

// OutputManager writes bake reports as CSV files into a directory.
type OutputManager struct {
	dir      string
	perfFile *os.File

	perfHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	// perf.csv accumulates across runs; the header goes in only once.
	f, err := os.OpenFile(filepath.Join(dir, "perf.csv"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening perf.csv: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat perf.csv: %w", err)
	}
	om.perfFile = f
	om.perfHeaderWritten = info.Size() > 0

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV()}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}
	return nil
}

// WriteAreas writes areas.csv, replacing any previous report.
func (om *OutputManager) WriteAreas(m *nav.Mesh, name Namer) error {
	if om == nil {
		return nil
	}
	return om.writeFile("areas.csv", AreaRecords(m, name))
}

// WriteHidingSpots writes hiding_spots.csv, replacing any previous report.
func (om *OutputManager) WriteHidingSpots(m *nav.Mesh) error {
	if om == nil {
		return nil
	}
	return om.writeFile("hiding_spots.csv", HidingSpotRecords(m))
}

// WriteEncounters writes encounters.csv, replacing any previous report.
func (om *OutputManager) WriteEncounters(m *nav.Mesh) error {
	if om == nil {
		return nil
	}
	return om.writeFile("encounters.csv", EncounterRecords(m))
}

// WriteSummary writes summary.csv, replacing any previous report.
func (om *OutputManager) WriteSummary(s MeshSummary) error {
	if om == nil {
		return nil
	}
	return om.writeFile("summary.csv", []MeshSummary{s})
}

func (om *OutputManager) writeFile(name string, records any) error {
	f, err := os.Create(filepath.Join(om.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := gocsv.MarshalFile(records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.perfFile == nil {
		return nil
	}
	return om.perfFile.Close()
}

// AreaRecords flattens the mesh's areas into report rows.
func AreaRecords(m *nav.Mesh, name Namer) []AreaRecord {
	areas := m.Areas()
	out := make([]AreaRecord, 0, len(areas))
	for _, a := range areas {
		conn := 0
		for d := nav.Dir(0); d < nav.NumDirections; d++ {
			conn += a.GetAdjacentCount(d)
		}
		e := a.Extent()
		r := AreaRecord{
			ID:          uint32(a.ID()),
			LoX:         e.Lo.X,
			LoY:         e.Lo.Y,
			HiX:         e.Hi.X,
			HiY:         e.Hi.Y,
			CenterZ:     a.Center().Z,
			Attributes:  uint8(a.Attributes()),
			Place:       uint32(a.Place()),
			Connections: conn,
			HidingSpots: len(a.HidingSpots()),
			Encounters:  len(a.Encounters()),
			Danger0:     a.GetDanger(0),
			Danger1:     a.GetDanger(1),
		}
		if name != nil {
			r.Name = name(a)
		}
		out = append(out, r)
	}
	return out
}

// HidingSpotRecords flattens the mesh's hiding spots into report rows.
func HidingSpotRecords(m *nav.Mesh) []HidingSpotRecord {
	spots := m.HidingSpots()
	out := make([]HidingSpotRecord, 0, len(spots))
	for _, s := range spots {
		p := s.Position()
		out = append(out, HidingSpotRecord{
			ID:          s.ID(),
			Area:        uint32(s.Area()),
			X:           p.X,
			Y:           p.Y,
			Z:           p.Z,
			InCover:     s.HasGoodCover(),
			GoodSniper:  s.IsGoodSniperSpot(),
			IdealSniper: s.IsIdealSniperSpot(),
		})
	}
	return out
}

// EncounterRecords flattens every area's spot encounters into report rows.
func EncounterRecords(m *nav.Mesh) []EncounterRecord {
	var out []EncounterRecord
	for _, a := range m.Areas() {
		for _, e := range a.Encounters() {
			ids := make([]string, len(e.Spots))
			for i, so := range e.Spots {
				ids[i] = strconv.FormatUint(uint64(so.Spot), 10)
			}
			out = append(out, EncounterRecord{
				Area:    uint32(a.ID()),
				From:    uint32(e.From),
				FromDir: e.FromDir.String(),
				To:      uint32(e.To),
				ToDir:   e.ToDir.String(),
				Spots:   strings.Join(ids, ";"),
			})
		}
	}
	return out
}
