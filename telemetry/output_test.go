package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/navarea/config"
	"github.com/pthm-cable/navarea/nav"
)

func readCSV[T any](t *testing.T, path string) []T {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return rows
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	m := nav.NewMesh(nav.DefaultParams())
	if err := om.WriteAreas(m, nil); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("disabled manager has a directory")
	}
}

func TestOutputManagerReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	m := summaryMesh(t)
	m.ComputeHidingSpots()
	m.ComputeSniperSpots()
	m.ComputeSpotEncounters()

	name := func(a *nav.Area) string { return "area" }
	if err := om.WriteAreas(m, name); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteHidingSpots(m); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteEncounters(m); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteSummary(Summarize(m)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := om.WritePerf(PerfStats{Bakes: i + 1}); err != nil {
			t.Fatal(err)
		}
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	areas := readCSV[AreaRecord](t, filepath.Join(dir, "areas.csv"))
	if len(areas) != 3 {
		t.Fatalf("areas.csv has %d rows, want 3", len(areas))
	}
	if areas[0].Name != "area" || areas[0].HiX != 100 || areas[0].Connections != 1 {
		t.Errorf("first area row = %+v", areas[0])
	}

	spots := readCSV[HidingSpotRecord](t, filepath.Join(dir, "hiding_spots.csv"))
	if len(spots) != len(m.HidingSpots()) {
		t.Errorf("hiding_spots.csv has %d rows, want %d", len(spots), len(m.HidingSpots()))
	}

	enc := readCSV[EncounterRecord](t, filepath.Join(dir, "encounters.csv"))
	if want := Summarize(m).Encounters; len(enc) != want {
		t.Errorf("encounters.csv has %d rows, want %d", len(enc), want)
	}

	perf := readCSV[PerfStatsCSV](t, filepath.Join(dir, "perf.csv"))
	if len(perf) != 2 || perf[1].Bakes != 2 {
		t.Errorf("perf.csv rows = %+v", perf)
	}

	summary := readCSV[MeshSummary](t, filepath.Join(dir, "summary.csv"))
	if len(summary) != 1 || summary[0].Areas != 3 {
		t.Errorf("summary.csv rows = %+v", summary)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestPerfAppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	for run := 1; run <= 3; run++ {
		om, err := NewOutputManager(dir)
		if err != nil {
			t.Fatalf("run %d: NewOutputManager: %v", run, err)
		}
		if err := om.WritePerf(PerfStats{Bakes: run}); err != nil {
			t.Fatalf("run %d: WritePerf: %v", run, err)
		}
		if err := om.Close(); err != nil {
			t.Fatalf("run %d: Close: %v", run, err)
		}
	}

	perf := readCSV[PerfStatsCSV](t, filepath.Join(dir, "perf.csv"))
	if len(perf) != 3 {
		t.Fatalf("perf.csv has %d rows, want 3", len(perf))
	}
	for i, row := range perf {
		if row.Bakes != i+1 {
			t.Errorf("row %d bakes = %d, want %d", i, row.Bakes, i+1)
		}
	}
}
