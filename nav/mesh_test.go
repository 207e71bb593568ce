package nav

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// flatArea creates a flat area at height z.
func flatArea(x0, y0, x1, y1, z float64) *Area {
	return NewFlatArea(r3.Vec{X: x0, Y: y0, Z: z}, r3.Vec{X: x1, Y: y1, Z: z})
}

func newTestMesh(t *testing.T) *Mesh {
	t.Helper()
	m := NewMesh(DefaultParams())
	m.SetSeed(1)
	return m
}

func mustAdd(t *testing.T, m *Mesh, areas ...*Area) {
	t.Helper()
	for _, a := range areas {
		if err := m.Add(a); err != nil {
			t.Fatalf("Add(%d): %v", a.ID(), err)
		}
	}
}

// connectBoth connects a to b in dir and b to a in the opposite direction.
func connectBoth(a, b *Area, dir Dir) {
	a.ConnectTo(b, dir)
	b.ConnectTo(a, dir.Opposite())
}

// scriptedTracer blocks segments for which block returns true.
type scriptedTracer struct {
	block func(from, to r3.Vec) bool
	calls int
}

func (s *scriptedTracer) TraceLine(from, to r3.Vec) Trace {
	s.calls++
	if s.block != nil && s.block(from, to) {
		return Trace{Fraction: 0.5}
	}
	return Trace{Fraction: 1}
}

type testClock struct{ now float64 }

func (c *testClock) Now() float64 { return c.now }

func TestMeshAddErrors(t *testing.T) {
	m := newTestMesh(t)
	a := flatArea(0, 0, 100, 100, 0)
	mustAdd(t, m, a)

	if err := m.Add(a); !errors.Is(err, ErrAreaExists) {
		t.Errorf("second Add error = %v, want ErrAreaExists", err)
	}

	other := newTestMesh(t)
	if err := other.Add(a); !errors.Is(err, ErrForeignArea) {
		t.Errorf("foreign Add error = %v, want ErrForeignArea", err)
	}

	if m.Len() != 1 || other.Len() != 0 {
		t.Errorf("Len = %d/%d, want 1/0", m.Len(), other.Len())
	}
}

func TestAreaIDsAreUnique(t *testing.T) {
	seen := make(map[AreaID]bool)
	prev := AreaID(0)
	for i := 0; i < 50; i++ {
		a := flatArea(0, 0, 1, 1, 0)
		if a.ID() == 0 {
			t.Fatal("area id 0 assigned")
		}
		if seen[a.ID()] {
			t.Fatalf("duplicate id %d", a.ID())
		}
		if a.ID() <= prev {
			t.Errorf("id %d not greater than previous %d", a.ID(), prev)
		}
		seen[a.ID()] = true
		prev = a.ID()
	}
}

func TestMeshOverlapsAndGetNavArea(t *testing.T) {
	m := newTestMesh(t)
	ground := flatArea(0, 0, 100, 100, 0)
	bridge := flatArea(25, 0, 75, 100, 50)
	side := flatArea(200, 0, 300, 100, 0)
	mustAdd(t, m, ground, bridge, side)

	if len(ground.Overlaps()) != 1 || ground.Overlaps()[0] != bridge.ID() {
		t.Errorf("ground overlaps = %v, want [%d]", ground.Overlaps(), bridge.ID())
	}
	if len(bridge.Overlaps()) != 1 || bridge.Overlaps()[0] != ground.ID() {
		t.Errorf("bridge overlaps = %v, want [%d]", bridge.Overlaps(), ground.ID())
	}
	if len(side.Overlaps()) != 0 {
		t.Errorf("side overlaps = %v, want none", side.Overlaps())
	}

	tests := []struct {
		name string
		pos  r3.Vec
		want *Area
	}{
		{"under bridge", r3.Vec{X: 50, Y: 50, Z: 5}, ground},
		{"on bridge", r3.Vec{X: 50, Y: 50, Z: 60}, bridge},
		{"beside bridge", r3.Vec{X: 10, Y: 50, Z: 60}, ground},
		{"other area", r3.Vec{X: 250, Y: 50, Z: 0}, side},
		{"outside", r3.Vec{X: 150, Y: 50, Z: 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.GetNavArea(tt.pos)
			if got != tt.want {
				t.Errorf("GetNavArea(%v) = %v, want %v", tt.pos, areaID(got), areaID(tt.want))
			}
		})
	}

	if got := m.GetNearestNavArea(r3.Vec{X: 180, Y: 50}); got != side {
		t.Errorf("GetNearestNavArea = %v, want %d", areaID(got), side.ID())
	}
}

func areaID(a *Area) AreaID {
	if a == nil {
		return 0
	}
	return a.ID()
}

func TestMeshRemoveNotifies(t *testing.T) {
	m := newTestMesh(t)
	a := flatArea(0, 0, 100, 100, 0)
	b := flatArea(100, 0, 200, 100, 0)
	over := flatArea(50, 0, 150, 100, 40)
	mustAdd(t, m, a, b, over)

	connectBoth(a, b, East)
	over.ConnectTo(b, South)
	l := &Ladder{BottomArea: a.ID(), TopForward: b.ID()}
	m.AddLadder(l)

	m.Remove(b)

	if m.Area(b.ID()) != nil {
		t.Fatal("removed area still registered")
	}
	for _, area := range m.Areas() {
		for d := North; d < NumDirections; d++ {
			for _, c := range area.Connections(d) {
				if c.Area == b.ID() {
					t.Errorf("area %d still connects to removed area", area.ID())
				}
			}
		}
		for _, id := range area.Overlaps() {
			if id == b.ID() {
				t.Errorf("area %d still overlaps removed area", area.ID())
			}
		}
	}
	if l.TopForward != 0 {
		t.Errorf("ladder top = %d, want cleared", l.TopForward)
	}
	if l.BottomArea != a.ID() {
		t.Errorf("ladder bottom = %d, want %d", l.BottomArea, a.ID())
	}
	if b.Mesh() != nil {
		t.Error("removed area still references mesh")
	}

	var found bool
	m.Index().Query(150, 50, 150, 50, func(id AreaID) bool {
		if id == b.ID() {
			found = true
		}
		return true
	})
	if found {
		t.Error("removed area still indexed")
	}
}

func TestMeshReset(t *testing.T) {
	m := newTestMesh(t)
	a := flatArea(0, 0, 100, 100, 0)
	b := flatArea(100, 0, 200, 100, 0)
	mustAdd(t, m, a, b)
	connectBoth(a, b, East)
	m.AddLadder(&Ladder{BottomArea: a.ID()})
	a.ComputeHidingSpots()

	m.Reset()

	if m.Len() != 0 || len(m.Ladders()) != 0 || len(m.HidingSpots()) != 0 {
		t.Errorf("after Reset: areas=%d ladders=%d spots=%d", m.Len(), len(m.Ladders()), len(m.HidingSpots()))
	}
	if m.Index().Len() != 0 {
		t.Errorf("index holds %d areas after Reset", m.Index().Len())
	}
	if m.GetNavArea(r3.Vec{X: 50, Y: 50}) != nil {
		t.Error("GetNavArea found an area after Reset")
	}
}
