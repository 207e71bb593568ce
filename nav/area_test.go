package nav

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestGetZ(t *testing.T) {
	ramp := NewAreaFromCorners(
		r3.Vec{X: 0, Y: 0, Z: 0},
		r3.Vec{X: 100, Y: 0, Z: 10},
		r3.Vec{X: 100, Y: 100, Z: 30},
		r3.Vec{X: 0, Y: 100, Z: 20},
	)
	flat := flatArea(0, 0, 100, 100, 0)

	tests := []struct {
		name string
		area *Area
		x, y float64
		want float64
	}{
		{"ramp north-west", ramp, 0, 0, 0},
		{"ramp north-east", ramp, 100, 0, 10},
		{"ramp south-east", ramp, 100, 100, 30},
		{"ramp south-west", ramp, 0, 100, 20},
		{"ramp center", ramp, 50, 50, 15},
		{"ramp clamps east", ramp, 250, 0, 10},
		{"ramp clamps north-west", ramp, -40, -40, 0},
		{"flat center", flat, 50, 50, 0},
		{"flat outside", flat, 150, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.area.GetZ(tt.x, tt.y)
			if !approx(got, tt.want) {
				t.Errorf("GetZ(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if got, want := flat.GetZ(150, 50), flat.GetZ(100, 50); got != want {
		t.Errorf("GetZ outside = %v, want edge height %v", got, want)
	}
}

func TestGetZDegenerate(t *testing.T) {
	line := NewAreaFromCorners(
		r3.Vec{X: 10, Y: 0, Z: 1},
		r3.Vec{X: 10, Y: 0, Z: 7},
		r3.Vec{X: 10, Y: 50, Z: 3},
		r3.Vec{X: 10, Y: 50, Z: 4},
	)

	for _, p := range [][2]float64{{10, 25}, {0, 0}, {math.NaN(), 5}, {math.Inf(1), 0}} {
		got := line.GetZ(p[0], p[1])
		if got != 7 {
			t.Errorf("GetZ(%v, %v) = %v, want north-east height 7", p[0], p[1], got)
		}
	}

	flat := flatArea(0, 0, 100, 100, 3)
	if got := flat.GetZ(math.NaN(), math.NaN()); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("GetZ(NaN, NaN) = %v, want finite", got)
	}
}

func TestCenterAndCorners(t *testing.T) {
	a := NewAreaFromCorners(
		r3.Vec{X: 0, Y: 0, Z: 2},
		r3.Vec{X: 100, Y: 0, Z: 50},
		r3.Vec{X: 100, Y: 60, Z: 8},
		r3.Vec{X: 0, Y: 60, Z: 70},
	)

	// The center height only averages the north-west and south-east corners.
	if want := (r3.Vec{X: 50, Y: 30, Z: 5}); a.Center() != want {
		t.Errorf("Center = %v, want %v", a.Center(), want)
	}

	want := map[Corner]r3.Vec{
		NorthWest: {X: 0, Y: 0, Z: 2},
		NorthEast: {X: 100, Y: 0, Z: 50},
		SouthEast: {X: 100, Y: 60, Z: 8},
		SouthWest: {X: 0, Y: 60, Z: 70},
	}
	for c, w := range want {
		if got := a.Corner(c); got != w {
			t.Errorf("Corner(%d) = %v, want %v", c, got, w)
		}
	}

	swapped := NewFlatArea(r3.Vec{X: 100, Y: 100, Z: 4}, r3.Vec{X: 0, Y: 0, Z: 4})
	if e := swapped.Extent(); e.Lo.X != 0 || e.Lo.Y != 0 || e.Hi.X != 100 || e.Hi.Y != 100 {
		t.Errorf("NewFlatArea extent = %v, want (0,0)-(100,100)", e)
	}
}

func TestNewAreaFromNodes(t *testing.T) {
	nw := NewNode(r3.Vec{X: 0, Y: 0})
	ne := NewNode(r3.Vec{X: 25, Y: 0})
	se := NewNode(r3.Vec{X: 25, Y: 25, Z: 5})
	sw := NewNode(r3.Vec{X: 0, Y: 25})

	a := NewAreaFromNodes(nw, ne, se, sw)

	if a.SizeX() != 25 || a.SizeY() != 25 {
		t.Errorf("size = %vx%v, want 25x25", a.SizeX(), a.SizeY())
	}
	for _, n := range []*Node{nw, ne, se, sw} {
		if n.Area() != a.ID() {
			t.Errorf("node %v area = %d, want %d", n.Position(), n.Area(), a.ID())
		}
	}
	if got := a.GetZ(25, 25); got != 5 {
		t.Errorf("GetZ(se) = %v, want 5", got)
	}
}

func TestContainsStacked(t *testing.T) {
	m := newTestMesh(t)
	ground := flatArea(0, 0, 100, 100, 0)
	bridge := flatArea(25, 0, 75, 100, 50)
	mustAdd(t, m, ground, bridge)

	tests := []struct {
		name       string
		pos        r3.Vec
		wantGround bool
		wantBridge bool
	}{
		{"below bridge", r3.Vec{X: 50, Y: 50, Z: 10}, true, false},
		{"on bridge", r3.Vec{X: 50, Y: 50, Z: 60}, false, true},
		{"beside bridge", r3.Vec{X: 10, Y: 50, Z: 60}, true, false},
		{"under ground", r3.Vec{X: 10, Y: 50, Z: -10}, false, false},
		{"outside", r3.Vec{X: 150, Y: 50, Z: 10}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ground.Contains(tt.pos); got != tt.wantGround {
				t.Errorf("ground.Contains = %v, want %v", got, tt.wantGround)
			}
			if got := bridge.Contains(tt.pos); got != tt.wantBridge {
				t.Errorf("bridge.Contains = %v, want %v", got, tt.wantBridge)
			}
		})
	}
}

func TestComputePortal(t *testing.T) {
	a := flatArea(0, 0, 100, 100, 0)

	tests := []struct {
		name      string
		other     *Area
		dir       Dir
		center    r3.Vec
		halfWidth float64
	}{
		{"narrow east", flatArea(100, 25, 200, 75, 0), East, r3.Vec{X: 100, Y: 50}, 25},
		{"wide east clamps", flatArea(100, -50, 200, 150, 0), East, r3.Vec{X: 100, Y: 50}, 50},
		{"north", flatArea(0, -100, 40, 0, 0), North, r3.Vec{X: 20, Y: 0}, 20},
		{"south", flatArea(60, 100, 160, 200, 0), South, r3.Vec{X: 80, Y: 100}, 20},
		{"west", flatArea(-100, 0, 0, 100, 0), West, r3.Vec{X: 0, Y: 50}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, hw := a.ComputePortal(tt.other, tt.dir)
			if center != tt.center {
				t.Errorf("center = %v, want %v", center, tt.center)
			}
			if hw != tt.halfWidth {
				t.Errorf("halfWidth = %v, want %v", hw, tt.halfWidth)
			}
		})
	}
}

func TestComputeClosestPointInPortal(t *testing.T) {
	m := newTestMesh(t)
	a := flatArea(0, 0, 100, 100, 0)
	b := flatArea(100, 0, 200, 100, 0)
	mustAdd(t, m, a, b)
	connectBoth(a, b, East)

	// b has no neighbors north or south, so both portal ends keep a half step
	// margin.
	got := a.ComputeClosestPointInPortal(b, East, r3.Vec{X: 50, Y: -40})
	if want := (r3.Vec{X: 100, Y: 12.5}); got != want {
		t.Errorf("closest = %v, want %v", got, want)
	}

	got = a.ComputeClosestPointInPortal(b, East, r3.Vec{X: 50, Y: 60})
	if want := (r3.Vec{X: 100, Y: 60}); got != want {
		t.Errorf("closest = %v, want %v", got, want)
	}

	c := flatArea(100, -100, 200, 0, 0)
	mustAdd(t, m, c)
	connectBoth(b, c, North)

	got = a.ComputeClosestPointInPortal(b, East, r3.Vec{X: 50, Y: -40})
	if want := (r3.Vec{X: 100, Y: 0}); got != want {
		t.Errorf("closest with north neighbor = %v, want %v", got, want)
	}
}

func TestIsCoplanar(t *testing.T) {
	flat := flatArea(0, 0, 100, 100, 0)
	raised := flatArea(100, 0, 200, 100, 30)
	ramp := NewAreaFromCorners(
		r3.Vec{X: 0, Y: 100, Z: 0},
		r3.Vec{X: 100, Y: 100, Z: 100},
		r3.Vec{X: 100, Y: 200, Z: 100},
		r3.Vec{X: 0, Y: 200, Z: 0},
	)

	if !flat.IsCoplanar(raised) {
		t.Error("parallel flat areas should be coplanar")
	}
	if flat.IsCoplanar(ramp) {
		t.Error("flat and 45 degree ramp should not be coplanar")
	}
	if !ramp.IsCoplanar(ramp) {
		t.Error("area should be coplanar with itself")
	}
}

func TestGetDistanceSquaredToPoint(t *testing.T) {
	a := NewAreaFromCorners(
		r3.Vec{X: 0, Y: 0, Z: 0},
		r3.Vec{X: 100, Y: 0, Z: 10},
		r3.Vec{X: 100, Y: 100, Z: 0},
		r3.Vec{X: 0, Y: 100, Z: 0},
	)

	tests := []struct {
		name string
		pos  r3.Vec
		want float64
	}{
		{"west", r3.Vec{X: -10, Y: 50, Z: 99}, 100},
		{"east", r3.Vec{X: 130, Y: 50, Z: 0}, 900},
		{"north", r3.Vec{X: 50, Y: -20, Z: 0}, 400},
		{"south", r3.Vec{X: 50, Y: 105, Z: 0}, 25},
		{"north-west corner", r3.Vec{X: -3, Y: -4, Z: 0}, 25},
		{"north-east corner", r3.Vec{X: 103, Y: -4, Z: 10}, 25},
		{"above", r3.Vec{X: 0, Y: 50, Z: 7}, 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.GetDistanceSquaredToPoint(tt.pos); !approx(got, tt.want) {
				t.Errorf("GetDistanceSquaredToPoint(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestGetClosestPointOnArea(t *testing.T) {
	a := flatArea(0, 0, 100, 100, 4)
	got := a.GetClosestPointOnArea(r3.Vec{X: 150, Y: 50, Z: 9})
	if want := (r3.Vec{X: 100, Y: 50, Z: 4}); got != want {
		t.Errorf("closest = %v, want %v", got, want)
	}
}

func TestComputeDirection(t *testing.T) {
	a := flatArea(0, 0, 100, 100, 0)

	tests := []struct {
		point r3.Vec
		want  Dir
	}{
		{r3.Vec{X: 50, Y: -10}, North},
		{r3.Vec{X: 150, Y: 50}, East},
		{r3.Vec{X: 50, Y: 150}, South},
		{r3.Vec{X: -5, Y: 50}, West},
		{r3.Vec{X: 200, Y: 150}, East},
		{r3.Vec{X: 60, Y: -300}, North},
	}

	for _, tt := range tests {
		if got := a.ComputeDirection(tt.point); got != tt.want {
			t.Errorf("ComputeDirection(%v) = %v, want %v", tt.point, got, tt.want)
		}
	}
}

func TestComputeHeightChange(t *testing.T) {
	low := flatArea(0, 0, 100, 100, 0)
	high := flatArea(100, 0, 200, 100, 32)
	if got := low.ComputeHeightChange(high); got != 32 {
		t.Errorf("ComputeHeightChange = %v, want 32", got)
	}
	if got := high.ComputeHeightChange(low); got != -32 {
		t.Errorf("ComputeHeightChange = %v, want -32", got)
	}
}

func TestRaiseCorner(t *testing.T) {
	a := flatArea(0, 0, 100, 100, 0)

	a.RaiseCorner(NorthEast, 10)
	if got := a.GetZ(100, 0); got != 10 {
		t.Errorf("north-east height = %v, want 10", got)
	}
	if got := a.GetZ(0, 0); got != 0 {
		t.Errorf("north-west height = %v, want 0", got)
	}

	a.RaiseCorner(CornerAll, 5)
	for c, want := range map[Corner]float64{NorthWest: 5, NorthEast: 15, SouthEast: 5, SouthWest: 5} {
		if got := a.Corner(c).Z; got != want {
			t.Errorf("corner %d height = %v, want %v", c, got, want)
		}
	}
	if a.Center().Z != 5 {
		t.Errorf("center height = %v, want 5", a.Center().Z)
	}
}

func TestIsRoughlySquare(t *testing.T) {
	tests := []struct {
		area *Area
		want bool
	}{
		{flatArea(0, 0, 100, 100, 0), true},
		{flatArea(0, 0, 300, 100, 0), true},
		{flatArea(0, 0, 400, 100, 0), false},
		{flatArea(0, 0, 100, 400, 0), false},
		{flatArea(0, 0, 100, 0, 0), false},
	}

	for _, tt := range tests {
		if got := tt.area.IsRoughlySquare(); got != tt.want {
			t.Errorf("%vx%v IsRoughlySquare = %v, want %v", tt.area.SizeX(), tt.area.SizeY(), got, tt.want)
		}
	}
}

func TestOverlapQueries(t *testing.T) {
	a := flatArea(0, 0, 100, 100, 0)
	b := flatArea(50, 200, 150, 300, 0)

	if !a.IsOverlappingX(b) {
		t.Error("expected X spans to overlap")
	}
	if a.IsOverlappingY(b) {
		t.Error("expected Y spans not to overlap")
	}
	if a.IsOverlappingArea(b) {
		t.Error("expected extents not to overlap")
	}
	if !a.IsOverlapping(r3.Vec{X: 100, Y: 100}) {
		t.Error("boundary point should overlap")
	}
}
