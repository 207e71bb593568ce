// Package nav implements a navigation mesh built from axis-aligned areas:
// geometry queries, directed connectivity, in-place editing, tactical
// analysis for AI and the open-list primitives of a path-cost search.
package nav

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrAreaExists is returned when adding an area the mesh already owns.
	ErrAreaExists = errors.New("nav: area already in mesh")
	// ErrForeignArea is returned when adding an area owned by another mesh.
	ErrForeignArea = errors.New("nav: area belongs to another mesh")
)

// Trace is the result of a line-of-sight test.
type Trace struct {
	Fraction   float64 // fraction of the segment travelled before a hit, 1 when clear
	StartSolid bool    // the segment started inside solid geometry
}

// Tracer answers line-of-sight queries against solid world geometry.
type Tracer interface {
	TraceLine(from, to r3.Vec) Trace
}

// Clock reports the simulation time in seconds.
type Clock interface {
	Now() float64
}

// EntitySource enumerates live entities with their team and position.
type EntitySource interface {
	ForEachLiveEntity(fn func(team int, pos r3.Vec))
}

// Mesh owns every area and ladder of a navigation mesh and keeps the
// registry, the spatial index and the search state in sync. All mutation of
// area membership goes through its methods.
//
// A Mesh is not safe for concurrent use.
type Mesh struct {
	params Params

	areas map[AreaID]*Area
	order []*Area
	index *AreaIndex

	ladders      map[LadderID]*Ladder
	ladderOrder  []LadderID
	nextLadderID LadderID

	spots      []*HidingSpot
	nextSpotID uint32
	spotMarker uint32

	open         openList
	searchMarker uint32
	seq          uint64

	tracer   Tracer
	clock    Clock
	entities EntitySource
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewMesh creates an empty mesh with the given parameters.
func NewMesh(params Params) *Mesh {
	return &Mesh{
		params:       params,
		areas:        make(map[AreaID]*Area),
		index:        NewAreaIndex(params.GridCellSize),
		ladders:      make(map[LadderID]*Ladder),
		searchMarker: 1,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:       slog.Default(),
	}
}

// Params returns the mesh parameters.
func (m *Mesh) Params() Params { return m.params }

// SetTracer sets the line-of-sight collaborator. A nil tracer treats every
// line as clear.
func (m *Mesh) SetTracer(t Tracer) { m.tracer = t }

// SetClock sets the simulation clock used by danger tracking.
func (m *Mesh) SetClock(c Clock) { m.clock = c }

// SetEntitySource sets the collaborator used by occupancy queries.
func (m *Mesh) SetEntitySource(s EntitySource) { m.entities = s }

// SetRand replaces the random source used for tie-breaks.
func (m *Mesh) SetRand(r *rand.Rand) {
	if r != nil {
		m.rng = r
	}
}

// SetSeed reseeds the random source.
func (m *Mesh) SetSeed(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

// SetLogger sets the logger used for edit and bake diagnostics.
func (m *Mesh) SetLogger(l *slog.Logger) {
	if l != nil {
		m.logger = l
	}
}

// Index returns the spatial index.
func (m *Mesh) Index() *AreaIndex { return m.index }

func (m *Mesh) now() float64 {
	if m.clock == nil {
		return 0
	}
	return m.clock.Now()
}

func (m *Mesh) traceLine(from, to r3.Vec) Trace {
	if m.tracer == nil {
		return Trace{Fraction: 1}
	}
	return m.tracer.TraceLine(from, to)
}

// Len returns the number of areas.
func (m *Mesh) Len() int { return len(m.order) }

// Area returns the area with the given id, or nil.
func (m *Mesh) Area(id AreaID) *Area {
	if id == 0 {
		return nil
	}
	return m.areas[id]
}

// Areas returns every area in insertion order. The slice is owned by the
// mesh and must not be modified.
func (m *Mesh) Areas() []*Area { return m.order }

// Add registers an area, indexes it and records its overlaps.
func (m *Mesh) Add(a *Area) error {
	if a.mesh == m {
		return fmt.Errorf("add area %d: %w", a.id, ErrAreaExists)
	}
	if a.mesh != nil {
		return fmt.Errorf("add area %d: %w", a.id, ErrForeignArea)
	}

	a.mesh = m
	a.overlaps = a.overlaps[:0]
	a.search = searchState{heapIndex: -1}

	e := a.extent
	m.index.Query(e.Lo.X, e.Lo.Y, e.Hi.X, e.Hi.Y, func(id AreaID) bool {
		other := m.areas[id]
		if other != nil && a.IsOverlappingArea(other) {
			a.overlaps = append(a.overlaps, other.id)
			other.overlaps = append(other.overlaps, a.id)
		}
		return true
	})

	m.areas[a.id] = a
	m.order = append(m.order, a)
	m.index.Insert(a.id, a.extent)

	// Ladders registered before the area existed pick it up now.
	for _, lid := range m.ladderOrder {
		l := m.ladders[lid]
		if l.BottomArea == a.id {
			a.addLadder(LadderUp, lid)
		}
		for _, id := range l.topAreas() {
			if id == a.id {
				a.addLadder(LadderDown, lid)
			}
		}
	}

	return nil
}

// Remove destroys an area. Every other area and every ladder is notified
// first so that no reference to it survives.
func (m *Mesh) Remove(a *Area) {
	if a == nil || a.mesh != m {
		return
	}

	for _, other := range m.order {
		if other != a {
			other.onDestroyNotify(a.id)
		}
	}
	for _, lid := range m.ladderOrder {
		m.ladders[lid].OnDestroyNotify(a.id)
	}

	if a.IsOpen() {
		a.RemoveFromOpenList()
	}
	m.removeSpotsOf(a)

	m.index.Remove(a.id)
	delete(m.areas, a.id)
	for i, other := range m.order {
		if other == a {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	a.mesh = nil
}

// Reset destroys every area and ladder at once. Areas are not notified of
// each other's destruction, so areas obtained from the mesh before the
// reset must not be used afterwards.
func (m *Mesh) Reset() {
	for _, a := range m.order {
		a.mesh = nil
	}
	clear(m.areas)
	m.order = nil
	m.index.Clear()

	clear(m.ladders)
	m.ladderOrder = nil

	m.spots = nil
	m.open = m.open[:0]
	m.searchMarker++
}

// reindex refreshes an area's entry in the spatial index.
func (m *Mesh) reindex(a *Area) {
	m.index.Update(a.id, a.extent)
}

// GetNavArea returns the area whose surface lies directly beneath pos: the
// highest overlapping area no more than StepHeight above pos. It returns nil
// when no area is beneath pos.
func (m *Mesh) GetNavArea(pos r3.Vec) *Area {
	var (
		best  *Area
		bestZ float64
	)

	m.index.Query(pos.X, pos.Y, pos.X, pos.Y, func(id AreaID) bool {
		a := m.areas[id]
		if a == nil || !a.IsOverlapping(pos) {
			return true
		}
		z := a.GetZ(pos.X, pos.Y)
		if z > pos.Z+m.params.StepHeight {
			return true
		}
		if best == nil || z > bestZ {
			best, bestZ = a, z
		}
		return true
	})

	return best
}

// GetNearestNavArea returns the area closest to pos, or nil for an empty
// mesh. It scans every area.
func (m *Mesh) GetNearestNavArea(pos r3.Vec) *Area {
	if a := m.GetNavArea(pos); a != nil {
		return a
	}

	var (
		best   *Area
		bestSq float64
	)
	for _, a := range m.order {
		d := a.GetDistanceSquaredToPoint(pos)
		if best == nil || d < bestSq {
			best, bestSq = a, d
		}
	}
	return best
}
