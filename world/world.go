// Package world provides the collaborators a nav.Mesh consumes: live entities,
// a simulation clock and a line-of-sight tracer over solid boxes.
package world

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/navarea/components"
	"github.com/pthm-cable/navarea/config"
	"github.com/pthm-cable/navarea/nav"
)

// World holds live entities in an ECS world alongside the mesh that
// navigates them.
type World struct {
	ecs    *ecs.World
	nextID uint32

	entityMapper *ecs.Map2[components.Position, components.Combatant]
	entityFilter *ecs.Filter2[components.Position, components.Combatant]
	posMap       *ecs.Map1[components.Position]
	combatMap    *ecs.Map1[components.Combatant]

	Mesh   *nav.Mesh
	Clock  *Clock
	Tracer *BoxTracer
}

// New creates a world with an empty mesh configured from cfg.
func New(cfg *config.Config, logger *slog.Logger) *World {
	w := NewEntities()

	seed := cfg.Editing.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w.Clock = &Clock{}
	w.Tracer = NewBoxTracer()
	w.Mesh = nav.NewMesh(Params(cfg))
	w.Mesh.SetTracer(w.Tracer)
	w.Mesh.SetClock(w.Clock)
	w.Mesh.SetEntitySource(w)
	w.Mesh.SetRand(rand.New(rand.NewSource(seed)))
	if logger != nil {
		w.Mesh.SetLogger(logger)
	}
	return w
}

// NewEntities creates a world holding only the entity store, with no mesh.
func NewEntities() *World {
	world := ecs.NewWorld()
	return &World{
		ecs:          world,
		entityMapper: ecs.NewMap2[components.Position, components.Combatant](world),
		entityFilter: ecs.NewFilter2[components.Position, components.Combatant](world),
		posMap:       ecs.NewMap1[components.Position](world),
		combatMap:    ecs.NewMap1[components.Combatant](world),
	}
}

// Spawn adds a live entity of the given team at pos.
func (w *World) Spawn(team int, pos r3.Vec) ecs.Entity {
	w.nextID++
	p := components.PositionOf(pos)
	c := components.Combatant{ID: w.nextID, Team: team, Alive: true}
	return w.entityMapper.NewEntity(&p, &c)
}

// Kill marks an entity dead. Dead entities stay in the store until Sweep.
func (w *World) Kill(e ecs.Entity) {
	if !w.ecs.Alive(e) || !w.combatMap.HasAll(e) {
		return
	}
	w.combatMap.Get(e).Alive = false
}

// Move sets an entity's position.
func (w *World) Move(e ecs.Entity, pos r3.Vec) {
	if !w.ecs.Alive(e) || !w.posMap.HasAll(e) {
		return
	}
	*w.posMap.Get(e) = components.PositionOf(pos)
}

// Sweep removes dead entities and returns how many were removed.
func (w *World) Sweep() int {
	var dead []ecs.Entity
	query := w.entityFilter.Query()
	for query.Next() {
		_, c := query.Get()
		if !c.Alive {
			dead = append(dead, query.Entity())
		}
	}
	for _, e := range dead {
		w.ecs.RemoveEntity(e)
	}
	return len(dead)
}

// ForEachLiveEntity calls fn for every living entity.
func (w *World) ForEachLiveEntity(fn func(team int, pos r3.Vec)) {
	query := w.entityFilter.Query()
	for query.Next() {
		p, c := query.Get()
		if c.Alive {
			fn(c.Team, p.Vec())
		}
	}
}

// Count returns the number of entities in the store, living or dead.
func (w *World) Count() int {
	n := 0
	query := w.entityFilter.Query()
	for query.Next() {
		n++
	}
	return n
}
