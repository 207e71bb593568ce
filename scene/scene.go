// Package scene reads YAML scene descriptions (areas, connections, ladders,
// solids and entities) and builds them into a world.
package scene

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/navarea/nav"
	"github.com/pthm-cable/navarea/world"
)

// Scene is the decoded form of a scene file.
type Scene struct {
	Areas       []AreaDef       `yaml:"areas"`
	Connections []ConnectionDef `yaml:"connections"`
	Ladders     []LadderDef     `yaml:"ladders"`
	Solids      []SolidDef      `yaml:"solids"`
	Entities    []EntityDef     `yaml:"entities"`
}

// AreaDef describes an area either by two opposite corners (Lo/Hi) or by
// all four corners in north-west, north-east, south-east, south-west order.
type AreaDef struct {
	Name       string   `yaml:"name"`
	Lo         Vec      `yaml:"lo"`
	Hi         Vec      `yaml:"hi"`
	Corners    []Vec    `yaml:"corners"`
	Attributes []string `yaml:"attributes"`
	Place      uint32   `yaml:"place"`
}

// ConnectionDef describes a connection from one named area to another.
type ConnectionDef struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Dir    string `yaml:"dir"`
	TwoWay bool   `yaml:"two_way"`
	Bits   uint32 `yaml:"bits"`
}

// LadderDef describes a ladder and the named areas it joins.
type LadderDef struct {
	Bottom     Vec     `yaml:"bottom"`
	Top        Vec     `yaml:"top"`
	Width      float64 `yaml:"width"`
	BottomArea string  `yaml:"bottom_area"`
	TopForward string  `yaml:"top_forward"`
	TopLeft    string  `yaml:"top_left"`
	TopRight   string  `yaml:"top_right"`
	TopBehind  string  `yaml:"top_behind"`
}

// SolidDef is an axis-aligned box that blocks line of sight.
type SolidDef struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

// EntityDef is a live entity placed in the world.
type EntityDef struct {
	Team int `yaml:"team"`
	Pos  Vec `yaml:"pos"`
}

// Vec is a position written as [x, y] or [x, y, z].
type Vec []float64

func (v Vec) toVec(defaultZ float64) (r3.Vec, error) {
	switch len(v) {
	case 2:
		return r3.Vec{X: v[0], Y: v[1], Z: defaultZ}, nil
	case 3:
		return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
	}
	return r3.Vec{}, fmt.Errorf("position needs 2 or 3 components, got %d", len(v))
}

// Built maps the names used in a scene to the areas created for them.
type Built struct {
	Areas map[string]*nav.Area
	names map[nav.AreaID]string
}

// Name returns the scene name of an area, or its id when it has none
// (areas created by edits).
func (b *Built) Name(a *nav.Area) string {
	if n, ok := b.names[a.ID()]; ok {
		return n
	}
	return fmt.Sprintf("#%d", a.ID())
}

// Area looks up an area by scene name.
func (b *Built) Area(name string) (*nav.Area, error) {
	a, ok := b.Areas[name]
	if !ok {
		return nil, fmt.Errorf("unknown area %q", name)
	}
	return a, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	s := &Scene{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return s, nil
}

// Build adds the scene's areas, connections, ladders, solids and entities
// to w. On error the world may hold part of the scene.
func (s *Scene) Build(w *world.World) (*Built, error) {
	b := &Built{
		Areas: make(map[string]*nav.Area, len(s.Areas)),
		names: make(map[nav.AreaID]string, len(s.Areas)),
	}

	for i, def := range s.Areas {
		if def.Name == "" {
			return nil, fmt.Errorf("area %d: missing name", i)
		}
		if _, dup := b.Areas[def.Name]; dup {
			return nil, fmt.Errorf("area %q: duplicate name", def.Name)
		}
		a, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("area %q: %w", def.Name, err)
		}
		if err := w.Mesh.Add(a); err != nil {
			return nil, fmt.Errorf("area %q: %w", def.Name, err)
		}
		b.Areas[def.Name] = a
		b.names[a.ID()] = def.Name
	}

	for i, def := range s.Connections {
		from, err := b.Area(def.From)
		if err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
		to, err := b.Area(def.To)
		if err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
		dir, ok := nav.ParseDir(strings.ToLower(def.Dir))
		if !ok {
			return nil, fmt.Errorf("connection %d: unknown direction %q", i, def.Dir)
		}
		from.ConnectToWith(to, dir, def.Bits)
		if def.TwoWay {
			to.ConnectToWith(from, dir.Opposite(), def.Bits)
		}
	}

	for i, def := range s.Ladders {
		l, err := b.ladder(def)
		if err != nil {
			return nil, fmt.Errorf("ladder %d: %w", i, err)
		}
		w.Mesh.AddLadder(l)
	}

	for i, def := range s.Solids {
		lo, err := def.Min.toVec(0)
		if err != nil {
			return nil, fmt.Errorf("solid %d min: %w", i, err)
		}
		hi, err := def.Max.toVec(0)
		if err != nil {
			return nil, fmt.Errorf("solid %d max: %w", i, err)
		}
		w.Tracer.Add(world.Box{Min: lo, Max: hi})
	}

	for i, def := range s.Entities {
		pos, err := def.Pos.toVec(0)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		w.Spawn(def.Team, pos)
	}

	return b, nil
}

func (def AreaDef) build() (*nav.Area, error) {
	var a *nav.Area
	switch {
	case len(def.Corners) > 0:
		if len(def.Corners) != int(nav.NumCorners) {
			return nil, fmt.Errorf("need 4 corners, got %d", len(def.Corners))
		}
		var c [nav.NumCorners]r3.Vec
		for i, v := range def.Corners {
			p, err := v.toVec(0)
			if err != nil {
				return nil, fmt.Errorf("corner %d: %w", i, err)
			}
			c[i] = p
		}
		a = nav.NewAreaFromCorners(c[nav.NorthWest], c[nav.NorthEast], c[nav.SouthEast], c[nav.SouthWest])
	case def.Lo != nil && def.Hi != nil:
		lo, err := def.Lo.toVec(0)
		if err != nil {
			return nil, fmt.Errorf("lo: %w", err)
		}
		hi, err := def.Hi.toVec(lo.Z)
		if err != nil {
			return nil, fmt.Errorf("hi: %w", err)
		}
		a = nav.NewFlatArea(lo, hi)
	default:
		return nil, fmt.Errorf("needs lo/hi or corners")
	}

	if a.SizeX() <= 0 || a.SizeY() <= 0 {
		return nil, fmt.Errorf("degenerate extent %gx%g", a.SizeX(), a.SizeY())
	}

	attr, err := ParseAttributes(def.Attributes)
	if err != nil {
		return nil, err
	}
	a.SetAttributes(attr)
	a.SetPlace(nav.Place(def.Place))
	return a, nil
}

func (b *Built) ladder(def LadderDef) (*nav.Ladder, error) {
	bottom, err := def.Bottom.toVec(0)
	if err != nil {
		return nil, fmt.Errorf("bottom: %w", err)
	}
	top, err := def.Top.toVec(0)
	if err != nil {
		return nil, fmt.Errorf("top: %w", err)
	}
	if top.Z <= bottom.Z {
		return nil, fmt.Errorf("top (z=%g) must be above bottom (z=%g)", top.Z, bottom.Z)
	}

	l := &nav.Ladder{Top: top, Bottom: bottom, Width: def.Width}
	refs := []struct {
		name string
		dst  *nav.AreaID
	}{
		{def.BottomArea, &l.BottomArea},
		{def.TopForward, &l.TopForward},
		{def.TopLeft, &l.TopLeft},
		{def.TopRight, &l.TopRight},
		{def.TopBehind, &l.TopBehind},
	}
	for _, r := range refs {
		if r.name == "" {
			continue
		}
		a, err := b.Area(r.name)
		if err != nil {
			return nil, err
		}
		*r.dst = a.ID()
	}
	return l, nil
}

var attributeNames = map[string]nav.Attribute{
	"crouch":  nav.AttrCrouch,
	"jump":    nav.AttrJump,
	"precise": nav.AttrPrecise,
	"no_jump": nav.AttrNoJump,
}

// ParseAttributes combines attribute names into a flag set.
func ParseAttributes(names []string) (nav.Attribute, error) {
	var attr nav.Attribute
	for _, n := range names {
		f, ok := attributeNames[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("unknown attribute %q", n)
		}
		attr |= f
	}
	return attr, nil
}
