package nav

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"
)

// AreaID identifies an area for the lifetime of the process. Zero is never
// assigned and means "no area".
type AreaID uint32

// Place is an opaque named-region tag.
type Place uint32

// UndefinedPlace marks an area that belongs to no named region.
const UndefinedPlace Place = 0

// Attribute flags describe how an area must be traversed.
type Attribute uint8

const (
	AttrCrouch  Attribute = 1 << iota // must crouch to use this area
	AttrJump                          // must jump to traverse this area
	AttrPrecise                       // requires precise placement
	AttrNoJump                        // jumping is not allowed
)

// MaxAreaTeams is the number of per-team danger slots in an area.
const MaxAreaTeams = 2

// nextAreaID hands out process-unique area ids.
var nextAreaID atomic.Uint32

func newAreaID() AreaID {
	return AreaID(nextAreaID.Add(1))
}

// Connection is a directed edge to a neighboring area.
type Connection struct {
	Area AreaID
	Bits uint32 // caller-defined classification
}

// dangerSlot holds one team's danger and when it was last decayed.
type dangerSlot struct {
	value     float64
	timestamp float64
}

// searchState is the per-area scratch space of a path-cost search.
type searchState struct {
	openMarker   uint32
	closedMarker uint32
	heapIndex    int
	seq          uint64
	parent       AreaID
	parentHow    Dir
	costSoFar    float64
	totalCost    float64
}

// Area is a convex quadrilateral of walkable surface and the node type of
// the navigation graph. The four corner heights are Lo.Z (NW), neZ (NE),
// Hi.Z (SE) and swZ (SW).
type Area struct {
	id   AreaID
	mesh *Mesh

	extent Extent
	center r3.Vec
	neZ    float64
	swZ    float64

	attributes Attribute
	place      Place

	connect  [NumDirections][]Connection
	ladders  [NumLadderDirections][]LadderID
	overlaps []AreaID

	hidingSpots []*HidingSpot
	encounters  []*SpotEncounter

	danger  [MaxAreaTeams]dangerSlot
	cleared [MaxAreaTeams]float64

	search searchState
}

func newArea() *Area {
	a := &Area{id: newAreaID()}
	a.search.heapIndex = -1
	return a
}

// NewFlatArea creates an area spanning two opposite corners. The surface is
// flat at corner's height except the south-west corner, which takes
// otherCorner's height.
func NewFlatArea(corner, otherCorner r3.Vec) *Area {
	a := newArea()
	a.extent = Extent{Lo: corner, Hi: otherCorner}.normalized()
	a.extent.Lo.Z = corner.Z
	a.extent.Hi.Z = corner.Z
	a.neZ = corner.Z
	a.swZ = otherCorner.Z
	a.updateCenter()
	return a
}

// NewAreaFromCorners creates an area from its four corner positions. The
// planar extent is taken from the north-west and south-east corners.
func NewAreaFromCorners(nw, ne, se, sw r3.Vec) *Area {
	a := newArea()
	a.extent = Extent{Lo: nw, Hi: se}
	a.neZ = ne.Z
	a.swZ = sw.Z
	a.updateCenter()
	return a
}

// NewAreaFromNodes creates an area from the four corner nodes of a
// generation quad and tags those nodes with the new area.
func NewAreaFromNodes(nw, ne, se, sw *Node) *Area {
	a := NewAreaFromCorners(nw.pos, ne.pos, se.pos, sw.pos)
	for _, n := range [NumCorners]*Node{nw, ne, se, sw} {
		n.area = a.id
	}
	return a
}

func (a *Area) updateCenter() {
	a.center = r3.Vec{
		X: (a.extent.Lo.X + a.extent.Hi.X) / 2,
		Y: (a.extent.Lo.Y + a.extent.Hi.Y) / 2,
		Z: (a.extent.Lo.Z + a.extent.Hi.Z) / 2,
	}
}

// ID returns the area's identifier.
func (a *Area) ID() AreaID { return a.id }

// Mesh returns the mesh that owns the area, or nil.
func (a *Area) Mesh() *Mesh { return a.mesh }

// Extent returns the planar extent with the NW and SE corner heights.
func (a *Area) Extent() Extent { return a.extent }

// Center returns the planar midpoint of the area.
func (a *Area) Center() r3.Vec { return a.center }

// SizeX returns the area's width.
func (a *Area) SizeX() float64 { return a.extent.SizeX() }

// SizeY returns the area's depth.
func (a *Area) SizeY() float64 { return a.extent.SizeY() }

// Attributes returns the traversal flags.
func (a *Area) Attributes() Attribute { return a.attributes }

// SetAttributes replaces the traversal flags.
func (a *Area) SetAttributes(attr Attribute) { a.attributes = attr }

// HasAttributes reports whether every flag in attr is set.
func (a *Area) HasAttributes(attr Attribute) bool { return a.attributes&attr == attr }

// Place returns the area's place tag.
func (a *Area) Place() Place { return a.place }

// SetPlace sets the area's place tag.
func (a *Area) SetPlace(p Place) { a.place = p }

// Overlaps returns the ids of areas whose planar extent overlaps this one.
func (a *Area) Overlaps() []AreaID { return a.overlaps }

// Corner returns the position of the given corner.
func (a *Area) Corner(c Corner) r3.Vec {
	switch c {
	case NorthEast:
		return r3.Vec{X: a.extent.Hi.X, Y: a.extent.Lo.Y, Z: a.neZ}
	case SouthEast:
		return a.extent.Hi
	case SouthWest:
		return r3.Vec{X: a.extent.Lo.X, Y: a.extent.Hi.Y, Z: a.swZ}
	}
	return a.extent.Lo
}

// GetZ returns the surface height at (x, y) by bilinear interpolation of the
// four corner heights. Points outside the extent take the height of the
// nearest boundary point. Degenerate extents return the north-east height.
func (a *Area) GetZ(x, y float64) float64 {
	dx := a.extent.Hi.X - a.extent.Lo.X
	dy := a.extent.Hi.Y - a.extent.Lo.Y
	if dx == 0 || dy == 0 {
		return a.neZ
	}

	u := clamp01((x - a.extent.Lo.X) / dx)
	v := clamp01((y - a.extent.Lo.Y) / dy)

	northZ := a.extent.Lo.Z + u*(a.neZ-a.extent.Lo.Z)
	southZ := a.swZ + u*(a.extent.Hi.Z-a.swZ)

	return northZ + v*(southZ-northZ)
}

// IsOverlapping reports whether pos lies within the planar extent.
func (a *Area) IsOverlapping(pos r3.Vec) bool {
	return a.extent.ContainsXY(pos)
}

// IsOverlappingArea reports whether the planar extents of the two areas
// overlap.
func (a *Area) IsOverlappingArea(other *Area) bool {
	return a.extent.Overlaps(other.extent)
}

// IsOverlappingX reports whether the X spans of the two areas overlap.
func (a *Area) IsOverlappingX(other *Area) bool {
	return other.extent.Lo.X < a.extent.Hi.X && other.extent.Hi.X > a.extent.Lo.X
}

// IsOverlappingY reports whether the Y spans of the two areas overlap.
func (a *Area) IsOverlappingY(other *Area) bool {
	return other.extent.Lo.Y < a.extent.Hi.Y && other.extent.Hi.Y > a.extent.Lo.Y
}

// Contains reports whether pos is on or above this area and no overlapping
// area has a surface between this one and pos.
func (a *Area) Contains(pos r3.Vec) bool {
	if !a.IsOverlapping(pos) {
		return false
	}

	ourZ := a.GetZ(pos.X, pos.Y)
	if ourZ > pos.Z {
		return false
	}

	for _, id := range a.overlaps {
		other := a.neighbor(id)
		if other == nil || other == a || !other.IsOverlapping(pos) {
			continue
		}

		theirZ := other.GetZ(pos.X, pos.Y)
		if theirZ > pos.Z {
			continue
		}
		if theirZ > ourZ {
			return false
		}
	}

	return true
}

// IsCoplanar reports whether the two areas have nearly parallel surface
// normals.
func (a *Area) IsCoplanar(other *Area) bool {
	n1, ok1 := a.normal()
	n2, ok2 := other.normal()
	if !ok1 || !ok2 {
		return false
	}
	return r3.Dot(n1, n2) > a.params().CoplanarThreshold
}

// normal returns the unit surface normal spanned by the north and west edges.
func (a *Area) normal() (r3.Vec, bool) {
	u := r3.Vec{X: a.extent.Hi.X - a.extent.Lo.X, Z: a.neZ - a.extent.Lo.Z}
	v := r3.Vec{Y: a.extent.Hi.Y - a.extent.Lo.Y, Z: a.swZ - a.extent.Lo.Z}
	n, length := unitOrZero(r3.Cross(u, v))
	return n, length > 0
}

// IsRoughlySquare reports whether the aspect ratio is within MaxAspect.
// Merges do not enforce it; editors use it to avoid long, thin areas.
func (a *Area) IsRoughlySquare() bool {
	sy := a.SizeY()
	if sy == 0 {
		return false
	}
	aspect := a.SizeX() / sy
	maxAspect := a.params().MaxAspect
	return aspect >= 1/maxAspect && aspect <= maxAspect
}

// GetClosestPointOnArea returns the point of the area nearest to pos.
func (a *Area) GetClosestPointOnArea(pos r3.Vec) r3.Vec {
	e := a.extent
	closest := r3.Vec{
		X: clampFloat(pos.X, e.Lo.X, e.Hi.X),
		Y: clampFloat(pos.Y, e.Lo.Y, e.Hi.Y),
	}
	closest.Z = a.GetZ(closest.X, closest.Y)
	return closest
}

// GetDistanceSquaredToPoint returns the squared distance from pos to the
// area. Off the corners the corner height is used; beside an edge only the
// planar distance counts; above or below the area only the height differs.
func (a *Area) GetDistanceSquaredToPoint(pos r3.Vec) float64 {
	e := a.extent

	switch {
	case pos.X < e.Lo.X:
		switch {
		case pos.Y < e.Lo.Y:
			return r3.Norm2(r3.Sub(e.Lo, pos))
		case pos.Y > e.Hi.Y:
			return r3.Norm2(r3.Sub(a.Corner(SouthWest), pos))
		default:
			d := e.Lo.X - pos.X
			return d * d
		}
	case pos.X > e.Hi.X:
		switch {
		case pos.Y < e.Lo.Y:
			return r3.Norm2(r3.Sub(a.Corner(NorthEast), pos))
		case pos.Y > e.Hi.Y:
			return r3.Norm2(r3.Sub(e.Hi, pos))
		default:
			d := pos.X - e.Hi.X
			return d * d
		}
	case pos.Y < e.Lo.Y:
		d := e.Lo.Y - pos.Y
		return d * d
	case pos.Y > e.Hi.Y:
		d := pos.Y - e.Hi.Y
		return d * d
	}

	d := a.GetZ(pos.X, pos.Y) - pos.Z
	return d * d
}

// ComputeHeightChange returns the height difference between the centers of
// this area and other.
func (a *Area) ComputeHeightChange(other *Area) float64 {
	ourZ := a.GetZ(a.center.X, a.center.Y)
	theirZ := other.GetZ(other.center.X, other.center.Y)
	return theirZ - ourZ
}

// ComputeDirection returns the direction from this area toward point.
func (a *Area) ComputeDirection(point r3.Vec) Dir {
	e := a.extent
	if point.X >= e.Lo.X && point.X <= e.Hi.X {
		if point.Y < e.Lo.Y {
			return North
		}
		if point.Y > e.Hi.Y {
			return South
		}
	} else if point.Y >= e.Lo.Y && point.Y <= e.Hi.Y {
		if point.X < e.Lo.X {
			return West
		}
		if point.X > e.Hi.X {
			return East
		}
	}

	to := r3.Sub(point, a.center)
	if math.Abs(to.X) > math.Abs(to.Y) {
		if to.X > 0 {
			return East
		}
		return West
	}
	if to.Y > 0 {
		return South
	}
	return North
}

// portalSpan returns the overlap of this area's span with other's along the
// axis perpendicular to dir, clamped to this area's extent.
func (a *Area) portalSpan(other *Area, dir Dir) (lo, hi float64) {
	if dir.IsHorizontal() {
		lo = math.Max(a.extent.Lo.X, other.extent.Lo.X)
		hi = math.Min(a.extent.Hi.X, other.extent.Hi.X)
		return clampFloat(lo, a.extent.Lo.X, a.extent.Hi.X), clampFloat(hi, a.extent.Lo.X, a.extent.Hi.X)
	}
	lo = math.Max(a.extent.Lo.Y, other.extent.Lo.Y)
	hi = math.Min(a.extent.Hi.Y, other.extent.Hi.Y)
	return clampFloat(lo, a.extent.Lo.Y, a.extent.Hi.Y), clampFloat(hi, a.extent.Lo.Y, a.extent.Hi.Y)
}

// portalEdge returns the coordinate of this area's boundary facing dir.
func (a *Area) portalEdge(dir Dir) float64 {
	switch dir {
	case North:
		return a.extent.Lo.Y
	case South:
		return a.extent.Hi.Y
	case West:
		return a.extent.Lo.X
	}
	return a.extent.Hi.X
}

// ComputePortal returns the center and half-width of the boundary segment
// shared with other in direction dir. The center lies on this area's
// surface.
func (a *Area) ComputePortal(other *Area, dir Dir) (center r3.Vec, halfWidth float64) {
	lo, hi := a.portalSpan(other, dir)
	if dir.IsHorizontal() {
		center.Y = a.portalEdge(dir)
		center.X = (lo + hi) / 2
	} else {
		center.X = a.portalEdge(dir)
		center.Y = (lo + hi) / 2
	}
	center.Z = a.GetZ(center.X, center.Y)
	return center, (hi - lo) / 2
}

// ComputeClosestPointInPortal returns the point of the portal toward other
// closest to from. Where other's side of the portal is a level edge the
// point keeps half a generation step away from it.
func (a *Area) ComputeClosestPointInPortal(other *Area, dir Dir, from r3.Vec) r3.Vec {
	margin := a.params().GenerationStepSize / 2
	lo, hi := a.portalSpan(other, dir)

	var closest r3.Vec
	if dir.IsHorizontal() {
		closest.Y = a.portalEdge(dir)
		if other.IsEdge(West) {
			lo += margin
		}
		if other.IsEdge(East) {
			hi -= margin
		}
		closest.X = limitToPortal(from.X, lo, hi)
	} else {
		closest.X = a.portalEdge(dir)
		if other.IsEdge(North) {
			lo += margin
		}
		if other.IsEdge(South) {
			hi -= margin
		}
		closest.Y = limitToPortal(from.Y, lo, hi)
	}
	closest.Z = a.GetZ(closest.X, closest.Y)
	return closest
}

func limitToPortal(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RaiseCorner moves a corner, or every corner with CornerAll, by amount.
func (a *Area) RaiseCorner(c Corner, amount float64) {
	switch c {
	case CornerAll:
		a.extent.Lo.Z += amount
		a.extent.Hi.Z += amount
		a.neZ += amount
		a.swZ += amount
	case NorthWest:
		a.extent.Lo.Z += amount
	case NorthEast:
		a.neZ += amount
	case SouthWest:
		a.swZ += amount
	case SouthEast:
		a.extent.Hi.Z += amount
	}
	a.updateCenter()

	if a.mesh != nil {
		a.mesh.reindex(a)
	}
}

// params returns the owning mesh's parameters or the defaults.
func (a *Area) params() *Params {
	if a.mesh != nil {
		return &a.mesh.params
	}
	return &defaultParams
}

var defaultParams = DefaultParams()

// neighbor resolves an area id through the owning mesh.
func (a *Area) neighbor(id AreaID) *Area {
	if a.mesh == nil {
		return nil
	}
	return a.mesh.Area(id)
}
