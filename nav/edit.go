package nav

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SplitEdit splits area a in two at the given coordinate. With alongX the
// cut runs along the X axis at y = edge, producing a northern alpha and a
// southern beta; otherwise it runs along Y at x = edge, producing a western
// alpha and an eastern beta. Both halves get new ids, inherit a's
// attributes and place, and take over the neighbors whose span still meets
// them. a is destroyed. When ok is false the mesh is unchanged.
func (m *Mesh) SplitEdit(a *Area, alongX bool, edge float64) (alpha, beta *Area, ok bool) {
	if a == nil || a.mesh != m {
		return nil, nil, false
	}

	margin := m.params.SplitMargin
	e := a.extent

	var alphaFacing, betaFacing Dir

	if alongX {
		if edge <= e.Lo.Y+margin || edge >= e.Hi.Y-margin {
			m.logger.Debug("split rejected", "area", a.id, "edge", edge, "reason", "too close to boundary")
			return nil, nil, false
		}

		alpha = newArea()
		alpha.extent.Lo = e.Lo
		alpha.extent.Hi = r3.Vec{X: e.Hi.X, Y: edge}
		alpha.extent.Hi.Z = a.GetZ(alpha.extent.Hi.X, alpha.extent.Hi.Y)

		beta = newArea()
		beta.extent.Lo = r3.Vec{X: e.Lo.X, Y: edge}
		beta.extent.Lo.Z = a.GetZ(beta.extent.Lo.X, beta.extent.Lo.Y)
		beta.extent.Hi = e.Hi

		alphaFacing, betaFacing = South, North
	} else {
		if edge <= e.Lo.X+margin || edge >= e.Hi.X-margin {
			m.logger.Debug("split rejected", "area", a.id, "edge", edge, "reason", "too close to boundary")
			return nil, nil, false
		}

		alpha = newArea()
		alpha.extent.Lo = e.Lo
		alpha.extent.Hi = r3.Vec{X: edge, Y: e.Hi.Y}
		alpha.extent.Hi.Z = a.GetZ(alpha.extent.Hi.X, alpha.extent.Hi.Y)

		beta = newArea()
		beta.extent.Lo = r3.Vec{X: edge, Y: e.Lo.Y}
		beta.extent.Lo.Z = a.GetZ(beta.extent.Lo.X, beta.extent.Lo.Y)
		beta.extent.Hi = e.Hi

		alphaFacing, betaFacing = East, West
	}

	alpha.ConnectTo(beta, alphaFacing)
	beta.ConnectTo(alpha, betaFacing)

	m.finishSplitEdit(a, alpha, alphaFacing)
	m.finishSplitEdit(a, beta, betaFacing)

	for _, half := range [2]*Area{alpha, beta} {
		half.attributes = a.attributes
		half.place = a.place
	}

	m.repointLadders(a, alpha, beta)

	// Neither half is owned yet, so Add cannot fail.
	_ = m.Add(alpha)
	_ = m.Add(beta)
	m.Remove(a)

	m.logger.Debug("split area", "area", a.id, "alpha", alpha.id, "beta", beta.id, "along_x", alongX, "edge", edge)
	return alpha, beta, true
}

// finishSplitEdit derives the half's corner heights from the original and
// connects it to every neighbor of the original it still borders, except
// across the cut. Reciprocal edges are only added where the neighbor had one
// back to the original.
func (m *Mesh) finishSplitEdit(orig, half *Area, ignore Dir) {
	half.updateCenter()
	half.neZ = orig.GetZ(half.extent.Hi.X, half.extent.Lo.Y)
	half.swZ = orig.GetZ(half.extent.Lo.X, half.extent.Hi.Y)

	for d := North; d < NumDirections; d++ {
		if d == ignore {
			continue
		}

		for _, c := range orig.connect[d] {
			adj := m.Area(c.Area)
			if adj == nil || adj == orig {
				continue
			}

			var borders bool
			if d.IsHorizontal() {
				borders = half.IsOverlappingX(adj)
			} else {
				borders = half.IsOverlappingY(adj)
			}
			if !borders {
				continue
			}

			half.ConnectToWith(adj, d, c.Bits)

			back := d.Opposite()
			for _, rc := range adj.connect[back] {
				if rc.Area == orig.id {
					adj.ConnectToWith(half, back, rc.Bits)
					break
				}
			}
		}
	}
}

// MergeEdit replaces two adjacent areas with a single new area covering
// both. The areas must span the same range on one axis, within
// MergeTolerance, and touch along the other; when RequireCoplanarMerge is
// set they must also be co-planar. The merged area takes a's attributes and
// a's place, or adj's place when a has none. Every other area that pointed
// at either input is left with a single connection to the merged area.
// When ok is false the mesh is unchanged.
func (m *Mesh) MergeEdit(a, adj *Area) (merged *Area, ok bool) {
	if a == nil || adj == nil || a == adj || a.mesh != m || adj.mesh != m {
		return nil, false
	}

	if reason := m.mergeRejection(a, adj); reason != "" {
		m.logger.Debug("merge rejected", "area", a.id, "adj", adj.id, "reason", reason)
		return nil, false
	}

	merged = newArea()

	lo := r3.Vec{X: math.Min(a.extent.Lo.X, adj.extent.Lo.X), Y: math.Min(a.extent.Lo.Y, adj.extent.Lo.Y)}
	hi := r3.Vec{X: math.Max(a.extent.Hi.X, adj.extent.Hi.X), Y: math.Max(a.extent.Hi.Y, adj.extent.Hi.Y)}
	lo.Z = mergedCornerZ(a, adj, lo.X, lo.Y)
	hi.Z = mergedCornerZ(a, adj, hi.X, hi.Y)
	merged.extent = Extent{Lo: lo, Hi: hi}
	merged.neZ = mergedCornerZ(a, adj, hi.X, lo.Y)
	merged.swZ = mergedCornerZ(a, adj, lo.X, hi.Y)
	merged.updateCenter()

	merged.attributes = a.attributes
	merged.place = a.place
	if merged.place == UndefinedPlace {
		merged.place = adj.place
	}

	m.mergeAdjacentConnections(merged, a, adj)
	m.repointLadders(a, merged)
	m.repointLadders(adj, merged)

	_ = m.Add(merged)
	m.Remove(a)
	m.Remove(adj)

	m.logger.Debug("merged areas", "area", a.id, "adj", adj.id, "merged", merged.id)
	return merged, true
}

// mergedCornerZ returns the surface height at a corner of the merged extent,
// taken from whichever input lies nearer to it on the plane.
func mergedCornerZ(a, adj *Area, x, y float64) float64 {
	if planarDistSq(adj.extent, x, y) < planarDistSq(a.extent, x, y) {
		return adj.GetZ(x, y)
	}
	return a.GetZ(x, y)
}

func planarDistSq(e Extent, x, y float64) float64 {
	dx := math.Max(0, math.Max(e.Lo.X-x, x-e.Hi.X))
	dy := math.Max(0, math.Max(e.Lo.Y-y, y-e.Hi.Y))
	return dx*dx + dy*dy
}

// mergeRejection returns why two areas cannot merge, or "" when they can.
func (m *Mesh) mergeRejection(a, adj *Area) string {
	tol := m.params.MergeTolerance
	ae, be := a.extent, adj.extent

	alignedX := math.Abs(ae.Lo.X-be.Lo.X) < tol && math.Abs(ae.Hi.X-be.Hi.X) < tol
	alignedY := math.Abs(ae.Lo.Y-be.Lo.Y) < tol && math.Abs(ae.Hi.Y-be.Hi.Y) < tol

	touchY := math.Abs(ae.Hi.Y-be.Lo.Y) < tol || math.Abs(be.Hi.Y-ae.Lo.Y) < tol
	touchX := math.Abs(ae.Hi.X-be.Lo.X) < tol || math.Abs(be.Hi.X-ae.Lo.X) < tol

	switch {
	case !alignedX && !alignedY:
		return "no shared full edge"
	case !(alignedX && touchY) && !(alignedY && touchX):
		return "not adjacent"
	case m.params.RequireCoplanarMerge && !a.IsCoplanar(adj):
		return "not coplanar"
	}
	return ""
}

// mergeAdjacentConnections gives merged the connections of both inputs and
// collapses every other area's references to the inputs into one
// connection to merged per direction.
func (m *Mesh) mergeAdjacentConnections(merged, a, adj *Area) {
	absorbed := func(id AreaID) bool { return id == a.id || id == adj.id }

	for _, src := range [2]*Area{a, adj} {
		for d := North; d < NumDirections; d++ {
			for _, c := range src.connect[d] {
				if !absorbed(c.Area) {
					merged.connectID(c.Area, d, c.Bits)
				}
			}
		}
	}

	for _, other := range m.order {
		if absorbed(other.id) {
			continue
		}

		for d := North; d < NumDirections; d++ {
			var (
				found bool
				bits  uint32
			)
			for _, c := range other.connect[d] {
				if absorbed(c.Area) {
					found, bits = true, c.Bits
					break
				}
			}
			if !found {
				continue
			}

			list := removeConnection(other.connect[d], a.id)
			list = removeConnection(list, adj.id)
			list = removeConnection(list, merged.id)
			other.connect[d] = append(list, Connection{Area: merged.id, Bits: bits})
		}
	}
}

// SpliceEdit creates a new area filling the gap between two separated
// areas and connects it both ways to each. The gap spans the overlap of
// the two areas on the axis that does not separate them. The new area
// inherits the shared place, or the only defined one; two different
// defined places are chosen between at random. Areas that overlap, or that
// do not face each other across the gap, are rejected and the mesh is left
// unchanged.
func (m *Mesh) SpliceEdit(a, other *Area) (*Area, bool) {
	if a == nil || other == nil || a == other || a.mesh != m || other.mesh != m {
		return nil, false
	}

	ae, oe := a.extent, other.extent

	var (
		nw, ne, se, sw r3.Vec
		toNew, fromNew Dir // a's direction toward the new area, and back
	)

	switch {
	case ae.Lo.X > oe.Hi.X || ae.Hi.X < oe.Lo.X:
		top := math.Max(ae.Lo.Y, oe.Lo.Y)
		bottom := math.Min(ae.Hi.Y, oe.Hi.Y)
		if top >= bottom {
			m.logger.Debug("splice rejected", "area", a.id, "other", other.id, "reason", "no facing span")
			return nil, false
		}

		// west is the area on the low X side
		west, east := other, a
		toNew, fromNew = West, East
		if ae.Hi.X < oe.Lo.X {
			west, east = a, other
			toNew, fromNew = East, West
		}

		nw = r3.Vec{X: west.extent.Hi.X, Y: top}
		nw.Z = west.GetZ(nw.X, nw.Y)
		se = r3.Vec{X: east.extent.Lo.X, Y: bottom}
		se.Z = east.GetZ(se.X, se.Y)
		ne = r3.Vec{X: se.X, Y: nw.Y}
		ne.Z = east.GetZ(ne.X, ne.Y)
		sw = r3.Vec{X: nw.X, Y: se.Y}
		sw.Z = west.GetZ(sw.X, sw.Y)

	case ae.Lo.Y > oe.Hi.Y || ae.Hi.Y < oe.Lo.Y:
		left := math.Max(ae.Lo.X, oe.Lo.X)
		right := math.Min(ae.Hi.X, oe.Hi.X)
		if left >= right {
			m.logger.Debug("splice rejected", "area", a.id, "other", other.id, "reason", "no facing span")
			return nil, false
		}

		// north is the area on the low Y side
		north, south := other, a
		toNew, fromNew = North, South
		if ae.Hi.Y < oe.Lo.Y {
			north, south = a, other
			toNew, fromNew = South, North
		}

		nw = r3.Vec{X: left, Y: north.extent.Hi.Y}
		nw.Z = north.GetZ(nw.X, nw.Y)
		se = r3.Vec{X: right, Y: south.extent.Lo.Y}
		se.Z = south.GetZ(se.X, se.Y)
		ne = r3.Vec{X: se.X, Y: nw.Y}
		ne.Z = north.GetZ(ne.X, ne.Y)
		sw = r3.Vec{X: nw.X, Y: se.Y}
		sw.Z = south.GetZ(sw.X, sw.Y)

	default:
		m.logger.Debug("splice rejected", "area", a.id, "other", other.id, "reason", "areas overlap")
		return nil, false
	}

	gap := NewAreaFromCorners(nw, ne, se, sw)

	a.ConnectTo(gap, toNew)
	gap.ConnectTo(a, fromNew)
	other.ConnectTo(gap, fromNew)
	gap.ConnectTo(other, toNew)

	switch {
	case a.place == other.place:
		gap.place = a.place
	case a.place == UndefinedPlace:
		gap.place = other.place
	case other.place == UndefinedPlace:
		gap.place = a.place
	case m.rng.Intn(2) == 0:
		gap.place = a.place
	default:
		gap.place = other.place
	}

	_ = m.Add(gap)

	m.logger.Debug("spliced areas", "area", a.id, "other", other.id, "new", gap.id)
	return gap, true
}

// repointLadders moves ladder references from old to whichever replacement
// lies closest to the ladder end that uses it.
func (m *Mesh) repointLadders(old *Area, replacements ...*Area) {
	nearest := func(pos r3.Vec) *Area {
		var (
			best   *Area
			bestSq float64
		)
		for _, r := range replacements {
			d := r.GetDistanceSquaredToPoint(pos)
			if best == nil || d < bestSq {
				best, bestSq = r, d
			}
		}
		return best
	}

	for _, lid := range m.ladderOrder {
		l := m.ladders[lid]

		if l.BottomArea == old.id {
			r := nearest(l.Bottom)
			l.BottomArea = r.id
			r.addLadder(LadderUp, lid)
		}

		top := nearest(l.Top)
		repointed := false
		for _, slot := range []*AreaID{&l.TopForward, &l.TopLeft, &l.TopRight, &l.TopBehind} {
			if *slot == old.id {
				*slot = top.id
				repointed = true
			}
		}
		if repointed {
			top.addLadder(LadderDown, lid)
		}
	}
}
