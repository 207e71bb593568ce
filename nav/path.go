package nav

import "gonum.org/v1/gonum/spatial/r3"

// CostFunc returns the cost of the best path to area arriving from from,
// optionally by ladder. from is nil for the start area. A negative cost
// marks the step as impassable.
type CostFunc func(area, from *Area, ladder *Ladder) float64

// Traversal penalties applied by ShortestPathCost, per unit of distance.
const (
	CrouchPenalty = 20.0
	JumpPenalty   = 5.0
)

// ShortestPathCost is the default CostFunc: distance travelled, with extra
// cost for crouch and jump areas.
func ShortestPathCost(area, from *Area, ladder *Ladder) float64 {
	if from == nil {
		return 0
	}

	var dist float64
	if ladder != nil {
		dist = ladder.Length()
	} else {
		dist = r3.Norm(r3.Sub(area.center, from.center))
	}

	cost := dist + from.CostSoFar()
	if area.HasAttributes(AttrCrouch) {
		cost += CrouchPenalty * dist
	}
	if area.HasAttributes(AttrJump) {
		cost += JumpPenalty * dist
	}
	return cost
}

// BuildPath runs a best-first search from start toward goal (or toward
// goalPos when goal is nil) using the open-list primitives. It returns
// whether goal was reached and the area found closest to the goal, which is
// the goal itself on success. The path is recovered with ReconstructPath.
func (m *Mesh) BuildPath(start, goal *Area, goalPos *r3.Vec, cost CostFunc) (closest *Area, found bool) {
	if start == nil || start.mesh != m {
		return nil, false
	}
	if cost == nil {
		cost = ShortestPathCost
	}

	start.SetParent(nil, AnyDirection)

	if goal == nil && goalPos == nil {
		return start, false
	}
	if start == goal {
		return start, true
	}

	var target r3.Vec
	if goalPos != nil {
		target = *goalPos
	} else {
		target = goal.center
	}

	m.ClearSearchLists()

	initCost := cost(start, nil, nil)
	if initCost < 0 {
		return nil, false
	}
	start.SetCostSoFar(initCost)
	start.SetTotalCost(r3.Norm(r3.Sub(start.center, target)))
	start.AddToOpenList()

	closest = start
	closestDist := start.TotalCost()

	relax := func(area, next *Area, how Dir, ladder *Ladder) {
		if next == nil || next == area {
			return
		}

		newCostSoFar := cost(next, area, ladder)
		if newCostSoFar < 0 {
			return
		}
		if (next.IsOpen() || next.IsClosed()) && next.CostSoFar() <= newCostSoFar {
			return
		}

		remaining := r3.Norm(r3.Sub(next.center, target))
		if remaining < closestDist {
			closest = next
			closestDist = remaining
		}

		next.SetParent(area, how)
		next.SetCostSoFar(newCostSoFar)
		next.SetTotalCost(newCostSoFar + remaining)

		if next.IsClosed() {
			next.RemoveFromClosedList()
		}
		if next.IsOpen() {
			next.UpdateOnOpenList()
		} else {
			next.AddToOpenList()
		}
	}

	for !m.IsOpenListEmpty() {
		area := m.PopOpenList()

		if area == goal {
			return goal, true
		}

		for d := North; d < NumDirections; d++ {
			for _, c := range area.connect[d] {
				relax(area, m.Area(c.Area), d, nil)
			}
		}

		for _, lid := range area.ladders[LadderUp] {
			l := m.Ladder(lid)
			if l == nil {
				continue
			}
			for _, id := range l.topAreas() {
				relax(area, m.Area(id), AnyDirection, l)
			}
		}
		for _, lid := range area.ladders[LadderDown] {
			if l := m.Ladder(lid); l != nil {
				relax(area, m.Area(l.BottomArea), AnyDirection, l)
			}
		}

		area.AddToClosedList()
	}

	return closest, false
}

// ReconstructPath follows parent links from end back to the search start
// and returns the areas in travel order.
func (m *Mesh) ReconstructPath(end *Area) []*Area {
	var path []*Area
	for a := end; a != nil && len(path) <= len(m.order); a = a.Parent() {
		path = append(path, a)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
