package nav

import "container/heap"

// openList implements heap.Interface for the search frontier, ordered by
// total cost with insertion order breaking ties.
type openList []*Area

func (h openList) Len() int { return len(h) }

func (h openList) Less(i, j int) bool {
	if h[i].search.totalCost != h[j].search.totalCost {
		return h[i].search.totalCost < h[j].search.totalCost
	}
	return h[i].search.seq < h[j].search.seq
}

func (h openList) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].search.heapIndex = i
	h[j].search.heapIndex = j
}

func (h *openList) Push(x any) {
	a := x.(*Area)
	a.search.heapIndex = len(*h)
	*h = append(*h, a)
}

func (h *openList) Pop() any {
	old := *h
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	a.search.heapIndex = -1
	*h = old[0 : n-1]
	return a
}

// ClearSearchLists starts a new search: every area leaves the open and
// closed lists at once by advancing the search marker.
func (m *Mesh) ClearSearchLists() {
	m.searchMarker++
	if m.searchMarker == 0 {
		// Wrapped: stale markers could now match, so reset them all.
		m.searchMarker = 1
		for _, a := range m.order {
			a.search.openMarker = 0
			a.search.closedMarker = 0
		}
	}
	for _, a := range m.open {
		a.search.heapIndex = -1
	}
	clear(m.open)
	m.open = m.open[:0]
	m.seq = 0
}

// IsOpenListEmpty reports whether the frontier is empty.
func (m *Mesh) IsOpenListEmpty() bool { return len(m.open) == 0 }

// PopOpenList removes and returns the cheapest area on the frontier, or nil
// when it is empty.
func (m *Mesh) PopOpenList() *Area {
	if len(m.open) == 0 {
		return nil
	}
	a := heap.Pop(&m.open).(*Area)
	a.search.openMarker = 0
	return a
}

// OpenListLen returns the number of areas on the frontier.
func (m *Mesh) OpenListLen() int { return len(m.open) }

// AddToOpenList puts the area on the frontier at its current total cost.
// Adding an area that is already open only updates its position.
func (a *Area) AddToOpenList() {
	m := a.mesh
	if m == nil {
		return
	}
	if a.IsOpen() {
		a.UpdateOnOpenList()
		return
	}
	a.search.openMarker = m.searchMarker
	m.seq++
	a.search.seq = m.seq
	heap.Push(&m.open, a)
}

// UpdateOnOpenList restores frontier order after the area's total cost
// changed.
func (a *Area) UpdateOnOpenList() {
	if !a.IsOpen() {
		return
	}
	heap.Fix(&a.mesh.open, a.search.heapIndex)
}

// RemoveFromOpenList takes the area off the frontier.
func (a *Area) RemoveFromOpenList() {
	if !a.IsOpen() {
		return
	}
	heap.Remove(&a.mesh.open, a.search.heapIndex)
	a.search.openMarker = 0
}

// IsOpen reports whether the area is on the frontier of the current search.
func (a *Area) IsOpen() bool {
	return a.mesh != nil && a.search.openMarker == a.mesh.searchMarker && a.search.heapIndex >= 0
}

// AddToClosedList marks the area as expanded in the current search.
func (a *Area) AddToClosedList() {
	if a.mesh != nil {
		a.search.closedMarker = a.mesh.searchMarker
	}
}

// RemoveFromClosedList clears the expanded mark.
func (a *Area) RemoveFromClosedList() {
	a.search.closedMarker = 0
}

// IsClosed reports whether the area was expanded in the current search.
func (a *Area) IsClosed() bool {
	return a.mesh != nil && a.search.closedMarker == a.mesh.searchMarker
}

// SetParent records how the search reached this area.
func (a *Area) SetParent(parent *Area, how Dir) {
	a.search.parent = 0
	if parent != nil {
		a.search.parent = parent.id
	}
	a.search.parentHow = how
}

// Parent returns the area the search came from, or nil.
func (a *Area) Parent() *Area { return a.neighbor(a.search.parent) }

// ParentHow returns the direction taken from the parent into this area.
func (a *Area) ParentHow() Dir { return a.search.parentHow }

// SetCostSoFar sets the cost of the best known path to this area.
func (a *Area) SetCostSoFar(cost float64) { a.search.costSoFar = cost }

// CostSoFar returns the cost of the best known path to this area.
func (a *Area) CostSoFar() float64 { return a.search.costSoFar }

// SetTotalCost sets the estimated total cost through this area. Call
// UpdateOnOpenList afterwards if the area is open.
func (a *Area) SetTotalCost(cost float64) { a.search.totalCost = cost }

// TotalCost returns the estimated total cost through this area.
func (a *Area) TotalCost() float64 { return a.search.totalCost }
