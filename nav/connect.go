package nav

// ConnectTo adds a one-way connection from this area to other in direction
// dir. Connecting twice is a no-op.
func (a *Area) ConnectTo(other *Area, dir Dir) {
	a.ConnectToWith(other, dir, 0)
}

// ConnectToWith is ConnectTo with caller-defined classification bits. An
// existing connection keeps its original bits.
func (a *Area) ConnectToWith(other *Area, dir Dir, bits uint32) {
	if other == nil || dir >= NumDirections {
		return
	}
	a.connectID(other.id, dir, bits)
}

func (a *Area) connectID(id AreaID, dir Dir, bits uint32) {
	for _, c := range a.connect[dir] {
		if c.Area == id {
			return
		}
	}
	a.connect[dir] = append(a.connect[dir], Connection{Area: id, Bits: bits})
}

// Disconnect removes every connection to other, in all four directions.
func (a *Area) Disconnect(other *Area) {
	if other == nil {
		return
	}
	a.disconnectID(other.id)
}

func (a *Area) disconnectID(id AreaID) {
	for d := range a.connect {
		a.connect[d] = removeConnection(a.connect[d], id)
	}
}

func removeConnection(list []Connection, id AreaID) []Connection {
	out := list[:0]
	for _, c := range list {
		if c.Area != id {
			out = append(out, c)
		}
	}
	// Clear the tail so the backing array holds no stale entries.
	for i := len(out); i < len(list); i++ {
		list[i] = Connection{}
	}
	return out
}

// Connections returns the connections in direction dir.
func (a *Area) Connections(dir Dir) []Connection {
	if dir >= NumDirections {
		return nil
	}
	return a.connect[dir]
}

// IsConnected reports whether this area has a connection to other in
// direction dir. With AnyDirection every direction is checked, and ladders
// leaving this area count as connections to the areas at their other end.
// An area is always connected to itself.
func (a *Area) IsConnected(other *Area, dir Dir) bool {
	if other == nil {
		return false
	}
	if other == a {
		return true
	}
	return a.isConnectedID(other.id, dir)
}

func (a *Area) isConnectedID(id AreaID, dir Dir) bool {
	if id == a.id {
		return true
	}

	if dir < NumDirections {
		return hasConnection(a.connect[dir], id)
	}

	for d := range a.connect {
		if hasConnection(a.connect[d], id) {
			return true
		}
	}

	if a.mesh == nil {
		return false
	}

	for _, lid := range a.ladders[LadderUp] {
		l := a.mesh.Ladder(lid)
		if l == nil {
			continue
		}
		if l.TopForward == id || l.TopLeft == id || l.TopRight == id || l.TopBehind == id {
			return true
		}
	}
	for _, lid := range a.ladders[LadderDown] {
		l := a.mesh.Ladder(lid)
		if l != nil && l.BottomArea == id {
			return true
		}
	}

	return false
}

func hasConnection(list []Connection, id AreaID) bool {
	for _, c := range list {
		if c.Area == id {
			return true
		}
	}
	return false
}

// IsEdge reports whether none of the connections in direction dir are
// reciprocated. An area with no connections in dir is an edge.
func (a *Area) IsEdge(dir Dir) bool {
	if dir >= NumDirections {
		return false
	}
	for _, c := range a.connect[dir] {
		other := a.neighbor(c.Area)
		if other != nil && other.isConnectedID(a.id, dir.Opposite()) {
			return false
		}
	}
	return true
}

// GetAdjacentCount returns the number of connections in direction dir.
func (a *Area) GetAdjacentCount(dir Dir) int {
	if dir >= NumDirections {
		return 0
	}
	return len(a.connect[dir])
}

// GetAdjacentArea returns the i'th neighbor in direction dir, or nil.
func (a *Area) GetAdjacentArea(dir Dir, i int) *Area {
	if dir >= NumDirections || i < 0 || i >= len(a.connect[dir]) {
		return nil
	}
	return a.neighbor(a.connect[dir][i].Area)
}

// GetRandomAdjacentArea returns a uniformly chosen neighbor in direction
// dir using the mesh's random source, or nil when there is none.
func (a *Area) GetRandomAdjacentArea(dir Dir) *Area {
	count := a.GetAdjacentCount(dir)
	if count == 0 || a.mesh == nil {
		return nil
	}
	return a.GetAdjacentArea(dir, a.mesh.rng.Intn(count))
}

// LadderIDs returns the ladders leaving this area in direction dir.
func (a *Area) LadderIDs(dir LadderDir) []LadderID {
	if dir >= NumLadderDirections {
		return nil
	}
	return a.ladders[dir]
}

// onDestroyNotify purges every reference to the dying area.
func (a *Area) onDestroyNotify(dead AreaID) {
	a.disconnectID(dead)

	for i, id := range a.overlaps {
		if id == dead {
			a.overlaps = append(a.overlaps[:i], a.overlaps[i+1:]...)
			break
		}
	}

	encounters := a.encounters[:0]
	for _, e := range a.encounters {
		if e.From != dead && e.To != dead {
			encounters = append(encounters, e)
		}
	}
	for i := len(encounters); i < len(a.encounters); i++ {
		a.encounters[i] = nil
	}
	a.encounters = encounters
}
