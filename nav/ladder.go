package nav

import "gonum.org/v1/gonum/spatial/r3"

// LadderID identifies a ladder registered on a mesh. Zero is never assigned.
type LadderID uint32

// Ladder links a bottom area to up to four areas at its top. Area
// references are ids resolved through the mesh and are cleared when the
// referenced area is destroyed.
type Ladder struct {
	id LadderID

	Top    r3.Vec // top of the climbable segment
	Bottom r3.Vec // bottom of the climbable segment
	Width  float64

	BottomArea AreaID
	TopForward AreaID
	TopLeft    AreaID
	TopRight   AreaID
	TopBehind  AreaID
}

// ID returns the ladder's identifier.
func (l *Ladder) ID() LadderID { return l.id }

// Length returns the climbable height of the ladder.
func (l *Ladder) Length() float64 { return l.Top.Z - l.Bottom.Z }

// topAreas returns the four top slots in a fixed order.
func (l *Ladder) topAreas() [4]AreaID {
	return [4]AreaID{l.TopForward, l.TopLeft, l.TopRight, l.TopBehind}
}

// OnDestroyNotify clears every slot that refers to the dead area.
func (l *Ladder) OnDestroyNotify(dead AreaID) {
	if l.BottomArea == dead {
		l.BottomArea = 0
	}
	if l.TopForward == dead {
		l.TopForward = 0
	}
	if l.TopLeft == dead {
		l.TopLeft = 0
	}
	if l.TopRight == dead {
		l.TopRight = 0
	}
	if l.TopBehind == dead {
		l.TopBehind = 0
	}
}

// AddLadder registers a ladder and attaches it to the areas it references:
// the bottom area gains it as an up ladder, each top area as a down ladder.
func (m *Mesh) AddLadder(l *Ladder) LadderID {
	m.nextLadderID++
	l.id = m.nextLadderID
	m.ladders[l.id] = l
	m.ladderOrder = append(m.ladderOrder, l.id)

	m.attachLadder(l)
	return l.id
}

func (m *Mesh) attachLadder(l *Ladder) {
	if a := m.Area(l.BottomArea); a != nil {
		a.addLadder(LadderUp, l.id)
	}
	for _, id := range l.topAreas() {
		if a := m.Area(id); a != nil {
			a.addLadder(LadderDown, l.id)
		}
	}
}

// RemoveLadder unregisters a ladder and detaches it from every area.
func (m *Mesh) RemoveLadder(id LadderID) {
	if _, ok := m.ladders[id]; !ok {
		return
	}
	for _, a := range m.order {
		a.removeLadder(id)
	}
	delete(m.ladders, id)
	for i, lid := range m.ladderOrder {
		if lid == id {
			m.ladderOrder = append(m.ladderOrder[:i], m.ladderOrder[i+1:]...)
			break
		}
	}
}

// Ladder returns the ladder with the given id, or nil.
func (m *Mesh) Ladder(id LadderID) *Ladder {
	return m.ladders[id]
}

// Ladders returns every registered ladder in registration order.
func (m *Mesh) Ladders() []*Ladder {
	out := make([]*Ladder, 0, len(m.ladderOrder))
	for _, id := range m.ladderOrder {
		out = append(out, m.ladders[id])
	}
	return out
}

func (a *Area) addLadder(dir LadderDir, id LadderID) {
	for _, lid := range a.ladders[dir] {
		if lid == id {
			return
		}
	}
	a.ladders[dir] = append(a.ladders[dir], id)
}

func (a *Area) removeLadder(id LadderID) {
	for d := range a.ladders {
		out := a.ladders[d][:0]
		for _, lid := range a.ladders[d] {
			if lid != id {
				out = append(out, lid)
			}
		}
		a.ladders[d] = out
	}
}
