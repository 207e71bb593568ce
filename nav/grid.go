package nav

import "math"

// cellKey addresses one cell of the area index.
type cellKey struct {
	col, row int
}

// cellRange is the inclusive block of cells an extent covers.
type cellRange struct {
	minCol, minRow int
	maxCol, maxRow int
}

// AreaIndex is a sparse uniform grid over the mesh plane. Each area is
// listed in every cell its extent touches, so a point or box query only
// looks at the areas in the cells it covers.
type AreaIndex struct {
	cellSize float64
	cells    map[cellKey][]AreaID
	spans    map[AreaID]cellRange
}

// NewAreaIndex creates an empty index with the given cell size.
func NewAreaIndex(cellSize float64) *AreaIndex {
	if cellSize <= 0 {
		cellSize = DefaultParams().GridCellSize
	}
	return &AreaIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]AreaID),
		spans:    make(map[AreaID]cellRange),
	}
}

// Len returns the number of indexed areas.
func (g *AreaIndex) Len() int { return len(g.spans) }

// Clear removes all areas from the index.
func (g *AreaIndex) Clear() {
	clear(g.cells)
	clear(g.spans)
}

func (g *AreaIndex) cellCoord(v float64) int {
	return int(math.Floor(v / g.cellSize))
}

func (g *AreaIndex) rangeOf(e Extent) cellRange {
	return cellRange{
		minCol: g.cellCoord(e.Lo.X),
		minRow: g.cellCoord(e.Lo.Y),
		maxCol: g.cellCoord(e.Hi.X),
		maxRow: g.cellCoord(e.Hi.Y),
	}
}

// Insert adds an area under its current extent. An area already in the
// index is re-indexed.
func (g *AreaIndex) Insert(id AreaID, e Extent) {
	if _, ok := g.spans[id]; ok {
		g.Remove(id)
	}

	r := g.rangeOf(e)
	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			k := cellKey{col, row}
			g.cells[k] = append(g.cells[k], id)
		}
	}
	g.spans[id] = r
}

// Update re-indexes an area after its extent changed.
func (g *AreaIndex) Update(id AreaID, e Extent) {
	g.Insert(id, e)
}

// Remove drops an area from every cell it was listed in.
func (g *AreaIndex) Remove(id AreaID) {
	r, ok := g.spans[id]
	if !ok {
		return
	}

	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			k := cellKey{col, row}
			ids := g.cells[k]
			for i, other := range ids {
				if other == id {
					ids = append(ids[:i], ids[i+1:]...)
					break
				}
			}
			if len(ids) == 0 {
				delete(g.cells, k)
			} else {
				g.cells[k] = ids
			}
		}
	}
	delete(g.spans, id)
}

// Query calls fn once for every area listed in a cell touched by the box
// (loX, loY)-(hiX, hiY). Candidates are not filtered by their exact extent.
// Returning false from fn stops the query.
func (g *AreaIndex) Query(loX, loY, hiX, hiY float64, fn func(id AreaID) bool) {
	r := cellRange{
		minCol: g.cellCoord(loX),
		minRow: g.cellCoord(loY),
		maxCol: g.cellCoord(hiX),
		maxRow: g.cellCoord(hiY),
	}

	single := r.minCol == r.maxCol && r.minRow == r.maxRow
	var seen map[AreaID]struct{}
	if !single {
		seen = make(map[AreaID]struct{})
	}

	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			for _, id := range g.cells[cellKey{col, row}] {
				if seen != nil {
					if _, dup := seen[id]; dup {
						continue
					}
					seen[id] = struct{}{}
				}
				if !fn(id) {
					return
				}
			}
		}
	}
}
