package nav

// Dir is a compass direction on the mesh plane. North is toward -Y.
type Dir uint8

const (
	North Dir = iota
	East
	South
	West
	NumDirections

	// AnyDirection asks connectivity queries to look in every direction,
	// including ladder connections.
	AnyDirection = NumDirections
)

var dirNames = [NumDirections]string{"north", "east", "south", "west"}

// String returns the lowercase direction name.
func (d Dir) String() string {
	if d < NumDirections {
		return dirNames[d]
	}
	return "any"
}

// Opposite returns the direction facing d.
func (d Dir) Opposite() Dir {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	}
	return d
}

// IsHorizontal reports whether a boundary crossed in direction d runs along X.
func (d Dir) IsHorizontal() bool {
	return d == North || d == South
}

// ParseDir converts a direction name to a Dir.
func ParseDir(s string) (Dir, bool) {
	for i, name := range dirNames {
		if name == s {
			return Dir(i), true
		}
	}
	return AnyDirection, false
}

// Corner identifies one of the four corners of an area.
type Corner uint8

const (
	NorthWest Corner = iota
	NorthEast
	SouthEast
	SouthWest
	NumCorners

	// CornerAll addresses every corner at once (see RaiseCorner).
	CornerAll = NumCorners
)

// LadderDir is the direction of travel on a ladder from an area.
type LadderDir uint8

const (
	LadderUp LadderDir = iota
	LadderDown
	NumLadderDirections
)
