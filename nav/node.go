package nav

import "gonum.org/v1/gonum/spatial/r3"

// Node is a sample point of the walkable-surface generation grid.
type Node struct {
	pos  r3.Vec
	area AreaID
}

// NewNode creates a generation node at pos.
func NewNode(pos r3.Vec) *Node {
	return &Node{pos: pos}
}

// Position returns the node's position.
func (n *Node) Position() r3.Vec { return n.pos }

// Area returns the id of the area the node was assigned to, or 0.
func (n *Node) Area() AreaID { return n.area }
