package rrtpath

import (
	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/dhconnelly/rtreego"
)

var (
	tolerance = 1e-9
)

// Node Represents an RRT Node
type Node struct {
	geometry.Position
	parent         *Node
	Children       []*Node
	CumulativeCost float64
	// InObstacle is reserved for relaxing obstacle checks around a start that
	// lies inside an obstacle. Inserted nodes never set it.
	InObstacle bool
	id         int
}

// addAndCreateChild adds a child and updates cost
func (n *Node) addAndCreateChild(point geometry.Position, inObstacle bool, id int) *Node {
	newNode := Node{
		parent:         n,
		Position:       point,
		CumulativeCost: n.CumulativeCost + n.Distance(point),
		InObstacle:     inObstacle,
		id:             id}
	n.Children = append(n.Children, &newNode)

	return &newNode
}

// Parent returns nil for the root
func (n *Node) Parent() *Node {
	return n.parent
}

// ID is the insertion index of the node, the root is 0
func (n *Node) ID() int {
	return n.id
}

// Bounds returns a tiny rect around the node point for rtreego
func (n *Node) Bounds() rtreego.Rect {
	p := rtreego.Point{n.X, n.Y}

	return p.ToRect(tolerance)
}
