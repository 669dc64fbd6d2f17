package rrtpath

import (
	"errors"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/dhconnelly/rtreego"
)

// ErrEmptyTree is returned by nearest-neighbour queries on a tree without nodes
var ErrEmptyTree = errors.New("rrtpath: query on empty tree")

// Tree owns every node grown during one planning call
type Tree struct {
	rtree *rtreego.Rtree
	root  *Node
	nodes []*Node
}

// NewTree creates a tree containing only the root at start
func NewTree(start geometry.Position, startingInObstacle bool) *Tree {
	root := &Node{parent: nil, Position: start, InObstacle: startingInObstacle}
	rtree := rtreego.NewTree(2, 25, 50)
	rtree.Insert(root)

	return &Tree{rtree: rtree, root: root, nodes: []*Node{root}}
}

// Root returns the start node
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of nodes including the root
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns the nodes in insertion order
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Insert stores position as a new child of parent. parent must belong to t.
// Positions are not deduplicated.
func (t *Tree) Insert(position geometry.Position, inObstacle bool, parent *Node) *Node {
	newNode := parent.addAndCreateChild(position, inObstacle, len(t.nodes))
	t.nodes = append(t.nodes, newNode)
	t.rtree.Insert(newNode)

	return newNode
}

// Nearest returns the node closest to point. Equally distant nodes resolve to
// the one inserted first.
func (t *Tree) Nearest(point geometry.Position) (*Node, error) {
	if t == nil || len(t.nodes) == 0 {
		return nil, ErrEmptyTree
	}

	rtreePoint := rtreego.Point{point.X, point.Y}
	nn, _ := t.rtree.NearestNeighbor(rtreePoint).(*Node)
	if nn == nil {
		nn = t.root
	}

	// the index measures distance to node boxes, so rescan the disc around
	// the candidate for the exact winner
	best := nn
	bestDist := nn.Distance(point)
	for _, spatial := range t.rtree.SearchIntersect(rtreePoint.ToRect(bestDist + 2*tolerance)) {
		node := spatial.(*Node)
		dist := node.Distance(point)
		if dist < bestDist || (dist == bestDist && node.id < best.id) {
			best = node
			bestDist = dist
		}
	}

	return best, nil
}

// Position returns the location of node
func (t *Tree) Position(node *Node) geometry.Position {
	return node.Position
}

// Previous returns the parent of node, nil for the root
func (t *Tree) Previous(node *Node) *Node {
	return node.parent
}

// Chain returns the positions from the root down to node
func (t *Tree) Chain(node *Node) []geometry.Position {
	var chain []geometry.Position
	for current := node; current != nil; current = t.Previous(current) {
		chain = append(chain, current.Position)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}

// Walk calls fn for every edge of the tree, parents before their children
func (t *Tree) Walk(fn func(parent, child *Node)) {
	for _, node := range t.nodes {
		if node.parent != nil {
			fn(node.parent, node)
		}
	}
}
