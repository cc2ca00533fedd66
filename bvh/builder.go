package bvh

import (
	"time"

	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/log"
)

var logger = log.New("bvh")

// A read-only 4-wide BVH. Nodes are stored in a flat list; children always
// reference nodes by index and never point back to their parents.
type Tree[T Intersector[H], H Hit] struct {
	nodes     []Node
	leaves    []T
	root      int
	traversal Traversal
	stats     Stats
}

// Build a tree from an ordered list of elements. The tree shape depends only
// on the element order: consecutive runs of up to Width elements become leaf
// nodes which are then repeatedly grouped by Width until one node remains.
func Build[T Intersector[H], H Hit](elements []Element[T], opts ...Option) *Tree[T, H] {
	o := options{traversal: NearestFirst, name: "tree"}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	tree := &Tree[T, H]{
		leaves:    make([]T, len(elements)),
		traversal: o.traversal,
	}

	// Leaves phase
	level := make([]int, 0, (len(elements)+Width-1)/Width)
	for first := 0; first < len(elements); first += Width {
		node := emptyNode()
		for slot := 0; slot < Width && first+slot < len(elements); slot++ {
			index := first + slot
			tree.leaves[index] = elements[index].Item
			node.Bounds[slot] = elements[index].Bounds
			node.Children[slot] = Child{Kind: LeafChild, Index: uint32(index)}
		}
		level = append(level, tree.push(node))
	}

	if len(level) == 0 {
		level = append(level, tree.push(emptyNode()))
	}

	// Branches phase
	for len(level) > 1 {
		next := make([]int, 0, (len(level)+Width-1)/Width)
		for first := 0; first < len(level); first += Width {
			node := emptyNode()
			for slot := 0; slot < Width && first+slot < len(level); slot++ {
				child := level[first+slot]
				node.Bounds[slot] = tree.nodes[child].Union()
				node.Children[slot] = Child{Kind: BranchChild, Index: uint32(child)}
			}
			next = append(next, tree.push(node))
		}
		level = next
	}
	tree.root = level[0]

	tree.stats = tree.collectStats()
	tree.stats.BuildTime = time.Since(start)
	logger.Debugf(
		"BVH %q build time: %d ms, maxDepth: %d, nodes: %d, leaves: %d, empty slots: %d",
		o.name,
		tree.stats.BuildTime.Nanoseconds()/1e6,
		tree.stats.MaxDepth, tree.stats.Nodes, tree.stats.Leaves, tree.stats.EmptySlots,
	)

	return tree
}

func (t *Tree[T, H]) push(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree[T, H]) collectStats() Stats {
	s := Stats{Nodes: len(t.nodes), Leaves: len(t.leaves)}

	var visit func(index, depth int)
	visit = func(index, depth int) {
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		for _, child := range t.nodes[index].Children {
			switch child.Kind {
			case EmptyChild:
				s.EmptySlots++
			case BranchChild:
				visit(int(child.Index), depth+1)
			}
		}
	}
	visit(t.root, 1)

	return s
}

// Get the index of the root node.
func (t *Tree[T, H]) Root() int {
	return t.root
}

// Get a node by index.
func (t *Tree[T, H]) Node(index int) *Node {
	return &t.nodes[index]
}

// Get a leaf item by index.
func (t *Tree[T, H]) Leaf(index int) T {
	return t.leaves[index]
}

// Get the flat node list. Callers must not modify it.
func (t *Tree[T, H]) Nodes() []Node {
	return t.nodes
}

// Get the leaf item list. Callers must not modify it.
func (t *Tree[T, H]) Leaves() []T {
	return t.leaves
}

// Get the bounds of everything stored in the tree.
func (t *Tree[T, H]) Bounds() geometry.AABB {
	return t.nodes[t.root].Union()
}

// Get the tree statistics.
func (t *Tree[T, H]) Stats() Stats {
	return t.stats
}

// Get the traversal order used by Intersect.
func (t *Tree[T, H]) Traversal() Traversal {
	return t.traversal
}

// Visit nodes depth-first starting at the root. Returning false from fn
// skips the children of the visited node.
func (t *Tree[T, H]) Walk(fn func(index int, n *Node) bool) {
	var visit func(index int)
	visit = func(index int) {
		n := &t.nodes[index]
		if !fn(index, n) {
			return
		}
		for _, child := range n.Children {
			if child.Kind == BranchChild {
				visit(int(child.Index))
			}
		}
	}
	visit(t.root)
}
