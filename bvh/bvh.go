// Package bvh implements a 4-wide bounding volume hierarchy over arbitrary
// intersectable items. Trees are built once, from an ordered list of items
// and their bounds, and are read-only afterwards so they can be shared by
// any number of goroutines.
package bvh

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/achilleasa/photon/geometry"
)

// The number of child slots per node.
const Width = 4

// Implemented by intersection results stored in the tree.
type Hit interface {
	// The distance to the hit along the ray; +Inf for misses.
	HitDistance() float32
}

// Implemented by items that can be stored in the tree leaves.
type Intersector[H Hit] interface {
	Intersect(ray geometry.Ray) H
}

// An item paired with its bounding box.
type Element[T any] struct {
	Item   T
	Bounds geometry.AABB
}

type ChildKind uint8

const (
	EmptyChild ChildKind = iota
	LeafChild
	BranchChild
)

func (k ChildKind) String() string {
	switch k {
	case LeafChild:
		return "leaf"
	case BranchChild:
		return "branch"
	}
	return "empty"
}

// A child slot. Index points to the leaf list for LeafChild slots and to the
// node list for BranchChild slots.
type Child struct {
	Kind  ChildKind
	Index uint32
}

// A tree node. Bounds[i] encloses everything reachable through Children[i];
// empty slots carry the empty box.
type Node struct {
	Bounds   [Width]geometry.AABB
	Children [Width]Child
}

func emptyNode() Node {
	var n Node
	for slot := range n.Bounds {
		n.Bounds[slot] = geometry.EmptyAABB()
	}
	return n
}

// Union of the bounds of all node slots.
func (n *Node) Union() geometry.AABB {
	return geometry.UnionAABB(n.Bounds[:]...)
}

// Tree build statistics.
type Stats struct {
	Nodes      int
	Leaves     int
	EmptySlots int
	MaxDepth   int
	BuildTime  time.Duration
}

type Traversal uint8

const (
	// Visit child slots ordered by the distance to their bounds, stopping as
	// soon as the remaining slots start past the best hit.
	NearestFirst Traversal = iota

	// Visit child slots in storage order.
	StorageOrder
)

var ErrUnknownTraversal = errors.New("bvh: unknown traversal order")

func (t Traversal) String() string {
	if t == StorageOrder {
		return "storage"
	}
	return "nearest"
}

// Parse a traversal name (nearest or storage).
func ParseTraversal(name string) (Traversal, error) {
	switch strings.ToLower(name) {
	case "nearest":
		return NearestFirst, nil
	case "storage":
		return StorageOrder, nil
	}
	return NearestFirst, fmt.Errorf("%w: %q", ErrUnknownTraversal, name)
}

type options struct {
	traversal Traversal
	name      string
}

// A functional option for Build.
type Option func(*options)

// Select the traversal order used by Intersect.
func WithTraversal(t Traversal) Option {
	return func(o *options) {
		o.traversal = t
	}
}

// Name the tree in build log messages.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
