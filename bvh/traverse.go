package bvh

import (
	"math"

	"github.com/achilleasa/photon/geometry"
)

type traversalState[H Hit] struct {
	ray   geometry.Ray
	best  H
	dist  float32
	found bool
}

// Find the nearest hit along the ray. Returns false if nothing was hit; the
// returned hit is then the zero value of H and must not be used.
func (t *Tree[T, H]) Intersect(ray geometry.Ray) (H, bool) {
	state := traversalState[H]{
		ray:  ray,
		dist: float32(math.Inf(1)),
	}

	if t.traversal == StorageOrder {
		t.visitInOrder(t.root, &state)
	} else {
		t.visitNearestFirst(t.root, &state)
	}

	return state.best, state.found
}

func (t *Tree[T, H]) visitInOrder(index int, state *traversalState[H]) {
	n := &t.nodes[index]
	for slot := 0; slot < Width; slot++ {
		if n.Children[slot].Kind == EmptyChild {
			continue
		}
		interval := n.Bounds[slot].Intersect(state.ray)
		if !(interval.Start < state.dist) {
			continue
		}
		t.visitChild(n.Children[slot], state, t.visitInOrder)
	}
}

func (t *Tree[T, H]) visitNearestFirst(index int, state *traversalState[H]) {
	n := &t.nodes[index]

	var (
		order [Width]int
		start [Width]float32
		count int
	)
	for slot := 0; slot < Width; slot++ {
		if n.Children[slot].Kind == EmptyChild {
			continue
		}
		interval := n.Bounds[slot].Intersect(state.ray)
		if !(interval.Start < state.dist) {
			continue
		}

		// Insertion sort by interval start
		pos := count
		for pos > 0 && start[pos-1] > interval.Start {
			start[pos] = start[pos-1]
			order[pos] = order[pos-1]
			pos--
		}
		start[pos] = interval.Start
		order[pos] = slot
		count++
	}

	for i := 0; i < count; i++ {
		if !(start[i] < state.dist) {
			break
		}
		t.visitChild(n.Children[order[i]], state, t.visitNearestFirst)
	}
}

func (t *Tree[T, H]) visitChild(child Child, state *traversalState[H], descend func(int, *traversalState[H])) {
	switch child.Kind {
	case LeafChild:
		hit := t.leaves[child.Index].Intersect(state.ray)
		if d := hit.HitDistance(); d < state.dist {
			state.best = hit
			state.dist = d
			state.found = true
		}
	case BranchChild:
		descend(int(child.Index), state)
	}
}
