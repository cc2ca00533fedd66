package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalton(t *testing.T) {
	specs := []struct {
		base int
		exp  []float64
	}{
		{2, []float64{0, 0.5, 0.25, 0.75, 0.125}},
		{3, []float64{0, 1.0 / 3, 2.0 / 3, 1.0 / 9, 4.0 / 9}},
	}

	for _, s := range specs {
		h := NewHalton(s.base)
		for index, exp := range s.exp {
			assert.InDelta(t, exp, h.Next(), 1e-12, "base %d element %d", s.base, index)
		}
	}
}

func TestHaltonDiscard(t *testing.T) {
	h := NewHalton(2)
	h.Discard(3)
	if got := h.Next(); got != 0.75 {
		t.Fatalf("expected 0.75 after discarding 3 elements; got %f", got)
	}

	if got := NewHalton(0).Next(); got != 0 {
		t.Fatalf("expected clamped base sequence to start at 0; got %f", got)
	}
}
