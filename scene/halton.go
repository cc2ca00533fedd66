package scene

// A one dimensional Halton low discrepancy sequence.
type Halton struct {
	base   uint64
	offset uint64
}

// Create a sequence with the given base. Bases below 2 are clamped to 2.
func NewHalton(base int) *Halton {
	if base < 2 {
		base = 2
	}
	return &Halton{base: uint64(base)}
}

// Skip the next n elements.
func (h *Halton) Discard(n int) {
	h.offset += uint64(n)
}

// Get the next element in [0, 1).
func (h *Halton) Next() float64 {
	var sample float64
	denominator := float64(h.base)
	for n := h.offset; n > 0; n /= h.base {
		sample += float64(n%h.base) / denominator
		denominator *= float64(h.base)
	}
	h.offset++
	return sample
}
