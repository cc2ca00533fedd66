package tracer

import (
	"fmt"
	"math"
	"strings"
)

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split a batch of rays into blocks of variable size and assign them to
	// the pool of tracers, optionally using feedback collected from previous
	// batches.
	//
	// This function returns the block size assignment for each tracer
	// in the input list. Assignments always add up to total.
	Schedule(tracers []Tracer, total uint32) []uint32
}

// Create a scheduler by name (naive or perfect).
func NewScheduler(name string) (BlockScheduler, error) {
	switch strings.ToLower(name) {
	case "naive":
		return NaiveScheduler(), nil
	case "perfect":
		return PerfectScheduler(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheduler, name)
}

// The naive scheduler splits each batch by the tracers' speed estimates.
type naiveScheduler struct{}

// Create a new naive scheduler instance
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

func (naiveScheduler) Schedule(tracers []Tracer, total uint32) []uint32 {
	return splitBySpeed(tracers, total)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent batches is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split a batch into blocks of variable size and assign them to the pool of
// tracers using feedback collected from previous batches.
//
// When previous batch information is available the scheduler uses the
// following formula for estimating the workload for tracer w and batch i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(tracers []Tracer, total uint32) []uint32 {
	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = splitBySpeed(tracers, total)
		return sch.blockAssignment
	}

	// Use last batch statistics
	rates := make([]float64, len(tracers))
	var sum float64
	for idx, tr := range tracers {
		stats := tr.Stats()
		blockTime := stats.BlockTime.Nanoseconds()
		if blockTime <= 0 {
			blockTime = 1
		}
		rates[idx] = float64(stats.BlockH) / float64(blockTime)
		sum += rates[idx]
	}

	// Without any throughput samples fall back to the speed estimates
	if sum == 0 {
		sch.blockAssignment = splitBySpeed(tracers, total)
		return sch.blockAssignment
	}

	scaler := float64(total) / sum
	for idx := range tracers {
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(rates[idx]*scaler)))
	}
	balance(sch.blockAssignment, total)

	return sch.blockAssignment
}

func splitBySpeed(tracers []Tracer, total uint32) []uint32 {
	assignment := make([]uint32, len(tracers))
	if len(tracers) == 0 {
		return assignment
	}

	speeds := make([]float64, len(tracers))
	var sum float64
	for idx, tr := range tracers {
		speeds[idx] = math.Max(0, float64(tr.SpeedEstimate()))
		sum += speeds[idx]
	}

	// Without usable estimates split the batch evenly
	if sum == 0 {
		for idx := range speeds {
			speeds[idx] = 1
		}
		sum = float64(len(speeds))
	}

	scaler := float64(total) / sum
	for idx := range tracers {
		assignment[idx] = uint32(math.Max(1.0, math.Floor(speeds[idx]*scaler)))
	}
	balance(assignment, total)

	return assignment
}

// Adjust assignments so they add up to total. Missing items go to the first
// tracer; surplus items are taken from the largest assignments.
func balance(assignment []uint32, total uint32) {
	var scheduled int64
	for _, a := range assignment {
		scheduled += int64(a)
	}

	diff := int64(total) - scheduled
	if diff > 0 {
		assignment[0] += uint32(diff)
		return
	}

	for ; diff < 0; diff++ {
		largest := 0
		for idx, a := range assignment {
			if a > assignment[largest] {
				largest = idx
			}
		}
		assignment[largest]--
	}
}
