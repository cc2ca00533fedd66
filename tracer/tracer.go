package tracer

import (
	"context"
	"time"

	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/scene"
)

// Anything that can be intersected with a ray. Implementations must be safe
// for concurrent use.
type Target interface {
	Intersect(ray geometry.Ray) scene.SceneIntersection
}

// A unit of work that is processed by a tracer. The tracer intersects
// Rays[Offset:Offset+Count] and stores the results at the same positions in
// Hits. Blocks never overlap so tracers can write their results without
// locking.
type BlockRequest struct {
	Ctx context.Context

	Offset uint32
	Count  uint32

	Rays []geometry.Ray
	Hits []scene.SceneIntersection

	// Rays are processed in chunks of this size; the context is checked
	// between chunks.
	ChunkSize uint32

	// A channel to signal on block completion with the number of completed rays.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The processed block size
	BlockH uint32

	// The time for processing this block
	BlockTime time.Duration

	// The number of rays in the block that hit the target
	Hits uint32
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown tracer.
	Close()

	// Get the tracers computation speed estimate compared to a
	// baseline (single goroutine) implementation.
	SpeedEstimate() float32

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Retrieve last block statistics.
	Stats() *Stats
}
