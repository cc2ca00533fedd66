package tracer

import (
	"context"
	"time"

	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/log"
	"github.com/achilleasa/photon/scene"
)

// Casts batches of rays against a target using a pool of tracers. A Caster
// must not be used by multiple goroutines at once.
type Caster struct {
	logger    log.Logger
	tracers   []Tracer
	scheduler BlockScheduler
	chunkSize uint32
	stats     CastStats
}

// Create a caster that distributes work to tracers using scheduler. Each
// tracer checks for cancellation every chunkSize rays; zero disables the
// check within a block.
func NewCaster(tracers []Tracer, scheduler BlockScheduler, chunkSize uint32) (*Caster, error) {
	if len(tracers) == 0 {
		return nil, ErrNoTracers
	}
	if scheduler == nil {
		scheduler = NaiveScheduler()
	}

	return &Caster{
		logger:    log.New("caster"),
		tracers:   tracers,
		scheduler: scheduler,
		chunkSize: chunkSize,
	}, nil
}

// Intersect every ray with the target. Results are returned in ray order.
// If ctx is cancelled the caster stops issuing blocks, waits for in-flight
// blocks to stop and returns ErrInterrupted.
func (c *Caster) Cast(ctx context.Context, rays []geometry.Ray) ([]scene.SceneIntersection, error) {
	hits := make([]scene.SceneIntersection, len(rays))
	if len(rays) == 0 {
		return hits, nil
	}

	start := time.Now()
	total := uint32(len(rays))
	assignment := c.scheduler.Schedule(c.tracers, total)

	doneChan := make(chan uint32, len(c.tracers))
	errChan := make(chan error, len(c.tracers))

	var offset uint32
	pending := make([]bool, len(c.tracers))
	pendingCount := 0
	for idx, tr := range c.tracers {
		if assignment[idx] == 0 {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		tr.Enqueue(BlockRequest{
			Ctx:       ctx,
			Offset:    offset,
			Count:     assignment[idx],
			Rays:      rays,
			Hits:      hits,
			ChunkSize: c.chunkSize,
			DoneChan:  doneChan,
			ErrChan:   errChan,
		})
		offset += assignment[idx]
		pending[idx] = true
		pendingCount++
	}

	// Wait for all issued blocks so no tracer writes to hits after we return
	var err error
	for ; pendingCount > 0; pendingCount-- {
		select {
		case <-doneChan:
		case blockErr := <-errChan:
			if err == nil {
				err = blockErr
			}
		}
	}
	if err == nil && offset < total {
		err = ErrInterrupted
	}
	if err != nil {
		c.logger.Warningf("cast of %d rays aborted: %v", total, err)
		return nil, err
	}

	c.collectStats(pending, total, time.Since(start))
	c.logger.Debugf(
		"cast %d rays in %d ms (%.0f rays/s, hit rate %3.1f%%)",
		total, c.stats.CastTime.Nanoseconds()/1e6, c.stats.RaysPerSecond(), c.stats.HitRate()*100,
	)

	return hits, nil
}

func (c *Caster) collectStats(issued []bool, total uint32, castTime time.Duration) {
	c.stats = CastStats{
		Tracers:  make([]TracerStat, 0, len(c.tracers)),
		Rays:     total,
		CastTime: castTime,
	}
	for idx, tr := range c.tracers {
		ts := TracerStat{Id: tr.Id()}
		if issued[idx] {
			stats := tr.Stats()
			ts.BlockH = stats.BlockH
			ts.BatchPercent = 100 * float32(stats.BlockH) / float32(total)
			ts.BlockTime = stats.BlockTime
			ts.Hits = stats.Hits
		}
		c.stats.Hits += ts.Hits
		c.stats.Tracers = append(c.stats.Tracers, ts)
	}
}

// Get the statistics of the last successful cast.
func (c *Caster) Stats() CastStats {
	return c.stats
}

// Shutdown all tracers.
func (c *Caster) Close() {
	for _, tr := range c.tracers {
		tr.Close()
	}
}
