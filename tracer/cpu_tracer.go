package tracer

import (
	"fmt"
	"sync"
	"time"
)

// A tracer that intersects rays on its own goroutine.
type cpuTracer struct {
	sync.Mutex

	wg sync.WaitGroup

	id     string
	speed  float32
	target Target
	stats  Stats

	blockReqChan chan BlockRequest
	closeChan    chan struct{}
	closed       bool
}

// Create a tracer bound to target and start processing incoming block requests.
func NewCPUTracer(id string, target Target) (Tracer, error) {
	if target == nil {
		return nil, ErrNoTarget
	}

	tr := &cpuTracer{
		id:           id,
		speed:        1.0,
		target:       target,
		blockReqChan: make(chan BlockRequest),
		closeChan:    make(chan struct{}),
	}

	readyChan := make(chan struct{})
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq BlockRequest
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				// Process block and reply with our completion status
				err = tr.process(blockReq)
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}
				blockReq.DoneChan <- blockReq.Count
			case <-tr.closeChan:
				return
			}
		}
	}()

	// Wait for worker goroutine to start
	<-readyChan
	return tr, nil
}

// Create count tracers bound to the same target.
func NewCPUTracers(target Target, count int) ([]Tracer, error) {
	if count < 1 {
		return nil, ErrNoTracers
	}

	tracers := make([]Tracer, 0, count)
	for i := 0; i < count; i++ {
		tr, err := NewCPUTracer(fmt.Sprintf("cpu-%d", i), target)
		if err != nil {
			for _, created := range tracers {
				created.Close()
			}
			return nil, err
		}
		tracers = append(tracers, tr)
	}
	return tracers, nil
}

func (tr *cpuTracer) Id() string {
	return tr.id
}

func (tr *cpuTracer) SpeedEstimate() float32 {
	return tr.speed
}

func (tr *cpuTracer) Stats() *Stats {
	return &tr.stats
}

// Enqueue block request. Requests sent to a closed tracer fail with ErrTracerClosed.
func (tr *cpuTracer) Enqueue(blockReq BlockRequest) {
	select {
	case tr.blockReqChan <- blockReq:
	case <-tr.closeChan:
		blockReq.ErrChan <- ErrTracerClosed
	}
}

// Shutdown tracer and wait for its worker to exit.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closed {
		return
	}
	tr.closed = true

	// Signal worker to exit and wait till it exits
	close(tr.closeChan)
	tr.wg.Wait()
}

func (tr *cpuTracer) process(req BlockRequest) error {
	start := time.Now()

	chunk := req.ChunkSize
	if chunk == 0 {
		chunk = req.Count
	}

	var hits uint32
	end := req.Offset + req.Count
	for first := req.Offset; first < end; first += chunk {
		if req.Ctx != nil && req.Ctx.Err() != nil {
			return ErrInterrupted
		}

		last := first + chunk
		if last > end {
			last = end
		}
		for i := first; i < last; i++ {
			hit := tr.target.Intersect(req.Rays[i])
			req.Hits[i] = hit
			if hit.Hit() {
				hits++
			}
		}
	}

	tr.stats = Stats{
		BlockH:    req.Count,
		BlockTime: time.Since(start),
		Hits:      hits,
	}
	return nil
}
