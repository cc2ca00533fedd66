package tracer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

type TracerStat struct {
	// The tracer id.
	Id string

	// The block size and the percentage of the batch it represents.
	BlockH       uint32
	BatchPercent float32

	// Processing time for assigned block
	BlockTime time.Duration

	// Rays in the block that hit the target
	Hits uint32
}

type CastStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	// Batch size and hit count.
	Rays uint32
	Hits uint32

	// Total time for casting the entire batch.
	CastTime time.Duration
}

// Get the fraction of rays that hit the target.
func (cs CastStats) HitRate() float64 {
	if cs.Rays == 0 {
		return 0
	}
	return float64(cs.Hits) / float64(cs.Rays)
}

// Get the batch throughput in rays per second.
func (cs CastStats) RaysPerSecond() float64 {
	if cs.CastTime <= 0 {
		return 0
	}
	return float64(cs.Rays) / cs.CastTime.Seconds()
}

// Render the statistics as a table.
func (cs CastStats) String() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Tracer", "Block size", "% of batch", "Hits", "Time"})
	for _, ts := range cs.Tracers {
		table.Append([]string{
			ts.Id,
			fmt.Sprintf("%d", ts.BlockH),
			fmt.Sprintf("%3.1f%%", ts.BatchPercent),
			fmt.Sprintf("%d", ts.Hits),
			ts.BlockTime.String(),
		})
	}
	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", cs.Rays),
		fmt.Sprintf("hit rate %3.1f%%", cs.HitRate()*100),
		fmt.Sprintf("%d", cs.Hits),
		fmt.Sprintf("%s (%.0f rays/s)", cs.CastTime, cs.RaysPerSecond()),
	})
	table.Render()
	return buf.String()
}
