package telemetry

import (
	"math"

	"github.com/pthm-cable/swarm/swarm"
)

// Source is the read side of a simulation the collector samples.
type Source interface {
	Particles() []swarm.Particle
	TargetCount() int
	Clock() float32
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	retargets    int
	scatters     int
	pointerTicks int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: clock advance per tick
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{windowDurationTicks: ticksPerWindow}
}

// RecordRetarget records a new target set.
func (c *Collector) RecordRetarget() {
	c.retargets++
}

// RecordScatter records the targets being cleared.
func (c *Collector) RecordScatter() {
	c.scatters++
}

// RecordPointerTick records a tick stepped with the pointer active.
func (c *Collector) RecordPointerTick() {
	c.pointerTicks++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush samples src, produces a WindowStats and resets counters for the
// next window.
func (c *Collector) Flush(currentTick int32, src Source) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(src.Clock()),
		Targets:         src.TargetCount(),
		Retargets:       c.retargets,
		Scatters:        c.scatters,
		PointerTicks:    c.pointerTicks,
	}
	stats.sample(src.Particles())

	c.windowStartTick = currentTick
	c.retargets = 0
	c.scatters = 0
	c.pointerTicks = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
