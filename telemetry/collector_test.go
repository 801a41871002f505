package telemetry

import (
	"testing"

	"github.com/pthm-cable/swarm/swarm"
)

type fakeSource struct {
	particles []swarm.Particle
	targets   int
	clock     float32
}

func (f fakeSource) Particles() []swarm.Particle { return f.particles }
func (f fakeSource) TargetCount() int            { return f.targets }
func (f fakeSource) Clock() float32              { return f.clock }

func TestCollectorWindowTicks(t *testing.T) {
	tests := []struct {
		window float64
		dt     float32
		want   int32
	}{
		{2.0, 0.02, 100},
		{1.0, 0.02, 50},
		{0.001, 0.02, 1},
	}
	for _, tt := range tests {
		c := NewCollector(tt.window, tt.dt)
		if got := c.WindowDurationTicks(); got != tt.want {
			t.Errorf("NewCollector(%v, %v) ticks = %d, want %d", tt.window, tt.dt, got, tt.want)
		}
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.02)

	if c.ShouldFlush(49) {
		t.Error("ShouldFlush(49) = true, want false")
	}
	if !c.ShouldFlush(50) {
		t.Error("ShouldFlush(50) = false, want true")
	}

	c.RecordRetarget()
	c.RecordScatter()
	c.RecordPointerTick()
	c.RecordPointerTick()

	src := fakeSource{
		particles: []swarm.Particle{{Forming: true}, {}},
		targets:   7,
		clock:     1.0,
	}
	stats := c.Flush(50, src)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 50 {
		t.Errorf("window = [%d,%d], want [0,50]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Retargets != 1 || stats.Scatters != 1 || stats.PointerTicks != 2 {
		t.Errorf("events = %d/%d/%d, want 1/1/2", stats.Retargets, stats.Scatters, stats.PointerTicks)
	}
	if stats.Targets != 7 || stats.Forming != 1 || stats.SimTimeSec != 1.0 {
		t.Errorf("sample = %+v", stats)
	}

	// Counters reset and the window advances.
	next := c.Flush(100, src)
	if next.WindowStartTick != 50 {
		t.Errorf("next window start = %d, want 50", next.WindowStartTick)
	}
	if next.Retargets != 0 || next.PointerTicks != 0 {
		t.Error("event counters not reset after flush")
	}
	if c.ShouldFlush(120) {
		t.Error("ShouldFlush(120) = true after flush at 100")
	}
}

func TestCollectorWithSubstrate(t *testing.T) {
	s := swarm.NewWithOptions(200, 200, 40, swarm.WithSeed(3))
	s.SetTargets([]swarm.Point{{X: 100, Y: 100}, {X: 110, Y: 100}})

	c := NewCollector(0.2, s.Params().StepDT)
	var tick int32
	for !c.ShouldFlush(tick) {
		s.Step()
		tick++
	}
	stats := c.Flush(tick, s)

	if stats.Particles != 40 || stats.Targets != 2 || stats.Forming != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Scouts+stats.Anchors+stats.Drifters != 40 {
		t.Error("type counts do not sum to the population")
	}
}
