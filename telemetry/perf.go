package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Phase is one stage of a runner update.
type Phase int

// Update stages in pipeline order. Assign only runs on updates that apply
// a retarget; physics and telemetry run once per simulated step.
const (
	PhaseAssign Phase = iota
	PhasePhysics
	PhaseTelemetry
	PhaseExport
	numPhases
)

var phaseNames = [numPhases]string{"assign", "physics", "telemetry", "export"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// retargetWindow is how many recent retargets the assignment cost averages.
const retargetWindow = 16

type ring[T any] struct {
	buf  []T
	next int
	n    int
}

func newRing[T any](size int) ring[T] {
	return ring[T]{buf: make([]T, size)}
}

func (r *ring[T]) push(v T) {
	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

// items returns the stored values in no particular order.
func (r *ring[T]) items() []T { return r.buf[:r.n] }

type updateSample struct {
	total  time.Duration
	steps  int
	phases [numPhases]time.Duration
}

type retargetSample struct {
	cost    time.Duration
	targets int
}

// PerfCollector times runner updates over a rolling window. An update may
// run any number of steps (zero while paused), so per-step cost is kept
// apart from per-update cost, and assignment is averaged per retarget.
type PerfCollector struct {
	updates   ring[updateSample]
	retargets ring[retargetSample]

	cur     updateSample
	started time.Time
	mark    time.Time
	phase   Phase
	timing  bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector averages over the last windowSize updates.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		updates:   newRing[updateSample](windowSize),
		retargets: newRing[retargetSample](retargetWindow),
	}
}

// BeginUpdate starts timing an update.
func (p *PerfCollector) BeginUpdate() {
	now := time.Now()
	p.cur = updateSample{}
	p.started = now
	p.mark = now
	p.timing = false
}

// Enter closes the running phase and starts timing ph.
func (p *PerfCollector) Enter(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.timing = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.timing {
		p.cur.phases[p.phase] += now.Sub(p.mark)
	}
	p.mark = now
}

// Retargeted records the time spent in the running phase since Enter as
// the cost of assigning targets particles.
func (p *PerfCollector) Retargeted(targets int) {
	p.retargets.push(retargetSample{cost: time.Since(p.mark), targets: targets})
}

// EndUpdate closes the update that ran steps simulation steps.
func (p *PerfCollector) EndUpdate(steps int) {
	now := time.Now()
	p.closePhase(now)
	p.timing = false
	p.cur.total = now.Sub(p.started)
	p.cur.steps = steps
	p.updates.push(p.cur)
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgUpdate time.Duration
	MaxUpdate time.Duration

	// StepCost is physics plus telemetry time per simulated step.
	StepCost       time.Duration
	StepsPerSecond float64

	// Share of update time per phase, in percent
	PhasePct [numPhases]float64

	// Assignment, averaged over the last retargets
	Retargets       int
	AssignCost      time.Duration
	AssignPerTarget time.Duration

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current windows.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}

	var total time.Duration
	var steps int
	var phaseSum [numPhases]time.Duration
	updates := p.updates.items()
	for _, u := range updates {
		total += u.total
		steps += u.steps
		s.MaxUpdate = max(s.MaxUpdate, u.total)
		for ph, d := range u.phases {
			phaseSum[ph] += d
		}
	}
	if len(updates) > 0 {
		s.AvgUpdate = total / time.Duration(len(updates))
	}
	if steps > 0 {
		s.StepCost = (phaseSum[PhasePhysics] + phaseSum[PhaseTelemetry]) / time.Duration(steps)
	}
	if total > 0 {
		s.StepsPerSecond = float64(steps) / total.Seconds()
		for ph, d := range phaseSum {
			s.PhasePct[ph] = float64(d) / float64(total) * 100
		}
	}

	var cost time.Duration
	var targets int
	retargets := p.retargets.items()
	for _, r := range retargets {
		cost += r.cost
		targets += r.targets
	}
	s.Retargets = len(retargets)
	if s.Retargets > 0 {
		s.AssignCost = cost / time.Duration(s.Retargets)
	}
	if targets > 0 {
		s.AssignPerTarget = cost / time.Duration(targets)
	}
	return s
}

func (s PerfStats) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int64("avg_update_us", s.AvgUpdate.Microseconds()),
		slog.Int64("max_update_us", s.MaxUpdate.Microseconds()),
		slog.Int64("step_cost_us", s.StepCost.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	if s.Retargets > 0 {
		attrs = append(attrs,
			slog.Int("retargets", s.Retargets),
			slog.Int64("assign_cost_us", s.AssignCost.Microseconds()),
			slog.Int64("assign_per_target_ns", s.AssignPerTarget.Nanoseconds()),
		)
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	return attrs
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.LogAttrs(context.Background(), slog.LevelInfo, "perf", s.attrs()...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// Summary formats update and step cost, phase shares and retarget cost on
// one line for overlays.
func (s PerfStats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "update %.2fms step %dus", msec(s.AvgUpdate), s.StepCost.Microseconds())
	for ph := Phase(0); ph < numPhases; ph++ {
		if s.PhasePct[ph] >= 1 {
			fmt.Fprintf(&b, " %s %.0f%%", ph, s.PhasePct[ph])
		}
	}
	if s.Retargets > 0 {
		fmt.Fprintf(&b, " retarget %.2fms", msec(s.AssignCost))
	}
	return b.String()
}

func msec(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd         int32   `csv:"window_end"`
	AvgUpdateUS       int64   `csv:"avg_update_us"`
	MaxUpdateUS       int64   `csv:"max_update_us"`
	StepCostUS        int64   `csv:"step_cost_us"`
	StepsPerSec       float64 `csv:"steps_per_sec"`
	FPS               float64 `csv:"fps"`
	AssignPct         float64 `csv:"assign_pct"`
	PhysicsPct        float64 `csv:"physics_pct"`
	TelemetryPct      float64 `csv:"telemetry_pct"`
	ExportPct         float64 `csv:"export_pct"`
	Retargets         int     `csv:"retargets"`
	AssignCostUS      int64   `csv:"assign_cost_us"`
	AssignPerTargetNS int64   `csv:"assign_per_target_ns"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:         windowEnd,
		AvgUpdateUS:       s.AvgUpdate.Microseconds(),
		MaxUpdateUS:       s.MaxUpdate.Microseconds(),
		StepCostUS:        s.StepCost.Microseconds(),
		StepsPerSec:       s.StepsPerSecond,
		FPS:               s.FPS,
		AssignPct:         s.PhasePct[PhaseAssign],
		PhysicsPct:        s.PhasePct[PhasePhysics],
		TelemetryPct:      s.PhasePct[PhaseTelemetry],
		ExportPct:         s.PhasePct[PhaseExport],
		Retargets:         s.Retargets,
		AssignCostUS:      s.AssignCost.Microseconds(),
		AssignPerTargetNS: s.AssignPerTarget.Nanoseconds(),
	}
}
