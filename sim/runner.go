// Package sim drives a swarm substrate through its message sequence,
// collecting telemetry as it goes. It has no graphics dependency and backs
// the window, terminal and headless front ends alike.
package sim

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/shape"
	"github.com/pthm-cable/swarm/swarm"
	"github.com/pthm-cable/swarm/telemetry"
)

// NoMessage is the message index while the swarm is scattered.
const NoMessage = -1

// maxStepsPerUpdate bounds the speed multiplier.
const maxStepsPerUpdate = 10

// Options configures a Runner.
type Options struct {
	Seed           int64    // 0 = time-based
	Width, Height  float32  // viewport; 0 = config screen size
	Count          int      // particles; 0 = config population count
	Messages       []string // empty = config text messages
	OutputDir      string   // empty = no CSV output
	LogStats       bool
	StatsWindow    float64 // seconds; 0 = config telemetry window
	StepsPerUpdate int
}

// Runner owns a substrate plus its telemetry pipeline.
type Runner struct {
	cfg *config.Config
	sub *swarm.Substrate

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)

	seed           int64
	logStats       bool
	tick           int32
	paused         bool
	stepsPerUpdate int

	messages   []string
	messageIdx int
	// targets are rebuilt at the start of the next update
	retargetPending bool

	history []telemetry.WindowStats
}

// New creates a runner from cfg and opts and forms the first message.
func New(cfg *config.Config, opts Options) (*Runner, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	}
	count := opts.Count
	if count <= 0 {
		count = cfg.Population.Count
	}
	messages := opts.Messages
	if len(messages) == 0 {
		messages = cfg.Text.Messages
	}
	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	params := cfg.SwarmParams()
	r := &Runner{
		cfg: cfg,
		sub: swarm.NewWithOptions(w, h, count,
			swarm.WithParams(params),
			swarm.WithProfiles(cfg.Profiles()),
			swarm.WithSeed(seed),
		),
		collector:      telemetry.NewCollector(statsWindow, params.StepDT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarks:      telemetry.NewBookmarkDetector(),
		outputManager:  om,
		seed:           seed,
		logStats:       opts.LogStats,
		messages:       messages,
		messageIdx:     NoMessage,
		stepsPerUpdate: steps,
	}

	if len(messages) > 0 {
		r.SetMessage(0)
	}
	r.applyRetarget()
	r.sub.UpdateRenderBuffer()

	slog.Info("swarm created",
		"seed", seed,
		"particles", count,
		"width", w,
		"height", h,
		"messages", len(messages),
	)
	return r, nil
}

// SetStatsCallback registers fn to receive every flushed window.
func (r *Runner) SetStatsCallback(fn func(telemetry.WindowStats)) {
	r.statsCallback = fn
}

// Update runs StepsPerUpdate ticks unless paused, then refreshes the
// render buffer.
func (r *Runner) Update() {
	steps := r.stepsPerUpdate
	if r.paused {
		steps = 0
	}
	r.advance(steps)
}

// Step advances the simulation by one tick regardless of pause state.
func (r *Runner) Step() {
	r.advance(1)
}

// advance runs one timed update: pending assignment, steps ticks of
// physics and telemetry, then export.
func (r *Runner) advance(steps int) {
	perf := r.perfCollector
	perf.BeginUpdate()

	if r.retargetPending {
		perf.Enter(telemetry.PhaseAssign)
		perf.Retargeted(r.applyRetarget())
	}

	for i := 0; i < steps; i++ {
		perf.Enter(telemetry.PhasePhysics)
		if r.sub.Pointer().Active {
			r.collector.RecordPointerTick()
		}
		r.sub.Step()
		r.tick++

		perf.Enter(telemetry.PhaseTelemetry)
		r.flushTelemetry()
	}

	perf.Enter(telemetry.PhaseExport)
	r.sub.UpdateRenderBuffer()

	perf.EndUpdate(steps)
}

// SetMessage forms message i, wrapping around the message list. The new
// targets take effect on the next Update or Step.
func (r *Runner) SetMessage(i int) {
	if len(r.messages) == 0 {
		return
	}
	i %= len(r.messages)
	if i < 0 {
		i += len(r.messages)
	}
	r.messageIdx = i
	r.retargetPending = true
	r.collector.RecordRetarget()
}

// NextMessage forms the message after the current one.
func (r *Runner) NextMessage() {
	r.SetMessage(r.messageIdx + 1)
}

// Scatter releases every particle to float on the next Update or Step.
func (r *Runner) Scatter() {
	r.messageIdx = NoMessage
	r.retargetPending = true
	r.collector.RecordScatter()
}

// applyRetarget rebuilds the current message's targets for the viewport
// if a message change or resize is pending, and returns the target count.
func (r *Runner) applyRetarget() int {
	if !r.retargetPending {
		return r.sub.TargetCount()
	}
	r.retargetPending = false

	if r.messageIdx == NoMessage {
		r.sub.ClearTargets()
		return 0
	}
	b := r.sub.Bounds()
	r.sub.SetTargets(shape.TextTargets(r.Message(), r.cfg.Text, b.Width, b.Height))
	return r.sub.TargetCount()
}

// Message returns the message being formed, or "" while scattered.
func (r *Runner) Message() string {
	if r.messageIdx == NoMessage {
		return ""
	}
	return r.messages[r.messageIdx]
}

// MessageIndex returns the current message index or NoMessage.
func (r *Runner) MessageIndex() int { return r.messageIdx }

// SetPointer updates the pointer in world coordinates.
func (r *Runner) SetPointer(x, y float32, active bool) {
	r.sub.SetMouse(x, y, active)
}

// Resize changes the viewport and re-centers the current message.
func (r *Runner) Resize(width, height float32) {
	b := r.sub.Bounds()
	if b.Width == width && b.Height == height {
		return
	}
	r.sub.Resize(width, height)
	r.retargetPending = r.retargetPending || r.messageIdx != NoMessage
	slog.Info("viewport resized", "width", width, "height", height)
}

// TogglePause flips the pause state and returns the new value.
func (r *Runner) TogglePause() bool {
	r.paused = !r.paused
	return r.paused
}

// Paused reports whether stepping is suspended.
func (r *Runner) Paused() bool { return r.paused }

// SetStepsPerUpdate sets the speed multiplier, clamped to [1, 10].
func (r *Runner) SetStepsPerUpdate(n int) {
	r.stepsPerUpdate = min(max(n, 1), maxStepsPerUpdate)
}

// StepsPerUpdate returns the speed multiplier.
func (r *Runner) StepsPerUpdate() int { return r.stepsPerUpdate }

// Tick returns the number of steps taken.
func (r *Runner) Tick() int32 { return r.tick }

// Seed returns the seed the population was drawn from.
func (r *Runner) Seed() int64 { return r.seed }

// Substrate exposes the underlying simulation.
func (r *Runner) Substrate() *swarm.Substrate { return r.sub }

// Perf returns the rolling performance statistics.
func (r *Runner) Perf() telemetry.PerfStats { return r.perfCollector.Stats() }

// RecordFrame records frame timing for graphical front ends.
func (r *Runner) RecordFrame() { r.perfCollector.RecordFrame() }

// History returns every flushed window so far.
func (r *Runner) History() []telemetry.WindowStats { return r.history }

// FormingHistory returns the forming fraction of every flushed window.
func (r *Runner) FormingHistory() []float64 {
	out := make([]float64, len(r.history))
	for i, s := range r.history {
		out[i] = s.FormingFrac()
	}
	return out
}

// Close flushes and closes any output files.
func (r *Runner) Close() error {
	return r.outputManager.Close()
}
