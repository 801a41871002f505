package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newTestRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	if opts.Width == 0 {
		opts.Width, opts.Height = 320, 240
	}
	if opts.Count == 0 {
		opts.Count = 400
	}
	r, err := New(testConfig(t), opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestNewFormsFirstMessage(t *testing.T) {
	r := newTestRunner(t, Options{Messages: []string{"HI", "GO"}})

	if r.MessageIndex() != 0 || r.Message() != "HI" {
		t.Fatalf("message = %d %q, want 0 \"HI\"", r.MessageIndex(), r.Message())
	}
	st := r.Substrate().Stats()
	if st.TextCoords == 0 {
		t.Fatal("no targets for first message")
	}
	if want := min(st.Particles, st.TextCoords); st.Forming != want {
		t.Errorf("forming = %d, want %d", st.Forming, want)
	}
	if got := len(r.Substrate().RenderBuffer()); got != 400*4 {
		t.Errorf("render buffer len = %d, want %d", got, 400*4)
	}
}

func TestNoMessages(t *testing.T) {
	cfg := testConfig(t)
	cfg.Text.Messages = nil
	r, err := New(cfg, Options{Seed: 1, Width: 100, Height: 100, Count: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.MessageIndex() != NoMessage || r.Message() != "" {
		t.Errorf("message = %d %q, want NoMessage", r.MessageIndex(), r.Message())
	}
	r.NextMessage()
	if r.MessageIndex() != NoMessage {
		t.Error("NextMessage with no messages changed the index")
	}
	if r.Substrate().Stats().Forming != 0 {
		t.Error("particles forming without targets")
	}
}

func TestUpdateStepsAndPause(t *testing.T) {
	r := newTestRunner(t, Options{StepsPerUpdate: 3})

	r.Update()
	if r.Tick() != 3 {
		t.Errorf("tick = %d after one update, want 3", r.Tick())
	}

	if !r.TogglePause() || !r.Paused() {
		t.Fatal("TogglePause did not pause")
	}
	clock := r.Substrate().Clock()
	r.Update()
	if r.Tick() != 3 || r.Substrate().Clock() != clock {
		t.Error("paused update advanced the simulation")
	}

	r.Step()
	if r.Tick() != 4 {
		t.Errorf("Step while paused: tick = %d, want 4", r.Tick())
	}
}

func TestSetStepsPerUpdateClamps(t *testing.T) {
	r := newTestRunner(t, Options{})
	tests := []struct{ in, want int }{{0, 1}, {-3, 1}, {5, 5}, {99, maxStepsPerUpdate}}
	for _, tt := range tests {
		r.SetStepsPerUpdate(tt.in)
		if got := r.StepsPerUpdate(); got != tt.want {
			t.Errorf("SetStepsPerUpdate(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMessageCycling(t *testing.T) {
	r := newTestRunner(t, Options{Messages: []string{"A", "B", "C"}})

	r.NextMessage()
	r.NextMessage()
	if r.Message() != "C" {
		t.Errorf("message = %q, want C", r.Message())
	}
	r.NextMessage()
	if r.Message() != "A" {
		t.Errorf("message after wrap = %q, want A", r.Message())
	}
	r.SetMessage(-1)
	if r.Message() != "C" {
		t.Errorf("SetMessage(-1) = %q, want C", r.Message())
	}
}

func TestScatterTakesEffectOnNextStep(t *testing.T) {
	r := newTestRunner(t, Options{})
	if r.Substrate().Stats().Forming == 0 {
		t.Fatal("expected forming particles before scatter")
	}

	r.Scatter()
	if r.MessageIndex() != NoMessage {
		t.Errorf("index = %d, want NoMessage", r.MessageIndex())
	}
	r.Step()
	st := r.Substrate().Stats()
	if st.Forming != 0 || st.TextCoords != 0 {
		t.Errorf("after scatter: %s", st)
	}

	r.NextMessage()
	r.Step()
	if r.MessageIndex() != 0 || r.Substrate().Stats().Forming == 0 {
		t.Error("NextMessage after scatter did not re-form the first message")
	}
}

func TestPerfCountsRetargets(t *testing.T) {
	r := newTestRunner(t, Options{Messages: []string{"HI", "GO"}})

	r.Step()
	if got := r.Perf().Retargets; got != 0 {
		t.Fatalf("retargets without a message change = %d, want 0", got)
	}

	r.NextMessage()
	r.Step()
	r.Scatter()
	r.Step()
	perf := r.Perf()
	if perf.Retargets != 2 {
		t.Errorf("retargets = %d, want 2", perf.Retargets)
	}
	if perf.StepCost <= 0 {
		t.Error("expected positive per-step cost")
	}
}

func TestResizeRecentersTargets(t *testing.T) {
	r := newTestRunner(t, Options{})
	r.Resize(800, 600)
	r.Step()

	b := r.Substrate().Bounds()
	if b.Width != 800 || b.Height != 600 {
		t.Fatalf("bounds = %+v, want 800x600", b)
	}
	targets := r.Substrate().Targets()
	if len(targets) == 0 {
		t.Fatal("no targets after resize")
	}
	var minX, maxX float32 = 800, 0
	for _, p := range targets {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
	}
	if mid := (minX + maxX) / 2; mid < 399 || mid > 401 {
		t.Errorf("targets centered at x=%v, want ~400", mid)
	}
}

func TestTelemetryHistory(t *testing.T) {
	r := newTestRunner(t, Options{})

	var windows []telemetry.WindowStats
	r.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	r.SetPointer(160, 120, true)
	for i := 0; i < 250; i++ {
		r.Step()
	}

	if len(r.History()) != 2 || len(windows) != 2 {
		t.Fatalf("history = %d, callback = %d, want 2 each", len(r.History()), len(windows))
	}
	if windows[0].PointerTicks != 100 {
		t.Errorf("pointer ticks = %d, want 100", windows[0].PointerTicks)
	}
	if windows[0].Retargets != 1 {
		t.Errorf("first window retargets = %d, want 1", windows[0].Retargets)
	}
	fh := r.FormingHistory()
	if len(fh) != 2 || fh[0] <= 0 || fh[0] > 1 {
		t.Errorf("forming history = %v", fh)
	}
}

func TestDeterministicSeed(t *testing.T) {
	a := newTestRunner(t, Options{Seed: 99})
	b := newTestRunner(t, Options{Seed: 99})
	for i := 0; i < 50; i++ {
		a.Step()
		b.Step()
	}
	ba, bb := a.Substrate().RenderBuffer(), b.Substrate().RenderBuffer()
	for i := range ba {
		if ba[i] != bb[i] {
			t.Fatalf("render buffers diverge at %d: %v vs %v", i, ba[i], bb[i])
		}
	}
	if a.Seed() != 99 {
		t.Errorf("Seed() = %d, want 99", a.Seed())
	}
}

func TestOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r := newTestRunner(t, Options{OutputDir: dir})
	for i := 0; i < 120; i++ {
		r.Step()
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv", "bookmarks.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if name == "telemetry.csv" && info.Size() == 0 {
			t.Error("telemetry.csv is empty")
		}
	}
}
