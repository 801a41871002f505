package sim

import (
	"log/slog"

	"github.com/pthm-cable/swarm/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (r *Runner) flushTelemetry() {
	if !r.collector.ShouldFlush(r.tick) {
		return
	}

	stats := r.collector.Flush(r.tick, r.sub)
	perfStats := r.perfCollector.Stats()
	r.history = append(r.history, stats)

	if r.statsCallback != nil {
		r.statsCallback(stats)
	}

	if r.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := r.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := r.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range r.bookmarks.Check(stats) {
		if r.logStats {
			bm.LogBookmark()
		}

		var snap *telemetry.Snapshot
		if r.outputManager != nil {
			snap = telemetry.NewSnapshot(r.sub, r.seed, r.tick, &bm)
		}
		if err := r.outputManager.WriteBookmark(bm, snap); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
