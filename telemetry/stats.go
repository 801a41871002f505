package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swarm/swarm"
)

// SettleDistance is how close a forming particle must be to its target to
// count as settled.
const SettleDistance = 3.0

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Particles int `csv:"particles"`
	Targets   int `csv:"targets"`
	Forming   int `csv:"forming"`
	Floating  int `csv:"floating"`
	Scouts    int `csv:"scouts"`
	Anchors   int `csv:"anchors"`
	Drifters  int `csv:"drifters"`

	// Events during window
	Retargets    int `csv:"retargets"`
	Scatters     int `csv:"scatters"`
	PointerTicks int `csv:"pointer_ticks"`

	// Motion distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Formation quality, forming particles only
	TargetDistMean float64 `csv:"target_dist_mean"`
	TargetDistP90  float64 `csv:"target_dist_p90"`
	SettledFrac    float64 `csv:"settled_frac"`
}

// FormingFrac returns the share of particles currently forming.
func (s WindowStats) FormingFrac() float64 {
	if s.Particles == 0 {
		return 0
	}
	return float64(s.Forming) / float64(s.Particles)
}

// Quantile returns the p-th empirical quantile of a sorted slice.
// Returns 0 if the slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution calculates mean, population standard deviation and
// the median and 90th percentile of values.
func ComputeDistribution(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Quantile(sorted, 0.50), Quantile(sorted, 0.90)
}

// sample fills the population and distribution fields from particles.
func (s *WindowStats) sample(particles []swarm.Particle) {
	s.Particles = len(particles)

	speeds := make([]float64, 0, len(particles))
	var dists []float64
	settled := 0
	for _, p := range particles {
		speeds = append(speeds, float64(p.Speed()))

		if !p.Forming {
			s.Floating++
			continue
		}
		s.Forming++
		dx, dy := float64(p.TargetX-p.X), float64(p.TargetY-p.Y)
		d := math.Hypot(dx, dy)
		dists = append(dists, d)
		if d < SettleDistance {
			settled++
		}
	}

	types := swarm.CountTypes(particles)
	s.Scouts, s.Anchors, s.Drifters = types[swarm.Scout], types[swarm.Anchor], types[swarm.Drifter]

	s.SpeedMean, s.SpeedStd, s.SpeedP50, s.SpeedP90 = ComputeDistribution(speeds)
	s.TargetDistMean, _, _, s.TargetDistP90 = ComputeDistribution(dists)
	if s.Forming > 0 {
		s.SettledFrac = float64(settled) / float64(s.Forming)
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("targets", s.Targets),
		slog.Int("forming", s.Forming),
		slog.Int("floating", s.Floating),
		slog.Int("retargets", s.Retargets),
		slog.Int("scatters", s.Scatters),
		slog.Int("pointer_ticks", s.PointerTicks),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("target_dist_mean", s.TargetDistMean),
		slog.Float64("settled_frac", s.SettledFrac),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"targets", s.Targets,
		"forming", s.Forming,
		"floating", s.Floating,
		"scouts", s.Scouts,
		"anchors", s.Anchors,
		"drifters", s.Drifters,
		"retargets", s.Retargets,
		"scatters", s.Scatters,
		"pointer_ticks", s.PointerTicks,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"target_dist_mean", s.TargetDistMean,
		"target_dist_p90", s.TargetDistP90,
		"settled_frac", s.SettledFrac,
	)
}
