package main

import (
	"math"
	"slices"
	"sync"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/sim"
	"github.com/pthm-cable/swarm/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	phaseTicks  int32
	seeds       []int64
	count       int
	baseConfig  *config.Config
	statsWindow float64

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestWindows []telemetry.WindowStats
	lastSettle  float64 // mean settle fraction from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Each run forms the first
// message for phaseTicks, then switches to the next message for another
// phaseTicks.
func NewFitnessEvaluator(params *ParamVector, phaseTicks int32, count int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		phaseTicks:  phaseTicks,
		seeds:       seeds,
		count:       count,
		baseConfig:  baseCfg,
		statsWindow: 0.5,
		bestFitness: math.Inf(1),
	}
}

// BestWindows returns the window stats of the best seed of the best
// evaluation.
func (fe *FitnessEvaluator) BestWindows() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestWindows
}

// LastSettle returns the mean final settled fraction from the most recent
// evaluation.
func (fe *FitnessEvaluator) LastSettle() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSettle
}

const (
	// Fitness weights.
	weightSettleTime = 1.0
	weightUnsettled  = 1.0
	weightJitter     = 0.25

	// jitterScale is the mean speed treated as fully restless.
	jitterScale = 2.0
)

// phaseResult summarizes one message formation.
type phaseResult struct {
	settleTicks  int32 // ticks until telemetry.FormedFrac, or the phase length
	finalSettled float64
	finalSpeed   float64
}

// runResult holds the results from a single simulation run.
type runResult struct {
	phases      []phaseResult
	windowStats []telemetry.WindowStats
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	settle  float64
	windows []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r, err := fe.runSimulation(cfg, s)
			if err != nil {
				results[idx] = seedResult{fitness: fe.worstFitness()}
				return
			}
			results[idx] = seedResult{
				fitness: fe.computeFitness(r),
				settle:  meanFinalSettled(r.phases),
				windows: r.windowStats,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalSettle float64
	bestSeedFitness := math.Inf(1)
	var bestSeedWindows []telemetry.WindowStats

	for _, r := range results {
		totalFitness += r.fitness
		totalSettle += r.settle
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedWindows = r.windows
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestWindows = bestSeedWindows
	}
	fe.lastSettle = totalSettle / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation forms two messages in turn and records how each settles.
// cfg is shared between seeds and must not be modified.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	result := &runResult{}
	var phase []telemetry.WindowStats

	r, err := sim.New(cfg, sim.Options{
		Seed:        seed,
		Count:       fe.count,
		StatsWindow: fe.statsWindow,
	})
	if err != nil {
		return nil, err
	}
	defer r.Close()

	r.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
		phase = append(phase, stats)
	})

	for p := 0; p < 2; p++ {
		if p > 0 {
			r.NextMessage()
		}
		phase = phase[:0]
		start := r.Tick()
		for r.Tick()-start < fe.phaseTicks {
			r.Update()
		}
		result.phases = append(result.phases, summarizePhase(phase, start, fe.phaseTicks))
	}
	return result, nil
}

// summarizePhase reduces one phase's windows to a phaseResult.
func summarizePhase(windows []telemetry.WindowStats, start, length int32) phaseResult {
	res := phaseResult{settleTicks: length}
	if len(windows) == 0 {
		return res
	}
	for _, w := range windows {
		if w.SettledFrac >= telemetry.FormedFrac {
			res.settleTicks = min(w.WindowEndTick-start, length)
			break
		}
	}
	last := windows[len(windows)-1]
	res.finalSettled = last.SettledFrac
	res.finalSpeed = last.SpeedMean
	return res
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Population.Profiles = slices.Clone(fe.baseConfig.Population.Profiles)
	cfg.Text.Messages = slices.Clone(fe.baseConfig.Text.Messages)
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Per phase: settle time share + unsettled share + 0.25 x normalized final
// speed, averaged over phases.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	if len(r.phases) == 0 {
		return fe.worstFitness()
	}
	var total float64
	for _, p := range r.phases {
		total += weightSettleTime*float64(p.settleTicks)/float64(fe.phaseTicks) +
			weightUnsettled*(1-p.finalSettled) +
			weightJitter*clamp01(p.finalSpeed/jitterScale)
	}
	return total / float64(len(r.phases))
}

func (fe *FitnessEvaluator) worstFitness() float64 {
	return weightSettleTime + weightUnsettled + weightJitter
}

func meanFinalSettled(phases []phaseResult) float64 {
	if len(phases) == 0 {
		return 0
	}
	var sum float64
	for _, p := range phases {
		sum += p.finalSettled
	}
	return sum / float64(len(phases))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
