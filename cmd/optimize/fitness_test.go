package main

import (
	"testing"

	"github.com/pthm-cable/swarm/telemetry"
)

func TestSummarizePhase(t *testing.T) {
	windows := []telemetry.WindowStats{
		{WindowEndTick: 125, SettledFrac: 0.2, SpeedMean: 4},
		{WindowEndTick: 150, SettledFrac: 0.92, SpeedMean: 1},
		{WindowEndTick: 175, SettledFrac: 0.95, SpeedMean: 0.5},
	}
	got := summarizePhase(windows, 100, 100)

	if got.settleTicks != 50 {
		t.Errorf("settleTicks = %d, want 50", got.settleTicks)
	}
	if got.finalSettled != 0.95 || got.finalSpeed != 0.5 {
		t.Errorf("final = %v/%v, want 0.95/0.5", got.finalSettled, got.finalSpeed)
	}
}

func TestSummarizePhaseNeverSettles(t *testing.T) {
	got := summarizePhase([]telemetry.WindowStats{{WindowEndTick: 25, SettledFrac: 0.5}}, 0, 200)
	if got.settleTicks != 200 {
		t.Errorf("settleTicks = %d, want phase length", got.settleTicks)
	}
	if empty := summarizePhase(nil, 0, 200); empty.settleTicks != 200 || empty.finalSettled != 0 {
		t.Errorf("empty phase = %+v", empty)
	}
}

func TestComputeFitnessOrdering(t *testing.T) {
	fe := &FitnessEvaluator{phaseTicks: 100}

	fast := &runResult{phases: []phaseResult{{settleTicks: 20, finalSettled: 0.98, finalSpeed: 0.1}}}
	slow := &runResult{phases: []phaseResult{{settleTicks: 100, finalSettled: 0.6, finalSpeed: 3}}}

	f, s := fe.computeFitness(fast), fe.computeFitness(slow)
	if f >= s {
		t.Errorf("fast fitness %v not better than slow %v", f, s)
	}
	if s > fe.worstFitness() {
		t.Errorf("fitness %v exceeds worst %v", s, fe.worstFitness())
	}
	if got := fe.computeFitness(&runResult{}); got != fe.worstFitness() {
		t.Errorf("empty run fitness = %v, want worst", got)
	}
}

func TestEvaluateRunsSeeds(t *testing.T) {
	if testing.Short() {
		t.Skip("runs simulations")
	}
	cfg := loadDefaults(t)
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 50, 200, []int64{1, 2}, cfg)

	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness <= 0 || fitness > fe.worstFitness() {
		t.Errorf("fitness = %v, want in (0, %v]", fitness, fe.worstFitness())
	}
	if len(fe.BestWindows()) == 0 {
		t.Error("no windows recorded for best run")
	}
	if s := fe.LastSettle(); s < 0 || s > 1 {
		t.Errorf("settle = %v, want [0,1]", s)
	}
	if cfg.Population.Profiles[0].MaxSpeed != pv.Specs[2].Default {
		t.Error("base config was modified")
	}
}
