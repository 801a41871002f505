package main

import (
	"github.com/pthm-cable/swarm/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// tunedProfiles lists the particle types whose motion is tuned, in the
// order their parameters appear in the vector.
var tunedProfiles = []string{"scout", "anchor", "drifter"}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Physics
			{Name: "forming_gain", Path: "physics.forming_gain", Min: 0.02, Max: 0.4, Default: 0.1},
			{Name: "floating_repulsion", Path: "physics.floating_repulsion", Min: 0.1, Max: 2.0, Default: 0.5},
			// Scout
			{Name: "scout_max_speed", Path: "population.profiles.scout.max_speed", Min: 2, Max: 12, Default: 6},
			{Name: "scout_attraction", Path: "population.profiles.scout.attraction", Min: 0.5, Max: 3, Default: 1.5},
			{Name: "scout_friction", Path: "population.profiles.scout.friction[0]", Min: 0.80, Max: 0.95, Default: 0.92},
			// Anchor
			{Name: "anchor_max_speed", Path: "population.profiles.anchor.max_speed", Min: 2, Max: 12, Default: 4},
			{Name: "anchor_attraction", Path: "population.profiles.anchor.attraction", Min: 0.5, Max: 3, Default: 1.8},
			{Name: "anchor_friction", Path: "population.profiles.anchor.friction[0]", Min: 0.80, Max: 0.96, Default: 0.94},
			// Drifter
			{Name: "drifter_max_speed", Path: "population.profiles.drifter.max_speed", Min: 2, Max: 12, Default: 5},
			{Name: "drifter_attraction", Path: "population.profiles.drifter.attraction", Min: 0.3, Max: 3, Default: 0.8},
			{Name: "drifter_friction", Path: "population.profiles.drifter.friction[0]", Min: 0.80, Max: 0.94, Default: 0.92},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// profile returns the named profile, or nil if the config has none.
func profile(cfg *config.Config, name string) *config.ProfileConfig {
	for i := range cfg.Population.Profiles {
		if cfg.Population.Profiles[i].Name == name {
			return &cfg.Population.Profiles[i]
		}
	}
	return nil
}

// ApplyToConfig applies parameter values to a Config struct. Profiles
// missing from the config are skipped.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0
	cfg.Physics.FormingGain = clamped[i]
	i++
	cfg.Physics.FloatingRepulsion = clamped[i]
	i++

	for _, name := range tunedProfiles {
		p := profile(cfg, name)
		if p == nil {
			i += 3
			continue
		}
		p.MaxSpeed = clamped[i]
		i++
		p.Attraction = clamped[i]
		i++
		// Keep friction below 1 across the whole range.
		p.Friction[0] = clamped[i]
		i++
		p.Friction[1] = min(p.Friction[1], 0.99-p.Friction[0])
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
// Missing profiles report the ParamSpec defaults.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := []float64{
		cfg.Physics.FormingGain,
		cfg.Physics.FloatingRepulsion,
	}
	for _, name := range tunedProfiles {
		p := profile(cfg, name)
		if p == nil {
			n := len(v)
			for _, spec := range pv.Specs[n : n+3] {
				v = append(v, spec.Default)
			}
			continue
		}
		v = append(v, p.MaxSpeed, p.Attraction, p.Friction[0])
	}
	return v
}
