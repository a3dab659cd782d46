// Package main provides CMA-ES optimization for evosim simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/evosim/config"
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

// NewParamVector creates the standard set of optimizable parameters: the
// energy economy and food supply knobs that decide whether a population
// persists, collapses, or explodes into the cap.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "daily_cost", Path: "energy.daily_cost", Min: 0.5, Max: 5.0, Default: 2.0},
			{Name: "move_cost_factor", Path: "energy.move_cost_factor", Min: 0.05, Max: 0.5, Default: 0.2},
			{Name: "per_food", Path: "energy.per_food", Min: 20, Max: 80, Default: 50},
			{Name: "reproduction_cost", Path: "energy.reproduction_cost", Min: 20, Max: 60, Default: 40},
			{Name: "min_reproduce", Path: "energy.min_reproduce", Min: 40, Max: 100, Default: 70},
			{Name: "food_spawn_per_day", Path: "food.spawn_per_day", Min: 2, Max: 20, Default: 8},
			{Name: "food_max", Path: "food.max", Min: 40, Max: 200, Default: 100},
			{Name: "reproduction_cooldown", Path: "reproduction.cooldown", Min: 1, Max: 6, Default: 2},
			{Name: "mutation_probability", Path: "mutation.probability", Min: 0.01, Max: 0.2, Default: 0.05},
			{Name: "mutation_magnitude", Path: "mutation.magnitude", Min: 0.05, Max: 0.5, Default: 0.2},
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
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.Energy.DailyCost = v[0]
	cfg.Energy.MoveCostFactor = v[1]
	cfg.Energy.PerFood = v[2]
	cfg.Energy.ReproductionCost = v[3]
	cfg.Energy.MinReproduce = v[4]
	cfg.Food.SpawnPerDay = int(math.Round(v[5]))
	cfg.Food.Max = int(math.Round(v[6]))
	cfg.Reproduction.Cooldown = int(math.Round(v[7]))
	cfg.Mutation.Probability = v[8]
	cfg.Mutation.Magnitude = v[9]
}
