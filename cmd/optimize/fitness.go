package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/evosim/config"
	"github.com/pthm-cable/evosim/sim"
)

// FitnessEvaluator runs headless simulations and computes fitness.
// Each run is itself single-threaded and deterministic for its seed; only
// distinct seeds run in parallel.
type FitnessEvaluator struct {
	params     *ParamVector
	maxDays    int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // mean population fraction from the latest Evaluate
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxDays int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxDays:     maxDays,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalDays int     // days before extinction (or maxDays if survived)
	meanPopFrac  float64 // mean population as a fraction of the cap
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness rewards survival days, with a bonus for keeping a healthy
// population fraction along the way.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += -(float64(r.survivalDays) * (1 + 0.2*r.meanPopFrac))
		totalQuality += r.meanPopFrac
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run until extinction or maxDays.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	world, err := sim.New(cfg, seed)
	if err != nil {
		// Out-of-bounds vectors are clamped by ApplyToConfig, so this only
		// fires on a broken base config; score it as immediate extinction.
		return runResult{}
	}

	var popSum float64
	day := 0
	for ; day < fe.maxDays; day++ {
		snap := world.Tick()
		popSum += float64(snap.Population)
		if snap.Population == 0 {
			break
		}
	}

	meanPopFrac := 0.0
	if day > 0 && cfg.Population.Max > 0 {
		meanPopFrac = popSum / float64(day) / float64(cfg.Population.Max)
	}

	return runResult{survivalDays: day, meanPopFrac: meanPopFrac}
}

// copyConfig returns a private copy of the base config. Config is a value
// type with no reference fields, so a shallow copy is a deep copy.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
