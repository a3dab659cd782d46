// Package genes defines the heritable trait set of an entity and the
// inheritance operators that act on it.
package genes

import (
	"math"

	"github.com/pthm-cable/evosim/rng"
)

// Trait indexes a single heritable trait within a Genome.
type Trait uint8

const (
	// Speed is the number of cells an entity may move per day.
	Speed Trait = iota
	// FeedingEfficiency multiplies the energy gained from a food item.
	FeedingEfficiency
	// BaseLongevity is the maximum age in days.
	BaseLongevity
	// ReproductionRate is the probability of attempting reproduction when
	// all other conditions are met.
	ReproductionRate
	// PerceptionRadius is the food detection distance in cells.
	PerceptionRadius

	// NumTraits is the number of traits in a genome.
	NumTraits
)

// String returns the trait name as used in config and telemetry.
func (t Trait) String() string {
	switch t {
	case Speed:
		return "speed"
	case FeedingEfficiency:
		return "feeding_efficiency"
	case BaseLongevity:
		return "base_longevity"
	case ReproductionRate:
		return "reproduction_rate"
	case PerceptionRadius:
		return "perception_radius"
	default:
		return "unknown"
	}
}

// Range bounds a trait. [Min, Max] is the hard clamp applied after mutation;
// [InitialMin, InitialMax] is the narrower band founders are sampled from.
type Range struct {
	Min, Max               float64
	InitialMin, InitialMax float64
}

// Ranges holds the configured range for every trait.
type Ranges [NumTraits]Range

// Genome is an ordered mapping of traits to values. Values are stored as
// continuous floats even for integer-valued traits, so mutation pressure
// accumulates across generations; integer traits are read through the
// rounding accessors below.
type Genome [NumTraits]float64

// Speed returns the whole-cell movement budget per day.
func (g Genome) Speed() int {
	return int(math.Round(g[Speed]))
}

// Longevity returns the maximum age in days.
func (g Genome) Longevity() int {
	return int(math.Round(g[BaseLongevity]))
}

// Perception returns the food detection radius in cells.
func (g Genome) Perception() int {
	return int(math.Round(g[PerceptionRadius]))
}

// Random samples a founder genome, each trait uniform in its initial range.
func Random(ranges Ranges, r *rng.RNG) Genome {
	var g Genome
	for t := Trait(0); t < NumTraits; t++ {
		g[t] = r.FloatBetween(ranges[t].InitialMin, ranges[t].InitialMax)
	}
	return g
}

// Crossover blends two parent genomes: per trait, one parent's value is
// picked with equal probability. Uniform pick rather than averaging keeps
// integer traits discrete.
func Crossover(a, b Genome, r *rng.RNG) Genome {
	var g Genome
	for t := Trait(0); t < NumTraits; t++ {
		if r.Bool(0.5) {
			g[t] = a[t]
		} else {
			g[t] = b[t]
		}
	}
	return g
}

// Mutate perturbs each trait independently with the given probability. A
// mutation shifts the value by up to magnitude times the trait's range width
// in either direction, then clamps. Mutation never fails; out-of-range
// results are clamped, not rejected.
func Mutate(g Genome, ranges Ranges, probability, magnitude float64, r *rng.RNG) Genome {
	for t := Trait(0); t < NumTraits; t++ {
		if !r.Bool(probability) {
			continue
		}
		width := ranges[t].Max - ranges[t].Min
		g[t] = clamp(g[t]+r.FloatBetween(-magnitude, magnitude)*width, ranges[t].Min, ranges[t].Max)
	}
	return g
}

// Clamp forces every trait into its configured range.
func Clamp(g Genome, ranges Ranges) Genome {
	for t := Trait(0); t < NumTraits; t++ {
		g[t] = clamp(g[t], ranges[t].Min, ranges[t].Max)
	}
	return g
}

// InRange reports whether every trait value is within its configured range.
func InRange(g Genome, ranges Ranges) bool {
	for t := Trait(0); t < NumTraits; t++ {
		if g[t] < ranges[t].Min || g[t] > ranges[t].Max {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
