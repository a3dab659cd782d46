// Package telemetry collects per-day simulation statistics and writes them
// for display and summary consumers.
package telemetry

// DeathCause distinguishes why an entity died. Starvation is checked before
// old age within a day, so a same-day tie is recorded as starvation.
type DeathCause uint8

const (
	// DeathStarved means energy reached zero.
	DeathStarved DeathCause = iota
	// DeathOldAge means age reached the entity's base longevity.
	DeathOldAge
)

// Collector accumulates events within one simulated day.
type Collector struct {
	births        int
	deathsStarved int
	deathsOldAge  int
	foodEaten     int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordBirth records a confirmed birth.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death with its cause.
func (c *Collector) RecordDeath(cause DeathCause) {
	if cause == DeathStarved {
		c.deathsStarved++
	} else {
		c.deathsOldAge++
	}
}

// RecordFoodEaten records a consumed food item.
func (c *Collector) RecordFoodEaten() {
	c.foodEaten++
}

// DayCounts holds the event counters for one day.
type DayCounts struct {
	Births        int
	DeathsStarved int
	DeathsOldAge  int
	FoodEaten     int
}

// Flush returns the counters for the finished day and resets them.
func (c *Collector) Flush() DayCounts {
	counts := DayCounts{
		Births:        c.births,
		DeathsStarved: c.deathsStarved,
		DeathsOldAge:  c.deathsOldAge,
		FoodEaten:     c.foodEaten,
	}
	*c = Collector{}
	return counts
}
