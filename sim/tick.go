package sim

import (
	"github.com/pthm-cable/evosim/genes"
	"github.com/pthm-cable/evosim/telemetry"
)

// Tick advances the simulation by one day in a fixed order: rebuild the
// spatial index from start-of-day positions, run the per-entity pass, apply
// pending births, remove the dead, spawn the daily food, and return the
// day's read-only snapshot.
func (w *World) Tick() telemetry.DaySnapshot {
	w.day++

	w.rebuildGrid()
	pending := w.runDayPass()
	w.applyBirths(pending)
	w.removeDead()
	w.food.SpawnDaily(w.cfg.Food.SpawnPerDay, w.rng)

	return w.snapshot()
}

// rebuildGrid re-derives the cell occupancy index from live entities. The
// grid is back-references only; positions on the components stay
// authoritative.
func (w *World) rebuildGrid() {
	w.grid.Clear()
	for _, e := range w.order {
		vit := w.vitalsMap.Get(e)
		if vit == nil || !vit.Alive {
			continue
		}
		pos := w.posMap.Get(e)
		w.grid.Insert(e, pos.X, pos.Y)
	}
}

// applyBirths creates the day's offspring in the order they were conceived,
// after the full pass so they never act on their birth day.
func (w *World) applyBirths(pending []birth) {
	for _, b := range pending {
		w.spawnEntity(b.x, b.y, b.genome, b.energy, b.parentA, b.parentB)
		w.collector.RecordBirth()
	}
}

// removeDead deletes dead entities from the world and compacts the
// birth-order list. Collect first, then remove: the list must not change
// while it is being walked.
func (w *World) removeDead() {
	live := w.order[:0]
	for _, e := range w.order {
		vit := w.vitalsMap.Get(e)
		if vit != nil && vit.Alive {
			live = append(live, e)
			continue
		}
		w.mapper.Remove(e)
	}
	w.order = live
}

// snapshot samples the population at day end and folds in the day's event
// counters.
func (w *World) snapshot() telemetry.DaySnapshot {
	counts := w.collector.Flush()

	snap := telemetry.DaySnapshot{
		Day:           w.day,
		Population:    w.alive,
		Food:          w.food.Count(),
		Births:        counts.Births,
		DeathsStarved: counts.DeathsStarved,
		DeathsOldAge:  counts.DeathsOldAge,
		FoodEaten:     counts.FoodEaten,
	}

	if w.alive == 0 {
		return snap
	}

	energies := make([]float64, 0, w.alive)
	ages := make([]float64, 0, w.alive)
	var traits [genes.NumTraits][]float64
	for t := range traits {
		traits[t] = make([]float64, 0, w.alive)
	}

	for _, e := range w.order {
		vit := w.vitalsMap.Get(e)
		gn := w.genesMap.Get(e)
		energies = append(energies, vit.Energy)
		ages = append(ages, float64(vit.Age))
		for t := genes.Trait(0); t < genes.NumTraits; t++ {
			traits[t] = append(traits[t], gn.Genome[t])
		}
	}

	energy := telemetry.Summarize(energies)
	snap.MeanEnergy = energy.Mean
	snap.EnergyP10 = energy.P10
	snap.EnergyP50 = energy.P50
	snap.EnergyP90 = energy.P90
	snap.MeanAge = telemetry.Mean(ages)
	snap.MeanSpeed = telemetry.Mean(traits[genes.Speed])
	snap.MeanFeedingEfficiency = telemetry.Mean(traits[genes.FeedingEfficiency])
	snap.MeanLongevity = telemetry.Mean(traits[genes.BaseLongevity])
	snap.MeanReproductionRate = telemetry.Mean(traits[genes.ReproductionRate])
	snap.MeanPerception = telemetry.Mean(traits[genes.PerceptionRadius])

	return snap
}
