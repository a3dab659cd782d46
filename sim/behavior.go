package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/genes"
	"github.com/pthm-cable/evosim/telemetry"
)

// birth is a pending offspring collected during the daily pass and applied
// only after the pass completes, so newborns never act on their birth day.
type birth struct {
	x, y             int
	genome           genes.Genome
	energy           float64
	parentA, parentB uint32
}

// runDayPass drives the per-entity state machine for every live entity in
// birth order and collects pending births. Mate search uses the start-of-day
// spatial grid; food consumption is live so no item is eaten twice.
func (w *World) runDayPass() []birth {
	var pending []birth

	for _, e := range w.order {
		vit := w.vitalsMap.Get(e)
		if !vit.Alive {
			continue
		}
		pos := w.posMap.Get(e)
		gn := w.genesMap.Get(e)

		w.updateEntity(pos, gn, vit)

		if vit.Alive {
			if b, ok := w.tryReproduce(e, pos, gn, vit, len(pending)); ok {
				pending = append(pending, b)
			}
		}
	}

	return pending
}

// updateEntity runs steps 1-5 of the daily state machine: perceive, move,
// feed, survive, age. Starvation is checked before old age; a same-day tie
// is recorded as starvation.
func (w *World) updateEntity(pos *components.Position, gn *components.Genes, vit *components.Vitals) {
	g := gn.Genome

	// 1. Perceive: nearest food within the perception radius, else random walk.
	target, hasTarget := w.food.NearestWithin(pos.X, pos.Y, g.Perception())

	// Faster entities pay more per cell actually moved.
	moveCost := w.cfg.Energy.MoveCostFactor * (1 + g[genes.Speed]/2)

	// 2-3. Move up to speed cells; feed on arrival.
	for step := 0; step < g.Speed(); step++ {
		// The target may have been eaten earlier in the pass.
		if hasTarget && !w.food.HasFoodAt(target.X, target.Y) {
			hasTarget = false
		}

		nx, ny := pos.X, pos.Y
		if hasTarget {
			nx += sign(target.X - pos.X)
			ny += sign(target.Y - pos.Y)
		} else {
			nx += w.rng.Jitter()
			ny += w.rng.Jitter()
		}
		nx, ny = w.grid.Clamp(nx, ny)

		if nx == pos.X && ny == pos.Y {
			continue
		}
		pos.X, pos.Y = nx, ny

		vit.Energy -= moveCost
		if vit.Energy <= 0 {
			w.kill(vit, telemetry.DeathStarved)
			return
		}

		if w.food.ConsumeAt(pos.X, pos.Y) {
			vit.Energy += w.cfg.Energy.PerFood * g[genes.FeedingEfficiency]
			w.collector.RecordFoodEaten()
			break // eating ends the day's movement
		}
	}

	// 4. Survive: base daily upkeep.
	vit.Energy -= w.cfg.Energy.DailyCost
	if vit.Energy <= 0 {
		w.kill(vit, telemetry.DeathStarved)
		return
	}

	// 5. Age.
	vit.Age++
	if vit.ReproCooldown > 0 {
		vit.ReproCooldown--
	}
	if vit.Age >= g.Longevity() {
		w.kill(vit, telemetry.DeathOldAge)
	}
}

// tryReproduce runs step 6 for an entity that survived the day. The
// population cap is checked before any energy is deducted, so a capped
// attempt costs nothing. A single roll against the initiator's
// reproduction rate decides the attempt.
func (w *World) tryReproduce(e ecs.Entity, pos *components.Position, gn *components.Genes, vit *components.Vitals, pendingBirths int) (birth, bool) {
	if !w.eligible(vit) {
		return birth{}, false
	}

	partnerVit, partnerGn, partnerLin, found := w.findPartner(e, pos)
	if !found {
		return birth{}, false
	}

	// Hard ceiling: extra births beyond the cap are rejected here, before
	// the roll and before any cost is paid.
	if w.alive+pendingBirths >= w.cfg.Population.Max {
		return birth{}, false
	}

	if !w.rng.Bool(gn.Genome[genes.ReproductionRate]) {
		return birth{}, false
	}

	cost := w.cfg.Energy.ReproductionCost
	vit.Energy -= cost
	partnerVit.Energy -= cost
	vit.ReproCooldown = w.cfg.Reproduction.Cooldown
	partnerVit.ReproCooldown = w.cfg.Reproduction.Cooldown

	// When the cost exceeds the eligibility threshold a parent can be drained
	// to zero; that is starvation, the birth itself still stands.
	if vit.Energy <= 0 {
		w.kill(vit, telemetry.DeathStarved)
	}
	if partnerVit.Energy <= 0 {
		w.kill(partnerVit, telemetry.DeathStarved)
	}

	child := genes.Crossover(gn.Genome, partnerGn.Genome, w.rng)
	child = genes.Mutate(child, w.ranges, w.cfg.Mutation.Probability, w.cfg.Mutation.Magnitude, w.rng)

	// Offspring spawns adjacent to the initiating parent.
	cx, cy := w.grid.Clamp(pos.X+w.rng.Jitter(), pos.Y+w.rng.Jitter())

	lin := w.lineageMap.Get(e)
	return birth{
		x:       cx,
		y:       cy,
		genome:  child,
		energy:  2 * cost, // the parents' deductions transfer to the child
		parentA: lin.ID,
		parentB: partnerLin.ID,
	}, true
}

// eligible reports whether an entity meets the reproduction preconditions.
func (w *World) eligible(vit *components.Vitals) bool {
	return vit.Alive &&
		vit.Age >= w.cfg.Reproduction.MinAge &&
		vit.Age <= w.cfg.Reproduction.MaxAge &&
		vit.ReproCooldown == 0 &&
		vit.Energy >= w.cfg.Energy.MinReproduce
}

// findPartner returns the nearest currently-eligible entity within the
// reproduction distance, using start-of-day positions.
func (w *World) findPartner(e ecs.Entity, pos *components.Position) (*components.Vitals, *components.Genes, *components.Lineage, bool) {
	w.neighbors = w.grid.QueryRadiusInto(w.neighbors[:0], pos.X, pos.Y, w.cfg.Reproduction.Distance, e)

	var best ecs.Entity
	bestDistSq := -1
	for _, n := range w.neighbors {
		pv := w.vitalsMap.Get(n.E)
		if pv == nil || !w.eligible(pv) {
			continue
		}
		if bestDistSq < 0 || n.DistSq < bestDistSq {
			best = n.E
			bestDistSq = n.DistSq
		}
	}
	if bestDistSq < 0 {
		return nil, nil, nil, false
	}
	return w.vitalsMap.Get(best), w.genesMap.Get(best), w.lineageMap.Get(best), true
}

// kill marks an entity dead. Energy is floored at zero so it is never
// negative while the entity is still observable; removal happens at the end
// of the same tick.
func (w *World) kill(vit *components.Vitals, cause telemetry.DeathCause) {
	if vit.Energy < 0 {
		vit.Energy = 0
	}
	vit.Alive = false
	w.alive--
	w.collector.RecordDeath(cause)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
