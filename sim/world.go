// Package sim implements the per-day artificial-life simulation core:
// entity state machines, population dynamics, and the simulation clock.
package sim

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/config"
	"github.com/pthm-cable/evosim/genes"
	"github.com/pthm-cable/evosim/rng"
	"github.com/pthm-cable/evosim/systems"
	"github.com/pthm-cable/evosim/telemetry"
)

// World owns the complete simulation state: the entity population, the food
// field, the spatial index, and the day counter. All mutation happens inside
// Tick; external collaborators only read snapshots and accessors.
//
// The simulation is single-threaded and turn-based. All randomness flows
// through one seeded RNG, so a fixed seed and config reproduce an identical
// run.
type World struct {
	cfg    *config.Config
	ranges genes.Ranges
	rng    *rng.RNG

	world  *ecs.World
	mapper *ecs.Map4[
		components.Position,
		components.Genes,
		components.Vitals,
		components.Lineage,
	]

	// Individual component mappers for lookups
	posMap     *ecs.Map1[components.Position]
	genesMap   *ecs.Map1[components.Genes]
	vitalsMap  *ecs.Map1[components.Vitals]
	lineageMap *ecs.Map1[components.Lineage]

	grid *systems.SpatialGrid
	food *systems.FoodField

	collector *telemetry.Collector

	// order is the authoritative entity list in birth order. The daily pass
	// iterates it directly instead of an ECS query, which keeps processing
	// order independent of archetype storage layout.
	order []ecs.Entity

	day    int
	nextID uint32
	alive  int

	// scratch buffer reused by partner queries
	neighbors []systems.Neighbor
}

// New validates the configuration and creates a simulation world with its
// initial population and food. Config validation is the only failure mode.
func New(cfg *config.Config, seed int64) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	world := ecs.NewWorld()

	w := &World{
		cfg:    cfg,
		ranges: cfg.Ranges(),
		rng:    rng.New(seed),
		world:  world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Genes,
			components.Vitals,
			components.Lineage,
		](world),
		posMap:     ecs.NewMap1[components.Position](world),
		genesMap:   ecs.NewMap1[components.Genes](world),
		vitalsMap:  ecs.NewMap1[components.Vitals](world),
		lineageMap: ecs.NewMap1[components.Lineage](world),
		grid:       systems.NewSpatialGrid(cfg.World.Width, cfg.World.Height),
		food:       systems.NewFoodField(cfg.World.Width, cfg.World.Height, cfg.Food.Max, systems.CapPolicy(cfg.Food.CapPolicy)),
		collector:  telemetry.NewCollector(),
		nextID:     1, // ID 0 is reserved for "no parent"
	}

	w.spawnInitialPopulation()
	w.food.SpawnInitial(cfg.Food.Initial, w.rng)

	return w, nil
}

// spawnInitialPopulation creates the founder entities: random genome sampled
// from the initial gene ranges, random position, uniform initial energy.
func (w *World) spawnInitialPopulation() {
	for i := 0; i < w.cfg.Population.Initial; i++ {
		x := w.rng.Between(0, w.cfg.World.Width-1)
		y := w.rng.Between(0, w.cfg.World.Height-1)
		energy := w.rng.FloatBetween(w.cfg.Energy.InitialMin, w.cfg.Energy.InitialMax)
		w.spawnEntity(x, y, genes.Random(w.ranges, w.rng), energy, 0, 0)
	}
}

// spawnEntity creates one entity and appends it to the birth-order list.
// Newborns start with no reproduction cooldown; age eligibility gates them.
func (w *World) spawnEntity(x, y int, g genes.Genome, energy float64, parentA, parentB uint32) ecs.Entity {
	id := w.nextID
	w.nextID++

	pos := components.Position{X: x, Y: y}
	gn := components.Genes{Genome: g}
	vit := components.Vitals{Energy: energy, Alive: true}
	lin := components.Lineage{ID: id, ParentA: parentA, ParentB: parentB, BirthDay: w.day}

	entity := w.mapper.NewEntity(&pos, &gn, &vit, &lin)
	w.order = append(w.order, entity)
	w.alive++
	return entity
}

// Day returns the current day count.
func (w *World) Day() int { return w.day }

// Count returns the number of live entities.
func (w *World) Count() int { return w.alive }

// FoodCount returns the number of food items on the map.
func (w *World) FoodCount() int { return w.food.Count() }

// FoodPositions returns the food item positions in spawn order, for display
// collaborators.
func (w *World) FoodPositions() []systems.FoodItem {
	return w.food.Positions()
}

// EntityView is a read-only view of one live entity, for display and summary
// collaborators.
type EntityView struct {
	ID     uint32
	X, Y   int
	Genome genes.Genome
	Energy float64
	Age    int
}

// Entities returns read-only views of all live entities in birth order.
func (w *World) Entities() []EntityView {
	views := make([]EntityView, 0, w.alive)
	for _, e := range w.order {
		vit := w.vitalsMap.Get(e)
		if vit == nil || !vit.Alive {
			continue
		}
		pos := w.posMap.Get(e)
		gn := w.genesMap.Get(e)
		lin := w.lineageMap.Get(e)
		views = append(views, EntityView{
			ID:     lin.ID,
			X:      pos.X,
			Y:      pos.Y,
			Genome: gn.Genome,
			Energy: vit.Energy,
			Age:    vit.Age,
		})
	}
	return views
}
