// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/evosim/genes"

// Position is an entity's cell coordinate on the grid.
type Position struct {
	X, Y int
}

// Genes carries an entity's heritable genome.
type Genes struct {
	Genome genes.Genome
}

// Vitals tracks an entity's metabolic and lifecycle state.
// Energy is in absolute units and never negative; an entity whose energy
// reaches zero is marked dead in the same step.
type Vitals struct {
	Energy        float64
	Age           int // days alive
	ReproCooldown int // days until reproduction is allowed again
	Alive         bool
}

// Lineage records identity and provenance. Parent IDs are provenance only;
// zero means no parent (founder).
type Lineage struct {
	ID       uint32
	ParentA  uint32
	ParentB  uint32
	BirthDay int
}
