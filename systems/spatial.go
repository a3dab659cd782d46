// Package systems provides the spatial index and food field the simulation
// core operates on.
package systems

import "github.com/mlange-42/ark/ecs"

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY int // Cell delta from the query origin
	DistSq int // Squared Euclidean distance in cells
}

// SpatialGrid is a cell-occupancy index over the bounded world grid. It holds
// no ownership: position -> entity back-references only, rebuilt at the start
// of each day so queries see the start-of-day world regardless of processing
// order within the day.
type SpatialGrid struct {
	width  int
	height int
	cells  [][]ecs.Entity // row-major, one bucket per cell
}

// NewSpatialGrid creates a grid with the given dimensions in cells.
func NewSpatialGrid(width, height int) *SpatialGrid {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &SpatialGrid{
		width:  width,
		height: height,
		cells:  make([][]ecs.Entity, width*height),
	}
}

// Width returns the grid width in cells.
func (g *SpatialGrid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *SpatialGrid) Height() int { return g.height }

// InBounds reports whether (x, y) lies on the grid.
func (g *SpatialGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Clamp forces (x, y) onto the grid. Movement clamps at the edges; there is
// no wrap-around.
func (g *SpatialGrid) Clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= g.width {
		x = g.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.height {
		y = g.height - 1
	}
	return x, y
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity at the given cell. Out-of-bounds positions are ignored.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	idx := y*g.width + x
	g.cells[idx] = append(g.cells[idx], e)
}

// MaxQueryResults caps the number of neighbors returned by spatial queries,
// so density spikes cannot cause unbounded work.
const MaxQueryResults = 128

// QueryRadiusInto finds entities within radius cells of (x, y) and appends
// them to dst (up to MaxQueryResults). Returns the updated slice; reuse dst
// across calls to avoid allocations. Scan order is row-major over the
// bounding square, which makes results deterministic for a given grid state.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius int, exclude ecs.Entity) []Neighbor {
	if radius < 0 {
		return dst
	}
	radiusSq := radius * radius

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			cx, cy := x+dx, y+dy
			if !g.InBounds(cx, cy) {
				continue
			}
			distSq := dx*dx + dy*dy
			if distSq > radiusSq {
				continue
			}
			for _, e := range g.cells[cy*g.width+cx] {
				if e == exclude {
					continue
				}
				dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
				if len(dst) >= MaxQueryResults {
					return dst
				}
			}
		}
	}
	return dst
}
