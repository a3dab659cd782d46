package systems

import (
	"github.com/pthm-cable/evosim/rng"
)

// CapPolicy selects what SpawnDaily does when the field is at capacity.
type CapPolicy string

const (
	// CapReject makes spawning a silent no-op at capacity.
	CapReject CapPolicy = "reject"
	// CapEvictOldest replaces the oldest item when at capacity.
	CapEvictOldest CapPolicy = "evict_oldest"
	// CapEvictRandom replaces a random item when at capacity.
	CapEvictRandom CapPolicy = "evict_random"
)

// FoodItem is one food item at a grid cell. At most one item per cell.
type FoodItem struct {
	X, Y int
}

// placementAttempts bounds the random free-cell search per spawned item.
// Matches the behavior of giving up silently when the grid is saturated.
const placementAttempts = 10

// FoodField manages the food item lifecycle: spawning, consumption, and the
// capacity cap. Items are kept in insertion order so oldest-first eviction is
// well defined, with a cell index for O(1) lookup.
type FoodField struct {
	width, height int
	capacity      int
	policy        CapPolicy

	items []FoodItem       // insertion order
	index map[FoodItem]int // position -> slice index
}

// NewFoodField creates an empty food field over a width x height grid.
func NewFoodField(width, height, capacity int, policy CapPolicy) *FoodField {
	return &FoodField{
		width:    width,
		height:   height,
		capacity: capacity,
		policy:   policy,
		index:    make(map[FoodItem]int),
	}
}

// Count returns the number of food items on the field.
func (f *FoodField) Count() int { return len(f.items) }

// Positions returns a copy of all item positions in spawn order.
func (f *FoodField) Positions() []FoodItem {
	out := make([]FoodItem, len(f.items))
	copy(out, f.items)
	return out
}

// HasFoodAt reports whether a food item exists at (x, y).
func (f *FoodField) HasFoodAt(x, y int) bool {
	_, ok := f.index[FoodItem{X: x, Y: y}]
	return ok
}

// PlaceAt puts a food item at (x, y) if the cell is free and the field is
// below capacity. Returns whether an item was placed.
func (f *FoodField) PlaceAt(x, y int) bool {
	if len(f.items) >= f.capacity {
		return false
	}
	it := FoodItem{X: x, Y: y}
	if _, occupied := f.index[it]; occupied {
		return false
	}
	f.index[it] = len(f.items)
	f.items = append(f.items, it)
	return true
}

// ConsumeAt removes the item at (x, y) and reports whether one existed.
func (f *FoodField) ConsumeAt(x, y int) bool {
	i, ok := f.index[FoodItem{X: x, Y: y}]
	if !ok {
		return false
	}
	f.removeAt(i)
	return true
}

// SpawnInitial places n items at random food-free cells. Placement that
// cannot find a free cell stops silently.
func (f *FoodField) SpawnInitial(n int, r *rng.RNG) {
	for i := 0; i < n; i++ {
		f.spawnOne(r)
	}
}

// SpawnDaily adds up to rate new items, honoring the capacity cap and the
// configured cap policy. Never an error: saturation and cap hits are no-ops.
func (f *FoodField) SpawnDaily(rate int, r *rng.RNG) {
	for i := 0; i < rate; i++ {
		if len(f.items) >= f.capacity {
			switch f.policy {
			case CapEvictOldest:
				if len(f.items) == 0 {
					return
				}
				f.removeAt(0)
			case CapEvictRandom:
				if len(f.items) == 0 {
					return
				}
				f.removeAt(r.Between(0, len(f.items)-1))
			default: // CapReject
				return
			}
		}
		f.spawnOne(r)
	}
}

// spawnOne tries a bounded number of random cells for a free spot. Returns
// whether an item was placed; a saturated grid simply fails silently.
func (f *FoodField) spawnOne(r *rng.RNG) bool {
	if len(f.items) >= f.capacity {
		return false
	}
	for attempt := 0; attempt < placementAttempts; attempt++ {
		x := r.Between(0, f.width-1)
		y := r.Between(0, f.height-1)
		if f.PlaceAt(x, y) {
			return true
		}
	}
	return false
}

// NearestWithin returns the closest item within radius cells of (x, y) by
// squared Euclidean distance, excluding the origin cell itself. Ties break
// by row-major scan order, keeping perception deterministic.
func (f *FoodField) NearestWithin(x, y, radius int) (FoodItem, bool) {
	var best FoodItem
	bestDistSq := radius*radius + 1
	found := false

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			cx, cy := x+dx, y+dy
			if cx < 0 || cx >= f.width || cy < 0 || cy >= f.height {
				continue
			}
			distSq := dx*dx + dy*dy
			if distSq >= bestDistSq || distSq > radius*radius {
				continue
			}
			if f.HasFoodAt(cx, cy) {
				best = FoodItem{X: cx, Y: cy}
				bestDistSq = distSq
				found = true
			}
		}
	}
	return best, found
}

// removeAt deletes the item at slice index i, preserving insertion order so
// index 0 stays the oldest item.
func (f *FoodField) removeAt(i int) {
	delete(f.index, f.items[i])
	copy(f.items[i:], f.items[i+1:])
	f.items = f.items[:len(f.items)-1]
	for j := i; j < len(f.items); j++ {
		f.index[f.items[j]] = j
	}
}
