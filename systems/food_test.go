package systems

import (
	"testing"

	"github.com/pthm-cable/evosim/rng"
)

func TestPlaceAt(t *testing.T) {
	f := NewFoodField(10, 10, 5, CapReject)

	if !f.PlaceAt(3, 4) {
		t.Fatal("placing on a free cell failed")
	}
	if f.PlaceAt(3, 4) {
		t.Error("placing on an occupied cell succeeded")
	}
	if !f.HasFoodAt(3, 4) {
		t.Error("placed item not found")
	}
	if f.Count() != 1 {
		t.Errorf("count = %d, want 1", f.Count())
	}
}

func TestPlaceAtCapacity(t *testing.T) {
	f := NewFoodField(10, 10, 2, CapReject)
	f.PlaceAt(0, 0)
	f.PlaceAt(1, 0)

	if f.PlaceAt(2, 0) {
		t.Error("placing above capacity succeeded")
	}
	if f.Count() != 2 {
		t.Errorf("count = %d, want 2", f.Count())
	}
}

func TestConsumeAt(t *testing.T) {
	f := NewFoodField(10, 10, 5, CapReject)
	f.PlaceAt(3, 4)

	if !f.ConsumeAt(3, 4) {
		t.Fatal("consuming existing item failed")
	}
	if f.HasFoodAt(3, 4) {
		t.Error("item still present after consumption")
	}
	if f.ConsumeAt(3, 4) {
		t.Error("consuming an empty cell succeeded")
	}
	if f.Count() != 0 {
		t.Errorf("count = %d, want 0", f.Count())
	}
}

func TestSpawnInitial(t *testing.T) {
	f := NewFoodField(20, 20, 100, CapReject)
	f.SpawnInitial(30, rng.New(1))

	if f.Count() != 30 {
		t.Errorf("count = %d, want 30", f.Count())
	}
	seen := make(map[FoodItem]bool)
	for _, it := range f.Positions() {
		if seen[it] {
			t.Errorf("duplicate item at (%d,%d)", it.X, it.Y)
		}
		seen[it] = true
		if it.X < 0 || it.X >= 20 || it.Y < 0 || it.Y >= 20 {
			t.Errorf("item at (%d,%d) off grid", it.X, it.Y)
		}
	}
}

func TestSpawnDailyRejectAtCap(t *testing.T) {
	f := NewFoodField(20, 20, 10, CapReject)
	f.SpawnInitial(10, rng.New(2))

	f.SpawnDaily(5, rng.New(3))
	if f.Count() != 10 {
		t.Errorf("count = %d, want cap of 10", f.Count())
	}
}

func TestSpawnDailyEvictOldest(t *testing.T) {
	f := NewFoodField(20, 20, 3, CapEvictOldest)
	f.PlaceAt(0, 0)
	f.PlaceAt(1, 0)
	f.PlaceAt(2, 0)

	f.SpawnDaily(1, rng.New(4))

	if f.Count() != 3 {
		t.Fatalf("count = %d, want 3", f.Count())
	}
	if f.HasFoodAt(0, 0) {
		t.Error("oldest item survived eviction")
	}
	if !f.HasFoodAt(1, 0) || !f.HasFoodAt(2, 0) {
		t.Error("newer items were evicted")
	}
}

func TestSpawnDailyEvictRandom(t *testing.T) {
	f := NewFoodField(20, 20, 3, CapEvictRandom)
	f.PlaceAt(0, 0)
	f.PlaceAt(1, 0)
	f.PlaceAt(2, 0)

	f.SpawnDaily(1, rng.New(5))

	if f.Count() != 3 {
		t.Errorf("count = %d, want 3", f.Count())
	}
}

func TestSpawnDailySaturatedGrid(t *testing.T) {
	// 2x2 grid, every cell occupied, capacity above cell count. Spawning must
	// give up silently instead of looping.
	f := NewFoodField(2, 2, 100, CapReject)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			f.PlaceAt(x, y)
		}
	}

	f.SpawnDaily(10, rng.New(6))
	if f.Count() != 4 {
		t.Errorf("count = %d, want 4", f.Count())
	}
}

func TestNearestWithin(t *testing.T) {
	f := NewFoodField(20, 20, 50, CapReject)
	f.PlaceAt(10, 13) // dist 3
	f.PlaceAt(12, 10) // dist 2
	f.PlaceAt(18, 18) // far away

	it, ok := f.NearestWithin(10, 10, 5)
	if !ok {
		t.Fatal("no item found")
	}
	if it.X != 12 || it.Y != 10 {
		t.Errorf("nearest = (%d,%d), want (12,10)", it.X, it.Y)
	}
}

func TestNearestWithinExcludesOwnCell(t *testing.T) {
	f := NewFoodField(20, 20, 50, CapReject)
	f.PlaceAt(10, 10)
	f.PlaceAt(11, 10)

	it, ok := f.NearestWithin(10, 10, 3)
	if !ok {
		t.Fatal("no item found")
	}
	if it.X == 10 && it.Y == 10 {
		t.Error("origin cell returned as nearest")
	}
	if it.X != 11 || it.Y != 10 {
		t.Errorf("nearest = (%d,%d), want (11,10)", it.X, it.Y)
	}
}

func TestNearestWithinRespectRadius(t *testing.T) {
	f := NewFoodField(20, 20, 50, CapReject)
	f.PlaceAt(15, 10) // dist 5

	if _, ok := f.NearestWithin(10, 10, 4); ok {
		t.Error("item beyond radius returned")
	}
	if _, ok := f.NearestWithin(10, 10, 5); !ok {
		t.Error("item exactly at radius missed")
	}
}

func TestNearestWithinEmpty(t *testing.T) {
	f := NewFoodField(20, 20, 50, CapReject)
	if _, ok := f.NearestWithin(10, 10, 5); ok {
		t.Error("found item on empty field")
	}
}

func TestEvictionOrderAfterConsumption(t *testing.T) {
	// Consuming a middle item must not disturb oldest-first ordering.
	f := NewFoodField(20, 20, 3, CapEvictOldest)
	f.PlaceAt(0, 0)
	f.PlaceAt(1, 0)
	f.PlaceAt(2, 0)

	f.ConsumeAt(1, 0)
	f.PlaceAt(3, 0)

	f.SpawnDaily(1, rng.New(7))
	if f.HasFoodAt(0, 0) {
		t.Error("oldest item (0,0) survived eviction")
	}
	if !f.HasFoodAt(2, 0) || !f.HasFoodAt(3, 0) {
		t.Error("newer items were evicted")
	}
}
