package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
)

type marker struct{}

func mintEntities(n int) []ecs.Entity {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[marker](world)
	out := make([]ecs.Entity, n)
	for i := range out {
		var m marker
		out[i] = mapper.NewEntity(&m)
	}
	return out
}

func TestSpatialGridClamp(t *testing.T) {
	g := NewSpatialGrid(10, 8)

	tests := []struct {
		x, y         int
		wantX, wantY int
	}{
		{5, 4, 5, 4},
		{-3, 4, 0, 4},
		{5, -1, 5, 0},
		{10, 8, 9, 7},
		{100, -100, 9, 0},
		{0, 0, 0, 0},
		{9, 7, 9, 7},
	}
	for _, tt := range tests {
		x, y := g.Clamp(tt.x, tt.y)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("Clamp(%d,%d) = (%d,%d), want (%d,%d)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestSpatialGridInBounds(t *testing.T) {
	g := NewSpatialGrid(10, 8)

	if !g.InBounds(0, 0) || !g.InBounds(9, 7) {
		t.Error("corners should be in bounds")
	}
	if g.InBounds(10, 0) || g.InBounds(0, 8) || g.InBounds(-1, 0) {
		t.Error("out-of-grid positions reported in bounds")
	}
}

func TestQueryRadius(t *testing.T) {
	g := NewSpatialGrid(20, 20)
	ents := mintEntities(4)

	g.Insert(ents[0], 10, 10)
	g.Insert(ents[1], 12, 10) // dist 2
	g.Insert(ents[2], 10, 13) // dist 3, outside radius 2
	g.Insert(ents[3], 11, 11) // dist sqrt(2)

	found := g.QueryRadiusInto(nil, 10, 10, 2, ents[0])

	if len(found) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(found))
	}
	for _, n := range found {
		if n.E == ents[0] {
			t.Error("excluded entity returned")
		}
		if n.E == ents[2] {
			t.Error("entity beyond radius returned")
		}
		if n.DistSq > 4 {
			t.Errorf("neighbor DistSq %d exceeds radius squared", n.DistSq)
		}
	}
}

func TestQueryRadiusDeltas(t *testing.T) {
	g := NewSpatialGrid(20, 20)
	ents := mintEntities(1)
	g.Insert(ents[0], 7, 12)

	found := g.QueryRadiusInto(nil, 5, 10, 3, ecs.Entity{})
	if len(found) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(found))
	}
	n := found[0]
	if n.DX != 2 || n.DY != 2 || n.DistSq != 8 {
		t.Errorf("neighbor = {DX:%d DY:%d DistSq:%d}, want {2 2 8}", n.DX, n.DY, n.DistSq)
	}
}

func TestQueryRadiusDeterministicOrder(t *testing.T) {
	g := NewSpatialGrid(20, 20)
	ents := mintEntities(3)
	g.Insert(ents[0], 6, 4)
	g.Insert(ents[1], 4, 6)
	g.Insert(ents[2], 5, 5)

	a := g.QueryRadiusInto(nil, 5, 5, 2, ecs.Entity{})
	b := g.QueryRadiusInto(nil, 5, 5, 2, ecs.Entity{})
	if len(a) != len(b) {
		t.Fatalf("result lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("result %d differs between identical queries", i)
		}
	}
	// Row-major scan: (6,4) comes before (4,6)
	if a[0].E != ents[0] {
		t.Error("scan order is not row-major")
	}
}

func TestQueryRadiusCapped(t *testing.T) {
	g := NewSpatialGrid(20, 20)
	ents := mintEntities(MaxQueryResults + 50)
	for _, e := range ents {
		g.Insert(e, 10, 10)
	}

	found := g.QueryRadiusInto(nil, 10, 10, 1, ecs.Entity{})
	if len(found) != MaxQueryResults {
		t.Errorf("got %d neighbors, want cap of %d", len(found), MaxQueryResults)
	}
}

func TestInsertOutOfBoundsIgnored(t *testing.T) {
	g := NewSpatialGrid(5, 5)
	ents := mintEntities(1)
	g.Insert(ents[0], -1, 2)
	g.Insert(ents[0], 2, 5)

	found := g.QueryRadiusInto(nil, 2, 2, 5, ecs.Entity{})
	if len(found) != 0 {
		t.Errorf("out-of-bounds inserts should be dropped, found %d", len(found))
	}
}

func TestClear(t *testing.T) {
	g := NewSpatialGrid(5, 5)
	ents := mintEntities(2)
	g.Insert(ents[0], 1, 1)
	g.Insert(ents[1], 3, 3)

	g.Clear()
	if found := g.QueryRadiusInto(nil, 2, 2, 4, ecs.Entity{}); len(found) != 0 {
		t.Errorf("grid not empty after Clear: %d entities", len(found))
	}
}
