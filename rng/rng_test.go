package rng

import "testing"

func TestDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		if af, bf := a.Float(), b.Float(); af != bf {
			t.Fatalf("draw %d: %v != %v", i, af, bf)
		}
		if ai, bi := a.Between(0, 1000), b.Between(0, 1000); ai != bi {
			t.Fatalf("draw %d: %d != %d", i, ai, bi)
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float() != b.Float() {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestBetweenInclusive(t *testing.T) {
	r := New(7)

	if got := r.Between(5, 5); got != 5 {
		t.Errorf("Between(5,5) = %d, want 5", got)
	}
	if got := r.Between(5, 3); got != 5 {
		t.Errorf("Between(5,3) = %d, want lo", got)
	}

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.Between(2, 4)
		if v < 2 || v > 4 {
			t.Fatalf("Between(2,4) = %d, out of range", v)
		}
		seen[v] = true
	}
	for v := 2; v <= 4; v++ {
		if !seen[v] {
			t.Errorf("Between(2,4) never produced %d", v)
		}
	}
}

func TestBool(t *testing.T) {
	r := New(7)

	for i := 0; i < 100; i++ {
		if r.Bool(0) {
			t.Fatal("Bool(0) returned true")
		}
		if !r.Bool(1) {
			t.Fatal("Bool(1) returned false")
		}
	}

	trues := 0
	for i := 0; i < 10000; i++ {
		if r.Bool(0.5) {
			trues++
		}
	}
	if trues < 4000 || trues > 6000 {
		t.Errorf("Bool(0.5) true rate %d/10000, want near 5000", trues)
	}
}

func TestJitter(t *testing.T) {
	r := New(7)

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.Jitter()
		if v < -1 || v > 1 {
			t.Fatalf("Jitter() = %d, out of range", v)
		}
		seen[v] = true
	}
	for v := -1; v <= 1; v++ {
		if !seen[v] {
			t.Errorf("Jitter() never produced %d", v)
		}
	}
}

func TestFloatBetween(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.FloatBetween(2.5, 7.5)
		if v < 2.5 || v >= 7.5 {
			t.Fatalf("FloatBetween(2.5, 7.5) = %v, out of range", v)
		}
	}
}
