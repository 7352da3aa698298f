package puzzle

import "testing"

func TestRandNext_FirstDraw(t *testing.T) {
	// First draw from seed 1: state = (1*9301 + 49297) % 233280 = 58598.
	r := NewRand(1)
	want := 58598.0 / 233280.0
	if got := r.Next(); got != want {
		t.Errorf("Next() = %v, want %v", got, want)
	}
}

func TestRandNext_Range(t *testing.T) {
	r := NewRand(987654321)
	for i := 0; i < 10000; i++ {
		v := r.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d: Next() = %v, want [0, 1)", i, v)
		}
	}
}

func TestRandNext_Deterministic(t *testing.T) {
	a := NewRand(424242)
	b := NewRand(424242)
	for i := 0; i < 1000; i++ {
		if av, bv := a.Next(), b.Next(); av != bv {
			t.Fatalf("draw %d diverged: %v != %v", i, av, bv)
		}
	}
}

func TestRandNextInt_Bounds(t *testing.T) {
	r := NewRand(7)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		v := r.NextInt(0, 3)
		if v < 0 || v > 3 {
			t.Fatalf("NextInt(0,3) = %d, out of range", v)
		}
		seen[v] = true
	}
	// Both bounds are inclusive and should be hit over 5000 draws.
	for want := 0; want <= 3; want++ {
		if !seen[want] {
			t.Errorf("NextInt(0,3) never produced %d", want)
		}
	}
}

func TestRandShuffle_Permutation(t *testing.T) {
	in := []int{1, 2, 3, 4}
	out := NewRand(99).Shuffle(in)

	if len(out) != len(in) {
		t.Fatalf("Shuffle returned %d elements, want %d", len(out), len(in))
	}
	counts := map[int]int{}
	for _, v := range out {
		counts[v]++
	}
	for _, v := range in {
		if counts[v] != 1 {
			t.Errorf("element %d appears %d times, want 1", v, counts[v])
		}
	}
}

func TestRandShuffle_DoesNotMutateInput(t *testing.T) {
	in := []int{1, 2, 3, 4}
	NewRand(99).Shuffle(in)
	for i, want := range []int{1, 2, 3, 4} {
		if in[i] != want {
			t.Fatalf("input mutated: %v", in)
		}
	}
}

func TestRandShuffle_Deterministic(t *testing.T) {
	a := NewRand(1234).Shuffle([]int{1, 2, 3, 4})
	b := NewRand(1234).Shuffle([]int{1, 2, 3, 4})
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed shuffled differently: %v vs %v", a, b)
		}
	}
}
