package utils

import "testing"

func TestPRNGSameSeedSameSequence(t *testing.T) {
	a := NewPRNG(42)
	b := NewPRNG(42)

	for i := 0; i < 20; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("Step %d: expected identical sequences, got %d and %d", i, x, y)
		}
	}
}

func TestPRNGZeroSeedUsesClock(t *testing.T) {
	p := NewPRNG(0)
	if p.Seed() == 0 {
		t.Error("Expected non-zero seed when 0 is passed")
	}
}

func TestPRNGFloat64Range(t *testing.T) {
	p := NewPRNG(7)
	for i := 0; i < 1000; i++ {
		v := p.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of range: %f", v)
		}
	}
}

func TestPRNGShuffleKeepsElements(t *testing.T) {
	p := NewPRNG(3)
	items := []int{0, 1, 2, 3, 4}
	p.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("Expected 5 distinct elements after shuffle, got %v", items)
	}
}
