package systems

import (
	"testing"

	"github.com/decker502/robowaves/pkg/utils"
)

func TestLaneAllocatorShuffleBag(t *testing.T) {
	rng := &sequenceRandom{}
	la := NewLaneAllocator(5, rng)

	// 不打乱的随机源：按 0..4 循环
	for i := 0; i < 12; i++ {
		if got := la.Next(); got != i%5 {
			t.Errorf("call %d: expected lane %d, got %d", i, i%5, got)
		}
	}
	// 12 次调用跨越 3 轮
	if rng.shuffles != 3 {
		t.Errorf("Expected 3 shuffles, got %d", rng.shuffles)
	}
}

// TestLaneFairness 任意 5k 次连续调用（从轮首开始），每条车道恰好 k 次
func TestLaneFairness(t *testing.T) {
	la := NewLaneAllocator(5, utils.NewPRNG(12345))
	counts := make([]int, 5)

	for cycle := 0; cycle < 1000; cycle++ {
		seen := make([]bool, 5)
		for i := 0; i < 5; i++ {
			lane := la.Next()
			if lane < 0 || lane >= 5 {
				t.Fatalf("lane %d out of range", lane)
			}
			if seen[lane] {
				t.Fatalf("cycle %d: lane %d returned twice", cycle, lane)
			}
			seen[lane] = true
			counts[lane]++
		}
	}

	for lane, n := range counts {
		if n != 1000 {
			t.Errorf("lane %d: expected 1000 picks, got %d", lane, n)
		}
	}
}

func TestLaneAllocatorReset(t *testing.T) {
	la := NewLaneAllocator(5, utils.NewPRNG(3))
	la.Next()
	la.Next()

	la.Reset()

	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		seen[la.Next()] = true
	}
	if len(seen) != 5 {
		t.Errorf("Expected a full permutation after Reset, got %v", seen)
	}
}

func TestLaneAllocatorClampsLaneCount(t *testing.T) {
	la := NewLaneAllocator(0, nil)
	if la.LaneCount() != 1 {
		t.Fatalf("Expected lane count 1, got %d", la.LaneCount())
	}
	for i := 0; i < 3; i++ {
		if lane := la.Next(); lane != 0 {
			t.Errorf("Expected lane 0, got %d", lane)
		}
	}
}
