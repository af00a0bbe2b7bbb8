package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

type configMap = map[types.EnemyType]config.SpawnConfig

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		weight        int
		minEnemyCount int
		configs       configMap
		floats        []float64
		expected      []types.EnemyType
	}{
		{
			name:          "空配置",
			weight:        10,
			minEnemyCount: 5,
			configs:       configMap{},
			expected:      []types.EnemyType{},
		},
		{
			name:     "预算为 0 且无下限",
			weight:   0,
			configs:  configMap{types.EnemyStandard: {Cost: 2, Chance: 1}},
			expected: []types.EnemyType{},
		},
		{
			name:          "预算为 0 时强制补足下限",
			weight:        0,
			minEnemyCount: 3,
			configs:       configMap{types.EnemyStandard: {Cost: 2, Chance: 1}},
			expected:      []types.EnemyType{types.EnemyStandard, types.EnemyStandard, types.EnemyStandard},
		},
		{
			name:          "预算恰好用完",
			weight:        10,
			minEnemyCount: 1,
			configs:       configMap{types.EnemyStandard: {Cost: 2, Chance: 1}},
			expected: []types.EnemyType{
				types.EnemyStandard, types.EnemyStandard, types.EnemyStandard, types.EnemyStandard, types.EnemyStandard,
			},
		},
		{
			name:          "按权重交替抽取",
			weight:        10,
			minEnemyCount: 0,
			configs: configMap{
				types.EnemyFast:     {Cost: 3, Chance: 0.5},
				types.EnemyStandard: {Cost: 2, Chance: 0.5},
			},
			floats:   []float64{0.9, 0.1},
			expected: []types.EnemyType{types.EnemyStandard, types.EnemyFast, types.EnemyStandard, types.EnemyFast},
		},
		{
			name:          "预算不足时补最便宜类型",
			weight:        3,
			minEnemyCount: 4,
			configs: configMap{
				types.EnemyFast:  {Cost: 3, Chance: 1},
				types.EnemyTanky: {Cost: 5, Chance: 1},
			},
			expected: []types.EnemyType{types.EnemyFast, types.EnemyFast, types.EnemyFast, types.EnemyFast},
		},
		{
			name:   "chance 为 0 不参与抽取",
			weight: 3,
			configs: configMap{
				types.EnemyStandard: {Cost: 1, Chance: 0},
				types.EnemyFast:     {Cost: 1, Chance: 1},
			},
			expected: []types.EnemyType{types.EnemyFast, types.EnemyFast, types.EnemyFast},
		},
		{
			name:          "chance 全为 0 时仍满足下限",
			weight:        10,
			minEnemyCount: 2,
			configs: configMap{
				types.EnemyStandard: {Cost: 2, Chance: 0},
				types.EnemyTanky:    {Cost: 5, Chance: 0},
			},
			expected: []types.EnemyType{types.EnemyStandard, types.EnemyStandard},
		},
		{
			name:          "最便宜类型相同时按键名",
			minEnemyCount: 1,
			configs: configMap{
				types.EnemyStandard: {Cost: 2, Chance: 0},
				types.EnemyFast:     {Cost: 2, Chance: 0},
			},
			expected: []types.EnemyType{types.EnemyFast},
		},
		{
			name:   "忽略非正 cost",
			weight: 4,
			configs: configMap{
				types.EnemyStandard: {Cost: 0, Chance: 1},
				types.EnemyFast:     {Cost: 2, Chance: 1},
			},
			expected: []types.EnemyType{types.EnemyFast, types.EnemyFast},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewSpawnBudgetResolver(&sequenceRandom{floats: tt.floats})
			got := resolver.Resolve(tt.weight, tt.minEnemyCount, tt.configs)
			if got == nil {
				t.Fatal("Expected non-nil result")
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestResolveBudgetOrFloor 随机配置下：总花费不超过预算，或数量恰好等于下限
func TestResolveBudgetOrFloor(t *testing.T) {
	gen := utils.NewPRNG(20240601)
	resolver := NewSpawnBudgetResolver(utils.NewPRNG(7))
	engine := NewDifficultyEngine(0)
	allTypes := []types.EnemyType{
		types.EnemyStandard, types.EnemyFast, types.EnemyTanky, types.EnemyGiant, types.EnemyMini,
	}

	for i := 0; i < 2000; i++ {
		configs := configMap{}
		for _, et := range allTypes {
			if gen.Intn(2) == 0 {
				continue
			}
			configs[et] = config.SpawnConfig{
				Cost:   gen.Intn(12) + 1,
				Chance: float64(gen.Intn(5)) / 4,
			}
		}
		weight := gen.Intn(40)
		minEnemyCount := gen.Intn(8)

		got := resolver.Resolve(weight, minEnemyCount, configs)

		if len(configs) == 0 {
			if len(got) != 0 {
				t.Fatalf("case %d: expected empty list for empty configs, got %v", i, got)
			}
			continue
		}

		cost := engine.TotalCost(got, configs)
		if cost > weight && len(got) != minEnemyCount {
			t.Fatalf("case %d: cost %d exceeds weight %d and count %d != min %d (%v)",
				i, cost, weight, len(got), minEnemyCount, got)
		}
		if len(got) < minEnemyCount {
			t.Fatalf("case %d: expected at least %d enemies, got %d", i, minEnemyCount, len(got))
		}
	}
}

func TestResolveReproducibleWithSeed(t *testing.T) {
	configs := configMap{
		types.EnemyStandard: {Cost: 2, Chance: 0.5},
		types.EnemyFast:     {Cost: 3, Chance: 0.3},
		types.EnemyTanky:    {Cost: 5, Chance: 0.2},
	}

	a := NewSpawnBudgetResolver(utils.NewPRNG(99)).Resolve(30, 3, configs)
	b := NewSpawnBudgetResolver(utils.NewPRNG(99)).Resolve(30, 3, configs)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Expected identical lists for the same seed, got %v and %v", a, b)
	}
}
