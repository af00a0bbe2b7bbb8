package systems

import (
	"sort"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

// SpawnBudgetResolver 波次预算解析器
//
// 根据波次预算（weight）、最少数量（minEnemyCount）和各类型的生成参数，
// 计算本波要生成的敌人类型序列：
//   - 每次在"买得起且 chance > 0"的类型中按 chance 加权随机抽取一个，扣除其 cost
//   - 没有可抽取的类型时停止
//   - 数量不足 minEnemyCount 时，强制补充全局最便宜的类型（不受预算限制）
//
// 类型按键名排序后遍历，相同随机序列得到相同结果
type SpawnBudgetResolver struct {
	rng utils.RandomSource
}

// NewSpawnBudgetResolver 创建预算解析器
// rng 为 nil 时使用以当前时间为种子的随机源
func NewSpawnBudgetResolver(rng utils.RandomSource) *SpawnBudgetResolver {
	if rng == nil {
		rng = utils.NewPRNG(0)
	}
	return &SpawnBudgetResolver{rng: rng}
}

// Resolve 解析一个波次的生成序列
//
// 参数：
//   - weight: 本波预算
//   - minEnemyCount: 最少生成数量
//   - spawnConfigs: 敌人类型 -> 生成参数
//
// 返回：
//   - []types.EnemyType: 有序的生成序列；spawnConfigs 为空时返回空列表
func (r *SpawnBudgetResolver) Resolve(weight, minEnemyCount int, spawnConfigs map[types.EnemyType]config.SpawnConfig) []types.EnemyType {
	keys := sortedSpawnKeys(spawnConfigs)
	if len(keys) == 0 {
		return []types.EnemyType{}
	}

	result := make([]types.EnemyType, 0, minEnemyCount)
	remaining := weight

	for {
		drawable := drawableTypes(keys, spawnConfigs, remaining)
		if len(drawable) == 0 {
			break
		}
		picked := r.pickWeighted(drawable, spawnConfigs)
		result = append(result, picked)
		remaining -= spawnConfigs[picked].Cost
	}

	if len(result) < minEnemyCount {
		cheapest := cheapestType(keys, spawnConfigs)
		for len(result) < minEnemyCount {
			result = append(result, cheapest)
		}
	}

	return result
}

// pickWeighted 按 chance 加权随机选择
// candidates 非空且每个 chance > 0
func (r *SpawnBudgetResolver) pickWeighted(candidates []types.EnemyType, spawnConfigs map[types.EnemyType]config.SpawnConfig) types.EnemyType {
	total := 0.0
	for _, t := range candidates {
		total += spawnConfigs[t].Chance
	}

	roll := r.rng.Float64() * total
	cumulative := 0.0
	for _, t := range candidates {
		cumulative += spawnConfigs[t].Chance
		if roll < cumulative {
			return t
		}
	}
	// 浮点累加误差
	return candidates[len(candidates)-1]
}

// sortedSpawnKeys 返回 cost > 0 的类型，按键名排序
func sortedSpawnKeys(spawnConfigs map[types.EnemyType]config.SpawnConfig) []types.EnemyType {
	keys := make([]types.EnemyType, 0, len(spawnConfigs))
	for t, cfg := range spawnConfigs {
		if cfg.Cost > 0 {
			keys = append(keys, t)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// drawableTypes 返回买得起且 chance > 0 的类型
func drawableTypes(keys []types.EnemyType, spawnConfigs map[types.EnemyType]config.SpawnConfig, budget int) []types.EnemyType {
	drawable := make([]types.EnemyType, 0, len(keys))
	for _, t := range keys {
		cfg := spawnConfigs[t]
		if cfg.Cost <= budget && cfg.Chance > 0 {
			drawable = append(drawable, t)
		}
	}
	return drawable
}

// cheapestType 返回 cost 最低的类型，cost 相同时取键名靠前的
func cheapestType(keys []types.EnemyType, spawnConfigs map[types.EnemyType]config.SpawnConfig) types.EnemyType {
	cheapest := keys[0]
	for _, t := range keys[1:] {
		if spawnConfigs[t].Cost < spawnConfigs[cheapest].Cost {
			cheapest = t
		}
	}
	return cheapest
}
