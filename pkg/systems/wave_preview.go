package systems

import (
	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

// PreviewAllWaves 预先解析关卡所有波次的生成序列
//
// 参数：
//   - level: 关卡定义，nil 返回空结果
//   - rng: 随机源，使用与调度器相同种子可得到相同序列
//
// 返回：
//   - map[int][]types.EnemyType: 波次号（从 1 开始）-> 生成序列
func PreviewAllWaves(level *config.LevelDefinition, rng utils.RandomSource) map[int][]types.EnemyType {
	preview := make(map[int][]types.EnemyType, level.WaveCount())
	if level == nil {
		return preview
	}

	resolver := NewSpawnBudgetResolver(rng)
	for i, wave := range level.Waves {
		preview[i+1] = resolver.Resolve(wave.Weight, wave.MinEnemyCount, wave.SpawnConfigs)
	}
	return preview
}

// CountByType 统计生成序列中各类型的数量
func CountByType(enemyTypes []types.EnemyType) map[types.EnemyType]int {
	counts := make(map[types.EnemyType]int)
	for _, t := range enemyTypes {
		counts[t]++
	}
	return counts
}
