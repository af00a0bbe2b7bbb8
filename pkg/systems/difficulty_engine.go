package systems

import (
	"math"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/types"
)

// DefaultBaseSpawnInterval 第 1 波的生成间隔（秒）
const DefaultBaseSpawnInterval = 8.0

// DifficultyEngine 难度引擎
// 负责计算生成节奏和预算统计，为战斗场景的生成节拍器提供数据
type DifficultyEngine struct {
	baseInterval float64
}

// NewDifficultyEngine 创建难度引擎
// baseInterval <= 0 时使用 DefaultBaseSpawnInterval
func NewDifficultyEngine(baseInterval float64) *DifficultyEngine {
	if baseInterval <= 0 {
		baseInterval = DefaultBaseSpawnInterval
	}
	return &DifficultyEngine{baseInterval: baseInterval}
}

// SpawnInterval 计算生成阶段两个敌人之间的间隔
// 公式: interval = baseInterval / waveNumber^1.5
// 参数:
//
//	waveNumber - 当前波次（从1开始），小于 1 按 1 计算
//
// 返回:
//
//	间隔秒数，波次越大间隔越短
func (d *DifficultyEngine) SpawnInterval(waveNumber int) float64 {
	if waveNumber < 1 {
		waveNumber = 1
	}
	return d.baseInterval / math.Pow(float64(waveNumber), 1.5)
}

// TotalCost 计算一个生成序列的总花费
// 未配置的类型按 0 计
func (d *DifficultyEngine) TotalCost(enemyTypes []types.EnemyType, spawnConfigs map[types.EnemyType]config.SpawnConfig) int {
	total := 0
	for _, t := range enemyTypes {
		total += spawnConfigs[t].Cost
	}
	return total
}

// IsWithinBudget 生成序列是否满足"预算内或恰好达到最少数量"
// 参数:
//
//	enemyTypes - 解析出的生成序列
//	wave - 波次定义
//
// 返回:
//
//	true 如果总花费不超过 weight，或数量等于 minEnemyCount
func (d *DifficultyEngine) IsWithinBudget(enemyTypes []types.EnemyType, wave *config.WaveDefinition) bool {
	if wave == nil {
		return len(enemyTypes) == 0
	}
	if d.TotalCost(enemyTypes, wave.SpawnConfigs) <= wave.Weight {
		return true
	}
	return len(enemyTypes) == wave.MinEnemyCount
}
