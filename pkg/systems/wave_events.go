package systems

import (
	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/types"
)

// LevelConfigProvider 关卡配置提供者
// 未知关卡返回 (nil, false)，调度器退化为空关卡
type LevelConfigProvider interface {
	GetLevelConfig(levelKey string) (*config.LevelDefinition, bool)
}

// EnemySpawner 敌人生成回调
// 由战斗场景实现，负责创建、定位和渲染实体
type EnemySpawner interface {
	// SpawnRobot 在 (col, row) 生成一个普通机器人
	SpawnRobot(col, row int, enemyType types.EnemyType)
	// SpawnBoss 在 row 行生成 Boss
	SpawnBoss(row int, bossType types.BossType)
}

// WaveEventListener 波次事件监听器
// 事件在状态转换时同步触发，顺序固定：
// OnWaveChanged -> OnPreparationPhaseStarted -> (准备时间结束) OnWaveStarted
type WaveEventListener interface {
	OnPreparationPhaseStarted(waveNumber int)
	OnWaveChanged(waveNumber int)
	OnWaveStarted(waveNumber int)
}

// NopWaveEventListener 空实现，可嵌入只关心部分事件的监听器
type NopWaveEventListener struct{}

func (NopWaveEventListener) OnPreparationPhaseStarted(int) {}
func (NopWaveEventListener) OnWaveChanged(int) {}
func (NopWaveEventListener) OnWaveStarted(int) {}
