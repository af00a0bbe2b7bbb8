package entities

import (
	"fmt"

	"github.com/decker502/robowaves/pkg/components"
	"github.com/decker502/robowaves/pkg/ecs"
	"github.com/decker502/robowaves/pkg/types"
)

const (
	// DefaultRobotLifetime 未登记类型的机器人存活时间（秒）
	DefaultRobotLifetime = 6.0

	// DefaultBossLifetime 未登记类型的 Boss 存活时间（秒）
	DefaultBossLifetime = 20.0
)

// robotLifetimes 各类机器人在演示场景中的存活时间（秒）
// 越耐打的机器人存活越久，近似不同的击杀耗时
var robotLifetimes = map[types.EnemyType]float64{
	types.EnemyStandard:   6.0,
	types.EnemyFast:       3.5,
	types.EnemyTanky:      11.0,
	types.EnemyBungee:     5.0,
	types.EnemyTeleport:   4.5,
	types.EnemyGunner:     7.0,
	types.EnemyBomber:     6.5,
	types.EnemyGiant:      14.0,
	types.EnemyMini:       2.5,
	types.EnemyJumper:     5.5,
	types.EnemyBalloonBot: 8.0,
}

// bossLifetimes 各 Boss 的存活时间（秒）
var bossLifetimes = map[types.BossType]float64{
	types.BossScrapTitan: 18.0,
	types.BossSamuraiBot: 22.0,
	types.BossGunBot:     26.0,
}

// RobotLifetime 返回指定机器人类型的存活时间
func RobotLifetime(enemyType types.EnemyType) float64 {
	if lifetime, ok := robotLifetimes[enemyType]; ok {
		return lifetime
	}
	return DefaultRobotLifetime
}

// BossLifetime 返回指定 Boss 类型的存活时间
func BossLifetime(bossType types.BossType) float64 {
	if lifetime, ok := bossLifetimes[bossType]; ok {
		return lifetime
	}
	return DefaultBossLifetime
}

// NewRobotEntity 创建机器人实体
//
// 参数:
//   - em: 实体管理器
//   - enemyType: 机器人类型
//   - row: 车道索引（0-based）
//   - col: 生成列
//   - waveNumber: 所属波次，0 表示调试生成
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 参数无效时返回错误
func NewRobotEntity(em *ecs.EntityManager, enemyType types.EnemyType, row, col, waveNumber int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if enemyType == "" {
		return 0, fmt.Errorf("enemy type cannot be empty")
	}
	if row < 0 {
		return 0, fmt.Errorf("invalid row %d", row)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.RobotComponent{
		Type:       enemyType,
		Row:        row,
		Col:        col,
		WaveNumber: waveNumber,
	})
	ecs.AddComponent(em, entityID, &components.LifetimeComponent{
		MaxLifetime: RobotLifetime(enemyType),
	})

	return entityID, nil
}

// NewBossEntity 创建 Boss 实体
func NewBossEntity(em *ecs.EntityManager, bossType types.BossType, row int, levelKey string) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if bossType == "" {
		return 0, fmt.Errorf("boss type cannot be empty")
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.BossComponent{
		Type:     bossType,
		Row:      row,
		LevelKey: levelKey,
	})
	ecs.AddComponent(em, entityID, &components.LifetimeComponent{
		MaxLifetime: BossLifetime(bossType),
	})

	return entityID, nil
}
