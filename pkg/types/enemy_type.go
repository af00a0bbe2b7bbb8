// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// EnemyType 敌方机器人类型
// 取值即关卡配置中 spawnConfigs 的键名
type EnemyType string

const (
	EnemyStandard   EnemyType = "standard" // 标准机器人
	EnemyFast       EnemyType = "fast"     // 快速机器人
	EnemyTanky      EnemyType = "tanky"    // 重装机器人
	EnemyBungee     EnemyType = "bungee"   // 蹦极机器人
	EnemyTeleport   EnemyType = "teleport" // 传送机器人
	EnemyGunner     EnemyType = "gunner"   // 射手机器人
	EnemyBomber     EnemyType = "bomber"   // 自爆机器人
	EnemyGiant      EnemyType = "giant"    // 巨型机器人
	EnemyMini       EnemyType = "mini"     // 迷你机器人
	EnemyJumper     EnemyType = "jumper"   // 跳跃机器人
	EnemyBalloonBot EnemyType = "balloon"  // 气球机器人
)

// knownEnemyTypes 所有已知的敌人类型
var knownEnemyTypes = map[EnemyType]bool{
	EnemyStandard:   true,
	EnemyFast:       true,
	EnemyTanky:      true,
	EnemyBungee:     true,
	EnemyTeleport:   true,
	EnemyGunner:     true,
	EnemyBomber:     true,
	EnemyGiant:      true,
	EnemyMini:       true,
	EnemyJumper:     true,
	EnemyBalloonBot: true,
}

// String 返回敌人类型的配置字符串
func (e EnemyType) String() string {
	return string(e)
}

// IsKnown 检查是否为已注册的敌人类型
func (e EnemyType) IsKnown() bool {
	return knownEnemyTypes[e]
}

// ParseEnemyType 将配置字符串解析为 EnemyType
//
// 参数：
//   - s: 配置中的类型字符串，如 "standard"
//
// 返回：
//   - EnemyType: 解析后的类型
//   - error: 未知类型时返回错误
func ParseEnemyType(s string) (EnemyType, error) {
	e := EnemyType(s)
	if !e.IsKnown() {
		return "", fmt.Errorf("unknown enemy type %q", s)
	}
	return e, nil
}
