package components

import "github.com/decker502/robowaves/pkg/types"

// BossComponent 关卡 Boss 数据
// 每个关卡最多存在一个 Boss
type BossComponent struct {
	Type types.BossType
	Row  int
	// LevelKey 所属关卡
	LevelKey string
}
