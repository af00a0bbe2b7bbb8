package components

import "github.com/decker502/robowaves/pkg/types"

// RobotComponent 普通敌人（机器人）数据
type RobotComponent struct {
	Type types.EnemyType
	// Row 所在车道（0-based）
	Row int
	// Col 生成列
	Col int
	// WaveNumber 所属波次（1-based）；调试生成的机器人为 0
	WaveNumber int
}

// IsDebug 是否为调试生成，不计入波次统计
func (r *RobotComponent) IsDebug() bool {
	return r.WaveNumber == 0
}
