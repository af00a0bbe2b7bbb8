package systems

import "github.com/decker502/robowaves/pkg/types"

// BossQueue 关卡 -> 终局 Boss 的静态映射
// 构造后不可变；每个关卡至多一个 Boss
type BossQueue struct {
	bosses map[string]types.BossType
}

// NewBossQueue 根据映射创建 BossQueue
// 映射会被复制，空的 Boss 类型被忽略
func NewBossQueue(bosses map[string]types.BossType) *BossQueue {
	copied := make(map[string]types.BossType, len(bosses))
	for levelKey, boss := range bosses {
		if boss != "" {
			copied[levelKey] = boss
		}
	}
	return &BossQueue{bosses: copied}
}

// DefaultBossQueue 返回内置的关卡 Boss 配置
func DefaultBossQueue() *BossQueue {
	return NewBossQueue(map[string]types.BossType{
		"levelTwo":  types.BossScrapTitan,
		"levelFour": types.BossSamuraiBot,
		"levelFive": types.BossGunBot,
	})
}

// BossFor 返回关卡的终局 Boss
// 关卡没有 Boss 时返回 ("", false)；nil 队列视为空
func (q *BossQueue) BossFor(levelKey string) (types.BossType, bool) {
	if q == nil {
		return "", false
	}
	boss, ok := q.bosses[levelKey]
	return boss, ok
}

// Len 返回登记了 Boss 的关卡数量
func (q *BossQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.bosses)
}
