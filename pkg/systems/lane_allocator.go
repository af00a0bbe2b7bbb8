package systems

import (
	"github.com/decker502/robowaves/pkg/utils"
)

// DefaultLaneCount 默认车道数
const DefaultLaneCount = 5

// LaneAllocator 车道分配器
//
// 使用"洗牌袋"算法：每一轮把 [0, laneCount) 随机排列后依次发放，
// 发完后重新洗牌。任意完整一轮中每条车道恰好出现一次。
// 跨轮不保证不重复（新一轮的第一个可能等于上一轮的最后一个）
type LaneAllocator struct {
	laneCount int
	rng       utils.RandomSource

	bag    []int
	cursor int
}

// NewLaneAllocator 创建车道分配器
//
// 参数:
//   - laneCount: 车道数，小于 1 时按 1 处理
//   - rng: 随机源，为 nil 时使用以当前时间为种子的随机源
func NewLaneAllocator(laneCount int, rng utils.RandomSource) *LaneAllocator {
	if laneCount < 1 {
		laneCount = 1
	}
	if rng == nil {
		rng = utils.NewPRNG(0)
	}
	return &LaneAllocator{
		laneCount: laneCount,
		rng:       rng,
		bag:       make([]int, laneCount),
		cursor:    laneCount, // 首次调用 Next 时洗牌
	}
}

// Next 返回下一条车道，范围 [0, laneCount)
func (la *LaneAllocator) Next() int {
	if la.cursor >= la.laneCount {
		la.refill()
	}
	lane := la.bag[la.cursor]
	la.cursor++
	return lane
}

// Reset 丢弃当前一轮，下次调用 Next 时重新洗牌
func (la *LaneAllocator) Reset() {
	la.cursor = la.laneCount
}

// LaneCount 返回车道数
func (la *LaneAllocator) LaneCount() int {
	return la.laneCount
}

// refill 生成新的随机排列
func (la *LaneAllocator) refill() {
	for i := range la.bag {
		la.bag[i] = i
	}
	la.rng.Shuffle(la.laneCount, func(i, j int) {
		la.bag[i], la.bag[j] = la.bag[j], la.bag[i]
	})
	la.cursor = 0
}
