package utils

import (
	"math/rand"
	"time"
)

// RandomSource 随机数来源
// 波次预算选择与行分配都通过该接口取随机数，测试中可注入确定性实现
type RandomSource interface {
	// Float64 返回 [0.0, 1.0) 区间内的随机数
	Float64() float64
	// Intn 返回 [0, n) 区间内的随机整数
	Intn(n int) int
	// Shuffle 随机打乱 n 个元素，swap 交换下标 i 和 j
	Shuffle(n int, swap func(i, j int))
}

// PRNG 基于 math/rand 的可设种子随机数生成器
type PRNG struct {
	seed int64
	rng  *rand.Rand
}

// NewPRNG 创建随机数生成器
// 如果 seed 为 0，使用当前时间作为种子
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed 返回实际使用的种子（便于复现）
func (p *PRNG) Seed() int64 {
	return p.seed
}

// Float64 返回 [0.0, 1.0) 区间内的随机数
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

// Intn 返回 [0, n) 区间内的随机整数
func (p *PRNG) Intn(n int) int {
	return p.rng.Intn(n)
}

// Shuffle 随机打乱 n 个元素
func (p *PRNG) Shuffle(n int, swap func(i, j int)) {
	p.rng.Shuffle(n, swap)
}
