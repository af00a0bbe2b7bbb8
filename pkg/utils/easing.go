package utils

import "math"

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]
// 超出范围的输入先截断

// Clamp01 将 t 截断到 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FadeAlpha 计算倒计时提示的透明度
//
// 参数:
//   - remaining: 剩余显示时间（秒）
//   - fadeTime: 结束前的淡出时长（秒）
//
// 返回: 剩余时间大于 fadeTime 时为 1，之后按 EaseOutCubic 降到 0
func FadeAlpha(remaining, fadeTime float64) float64 {
	if remaining <= 0 {
		return 0
	}
	if fadeTime <= 0 || remaining >= fadeTime {
		return 1
	}
	return EaseOutCubic(remaining / fadeTime)
}
