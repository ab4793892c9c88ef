package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 用于按钮按压、提示气泡淡入淡出等 UI 动画。
//
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（提示气泡弹出）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（比 Cubic 更柔和，按钮下沉）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
