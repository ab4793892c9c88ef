package components

import "github.com/decker502/valentine/pkg/utils"

// ButtonComponent 按钮组件
// 纯数据：按钮区域、文字和当前交互状态（由 ButtonInputSystem 写入）
type ButtonComponent struct {
	// Bounds 按钮区域（屏幕坐标）
	Bounds utils.Rect
	// Label 按钮上显示的文字
	Label string

	// Hovered 指针是否在按钮上（仅鼠标）
	Hovered bool
	// Pressed 按钮是否被按住
	Pressed bool
	// PressDepth 按下动画进度 0-1（渲染用）
	PressDepth float64
}

// ToastComponent 点击后短暂显示的提示
type ToastComponent struct {
	Message     string
	DurationMs  float64 // 总显示时长
	RemainingMs float64 // 剩余时长（<= 0 表示不显示）
}

// Visible 提示是否正在显示
func (t *ToastComponent) Visible() bool {
	return t.RemainingMs > 0
}

// Progress 已显示时长占比 0-1
func (t *ToastComponent) Progress() float64 {
	if t.DurationMs <= 0 {
		return 1
	}
	return utils.Clamp01(1 - t.RemainingMs/t.DurationMs)
}
