// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSnapshot 存储当前帧的指针状态
// 用于统一处理鼠标和触摸输入
type PointerSnapshot struct {
	// Down 鼠标左键按下或有活动的触摸
	Down bool
	// X, Y 指针位置（触摸释放后保留最后一次触摸位置）
	X, Y int
	// IsTouch 本帧的状态来自触摸（触摸没有悬停概念）
	IsTouch bool
}

// PointerReader 每帧读取一次指针状态
// 需要跨帧记住最后的触摸位置，因为触摸释放的那一帧已经拿不到坐标
type PointerReader struct {
	lastTouchX, lastTouchY int
	wasTouching            bool
}

// Read 获取当前帧的指针状态，优先检测触摸
func (r *PointerReader) Read() PointerSnapshot {
	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		r.lastTouchX, r.lastTouchY = x, y
		r.wasTouching = true
		return PointerSnapshot{Down: true, X: x, Y: y, IsTouch: true}
	}

	// 触摸刚刚释放：使用保存的最后触摸位置
	if r.wasTouching {
		r.wasTouching = false
		return PointerSnapshot{Down: false, X: r.lastTouchX, Y: r.lastTouchY, IsTouch: true}
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	return PointerSnapshot{
		Down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:    x,
		Y:    y,
	}
}

// Rect 轴对齐矩形（屏幕坐标）
type Rect struct {
	X, Y, Width, Height float64
}

// Contains 检查点是否在矩形内（左上闭、右下开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
