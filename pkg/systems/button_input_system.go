package systems

import (
	"log"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/utils"
)

// pressAnimRate 按下动画每帧逼近比例
const pressAnimRate = 0.3

// ButtonInputSystem 按钮交互系统
// 把每帧的指针快照翻译成按下/释放/悬停事件，交给 TargetDriver
//
// 事件映射：
//   - 鼠标按下（在按钮内）/ 触摸开始（在按钮内） → Press
//   - 鼠标抬起 / 鼠标离开按钮 / 触摸结束           → Release
//   - 鼠标进入 / 离开按钮                           → HoverEnter / HoverLeave
//   - 在按钮内按下并在按钮内抬起                    → 点击（显示提示）
//
// 触摸没有悬停状态。
type ButtonInputSystem struct {
	driver *TargetDriver
	button *components.ButtonComponent
	toast  *components.ToastComponent

	prevDown bool

	// OnClick 点击回调（可选）
	OnClick func()
}

// NewButtonInputSystem 创建按钮交互系统
func NewButtonInputSystem(driver *TargetDriver, button *components.ButtonComponent, toast *components.ToastComponent) *ButtonInputSystem {
	return &ButtonInputSystem{
		driver: driver,
		button: button,
		toast:  toast,
	}
}

// Update 处理本帧的指针状态
// dtMs 用于推进提示计时
func (s *ButtonInputSystem) Update(p utils.PointerSnapshot, dtMs float64) {
	inside := s.button.Bounds.Contains(float64(p.X), float64(p.Y))
	justDown := p.Down && !s.prevDown
	justUp := !p.Down && s.prevDown
	s.prevDown = p.Down

	if !p.IsTouch {
		s.updateHover(inside)
	}

	if justDown && inside && !s.button.Pressed {
		s.button.Pressed = true
		s.driver.Press()
	}

	if justUp && s.button.Pressed {
		s.button.Pressed = false
		s.driver.Release()
		if inside {
			s.click()
		}
	}

	s.updateAnimation(dtMs)
}

// updateHover 处理鼠标进入/离开
// 鼠标离开按钮时同时释放按住状态
func (s *ButtonInputSystem) updateHover(inside bool) {
	if inside == s.button.Hovered {
		return
	}
	s.button.Hovered = inside
	if inside {
		s.driver.HoverEnter()
		return
	}

	if s.button.Pressed {
		s.button.Pressed = false
		s.driver.Release()
	}
	s.driver.HoverLeave()
}

func (s *ButtonInputSystem) click() {
	if s.toast != nil && s.toast.Message != "" {
		s.toast.RemainingMs = s.toast.DurationMs
		log.Printf("[ButtonInputSystem] Clicked: %q", s.toast.Message)
	}
	if s.OnClick != nil {
		s.OnClick()
	}
}

func (s *ButtonInputSystem) updateAnimation(dtMs float64) {
	target := 0.0
	if s.button.Pressed {
		target = 1
	}
	s.button.PressDepth = utils.Lerp(s.button.PressDepth, target, pressAnimRate)

	if s.toast != nil && s.toast.RemainingMs > 0 {
		s.toast.RemainingMs -= dtMs
		if s.toast.RemainingMs < 0 {
			s.toast.RemainingMs = 0
		}
	}
}

// ButtonBounds 计算按钮区域：水平居中，距底部 MarginBottom
func ButtonBounds(cfg config.ButtonConfig, screenWidth, screenHeight int) utils.Rect {
	return utils.Rect{
		X:      (float64(screenWidth) - cfg.Width) / 2,
		Y:      float64(screenHeight) - cfg.MarginBottom - cfg.Height,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// StageBounds 计算角色绘制区域：按钮上方的全部空间
func StageBounds(cfg config.ButtonConfig, screenWidth, screenHeight int) utils.Rect {
	h := float64(screenHeight) - cfg.MarginBottom*2 - cfg.Height
	if h < 0 {
		h = 0
	}
	return utils.Rect{Width: float64(screenWidth), Height: h}
}
