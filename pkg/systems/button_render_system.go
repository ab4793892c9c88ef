package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/game"
	"github.com/decker502/valentine/pkg/utils"
)

// 按钮配色
var (
	buttonFill        = color.RGBA{R: 255, G: 122, B: 162, A: 255}
	buttonFillHovered = color.RGBA{R: 255, G: 145, B: 180, A: 255}
	buttonBorder      = color.RGBA{R: 160, G: 40, B: 80, A: 255}
	buttonText        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	toastColor        = color.RGBA{R: 200, G: 30, B: 90, A: 255}
	debugColor        = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// labelScale 位图字体放大倍数
const labelScale = 2.0

// ButtonRenderSystem 按钮渲染系统
//
// 职责：
//   - 渲染按钮背景（按下时下沉，悬停时变亮）
//   - 渲染按钮文字（自动居中，带阴影效果）
//   - 渲染点击提示和调试信息
type ButtonRenderSystem struct {
	face text.Face
}

// NewButtonRenderSystem 创建按钮渲染系统，使用内置位图字体
func NewButtonRenderSystem() *ButtonRenderSystem {
	return &ButtonRenderSystem{
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

// DrawButton 渲染按钮
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, button *components.ButtonComponent) {
	b := button.Bounds
	sink := float32(utils.EaseOutQuad(button.PressDepth) * 4)

	// 阴影（按下时按钮盖住阴影）
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y)+4, float32(b.Width), float32(b.Height), buttonBorder, true)

	fill := buttonFill
	if button.Hovered {
		fill = buttonFillHovered
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y)+sink, float32(b.Width), float32(b.Height), fill, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y)+sink, float32(b.Width), float32(b.Height), 2, buttonBorder, true)

	cx, cy := b.Center()
	s.drawLabel(screen, button.Label, cx, cy+float64(sink))
}

// drawLabel 渲染居中文字（先阴影后正文）
func (s *ButtonRenderSystem) drawLabel(screen *ebiten.Image, label string, centerX, centerY float64) {
	if label == "" {
		return
	}

	shadowOp := &text.DrawOptions{}
	shadowOp.LayoutOptions.PrimaryAlign = text.AlignCenter
	shadowOp.LayoutOptions.SecondaryAlign = text.AlignCenter
	shadowOp.GeoM.Scale(labelScale, labelScale)
	shadowOp.GeoM.Translate(centerX+2, centerY+2)
	shadowOp.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 120})
	text.Draw(screen, label, s.face, shadowOp)

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(labelScale, labelScale)
	op.GeoM.Translate(centerX, centerY)
	op.ColorScale.ScaleWithColor(buttonText)
	text.Draw(screen, label, s.face, op)
}

// DrawToast 在按钮上方渲染点击提示：上浮并淡出
func (s *ButtonRenderSystem) DrawToast(screen *ebiten.Image, toast *components.ToastComponent, anchor utils.Rect) {
	if toast == nil || !toast.Visible() {
		return
	}
	progress := toast.Progress()
	cx, _ := anchor.Center()
	y := anchor.Y - 24 - 30*utils.EaseOutCubic(progress)

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(labelScale*1.5, labelScale*1.5)
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(toastColor)
	op.ColorScale.ScaleAlpha(float32(1 - progress))
	text.Draw(screen, toast.Message, s.face, op)
}

// DrawDebug 在左上角渲染会话状态
func (s *ButtonRenderSystem) DrawDebug(screen *ebiten.Image, session *game.Session, sprites int) {
	lines := DebugLines(session, sprites)
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, 8+float64(i)*15)
		op.ColorScale.ScaleWithColor(debugColor)
		text.Draw(screen, line, s.face, op)
	}
}

// DebugLines 格式化调试信息
func DebugLines(session *game.Session, sprites int) []string {
	return []string{
		fmt.Sprintf("TPS: %.1f  FPS: %.1f  frame: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), session.Frame),
		fmt.Sprintf("closeness: %.3f -> %.0f", session.Closeness.Current, session.Closeness.Target),
		fmt.Sprintf("gaze: (%.1f, %.1f) -> (%.1f, %.1f)",
			session.GazeX.Current, session.GazeY.Current, session.GazeX.Target, session.GazeY.Target),
		fmt.Sprintf("held: %v  hovered: %v  presses: %d", session.Held, session.Hovered, session.Presses),
		fmt.Sprintf("hearts: %d live / %d sprites / %d spawned", session.LiveHearts(), sprites, session.HeartsSpawned),
	}
}
