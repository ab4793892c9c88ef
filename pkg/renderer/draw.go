package renderer

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/valentine/pkg/utils"
)

// Pose 角色当前帧的屏幕空间姿态（由输入值计算）
type Pose struct {
	CenterX, CenterY float64 // 脸部中心
	Scale            float64 // 画板到屏幕缩放 * 拥抱放大
	FaceRadius       float64
	LeftEyeX, EyeY   float64
	RightEyeX        float64
	EyeRadius        float64
	PupilDX, PupilDY float64 // 瞳孔相对眼睛中心的偏移
	PupilRadius      float64
	ArmOffset        float64 // 手臂中心离脸部中心的水平距离
	ArmRadius        float64
	CheekAlpha       float64
	CheekRadius      float64
}

// Pose 根据视图模型输入计算姿态；未加载时返回零值
func (e *Engine) Pose() Pose {
	if e.asset == nil || e.instance == nil {
		return Pose{}
	}
	ch := e.asset.Character
	closeness := utils.Clamp01(e.instance.numberValue(InputCloseness, 0))
	gazeX := e.instance.numberValue(InputEyeTargetX, 0)
	gazeY := e.instance.numberValue(InputEyeTargetY, 0)

	base := e.ArtboardScale()
	scale := base * (1 + ch.HugScale*closeness)
	cx, cy := e.ScreenCenter()

	// 视线输入按 GazeRange 归一化，瞳孔偏移限制在圆内
	dx, dy := 0.0, 0.0
	if ch.GazeRange > 0 {
		dx = gazeX / ch.GazeRange * ch.MaxPupilOffset
		dy = gazeY / ch.GazeRange * ch.MaxPupilOffset
		if d := math.Hypot(dx, dy); d > ch.MaxPupilOffset && d > 0 {
			dx *= ch.MaxPupilOffset / d
			dy *= ch.MaxPupilOffset / d
		}
	}

	return Pose{
		CenterX:     cx,
		CenterY:     cy,
		Scale:       scale,
		FaceRadius:  ch.FaceRadius * scale,
		LeftEyeX:    cx - ch.EyeSpacing/2*scale,
		RightEyeX:   cx + ch.EyeSpacing/2*scale,
		EyeY:        cy + ch.EyeOffsetY*scale,
		EyeRadius:   ch.EyeRadius * scale,
		PupilDX:     dx * scale,
		PupilDY:     dy * scale,
		PupilRadius: ch.PupilRadius * scale,
		ArmOffset:   utils.Lerp(ch.ArmRestOffset, ch.ArmHugOffset, closeness) * base,
		ArmRadius:   ch.ArmRadius * base,
		CheekAlpha:  closeness,
		CheekRadius: ch.CheekRadius * scale,
	}
}

// Draw 绘制角色；资源未加载时不绘制
func (e *Engine) Draw(screen *ebiten.Image) {
	if !e.Loaded() {
		return
	}
	ch := e.asset.Character
	p := e.Pose()
	outline := ch.OutlineColor.RGBA()
	face := ch.FaceColor.RGBA()
	stroke := float32(math.Max(2, 4*p.Scale))

	// 手臂（在脸后面）
	for _, sign := range []float64{-1, 1} {
		ax := float32(p.CenterX + sign*p.ArmOffset)
		ay := float32(p.CenterY + p.FaceRadius*0.35)
		vector.DrawFilledCircle(screen, ax, ay, float32(p.ArmRadius), face, true)
		vector.StrokeCircle(screen, ax, ay, float32(p.ArmRadius), stroke, outline, true)
	}

	// 脸
	vector.DrawFilledCircle(screen, float32(p.CenterX), float32(p.CenterY), float32(p.FaceRadius), face, true)
	vector.StrokeCircle(screen, float32(p.CenterX), float32(p.CenterY), float32(p.FaceRadius), stroke, outline, true)

	// 腮红随亲密度显现
	if p.CheekAlpha > 0.01 {
		cheek := withAlpha(ch.CheekColor.RGBA(), p.CheekAlpha)
		cheekY := float32(p.EyeY + p.EyeRadius*1.6)
		for _, x := range []float64{p.LeftEyeX - p.EyeRadius*0.6, p.RightEyeX + p.EyeRadius*0.6} {
			vector.DrawFilledCircle(screen, float32(x), cheekY, float32(p.CheekRadius), cheek, true)
		}
	}

	// 眼睛与瞳孔
	for _, ex := range []float64{p.LeftEyeX, p.RightEyeX} {
		vector.DrawFilledCircle(screen, float32(ex), float32(p.EyeY), float32(p.EyeRadius), color.White, true)
		vector.StrokeCircle(screen, float32(ex), float32(p.EyeY), float32(p.EyeRadius), stroke/2, outline, true)
		vector.DrawFilledCircle(screen, float32(ex+p.PupilDX), float32(p.EyeY+p.PupilDY), float32(p.PupilRadius), ch.PupilColor.RGBA(), true)
	}

	// 嘴：亲密度越高笑得越开
	mouthW := float32(p.FaceRadius * (0.35 + 0.2*p.CheekAlpha))
	mouthY := float32(p.CenterY + p.FaceRadius*0.4)
	vector.StrokeLine(screen, float32(p.CenterX)-mouthW/2, mouthY, float32(p.CenterX)+mouthW/2, mouthY, stroke, outline, true)
}

// withAlpha 按比例缩放颜色的透明度（预乘 alpha）
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := utils.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
