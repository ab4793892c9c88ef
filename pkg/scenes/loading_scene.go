package scenes

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/valentine/pkg/renderer"
)

// backgroundColor 所有场景共用的背景色
var backgroundColor = color.RGBA{R: 255, G: 240, B: 245, A: 255}

// LoadingScene 等待动画资源加载
//
// 渲染器在后台加载资源，本场景每帧 Poll 一次。加载成功后解析
// 视图模型输入并切换到 ValentineScene；视图模型不可用是致命错误，
// 通过 Update 返回给 ebiten 结束运行。
type LoadingScene struct {
	env    *Env
	engine *renderer.Engine
	face   text.Face

	elapsedTime float64
	width       int
	height      int
}

// NewLoadingScene 创建加载场景并立即开始加载资源
func NewLoadingScene(env *Env) *LoadingScene {
	return NewLoadingSceneWithEngine(env, renderer.New(renderer.Options{}))
}

// NewLoadingSceneWithEngine 使用给定引擎创建加载场景
func NewLoadingSceneWithEngine(env *Env, engine *renderer.Engine) *LoadingScene {
	scene := &LoadingScene{
		env:    env,
		engine: engine,
		face:   text.NewGoXFace(basicfont.Face7x13),
		width:  env.Config.Window.Width,
		height: env.Config.Window.Height,
	}
	engine.Load(env.Config.Renderer.Asset)
	return scene
}

// Update 检查加载状态
func (s *LoadingScene) Update(deltaTime float64) error {
	s.elapsedTime += deltaTime

	done, err := s.engine.Poll()
	if !done {
		return nil
	}
	if err != nil {
		return fmt.Errorf("animation failed to load: %w", err)
	}

	vm, err := s.engine.Instance()
	if err != nil {
		return fmt.Errorf("animation loaded without bound inputs: %w", err)
	}

	log.Printf("[LoadingScene] Asset ready after %.2fs, switching to ValentineScene", s.elapsedTime)
	s.env.SceneManager.SwitchTo(NewValentineScene(s.env, s.engine, vm))
	return nil
}

// Resize 记录窗口尺寸（用于居中文字）
func (s *LoadingScene) Resize(width, height int) {
	s.width, s.height = width, height
}

// Draw 绘制加载提示
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	dots := int(s.elapsedTime*3) % 4
	msg := "Loading" + strings.Repeat(".", dots)

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(float64(s.width)/2, float64(s.height)/2)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 160, G: 40, B: 80, A: 255})
	text.Draw(screen, msg, s.face, op)
}
