package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/game"
	"github.com/decker502/valentine/pkg/renderer"
	"github.com/decker502/valentine/pkg/systems"
	"github.com/decker502/valentine/pkg/utils"
)

// ValentineScene 主场景：角色、按钮和心形粒子
//
// 每个 tick：读取指针 → 按钮事件 → 帧循环（缓动、弹簧、写入输入、粒子）。
// 绘制顺序：背景 → 角色 → 心形 → 按钮 → 提示 → 调试信息。
type ValentineScene struct {
	env    *Env
	engine *renderer.Engine

	session       *game.Session
	entityManager *ecs.EntityManager

	driver       *systems.TargetDriver
	hearts       *systems.HeartParticleSystem
	loop         *systems.FrameLoop
	input        *systems.ButtonInputSystem
	heartRender  *systems.HeartRenderSystem
	buttonRender *systems.ButtonRenderSystem

	button *components.ButtonComponent
	toast  *components.ToastComponent

	pointer utils.PointerReader

	width  int
	height int
}

// NewValentineScene 创建主场景
// vm 是渲染器加载完成后绑定的视图模型实例
func NewValentineScene(env *Env, engine *renderer.Engine, vm *renderer.ViewModelInstance) *ValentineScene {
	cfg := env.Config

	session := game.NewSession()
	session.Slots = systems.BindSlots(vm, cfg.Renderer.Slots)

	em := ecs.NewEntityManager()
	heartRender := systems.NewHeartRenderSystem(em, cfg.Hearts.Size)
	driver := systems.NewTargetDriver(session, cfg.Gaze, env.Rand)
	hearts := systems.NewHeartParticleSystem(session, cfg.Hearts, engine, heartRender, env.Rand)
	loop := systems.NewFrameLoop(session, driver, hearts,
		systems.NewSpringStepper(cfg.Spring, cfg.Window.TPS), cfg.Closeness.EaseRate)

	button := &components.ButtonComponent{Label: cfg.Button.Label}
	toast := &components.ToastComponent{
		Message:    cfg.Button.ClickMessage,
		DurationMs: cfg.Button.MessageDurationMs,
	}

	scene := &ValentineScene{
		env:           env,
		engine:        engine,
		session:       session,
		entityManager: em,
		driver:        driver,
		hearts:        hearts,
		loop:          loop,
		input:         systems.NewButtonInputSystem(driver, button, toast),
		heartRender:   heartRender,
		buttonRender:  systems.NewButtonRenderSystem(),
		button:        button,
		toast:         toast,
	}

	if settings := scene.settings(); settings != nil {
		hearts.Enabled = settings.HeartsEnabled
	}

	scene.Resize(cfg.Window.Width, cfg.Window.Height)
	driver.Start(env.Clock.NowMillis())

	log.Printf("[ValentineScene] Initialized (%d/3 renderer inputs, spring=%s)",
		session.Slots.Resolved(), cfg.Spring.Model)
	return scene
}

// Update 处理输入并推进一帧
func (s *ValentineScene) Update(deltaTime float64) error {
	s.handleKeys()
	s.step(s.pointer.Read(), s.env.Clock.NowMillis(), deltaTime*1000)
	return nil
}

// step 处理一帧（与 ebiten 输入解耦）
func (s *ValentineScene) step(p utils.PointerSnapshot, nowMs, dtMs float64) {
	s.input.Update(p, dtMs)
	s.loop.Tick(nowMs)
}

// handleKeys D 切换调试信息，H 切换心形粒子
func (s *ValentineScene) handleKeys() {
	settings := s.settings()
	if settings == nil {
		return
	}

	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		log.Printf("[ValentineScene] Debug overlay: %v", s.env.Settings.ToggleDebug())
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.hearts.Enabled = s.env.Settings.ToggleHearts()
		log.Printf("[ValentineScene] Hearts enabled: %v", s.hearts.Enabled)
		changed = true
	}
	if changed {
		if err := s.env.Settings.Save(); err != nil {
			log.Printf("[ValentineScene] Warning: failed to save settings: %v", err)
		}
	}
}

// Resize 重新布局按钮并调整渲染器绘制区域
func (s *ValentineScene) Resize(width, height int) {
	s.width, s.height = width, height
	s.button.Bounds = systems.ButtonBounds(s.env.Config.Button, width, height)
	s.engine.ResizeDrawingSurface(systems.StageBounds(s.env.Config.Button, width, height))
}

// Draw 绘制场景
func (s *ValentineScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s.engine.Draw(screen)
	s.heartRender.Draw(screen)
	s.buttonRender.DrawButton(screen, s.button)
	s.buttonRender.DrawToast(screen, s.toast, s.button.Bounds)

	if settings := s.settings(); settings != nil && settings.ShowDebug {
		s.buttonRender.DrawDebug(screen, s.session, s.heartRender.LiveSprites())
	}
}

// Session 返回会话状态（调试和测试用）
func (s *ValentineScene) Session() *game.Session {
	return s.session
}

func (s *ValentineScene) settings() *game.Settings {
	if s.env.Settings == nil {
		return nil
	}
	return s.env.Settings.GetSettings()
}
