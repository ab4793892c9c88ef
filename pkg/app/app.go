// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/game"
	"github.com/decker502/valentine/pkg/scenes"
	"github.com/decker502/valentine/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "valentine"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空时使用嵌入的默认配置
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.AppConfig
	settings     *game.SettingsManager
	sceneManager *game.SceneManager
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	appConfig, err := config.LoadAppConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] Random seed: %d", seed)

	settings := game.OpenSettingsManager(AppName)
	sceneManager := game.NewSceneManager()

	env := &scenes.Env{
		Config:       appConfig,
		Settings:     settings,
		SceneManager: sceneManager,
		Clock:        game.NewRealClock(),
		Rand:         rand.New(rand.NewSource(seed)),
	}
	sceneManager.SwitchTo(scenes.NewLoadingScene(env))

	return &App{
		cfg:          appConfig,
		settings:     settings,
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	return a.sceneManager.Update(deltaTime)
}

func (a *App) toggleFullscreen() {
	full := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(full)
	if !full {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}
	a.recordFullscreen(full)
}

// recordFullscreen 持久化实际的全屏状态
// 窗口管理器可能在程序之外切换全屏，所以保存的是新状态而不是对设置取反
func (a *App) recordFullscreen(full bool) {
	a.settings.SetFullscreen(full)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save fullscreen setting: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口大小，尺寸变化时场景重新布局并调整渲染器绘制区域
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if w <= 0 || h <= 0 {
		w, h = a.cfg.Window.Width, a.cfg.Window.Height
	}
	a.sceneManager.Resize(w, h)
	return w, h
}

// Config 返回已加载的配置
func (a *App) Config() *config.AppConfig {
	return a.cfg
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// SaveOnExit 退出前保存设置
func (a *App) SaveOnExit() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings on exit: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
