package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/valentine/pkg/app"
	"github.com/decker502/valentine/pkg/embedded"
	"github.com/decker502/valentine/pkg/utils"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "配置文件路径（默认使用嵌入的 data/valentine.yaml）")
	seed := flag.Int64("seed", 0, "随机种子（0 = 使用当前时间）")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	cfg := gameApp.Config()
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)
	if gameApp.Settings().GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	// 启动主循环，直到窗口关闭或场景返回致命错误
	err = ebiten.RunGame(gameApp)
	gameApp.SaveOnExit()
	if err != nil {
		log.Fatal(err)
	}
}
