// Package main runs the hug button simulation headlessly.
//
// It drives the same frame loop as the desktop app with a stepped clock and
// scripted input, then prints the renderer inputs and heart counts.
//
// Usage:
//
//	go run ./cmd/simulate [flags]
//
// Flags:
//
//	--frames <n>        Number of frames to simulate (default 200)
//	--hold <a-b>        Hold the button for frames a through b (default 0-99)
//	--hover-from <n>    Pointer enters the button at frame n (-1 = never)
//	--hover-to <n>      Pointer leaves the button at frame n (-1 = never)
//	--seed <n>          Random seed (default 1)
//	--config <path>     Config file (default data/valentine.yaml)
//	--root <dir>        Directory containing data/ (default .)
//	--every <n>         Print a trace line every n frames (0 = off)
//	--verbose           Enable verbose logging
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/embedded"
	"github.com/decker502/valentine/pkg/game"
	"github.com/decker502/valentine/pkg/renderer"
	"github.com/decker502/valentine/pkg/systems"
)

var (
	framesFlag    = flag.Int("frames", 200, "Number of frames to simulate")
	holdFlag      = flag.String("hold", "0-99", "Frame range during which the button is held (a-b, empty = never)")
	hoverFromFlag = flag.Int("hover-from", -1, "Frame at which the pointer enters the button (-1 = never)")
	hoverToFlag   = flag.Int("hover-to", -1, "Frame at which the pointer leaves the button (-1 = never)")
	seedFlag      = flag.Int64("seed", 1, "Random seed")
	configFlag    = flag.String("config", config.DefaultConfigPath, "Config file path")
	rootFlag      = flag.String("root", ".", "Directory containing data/")
	everyFlag     = flag.Int("every", 10, "Print a trace line every n frames (0 = off)")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// Report 模拟结束时的统计
type Report struct {
	Frames        int     `yaml:"frames"`
	Seed          int64   `yaml:"seed"`
	SpringModel   string  `yaml:"springModel"`
	PeakCloseness float64 `yaml:"peakCloseness"`
	LiveHearts    int     `yaml:"liveHearts"`
	PeakHearts    int     `yaml:"peakHearts"`
	HeartsSpawned uint64  `yaml:"heartsSpawned"`
	HeartsRetired uint64  `yaml:"heartsRetired"`
	Retargets     uint64  `yaml:"retargets"`
	LeakedSprites int     `yaml:"leakedSprites"`

	// 渲染器输入的最终值；资源中没有声明的输入省略
	Closeness  *float64 `yaml:"closeness,omitempty"`
	EyeTargetX *float64 `yaml:"eyeTargetX,omitempty"`
	EyeTargetY *float64 `yaml:"eyeTargetY,omitempty"`
	// Unbound 未能解析的输入名称
	Unbound []string `yaml:"unbound,omitempty"`
}

// options 一次模拟的脚本和参数
type options struct {
	ConfigPath string
	Frames     int
	HoldFrom   int // -1 = 从不按住
	HoldTo     int
	HoverFrom  int // -1 = 从不悬停
	HoverTo    int
	Seed       int64
	Every      int       // 每隔多少帧打印一行（0 = 不打印）
	Trace      io.Writer // 逐帧输出
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	holdFrom, holdTo, err := parseFrameRange(*holdFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --hold: %v\n", err)
		os.Exit(2)
	}

	embedded.Init(os.DirFS(*rootFlag))

	report, err := run(options{
		ConfigPath: *configFlag,
		Frames:     *framesFlag,
		HoldFrom:   holdFrom,
		HoldTo:     holdTo,
		HoverFrom:  *hoverFromFlag,
		HoverTo:    *hoverToFlag,
		Seed:       *seedFlag,
		Every:      *everyFlag,
		Trace:      os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation failed: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode report: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}

func run(opts options) (*Report, error) {
	cfg, err := config.LoadAppConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 两阶段初始化：加载资源，等待完成，再解析输入
	engine := renderer.New(renderer.Options{})
	engine.Load(cfg.Renderer.Asset)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	vm, err := engine.Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("renderer did not bind: %w", err)
	}
	engine.ResizeDrawingSurface(systems.StageBounds(cfg.Button, cfg.Window.Width, cfg.Window.Height))

	rng := rand.New(rand.NewSource(opts.Seed))
	session := game.NewSession()
	session.Slots = systems.BindSlots(vm, cfg.Renderer.Slots)

	sprites := systems.NewHeartRenderSystem(ecs.NewEntityManager(), cfg.Hearts.Size)
	driver := systems.NewTargetDriver(session, cfg.Gaze, rng)
	hearts := systems.NewHeartParticleSystem(session, cfg.Hearts, engine, sprites, rng)
	loop := systems.NewFrameLoop(session, driver, hearts,
		systems.NewSpringStepper(cfg.Spring, cfg.Window.TPS), cfg.Closeness.EaseRate)

	clock := &game.StepClock{}
	frameMs := 1000 / float64(cfg.Window.TPS)
	driver.Start(clock.NowMillis())

	report := &Report{Frames: opts.Frames, Seed: opts.Seed, SpringModel: cfg.Spring.Model}
	for frame := 0; frame < opts.Frames; frame++ {
		switch frame {
		case opts.HoverFrom:
			driver.HoverEnter()
		case opts.HoverTo:
			driver.HoverLeave()
		}
		if frame == opts.HoldFrom {
			driver.Press()
		}
		if frame == opts.HoldTo+1 {
			driver.Release()
		}

		loop.Tick(clock.NowMillis())
		clock.Advance(frameMs)

		report.PeakCloseness = max(report.PeakCloseness, session.Closeness.Current)
		report.PeakHearts = max(report.PeakHearts, session.LiveHearts())

		if opts.Trace != nil && opts.Every > 0 && frame%opts.Every == 0 {
			fmt.Fprintf(opts.Trace, "frame %4d  t=%7.1fms  held=%-5v closeness=%.4f  eye=(%7.2f, %7.2f)  hearts=%d\n",
				frame, session.NowMs, session.Held, session.Closeness.Current,
				session.GazeX.Current, session.GazeY.Current, session.LiveHearts())
		}
	}

	names := cfg.Renderer.Slots
	report.Closeness = report.inputValue(vm, names.Closeness)
	report.EyeTargetX = report.inputValue(vm, names.EyeTargetX)
	report.EyeTargetY = report.inputValue(vm, names.EyeTargetY)
	report.LiveHearts = session.LiveHearts()
	report.HeartsSpawned = session.HeartsSpawned
	report.HeartsRetired = session.HeartsRetired
	report.Retargets = session.Retargets
	report.LeakedSprites = sprites.LiveSprites() - session.LiveHearts()
	return report, nil
}

// inputValue 读取输入的最终值；输入未声明时记入 Unbound 并返回 nil
func (r *Report) inputValue(vm *renderer.ViewModelInstance, name string) *float64 {
	in := vm.Number(name)
	if in == nil {
		r.Unbound = append(r.Unbound, name)
		return nil
	}
	v := in.Value()
	return &v
}

// parseFrameRange 解析 "a-b"，空字符串表示从不按住
func parseFrameRange(s string) (int, int, error) {
	if strings.TrimSpace(s) == "" {
		return -1, -2, nil
	}
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("expected a-b, got %q", s)
	}
	from, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("bad start frame: %w", err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("bad end frame: %w", err)
	}
	if to < from {
		return 0, 0, fmt.Errorf("end frame %d before start frame %d", to, from)
	}
	return from, to, nil
}
