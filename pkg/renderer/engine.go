// Package renderer 是矢量角色动画引擎的边界
//
// 引擎按路径异步加载动画资源，加载完成后暴露一个绑定到画板的
// ViewModelInstance，程序通过具名数值输入（closeness、eyeTargetX、
// eyeTargetY）驱动角色。引擎自己负责绘制，模拟层从不读取输入值。
//
// 初始化分两步：Load 启动加载，然后 Poll（非阻塞，用于帧循环）
// 或 Await（阻塞，支持 context 取消）等待完成。
package renderer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/decker502/valentine/pkg/embedded"
	"github.com/decker502/valentine/pkg/utils"
)

// 角色绘制读取的输入名称
const (
	InputCloseness  = "closeness"
	InputEyeTargetX = "eyeTargetX"
	InputEyeTargetY = "eyeTargetY"
)

var (
	// ErrNotLoaded 资源尚未加载完成
	ErrNotLoaded = errors.New("renderer: asset not loaded")
	// ErrNoViewModel 资源加载完成但没有可绑定的视图模型实例
	ErrNoViewModel = errors.New("renderer: no bound view model instance")
	// ErrLoadNotStarted 未调用 Load
	ErrLoadNotStarted = errors.New("renderer: Load was not called")
)

// loadState 引擎加载状态
type loadState int

const (
	stateIdle loadState = iota
	stateLoading
	stateLoaded
	stateFailed
)

type loadResult struct {
	asset *Asset
	err   error
}

// Options 引擎构造参数
type Options struct {
	// ReadFile 读取资源文件，默认 embedded.ReadFile
	ReadFile func(path string) ([]byte, error)
	// OnLoad 加载成功后在调用 Poll/Await 的 goroutine 上执行一次
	OnLoad func(e *Engine)
}

// Engine 动画引擎
type Engine struct {
	readFile func(path string) ([]byte, error)
	onLoad   func(e *Engine)

	state    loadState
	path     string
	resultCh chan loadResult
	err      error

	asset    *Asset
	instance *ViewModelInstance

	surface utils.Rect
}

// New 创建引擎（尚未加载任何资源）
func New(opts Options) *Engine {
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = embedded.ReadFile
	}
	return &Engine{
		readFile: readFile,
		onLoad:   opts.OnLoad,
		state:    stateIdle,
	}
}

// Load 在后台 goroutine 中读取并解析资源
// 重复调用会被忽略（一个引擎只加载一个资源）
func (e *Engine) Load(path string) {
	if e.state != stateIdle {
		log.Printf("[Renderer] Load(%s) ignored: already loading %s", path, e.path)
		return
	}
	e.state = stateLoading
	e.path = path
	e.resultCh = make(chan loadResult, 1)

	readFile := e.readFile
	ch := e.resultCh
	go func() {
		data, err := readFile(path)
		if err != nil {
			ch <- loadResult{err: fmt.Errorf("failed to read animation asset %s: %w", path, err)}
			return
		}
		asset, err := ParseAsset(data)
		if err != nil {
			ch <- loadResult{err: fmt.Errorf("%s: %w", path, err)}
			return
		}
		ch <- loadResult{asset: asset}
	}()
	log.Printf("[Renderer] Loading animation asset: %s", path)
}

// Poll 非阻塞地检查加载是否完成
// 返回 done=true 时 err 为加载或绑定错误（nil 表示成功）
func (e *Engine) Poll() (done bool, err error) {
	switch e.state {
	case stateIdle:
		return false, ErrLoadNotStarted
	case stateLoaded:
		return true, nil
	case stateFailed:
		return true, e.err
	}

	select {
	case res := <-e.resultCh:
		return true, e.complete(res)
	default:
		return false, nil
	}
}

// Await 阻塞等待加载完成并返回绑定的视图模型实例
func (e *Engine) Await(ctx context.Context) (*ViewModelInstance, error) {
	switch e.state {
	case stateIdle:
		return nil, ErrLoadNotStarted
	case stateLoaded, stateFailed:
		return e.Instance()
	}

	select {
	case res := <-e.resultCh:
		if err := e.complete(res); err != nil {
			return nil, err
		}
		return e.instance, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// complete 处理加载结果（只在调用方 goroutine 上执行）
func (e *Engine) complete(res loadResult) error {
	if res.err != nil {
		e.fail(res.err)
		return e.err
	}

	e.asset = res.asset
	if res.asset.ViewModel == nil {
		e.fail(fmt.Errorf("%w: asset %s declares no viewModel", ErrNoViewModel, e.path))
		return e.err
	}

	e.instance = NewViewModelInstance(res.asset.ViewModel)
	e.state = stateLoaded
	log.Printf("[Renderer] Loaded %s: artboard %.0fx%.0f, view model %q with %d inputs",
		e.path, res.asset.Artboard.Width, res.asset.Artboard.Height, e.instance.Name(), len(e.instance.order))

	if e.onLoad != nil {
		e.onLoad(e)
	}
	return nil
}

func (e *Engine) fail(err error) {
	e.state = stateFailed
	e.err = err
	log.Printf("[Renderer] Load failed: %v", err)
}

// Loaded 资源是否已成功加载
func (e *Engine) Loaded() bool {
	return e.state == stateLoaded
}

// Instance 返回绑定的视图模型实例
func (e *Engine) Instance() (*ViewModelInstance, error) {
	switch e.state {
	case stateLoaded:
		if e.instance == nil {
			return nil, ErrNoViewModel
		}
		return e.instance, nil
	case stateFailed:
		return nil, e.err
	case stateIdle:
		return nil, ErrLoadNotStarted
	default:
		return nil, ErrNotLoaded
	}
}

// Asset 返回已加载的资源（未加载时为 nil）
func (e *Engine) Asset() *Asset {
	return e.asset
}

// ResizeDrawingSurface 设置绘制区域（屏幕坐标）
// 画板按比例缩放并居中放入该区域
func (e *Engine) ResizeDrawingSurface(bounds utils.Rect) {
	if bounds == e.surface {
		return
	}
	e.surface = bounds
	log.Printf("[Renderer] Drawing surface resized to %.0fx%.0f at (%.0f, %.0f)",
		bounds.Width, bounds.Height, bounds.X, bounds.Y)
}

// Surface 返回当前绘制区域
func (e *Engine) Surface() utils.Rect {
	return e.surface
}

// ScreenCenter 返回绘制区域中心的屏幕坐标
func (e *Engine) ScreenCenter() (float64, float64) {
	return e.surface.Center()
}

// ArtboardScale 返回画板到屏幕的缩放比例（保持宽高比完整放入）
func (e *Engine) ArtboardScale() float64 {
	if e.asset == nil || e.surface.Width <= 0 || e.surface.Height <= 0 {
		return 1
	}
	sx := e.surface.Width / e.asset.Artboard.Width
	sy := e.surface.Height / e.asset.Artboard.Height
	if sx < sy {
		return sx
	}
	return sy
}
