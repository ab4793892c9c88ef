package systems

import (
	"log"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/game"
	"github.com/decker502/valentine/pkg/renderer"
	"github.com/decker502/valentine/pkg/utils"
)

// FrameLoop 每帧驱动一次完整的模拟
//
// 每帧顺序：
//  1. 空闲视线计时器
//  2. 亲密度缓动
//  3. 推进两个视线弹簧
//  4. 把三个当前值写入渲染器输入（未解析的输入跳过）
//  5. 生成门通过时生成一个心形粒子
//  6. 老化并清理存活粒子
//
// Tick 只在 ebiten 的 Update 中调用，从不并发执行。
type FrameLoop struct {
	Session *game.Session
	Driver  *TargetDriver
	Hearts  *HeartParticleSystem

	stepper  utils.SpringStepper
	easeRate float64
}

// NewFrameLoop 创建帧循环
func NewFrameLoop(session *game.Session, driver *TargetDriver, hearts *HeartParticleSystem, stepper utils.SpringStepper, easeRate float64) *FrameLoop {
	return &FrameLoop{
		Session:  session,
		Driver:   driver,
		Hearts:   hearts,
		stepper:  stepper,
		easeRate: easeRate,
	}
}

// Tick 推进一帧，nowMs 为帧时间戳
func (l *FrameLoop) Tick(nowMs float64) {
	s := l.Session
	s.NowMs = nowMs

	l.Driver.Update(nowMs)

	s.Closeness.Ease(l.easeRate)
	l.stepper.Step(&s.GazeX)
	l.stepper.Step(&s.GazeY)

	l.writeSlots()

	l.Hearts.TrySpawn(nowMs)
	l.Hearts.Update()

	s.Frame++
}

// writeSlots 写入渲染器输入，解析失败的输入静默跳过
func (l *FrameLoop) writeSlots() {
	s := l.Session
	if s.Slots.Closeness != nil {
		s.Slots.Closeness.SetValue(s.Closeness.Current)
	}
	if s.Slots.EyeTargetX != nil {
		s.Slots.EyeTargetX.SetValue(s.GazeX.Current)
	}
	if s.Slots.EyeTargetY != nil {
		s.Slots.EyeTargetY.SetValue(s.GazeY.Current)
	}
}

// NewSpringStepper 根据配置选择弹簧模型
func NewSpringStepper(cfg config.SpringConfig, tps int) utils.SpringStepper {
	if cfg.Model == config.SpringModelHarmonica {
		return utils.NewHarmonicStepper(tps, cfg.Frequency, cfg.Damping)
	}
	return utils.ClassicStepper{Tension: cfg.Tension, Friction: cfg.Friction}
}

// BindSlots 从视图模型实例解析三个具名输入
//
// 找不到的输入保持 nil，写入时跳过。
func BindSlots(vm *renderer.ViewModelInstance, names config.SlotNames) game.RendererSlots {
	var slots game.RendererSlots
	if in := vm.Number(names.Closeness); in != nil {
		slots.Closeness = in
	}
	if in := vm.Number(names.EyeTargetX); in != nil {
		slots.EyeTargetX = in
	}
	if in := vm.Number(names.EyeTargetY); in != nil {
		slots.EyeTargetY = in
	}

	if n := slots.Resolved(); n < 3 {
		log.Printf("[FrameLoop] Warning: only %d/3 renderer inputs resolved (closeness=%q eyeTargetX=%q eyeTargetY=%q)",
			n, names.Closeness, names.EyeTargetX, names.EyeTargetY)
	} else {
		log.Printf("[FrameLoop] Bound renderer inputs on view model %q", vm.Name())
	}
	return slots
}
