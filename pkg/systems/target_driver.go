package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/game"
)

// TargetDriver 根据输入事件和空闲计时器设置弹簧目标
//
// 职责：
//   - 按下/释放：closeness.Target 切换为 1/0
//   - 悬停：视线目标强制为 (0, 0)（看向观察者）
//   - 未悬停：视线目标是半径 R 圆上的随机点，每隔 IdleIntervalMs 重新随机
//
// TargetDriver 只写目标，不推进弹簧。同一帧内计时器和悬停离开都会
// 重新随机目标时，以最后一次写入为准。
type TargetDriver struct {
	session *game.Session
	cfg     config.GazeConfig
	rng     *rand.Rand
}

// NewTargetDriver 创建目标驱动器
// rng 为 nil 时使用全局随机源
func NewTargetDriver(session *game.Session, cfg config.GazeConfig, rng *rand.Rand) *TargetDriver {
	return &TargetDriver{
		session: session,
		cfg:     cfg,
		rng:     rng,
	}
}

// Press 按钮被按下（鼠标按下或触摸开始）
func (d *TargetDriver) Press() {
	if d.session.Held {
		return
	}
	d.session.Held = true
	d.session.Closeness.Target = 1
	d.session.Presses++
}

// Release 按钮被释放（鼠标抬起、鼠标离开或触摸结束）
func (d *TargetDriver) Release() {
	d.session.Held = false
	d.session.Closeness.Target = 0
}

// HoverEnter 指针进入按钮：视线目标立即变为原点
// 正在进行的弹簧过渡不会被打断，只是目标被覆盖
func (d *TargetDriver) HoverEnter() {
	d.session.Hovered = true
	d.session.GazeX.Target = 0
	d.session.GazeY.Target = 0
}

// HoverLeave 指针离开按钮：恢复随机游走并立即选一个新目标
func (d *TargetDriver) HoverLeave() {
	d.session.Hovered = false
	d.Retarget()
}

// Retarget 在半径 R 的圆上随机选择视线目标
func (d *TargetDriver) Retarget() {
	angle := d.float64() * 2 * math.Pi
	d.session.GazeX.Target = math.Cos(angle) * d.cfg.Radius
	d.session.GazeY.Target = math.Sin(angle) * d.cfg.Radius
	d.session.Retargets++
}

// Update 推进空闲计时器
//
// 计时器按固定周期触发（以帧时间戳为准，与帧率无关）。一帧内跨过
// 多个周期时只触发一次。悬停期间计时器照常走但不修改目标。
func (d *TargetDriver) Update(nowMs float64) {
	interval := d.cfg.IdleIntervalMs
	if interval <= 0 {
		return
	}
	elapsed := nowMs - d.session.GazeTimerMs
	if elapsed < interval {
		return
	}
	d.session.GazeTimerMs += math.Floor(elapsed/interval) * interval
	if !d.session.Hovered {
		d.Retarget()
	}
}

// Start 选出第一个随机目标并启动计时器（会话开始时调用一次）
func (d *TargetDriver) Start(nowMs float64) {
	d.session.GazeTimerMs = nowMs
	d.Retarget()
	log.Printf("[TargetDriver] Gaze wandering started (radius=%.0f, interval=%.0fms)",
		d.cfg.Radius, d.cfg.IdleIntervalMs)
}

func (d *TargetDriver) float64() float64 {
	if d.rng == nil {
		return rand.Float64()
	}
	return d.rng.Float64()
}
