package game

import (
	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/utils"
)

// NumberSlot 渲染器的数值输入（只写）
type NumberSlot interface {
	SetValue(v float64)
}

// RendererSlots 启动时解析出的三个输入
// 解析失败的输入为 nil，写入时跳过
type RendererSlots struct {
	Closeness  NumberSlot
	EyeTargetX NumberSlot
	EyeTargetY NumberSlot
}

// Resolved 返回成功解析的输入数量
func (s RendererSlots) Resolved() int {
	n := 0
	for _, slot := range []NumberSlot{s.Closeness, s.EyeTargetX, s.EyeTargetY} {
		if slot != nil {
			n++
		}
	}
	return n
}

// Session 一次页面会话的全部可变状态
//
// 由帧循环独占，按引用传给各个系统。所有修改都发生在
// ebiten 的 Update 调用内（单线程），不需要加锁。
type Session struct {
	// 亲密度与视线弹簧
	Closeness utils.ClosenessValue
	GazeX     utils.SpringValue
	GazeY     utils.SpringValue

	// 输入状态
	Held    bool
	Hovered bool

	// 存活的心形粒子
	Hearts []*components.HeartParticle

	// 渲染器输入
	Slots RendererSlots

	// 计时（帧时间戳，毫秒）
	NowMs       float64
	LastSpawnMs float64
	HasSpawned  bool
	GazeTimerMs float64 // 空闲视线计时器上次触发的时间

	// 统计
	Frame         uint64
	HeartsSpawned uint64
	HeartsRetired uint64
	Presses       uint64
	Retargets     uint64
}

// NewSession 创建初始会话：视线弹簧静止在原点，亲密度为 0
func NewSession() *Session {
	return &Session{
		GazeX:  utils.NewSpringValue(0),
		GazeY:  utils.NewSpringValue(0),
		Hearts: make([]*components.HeartParticle, 0, 128),
	}
}

// LiveHearts 返回存活粒子数
func (s *Session) LiveHearts() int {
	return len(s.Hearts)
}
