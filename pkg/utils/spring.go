package utils

import "github.com/charmbracelet/harmonica"

// SpringValue 阻尼弹簧标量
//
// Current 每帧向 Target 靠近；Velocity 由位移产生并按摩擦系数衰减。
// Current 没有上下界。
type SpringValue struct {
	Current  float64
	Target   float64
	Velocity float64
}

// NewSpringValue 创建一个静止在 initial 的弹簧
func NewSpringValue(initial float64) SpringValue {
	return SpringValue{Current: initial, Target: initial}
}

// Advance 推进一帧（半隐式欧拉）
//
//	force    = (target - current) * tension
//	velocity = (velocity + force) * friction
//	current  = current + velocity
func (s *SpringValue) Advance(tension, friction float64) {
	force := (s.Target - s.Current) * tension
	s.Velocity = (s.Velocity + force) * friction
	s.Current += s.Velocity
}

// Displacement 返回 |target - current|
func (s *SpringValue) Displacement() float64 {
	d := s.Target - s.Current
	if d < 0 {
		return -d
	}
	return d
}

// SpringStepper 推进弹簧一帧的策略
//
// ClassicStepper 是默认模型；HarmonicStepper 使用 harmonica 的解析阻尼谐振子，
// 两者可以通过配置 spring.model 切换。
type SpringStepper interface {
	Step(s *SpringValue)
}

// ClassicStepper 使用 tension/friction 常数的逐帧积分
type ClassicStepper struct {
	Tension  float64
	Friction float64
}

// Step 实现 SpringStepper
func (c ClassicStepper) Step(s *SpringValue) {
	s.Advance(c.Tension, c.Friction)
}

// HarmonicStepper 基于 harmonica.Spring（角频率 + 阻尼比）
type HarmonicStepper struct {
	spring harmonica.Spring
}

// NewHarmonicStepper 创建 harmonica 弹簧
// fps: 帧率；frequency: 角频率；damping: 阻尼比（1 为临界阻尼）
func NewHarmonicStepper(fps int, frequency, damping float64) HarmonicStepper {
	return HarmonicStepper{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Step 实现 SpringStepper
func (h HarmonicStepper) Step(s *SpringValue) {
	s.Current, s.Velocity = h.spring.Update(s.Current, s.Velocity, s.Target)
}

// ClosenessValue 亲密度：Target ∈ {0, 1}，Current 线性插值逼近 Target
type ClosenessValue struct {
	Current float64
	Target  float64
}

// Ease 向目标推进一帧：current += (target - current) * rate
// 不会越过目标，有限步内也不会精确到达。
func (c *ClosenessValue) Ease(rate float64) {
	c.Current = Lerp(c.Current, c.Target, rate)
}
