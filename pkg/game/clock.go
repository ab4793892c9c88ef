package game

import "time"

// Clock 提供帧时间戳（毫秒）
// 粒子生成间隔和空闲视线计时都以帧时间戳为准
type Clock interface {
	NowMillis() float64
}

// RealClock 墙上时钟，从创建时刻开始计时
type RealClock struct {
	start time.Time
}

// NewRealClock 创建从当前时刻开始的时钟
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

// NowMillis 实现 Clock
func (c *RealClock) NowMillis() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// StepClock 手动推进的时钟（无头模拟和测试使用）
type StepClock struct {
	now float64
}

// NowMillis 实现 Clock
func (c *StepClock) NowMillis() float64 {
	return c.now
}

// Advance 推进 ms 毫秒
func (c *StepClock) Advance(ms float64) {
	c.now += ms
}

// Set 设置绝对时间
func (c *StepClock) Set(ms float64) {
	c.now = ms
}
