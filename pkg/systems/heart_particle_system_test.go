package systems

import (
	"math"
	"testing"
)

// TestSpawnGate 按住时 t、t+60 生成，t+10 不生成
func TestSpawnGate(t *testing.T) {
	rig := newTestRig(1)
	rig.driver.Press()

	const base = 1234.0
	tests := []struct {
		nowMs     float64
		wantSpawn bool
	}{
		{base, true},
		{base + 10, false},
		{base + 60, true},
	}

	for _, tt := range tests {
		got := rig.hearts.TrySpawn(tt.nowMs) != nil
		if got != tt.wantSpawn {
			t.Errorf("TrySpawn(%v) spawned=%v, want %v", tt.nowMs, got, tt.wantSpawn)
		}
	}
	if rig.session.LiveHearts() != 2 {
		t.Errorf("LiveHearts() = %d, want 2", rig.session.LiveHearts())
	}
}

// TestSpawnGateBoundary 间隔恰好等于 50ms 时允许生成
func TestSpawnGateBoundary(t *testing.T) {
	rig := newTestRig(1)
	rig.driver.Press()

	if rig.hearts.TrySpawn(0) == nil {
		t.Fatal("first spawn should pass the gate")
	}
	if rig.hearts.TrySpawn(49.9) != nil {
		t.Error("spawn at +49.9ms should be gated")
	}
	if rig.hearts.TrySpawn(50) == nil {
		t.Error("spawn at exactly +50ms should pass")
	}
}

// TestSpawnRequiresHold 未按住时从不生成
func TestSpawnRequiresHold(t *testing.T) {
	rig := newTestRig(1)
	for i := 0; i < 10; i++ {
		if rig.hearts.TrySpawn(float64(i) * 100) != nil {
			t.Fatal("spawned while not held")
		}
	}
}

// TestSpawnDisabled Enabled=false 时不生成
func TestSpawnDisabled(t *testing.T) {
	rig := newTestRig(1)
	rig.driver.Press()
	rig.hearts.Enabled = false
	if rig.hearts.TrySpawn(0) != nil {
		t.Error("spawned while disabled")
	}
}

// TestSpawnMaxLive 达到上限后不再生成
func TestSpawnMaxLive(t *testing.T) {
	rig := newTestRig(1)
	rig.hearts.cfg.MaxLive = 3
	rig.driver.Press()
	for i := 0; i < 10; i++ {
		rig.hearts.TrySpawn(float64(i) * 100)
	}
	if rig.session.LiveHearts() != 3 {
		t.Errorf("LiveHearts() = %d, want 3", rig.session.LiveHearts())
	}
}

// TestSpawnInitialState 新粒子的位置、速度、缩放都在配置范围内
func TestSpawnInitialState(t *testing.T) {
	rig := newTestRig(42)
	rig.driver.Press()
	cfg := rig.hearts.cfg

	for i := 0; i < 200; i++ {
		h := rig.hearts.TrySpawn(float64(i) * 50)
		if h == nil {
			t.Fatalf("spawn %d gated", i)
		}
		if dx := h.X - 400; math.Abs(dx) > 20 {
			t.Errorf("X jitter %v outside ±20", dx)
		}
		if dy := h.Y - 300; math.Abs(dy) > 10 {
			t.Errorf("Y jitter %v outside ±10", dy)
		}
		if h.Scale < 0.5 || h.Scale > 1.3 {
			t.Errorf("Scale %v outside [0.5, 1.3]", h.Scale)
		}
		if h.Opacity != 1 {
			t.Errorf("Opacity = %v, want 1", h.Opacity)
		}
		if h.VY >= 0 {
			t.Errorf("VY = %v, want upward (negative)", h.VY)
		}
		if !cfg.VelocityX.Contains(h.VX) || !cfg.Rotation.Contains(h.Rotation) || !cfg.RotationSpeed.Contains(h.RotationSpeed) {
			t.Errorf("randomized fields out of range: %+v", *h)
		}
		if _, ok := rig.sprites.live[h.Sprite]; !ok {
			t.Errorf("heart %d has no live sprite", i)
		}
	}
}

// TestAgingAndRetirement 透明度每帧精确减 0.01，第 100 次老化时移除
func TestAgingAndRetirement(t *testing.T) {
	rig := newTestRig(1)
	rig.driver.Press()
	h := rig.hearts.TrySpawn(0)
	rig.driver.Release()
	sprite := h.Sprite

	prevOpacity := h.Opacity
	prevScale := h.Scale
	for tick := 1; tick <= 99; tick++ {
		rig.hearts.Update()
		if rig.session.LiveHearts() != 1 {
			t.Fatalf("heart removed early at tick %d (opacity %v)", tick, h.Opacity)
		}
		if math.Abs(prevOpacity-h.Opacity-0.01) > 1e-12 {
			t.Fatalf("tick %d: opacity dropped by %v, want 0.01", tick, prevOpacity-h.Opacity)
		}
		if h.Scale >= prevScale {
			t.Fatalf("tick %d: scale did not shrink (%v -> %v)", tick, prevScale, h.Scale)
		}
		prevOpacity, prevScale = h.Opacity, h.Scale
	}

	rig.hearts.Update()
	if rig.session.LiveHearts() != 0 {
		t.Fatalf("heart should be removed on the 100th tick, opacity %v", h.Opacity)
	}
	if len(rig.sprites.released) != 1 || rig.sprites.released[0] != sprite {
		t.Errorf("released sprites = %v, want [%v]", rig.sprites.released, sprite)
	}
	if rig.sprites.badUpdates != 0 {
		t.Errorf("%d updates hit a released sprite", rig.sprites.badUpdates)
	}
}

// TestRetireSeveralInOneFrame 同一帧多个粒子退役时保留其余粒子
func TestRetireSeveralInOneFrame(t *testing.T) {
	rig := newTestRig(1)
	rig.driver.Press()
	for i := 0; i < 6; i++ {
		rig.hearts.TrySpawn(float64(i) * 50)
	}
	// 第 0、2、5 个粒子下一帧退役
	hearts := rig.session.Hearts
	hearts[0].Opacity = 0.005
	hearts[2].Opacity = 0.01
	hearts[5].Opacity = 0.001
	survivors := []float64{hearts[1].X, hearts[3].X, hearts[4].X}

	rig.hearts.Update()

	if rig.session.LiveHearts() != 3 {
		t.Fatalf("LiveHearts() = %d, want 3", rig.session.LiveHearts())
	}
	for i, h := range rig.session.Hearts {
		if math.Abs(h.X-h.VX-survivors[i]) > 1e-9 {
			t.Errorf("survivor %d out of order", i)
		}
	}
	if len(rig.sprites.released) != 3 || len(rig.sprites.live) != 3 {
		t.Errorf("released %d, live %d; want 3 and 3", len(rig.sprites.released), len(rig.sprites.live))
	}
}

// TestClearReleasesAll Clear 释放全部精灵
func TestClearReleasesAll(t *testing.T) {
	rig := newTestRig(1)
	rig.driver.Press()
	for i := 0; i < 4; i++ {
		rig.hearts.TrySpawn(float64(i) * 50)
	}
	rig.hearts.Clear()
	if rig.session.LiveHearts() != 0 || len(rig.sprites.live) != 0 {
		t.Errorf("after Clear: hearts=%d sprites=%d", rig.session.LiveHearts(), len(rig.sprites.live))
	}
	if rig.session.HeartsRetired != 4 {
		t.Errorf("HeartsRetired = %d, want 4", rig.session.HeartsRetired)
	}
}
