package systems

import (
	"math/rand"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/game"
)

// fakeSpriteLayer 记录精灵申请和释放的 SpriteLayer
type fakeSpriteLayer struct {
	nextID     ecs.EntityID
	live       map[ecs.EntityID]components.TransformComponent
	released   []ecs.EntityID
	badUpdates int // 对已释放句柄的写入次数
}

func newFakeSpriteLayer() *fakeSpriteLayer {
	return &fakeSpriteLayer{nextID: 1, live: make(map[ecs.EntityID]components.TransformComponent)}
}

func (f *fakeSpriteLayer) Acquire() ecs.EntityID {
	id := f.nextID
	f.nextID++
	f.live[id] = components.TransformComponent{}
	return id
}

func (f *fakeSpriteLayer) Update(id ecs.EntityID, t components.TransformComponent) {
	if _, ok := f.live[id]; !ok {
		f.badUpdates++
		return
	}
	f.live[id] = t
}

func (f *fakeSpriteLayer) Release(id ecs.EntityID) {
	delete(f.live, id)
	f.released = append(f.released, id)
}

// fixedOrigin 固定的生成中心
type fixedOrigin struct{ x, y float64 }

func (o fixedOrigin) ScreenCenter() (float64, float64) { return o.x, o.y }

// recordingSlot 记录最后写入值的渲染器输入
type recordingSlot struct {
	value  float64
	writes int
}

func (r *recordingSlot) SetValue(v float64) {
	r.value = v
	r.writes++
}

// testRig 一套完整的模拟组件
type testRig struct {
	session *game.Session
	sprites *fakeSpriteLayer
	driver  *TargetDriver
	hearts  *HeartParticleSystem
	loop    *FrameLoop
}

func newTestRig(seed int64) *testRig {
	cfg := config.DefaultAppConfig()
	rng := rand.New(rand.NewSource(seed))

	session := game.NewSession()
	sprites := newFakeSpriteLayer()
	driver := NewTargetDriver(session, cfg.Gaze, rng)
	hearts := NewHeartParticleSystem(session, cfg.Hearts, fixedOrigin{400, 300}, sprites, rng)
	loop := NewFrameLoop(session, driver, hearts, NewSpringStepper(cfg.Spring, cfg.Window.TPS), cfg.Closeness.EaseRate)

	return &testRig{
		session: session,
		sprites: sprites,
		driver:  driver,
		hearts:  hearts,
		loop:    loop,
	}
}

// frameTime 第 i 帧的时间戳（60 FPS）
func frameTime(i int) float64 {
	return float64(i) * 1000 / 60
}
