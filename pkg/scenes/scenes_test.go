package scenes

import (
	"errors"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/game"
	"github.com/decker502/valentine/pkg/renderer"
	"github.com/decker502/valentine/pkg/utils"
)

const sceneTestAsset = `
name: test
artboard:
  width: 480
  height: 400
viewModel:
  name: TestVM
  properties:
    - name: closeness
      type: number
    - name: eyeTargetX
      type: number
    - name: eyeTargetY
      type: number
character:
  faceRadius: 120
  eyeSpacing: 84
  eyeRadius: 26
  pupilRadius: 11
  gazeRange: 200
  maxPupilOffset: 12
  armRestOffset: 190
  armHugOffset: 110
  hugScale: 0.15
`

func newTestEnv() (*Env, *game.StepClock) {
	clock := &game.StepClock{}
	return &Env{
		Config:       config.DefaultAppConfig(),
		Settings:     game.NewSettingsManager(nil),
		SceneManager: game.NewSceneManager(),
		Clock:        clock,
		Rand:         rand.New(rand.NewSource(1)),
	}, clock
}

func newTestEngine(asset string) *renderer.Engine {
	return renderer.New(renderer.Options{
		ReadFile: func(path string) ([]byte, error) {
			if path == "data/animation.yaml" && asset != "" {
				return []byte(asset), nil
			}
			return nil, os.ErrNotExist
		},
	})
}

// pollUntilDone 反复 Update 直到场景切换或返回错误
func pollUntilDone(t *testing.T, env *Env, scene *LoadingScene) error {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := scene.Update(1.0 / 60); err != nil {
			return err
		}
		if env.SceneManager.GetCurrentScene() != Scene(scene) {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("loading did not finish in time")
	return nil
}

func TestLoadingSceneSwitchesOnLoad(t *testing.T) {
	env, _ := newTestEnv()
	loading := NewLoadingSceneWithEngine(env, newTestEngine(sceneTestAsset))
	env.SceneManager.SwitchTo(loading)

	if err := pollUntilDone(t, env, loading); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	main, ok := env.SceneManager.GetCurrentScene().(*ValentineScene)
	if !ok {
		t.Fatalf("current scene is %T, want *ValentineScene", env.SceneManager.GetCurrentScene())
	}
	if got := main.Session().Slots.Resolved(); got != 3 {
		t.Errorf("resolved inputs = %d, want 3", got)
	}
}

func TestLoadingSceneFatalWithoutViewModel(t *testing.T) {
	env, _ := newTestEnv()
	asset := "name: bare\nartboard:\n  width: 100\n  height: 100\n"
	loading := NewLoadingSceneWithEngine(env, newTestEngine(asset))
	env.SceneManager.SwitchTo(loading)

	err := pollUntilDone(t, env, loading)
	if !errors.Is(err, renderer.ErrNoViewModel) {
		t.Fatalf("Update() error = %v, want ErrNoViewModel", err)
	}
	if env.SceneManager.GetCurrentScene() != Scene(loading) {
		t.Error("scene should not switch after a fatal load error")
	}
}

func TestLoadingSceneFatalOnMissingAsset(t *testing.T) {
	env, _ := newTestEnv()
	loading := NewLoadingSceneWithEngine(env, newTestEngine(""))
	env.SceneManager.SwitchTo(loading)

	if err := pollUntilDone(t, env, loading); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Update() error = %v, want os.ErrNotExist", err)
	}
}

func newLoadedScene(t *testing.T) (*ValentineScene, *game.StepClock, *renderer.ViewModelInstance) {
	t.Helper()
	env, clock := newTestEnv()
	engine := newTestEngine(sceneTestAsset)
	engine.Load("data/animation.yaml")

	var vm *renderer.ViewModelInstance
	deadline := time.Now().Add(5 * time.Second)
	for {
		done, err := engine.Poll()
		if err != nil {
			t.Fatalf("Poll() error: %v", err)
		}
		if done {
			vm, _ = engine.Instance()
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("engine did not load in time")
		}
		time.Sleep(time.Millisecond)
	}
	return NewValentineScene(env, engine, vm), clock, vm
}

func TestValentineSceneLayout(t *testing.T) {
	scene, _, _ := newLoadedScene(t)

	want := utils.Rect{X: 300, Y: 504, Width: 200, Height: 56}
	if scene.button.Bounds != want {
		t.Errorf("button bounds = %+v, want %+v", scene.button.Bounds, want)
	}

	scene.Resize(1000, 800)
	if scene.button.Bounds.X != 400 || scene.button.Bounds.Y != 704 {
		t.Errorf("button not re-laid out: %+v", scene.button.Bounds)
	}
	if s := scene.engine.Surface(); s.Width != 1000 || s.Height != 800-80-56 {
		t.Errorf("drawing surface = %+v", s)
	}
}

func TestValentineSceneHoldDrivesRenderer(t *testing.T) {
	scene, clock, vm := newLoadedScene(t)
	cx, cy := scene.button.Bounds.Center()
	p := utils.PointerSnapshot{X: int(cx), Y: int(cy), Down: true}

	for i := 0; i < 60; i++ {
		clock.Advance(1000.0 / 60)
		scene.step(p, clock.NowMillis(), 1000.0/60)
	}

	if got := vm.Number("closeness").Value(); got < 0.99 {
		t.Errorf("closeness input = %v after 1s hold, want > 0.99", got)
	}
	if scene.session.LiveHearts() == 0 {
		t.Error("holding the button should spawn hearts")
	}
	if scene.heartRender.LiveSprites() != scene.session.LiveHearts() {
		t.Errorf("sprites %d != hearts %d", scene.heartRender.LiveSprites(), scene.session.LiveHearts())
	}
	// 指针在按钮上，视线看向观察者
	if scene.session.GazeX.Target != 0 || scene.session.GazeY.Target != 0 {
		t.Error("hovering the button should center the gaze target")
	}

	p.Down = false
	clock.Advance(1000.0 / 60)
	scene.step(p, clock.NowMillis(), 1000.0/60)
	if !scene.toast.Visible() {
		t.Error("release on the button should show the click message")
	}

	for i := 0; i < 120; i++ {
		clock.Advance(1000.0 / 60)
		scene.step(p, clock.NowMillis(), 1000.0/60)
	}
	if scene.session.LiveHearts() != 0 || scene.heartRender.LiveSprites() != 0 {
		t.Errorf("hearts=%d sprites=%d after release, want 0", scene.session.LiveHearts(), scene.heartRender.LiveSprites())
	}
	if got := vm.Number("closeness").Value(); got > 0.01 {
		t.Errorf("closeness input = %v after release, want near 0", got)
	}
	if scene.toast.Visible() {
		t.Error("click message should expire after its duration")
	}
}
