package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages the application's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	width        int
	height       int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
// 如果已知屏幕尺寸，新场景会立即收到一次 Resize
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	log.Printf("[SceneManager] Switched to %T", scene)
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Resize 记录逻辑屏幕尺寸并转发给当前场景（尺寸不变时忽略）
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update(deltaTime)
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
