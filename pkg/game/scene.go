package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents an application scene (loading screen, the button scene).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	// A non-nil error is fatal and terminates the run loop.
	Update(deltaTime float64) error

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景实现后会在逻辑屏幕尺寸变化时收到通知
type Resizable interface {
	Resize(width, height int)
}
