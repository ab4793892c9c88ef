package scenes

import (
	"math/rand"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// Env 所有场景共享的依赖
type Env struct {
	Config       *config.AppConfig
	Settings     *game.SettingsManager
	SceneManager *game.SceneManager
	Clock        game.Clock
	// Rand 视线和粒子使用的随机源（--seed 固定时可复现）
	Rand *rand.Rand
}
