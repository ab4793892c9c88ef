package systems

import (
	"log"
	"math/rand"
	"slices"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/ecs"
	"github.com/decker502/valentine/pkg/game"
)

// SpriteLayer 渲染层的精灵注册表
//
// 每个存活的心形粒子独占一个精灵句柄：生成时 Acquire，
// 退役时 Release。Release 之后句柄不可再使用。
type SpriteLayer interface {
	Acquire() ecs.EntityID
	Update(id ecs.EntityID, transform components.TransformComponent)
	Release(id ecs.EntityID)
}

// SpawnOrigin 提供粒子生成的基准点（渲染器绘制区域中心）
type SpawnOrigin interface {
	ScreenCenter() (float64, float64)
}

// HeartParticleSystem 心形粒子系统
//
// 粒子状态机：spawned → aging → retired
//   - 生成门：按住按钮，且距上次生成不少于 SpawnIntervalMs
//   - 老化：每帧平移、旋转、缩放按比例衰减、透明度线性衰减
//   - 退役：透明度 <= 0 的那一帧释放精灵并移出存活列表
type HeartParticleSystem struct {
	session *game.Session
	cfg     config.HeartsConfig
	origin  SpawnOrigin
	sprites SpriteLayer
	rng     *rand.Rand

	// Enabled 为 false 时不再生成新粒子（已有粒子照常老化）
	Enabled bool
}

// NewHeartParticleSystem 创建心形粒子系统
// rng 为 nil 时使用全局随机源
func NewHeartParticleSystem(session *game.Session, cfg config.HeartsConfig, origin SpawnOrigin, sprites SpriteLayer, rng *rand.Rand) *HeartParticleSystem {
	return &HeartParticleSystem{
		session: session,
		cfg:     cfg,
		origin:  origin,
		sprites: sprites,
		rng:     rng,
		Enabled: true,
	}
}

// CanSpawn 检查生成门
func (s *HeartParticleSystem) CanSpawn(nowMs float64) bool {
	if !s.session.Held || !s.Enabled {
		return false
	}
	if s.cfg.MaxLive > 0 && len(s.session.Hearts) >= s.cfg.MaxLive {
		return false
	}
	if !s.session.HasSpawned {
		return true
	}
	return nowMs-s.session.LastSpawnMs >= s.cfg.SpawnIntervalMs
}

// TrySpawn 生成门通过时生成一个粒子
// 返回新粒子；未生成时返回 nil
func (s *HeartParticleSystem) TrySpawn(nowMs float64) *components.HeartParticle {
	if !s.CanSpawn(nowMs) {
		return nil
	}
	heart := s.spawn()
	s.session.LastSpawnMs = nowMs
	s.session.HasSpawned = true
	return heart
}

// spawn 在渲染器中心附近创建粒子并申请精灵
func (s *HeartParticleSystem) spawn() *components.HeartParticle {
	cx, cy := s.origin.ScreenCenter()

	heart := &components.HeartParticle{
		X:             cx + s.cfg.JitterX.Sample(s.rng),
		Y:             cy + s.cfg.JitterY.Sample(s.rng),
		VX:            s.cfg.VelocityX.Sample(s.rng),
		VY:            s.cfg.VelocityY.Sample(s.rng),
		Scale:         s.cfg.Scale.Sample(s.rng),
		Opacity:       1,
		Rotation:      s.cfg.Rotation.Sample(s.rng),
		RotationSpeed: s.cfg.RotationSpeed.Sample(s.rng),
	}
	heart.Sprite = s.sprites.Acquire()
	s.sprites.Update(heart.Sprite, transformOf(heart))

	s.session.Hearts = append(s.session.Hearts, heart)
	s.session.HeartsSpawned++
	return heart
}

// Update 老化所有存活粒子并移除退役粒子
//
// 倒序遍历，同一帧内多个粒子退役时剩余下标仍然有效。
func (s *HeartParticleSystem) Update() {
	hearts := s.session.Hearts
	for i := len(hearts) - 1; i >= 0; i-- {
		h := hearts[i]

		h.X += h.VX
		h.Y += h.VY
		h.Rotation += h.RotationSpeed
		h.Scale *= s.cfg.ScaleDecay
		h.Opacity -= s.cfg.OpacityDecay

		if h.Opacity <= 0 {
			s.retire(h)
			hearts = slices.Delete(hearts, i, i+1)
			continue
		}
		s.sprites.Update(h.Sprite, transformOf(h))
	}
	s.session.Hearts = hearts
}

// Clear 立即退役全部粒子
func (s *HeartParticleSystem) Clear() {
	n := len(s.session.Hearts)
	for i := n - 1; i >= 0; i-- {
		s.retire(s.session.Hearts[i])
	}
	s.session.Hearts = s.session.Hearts[:0]
	if n > 0 {
		log.Printf("[HeartParticleSystem] Cleared %d live hearts", n)
	}
}

func (s *HeartParticleSystem) retire(h *components.HeartParticle) {
	s.sprites.Release(h.Sprite)
	h.Sprite = ecs.InvalidEntity
	s.session.HeartsRetired++
}

func transformOf(h *components.HeartParticle) components.TransformComponent {
	return components.TransformComponent{
		X:        h.X,
		Y:        h.Y,
		Scale:    h.Scale,
		Rotation: h.Rotation,
		Alpha:    h.Opacity,
	}
}
