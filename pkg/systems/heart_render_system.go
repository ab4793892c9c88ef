package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/valentine/pkg/components"
	"github.com/decker502/valentine/pkg/ecs"
)

// heartTextureSize 心形纹理边长（像素）
const heartTextureSize = 64

// HeartColor 心形颜色
var HeartColor = color.RGBA{R: 255, G: 92, B: 138, A: 255}

// HeartRenderSystem 心形精灵层
//
// 实现 SpriteLayer：每个精灵是 EntityManager 中的一个实体，
// 带有 SpriteComponent 和 TransformComponent。
// 粒子系统只持有 EntityID，图像资源由本系统独占。
type HeartRenderSystem struct {
	entityManager *ecs.EntityManager
	size          float64

	texture *ebiten.Image

	acquired uint64
	released uint64
}

// NewHeartRenderSystem 创建心形精灵层
// size: 心形基础尺寸（像素，缩放前）
func NewHeartRenderSystem(em *ecs.EntityManager, size float64) *HeartRenderSystem {
	return &HeartRenderSystem{
		entityManager: em,
		size:          size,
	}
}

// Acquire 创建一个精灵实体
func (s *HeartRenderSystem) Acquire() ecs.EntityID {
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.SpriteComponent{
		Kind: components.SpriteHeart,
		Size: s.size,
	})
	s.entityManager.AddComponent(id, &components.TransformComponent{
		Scale: 1,
		Alpha: 1,
	})
	s.acquired++
	return id
}

// Update 写入精灵变换
func (s *HeartRenderSystem) Update(id ecs.EntityID, transform components.TransformComponent) {
	tc, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return
	}
	*tc = transform
}

// Release 销毁精灵实体（重复释放无效果）
func (s *HeartRenderSystem) Release(id ecs.EntityID) {
	if !s.entityManager.Exists(id) {
		return
	}
	s.entityManager.DestroyEntity(id)
	s.entityManager.RemoveMarkedEntities()
	s.released++
}

// LiveSprites 返回存活的精灵数量
func (s *HeartRenderSystem) LiveSprites() int {
	return len(ecs.GetEntitiesWith1[*components.SpriteComponent](s.entityManager))
}

// Stats 返回累计申请和释放次数
func (s *HeartRenderSystem) Stats() (acquired, released uint64) {
	return s.acquired, s.released
}

// Draw 按创建顺序绘制所有心形（后生成的在上层）
func (s *HeartRenderSystem) Draw(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.TransformComponent](s.entityManager)
	if len(ids) == 0 {
		return
	}
	if s.texture == nil {
		s.texture = newHeartTexture(heartTextureSize)
	}

	for _, id := range ids {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		tc, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if tc.Alpha <= 0 || tc.Scale <= 0 {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		// 平移到中心 → 缩放 → 旋转 → 平移到屏幕位置
		op.GeoM.Translate(-heartTextureSize/2, -heartTextureSize/2)
		op.GeoM.Scale(tc.Scale*sprite.Size/heartTextureSize, tc.Scale*sprite.Size/heartTextureSize)
		op.GeoM.Rotate(tc.Rotation * math.Pi / 180)
		op.GeoM.Translate(tc.X, tc.Y)
		op.ColorScale.ScaleAlpha(float32(tc.Alpha))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(s.texture, op)
	}
}

// newHeartTexture 用一个旋转 45° 的正方形和两个圆拼出心形
//
// 正方形边长 0.42n，中心 (0.5n, 0.55n)；两个圆的直径等于边长，
// 圆心位于正方形上方两条边的中点。
func newHeartTexture(n int) *ebiten.Image {
	img := ebiten.NewImage(n, n)
	size := float64(n)

	side := 0.42 * size
	cx, cy := 0.5*size, 0.55*size
	halfDiag := side / math.Sqrt2

	square := ebiten.NewImage(1, 1)
	square.Fill(color.White)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(side, side)
	op.GeoM.Rotate(math.Pi / 4)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(HeartColor)
	op.Filter = ebiten.FilterLinear
	img.DrawImage(square, op)
	square.Deallocate()

	r := float32(side / 2)
	topY := cy - halfDiag
	leftX, rightX := cx-halfDiag, cx+halfDiag
	// 上方两条边的中点
	vector.DrawFilledCircle(img, float32((cx+leftX)/2), float32((topY+cy)/2), r, HeartColor, true)
	vector.DrawFilledCircle(img, float32((cx+rightX)/2), float32((topY+cy)/2), r, HeartColor, true)
	return img
}
