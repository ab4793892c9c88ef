package components

import "github.com/decker502/valentine/pkg/ecs"

// HeartParticle 一个漂浮的心形粒子（模拟记录）
//
// 生命周期：spawned → aging → retired
//   - Opacity 从 1 开始每帧线性递减，不会回升
//   - Scale 每帧按几何比例递减
//   - Opacity <= 0 的那一帧释放 Sprite 并从存活列表移除
//
// Sprite 是渲染层注册表中的不透明句柄，粒子退役后任何人都不能再引用它。
type HeartParticle struct {
	X, Y          float64 // 屏幕坐标
	VX, VY        float64 // 速度（像素/帧，VY 负数向上）
	Scale         float64 // 缩放倍数
	Opacity       float64 // 透明度 0-1
	Rotation      float64 // 角度（度）
	RotationSpeed float64 // 角速度（度/帧）

	Sprite ecs.EntityID // 渲染层句柄
}
