package components

// SpriteKind 精灵类型
type SpriteKind int

const (
	// SpriteHeart 心形图标
	SpriteHeart SpriteKind = iota
)

// SpriteComponent 渲染层中的一个精灵
type SpriteComponent struct {
	Kind SpriteKind
	Size float64 // 基础尺寸（像素，缩放前）
}

// TransformComponent 精灵每帧的变换（平移 → 缩放 → 旋转）与透明度
type TransformComponent struct {
	X, Y     float64 // 中心点（屏幕坐标）
	Scale    float64 // 1.0 = 原始大小
	Rotation float64 // 角度（度）
	Alpha    float64 // 0 = 完全透明
}
