package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/valentine/internal/particle"
	"github.com/decker502/valentine/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入的默认配置文件
const DefaultConfigPath = "data/valentine.yaml"

// Spring models
const (
	SpringModelClassic   = "classic"
	SpringModelHarmonica = "harmonica"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// AppConfig 应用全部可调参数
// 所有字段都有默认值（DefaultAppConfig），YAML 中只需覆盖需要修改的部分
type AppConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Spring    SpringConfig    `yaml:"spring"`
	Closeness ClosenessConfig `yaml:"closeness"`
	Gaze      GazeConfig      `yaml:"gaze"`
	Hearts    HeartsConfig    `yaml:"hearts"`
	Button    ButtonConfig    `yaml:"button"`
}

// WindowConfig 窗口设置
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 逻辑屏幕宽度
	Height int    `yaml:"height"` // 逻辑屏幕高度
	Title  string `yaml:"title"`  // 窗口标题
	TPS    int    `yaml:"tps"`    // 每秒更新次数（帧循环频率）
}

// RendererConfig 动画渲染器设置
type RendererConfig struct {
	Asset string    `yaml:"asset"` // 动画资源路径（如 "data/animation.yaml"）
	Slots SlotNames `yaml:"slots"` // 视图模型中的数值输入名称
}

// SlotNames 渲染器视图模型的三个数值输入
type SlotNames struct {
	Closeness  string `yaml:"closeness"`
	EyeTargetX string `yaml:"eyeTargetX"`
	EyeTargetY string `yaml:"eyeTargetY"`
}

// SpringConfig 视线弹簧参数
type SpringConfig struct {
	Model    string  `yaml:"model"`    // "classic" 或 "harmonica"
	Tension  float64 `yaml:"tension"`  // classic: 弹性系数 (0,1)
	Friction float64 `yaml:"friction"` // classic: 速度保留系数 (0,1)

	Frequency float64 `yaml:"frequency"` // harmonica: 角频率
	Damping   float64 `yaml:"damping"`   // harmonica: 阻尼比
}

// ClosenessConfig 亲密度缓动参数
type ClosenessConfig struct {
	EaseRate float64 `yaml:"easeRate"` // 每帧逼近比例
}

// GazeConfig 视线目标参数
type GazeConfig struct {
	Radius         float64 `yaml:"radius"`         // 空闲时随机目标所在圆的半径
	IdleIntervalMs float64 `yaml:"idleIntervalMs"` // 空闲重新随机的周期（毫秒）
}

// HeartsConfig 心形粒子参数
type HeartsConfig struct {
	SpawnIntervalMs float64        `yaml:"spawnIntervalMs"` // 最小生成间隔（毫秒）
	JitterX         particle.Range `yaml:"jitterX"`         // 生成位置水平抖动
	JitterY         particle.Range `yaml:"jitterY"`         // 生成位置垂直抖动
	VelocityX       particle.Range `yaml:"velocityX"`       // 水平漂移（像素/帧）
	VelocityY       particle.Range `yaml:"velocityY"`       // 垂直速度（负数向上，像素/帧）
	Scale           particle.Range `yaml:"scale"`           // 初始缩放
	Rotation        particle.Range `yaml:"rotation"`        // 初始角度（度）
	RotationSpeed   particle.Range `yaml:"rotationSpeed"`   // 旋转速度（度/帧）
	ScaleDecay      float64        `yaml:"scaleDecay"`      // 每帧缩放乘数
	OpacityDecay    float64        `yaml:"opacityDecay"`    // 每帧透明度减量
	MaxLive         int            `yaml:"maxLive"`         // 同时存活上限（0 = 不限制）
	Size            float64        `yaml:"size"`            // 心形图标基础尺寸（像素）
}

// ButtonConfig 按钮与点击提示
type ButtonConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	MarginBottom      float64 `yaml:"marginBottom"`      // 距离窗口底部
	Label             string  `yaml:"label"`             // 按钮文字
	ClickMessage      string  `yaml:"clickMessage"`      // 点击后的提示文字
	MessageDurationMs float64 `yaml:"messageDurationMs"` // 提示显示时长
}

// DefaultAppConfig 返回默认配置
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Valentine",
			TPS:    60,
		},
		Renderer: RendererConfig{
			Asset: "data/animation.yaml",
			Slots: SlotNames{
				Closeness:  "closeness",
				EyeTargetX: "eyeTargetX",
				EyeTargetY: "eyeTargetY",
			},
		},
		Spring: SpringConfig{
			Model:     SpringModelClassic,
			Tension:   0.08,
			Friction:  0.85,
			Frequency: 6.0,
			Damping:   0.6,
		},
		Closeness: ClosenessConfig{
			EaseRate: 0.1,
		},
		Gaze: GazeConfig{
			Radius:         200,
			IdleIntervalMs: 1000,
		},
		Hearts: HeartsConfig{
			SpawnIntervalMs: 50,
			JitterX:         particle.Symmetric(20),
			JitterY:         particle.Symmetric(10),
			VelocityX:       particle.Symmetric(1),
			VelocityY:       particle.Fixed(-2),
			Scale:           particle.Range{Min: 0.5, Max: 1.3},
			Rotation:        particle.Symmetric(30),
			RotationSpeed:   particle.Symmetric(2),
			ScaleDecay:      0.995,
			OpacityDecay:    0.01,
			MaxLive:         0,
			Size:            24,
		},
		Button: ButtonConfig{
			Width:             200,
			Height:            56,
			MarginBottom:      40,
			Label:             "Hold me",
			ClickMessage:      "Super!",
			MessageDurationMs: 1500,
		},
	}
}

// LoadAppConfig 从 YAML 加载配置
//
// 文件中缺失的字段保留默认值。path 以 "data/" 开头时从嵌入资源读取，
// 否则从磁盘读取。
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config %s: %w", path, err)
	}

	cfg, err := ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load app config %s: %w", path, err)
	}

	log.Printf("[Config] Loaded app config from %s (spring=%s, gaze radius=%.0f)", path, cfg.Spring.Model, cfg.Gaze.Radius)
	return cfg, nil
}

// ParseAppConfig 解析 YAML 数据并校验
func ParseAppConfig(data []byte) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值
func (c *AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("%w: window.tps must be positive, got %d", ErrInvalidConfig, c.Window.TPS)
	}
	if c.Renderer.Asset == "" {
		return fmt.Errorf("%w: renderer.asset is required", ErrInvalidConfig)
	}
	slots := c.Renderer.Slots
	if slots.Closeness == "" || slots.EyeTargetX == "" || slots.EyeTargetY == "" {
		return fmt.Errorf("%w: renderer.slots must name all three inputs", ErrInvalidConfig)
	}

	switch c.Spring.Model {
	case SpringModelClassic:
		if !inOpenUnit(c.Spring.Tension) || !inOpenUnit(c.Spring.Friction) {
			return fmt.Errorf("%w: spring tension and friction must be in (0,1), got %v/%v",
				ErrInvalidConfig, c.Spring.Tension, c.Spring.Friction)
		}
	case SpringModelHarmonica:
		if c.Spring.Frequency <= 0 || c.Spring.Damping <= 0 {
			return fmt.Errorf("%w: harmonica frequency and damping must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: spring.model must be one of: classic, harmonica, got %q", ErrInvalidConfig, c.Spring.Model)
	}

	if !inOpenUnit(c.Closeness.EaseRate) && c.Closeness.EaseRate != 1 {
		return fmt.Errorf("%w: closeness.easeRate must be in (0,1], got %v", ErrInvalidConfig, c.Closeness.EaseRate)
	}
	if c.Gaze.Radius < 0 {
		return fmt.Errorf("%w: gaze.radius cannot be negative", ErrInvalidConfig)
	}
	if c.Gaze.IdleIntervalMs <= 0 {
		return fmt.Errorf("%w: gaze.idleIntervalMs must be positive", ErrInvalidConfig)
	}

	h := c.Hearts
	if h.SpawnIntervalMs <= 0 {
		return fmt.Errorf("%w: hearts.spawnIntervalMs must be positive", ErrInvalidConfig)
	}
	if h.OpacityDecay <= 0 {
		return fmt.Errorf("%w: hearts.opacityDecay must be positive (particles would never retire)", ErrInvalidConfig)
	}
	if !inOpenUnit(h.ScaleDecay) && h.ScaleDecay != 1 {
		return fmt.Errorf("%w: hearts.scaleDecay must be in (0,1], got %v", ErrInvalidConfig, h.ScaleDecay)
	}
	if h.Scale.Min <= 0 {
		return fmt.Errorf("%w: hearts.scale must be positive, got %v", ErrInvalidConfig, h.Scale)
	}
	if h.MaxLive < 0 {
		return fmt.Errorf("%w: hearts.maxLive cannot be negative", ErrInvalidConfig)
	}
	if h.Size <= 0 {
		return fmt.Errorf("%w: hearts.size must be positive", ErrInvalidConfig)
	}

	if c.Button.Width <= 0 || c.Button.Height <= 0 {
		return fmt.Errorf("%w: button size must be positive", ErrInvalidConfig)
	}
	if c.Button.MessageDurationMs < 0 {
		return fmt.Errorf("%w: button.messageDurationMs cannot be negative", ErrInvalidConfig)
	}
	return nil
}

func inOpenUnit(v float64) bool {
	return v > 0 && v < 1
}
