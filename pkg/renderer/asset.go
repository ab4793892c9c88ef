package renderer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Asset 动画资源描述
//
// 资源声明画板尺寸、视图模型（对外暴露的数值输入）和角色外观参数。
type Asset struct {
	Name      string         `yaml:"name"`
	Artboard  ArtboardSpec   `yaml:"artboard"`
	ViewModel *ViewModelSpec `yaml:"viewModel"` // 为 nil 时无法绑定输入（致命错误）
	Character CharacterSpec  `yaml:"character"`
}

// ArtboardSpec 画板尺寸（资源坐标系）
type ArtboardSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ViewModelSpec 视图模型声明
type ViewModelSpec struct {
	Name       string         `yaml:"name"`
	Properties []PropertySpec `yaml:"properties"`
}

// PropertySpec 视图模型属性
type PropertySpec struct {
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type"` // 目前只支持 "number"
	Default float64 `yaml:"default"`
}

// CharacterSpec 角色外观参数（画板坐标，原点为画板中心）
type CharacterSpec struct {
	FaceRadius     float64 `yaml:"faceRadius"`
	FaceColor      Color   `yaml:"faceColor"`
	OutlineColor   Color   `yaml:"outlineColor"`
	EyeSpacing     float64 `yaml:"eyeSpacing"`
	EyeOffsetY     float64 `yaml:"eyeOffsetY"`
	EyeRadius      float64 `yaml:"eyeRadius"`
	PupilRadius    float64 `yaml:"pupilRadius"`
	PupilColor     Color   `yaml:"pupilColor"`
	GazeRange      float64 `yaml:"gazeRange"`      // eyeTarget 输入的满量程
	MaxPupilOffset float64 `yaml:"maxPupilOffset"` // 瞳孔最大偏移
	CheekColor     Color   `yaml:"cheekColor"`
	CheekRadius    float64 `yaml:"cheekRadius"`
	ArmRadius      float64 `yaml:"armRadius"`
	ArmRestOffset  float64 `yaml:"armRestOffset"` // closeness=0 时手臂离中心的距离
	ArmHugOffset   float64 `yaml:"armHugOffset"`  // closeness=1 时手臂离中心的距离
	HugScale       float64 `yaml:"hugScale"`      // closeness=1 时脸部额外放大比例
}

// Color 支持 "#rrggbb" 和 "#rrggbbaa" 格式的颜色
type Color color.RGBA

// ParseColor 解析十六进制颜色
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("color %q must be #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// RGBA 返回 color.RGBA
func (c Color) RGBA() color.RGBA {
	return color.RGBA(c)
}

// ParseAsset 解析动画资源
func ParseAsset(data []byte) (*Asset, error) {
	var asset Asset
	if err := yaml.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("failed to parse animation asset: %w", err)
	}
	if asset.Artboard.Width <= 0 || asset.Artboard.Height <= 0 {
		return nil, fmt.Errorf("artboard size must be positive, got %vx%v", asset.Artboard.Width, asset.Artboard.Height)
	}
	if asset.ViewModel != nil {
		seen := make(map[string]bool, len(asset.ViewModel.Properties))
		for i, p := range asset.ViewModel.Properties {
			if p.Name == "" {
				return nil, fmt.Errorf("viewModel property %d: name is required", i)
			}
			if p.Type != "" && p.Type != "number" {
				return nil, fmt.Errorf("viewModel property %q: unsupported type %q", p.Name, p.Type)
			}
			if seen[p.Name] {
				return nil, fmt.Errorf("viewModel property %q declared twice", p.Name)
			}
			seen[p.Name] = true
		}
	}
	return &asset, nil
}
