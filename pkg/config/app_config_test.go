package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/valentine/internal/particle"
	"github.com/decker502/valentine/pkg/embedded"
)

// TestDefaultAppConfig 测试默认值与动画手感常数一致
func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultAppConfig().Validate() error: %v", err)
	}
	if cfg.Spring.Tension != 0.08 || cfg.Spring.Friction != 0.85 {
		t.Errorf("Spring: got %v/%v, want 0.08/0.85", cfg.Spring.Tension, cfg.Spring.Friction)
	}
	if cfg.Closeness.EaseRate != 0.1 {
		t.Errorf("EaseRate: got %v, want 0.1", cfg.Closeness.EaseRate)
	}
	if cfg.Gaze.Radius != 200 || cfg.Gaze.IdleIntervalMs != 1000 {
		t.Errorf("Gaze: got %+v", cfg.Gaze)
	}
	if cfg.Hearts.SpawnIntervalMs != 50 {
		t.Errorf("SpawnIntervalMs: got %v, want 50", cfg.Hearts.SpawnIntervalMs)
	}
	if cfg.Hearts.JitterX != particle.Symmetric(20) || cfg.Hearts.JitterY != particle.Symmetric(10) {
		t.Errorf("Jitter: got %v / %v", cfg.Hearts.JitterX, cfg.Hearts.JitterY)
	}
	if cfg.Hearts.Scale != (particle.Range{Min: 0.5, Max: 1.3}) {
		t.Errorf("Scale: got %v", cfg.Hearts.Scale)
	}
	if cfg.Hearts.ScaleDecay != 0.995 || cfg.Hearts.OpacityDecay != 0.01 {
		t.Errorf("Decay: got %v / %v", cfg.Hearts.ScaleDecay, cfg.Hearts.OpacityDecay)
	}
}

// TestParseAppConfigPartial 测试部分覆盖保留其他默认值
func TestParseAppConfigPartial(t *testing.T) {
	src := `
gaze:
  radius: 120
hearts:
  scale: "[1 2]"
`
	cfg, err := ParseAppConfig([]byte(src))
	if err != nil {
		t.Fatalf("ParseAppConfig error: %v", err)
	}
	if cfg.Gaze.Radius != 120 {
		t.Errorf("Gaze.Radius: got %v, want 120", cfg.Gaze.Radius)
	}
	if cfg.Gaze.IdleIntervalMs != 1000 {
		t.Errorf("Gaze.IdleIntervalMs should keep default, got %v", cfg.Gaze.IdleIntervalMs)
	}
	if cfg.Hearts.Scale != (particle.Range{Min: 1, Max: 2}) {
		t.Errorf("Hearts.Scale: got %v", cfg.Hearts.Scale)
	}
	if cfg.Spring.Tension != 0.08 {
		t.Errorf("Spring.Tension should keep default, got %v", cfg.Spring.Tension)
	}
}

// TestValidateRejects 测试非法配置
func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"tension 为 0", "spring:\n  tension: 0\n"},
		{"friction 为 1", "spring:\n  friction: 1\n"},
		{"未知弹簧模型", "spring:\n  model: bouncy\n"},
		{"harmonica 频率为 0", "spring:\n  model: harmonica\n  frequency: 0\n"},
		{"空输入名", "renderer:\n  slots:\n    closeness: \"\"\n"},
		{"空资源路径", "renderer:\n  asset: \"\"\n"},
		{"生成间隔为 0", "hearts:\n  spawnIntervalMs: 0\n"},
		{"透明度不衰减", "hearts:\n  opacityDecay: 0\n"},
		{"缩放为 0", "hearts:\n  scale: \"[0 1]\"\n"},
		{"负数上限", "hearts:\n  maxLive: -1\n"},
		{"空闲周期为 0", "gaze:\n  idleIntervalMs: 0\n"},
		{"窗口宽度为 0", "window:\n  width: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAppConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
		})
	}
}

// TestParseAppConfigBadYAML 测试 YAML 语法错误
func TestParseAppConfigBadYAML(t *testing.T) {
	_, err := ParseAppConfig([]byte("hearts:\n  scale: \"[1\"\n"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("parse errors should not be reported as validation errors")
	}
}

// TestLoadAppConfigEmbedded 测试从嵌入资源加载仓库中的默认配置文件
func TestLoadAppConfigEmbedded(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("read %s: %v", DefaultConfigPath, err)
	}
	embedded.Init(fstest.MapFS{DefaultConfigPath: &fstest.MapFile{Data: data}})

	cfg, err := LoadAppConfig(DefaultConfigPath)
	if err != nil {
		t.Fatalf("LoadAppConfig error: %v", err)
	}

	// 仓库配置文件应与默认值完全一致
	want := DefaultAppConfig()
	if *cfg != *want {
		t.Errorf("data/valentine.yaml differs from DefaultAppConfig():\n got  %+v\n want %+v", *cfg, *want)
	}
}

// TestLoadAppConfigMissing 测试文件不存在
func TestLoadAppConfigMissing(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("error should mention the path, got %v", err)
	}
}
