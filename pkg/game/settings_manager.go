package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/valentine/pkg/utils"
)

// Settings 全局用户设置（跨会话持久化）
type Settings struct {
	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
	ShowDebug  bool `yaml:"showDebug"`  // 是否显示调试信息（粒子数、输入值）

	// 效果设置
	HeartsEnabled bool `yaml:"heartsEnabled"` // 按住按钮时是否生成心形粒子
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		Fullscreen:    false,
		ShowDebug:     false,
		HeartsEnabled: true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *Settings      // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置并记录警告。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// OpenSettingsManager 打开 appName 对应的 gdata 存储并创建设置管理器
// 存储不可用时退化为仅内存模式
func OpenSettingsManager(appName string) *SettingsManager {
	if err := utils.EnsureSettingsDir(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return NewSettingsManager(nil)
	}
	return NewSettingsManager(gdataManager)
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始反序列化，旧版本存档缺失的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ToggleDebug 切换调试信息显示，返回新状态
func (sm *SettingsManager) ToggleDebug() bool {
	sm.settings.ShowDebug = !sm.settings.ShowDebug
	return sm.settings.ShowDebug
}

// ToggleHearts 切换心形粒子，返回新状态
func (sm *SettingsManager) ToggleHearts() bool {
	sm.settings.HeartsEnabled = !sm.settings.HeartsEnabled
	return sm.settings.HeartsEnabled
}
