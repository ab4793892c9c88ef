//go:build !android

package utils

// EnsureSettingsDir 非 Android 平台无需处理
// gdata 会自动创建存储目录
func EnsureSettingsDir() error {
	return nil
}

// SettingsDir 非 Android 平台返回空字符串（由 gdata 决定路径）
func SettingsDir() string {
	return ""
}
