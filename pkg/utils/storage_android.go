//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSettingsDir 在 gdata 初始化前创建 /data/data/{package}/settings
// gdata 在 Android 上不会预先创建子目录，目录不可写时设置无法持久化。
func EnsureSettingsDir() error {
	dir := SettingsDir()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}

	marker := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(marker, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", dir, err)
	}
	return os.Remove(marker)
}

// SettingsDir 返回设置目录；包名无法识别时返回空字符串
func SettingsDir() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔，第一段是包名
	pkg, _, _ := bytes.Cut(data, []byte{0})
	pkg = bytes.TrimSpace(pkg)
	if len(pkg) == 0 {
		return ""
	}
	return filepath.Join("/data/data", string(pkg), "settings")
}
