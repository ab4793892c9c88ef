// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 使用前必须调用 Init() 初始化。路径不以 "data/" 开头时
// 视为磁盘路径（用于 --config 等覆盖参数）。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// IsEmbeddedPath 检查路径是否指向嵌入资源
func IsEmbeddedPath(path string) bool {
	return strings.HasPrefix(normalize(path), "data/")
}

// ReadFile 读取文件内容
// "data/" 前缀从嵌入资源读取，其他路径从磁盘读取
func ReadFile(path string) ([]byte, error) {
	if !IsEmbeddedPath(path) {
		return os.ReadFile(path)
	}
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}
	return fs.ReadFile(dataFS, normalize(path))
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	if !IsEmbeddedPath(path) {
		_, err := os.Stat(path)
		return err == nil
	}
	if !initialized {
		return false
	}
	_, err := fs.Stat(dataFS, normalize(path))
	return err == nil
}
