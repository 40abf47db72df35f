package config

import (
	"os"
	"path/filepath"
)

const DefaultConfigRelPath = "configs/conf.yml"

// Load 读取配置文件并反序列化到 out，文件变更时自动重新反序列化。
//
// 约定：
// 1) 传入 cfgName（相对/绝对路径）且文件存在则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`。
func Load(cfgName string, out any, onChange ...func()) (string, error) {
	path, err := Resolve(cfgName)
	if err != nil {
		return "", err
	}
	if err := load(path, out, onChange...); err != nil {
		return "", err
	}
	return path, nil
}

// Resolve 返回最终使用的配置文件绝对路径。
func Resolve(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		candidate := cfgName
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(curDir, cfgName)
		}
		if fileExist(candidate) {
			return candidate, nil
		}
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, DefaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{StartDir: startDir}
		}
		dir = parent
	}
}

type NotFoundError struct {
	StartDir string
}

func (e *NotFoundError) Error() string {
	return "config file not exist, searched " + DefaultConfigRelPath + " from: " + e.StartDir
}
