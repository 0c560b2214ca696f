package path

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// RootEnv 部署後原始碼路徑不存在，可用這個環境變數指定設定檔所在的根目錄
const RootEnv = "MODELFETCH_ROOT"

// RootPath 回傳專案根目錄的絕對路徑：優先 MODELFETCH_ROOT，否則由此檔案位置往上兩層
func RootPath() string {
	if root := strings.TrimSpace(os.Getenv(RootEnv)); root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			return abs
		}
		return filepath.Clean(root)
	}

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot resolve caller location")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Resolve 相對路徑以 base 為基準
func Resolve(base string, elem ...string) string {
	joined := filepath.Join(elem...)
	if filepath.IsAbs(joined) {
		return joined
	}
	return filepath.Join(append([]string{base}, elem...)...)
}

// Exists 路徑是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
