package utils

import (
	"os"
	"path/filepath"
	"strings"
)

func GetFilenameWithoutExt(path string) (name string) {
	name = filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(path))
	return
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// 删除已存在的文件，不存在时不报错
func RemoveIfExists(path string) (err error) {
	if err = os.Remove(path); os.IsNotExist(err) {
		err = nil
	}
	return
}
