package utils

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Trinoooo/dastcom/errs"
)

// CheckAndCreateFile opens filePath with flag, creating missing parent
// directories first.
func CheckAndCreateFile(filePath string, flag int, perm os.FileMode) (*os.File, error) {
	dir := filepath.Dir(filePath)
	_, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(dir, 0770); err != nil {
			return nil, errs.NewMkdirErr().WithErr(err)
		}
	} else if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, errs.NewFileNoPermissionErr().WithErr(err)
		}
		return nil, errs.NewFileStatErr().WithErr(err)
	}

	fd, err := os.OpenFile(filePath, flag, perm)
	if err != nil {
		return nil, errs.NewOpenFileErr().WithErr(err)
	}
	return fd, nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if errors.Is(err, os.ErrPermission) {
		return false, errs.NewFileNoPermissionErr().WithErr(err)
	}
	return false, errs.NewFileStatErr().WithErr(err)
}
