package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Trinoooo/dastcom/errs"
	"github.com/stretchr/testify/assert"
)

type TestFile struct {
	Description string
	Path        string
}

func TestCheckAndCreateFile(t *testing.T) {
	base := t.TempDir()
	testList := []*TestFile{
		{
			Description: "dir not exist",
			Path:        filepath.Join(base, "a", "b", "f1"),
		},
		{
			Description: "dir exist",
			Path:        filepath.Join(base, "a", "b", "f2"),
		},
		{
			Description: "file directly under base",
			Path:        filepath.Join(base, "f3"),
		},
	}

	for _, item := range testList {
		fd, err := CheckAndCreateFile(item.Path, os.O_CREATE|os.O_RDWR, 0660)
		if assert.Nil(t, err, item.Description) {
			assert.Nil(t, fd.Close())
		}
	}
}

func TestCheckAndCreateFileFailed(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	assert.Nil(t, os.WriteFile(blocker, []byte("x"), 0660))

	// a regular file sits where the parent directory should be
	_, err := CheckAndCreateFile(filepath.Join(blocker, "f"), os.O_CREATE|os.O_RDWR, 0660)
	assert.NotNil(t, err)
	assert.NotEqual(t, int64(errs.UnknownErrCode), errs.GetCode(err))
}

func TestExists(t *testing.T) {
	base := t.TempDir()
	ok, err := Exists(base)
	assert.Nil(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(base, "missing"))
	assert.Nil(t, err)
	assert.False(t, ok)
}
