package consts

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

func init() {
	home, _ := homedir.Dir()
	BaseDir = filepath.Join(home, ".dastcom")
	DefaultDbDir = filepath.Join(BaseDir, ArchiveDirName, "dat")
	DefaultConfigPath = filepath.Join(BaseDir, "config")
}

var (
	BaseDir           string
	DefaultDbDir      string
	DefaultConfigPath string
)
