package dastcom5

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"github.com/Trinoooo/dastcom/utils"
	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	extractDirPerm  = 0770
	extractFilePerm = 0660
	stagingPattern  = ".dastcom5-unpack-"
)

// DatabaseDir is where an unpacked archive under baseDir keeps its data files.
func DatabaseDir(baseDir string) string {
	return filepath.Join(baseDir, consts.ArchiveDirName, "dat")
}

// Unpack extracts the DASTCOM5 zip at zipPath into baseDir. An existing
// baseDir/dastcom5 is left alone unless update is set, in which case it is
// replaced wholesale. Entries are first extracted into a staging directory
// under baseDir and only moved into place once the data files are all
// there, so a failed update keeps the previous archive. The zip itself is
// not touched.
func Unpack(baseDir, zipPath string, update bool) error {
	archiveDir := filepath.Join(baseDir, consts.ArchiveDirName)
	exist, err := utils.Exists(archiveDir)
	if err != nil {
		logs.Error(err.Error(), zap.String(consts.LogFieldPath, archiveDir))
		return err
	}
	if exist && !update {
		e := errs.NewNotFoundErr().WithMsg("dastcom5 is already created in %s, pass update to replace it", archiveDir)
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, archiveDir), zap.Bool(consts.LogFieldParams, update))
		return e
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		e := errs.NewExtractArchiveErr().WithErr(errors.Wrapf(err, "open %s", zipPath))
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, zipPath))
		return e
	}
	defer zr.Close()

	if err := os.MkdirAll(baseDir, extractDirPerm); err != nil {
		e := errs.NewMkdirErr().WithErr(errors.Wrapf(err, "mkdir %s", baseDir))
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, baseDir))
		return e
	}
	staging, err := os.MkdirTemp(baseDir, stagingPattern)
	if err != nil {
		e := errs.NewMkdirErr().WithErr(errors.Wrapf(err, "staging dir in %s", baseDir))
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, baseDir))
		return e
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logs.Warn("remove staging dir failed", zap.String(consts.LogFieldPath, staging), zap.Error(err))
		}
	}()

	root, err := filepath.Abs(staging)
	if err != nil {
		return errs.NewInvalidParamErr().WithErr(err)
	}
	for _, f := range zr.File {
		if err := extract(root, f); err != nil {
			logs.Error(err.Error(), zap.String(consts.LogFieldPath, zipPath), zap.String(consts.LogFieldParams, f.Name))
			return err
		}
	}

	stagedDb := DatabaseDir(staging)
	for _, name := range []string{consts.AsteroidFileName, consts.CometFileName, consts.IndexFileName} {
		ok, err := utils.Exists(filepath.Join(stagedDb, name))
		if err != nil {
			return err
		}
		if !ok {
			e := errs.NewExtractArchiveErr().WithMsg("%s has no %s", zipPath, filepath.Join(consts.ArchiveDirName, "dat", name))
			logs.Error(e.Error(), zap.String(consts.LogFieldPath, zipPath))
			return e
		}
	}

	if err := install(staging, baseDir); err != nil {
		logs.Error(err.Error(), zap.String(consts.LogFieldPath, baseDir))
		return err
	}
	logs.Info("archive unpacked", zap.String(consts.LogFieldPath, DatabaseDir(baseDir)), zap.Int(consts.LogFieldValue, len(zr.File)))
	return nil
}

// install moves every top level entry of staging into baseDir, replacing
// what is there.
func install(staging, baseDir string) error {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return errs.NewReadFileErr().WithErr(errors.Wrapf(err, "read %s", staging))
	}
	for _, entry := range entries {
		target := filepath.Join(baseDir, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			return errs.NewRemoveFileErr().WithErr(errors.Wrapf(err, "remove %s", target))
		}
		if err := os.Rename(filepath.Join(staging, entry.Name()), target); err != nil {
			return errs.NewExtractArchiveErr().WithErr(errors.Wrapf(err, "move %s into place", target))
		}
	}
	return nil
}

func extract(root string, f *zip.File) error {
	target := filepath.Join(root, f.Name)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return errs.NewExtractArchiveErr().WithMsg("entry %s escapes %s", f.Name, root)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, extractDirPerm); err != nil {
			return errs.NewMkdirErr().WithErr(errors.Wrapf(err, "mkdir %s", target))
		}
		return nil
	}

	src, err := f.Open()
	if err != nil {
		return errs.NewExtractArchiveErr().WithErr(errors.Wrapf(err, "open entry %s", f.Name))
	}
	defer src.Close()

	dst, err := utils.CheckAndCreateFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, extractFilePerm)
	if err != nil {
		return err
	}
	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return errs.NewWriteFileErr().WithErr(errors.Wrapf(err, "write %s", target))
	}
	if err := dst.Close(); err != nil {
		return errs.NewCloseFileErr().WithErr(errors.Wrapf(err, "close %s", target))
	}
	logs.Debug("extracted", zap.String(consts.LogFieldPath, target), zap.Int64(consts.LogFieldValue, n))
	return nil
}
