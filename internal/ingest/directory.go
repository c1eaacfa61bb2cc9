package ingest

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
)

// Document is one manifest file found under a configured folder.
type Document struct {
	Name   string // file name without the .pdf extension
	Folder string // canonical folder name
	Path   string
}

type DirStats struct {
	Folders        uint32
	MissingFolders uint32
	Scanned        uint32
	Matched        uint32
	Failed         uint32
}

// ScanFolders lists the manifests in each folder under root, in folder order
// then file-name order. Missing folders are logged and skipped; subdirectories
// are not descended into.
func ScanFolders(root string, folders []string, skipHidden bool, logger *slog.Logger) ([]Document, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var stats DirStats
	if strings.TrimSpace(root) == "" {
		return nil, stats, errors.New("documents root is required")
	}

	var docs []Document
	for _, folder := range folders {
		stats.Folders++
		dir := filepath.Join(root, folder)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				stats.MissingFolders++
				logger.Warn("ingest.folder.missing", "folder", folder, "path", dir)
				continue
			}
			stats.Failed++
			logger.Error("ingest.folder.read_failed", "folder", folder, "path", dir, "error", err)
			continue
		}

		found := 0
		for _, e := range entries {
			stats.Scanned++
			if e.IsDir() {
				continue
			}
			if skipHidden && IsHidden(e.Name()) {
				continue
			}
			if !AllowedExt(filepath.Ext(e.Name())) {
				continue
			}
			stats.Matched++
			found++
			docs = append(docs, Document{
				Name:   TrimDocumentExt(e.Name()),
				Folder: constants.CanonicalFolder(folder),
				Path:   filepath.Join(dir, e.Name()),
			})
		}
		logger.Info("ingest.folder.scanned", "folder", folder, "documents", found)
	}
	return docs, stats, nil
}

// FindRoster returns the first .xlsx in dir whose name starts with prefix,
// compared case-insensitively, or dir/fallback when none does. The fallback
// path is returned even if it does not exist.
func FindRoster(dir, prefix, fallback string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", common.WrapError(err, "read dir")
	}
	prefix = strings.ToLower(prefix)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if strings.HasPrefix(name, prefix) && constants.NormalizeExt(filepath.Ext(name)) == constants.XLSXExt {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return filepath.Join(dir, fallback), nil
}

// RemoveOldOutputs deletes earlier exports matching "<OutputPrefix> *.csv"
// and "<OutputPrefix> *.xlsx" directly under dir. Failures are logged and
// counted, never returned.
func RemoveOldOutputs(dir string, logger *slog.Logger) (removed, failed int) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("ingest.outputs.read_failed", "path", dir, "error", err)
		return 0, 1
	}
	for _, e := range entries {
		if e.IsDir() || !IsOutputName(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := os.Remove(p); err != nil {
			logger.Error("ingest.outputs.remove_failed", "path", p, "error", err)
			failed++
			continue
		}
		logger.Info("ingest.outputs.removed", "file", e.Name())
		removed++
	}
	return removed, failed
}
