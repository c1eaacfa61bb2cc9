package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
)

// AllowedExt checks if a file extension is a manifest extension.
func AllowedExt(ext string) bool {
	return constants.IsDocumentExt(ext)
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}

// TrimDocumentExt drops a trailing .pdf in any case.
func TrimDocumentExt(name string) string {
	ext := filepath.Ext(name)
	if AllowedExt(ext) {
		return name[:len(name)-len(ext)]
	}
	return name
}

// IsOutputName reports whether name looks like a file written by the export
// step: "<OutputPrefix> <label>.csv" or ".xlsx".
func IsOutputName(name string) bool {
	if !strings.HasPrefix(name, constants.OutputPrefix+" ") {
		return false
	}
	switch constants.NormalizeExt(filepath.Ext(name)) {
	case constants.CSVExt, constants.XLSXExt:
		return true
	}
	return false
}
