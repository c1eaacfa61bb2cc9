package constants

import (
	"fmt"
	"strings"
)

type Folder string

const (
	Sorocaba Folder = "SOROCABA"
	Itu      Folder = "ITU"
	Others   Folder = "OUTRAS ORI-DES"
)

var allFolders = []Folder{
	Sorocaba,
	Itu,
	Others,
}

// DefaultFolders returns the document subfolders scanned when none are configured.
func DefaultFolders() []string {
	result := make([]string, len(allFolders))
	for i, f := range allFolders {
		result[i] = string(f)
	}
	return result
}

// CanonicalFolder upper-cases and trims a folder name so that configured
// names and on-disk names compare equal.
func CanonicalFolder(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// SheetLabel renders a roster sheet ordinal for operators.
func SheetLabel(idx int) string {
	switch {
	case idx == SheetCurrentDay:
		return "CURRENT DAY"
	case idx == SheetPreviousDay:
		return "PREVIOUS DAY"
	case idx > 0:
		return fmt.Sprintf("SHEET %d", idx)
	default:
		return "?"
	}
}
