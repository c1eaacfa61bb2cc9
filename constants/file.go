package constants

import "strings"

// Extensions recognized by the batch.
const (
	PDFExt  = "pdf"
	XLSXExt = "xlsx"
	CSVExt  = "csv"
)

// DocumentExtensions holds the allowed file extensions for manifest discovery.
var DocumentExtensions = map[string]struct{}{
	PDFExt: {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsDocumentExt reports whether ext (with or without dot) is a manifest extension.
func IsDocumentExt(ext string) bool {
	_, ok := DocumentExtensions[NormalizeExt(ext)]
	return ok
}

// Output file naming.
const (
	OutputPrefix  = "PLANILHA MDFS"
	CSVHistoryDir = "CSV"
	XLSXHistDir   = "EXCEL"
	XLSXSheetName = "Dados"
)
