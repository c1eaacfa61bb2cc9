package constants

// DocumentStatus is the per-document outcome of a run.
type DocumentStatus string

const (
	DocumentMatched    DocumentStatus = "MATCHED"    // resolved to a roster entry and emitted
	DocumentUnresolved DocumentStatus = "UNRESOLVED" // no roster entry, excluded from output
	DocumentInvalid    DocumentStatus = "INVALID"    // record failed schema validation
)

// Roster sheet ordinals with a business meaning.
const (
	SheetCurrentDay  = 1
	SheetPreviousDay = 2
)
