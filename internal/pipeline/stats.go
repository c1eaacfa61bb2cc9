package pipeline

import (
	"time"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
)

// Stats are the per-run counters.
type Stats struct {
	DocumentsSeen int
	Read          int
	ReadFailures  int
	WithCore      int            // documents with a trip ticket, freight invoice or manifest number
	FieldsFound   map[string]int // field name -> documents where it was found
	Matched       int
	Unresolved    int
	Invalid       int
	Duration      time.Duration
}

func newStats() Stats {
	return Stats{FieldsFound: make(map[string]int)}
}

func (s *Stats) observe(out Outcome) {
	s.DocumentsSeen++
	if out.ReadErr != nil {
		s.ReadFailures++
	} else {
		s.Read++
	}
	if out.Fields.HasCore() {
		s.WithCore++
	}
	for _, f := range out.Fields.Found() {
		s.FieldsFound[f]++
	}
	switch out.Status {
	case constants.DocumentMatched:
		s.Matched++
	case constants.DocumentUnresolved:
		s.Unresolved++
	case constants.DocumentInvalid:
		s.Invalid++
	}
}
