// Package matcher resolves a manifest's file name to a roster driver.
package matcher

import (
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/manifest-reconciler/internal/names"
	"github.com/joseph-ayodele/manifest-reconciler/internal/roster"
)

// Step identifies which lookup produced a match.
type Step string

const (
	StepPreferredSheet Step = "preferred_sheet"
	StepCanonical      Step = "canonical"
	StepAlias          Step = "alias"
)

// Result is nil-Entry when the name did not resolve.
type Result struct {
	Entry *roster.Entry
	Sheet int
	Step  Step
}

// Resolved reports whether a driver was found.
func (r Result) Resolved() bool { return r.Entry != nil }

type Matcher struct {
	index  *roster.Index
	keys   []string // normalized short names, parallel to index.Entries()
	logger *slog.Logger
}

func New(index *roster.Index, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	if index == nil {
		index = roster.Empty()
	}
	entries := index.Entries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key()
	}
	return &Matcher{index: index, keys: keys, logger: logger}
}

// Match resolves name (a document name, annotations allowed) in priority
// order: entries on preferSheet when it is non-zero, then every entry, then
// aliases. The first candidate accepted by Accepts wins.
func (m *Matcher) Match(name string, preferSheet int) Result {
	p := names.MatchKey(name)
	if p == "" {
		m.logger.Debug("matcher.empty_key", "name", name)
		return Result{}
	}

	entries := m.index.Entries()
	if preferSheet != 0 {
		for i, e := range entries {
			if e.Sheet == preferSheet && Accepts(p, m.keys[i]) {
				return Result{Entry: e, Sheet: e.Sheet, Step: StepPreferredSheet}
			}
		}
	}
	for i, e := range entries {
		if Accepts(p, m.keys[i]) {
			return Result{Entry: e, Sheet: e.Sheet, Step: StepCanonical}
		}
	}
	for _, a := range m.index.Aliases() {
		if !Accepts(p, a.Key) {
			continue
		}
		e, ok := m.index.Lookup(a.Canonical)
		if !ok {
			continue
		}
		return Result{Entry: e, Sheet: a.Sheet, Step: StepAlias}
	}
	return Result{}
}

// Accepts applies the name rules to a normalized document key p and a
// normalized candidate c: equality, a whole token of c, a prefix of c, then
// any substring of c.
func Accepts(p, c string) bool {
	if p == "" || c == "" {
		return false
	}
	if p == c {
		return true
	}
	for _, tok := range strings.Fields(c) {
		if tok == p {
			return true
		}
	}
	return strings.HasPrefix(c, p) || strings.Contains(c, p)
}
