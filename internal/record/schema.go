// Package record builds output rows conforming to the target column schema
// read from BASE.csv.
package record

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
)

// Schema is the closed, ordered list of target columns.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema keeps the first position of a repeated column name.
func NewSchema(columns []string) (*Schema, error) {
	if len(columns) == 0 {
		return nil, errors.New("schema has no columns")
	}
	s := &Schema{columns: append([]string(nil), columns...), index: make(map[string]int, len(columns))}
	for i, c := range s.columns {
		if _, ok := s.index[c]; !ok {
			s.index[c] = i
		}
	}
	return s, nil
}

// Columns returns a copy of the column names in order.
func (s *Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Has reports whether col is part of the schema.
func (s *Schema) Has(col string) bool {
	_, ok := s.index[col]
	return ok
}

func (s *Schema) Len() int { return len(s.columns) }

type decoder struct {
	name   string
	decode func([]byte) ([]byte, error)
}

var schemaEncodings = []decoder{
	{"utf-8", func(b []byte) ([]byte, error) {
		if !utf8.Valid(b) {
			return nil, errors.New("invalid utf-8")
		}
		return b, nil
	}},
	{"latin-1", func(b []byte) ([]byte, error) { return charmap.ISO8859_1.NewDecoder().Bytes(b) }},
	{"cp1252", func(b []byte) ([]byte, error) { return charmap.Windows1252.NewDecoder().Bytes(b) }},
}

// ReadSchemaFile reads the header row of the CSV at path, trying UTF-8, then
// Latin-1, then CP1252. It returns the encoding that worked. Failure here is a
// setup error that must abort the run.
func ReadSchemaFile(path string) (*Schema, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", common.SetupError(common.CodeSchema, "read schema file", err)
	}

	var lastErr error
	for _, enc := range schemaEncodings {
		text, err := enc.decode(raw)
		if err != nil {
			lastErr = err
			continue
		}
		cols, err := readHeader(text)
		if err != nil {
			lastErr = err
			continue
		}
		s, err := NewSchema(cols)
		if err != nil {
			lastErr = err
			continue
		}
		return s, enc.name, nil
	}
	return nil, "", common.SetupError(common.CodeSchema, fmt.Sprintf("no usable header in %s", path), lastErr)
}

func readHeader(b []byte) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, nil
}
