package record

// Record is one output row. Every schema column is present; unset columns
// hold the empty string.
type Record struct {
	schema *Schema
	values []string
}

func newRecord(s *Schema) Record {
	return Record{schema: s, values: make([]string, s.Len())}
}

// set writes v to col and reports whether col exists in the schema.
func (r Record) set(col, v string) bool {
	i, ok := r.schema.index[col]
	if !ok {
		return false
	}
	r.values[i] = v
	return true
}

// Get returns the value of col, or "" when col is not in the schema.
func (r Record) Get(col string) string {
	if r.schema == nil {
		return ""
	}
	i, ok := r.schema.index[col]
	if !ok {
		return ""
	}
	return r.values[i]
}

// Values returns the row in schema order.
func (r Record) Values() []string {
	if r.schema == nil {
		return nil
	}
	out := make([]string, len(r.schema.columns))
	for i, c := range r.schema.columns {
		out[i] = r.values[r.schema.index[c]]
	}
	return out
}

// Map returns the row keyed by column name.
func (r Record) Map() map[string]string {
	if r.schema == nil {
		return map[string]string{}
	}
	m := make(map[string]string, len(r.schema.index))
	for c, i := range r.schema.index {
		m[c] = r.values[i]
	}
	return m
}
