package tabular

import "strings"

// Column describes how a logical column is located in a header row. An exact
// match on Name wins, otherwise the first header containing one of the
// Fallbacks tokens (tried in order) is used.
type Column struct {
	Name      string
	Fallbacks []string
}

// Schema maps logical column names onto the headers present in a table
type Schema map[string]string

func (t *Table) Resolve(columns []Column) Schema {
	schema := Schema{}

	for _, column := range columns {
		if header, ok := resolveColumn(t.Headers, column); ok {
			schema[column.Name] = header
		}
	}

	return schema
}

func resolveColumn(headers []string, column Column) (string, bool) {
	for _, header := range headers {
		if header == column.Name {
			return header, true
		}
	}

	for _, token := range column.Fallbacks {
		for _, header := range headers {
			if strings.Contains(header, token) {
				return header, true
			}
		}
	}

	return "", false
}

func (s Schema) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Value reads the logical column from a row, returning an empty string when it was not resolved
func (s Schema) Value(row Row, name string) string {
	header, ok := s[name]
	if !ok {
		return ""
	}

	return row[header]
}
