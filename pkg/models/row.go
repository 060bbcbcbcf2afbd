package models

import (
	"fmt"
	"strings"
)

// Row is one result row. Values are positional and line up with Columns.
type Row struct {
	Columns []string
	Values  []interface{}
}

// Len returns the number of values in the row.
func (r Row) Len() int {
	return len(r.Values)
}

// Get returns the value of the named column. Column names are matched
// case-insensitively, since Snowflake upper-cases unquoted identifiers.
func (r Row) Get(column string) (interface{}, bool) {
	for i, c := range r.Columns {
		if strings.EqualFold(c, column) && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return nil, false
}

// String returns the named column rendered as text. NULL and missing
// columns yield ok == false.
func (r Row) String(column string) (string, bool) {
	v, ok := r.Get(column)
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	default:
		return fmt.Sprint(t), true
	}
}

// Map returns the row keyed by column name.
func (r Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.Columns))
	for i, c := range r.Columns {
		if i < len(r.Values) {
			m[c] = r.Values[i]
		}
	}
	return m
}
