// Package json encodes command output with goccy/go-json.
package json

import (
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/ajitpratap0/snowman/pkg/models"
)

// LineWriter writes one JSON document per line.
type LineWriter struct {
	enc *gojson.Encoder
}

// NewLineWriter returns a LineWriter on w. HTML characters are not escaped.
func NewLineWriter(w io.Writer) *LineWriter {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &LineWriter{enc: enc}
}

// Write encodes v followed by a newline.
func (l *LineWriter) Write(v interface{}) error {
	return l.enc.Encode(v)
}

// WriteRows writes each row as an object keyed by column name. Binary
// values are written as text.
func WriteRows(w io.Writer, rows []models.Row) error {
	lw := NewLineWriter(w)
	for _, row := range rows {
		m := row.Map()
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				m[k] = string(b)
			}
		}
		if err := lw.Write(m); err != nil {
			return err
		}
	}
	return nil
}

// MarshalIndent is gojson.MarshalIndent with two-space indentation.
func MarshalIndent(v interface{}) ([]byte, error) {
	return gojson.MarshalIndent(v, "", "  ")
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}
