package saver

import (
	"bytes"
	"encoding/json"
	"strings"

	"tv-data/internal/csvio"
	"tv-data/internal/frame"
)

// JSONSaver persists the table as a JSON array, one object per row. Keys
// follow column order; a Go map would sort them, so rows are encoded by hand.
type JSONSaver struct {
	Options Options
}

func (JSONSaver) Extension() string { return "json" }

func (s JSONSaver) Save(f frame.Frame, path string) error {
	keys := jsonKeys(f.Columns, s.Options.CamelCase)
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, row := range f.Rows {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString("  ")
		if err := encodeRow(&buf, keys, row); err != nil {
			return err
		}
	}
	buf.WriteString("\n]\n")
	if err := csvio.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	return s.Options.writeDTS(f, path)
}

// NDJSONSaver persists one JSON object per line.
type NDJSONSaver struct {
	Options Options
}

func (NDJSONSaver) Extension() string { return "ndjson" }

func (s NDJSONSaver) Save(f frame.Frame, path string) error {
	keys := jsonKeys(f.Columns, s.Options.CamelCase)
	var buf bytes.Buffer
	for _, row := range f.Rows {
		if err := encodeRow(&buf, keys, row); err != nil {
			return err
		}
		buf.WriteByte('\n')
	}
	if err := csvio.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	return s.Options.writeDTS(f, path)
}

func jsonKeys(columns []string, camel bool) []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		if camel {
			keys[i] = toCamel(c)
		} else {
			keys[i] = c
		}
	}
	return keys
}

func encodeRow(buf *bytes.Buffer, keys []string, row []frame.Value) error {
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		var cell frame.Value
		if i < len(row) {
			cell = row[i]
		} else {
			cell = frame.Null()
		}
		v, err := json.Marshal(cell.Any())
		if err != nil {
			return err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return nil
}

// toCamel converts snake_case (and kebab-case) to camelCase; already-camel
// names pass through.
func toCamel(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	if len(parts) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
