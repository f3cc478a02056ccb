package saver

import (
	"fmt"
	"strings"

	"tv-data/internal/csvio"
	"tv-data/internal/frame"
)

// writeDTS emits a TypeScript declaration next to a JSON output when the
// option is on: out/candles.json -> out/candles.d.ts.
func (o Options) writeDTS(f frame.Frame, jsonPath string) error {
	if !o.GenerateDTS {
		return nil
	}
	name := o.InterfaceName
	if name == "" {
		name = "Row"
	}
	dts := GenerateInterface(f, name, o.CamelCase)
	path := strings.TrimSuffix(jsonPath, extSuffix(jsonPath)) + ".d.ts"
	return csvio.WriteFileAtomic(path, []byte(dts))
}

func extSuffix(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 && !strings.ContainsAny(path[i:], "/\\") {
		return path[i:]
	}
	return ""
}

// GenerateInterface renders a TypeScript interface for the table's rows.
// A column whose every non-null cell parses as a number is typed number,
// anything else string; columns containing nulls get a "| null" union.
func GenerateInterface(f frame.Frame, name string, camel bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export interface %s {\n", name)
	for i, col := range f.Columns {
		key := col
		if camel {
			key = toCamel(col)
		}
		numeric, nullable := columnShape(f, i)
		tsType := "string"
		if numeric {
			tsType = "number"
		}
		if nullable {
			tsType += " | null"
		}
		fmt.Fprintf(&b, "  %s: %s;\n", propertyName(key), tsType)
	}
	b.WriteString("}\n")
	return b.String()
}

func columnShape(f frame.Frame, col int) (numeric, nullable bool) {
	numeric = true
	for _, row := range f.Rows {
		if col >= len(row) || row[col].IsNull() {
			nullable = true
			continue
		}
		if _, ok := row[col].Float(); !ok {
			numeric = false
		}
	}
	return numeric, nullable
}

// propertyName quotes keys that are not valid TypeScript identifiers.
func propertyName(key string) string {
	if validIdentifier(key) {
		return key
	}
	return fmt.Sprintf("[%q]", key)
}

func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !letter && !(digit && i > 0) {
			return false
		}
	}
	return true
}
