package frame

import "strings"

// Required is the canonical six-column candle schema every normalized frame
// carries, even when empty.
var Required = []string{"time", "open", "high", "low", "close", "volume"}

// aliases maps lowercased source column names to canonical names. Treated as
// immutable configuration; never mutated at runtime.
var aliases = map[string]string{
	"timestamp": "time",
	"datetime":  "time",
	"date":      "time",
	"t":         "time",
	"o":         "open",
	"open":      "open",
	"h":         "high",
	"high":      "high",
	"l":         "low",
	"low":       "low",
	"c":         "close",
	"close":     "close",
	"v":         "volume",
	"vol":       "volume",
	"volume":    "volume",
}

// CanonicalName maps a source column name to its canonical form. Names
// outside the alias table pass through lowercased.
func CanonicalName(col string) string {
	low := strings.ToLower(strings.TrimSpace(col))
	if canon, ok := aliases[low]; ok {
		return canon
	}
	return low
}

// Canonicalize renames every column to its canonical name and collapses
// duplicate-named columns into one. When several source columns map to the
// same name, each row takes the first non-null value scanning the duplicates
// in their original left-to-right order.
func Canonicalize(f Frame) Frame {
	renamed := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		renamed[i] = CanonicalName(c)
	}

	// group column indices by canonical name, preserving first-seen order
	var order []string
	groups := make(map[string][]int)
	for i, name := range renamed {
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], i)
	}

	out := New(order...)
	for _, row := range f.Rows {
		merged := make([]Value, len(order))
		for j, name := range order {
			merged[j] = Null()
			for _, idx := range groups[name] {
				if idx < len(row) && !row[idx].IsNull() {
					merged[j] = row[idx]
					break
				}
			}
		}
		out.Rows = append(out.Rows, merged)
	}
	return out
}
