package frame

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the concrete type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindFloat
	KindInt
)

// Value is one nullable cell of a Frame. Raw CSV input arrives as strings;
// normalization rewrites cells to typed values or nulls.
type Value struct {
	kind Kind
	s    string
	f    float64
	i    int64
}

func Null() Value            { return Value{kind: KindNull} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the cell as a float64, coercing ints and parsing strings.
// ok is false for nulls and unparseable strings.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Int returns the cell as an int64. Floats are truncated toward negative
// infinity, mirroring integer floor semantics used for timestamp math.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(math.Floor(v.f)), true
	case KindString:
		s := strings.TrimSpace(v.s)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return int64(math.Floor(f)), true
	}
	return 0, false
}

// String renders the cell for CSV output. Nulls render as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	}
	return ""
}

// Any returns the cell as a JSON-encodable value (nil for nulls).
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return v.f
	case KindInt:
		return v.i
	}
	return nil
}

// Frame is a column-ordered, row-major table. Column names are not required
// to be unique until Canonicalize has run.
type Frame struct {
	Columns []string
	Rows    [][]Value
}

// New creates an empty frame with the given columns.
func New(columns ...string) Frame {
	return Frame{Columns: append([]string(nil), columns...)}
}

func (f Frame) NumRows() int { return len(f.Rows) }
func (f Frame) NumCols() int { return len(f.Columns) }

// Col returns the index of the first column with the given name, or -1.
func (f Frame) Col(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasCol reports whether a column with the given name exists.
func (f Frame) HasCol(name string) bool { return f.Col(name) >= 0 }

// Append adds a row. Short rows are padded with nulls, long rows truncated,
// so every stored row matches the column count.
func (f *Frame) Append(row []Value) {
	n := len(f.Columns)
	r := make([]Value, n)
	copy(r, row)
	f.Rows = append(f.Rows, r)
}

// AddColumn appends a column filled with the given values. Missing values
// are padded with nulls.
func (f *Frame) AddColumn(name string, values []Value) {
	f.Columns = append(f.Columns, name)
	for i := range f.Rows {
		if i < len(values) {
			f.Rows[i] = append(f.Rows[i], values[i])
		} else {
			f.Rows[i] = append(f.Rows[i], Null())
		}
	}
}

// Clone returns a deep copy. Callers that share frames across goroutines
// should hand each side its own clone.
func (f Frame) Clone() Frame {
	out := Frame{Columns: append([]string(nil), f.Columns...)}
	out.Rows = make([][]Value, len(f.Rows))
	for i, r := range f.Rows {
		out.Rows[i] = append([]Value(nil), r...)
	}
	return out
}
