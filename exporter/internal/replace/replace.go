package replace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Kind tells which variant a Value holds.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	// KindNull is a JSON null; it never yields a substitute.
	KindNull
)

// Value is a substitute as written in the replacement file: a JSON number or
// a JSON string.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// UnmarshalJSON accepts a number or a string, records null as KindNull and
// rejects everything else.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Value{Kind: KindNull}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{Kind: KindString, Str: s}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("substitute must be a number or a string, got %s", data)
	}
	*v = Value{Kind: KindNumber, Num: n}
	return nil
}

// Numeric returns the substitute in output form, or false when the value is
// null or a string that does not hold a number.
func (v Value) Numeric() (string, bool) {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	case KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

// String returns the substitute as written in the file.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	}
	return "null"
}

// file is the on-disk document. "names" appears in older default files and
// is accepted but unused.
type file struct {
	Values map[string]Value   `json:"values"`
	Names  map[string]string `json:"names,omitempty"`
}

// Table is an immutable replacement mapping. The zero value and a nil *Table
// are empty.
type Table struct {
	values map[string]string
}

// Empty returns a Table with no entries.
func Empty() *Table {
	return &Table{values: map[string]string{}}
}

// Parse decodes a replacement document.
func Parse(data []byte) (*Table, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("replace: parse json: %w", err)
	}

	t := &Table{values: make(map[string]string, len(f.Values))}
	for key, v := range f.Values {
		sub, ok := v.Numeric()
		if !ok {
			slog.Warn("replace: skipping non-numeric substitute", "key", key, "value", v.String())
			continue
		}
		t.values[key] = sub
	}
	return t, nil
}

// Load reads and parses the replacement file at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replace: read %q: %w", path, err)
	}
	return Parse(data)
}

// LoadOrEmpty loads path and falls back to an empty Table on any error.
// The failure is logged at error level so operators notice that non-numeric
// values are being dropped.
func LoadOrEmpty(path string) *Table {
	t, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Error("replace: replacement file does not exist, using empty mapping", "path", path)
		} else {
			slog.Error("replace: load failed, using empty mapping", "path", path, "err", err)
		}
		return Empty()
	}
	slog.Debug("replace: table loaded", "path", path, "entries", t.Len())
	return t
}

// Replace returns the substitute for text. The lookup is exact and
// case-sensitive.
func (t *Table) Replace(text string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.values[text]
	return v, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}
