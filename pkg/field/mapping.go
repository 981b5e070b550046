package field

import (
	"fmt"
	"sort"
	"time"
)

// Mapping is an unordered association from field name to Value. It is the
// sole interchange form between the record codec and the persistence
// backends. Absence of a field is represented by key absence; there is no
// null value.
type Mapping map[string]Value

// Int returns the named integer field, or false if the field is absent or
// holds another kind.
func (m Mapping) Int(name string) (int64, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}
	return v.Int()
}

// Float returns the named floating-point field, or false if absent or mistyped.
func (m Mapping) Float(name string) (float64, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Text returns the named string field, or false if absent or mistyped.
func (m Mapping) Text(name string) (string, bool) {
	v, ok := m[name]
	if !ok {
		return "", false
	}
	return v.Text()
}

// Bool returns the named boolean field, or false if absent or mistyped.
func (m Mapping) Bool(name string) (bool, bool) {
	v, ok := m[name]
	if !ok {
		return false, false
	}
	return v.Bool()
}

// Time returns the named timestamp field, or false if absent or mistyped.
func (m Mapping) Time(name string) (time.Time, bool) {
	v, ok := m[name]
	if !ok {
		return time.Time{}, false
	}
	return v.Time()
}

// Bytes returns the named binary field, or false if absent or mistyped.
func (m Mapping) Bytes(name string) ([]byte, bool) {
	v, ok := m[name]
	if !ok {
		return nil, false
	}
	return v.Bytes()
}

// Names returns the field names in sorted order
func (m Mapping) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether two mappings hold the same fields with equal values.
// Key order is insignificant.
func (m Mapping) Equal(o Mapping) bool {
	if len(m) != len(o) {
		return false
	}
	for name, v := range m {
		ov, ok := o[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Schema is the expected-kind table for one record type: every entry is a
// required field and the kind its value must hold.
type Schema map[string]Kind

// Validate checks a mapping exhaustively against the schema. It fails when
// the mapping is nil, when any required field is missing, or when any
// required field holds the wrong kind. Extra fields are ignored. Fields are
// checked in sorted name order so the reported error is deterministic.
func (s Schema) Validate(m Mapping) error {
	if m == nil {
		return fmt.Errorf("no mapping to decode")
	}

	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, ok := m[name]
		if !ok {
			return fmt.Errorf("missing required field %q", name)
		}
		if v.Kind() != s[name] {
			return fmt.Errorf("field %q: expected %s, got %s", name, s[name], v.Kind())
		}
	}
	return nil
}
