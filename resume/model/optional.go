package model

import (
	"encoding/json"
	"strings"
)

// Optional holds a text value that may be absent. Absent and blank are
// distinct states: the renderer omits absent values instead of printing "".
type Optional struct {
	value string
	set   bool
}

// Some returns a present Optional holding v.
func Some(v string) Optional {
	return Optional{value: v, set: true}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

// OptionalFrom trims raw and returns None when nothing is left.
func OptionalFrom(raw string) Optional {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return None()
	}
	return Some(trimmed)
}

// Get returns the value and whether it is present.
func (o Optional) Get() (string, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional) IsSet() bool {
	return o.set
}

// OrEmpty returns the value, or "" when absent.
func (o Optional) OrEmpty() string {
	return o.value
}

func (o Optional) canonical() Optional {
	if !o.set {
		return o
	}
	return OptionalFrom(o.value)
}

// MarshalJSON encodes an absent value as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON accepts a string or null.
func (o *Optional) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = Some(s)
	return nil
}
