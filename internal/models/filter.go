package models

import "fmt"

// FilterMode is a three-valued filter over a boolean icon property
type FilterMode int

const (
	// FilterIs keeps icons that have the property
	FilterIs FilterMode = iota
	// FilterNot keeps icons that lack the property
	FilterNot
	// FilterEither keeps every icon
	FilterEither
)

// Default modes for the symlink and symbolic filters
const (
	DefaultSymlinkMode  = FilterNot
	DefaultSymbolicMode = FilterEither
)

// Next returns the mode that follows m: Is -> Not -> Either -> Is
func (m FilterMode) Next() FilterMode {
	switch m {
	case FilterIs:
		return FilterNot
	case FilterNot:
		return FilterEither
	default:
		return FilterIs
	}
}

// Allows reports whether a property value passes the filter
func (m FilterMode) Allows(value bool) bool {
	switch m {
	case FilterIs:
		return value
	case FilterNot:
		return !value
	default:
		return true
	}
}

// String returns the string representation of the mode
func (m FilterMode) String() string {
	switch m {
	case FilterIs:
		return "is"
	case FilterNot:
		return "not"
	default:
		return "either"
	}
}

// Short returns a compact indicator for UI display
func (m FilterMode) Short() string {
	switch m {
	case FilterIs:
		return "only"
	case FilterNot:
		return "hide"
	default:
		return "any"
	}
}

// ParseFilterMode parses "is", "not" or "either"
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "is", "only", "yes":
		return FilterIs, nil
	case "not", "hide", "no":
		return FilterNot, nil
	case "either", "any", "all", "":
		return FilterEither, nil
	}
	return FilterEither, fmt.Errorf("unknown filter mode %q (want is, not or either)", s)
}

// MarshalText implements encoding.TextMarshaler
func (m FilterMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *FilterMode) UnmarshalText(text []byte) error {
	mode, err := ParseFilterMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
