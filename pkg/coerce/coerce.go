// Package coerce converts between the raw text shown in an editable slot and
// the typed values stored in a configuration tree.
package coerce

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-bdfrgen/pkg/schema"
)

var (
	// ErrInvalidValue is returned when raw text does not satisfy the parse
	// rule of the field's kind.
	ErrInvalidValue = errors.New("coerce: invalid value")
	// ErrInvalidEnumValue is returned when raw text names no enum member.
	ErrInvalidEnumValue = errors.New("coerce: invalid enum value")
	// ErrNotCoercible is returned for nested fields, which are always handled
	// field by field.
	ErrNotCoercible = errors.New("coerce: field kind is not directly coercible")
)

// Error describes a failed conversion for a single field.
type Error struct {
	Field string
	Kind  schema.Kind
	Raw   string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q is not a valid %s value: %v", e.Field, e.Raw, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(field schema.Field, raw string, err error) error {
	return &Error{Field: field.Name, Kind: field.Kind, Raw: raw, Err: err}
}

// Parse converts raw text into the canonical value for the field:
//
//	bool        "true"/"True" or "false"/"False"
//	int         empty → nil, otherwise ASCII digits → int64 (repeat flags 0..MaxRepeat)
//	float       empty → nil, otherwise digits with at most one '.' → float64
//	string      identity
//	string_list one element per non-empty line, no lines → nil
//	enum        member name, then wire value → schema.Member
func Parse(field schema.Field, raw string) (any, error) {
	switch field.Kind {
	case schema.KindBool:
		switch raw {
		case "true", "True":
			return true, nil
		case "false", "False":
			return false, nil
		}
		return nil, fail(field, raw, ErrInvalidValue)

	case schema.KindInt:
		if raw == "" {
			return nil, nil
		}
		if !isDigits(raw) {
			return nil, fail(field, raw, ErrInvalidValue)
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fail(field, raw, fmt.Errorf("%w: %v", ErrInvalidValue, err))
		}
		if err := field.Accepts(n); err != nil {
			return nil, fail(field, raw, fmt.Errorf("%w: %v", ErrInvalidValue, err))
		}
		return n, nil

	case schema.KindFloat:
		if raw == "" {
			return nil, nil
		}
		if !isDecimal(raw) {
			return nil, fail(field, raw, ErrInvalidValue)
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fail(field, raw, fmt.Errorf("%w: %v", ErrInvalidValue, err))
		}
		return f, nil

	case schema.KindString:
		return raw, nil

	case schema.KindStringList:
		if items := SplitLines(raw); items != nil {
			return items, nil
		}
		return nil, nil

	case schema.KindEnum:
		if member, ok := field.Member(raw); ok {
			return member, nil
		}
		if member, ok := field.MemberByValue(raw); ok {
			return member, nil
		}
		return nil, fail(field, raw, fmt.Errorf("%w: expected one of %s", ErrInvalidEnumValue, strings.Join(field.MemberNames(), ", ")))
	}
	return nil, fail(field, raw, ErrNotCoercible)
}

// Format renders a canonical value as the text a slot displays. Null values
// render as the empty string.
func Format(field schema.Field, value any) (string, error) {
	if field.Kind == schema.KindNested {
		return "", fail(field, "", ErrNotCoercible)
	}
	if err := field.Accepts(value); err != nil {
		return "", fail(field, fmt.Sprint(value), fmt.Errorf("%w: %v", ErrInvalidValue, err))
	}
	if value == nil {
		return "", nil
	}
	switch typed := value.(type) {
	case bool:
		return strconv.FormatBool(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case string:
		return typed, nil
	case []string:
		return strings.Join(typed, "\n"), nil
	case schema.Member:
		return typed.Value, nil
	}
	return "", fail(field, fmt.Sprint(value), ErrNotCoercible)
}

// AcceptEdit is the character-level check applied while the user types.
// resulting is the text the slot would hold after the edit. Slots showing
// placeholder text are never checked. Only numeric kinds are restricted, and
// they accept exactly what Parse accepts.
func AcceptEdit(field schema.Field, resulting string, showingPlaceholder bool) bool {
	if showingPlaceholder || resulting == "" {
		return true
	}
	switch field.Kind {
	case schema.KindInt, schema.KindFloat:
		_, err := Parse(field, resulting)
		return err == nil
	default:
		return true
	}
}

// SplitLines splits text on any line break, dropping empty lines. It returns
// nil when no line survives.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDecimal(s string) bool {
	whole, frac, found := strings.Cut(s, ".")
	if !found {
		return isDigits(s)
	}
	if strings.Contains(frac, ".") {
		return false
	}
	if whole == "" && frac == "" {
		return false
	}
	return (whole == "" || isDigits(whole)) && (frac == "" || isDigits(frac))
}
