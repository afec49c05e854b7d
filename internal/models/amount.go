package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary cell that may be left blank.
// An empty Amount means "not entered" and is distinct from zero.
type Amount struct {
	Value float64
	Set   bool
}

// Some returns a set Amount holding v.
func Some(v float64) Amount {
	return Amount{Value: v, Set: true}
}

// Empty returns an Amount with no value entered.
func Empty() Amount {
	return Amount{}
}

// Finite reports whether the amount is set and holds a finite number.
func (a Amount) Finite() bool {
	return a.Set && !math.IsNaN(a.Value) && !math.IsInf(a.Value, 0)
}

// OrZero returns the numeric value, or 0 when the amount is empty or not finite.
func (a Amount) OrZero() float64 {
	if !a.Finite() {
		return 0
	}
	return a.Value
}

// String returns the raw input form: the number, or "" when empty.
func (a Amount) String() string {
	if !a.Set {
		return ""
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// ParseAmount parses user input. Blank input yields an empty Amount.
// ok is false when the text is not a finite number; callers keep the prior value.
func ParseAmount(raw string) (a Amount, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Empty(), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}, false
	}
	return Some(v), true
}

// MarshalJSON writes a number, or "" for an empty amount.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Finite() {
		return []byte(`""`), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts a number, a numeric string, "" or null.
// Anything else decodes to an empty amount rather than failing.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*a = Some(t)
	case string:
		parsed, ok := ParseAmount(t)
		if !ok {
			parsed = Empty()
		}
		*a = parsed
	default:
		*a = Empty()
	}
	return nil
}
