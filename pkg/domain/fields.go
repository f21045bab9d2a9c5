package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldState is the transient mapping of extracted and derived fields for one command.
// Values are string, int64, float64, bool or []string (the "args" catch-all).
type FieldState map[string]any

// NewFieldState creates a state holding only the uppercased verb.
func NewFieldState(verb string) FieldState {
	return FieldState{FieldVerb: strings.ToUpper(verb)}
}

// Verb returns the uppercased verb of the command.
func (f FieldState) Verb() string {
	return f.String(FieldVerb)
}

// Object returns the object field, or "" when absent.
func (f FieldState) Object() string {
	return f.String(FieldObject)
}

// Has reports whether key exists with a non-nil value.
func (f FieldState) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

// Truthy reports whether key exists and holds a truthy value.
func (f FieldState) Truthy(key string) bool {
	v, ok := f[key]
	return ok && Truthy(v)
}

// String returns the string form of key, or "" when absent.
func (f FieldState) String(key string) string {
	return Stringify(f[key])
}

// Clone returns a shallow copy; slices are copied so callers can mutate freely.
func (f FieldState) Clone() FieldState {
	next := make(FieldState, len(f))
	for k, v := range f {
		if s, ok := v.([]string); ok {
			v = append([]string(nil), s...)
		}
		next[k] = v
	}
	return next
}

// Keys returns the field names in sorted order.
func (f FieldState) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Truthy mirrors the loose truthiness the rule data relies on:
// nil, "", 0, false and empty sequences are falsy.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case int64:
		return val != 0
	case int:
		return val != 0
	case float64:
		return val != 0
	case []string:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// Stringify renders a field value the way templates see it.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, " ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, " ")
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// NormalizeValue folds the numeric types produced by YAML/JSON decoders into
// int64 and float64 so that equality checks behave predictably.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return float64(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if fl, err := val.Float64(); err == nil {
			return fl
		}
		return val.String()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// ValuesEqual compares two normalized values. Numbers compare numerically
// across int64/float64; everything else compares by type and value.
func ValuesEqual(a, b any) bool {
	a, b = NormalizeValue(a), NormalizeValue(b)
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []string:
		return Stringify(av) == Stringify(b)
	default:
		return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
