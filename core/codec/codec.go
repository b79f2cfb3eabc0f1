package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reserved sentinel strings of the store alphabet.
const (
	NullValue  = "null"
	TrueValue  = "true"
	FalseValue = "false"
)

// Tag prefixes marking JSON-serialized containers.
const (
	ListPrefix = "__list__:"
	DictPrefix = "__dict__:"
)

// Value is a single store-alphabet value: either a string or an integer.
// The zero value is the empty string.
type Value struct {
	str   string
	num   int64
	isInt bool
}

// String wraps a string as a store value.
func String(s string) Value { return Value{str: s} }

// Int wraps an integer as a store value.
func Int(n int64) Value { return Value{num: n, isInt: true} }

// Null returns the null sentinel as a store value.
func Null() Value { return Value{str: NullValue} }

// IsInt reports whether the value is the integer kind.
func (v Value) IsInt() bool { return v.isInt }

// Str returns the string payload. It is only meaningful when !IsInt().
func (v Value) Str() string { return v.str }

// Int64 returns the integer payload. It is only meaningful when IsInt().
func (v Value) Int64() int64 { return v.num }

// IsNull reports whether the value is the null sentinel string.
func (v Value) IsNull() bool { return !v.isInt && v.str == NullValue }

// Text returns the stable stringification used for checksums: decimal
// digits for integers, the raw string otherwise.
func (v Value) Text() string {
	if v.isInt {
		return strconv.FormatInt(v.num, 10)
	}
	return v.str
}

// EncodingError reports a value that cannot be represented in, or recovered
// from, the store alphabet.
type EncodingError struct {
	Value  any
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("codec: cannot convert %v (%T): %s", e.Value, e.Value, e.Reason)
}

// Encode converts a native value to a store value.
//
// Conversion rules, in order: integers pass through, nil and booleans map to
// sentinels, floats become decimal strings, lists and dicts become tagged
// JSON strings (empty ones collapse to the null sentinel), blank strings
// collapse to the null sentinel, and non-blank strings pass through.
// Already-encoded Values pass through unchanged, so Encode is idempotent on
// its own output.
func Encode(v any) (Value, error) {
	switch val := v.(type) {
	case Value:
		return val, nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Int(int64(val)), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return Int(int64(val)), nil
	case nil:
		return String(NullValue), nil
	case bool:
		if val {
			return String(TrueValue), nil
		}
		return String(FalseValue), nil
	case float32:
		return String(formatFloat(float64(val), 32)), nil
	case float64:
		return String(formatFloat(val, 64)), nil
	case json.Number:
		// Staged JSON is decoded with UseNumber so integers survive intact.
		if n, err := val.Int64(); err == nil {
			return Int(n), nil
		}
		return String(val.String()), nil
	case []any:
		return encodeContainer(val, len(val), ListPrefix)
	case []string:
		return encodeContainer(val, len(val), ListPrefix)
	case map[string]any:
		return encodeContainer(val, len(val), DictPrefix)
	case map[string]string:
		return encodeContainer(val, len(val), DictPrefix)
	case string:
		if strings.TrimSpace(val) == "" {
			return String(NullValue), nil
		}
		return String(val), nil
	default:
		return Value{}, &EncodingError{Value: v, Reason: "unsupported value shape"}
	}
}

// formatFloat renders a float the way Python's str() does: whole-valued
// floats keep a ".0" suffix so the decimal point survives into the store
// string and Decode recognizes it as a float.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if strings.ContainsAny(s, ".eE") || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	return s + ".0"
}

// encodeContainer serializes a non-empty container as a tagged JSON string.
func encodeContainer(v any, size int, prefix string) (Value, error) {
	if size == 0 {
		return String(NullValue), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return Value{}, &EncodingError{Value: v, Reason: err.Error()}
	}
	// Encoder appends a newline after every value.
	return String(prefix + strings.TrimSuffix(buf.String(), "\n")), nil
}

// Decode converts a store value back to its native form.
//
// Inverse rules, in order: integers pass through as int64, sentinel strings
// map back to nil/true/false, numeric-looking strings are attempted as
// float64, tagged strings are JSON-parsed back into lists or dicts, and
// everything else passes through as a string. Malformed tagged JSON yields
// an EncodingError.
func Decode(v Value) (any, error) {
	if v.isInt {
		return v.num, nil
	}

	switch v.str {
	case NullValue:
		return nil, nil
	case TrueValue:
		return true, nil
	case FalseValue:
		return false, nil
	}

	// A string containing a sign or decimal point may be an encoded float.
	// Plain digit runs stay strings on purpose.
	if strings.ContainsAny(v.str, "+-.") {
		if f, err := strconv.ParseFloat(v.str, 64); err == nil {
			return f, nil
		}
	}

	if rest, ok := strings.CutPrefix(v.str, ListPrefix); ok {
		var list []any
		if err := json.Unmarshal([]byte(rest), &list); err != nil {
			return nil, &EncodingError{Value: v.str, Reason: "malformed tagged list: " + err.Error()}
		}
		return list, nil
	}

	if rest, ok := strings.CutPrefix(v.str, DictPrefix); ok {
		var dict map[string]any
		if err := json.Unmarshal([]byte(rest), &dict); err != nil {
			return nil, &EncodingError{Value: v.str, Reason: "malformed tagged dict: " + err.Error()}
		}
		return dict, nil
	}

	return v.str, nil
}
