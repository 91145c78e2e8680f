package strictjson

import (
	"encoding"
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

type undefinedType struct{}

func (undefinedType) String() string { return "undefined" }

// MarshalJSON renders a stray marker as null; only the native implementation
// ever hands one to a driver.
func (undefinedType) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Undefined is the absent-value marker. Inside a value tree it is never
// serializable; returned by a replacer for an object member it drops the
// member.
var Undefined any = undefinedType{}

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedType)
	return ok
}

// Symbol is a unique token. Two symbols with the same description are
// distinct. Symbols are never JSON-serializable.
type Symbol struct {
	desc string
}

// NewSymbol returns a new unique Symbol.
func NewSymbol(desc string) *Symbol { return &Symbol{desc: desc} }

func (s *Symbol) String() string { return "Symbol(" + s.desc + ")" }

// Converter is the conversion hook. A value exposing ToJSON is replaced by the
// result before validation and serialization, at the same path.
type Converter interface {
	ToJSON() any
}

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// rejectCommon returns an InvalidValueError for the common non-serializable
// categories, or nil when v is none of them. It runs before any cycle check.
func rejectCommon(v any, path Path) *InvalidValueError {
	switch t := v.(type) {
	case undefinedType:
		return invalid(CodeUndefined, nil, v, path)
	case *Symbol, Symbol:
		return invalid(CodeSymbol, nil, v, path)
	case *regexp.Regexp, regexp.Regexp:
		return invalid(CodeRegexp, nil, v, path)
	case *big.Int, big.Int:
		return invalid(CodeBigInt, nil, v, path)
	case error:
		return invalid(CodeErrorValue, nil, v, path)
	case float64:
		return rejectFloat(t, 64, v, path)
	case float32:
		return rejectFloat(float64(t), 32, v, path)
	case json.Number:
		return rejectNumber(t, path)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		return invalid(CodeFunction, nil, v, path)
	case reflect.Float32, reflect.Float64:
		return rejectFloat(rv.Float(), rv.Type().Bits(), v, path)
	}
	return nil
}

func rejectFloat(f float64, bits int, v any, path Path) *InvalidValueError {
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		return nil
	}
	// The string form itself tells NaN, +Inf and -Inf apart.
	return invalid(CodeNonFinite, map[string]string{"value": strconv.FormatFloat(f, 'g', -1, bits)}, v, path)
}

// rejectNumber checks a json.Number literal against the JSON number grammar.
// The empty literal is accepted: encoding/json renders it as 0.
func rejectNumber(n json.Number, path Path) *InvalidValueError {
	s := string(n)
	if s == "" || isJSONNumber(s) {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return rejectFloat(f, 64, n, path)
	}
	return invalid(CodeInvalidNumber, map[string]string{"value": strconv.Quote(s)}, n, path)
}

func isJSONNumber(s string) bool {
	if s[0] != '-' && (s[0] < '0' || s[0] > '9') {
		return false
	}
	return strings.TrimSpace(s) == s && json.Valid([]byte(s))
}

// isPrimitive reports whether rv is a scalar JSON value that needs no further
// inspection: strings, numbers, booleans and byte slices.
func isPrimitive(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		// []byte is emitted as a base64 string, unless the element type
		// brings its own encoding.
		et := rv.Type().Elem()
		return et.Kind() == reflect.Uint8 &&
			!reflect.PointerTo(et).Implements(jsonMarshalerType) &&
			!reflect.PointerTo(et).Implements(textMarshalerType)
	}
	return false
}

// isOpaque reports whether v owns its JSON encoding through the standard
// marshaler interfaces.
func isOpaque(v any) bool {
	switch v.(type) {
	case json.Marshaler, encoding.TextMarshaler:
		return true
	}
	return false
}
