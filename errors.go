package strictjson

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/reoring/strictjson/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeErrorValue  = "error_value"
	CodeRegexp      = "regexp"
	CodeUndefined   = "undefined"
	CodeSymbol      = "symbol"
	CodeFunction    = "function"
	CodeBigInt      = "bigint"
	CodeNonFinite   = "non_finite"
	CodeInvalidType = "invalid_type"
	CodeInvalidKey  = "invalid_key"
	// A json.Number that is not a JSON number literal.
	CodeInvalidNumber = "invalid_number"
	// Cycles are reported by CircularReferenceError.
	CodeCircularReference = "circular_reference"
)

// LocatedError is implemented by both validation errors. Path renders the
// location as a JSON Pointer; the root value is at "".
type LocatedError interface {
	error
	Code() string
	Path() string
	References() []string
}

var (
	_ LocatedError = (*InvalidValueError)(nil)
	_ LocatedError = (*CircularReferenceError)(nil)
)

// InvalidValueError reports a value that JSON cannot represent.
type InvalidValueError struct {
	// Value is the offending value as found in the tree (after the replacer).
	Value any
	// Reason is the human readable description, e.g. "NaN is not JSON-serializable".
	Reason string

	code string
	refs []string
}

// NewInvalidValueError builds an InvalidValueError at the given path.
func NewInvalidValueError(code, reason string, value any, path Path) *InvalidValueError {
	return &InvalidValueError{Value: value, Reason: reason, code: code, refs: path.Segments()}
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value at %s (%s)", strconv.Quote(e.Path()), e.Reason)
}

func (e *InvalidValueError) Code() string         { return e.code }
func (e *InvalidValueError) Path() string         { return CompilePointer(e.refs) }
func (e *InvalidValueError) References() []string { return append([]string(nil), e.refs...) }

// CircularReferenceError reports a composite value that is its own ancestor.
type CircularReferenceError struct {
	refs []string
}

// NewCircularReferenceError builds a CircularReferenceError at the given path.
func NewCircularReferenceError(path Path) *CircularReferenceError {
	return &CircularReferenceError{refs: path.Segments()}
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference found at %s", strconv.Quote(e.Path()))
}

func (e *CircularReferenceError) Code() string         { return CodeCircularReference }
func (e *CircularReferenceError) Path() string         { return CompilePointer(e.refs) }
func (e *CircularReferenceError) References() []string { return append([]string(nil), e.refs...) }

// Message returns the localized description of the error code.
func (e *CircularReferenceError) Message() string { return i18n.T(CodeCircularReference, nil) }

// AsLocated extracts a LocatedError from an error using errors.As internally.
func AsLocated(err error) (LocatedError, bool) {
	if err == nil {
		return nil, false
	}
	var le LocatedError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

func invalid(code string, data map[string]string, value any, path Path) *InvalidValueError {
	return NewInvalidValueError(code, i18n.T(code, data), value, path)
}
