package strictjson

// JSON is a Stringify/Parse pair. Strict validates before serializing;
// Native hands values to the driver as they are.
type JSON interface {
	// Stringify renders value as JSON text. replacer accepts the shapes
	// listed on NormalizeReplacer; space is described on IndentString.
	Stringify(value any, replacer any, space any) (string, error)
	// Parse reads JSON text with the current driver, applying reviver when
	// it is not nil.
	Parse(text string, reviver ReviverFunc) (any, error)
	// Enabled returns Strict when enabled is true and Native otherwise.
	Enabled(enabled bool) JSON
	// Strict reports whether this implementation validates.
	Strict() bool
}

type strictImpl struct{}

type nativeImpl struct{}

var (
	// Strict is the validating implementation.
	Strict JSON = strictImpl{}
	// Native is the pass-through implementation. It still honors replacers
	// and Converter hooks but checks nothing; unsupported values surface as
	// driver errors.
	Native JSON = nativeImpl{}
)

func (strictImpl) Stringify(value any, replacer any, space any) (string, error) {
	return stringify(value, replacer, space, true)
}
func (strictImpl) Parse(text string, reviver ReviverFunc) (any, error) { return parse(text, reviver) }
func (strictImpl) Enabled(enabled bool) JSON                           { return choose(enabled) }
func (strictImpl) Strict() bool                                        { return true }

func (nativeImpl) Stringify(value any, replacer any, space any) (string, error) {
	return stringify(value, replacer, space, false)
}
func (nativeImpl) Parse(text string, reviver ReviverFunc) (any, error) { return parse(text, reviver) }
func (nativeImpl) Enabled(enabled bool) JSON                           { return choose(enabled) }
func (nativeImpl) Strict() bool                                        { return false }

func choose(enabled bool) JSON {
	if enabled {
		return Strict
	}
	return Native
}

// Default returns the implementation selected by the process-wide mode. The
// mode is read on every call.
func Default() JSON { return choose(Enabled()) }

// Stringify renders value with the default implementation.
func Stringify(value any, replacer any, space any) (string, error) {
	return Default().Stringify(value, replacer, space)
}

// Parse reads text with the default implementation.
func Parse(text string, reviver ReviverFunc) (any, error) {
	return Default().Parse(text, reviver)
}
