package strictjson

import "github.com/cockroachdb/errors"

// Result is the single outcome of an asynchronous Stringify.
type Result struct {
	Text string
	Err  error
}

// ParseResult is the single outcome of an asynchronous Parse.
type ParseResult struct {
	Value any
	Err   error
}

// StringifyAsync runs Stringify with the default implementation on a new
// goroutine and delivers its outcome on the returned channel, which is
// buffered and receives exactly one Result. The walk cannot be cancelled
// once started. A panic in a replacer or hook is delivered as Result.Err.
func StringifyAsync(value any, replacer any, space any) <-chan Result {
	impl := Default()
	ch := make(chan Result, 1)
	go func() {
		var res Result
		defer func() {
			if r := recover(); r != nil {
				res = Result{Err: recovered(r)}
			}
			ch <- res
		}()
		res.Text, res.Err = impl.Stringify(value, replacer, space)
	}()
	return ch
}

// ParseAsync is the Parse counterpart of StringifyAsync.
func ParseAsync(text string, reviver ReviverFunc) <-chan ParseResult {
	impl := Default()
	ch := make(chan ParseResult, 1)
	go func() {
		var res ParseResult
		defer func() {
			if r := recover(); r != nil {
				res = ParseResult{Err: recovered(r)}
			}
			ch <- res
		}()
		res.Value, res.Err = impl.Parse(text, reviver)
	}()
	return ch
}

// recovered turns a panic raised by a replacer, reviver or hook on an async
// goroutine into an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "strictjson: panic")
	}
	return errors.Newf("strictjson: panic: %v", r)
}

// StringifyCallback runs Stringify once and passes the outcome to cb.
func StringifyCallback(value any, replacer any, space any, cb func(text string, err error)) {
	text, err := Stringify(value, replacer, space)
	cb(text, err)
}

// ParseCallback runs Parse once and passes the outcome to cb.
func ParseCallback(text string, reviver ReviverFunc, cb func(value any, err error)) {
	v, err := Parse(text, reviver)
	cb(v, err)
}
