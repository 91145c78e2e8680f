// Package strictjson provides:
//
// - Stringify, a JSON serializer that validates the value tree first and fails
// with a located error instead of emitting surprising output
// - A stable error model via LocatedError (JSON Pointer path, code, message)
// - Replacers (function or allow-list) and the Converter conversion hook
// - A pluggable native driver (encoding/json by default; go-json, json-iterator
// and sonic under driver/)
// - A process-wide strict/native switch, initialized from the environment
//
// Design policy:
// - Keep only public APIs in the root package; put drivers under driver/ and the
// CLI under cmd/strictjson.
// - Validation state (path, ancestor chain) lives on the call stack only.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	text, err := strictjson.Stringify(v, nil, 2)
//	if le, ok := strictjson.AsLocated(err); ok {
//		log.Printf("cannot serialize %s: %v", le.Path(), err)
//	}
//
//	text, err = strictjson.Stringify(v, strictjson.AllowList{"id", "name"}, nil)
//	v2, err := strictjson.Parse(text, nil)
package strictjson
