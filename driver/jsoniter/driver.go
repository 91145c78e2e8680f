// Package jsoniter provides a strictjson.Driver backed by json-iterator in
// its encoding/json compatible configuration.
package jsoniter

import (
	"bytes"
	"encoding/json"

	jsoniter "github.com/json-iterator/go"

	"github.com/reoring/strictjson"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Driver returns a strictjson.Driver backed by json-iterator.
func Driver() strictjson.Driver { return driverJSONIter{} }

type driverJSONIter struct{}

func (driverJSONIter) Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Indent uses encoding/json: json-iterator only indents while encoding, with
// a space-only step, and cannot reformat existing text.
func (driverJSONIter) Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return json.Indent(dst, src, prefix, indent)
}
func (driverJSONIter) Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }
func (driverJSONIter) Name() string                       { return "json-iterator" }
