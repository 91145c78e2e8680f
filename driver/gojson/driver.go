// Package gojson provides a strictjson.Driver backed by goccy/go-json.
package gojson

import (
	"bytes"

	j "github.com/goccy/go-json"

	"github.com/reoring/strictjson"
)

// Driver returns a strictjson.Driver backed by goccy/go-json.
func Driver() strictjson.Driver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) Marshal(v any) ([]byte, error) { return j.Marshal(v) }
func (driverGoJSON) Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return j.Indent(dst, src, prefix, indent)
}
func (driverGoJSON) Unmarshal(data []byte, v any) error { return j.Unmarshal(data, v) }
func (driverGoJSON) Name() string                       { return "go-json" }
