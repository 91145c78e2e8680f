// Package sonic provides a strictjson.Driver backed by bytedance/sonic in its
// encoding/json compatible configuration.
package sonic

import (
	"bytes"
	"encoding/json"

	"github.com/bytedance/sonic"

	"github.com/reoring/strictjson"
)

var api = sonic.ConfigStd

// Driver returns a strictjson.Driver backed by sonic.
func Driver() strictjson.Driver { return driverSonic{} }

type driverSonic struct{}

func (driverSonic) Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Indent uses encoding/json; sonic has no API to reformat existing text.
func (driverSonic) Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return json.Indent(dst, src, prefix, indent)
}
func (driverSonic) Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }
func (driverSonic) Name() string                       { return "sonic" }
