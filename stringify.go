package strictjson

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
)

// maxIndent bounds the indentation unit, as in JSON.stringify.
const maxIndent = 10

// IndentString normalizes the space argument: an integer n yields n spaces
// (clamped to 10, below 1 means compact), a string is cut to its first 10
// bytes, anything else means compact output.
func IndentString(space any) string {
	switch s := space.(type) {
	case int:
		return strings.Repeat(" ", min(max(s, 0), maxIndent))
	case int64:
		return strings.Repeat(" ", int(min(max(s, 0), maxIndent)))
	case float64:
		return strings.Repeat(" ", int(min(max(s, 0), maxIndent)))
	case string:
		if len(s) > maxIndent {
			return s[:maxIndent]
		}
		return s
	}
	return ""
}

func stringify(value any, replacer any, space any, strict bool) (string, error) {
	drv := CurrentDriver()
	effective, err := project(value, NormalizeReplacer(replacer), strict, drv)
	if err != nil {
		return "", err
	}
	if IsUndefined(effective) {
		// Only reachable in native mode: there is nothing to render.
		return "", nil
	}
	out, err := render(drv, effective, "", IndentString(space))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func render(drv Driver, v any, prefix, indent string) ([]byte, error) {
	b, err := drv.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "strictjson: %s marshal", drv.Name())
	}
	if indent == "" && prefix == "" {
		return b, nil
	}
	var buf bytes.Buffer
	if err := drv.Indent(&buf, b, prefix, indent); err != nil {
		return nil, errors.Wrapf(err, "strictjson: %s indent", drv.Name())
	}
	return buf.Bytes(), nil
}

// Marshal validates v and returns its compact JSON encoding. It is the
// []byte flavored Stringify(v, nil, nil) of the current mode.
func Marshal(v any) ([]byte, error) {
	return MarshalIndent(v, "", "")
}

// MarshalIndent is like Marshal but applies prefix and indent to the output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	drv := CurrentDriver()
	effective, err := project(v, nil, Enabled(), drv)
	if err != nil {
		return nil, err
	}
	return render(drv, effective, prefix, indent)
}
