// Package input reads the documents the strictjson CLI validates: one JSON
// document per file, or any number of YAML documents per stream.
package input

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/reoring/strictjson"
)

// Supported input formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DetectFormat returns override when set, otherwise the format implied by the
// file extension. Unknown extensions and stdin ("" or "-") read as JSON.
func DetectFormat(name, override string) (string, error) {
	switch override {
	case FormatJSON, FormatYAML:
		return override, nil
	case "":
	default:
		return "", errors.Newf("input: unknown format %q", override)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatJSON, nil
}

// ReadAll reads every document of r in the given format.
func ReadAll(r io.Reader, format string) ([]any, error) {
	switch format {
	case FormatYAML:
		return NewYAMLReader(r).ReadAll()
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "input: read")
		}
		if err := checkDuplicateMembers(data); err != nil {
			return nil, err
		}
		var v any
		if err := strictjson.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return []any{v}, nil
	}
	return nil, errors.Newf("input: unknown format %q", format)
}

// DuplicateKeyError reports a key repeated within one YAML mapping, with the
// position of both occurrences.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// YAMLReader decodes a multi-document YAML stream into JSON-like Go values
// (map[string]any, []any, primitives). Special floats such as .nan and .inf
// are kept, so that validation can report them.
type YAMLReader struct {
	dec *yaml.Decoder
	n   int
}

// NewYAMLReader constructs a YAMLReader.
func NewYAMLReader(r io.Reader) *YAMLReader {
	return &YAMLReader{dec: yaml.NewDecoder(r)}
}

// Next returns the next document. It returns (nil, io.EOF) when the stream is
// exhausted.
func (y *YAMLReader) Next() (any, error) {
	var root yaml.Node
	if err := y.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, errors.Wrapf(err, "input: yaml document %d", y.n)
	}
	y.n++
	if len(root.Content) == 0 {
		return nil, nil
	}
	v, err := nodeValue(root.Content[0])
	if err != nil {
		return nil, errors.Wrapf(err, "input: yaml document %d", y.n-1)
	}
	return v, nil
}

// ReadAll reads all remaining documents.
func (y *YAMLReader) ReadAll() ([]any, error) {
	var out []any
	for {
		v, err := y.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// expansion walks one document. active holds the anchored nodes on the
// current branch, so an alias to one of them is reported instead of expanded
// forever.
type expansion struct {
	active map[*yaml.Node]bool
}

func nodeValue(n *yaml.Node) (any, error) {
	e := &expansion{active: map[*yaml.Node]bool{}}
	return e.value(n, strictjson.RootPath)
}

func (e *expansion) value(n *yaml.Node, path strictjson.Path) (any, error) {
	if n.Kind == yaml.AliasNode {
		if e.active[n.Alias] {
			return nil, strictjson.NewCircularReferenceError(path)
		}
		return e.value(n.Alias, path)
	}
	if n.Anchor != "" {
		e.active[n] = true
		defer delete(e.active, n)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return e.value(n.Content[0], path)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if pos, dup := first[k.Value]; dup {
				return nil, &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			val, err := e.value(v, path.Field(k.Value))
			if err != nil {
				return nil, err
			}
			m[k.Value] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := e.value(c, path.Index(i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarValue(n), nil
	}
	return nil, nil
}

func scalarValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return i
		}
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".nan":
			return math.NaN()
		case ".inf", "+.inf":
			return math.Inf(1)
		case "-.inf":
			return math.Inf(-1)
		}
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f
		}
	}
	return n.Value
}
