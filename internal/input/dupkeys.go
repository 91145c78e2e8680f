package input

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/reoring/strictjson"
)

// DuplicateMemberError reports an object member name repeated within one
// JSON object. Decoding would silently keep the last one.
type DuplicateMemberError struct {
	// Pointer locates the repeated member.
	Pointer string
	// Offset is the byte offset just past the repeated name.
	Offset int64
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("duplicate JSON member %q (offset %d)", e.Pointer, e.Offset)
}

// frame is one open object or array.
type frame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string // last member name read
	next         int    // next array index
	path         strictjson.Path
}

// checkDuplicateMembers scans data token by token and returns the first
// repeated member. Syntax errors are left to the decoder that runs next.
func checkDuplicateMembers(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []frame

	// valuePath returns the path of the value about to start and consumes its
	// slot in the enclosing container.
	valuePath := func() strictjson.Path {
		if len(stack) == 0 {
			return strictjson.RootPath
		}
		top := &stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
			return top.path.Field(top.key)
		}
		p := top.path.Index(top.next)
		top.next++
		return p
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF, or a syntax error the decoder reports with more context.
			return nil
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, frame{object: true, keys: map[string]struct{}{}, expectingKey: true, path: valuePath()})
			case '[':
				stack = append(stack, frame{path: valuePath()})
			case '}', ']':
				stack = stack[:len(stack)-1]
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				if _, dup := top.keys[v]; dup {
					return &DuplicateMemberError{Pointer: top.path.Field(v).Pointer(), Offset: dec.InputOffset()}
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valuePath()
		default:
			valuePath()
		}
	}
}
