package strictjson

import (
	"strconv"
	"strings"
)

// Path is an immutable reference path from the root value to a descendant.
// Field and Index return a new Path; the receiver is never modified, so a
// Path can be handed to sibling branches safely.
type Path struct {
	parts []string
}

// RootPath is the path of the top-level value. Its pointer is "".
var RootPath = Path{}

// Field returns the child path for an object member.
func (p Path) Field(name string) Path {
	return Path{parts: append(append(make([]string, 0, len(p.parts)+1), p.parts...), name)}
}

// Index returns the child path for an array element.
func (p Path) Index(i int) Path { return p.Field(strconv.Itoa(i)) }

// Segments returns a copy of the unescaped segments.
func (p Path) Segments() []string { return append([]string(nil), p.parts...) }

// Len reports the depth of the path.
func (p Path) Len() int { return len(p.parts) }

// Pointer renders the path as an RFC 6901 JSON Pointer (for example: /a/0/b).
func (p Path) Pointer() string { return CompilePointer(p.parts) }

func (p Path) String() string { return p.Pointer() }

// CompilePointer renders segments as a JSON Pointer, escaping '~' as '~0' and
// '/' as '~1'. No segments yield the empty string.
func CompilePointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(s))
	}
	return b.String()
}

// ParsePointer splits a JSON Pointer into unescaped segments.
func ParsePointer(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, nil
	}
	if ptr[0] != '/' {
		return nil, &PointerSyntaxError{Pointer: ptr}
	}
	raw := strings.Split(ptr[1:], "/")
	out := make([]string, len(raw))
	for i, s := range raw {
		if strings.Contains(strings.ReplaceAll(strings.ReplaceAll(s, "~0", ""), "~1", ""), "~") {
			return nil, &PointerSyntaxError{Pointer: ptr}
		}
		out[i] = pointerUnescaper.Replace(s)
	}
	return out, nil
}

// PointerSyntaxError reports a malformed JSON Pointer.
type PointerSyntaxError struct {
	Pointer string
}

func (e *PointerSyntaxError) Error() string {
	return "strictjson: malformed JSON pointer " + strconv.Quote(e.Pointer)
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)
