package strictjson

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"unsafe"
)

// Validate checks that value can be serialized to JSON faithfully. replacer
// accepts the shapes listed on NormalizeReplacer. It returns the first
// *InvalidValueError or *CircularReferenceError found in a pre-order,
// depth-first walk, or nil.
func Validate(value any, replacer any) error {
	_, err := project(value, NormalizeReplacer(replacer), true, CurrentDriver())
	return err
}

// project walks value once, applying the replacer and conversion hooks, and
// returns the effective value ready for a driver. In strict mode every node
// passes the type gate.
func project(value any, replacer ReplacerFunc, strict bool, drv Driver) (any, error) {
	w := &walker{replacer: replacer, strict: strict, drv: drv}
	root := value
	if replacer != nil {
		// The replacer may transform or veto the whole payload.
		root = replacer(map[string]any{"": value}, "", value)
	}
	return w.check(root, RootPath, nil)
}

type walker struct {
	replacer ReplacerFunc
	strict   bool
	drv      Driver
}

// identity is the reference identity of a composite value.
type identity struct {
	typ reflect.Type
	ptr unsafe.Pointer
	len int
}

// ancestors is the chain of composite values on the current branch. It is
// extended by allocation and never mutated, so siblings do not see each
// other's entries.
type ancestors struct {
	id identity
	// value is set instead of id for converted values without reference
	// identity (a Converter held by value); those compare by equality.
	value  any
	parent *ancestors
}

func (a *ancestors) has(id identity) bool {
	for ; a != nil; a = a.parent {
		if a.value == nil && a.id == id {
			return true
		}
	}
	return false
}

func (a *ancestors) hasValue(v any) bool {
	t := reflect.TypeOf(v)
	for ; a != nil; a = a.parent {
		if a.value != nil && reflect.TypeOf(a.value) == t && reflect.DeepEqual(a.value, v) {
			return true
		}
	}
	return false
}

func (a *ancestors) with(id identity) *ancestors { return &ancestors{id: id, parent: a} }

// identityOf returns the identity of maps, non-empty slices and pointers.
func identityOf(rv reflect.Value) (identity, bool) {
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{typ: rv.Type(), ptr: rv.UnsafePointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return identity{}, false
		}
		return identity{typ: rv.Type(), ptr: rv.UnsafePointer(), len: rv.Len()}, true
	}
	return identity{}, false
}

func (w *walker) check(v any, path Path, anc *ancestors) (any, error) {
	if w.strict {
		if err := rejectCommon(v, path); err != nil {
			return nil, err
		}
	}
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
	}

	if c, ok := v.(Converter); ok {
		anc, err := w.enterConverted(v, rv, path, anc)
		if err != nil {
			return nil, err
		}
		return w.check(c.ToJSON(), path, anc)
	}
	if isOpaque(v) || isPrimitive(rv) {
		return v, nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		anc, err := w.enter(rv, path, anc)
		if err != nil {
			return nil, err
		}
		if elem := rv.Elem(); elem.Kind() == reflect.Struct {
			return w.checkStruct(v, elem, path, anc)
		}
		return w.check(rv.Elem().Interface(), path, anc)
	case reflect.Slice, reflect.Array:
		anc, err := w.enter(rv, path, anc)
		if err != nil {
			return nil, err
		}
		return w.checkArray(v, rv, path, anc)
	case reflect.Map:
		anc, err := w.enter(rv, path, anc)
		if err != nil {
			return nil, err
		}
		return w.checkMap(v, rv, path, anc)
	case reflect.Struct:
		return w.checkStruct(v, rv, path, anc)
	}

	if w.strict {
		// Channels, complex numbers, unsafe pointers.
		return nil, invalid(CodeInvalidType, nil, v, path)
	}
	return v, nil
}

// enter runs the cycle check for rv and returns the chain extended with it.
// Values without identity leave the chain as it is.
func (w *walker) enter(rv reflect.Value, path Path, anc *ancestors) (*ancestors, error) {
	id, ok := identityOf(rv)
	if !ok {
		return anc, nil
	}
	if anc.has(id) {
		return nil, w.cycle(rv, path)
	}
	return anc.with(id), nil
}

// enterConverted is enter for a Converter. A converter without reference
// identity is recorded by value, so a hook that returns an equal value of its
// own type, directly or inside a container, is reported as a cycle.
func (w *walker) enterConverted(v any, rv reflect.Value, path Path, anc *ancestors) (*ancestors, error) {
	if _, ok := identityOf(rv); ok {
		return w.enter(rv, path, anc)
	}
	if anc.hasValue(v) {
		return nil, w.cycle(rv, path)
	}
	return &ancestors{value: v, parent: anc}, nil
}

func (w *walker) cycle(rv reflect.Value, path Path) error {
	if w.strict {
		return NewCircularReferenceError(path)
	}
	return &json.UnsupportedValueError{Value: rv, Str: "encountered a cycle via " + rv.Type().String()}
}

func (w *walker) checkArray(holder any, rv reflect.Value, path Path, anc *ancestors) (any, error) {
	n := rv.Len()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		item := rv.Index(i).Interface()
		if w.replacer != nil {
			item = w.replacer(holder, strconv.Itoa(i), item)
		}
		v, err := w.check(item, path.Index(i), anc)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (w *walker) checkMap(holder any, rv reflect.Value, path Path, anc *ancestors) (any, error) {
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, ok := mapKey(iter.Key())
		if !ok {
			if !w.strict {
				return nil, &json.UnsupportedTypeError{Type: rv.Type()}
			}
			raw := iter.Key().Interface()
			return nil, invalid(CodeInvalidKey, map[string]string{"type": fmt.Sprintf("%T", raw)},
				raw, path.Field(fmt.Sprint(raw)))
		}
		entries = append(entries, entry{key: key, value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	obj := &object{members: make([]member, 0, len(entries)), drv: w.drv}
	for _, e := range entries {
		v, keep, err := w.member(holder, e.key, e.value.Interface(), path, anc)
		if err != nil {
			return nil, err
		}
		if keep {
			obj.members = append(obj.members, member{key: e.key, value: v})
		}
	}
	return obj, nil
}

func (w *walker) checkStruct(holder any, rv reflect.Value, path Path, anc *ancestors) (any, error) {
	fields := structFields(rv.Type())
	obj := &object{members: make([]member, 0, len(fields)), drv: w.drv}
	for _, f := range fields {
		fv, ok := fieldByIndex(rv, f.index)
		if !ok || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}
		v, keep, err := w.member(holder, f.name, fv.Interface(), path, anc)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		if f.quoted {
			if v, err = w.quote(v); err != nil {
				return nil, err
			}
		}
		obj.members = append(obj.members, member{key: f.name, value: v})
	}
	return obj, nil
}

// member resolves one object member. keep is false when the member is
// dropped.
func (w *walker) member(holder any, key string, raw any, path Path, anc *ancestors) (any, bool, error) {
	value := raw
	if w.replacer != nil {
		value = w.replacer(holder, key, raw)
		if IsUndefined(value) {
			return nil, false, nil
		}
	}
	if !w.strict && IsUndefined(value) {
		return nil, false, nil
	}
	v, err := w.check(value, path.Field(key), anc)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// quote applies the ",string" tag option to a scalar.
func (w *walker) quote(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if !quotable(reflect.TypeOf(v).Kind()) {
		return v, nil
	}
	b, err := w.drv.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// mapKey resolves a map key to its JSON member name following encoding/json:
// string kinds, then encoding.TextMarshaler, then integers. Interface keys
// are resolved by their dynamic value.
func mapKey(k reflect.Value) (string, bool) {
	if k.Kind() == reflect.Interface {
		if k.IsNil() {
			return "", false
		}
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String(), true
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		if k.Kind() == reflect.Pointer && k.IsNil() {
			return "", true
		}
		b, err := tm.MarshalText()
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), true
	}
	return "", false
}
