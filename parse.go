package strictjson

import (
	"maps"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ReviverFunc transforms parsed values bottom-up. holder is the container of
// key (map[string]any{"": root} for the root). Returning Undefined deletes an
// object member; for array elements it stores nil.
type ReviverFunc func(holder any, key string, value any) any

func parse(text string, reviver ReviverFunc) (any, error) {
	drv := CurrentDriver()
	var v any
	if err := drv.Unmarshal([]byte(text), &v); err != nil {
		return nil, errors.Wrapf(err, "strictjson: %s unmarshal", drv.Name())
	}
	if reviver == nil {
		return v, nil
	}
	root := map[string]any{"": v}
	out := revive(reviver, root, "", v)
	if IsUndefined(out) {
		return nil, nil
	}
	return out, nil
}

func revive(reviver ReviverFunc, holder any, key string, v any) any {
	switch t := v.(type) {
	case map[string]any:
		// Members are revived in key order, as Stringify visits them.
		for _, k := range slices.Sorted(maps.Keys(t)) {
			nv := revive(reviver, t, k, t[k])
			if IsUndefined(nv) {
				delete(t, k)
				continue
			}
			t[k] = nv
		}
	case []any:
		for i, child := range t {
			nv := revive(reviver, t, strconv.Itoa(i), child)
			if IsUndefined(nv) {
				nv = nil
			}
			t[i] = nv
		}
	}
	return reviver(holder, key, v)
}

// Unmarshal decodes data into v with the current driver. Reading is never
// validated.
func Unmarshal(data []byte, v any) error {
	drv := CurrentDriver()
	if err := drv.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "strictjson: %s unmarshal", drv.Name())
	}
	return nil
}
