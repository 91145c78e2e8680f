package strictjson

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

// ReplacerFunc is the canonical replacer. holder is the container that owns
// key (the map, slice or struct being walked); for the root call it is
// map[string]any{"": value} and key is "". Returning Undefined for an object
// member drops that member.
type ReplacerFunc func(holder any, key string, value any) any

// AllowList is a replacer given as the names of the members to keep. The
// root value is always kept.
type AllowList []string

// NormalizeReplacer turns the accepted replacer shapes into a ReplacerFunc:
//
//   - ReplacerFunc or func(holder any, key string, value any) any, unchanged;
//   - func(key string, value any) any, called without the holder;
//   - AllowList, []string, []int or []any holding strings and numbers, as a
//     function dropping every non-listed key except the root key "".
//
// Anything else, including nil or a nil list, yields nil: no filtering.
func NormalizeReplacer(raw any) ReplacerFunc {
	switch r := raw.(type) {
	case ReplacerFunc:
		return r
	case func(holder any, key string, value any) any:
		return r
	case func(key string, value any) any:
		if r == nil {
			return nil
		}
		return func(_ any, key string, value any) any { return r(key, value) }
	case AllowList:
		return allowListReplacer(r)
	case []string:
		return allowListReplacer(r)
	case []int:
		if r == nil {
			return nil
		}
		return allowListReplacer(lo.Map(r, func(i int, _ int) string { return strconv.Itoa(i) }))
	case []any:
		if r == nil {
			return nil
		}
		return allowListReplacer(lo.FilterMap(r, func(item any, _ int) (string, bool) {
			switch k := item.(type) {
			case string:
				return k, true
			case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
				return fmt.Sprint(k), true
			}
			return "", false
		}))
	}
	return nil
}

func allowListReplacer(keys []string) ReplacerFunc {
	if keys == nil {
		return nil
	}
	allowed := lo.Keyify(keys)
	return func(_ any, key string, value any) any {
		if key == "" {
			return value
		}
		if _, ok := allowed[key]; !ok {
			return Undefined
		}
		return value
	}
}
