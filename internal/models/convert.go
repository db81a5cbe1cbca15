package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FromAny converts a generic Go value, as produced by encoding/json or built
// by hand, into a Value.
//
// Plain Go maps have no order, so map[string]any keys are sorted to keep the
// result deterministic. Use an *orderedmap.OrderedMap to control key order.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case json.Number:
		return Number(v.String()), nil
	case string:
		return String(v), nil
	case int:
		return Number(strconv.Itoa(v)), nil
	case int32:
		return Number(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return Number(strconv.FormatInt(v, 10)), nil
	case uint:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(v, 10)), nil
	case float32:
		return Number(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		// Shortest representation that round-trips, without an exponent.
		return Number(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case []any:
		items := make([]Value, 0, len(v))
		for i, elem := range v {
			item, err := FromAny(elem)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return Value{kind: KindSequence, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		pairs := make([]Pair, 0, len(keys))
		for _, key := range keys {
			item, err := FromAny(v[key])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			pairs = append(pairs, Pair{Key: key, Value: item})
		}
		return Mapping(pairs...), nil
	case *orderedmap.OrderedMap[string, any]:
		if v == nil {
			return Mapping(), nil
		}
		pairs := make([]Pair, 0, v.Len())
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			item, err := FromAny(pair.Value)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", pair.Key, err)
			}
			pairs = append(pairs, Pair{Key: pair.Key, Value: item})
		}
		return Mapping(pairs...), nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", raw)
	}
}
