package parser

import (
	"fmt"
	"reflect"

	"record-mapper/internal/mapping"
)

// Values holds the values of one record or segment occurrence, keyed by
// property name.
type Values map[string]any

// Get walks a dotted path through nested segments. It stops with false at a
// repeated segment.
func (v Values) Get(path mapping.PropertyPath) (any, bool) {
	cur := v

	for i, name := range path {
		val, ok := cur[name]
		if !ok {
			return nil, false
		}

		if i == len(path)-1 {
			return val, true
		}

		next, err := asValues(val)
		if err != nil || next == nil {
			return nil, false
		}

		cur = next
	}

	return nil, false
}

// asValues accepts Values and plain maps.
func asValues(v any) (Values, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case Values:
		return m, nil
	case map[string]any:
		return m, nil
	default:
		return nil, fmt.Errorf("expected a map of values, got %T", v)
	}
}

// asList accepts any slice. A value that is not a slice is one occurrence.
func asList(v any) []any {
	switch l := v.(type) {
	case nil:
		return nil
	case []any:
		return l
	case []Values:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}

		return out
	case string, []byte:
		return []any{v}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out
}
