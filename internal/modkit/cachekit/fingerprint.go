package cachekit

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Fingerprint derives a deterministic cache key from the call arguments
// equal argument tuples always produce the same key, nil renders as "none"
func Fingerprint(parts ...any) string {
	ss := make([]string, 0, len(parts))
	for _, p := range parts {
		ss = append(ss, stringify(p))
	}
	return strings.Join(ss, ":")
}

func stringify(v any) string {
	if v == nil {
		return "none"
	}
	// optional arguments arrive as pointers, deref or mark absent
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "none"
		}
		return stringify(rv.Elem().Interface())
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
