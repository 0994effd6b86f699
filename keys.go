package composer

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// anyToKeyString normalizes a key value into a canonical string so that
// equivalent keys of different Go types (int64(1), int(1), "1" is NOT
// equivalent to 1, but int64(1) and int32(1) are) collapse to the same
// map entry during dedup, grouping and caching.
func anyToKeyString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case int32:
		return strconv.FormatInt(int64(k), 10)
	case int16:
		return strconv.FormatInt(int64(k), 10)
	case int8:
		return strconv.FormatInt(int64(k), 10)
	case uint:
		return strconv.FormatUint(uint64(k), 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case uint32:
		return strconv.FormatUint(uint64(k), 10)
	case uint16:
		return strconv.FormatUint(uint64(k), 10)
	case uint8:
		return strconv.FormatUint(uint64(k), 10)
	case []byte:
		return string(k)
	}

	// uuid.UUID and friends stringify through here
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}

	// Byte arrays without a Stringer, e.g. [16]byte
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		var sb strings.Builder
		sb.Grow(rv.Len())
		for i := 0; i < rv.Len(); i++ {
			sb.WriteByte(byte(rv.Index(i).Uint()))
		}
		return sb.String()
	}

	return fmt.Sprintf("%v", v)
}

// rebind rewrites MySQL-style ? placeholders into PostgreSQL's $N
// positional placeholders. Question marks inside single-quoted string
// literals are left untouched.
func rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			sb.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
