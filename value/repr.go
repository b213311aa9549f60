package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Repr returns a debug representation of the value.
//
// Strings are quoted, records list their own keys in insertion order and
// a sequence or record that is already being printed renders as
// [Circular].
func (v Value) Repr() string {
	var sb strings.Builder
	writeRepr(&sb, v, make(map[any]struct{}))
	return sb.String()
}

func writeRepr(sb *strings.Builder, v Value, active map[any]struct{}) {
	switch d := v.data.(type) {
	case string:
		sb.WriteString(strconv.Quote(d))
	case *box:
		sb.WriteString("[")
		sb.WriteString(d.inner.Kind().String())
		sb.WriteString(": ")
		writeRepr(sb, d.inner, active)
		sb.WriteString("]")
	case *Seq:
		if _, ok := active[d]; ok {
			sb.WriteString("[Circular]")
			return
		}
		active[d] = struct{}{}
		sb.WriteByte('[')
		for i, item := range d.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, item, active)
		}
		sb.WriteByte(']')
		delete(active, d)
	case *Record:
		if _, ok := active[d]; ok {
			sb.WriteString("[Circular]")
			return
		}
		active[d] = struct{}{}
		if c := d.Constructor(); c != nil {
			sb.WriteString(c.Name())
			sb.WriteByte(' ')
		}
		sb.WriteByte('{')
		for i, k := range d.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatKey(k))
			sb.WriteString(": ")
			writeRepr(sb, d.vals[k], active)
		}
		sb.WriteByte('}')
		delete(active, d)
	case *Class:
		sb.WriteString("[class " + d.Name() + "]")
	case Callable:
		sb.WriteString("[function]")
	default:
		writeString(sb, v, nil)
	}
}

func formatKey(key string) string {
	if key == "" {
		return `""`
	}
	for i, r := range key {
		isLetter := r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isLetter && (i == 0 || r < '0' || r > '9') {
			if _, ok := parseIndex(key); ok {
				return key
			}
			return strconv.Quote(key)
		}
	}
	return key
}

func reprOpaque(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
