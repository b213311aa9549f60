package value

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	regexpType  = reflect.TypeOf(&regexp.Regexp{})
	valueType   = reflect.TypeOf(Value{})
	callableTyp = reflect.TypeOf((*Callable)(nil)).Elem()
)

// FromAny creates a Value from any Go value using reflection.
//
// FromAny converts Go types to their corresponding kinds:
//   - nil, nil pointers, nil maps and nil slices -> Null()
//   - bool -> FromBool()
//   - integer and float types -> FromNumber()
//   - string -> FromString()
//   - time.Time -> FromTime()
//   - *regexp.Regexp -> a Pattern with the same source
//   - Value -> returned as is
//   - Callable, *Seq, *Record, *Class -> referenced as is
//   - slices/arrays -> a new Seq (recursively)
//   - maps -> a new Record with keys in sorted order (recursively)
//   - structs -> a new Record of exported fields, honoring json tags
//   - pointers/interfaces -> dereference and convert
//   - anything else -> FromOpaque()
//
// Pointers, maps and slices that are reachable more than once convert to
// the same Seq or Record, so shared and cyclic Go structures keep their
// shape.
//
// Example usage:
//
//	data := FromAny(map[string]any{
//	    "name": "Alice",
//	    "tags": []string{"admin", "user"},
//	})
func FromAny(v any) Value {
	if v == nil {
		return Null()
	}
	if val, ok := v.(Value); ok {
		return val
	}
	c := &converter{seen: make(map[aliasKey]Value)}
	return c.convert(reflect.ValueOf(v))
}

type aliasKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

type converter struct {
	seen map[aliasKey]Value
}

func (c *converter) convert(rv reflect.Value) Value {
	if !rv.IsValid() {
		return Null()
	}
	t := rv.Type()
	switch {
	case t == valueType:
		return rv.Interface().(Value)
	case t == timeType:
		return FromTime(rv.Interface().(time.Time))
	case t == regexpType:
		if rv.IsNil() {
			return Null()
		}
		return fromRegexp(rv.Interface().(*regexp.Regexp))
	}
	if rv.CanInterface() {
		switch d := rv.Interface().(type) {
		case *Seq:
			return FromSeq(d)
		case *Record:
			return FromRecord(d)
		case *Class:
			return FromClass(d)
		case *Pattern:
			return FromPattern(d)
		}
		if t.Implements(callableTyp) && t.Kind() != reflect.Interface {
			if isNilable(rv) && rv.IsNil() {
				return Null()
			}
			return FromCallable(rv.Interface().(Callable))
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return FromBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return FromNumber(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return FromNumber(rv.Float())
	case reflect.String:
		return FromString(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		key := aliasKey{typ: t, ptr: rv.Pointer(), len: rv.Len()}
		if seen, ok := c.seen[key]; ok {
			return seen
		}
		seq := NewSeq()
		out := FromSeq(seq)
		c.seen[key] = out
		c.fillSeq(seq, rv)
		return out
	case reflect.Array:
		seq := NewSeq()
		c.fillSeq(seq, rv)
		return FromSeq(seq)
	case reflect.Map:
		if rv.IsNil() {
			return Null()
		}
		key := aliasKey{typ: t, ptr: rv.Pointer()}
		if seen, ok := c.seen[key]; ok {
			return seen
		}
		rec := NewRecord()
		out := FromRecord(rec)
		c.seen[key] = out
		c.fillMap(rec, rv)
		return out
	case reflect.Struct:
		rec := NewRecord()
		c.fillStruct(rec, rv)
		return FromRecord(rec)
	case reflect.Ptr:
		if rv.IsNil() {
			return Null()
		}
		if rv.Elem().Kind() != reflect.Struct {
			return c.convert(rv.Elem())
		}
		key := aliasKey{typ: t, ptr: rv.Pointer()}
		if seen, ok := c.seen[key]; ok {
			return seen
		}
		rec := NewRecord()
		out := FromRecord(rec)
		c.seen[key] = out
		c.fillStruct(rec, rv.Elem())
		return out
	case reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return c.convert(rv.Elem())
	default:
		if !rv.CanInterface() {
			return Undefined()
		}
		return FromOpaque(rv.Interface())
	}
}

func (c *converter) fillSeq(seq *Seq, rv reflect.Value) {
	for i := 0; i < rv.Len(); i++ {
		seq.Append(c.convert(rv.Index(i)))
	}
}

func (c *converter) fillMap(rec *Record, rv reflect.Value) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key string
		if k.Kind() == reflect.String {
			key = k.String()
		} else {
			key = fmt.Sprintf("%v", k.Interface())
		}
		entries = append(entries, entry{key: key, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	for _, e := range entries {
		rec.Set(e.key, c.convert(e.val))
	}
}

func (c *converter) fillStruct(rec *Record, rv reflect.Value) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		// Check for json tag
		if tag := field.Tag.Get("json"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" && parts[0] != "-" {
				name = parts[0]
			} else if parts[0] == "-" {
				continue
			}
		}
		rec.Set(name, c.convert(rv.Field(i)))
	}
}

func fromRegexp(re *regexp.Regexp) Value {
	src := re.String()
	var flags strings.Builder
	// Leading inline flag groups such as (?i) become pattern flags.
	if strings.HasPrefix(src, "(?") {
		if end := strings.IndexByte(src, ')'); end > 2 {
			inline := src[2:end]
			if strings.Trim(inline, "ims") == "" {
				for _, r := range inline {
					switch r {
					case 'i':
						flags.WriteByte('i')
					case 'm':
						flags.WriteByte('m')
					case 's':
						flags.WriteByte('s')
					}
				}
				src = src[end+1:]
			}
		}
	}
	p, err := NewPattern(src, flags.String())
	if err != nil {
		return FromOpaque(re)
	}
	return FromPattern(p)
}

func isNilable(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return true
	}
	return false
}
