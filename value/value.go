// Package value provides the dynamic value type the hui utilities operate on.
//
// The value package models loosely typed, script-like data in Go: strings,
// numbers, booleans, nullish values, dates, regular expression patterns,
// ordered sequences and records. Sequences and records are reference types
// with identity, so a value graph may share sub-structures or contain
// cycles, exactly like object graphs in a dynamic language.
//
// # Core Concepts
//
// The Value type is the central type in this package. It is a closed sum
// type: Kind reports which variant a Value holds and the As* accessors
// return the payload. Values are created with constructor functions such
// as FromString, FromNumber, FromSlice and FromRecord, or converted from
// arbitrary Go data with FromAny.
//
// # Type System
//
// The following kinds exist:
//   - Undefined: a missing value
//   - Null: an explicit null
//   - Bool, Number, String: primitives, optionally boxed (see Box)
//   - Time: a millisecond precision timestamp, possibly the invalid date
//   - Pattern: a regular expression source with mode flags
//   - Seq: an ordered, mutable list (*Seq)
//   - Record: a string keyed, insertion ordered map with an optional
//     prototype link and constructor (*Record)
//   - Callable: a function or class (Callable)
//   - Opaque: any other Go value, carried through untouched
//
// # Example Usage
//
//	user := value.NewRecord()
//	user.Set("name", value.FromString("Alice"))
//	user.Set("tags", value.FromSlice([]value.Value{value.FromString("admin")}))
//	user.Set("self", value.FromRecord(user)) // cycles are allowed
//
//	v := value.FromRecord(user)
//	if v.Kind() == value.KindRecord {
//	    fmt.Println(v.Get("name")) // Alice
//	}
package value

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind describes the variant held by a Value.
//
// Example usage:
//
//	val := FromString("hello")
//	if val.Kind() == KindString {
//	    s, _ := val.AsString()
//	    fmt.Println("String:", s)
//	}
type Kind int

const (
	// KindUndefined represents an absent value.
	//
	// Undefined is what lookups of missing keys and out of range indexes
	// return. It is nullish: it equals Null under the null-ish rule of deep
	// equality and nothing else.
	KindUndefined Kind = iota

	// KindNull represents an explicit null.
	KindNull

	// KindBool represents a boolean value.
	KindBool

	// KindNumber represents an IEEE 754 double, including NaN, signed
	// zeros and infinities.
	KindNumber

	// KindString represents a text string.
	KindString

	// KindTime represents a point in time with millisecond precision.
	//
	// The invalid date (the result of parsing garbage) is also of this
	// kind; it has no timestamp and never equals anything.
	KindTime

	// KindPattern represents a regular expression value.
	KindPattern

	// KindSeq represents an ordered sequence (array/list).
	KindSeq

	// KindRecord represents a string keyed record (plain object).
	KindRecord

	// KindCallable represents a function or class.
	KindCallable

	// KindOpaque represents any other Go value.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindPattern:
		return "pattern"
	case KindSeq:
		return "sequence"
	case KindRecord:
		return "record"
	case KindCallable:
		return "callable"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value represents a dynamically typed value.
//
// Primitive payloads (bool, number, string, time) are immutable and copied
// with the Value. Sequences, records, boxes and callables are referenced:
// copying a Value copies the reference, and mutations through one copy are
// visible through every other.
//
// The zero Value is Undefined.
type Value struct {
	data any
}

// internal marker types for special values
type undefinedType struct{}
type nullType struct{}

// opaque wraps Go values that have no dedicated kind so that a value of
// e.g. type string smuggled through FromOpaque is not mistaken for a
// String.
type opaque struct {
	v any
}

// Undefined returns the undefined value.
func Undefined() Value {
	return Value{}
}

// Null returns the null value.
func Null() Value {
	return Value{data: nullType{}}
}

// True returns the boolean true value.
func True() Value {
	return Value{data: true}
}

// False returns the boolean false value.
func False() Value {
	return Value{data: false}
}

// FromBool creates a Value from a boolean.
func FromBool(v bool) Value {
	return Value{data: v}
}

// FromNumber creates a Value from a float64.
//
// NaN, infinities and negative zero are preserved as is.
func FromNumber(v float64) Value {
	return Value{data: v}
}

// FromInt creates a number Value from an integer.
//
// Integers beyond 2^53 lose precision, as they would in any double based
// number model.
func FromInt(v int64) Value {
	return Value{data: float64(v)}
}

// FromString creates a Value from a string.
func FromString(v string) Value {
	return Value{data: v}
}

// FromOpaque wraps an arbitrary Go value without conversion.
//
// Use FromAny to convert Go data into the structured kinds instead.
func FromOpaque(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{data: opaque{v: v}}
}

// Kind returns the kind of value.
//
// Boxed primitives report the kind of the primitive they wrap.
func (v Value) Kind() Kind {
	switch d := v.data.(type) {
	case nil, undefinedType:
		return KindUndefined
	case nullType:
		return KindNull
	case bool:
		return KindBool
	case float64:
		return KindNumber
	case string:
		return KindString
	case timeValue:
		return KindTime
	case *Pattern:
		return KindPattern
	case *Seq:
		return KindSeq
	case *Record:
		return KindRecord
	case *box:
		return d.inner.Kind()
	case Callable:
		return KindCallable
	default:
		return KindOpaque
	}
}

// IsUndefined returns true if the value is undefined.
func (v Value) IsUndefined() bool {
	return v.Kind() == KindUndefined
}

// IsNull returns true if the value is null.
func (v Value) IsNull() bool {
	_, ok := v.data.(nullType)
	return ok
}

// IsNullish returns true for undefined and null.
func (v Value) IsNullish() bool {
	k := v.Kind()
	return k == KindUndefined || k == KindNull
}

// IsPrimitive reports whether the value is an unboxed bool, number,
// string, null or undefined.
func (v Value) IsPrimitive() bool {
	switch v.data.(type) {
	case nil, undefinedType, nullType, bool, float64, string:
		return true
	}
	return false
}

// AsBool returns the boolean value if it is one. Boxed booleans are
// unwrapped.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.Unbox().data.(bool)
	return b, ok
}

// AsNumber returns the number value if it is one. Boxed numbers are
// unwrapped.
func (v Value) AsNumber() (float64, bool) {
	f, ok := v.Unbox().data.(float64)
	return f, ok
}

// AsInt returns the number as an integer if it has no fractional part.
func (v Value) AsInt() (int64, bool) {
	f, ok := v.AsNumber()
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// AsString returns the string value if it is one. Boxed strings are
// unwrapped.
func (v Value) AsString() (string, bool) {
	s, ok := v.Unbox().data.(string)
	return s, ok
}

// AsSeq returns the sequence if it is one.
func (v Value) AsSeq() (*Seq, bool) {
	s, ok := v.data.(*Seq)
	return s, ok && s != nil
}

// AsRecord returns the record if it is one.
func (v Value) AsRecord() (*Record, bool) {
	r, ok := v.data.(*Record)
	return r, ok && r != nil
}

// AsPattern returns the pattern if it is one.
func (v Value) AsPattern() (*Pattern, bool) {
	p, ok := v.data.(*Pattern)
	return p, ok && p != nil
}

// AsCallable returns the Callable if this value is callable.
func (v Value) AsCallable() (Callable, bool) {
	if _, ok := v.data.(*box); ok {
		return nil, false
	}
	c, ok := v.data.(Callable)
	return c, ok
}

// IsCallable returns true if this value is callable.
func (v Value) IsCallable() bool {
	_, ok := v.AsCallable()
	return ok
}

// AsOpaque returns the wrapped Go value of an opaque value.
func (v Value) AsOpaque() (any, bool) {
	o, ok := v.data.(opaque)
	return o.v, ok
}

// Get returns a member of a record or sequence.
//
// Records are searched along their prototype chain; sequences accept
// canonical decimal indexes and "length". Everything else yields
// Undefined.
func (v Value) Get(key string) Value {
	switch d := v.data.(type) {
	case *Record:
		return d.Get(key)
	case *Seq:
		if key == "length" {
			return FromInt(int64(d.Len()))
		}
		if idx, ok := parseIndex(key); ok {
			return d.At(idx)
		}
	case *box:
		if s, ok := d.inner.data.(string); ok {
			return stringMember(s, key)
		}
	case string:
		return stringMember(d, key)
	}
	return Undefined()
}

func stringMember(s, key string) Value {
	units := utf16Len(s)
	if key == "length" {
		return FromInt(int64(units))
	}
	if idx, ok := parseIndex(key); ok && idx < len(s) {
		r := []rune(s)
		if idx < len(r) {
			return FromString(string(r[idx]))
		}
	}
	return Undefined()
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// parseIndex accepts only canonical non-negative decimal integers, the way
// array index property names work.
func parseIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Same reports strict identity of two values.
//
// Primitives are identical when they hold the same payload; NaN is not
// identical to itself and +0 is identical to -0. Sequences, records, boxes,
// patterns and callables are identical only if they are the same instance.
// Times have no identity of their own and compare by timestamp.
func Same(a, b Value) bool {
	switch x := a.data.(type) {
	case nil, undefinedType:
		return b.Kind() == KindUndefined && b.IsPrimitive()
	case float64:
		y, ok := b.data.(float64)
		return ok && x == y
	case opaque:
		y, ok := b.data.(opaque)
		return ok && comparableEqual(x.v, y.v)
	case timeValue:
		y, ok := b.data.(timeValue)
		return ok && x.valid && y.valid && x.ms == y.ms
	}
	if a.data == nil || b.data == nil {
		return false
	}
	return comparableEqual(a.data, b.data)
}

func comparableEqual(x, y any) bool {
	tx, ty := reflect.TypeOf(x), reflect.TypeOf(y)
	if tx != ty || !tx.Comparable() {
		return false
	}
	if tx.Kind() == reflect.Func {
		return false
	}
	return x == y
}

// Truthy returns the truthiness of the value.
//
// Undefined, null, false, +0, -0, NaN and the empty string are falsy.
// Everything else, including boxed primitives and empty sequences, is
// truthy.
func (v Value) Truthy() bool {
	switch d := v.data.(type) {
	case nil, undefinedType, nullType:
		return false
	case bool:
		return d
	case float64:
		return d != 0 && !math.IsNaN(d)
	case string:
		return d != ""
	default:
		return true
	}
}

// String converts the value to a string.
//
// Sequences are joined with commas (nullish elements and cycles render
// empty), records render as "[object Object]" and times use the invalid
// date marker or an RFC 3339 timestamp.
func (v Value) String() string {
	var sb strings.Builder
	writeString(&sb, v, nil)
	return sb.String()
}

func writeString(sb *strings.Builder, v Value, seen map[*Seq]struct{}) {
	switch d := v.data.(type) {
	case nil, undefinedType:
		sb.WriteString("undefined")
	case nullType:
		sb.WriteString("null")
	case bool:
		sb.WriteString(strconv.FormatBool(d))
	case float64:
		sb.WriteString(FormatNumber(d))
	case string:
		sb.WriteString(d)
	case timeValue:
		sb.WriteString(d.String())
	case *Pattern:
		sb.WriteString(d.String())
	case *box:
		writeString(sb, d.inner, seen)
	case *Seq:
		if _, ok := seen[d]; ok {
			return
		}
		if seen == nil {
			seen = make(map[*Seq]struct{})
		}
		seen[d] = struct{}{}
		for i, item := range d.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			if !item.IsNullish() {
				writeString(sb, item, seen)
			}
		}
		delete(seen, d)
	case *Record:
		sb.WriteString("[object Object]")
	case *Class:
		sb.WriteString("function " + d.Name() + "() { [native code] }")
	case Callable:
		sb.WriteString("function () { [native code] }")
	case opaque:
		sb.WriteString(reprOpaque(d.v))
	}
}

// FormatNumber renders a float64 the way script engines print numbers:
// integral values have no decimal point, very large and very small
// magnitudes use exponent notation.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
