// Package hui is a small toolkit of general purpose utilities over a
// dynamic value model: deep clone and deep equality of possibly cyclic
// value graphs, "#{key}" string templates, sorting records by a field,
// binding callables to a receiver, class style inheritance helpers, and
// date formatting and parsing.
//
// # Quick Start
//
//	v := hui.FromAny(map[string]any{"a": []any{1, 2, map[string]any{"b": 3}}})
//	c := hui.Clone(v)
//	hui.Equal(v, c) // true
//
//	hui.Format("#{name} is #{age}", hui.FromMap(map[string]hui.Value{
//	    "name": hui.FromString("ann"),
//	    "age":  hui.FromInt(30),
//	})) // "ann is 30"
//
//	hui.FormatDate(time.Now(), "yyyy-MM-dd HH:mm")
//	hui.ParseDate("2011-06-08 10:10:10")
//
// # Toolkit Configuration
//
// The package level functions use a Toolkit with default settings. A
// Toolkit of your own picks up a logger, a time zone, a default date
// pattern, a clock, and a copier for opaque Go payloads:
//
//	tk := hui.New(
//	    hui.WithLogger(logger),
//	    hui.WithLocation(time.UTC),
//	    hui.WithDatePattern("yyyy/MM/dd"),
//	)
//	tk.AddTemplate("greeting", "hello #{0}")
//	out, err := tk.RenderTemplate("greeting", hui.FromString("ann"))
//
// # Error Handling
//
// Operations that can fail return an *Error carrying an ErrorKind and the
// underlying error:
//
//	if _, err := hui.Bind(hui.FromInt(1), hui.Null()); err != nil {
//	    if kind, ok := hui.KindOf(err); ok && kind == hui.ErrInvalidArgument {
//	        // not callable
//	    }
//	}
//
// # See Also
//
//   - value package: the value model
//   - deep package: Clone and Equal
//   - tmpl, collate, bind, proto and datefmt packages: the utilities
package hui

import (
	"time"

	"github.com/huiutil/hui-go/value"
)

// Value is a dynamically typed value.
type Value = value.Value

// Kind describes the type of a Value.
type Kind = value.Kind

// Common value kinds
const (
	KindUndefined = value.KindUndefined
	KindNull      = value.KindNull
	KindBool      = value.KindBool
	KindNumber    = value.KindNumber
	KindString    = value.KindString
	KindTime      = value.KindTime
	KindPattern   = value.KindPattern
	KindSeq       = value.KindSeq
	KindRecord    = value.KindRecord
	KindCallable  = value.KindCallable
	KindOpaque    = value.KindOpaque
)

// Value constructors
var (
	Undefined  = value.Undefined
	Null       = value.Null
	FromBool   = value.FromBool
	FromInt    = value.FromInt
	FromNumber = value.FromNumber
	FromString = value.FromString
	FromTime   = value.FromTime
	FromSlice  = value.FromSlice
	FromMap    = value.FromMap
	FromFunc   = value.FromFunc
	FromAny    = value.FromAny
)

var defaultToolkit = New()

// Format substitutes "#{key}" placeholders using the default Toolkit.
func Format(template string, args ...Value) string {
	return defaultToolkit.Format(template, args...)
}

// SortBy sorts a sequence of records by field using the default Toolkit.
func SortBy(list Value, field, order string) Value {
	return defaultToolkit.SortBy(list, field, order)
}

// Bind binds target to scope using the default Toolkit.
func Bind(target, scope Value, boundArgs ...Value) (Value, error) {
	return defaultToolkit.Bind(target, scope, boundArgs...)
}

// Inherit makes child extend parent using the default Toolkit.
func Inherit(child, parent *value.Class) error {
	return defaultToolkit.Inherit(child, parent)
}

// ExtendShallow copies the keys of source onto target.
func ExtendShallow(target, source *value.Record) {
	defaultToolkit.ExtendShallow(target, source)
}

// Derive fills missing keys of obj from an instance of class using the
// default Toolkit.
func Derive(obj *value.Record, class *value.Class) error {
	return defaultToolkit.Derive(obj, class)
}

// Clone deep-copies v using the default Toolkit.
func Clone(v Value) Value {
	return defaultToolkit.Clone(v)
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Value) bool {
	return defaultToolkit.Equal(a, b)
}

// FormatDate formats d using the default Toolkit.
func FormatDate(d time.Time, pattern string) string {
	return defaultToolkit.FormatDate(d, pattern)
}

// ParseDate parses s using the default Toolkit.
func ParseDate(s string) Value {
	return defaultToolkit.ParseDate(s)
}
