package value

import (
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ErrNotCallable is returned when calling a value that is not callable.
var ErrNotCallable = xerrors.NewSentinel("value is not callable")

// Callable is implemented by function values.
//
// this is the receiver the function runs against (Undefined when there is
// none) and args are the positional arguments.
//
// Example implementation:
//
//	type greeter struct{}
//
//	func (greeter) Call(this Value, args []Value) (Value, error) {
//	    return FromString("Hello " + args[0].String()), nil
//	}
type Callable interface {
	Call(this Value, args []Value) (Value, error)
}

// Func adapts an ordinary Go function to Callable.
type Func func(this Value, args []Value) (Value, error)

// funcCallable gives Func values an identity; Go functions are not
// comparable.
type funcCallable struct {
	fn Func
}

func (f *funcCallable) Call(this Value, args []Value) (Value, error) {
	return f.fn(this, args)
}

// FromFunc creates a callable Value from fn. Each call returns a distinct
// instance.
func FromFunc(fn Func) Value {
	if fn == nil {
		return Null()
	}
	return Value{data: &funcCallable{fn: fn}}
}

// FromCallable creates a Value from a Callable.
func FromCallable(c Callable) Value {
	if c == nil {
		return Null()
	}
	return Value{data: c}
}

// Call invokes the value if it is callable.
func (v Value) Call(this Value, args ...Value) (Value, error) {
	c, ok := v.AsCallable()
	if !ok {
		return Undefined(), ErrNotCallable.Wrap(xerrors.Errorf("value of kind %s", v.Kind()))
	}
	return c.Call(this, args)
}
