// Package bind fixes the receiver and leading arguments of callables.
package bind

import (
	"go.ytsaurus.tech/library/go/core/xerrors"

	"github.com/huiutil/hui-go/value"
)

// ErrInvalidArgument is returned when the bind target is not callable.
var ErrInvalidArgument = xerrors.NewSentinel("invalid argument")

// Bind returns a callable that calls target with scope as receiver and
// boundArgs in front of its own arguments.
//
// A string target names a member of scope, which is looked up once, right
// away. When scope is falsy the receiver is the target itself. The
// receiver passed to the returned callable is ignored.
func Bind(target, scope value.Value, boundArgs ...value.Value) (value.Value, error) {
	fn, err := Resolve(target, scope)
	if err != nil {
		return value.Undefined(), err
	}

	this := scope
	if !scope.Truthy() {
		this = fn
	}
	xargs := make([]value.Value, len(boundArgs))
	copy(xargs, boundArgs)

	return value.FromFunc(func(_ value.Value, args []value.Value) (value.Value, error) {
		all := make([]value.Value, 0, len(xargs)+len(args))
		all = append(all, xargs...)
		all = append(all, args...)
		return fn.Call(this, all...)
	}), nil
}

// Resolve returns target if it is callable, or the callable member of
// scope named by a string target.
func Resolve(target, scope value.Value) (value.Value, error) {
	fn := target
	if name, ok := target.AsString(); ok {
		fn = scope.Get(name)
		if !fn.IsCallable() {
			return value.Undefined(), ErrInvalidArgument.Wrap(
				xerrors.Errorf("member %q of %s is not callable", name, scope.Repr()))
		}
		return fn, nil
	}
	if !fn.IsCallable() {
		return value.Undefined(), ErrInvalidArgument.Wrap(
			xerrors.Errorf("%s is not callable", target.Repr()))
	}
	return fn, nil
}
