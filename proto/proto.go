// Package proto wires classes and records together: class inheritance,
// shallow extension and defaulting from a class instance.
package proto

import (
	"go.ytsaurus.tech/library/go/core/xerrors"

	"github.com/huiutil/hui-go/value"
)

// ErrInvalidArgument is returned for nil classes or records.
var ErrInvalidArgument = xerrors.NewSentinel("invalid argument")

// Inherit makes child extend parent.
//
// child gets a fresh prototype that inherits from the prototype of parent.
// Every key readable on the old prototype of child, inherited ones
// included, is copied onto the new one, so members defined on child
// before the call survive and shadow those of parent. The new prototype
// reports child as constructor, and parent is recorded as the super class
// of child.
//
//	control := value.NewClass("Control", nil)
//	control.Prototype().Set("render", renderControl)
//	form := value.NewClass("Form", initForm)
//	form.Prototype().Set("submit", submitForm)
//	_ = proto.Inherit(form, control)
//	// instances of form now see both submit and render
func Inherit(child, parent *value.Class) error {
	if child == nil || parent == nil {
		return ErrInvalidArgument.Wrap(xerrors.New("inherit: nil class"))
	}
	old := child.Prototype()
	next := value.NewRecord()
	if err := next.SetProto(parent.Prototype()); err != nil {
		return xerrors.Errorf("inherit %s from %s: %w", child.Name(), parent.Name(), err)
	}
	for _, k := range old.Keys() {
		next.Set(k, old.Get(k))
	}
	next.SetConstructor(child)
	child.SetPrototype(next)
	child.SetSuper(parent)
	return nil
}

// CallSuper runs the initializer of the super class of child on this.
// It does nothing when child has no super class.
func CallSuper(child *value.Class, this *value.Record, args ...value.Value) error {
	if child == nil || this == nil {
		return ErrInvalidArgument.Wrap(xerrors.New("call super: nil class or receiver"))
	}
	parent := child.Super()
	if parent == nil {
		return nil
	}
	return parent.Init(this, args)
}

// ExtendShallow copies every key readable on source, own and inherited,
// onto target as own keys. The nearest definition of a key wins. Values
// are copied by reference.
func ExtendShallow(target, source *value.Record) {
	if target == nil || source == nil {
		return
	}
	for _, k := range source.Keys() {
		target.Set(k, source.Get(k))
	}
}

// Derive creates an instance of class and copies each of its keys, own
// and inherited, onto obj where obj has no value for it yet. A key counts
// as missing when reading it from obj yields null or undefined.
func Derive(obj *value.Record, class *value.Class) error {
	if obj == nil || class == nil {
		return ErrInvalidArgument.Wrap(xerrors.New("derive: nil record or class"))
	}
	inst, err := class.New()
	if err != nil {
		return xerrors.Errorf("derive from %s: %w", class.Name(), err)
	}
	for _, k := range inst.Keys() {
		if obj.Get(k).IsNullish() {
			obj.Set(k, inst.Get(k))
		}
	}
	return nil
}
