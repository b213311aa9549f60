package value

import (
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// InitFunc initializes a freshly constructed instance.
type InitFunc func(this *Record, args []Value) error

// Class is a constructor for records.
//
// A class owns a prototype record. Instances created with New link to that
// prototype, so keys set on the prototype are inherited by every instance,
// and report the class as their constructor. A class may record the class
// it extends (see Super); wiring the prototype chain for that is the job of
// proto.Inherit.
//
// *Class implements Callable. Calling a class with an instance of itself
// (or of a subclass) as receiver runs the initializer on that receiver,
// which is how a subclass initializer delegates to its super class:
//
//	base := value.NewClass("Control", func(this *value.Record, args []value.Value) error {
//	    this.Set("type", value.FromString("control"))
//	    return nil
//	})
//	child := value.NewClass("Form", func(this *value.Record, args []value.Value) error {
//	    if _, err := base.Call(value.FromRecord(this), args); err != nil {
//	        return err
//	    }
//	    this.Set("type", value.FromString("form"))
//	    return nil
//	})
//
// Calling a class with any other receiver constructs a new instance.
type Class struct {
	name      string
	init      InitFunc
	prototype *Record
	super     *Class
}

// NewClass creates a class with an empty prototype. init may be nil.
func NewClass(name string, init InitFunc) *Class {
	c := &Class{name: name, init: init}
	c.prototype = NewRecord()
	c.prototype.SetConstructor(c)
	return c
}

// FromClass creates a callable Value referencing c.
func FromClass(c *Class) Value {
	if c == nil {
		return Null()
	}
	return Value{data: c}
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Prototype returns the record instances inherit from.
func (c *Class) Prototype() *Record {
	return c.prototype
}

// SetPrototype replaces the prototype record. Existing instances keep
// their old prototype.
func (c *Class) SetPrototype(p *Record) {
	if p == nil {
		p = NewRecord()
	}
	c.prototype = p
}

// Super returns the class c extends, or nil.
func (c *Class) Super() *Class {
	return c.super
}

// SetSuper records the class c extends.
func (c *Class) SetSuper(parent *Class) {
	c.super = parent
}

// New constructs an instance and runs the initializer on it.
func (c *Class) New(args ...Value) (*Record, error) {
	inst := NewRecord()
	inst.proto = c.prototype
	if err := c.Init(inst, args); err != nil {
		return nil, err
	}
	return inst, nil
}

// Init runs the initializer of c on an existing record.
func (c *Class) Init(this *Record, args []Value) error {
	if c.init == nil {
		return nil
	}
	if err := c.init(this, args); err != nil {
		return xerrors.Errorf("%s: %w", c.name, err)
	}
	return nil
}

// IsInstance reports whether r inherits from the prototype of c.
func (c *Class) IsInstance(r *Record) bool {
	return r != nil && r.InheritsFrom(c.prototype)
}

// Call implements Callable.
func (c *Class) Call(this Value, args []Value) (Value, error) {
	if r, ok := this.AsRecord(); ok && c.IsInstance(r) {
		if err := c.Init(r, args); err != nil {
			return Undefined(), err
		}
		return Undefined(), nil
	}
	inst, err := c.New(args...)
	if err != nil {
		return Undefined(), err
	}
	return FromRecord(inst), nil
}
