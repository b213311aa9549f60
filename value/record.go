package value

import (
	"sort"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ErrCyclicProto is returned by SetProto when the new prototype would make
// the prototype chain loop.
var ErrCyclicProto = xerrors.NewSentinel("cyclic prototype chain")

// Record is a string keyed collection of values, the equivalent of a plain
// object.
//
// Own keys are kept in insertion order. A record may link to a prototype
// record whose keys it inherits for reads (Get, Keys) but not for own key
// queries (GetOwn, OwnKeys, Len). The constructor is a hidden slot that is
// not part of the key space; like other inherited state it is looked up
// along the prototype chain.
type Record struct {
	keys  []string
	vals  map[string]Value
	proto *Record
	ctor  *Class
}

// NewRecord creates an empty record with no prototype.
func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

// FromRecord creates a Value referencing r.
func FromRecord(r *Record) Value {
	if r == nil {
		return Null()
	}
	return Value{data: r}
}

// FromMap creates a Value holding a new record with the entries of m.
//
// Go maps are unordered, so keys are inserted in sorted order to keep
// iteration deterministic.
//
// Example usage:
//
//	user := FromMap(map[string]Value{
//	    "name": FromString("Alice"),
//	    "age":  FromInt(30),
//	})
func FromMap(m map[string]Value) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := NewRecord()
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return FromRecord(r)
}

// Set assigns an own key. New keys are appended to the key order;
// existing keys keep their position.
func (r *Record) Set(key string, v Value) {
	if r.vals == nil {
		r.vals = make(map[string]Value)
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Get returns the value for key, consulting the prototype chain when the
// key is not an own key. Missing keys yield Undefined.
func (r *Record) Get(key string) Value {
	for cur := r; cur != nil; cur = cur.proto {
		if v, ok := cur.vals[key]; ok {
			return v
		}
	}
	return Undefined()
}

// GetOwn returns the value of an own key.
func (r *Record) GetOwn(key string) (Value, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// HasOwn reports whether key is an own key.
func (r *Record) HasOwn(key string) bool {
	_, ok := r.vals[key]
	return ok
}

// Has reports whether key is an own or inherited key.
func (r *Record) Has(key string) bool {
	for cur := r; cur != nil; cur = cur.proto {
		if _, ok := cur.vals[key]; ok {
			return true
		}
	}
	return false
}

// Delete removes an own key and reports whether it existed.
func (r *Record) Delete(key string) bool {
	if _, ok := r.vals[key]; !ok {
		return false
	}
	delete(r.vals, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of own keys.
func (r *Record) Len() int {
	return len(r.keys)
}

// OwnKeys returns the own keys in insertion order.
func (r *Record) OwnKeys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Keys returns own keys followed by inherited keys, nearest prototype
// first. A key shadowed by a nearer definition appears once.
func (r *Record) Keys() []string {
	seen := make(map[string]struct{})
	var out []string
	for cur := r; cur != nil; cur = cur.proto {
		for _, k := range cur.keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// Proto returns the prototype record, or nil.
func (r *Record) Proto() *Record {
	return r.proto
}

// SetProto links r to a prototype. A nil prototype unlinks it.
func (r *Record) SetProto(p *Record) error {
	for cur := p; cur != nil; cur = cur.proto {
		if cur == r {
			return ErrCyclicProto.Wrap(xerrors.New("prototype already inherits from the record"))
		}
	}
	r.proto = p
	return nil
}

// Constructor returns the class that constructed r, searching the
// prototype chain. Nil means the generic object constructor.
func (r *Record) Constructor() *Class {
	for cur := r; cur != nil; cur = cur.proto {
		if cur.ctor != nil {
			return cur.ctor
		}
	}
	return nil
}

// OwnConstructor returns the constructor slot of r itself, ignoring the
// prototype chain.
func (r *Record) OwnConstructor() *Class {
	return r.ctor
}

// SetConstructor sets the constructor slot on r itself.
func (r *Record) SetConstructor(c *Class) {
	r.ctor = c
}

// InheritsFrom reports whether p is on the prototype chain of r.
func (r *Record) InheritsFrom(p *Record) bool {
	if p == nil {
		return false
	}
	for cur := r.proto; cur != nil; cur = cur.proto {
		if cur == p {
			return true
		}
	}
	return false
}
