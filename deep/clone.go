// Package deep implements structural copying and comparison of value
// graphs.
//
// Both algorithms walk sequences and records recursively and keep an
// identity-keyed record of the structures they are inside of, so shared
// sub-structures and reference cycles are handled: Clone reproduces the
// aliasing topology of its input, and Equal terminates on cyclic inputs.
package deep

import (
	"fmt"

	"github.com/mitchellh/copystructure"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/log/nop"

	"github.com/huiutil/hui-go/value"
)

// CopyFunc deep-copies an opaque Go payload.
type CopyFunc func(v any) (any, error)

// Cloner clones value graphs.
//
// The zero Cloner is ready to use: it logs nothing and copies opaque
// payloads with copystructure.
type Cloner struct {
	// Logger receives debug events about payloads that could not be
	// copied. Nil means no logging.
	Logger log.Logger

	// CopyOpaque copies payloads of KindOpaque values. Nil means
	// copystructure.Copy. When it fails the payload is shared with the
	// source.
	CopyOpaque CopyFunc
}

// Clone returns a structurally independent copy of source using the zero
// Cloner.
func Clone(source value.Value) value.Value {
	var c Cloner
	return c.Clone(source)
}

// Clone returns a structurally independent copy of source.
//
// Primitives, boxed primitives, patterns and callables are returned as is.
// A time becomes a new time with the same timestamp. Sequences and records
// are copied recursively; a record keeps the prototype link and
// constructor of its source but only own keys are copied. Every sequence
// or record reachable more than once in source is copied once, so the
// result has the same sharing and cycles as the input.
func (c *Cloner) Clone(source value.Value) value.Value {
	cs := cloneState{
		cloner:  c,
		visited: make(map[any]value.Value),
	}
	return cs.clone(source)
}

type cloneState struct {
	cloner *Cloner
	// visited maps a source *Seq or *Record to its clone. Clones are
	// registered before their children are copied.
	visited map[any]value.Value
}

func (cs *cloneState) clone(source value.Value) value.Value {
	switch source.Kind() {
	case value.KindTime:
		if t, ok := source.AsTime(); ok {
			return value.FromTime(t)
		}
		return source
	case value.KindSeq:
		src, _ := source.AsSeq()
		if seen, ok := cs.visited[src]; ok {
			return seen
		}
		dst := value.NewSeq()
		out := value.FromSeq(dst)
		cs.visited[src] = out
		for _, item := range src.Items() {
			dst.Append(cs.clone(item))
		}
		return out
	case value.KindRecord:
		src, _ := source.AsRecord()
		if seen, ok := cs.visited[src]; ok {
			return seen
		}
		dst := value.NewRecord()
		// dst is not on any chain yet, so linking it cannot form a cycle.
		if err := dst.SetProto(src.Proto()); err != nil {
			panic(err)
		}
		dst.SetConstructor(src.OwnConstructor())
		out := value.FromRecord(dst)
		cs.visited[src] = out
		for _, k := range src.OwnKeys() {
			v, _ := src.GetOwn(k)
			dst.Set(k, cs.clone(v))
		}
		return out
	case value.KindOpaque:
		return cs.cloneOpaque(source)
	default:
		return source
	}
}

func (cs *cloneState) cloneOpaque(source value.Value) value.Value {
	payload, _ := source.AsOpaque()
	copyFn := cs.cloner.CopyOpaque
	if copyFn == nil {
		copyFn = copystructure.Copy
	}
	dup, err := copyFn(payload)
	if err != nil {
		cs.cloner.logger().Debug("sharing opaque payload with clone source",
			log.String("type", typeName(payload)),
			log.Error(err))
		return source
	}
	return value.FromOpaque(dup)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

func (c *Cloner) logger() log.Logger {
	if c.Logger == nil {
		return &nop.Logger{}
	}
	return c.Logger
}
