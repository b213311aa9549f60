package deep

import (
	"math"

	"github.com/google/go-cmp/cmp"

	"github.com/huiutil/hui-go/value"
)

// Equal reports whether a and b are structurally equal.
//
// The rules, first match wins:
//   - identical values are equal, except that +0 and -0 are not;
//   - if either side is null or undefined, both must be;
//   - values of different kinds are not equal;
//   - strings compare by content (boxed strings are unboxed first);
//   - numbers are equal when numerically equal, NaN equals NaN and +0
//     does not equal -0;
//   - booleans and times compare by their numeric value, so two invalid
//     times are never equal;
//   - patterns compare source and flags;
//   - sequences need equal length and pairwise equal elements;
//   - records need the same constructor, the same own keys and pairwise
//     equal values; inherited keys are ignored.
//
// While comparing, each pair of sequences or records currently being
// compared is remembered. Meeting the left side of such a pair again
// counts as equal exactly when the right side is also the remembered one.
// This makes comparison of cyclic structures terminate; like any such
// assume-equal-on-recurrence scheme it can accept some pairs of
// differently shaped cyclic graphs, and for such graphs the answer may
// depend on argument order.
//
// Equal is reflexive except for invalid times: value.InvalidTime() does
// not equal itself, so neither does a structure that contains one, nor
// its Clone.
func Equal(a, b value.Value) bool {
	es := equalState{active: make(map[any][]any)}
	return es.equal(a, b)
}

type equalState struct {
	// active maps the left side of each pair on the comparison stack to
	// the right sides it is paired with, innermost last.
	active map[any][]any
}

func (es *equalState) equal(a, b value.Value) bool {
	if value.Same(a, b) {
		if x, ok := a.AsNumber(); ok && x == 0 && a.IsPrimitive() && b.IsPrimitive() {
			y, _ := b.AsNumber()
			return math.Signbit(x) == math.Signbit(y)
		}
		return true
	}
	if a.IsNullish() || b.IsNullish() {
		return a.IsNullish() && b.IsNullish()
	}
	kind := a.Kind()
	if kind != b.Kind() {
		return false
	}

	switch kind {
	case value.KindString:
		x, _ := a.AsString()
		y, _ := b.AsString()
		return x == y
	case value.KindNumber:
		x, _ := a.AsNumber()
		y, _ := b.AsNumber()
		return numbersEqual(x, y)
	case value.KindBool, value.KindTime:
		return a.ToNumber() == b.ToNumber()
	case value.KindPattern:
		x, _ := a.AsPattern()
		y, _ := b.AsPattern()
		return x.Source() == y.Source() && x.Flags() == y.Flags()
	case value.KindSeq:
		x, _ := a.AsSeq()
		y, _ := b.AsSeq()
		return es.guard(x, y, func() bool { return es.seqEqual(x, y) })
	case value.KindRecord:
		x, _ := a.AsRecord()
		y, _ := b.AsRecord()
		return es.guard(x, y, func() bool { return es.recordEqual(x, y) })
	case value.KindOpaque:
		x, _ := a.AsOpaque()
		y, _ := b.AsOpaque()
		return opaqueEqual(x, y)
	default:
		// Distinct callables are never equal.
		return false
	}
}

func numbersEqual(x, y float64) bool {
	if math.IsNaN(x) {
		return math.IsNaN(y)
	}
	if x == 0 && y == 0 {
		return math.Signbit(x) == math.Signbit(y)
	}
	return x == y
}

// guard runs compare with (a, b) pushed on the comparison stack. If a is
// already on the stack, the result is whether it was paired with b.
func (es *equalState) guard(a, b any, compare func() bool) bool {
	if partners := es.active[a]; len(partners) > 0 {
		return partners[len(partners)-1] == b
	}
	es.active[a] = append(es.active[a], b)
	defer es.pop(a)
	return compare()
}

func (es *equalState) pop(a any) {
	partners := es.active[a]
	if len(partners) <= 1 {
		delete(es.active, a)
		return
	}
	es.active[a] = partners[:len(partners)-1]
}

func (es *equalState) seqEqual(a, b *value.Seq) bool {
	size := a.Len()
	if size != b.Len() {
		return false
	}
	for size > 0 {
		size--
		if !es.equal(a.At(size), b.At(size)) {
			return false
		}
	}
	return true
}

func (es *equalState) recordEqual(a, b *value.Record) bool {
	ca, cb := a.Constructor(), b.Constructor()
	if ca != cb && !(isGenericConstructor(ca) && isGenericConstructor(cb)) {
		return false
	}

	size := 0
	for _, key := range a.OwnKeys() {
		size++
		bv, ok := b.GetOwn(key)
		if !ok {
			return false
		}
		av, _ := a.GetOwn(key)
		if !es.equal(av, bv) {
			return false
		}
	}
	for range b.OwnKeys() {
		if size == 0 {
			return false
		}
		size--
	}
	return size == 0
}

// isGenericConstructor reports whether c stands for the plain object
// constructor. Records without a class all share it.
func isGenericConstructor(c *value.Class) bool {
	return c == nil
}

func opaqueEqual(x, y any) (eq bool) {
	defer func() {
		// cmp.Equal panics on unexported fields it cannot see into.
		if recover() != nil {
			eq = false
		}
	}()
	return cmp.Equal(x, y)
}
