package value

// Seq is an ordered, integer indexed, mutable list of values.
//
// A *Seq has identity: two positions of a value graph that hold the same
// *Seq share it, and a Seq may contain itself.
type Seq struct {
	items []Value
}

// NewSeq creates a sequence holding items in order.
func NewSeq(items ...Value) *Seq {
	s := &Seq{items: make([]Value, len(items))}
	copy(s.items, items)
	return s
}

// FromSeq creates a Value referencing s.
func FromSeq(s *Seq) Value {
	if s == nil {
		return Null()
	}
	return Value{data: s}
}

// FromSlice creates a Value holding a new sequence of the given items.
//
// Example usage:
//
//	items := FromSlice([]Value{
//	    FromString("apple"),
//	    FromString("banana"),
//	})
//	items.Get("1") // banana
func FromSlice(items []Value) Value {
	return FromSeq(NewSeq(items...))
}

// Len returns the number of elements.
func (s *Seq) Len() int {
	return len(s.items)
}

// At returns the element at index i, or Undefined when i is out of range.
func (s *Seq) At(i int) Value {
	if i < 0 || i >= len(s.items) {
		return Undefined()
	}
	return s.items[i]
}

// Set stores v at index i. Setting past the end grows the sequence and
// fills the gap with Undefined. Negative indexes are ignored.
func (s *Seq) Set(i int, v Value) {
	if i < 0 {
		return
	}
	for len(s.items) <= i {
		s.items = append(s.items, Undefined())
	}
	s.items[i] = v
}

// Append adds values to the end of the sequence.
func (s *Seq) Append(vs ...Value) {
	s.items = append(s.items, vs...)
}

// Swap exchanges the elements at i and j.
func (s *Seq) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
}

// Truncate shortens the sequence to n elements.
func (s *Seq) Truncate(n int) {
	if n >= 0 && n < len(s.items) {
		s.items = s.items[:n]
	}
}

// Items returns the backing slice. It is a live view: reordering it
// reorders the sequence. Appending to it does not grow the sequence.
func (s *Seq) Items() []Value {
	return s.items
}
