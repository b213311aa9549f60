package value

// box is a reference wrapper around a primitive.
type box struct {
	inner Value
}

// Box wraps a bool, number or string primitive in a reference-typed
// wrapper, the equivalent of new String("x") in a dynamic language.
//
// The boxed value reports the kind of the wrapped primitive and compares
// deep-equal to it, but has its own identity: two boxes of the same string
// are not Same. Any other value is returned unchanged.
func Box(v Value) Value {
	switch v.data.(type) {
	case bool, float64, string:
		return Value{data: &box{inner: v}}
	}
	return v
}

// IsBoxed reports whether v is a boxed primitive.
func (v Value) IsBoxed() bool {
	_, ok := v.data.(*box)
	return ok
}

// Unbox returns the primitive inside a box, or v itself.
func (v Value) Unbox() Value {
	if b, ok := v.data.(*box); ok {
		return b.inner
	}
	return v
}
