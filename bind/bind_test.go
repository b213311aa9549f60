package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.ytsaurus.tech/library/go/core/xerrors"

	"github.com/huiutil/hui-go/value"
)

// recorder returns a callable that reports its receiver and arguments.
func recorder(this *value.Value, args *[]value.Value) value.Value {
	return value.FromFunc(func(t value.Value, a []value.Value) (value.Value, error) {
		*this = t
		*args = append([]value.Value(nil), a...)
		return value.FromInt(int64(len(a))), nil
	})
}

func TestBindFunction(t *testing.T) {
	var gotThis value.Value
	var gotArgs []value.Value
	fn := recorder(&gotThis, &gotArgs)
	scope := value.FromRecord(value.NewRecord())

	bound, err := Bind(fn, scope, value.FromInt(1), value.FromInt(2))
	require.NoError(t, err)
	require.True(t, bound.IsCallable())

	res, err := bound.Call(value.FromString("ignored"), value.FromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "3", res.String())
	assert.True(t, value.Same(gotThis, scope))
	assert.Equal(t, "1,2,3", value.FromSlice(gotArgs).String())
}

func TestBindByName(t *testing.T) {
	var gotThis value.Value
	var gotArgs []value.Value
	obj := value.NewRecord()
	obj.Set("handler", recorder(&gotThis, &gotArgs))
	scope := value.FromRecord(obj)

	bound, err := Bind(value.FromString("handler"), scope, value.FromString("x"))
	require.NoError(t, err)

	// the member is resolved when binding, not when calling
	obj.Set("handler", value.Null())

	_, err = bound.Call(value.Undefined())
	require.NoError(t, err)
	assert.True(t, value.Same(gotThis, scope))
	assert.Equal(t, "x", value.FromSlice(gotArgs).String())
}

func TestBindWithoutScope(t *testing.T) {
	var gotThis value.Value
	var gotArgs []value.Value
	fn := recorder(&gotThis, &gotArgs)

	for _, scope := range []value.Value{value.Undefined(), value.Null(), value.False(), value.FromString("")} {
		bound, err := Bind(fn, scope)
		require.NoError(t, err)
		_, err = bound.Call(value.Undefined())
		require.NoError(t, err)
		assert.True(t, value.Same(gotThis, fn), "receiver for scope %s", scope.Repr())
	}
}

func TestBindInvalid(t *testing.T) {
	obj := value.NewRecord()
	obj.Set("num", value.FromInt(1))

	tests := []struct {
		name   string
		target value.Value
		scope  value.Value
	}{
		{"undefined", value.Undefined(), value.Null()},
		{"number", value.FromInt(1), value.Null()},
		{"record", value.FromRecord(obj), value.Null()},
		{"missing member", value.FromString("nope"), value.FromRecord(obj)},
		{"member not callable", value.FromString("num"), value.FromRecord(obj)},
		{"name without scope", value.FromString("num"), value.Undefined()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(tt.target, tt.scope)
			require.Error(t, err)
			assert.True(t, xerrors.Is(err, ErrInvalidArgument), "error %v", err)
		})
	}
}

func TestBindClass(t *testing.T) {
	point := value.NewClass("Point", func(this *value.Record, args []value.Value) error {
		this.Set("x", args[0])
		return nil
	})
	bound, err := Bind(value.FromClass(point), value.Undefined(), value.FromInt(7))
	require.NoError(t, err)

	v, err := bound.Call(value.Undefined())
	require.NoError(t, err)
	inst, ok := v.AsRecord()
	require.True(t, ok)
	assert.Same(t, point, inst.Constructor())
	assert.Equal(t, "7", inst.Get("x").String())
}
