package hui

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	logzap "go.ytsaurus.tech/library/go/core/log/zap"

	"github.com/huiutil/hui-go/bind"
	"github.com/huiutil/hui-go/value"
)

func testToolkit(t *testing.T, opts ...Option) *Toolkit {
	opts = append([]Option{WithLogger(&logzap.Logger{L: zaptest.NewLogger(t)})}, opts...)
	return New(opts...)
}

func TestCloneScenarios(t *testing.T) {
	src := FromAny(map[string]any{"a": []any{1, 2, map[string]any{"b": 3}}})
	out := Clone(src)
	require.True(t, Equal(out, src))

	rec, _ := out.AsRecord()
	list, _ := rec.Get("a").AsSeq()
	inner, _ := list.At(2).AsRecord()
	inner.Set("b", FromInt(4))
	assert.Equal(t, "3", src.Get("a").Get("2").Get("b").String())

	o := value.NewRecord()
	o.Set("self", value.FromRecord(o))
	assert.True(t, Equal(value.FromRecord(o), Clone(value.FromRecord(o))))
}

func TestEqualScenarios(t *testing.T) {
	assert.True(t, Equal(
		FromAny(map[string]any{"x": 1, "y": 2}),
		value.FromRecord(func() *value.Record {
			r := value.NewRecord()
			r.Set("y", FromInt(2))
			r.Set("x", FromInt(1))
			return r
		}()),
	))
	assert.False(t, Equal(FromAny([]int{1, 2, 3}), FromAny([]int{1, 2})))
	assert.False(t, Equal(FromInt(0), FromNumber(math.Copysign(0, -1))))
	assert.True(t, Equal(FromNumber(math.NaN()), FromNumber(math.NaN())))
}

func TestSortByScenario(t *testing.T) {
	list := FromAny([]map[string]string{{"n": "10"}, {"n": "2"}})
	got := SortBy(list, "n", "asc")
	require.True(t, value.Same(list, got))
	assert.Equal(t, "2", got.Get("0").Get("n").String())
	assert.Equal(t, "10", got.Get("1").Get("n").String())

	SortBy(list, "n", "desc")
	assert.Equal(t, "10", list.Get("0").Get("n").String())

	str := FromString("not a list")
	assert.True(t, value.Same(str, SortBy(str, "n", "asc")))
}

func TestParseDateScenario(t *testing.T) {
	tk := testToolkit(t, WithLocation(time.UTC))
	got, ok := tk.ParseDate("2011-06-08 10:10:10").AsTime()
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2011, 6, 8, 10, 10, 10, 0, time.UTC)))
	assert.True(t, tk.ParseDate("nonsense").IsInvalidTime())
}

func TestFormatDateOptions(t *testing.T) {
	now := time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC)
	tk := testToolkit(t,
		WithLocation(time.UTC),
		WithDatePattern("yyyy/MM/dd"),
		WithClock(func() time.Time { return now }),
	)
	assert.Equal(t, "2020/02/03", tk.FormatDate(time.Time{}, ""))
	assert.Equal(t, "04:05", tk.FormatDate(now, "HH:mm"))
	assert.Equal(t, "2020/02/03", tk.FormatDateValue(value.Undefined(), ""))
	assert.Equal(t, "2020-02-03 04:05", FormatDate(now, ""))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1 + 2", Format("#{0} + #{1}", FromInt(1), FromInt(2)))
	assert.Equal(t, "hi ann", Format("hi #{name}", FromMap(map[string]Value{"name": FromString("ann")})))
	assert.Equal(t, "#{0}", Format("#{0}"))
}

func TestTemplates(t *testing.T) {
	var failed []string
	tk := testToolkit(t, WithTemplateErrorHandler(func(key string, err error) {
		failed = append(failed, key)
	}))
	tk.AddTemplate("greeting", "hello #{0}#{bang}")

	out, err := tk.RenderTemplate("greeting", FromString("ann"))
	require.NoError(t, err)
	assert.Equal(t, "hello ann", out)

	out, err = tk.RenderTemplate("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello #{0}#{bang}", out)

	data := value.NewRecord()
	data.Set("0", FromString("bob"))
	data.Set("bang", FromFunc(func(Value, []Value) (Value, error) {
		return Undefined(), errors.New("no bang")
	}))
	out, err = tk.RenderTemplate("greeting", value.FromRecord(data))
	require.NoError(t, err)
	assert.Equal(t, "hello bob", out)
	assert.Equal(t, []string{"bang"}, failed)

	_, err = tk.RenderTemplate("missing")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrTemplateNotFound, kind)
}

func TestTemplatesConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	tk := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("t%d", i%2)
			tk.AddTemplate(name, "#{0}")
			out, err := tk.RenderTemplate(name, FromInt(int64(i)))
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprint(i), out)
		}(i)
	}
	wg.Wait()
}

func TestBindErrors(t *testing.T) {
	tk := testToolkit(t)
	_, err := tk.Bind(FromInt(1), Null())
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidArgument, kind)
	assert.ErrorIs(t, err, bind.ErrInvalidArgument)

	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "bind", herr.Message)

	obj := value.NewRecord()
	obj.Set("greet", FromFunc(func(this Value, args []Value) (Value, error) {
		return FromString(this.Get("name").String() + " says " + args[0].String()), nil
	}))
	obj.Set("name", FromString("ann"))
	fn, err := Bind(FromString("greet"), value.FromRecord(obj), FromString("hi"))
	require.NoError(t, err)
	res, err := fn.Call(Undefined())
	require.NoError(t, err)
	assert.Equal(t, "ann says hi", res.String())
}

func TestInheritAndDerive(t *testing.T) {
	tk := testToolkit(t)
	parent := value.NewClass("Control", func(this *value.Record, _ []Value) error {
		this.Set("visible", value.True())
		return nil
	})
	parent.Prototype().Set("render", FromString("control.render"))
	child := value.NewClass("Form", nil)

	require.NoError(t, tk.Inherit(child, parent))
	assert.Same(t, parent, child.Super())

	obj := value.NewRecord()
	require.NoError(t, Derive(obj, child))
	assert.Equal(t, "control.render", obj.Get("render").String())

	err := tk.Inherit(nil, parent)
	kind, _ := KindOf(err)
	assert.Equal(t, ErrInvalidArgument, kind)

	broken := value.NewClass("Broken", func(*value.Record, []Value) error { return errors.New("boom") })
	err = tk.Derive(value.NewRecord(), broken)
	kind, _ = KindOf(err)
	assert.Equal(t, ErrInvalidOperation, kind)
	assert.Contains(t, err.Error(), "boom")

	target := value.NewRecord()
	ExtendShallow(target, obj)
	assert.Equal(t, "control.render", target.Get("render").String())
}

func TestOpaqueCopier(t *testing.T) {
	calls := 0
	tk := testToolkit(t, WithOpaqueCopier(func(v any) (any, error) {
		calls++
		return v, nil
	}))
	payload := &struct{ N int }{N: 1}
	out := tk.Clone(FromAny([]any{value.FromOpaque(payload)}))
	assert.Equal(t, 1, calls)
	assert.True(t, tk.Equal(out, FromAny([]any{value.FromOpaque(payload)})))
}

func TestErrorString(t *testing.T) {
	err := NewError(ErrTemplateNotFound, "page")
	assert.Equal(t, "template not found: page", err.Error())
	err = NewError(ErrInvalidOperation, "derive").WithErr(errors.New("boom"))
	assert.Equal(t, "invalid operation: derive: boom", err.Error())
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}
