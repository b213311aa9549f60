package tmpl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
	logzap "go.ytsaurus.tech/library/go/core/log/zap"

	"github.com/huiutil/hui-go/syntax"
	"github.com/huiutil/hui-go/value"
)

func TestFormat(t *testing.T) {
	user := value.NewRecord()
	user.Set("name", value.FromString("ann"))
	user.Set("age", value.FromInt(30))
	user.Set("none", value.Null())
	user.Set("gone", value.Undefined())

	base := value.NewRecord()
	base.Set("kind", value.FromString("inherited"))
	child := value.NewRecord()
	if err := child.SetProto(base); err != nil {
		t.Fatal(err)
	}

	upper := value.FromFunc(func(_ value.Value, args []value.Value) (value.Value, error) {
		return value.FromString("<" + args[0].String() + ">"), nil
	})
	withFn := value.NewRecord()
	withFn.Set("who", upper)
	withFn.Set("nothing", value.FromFunc(func(value.Value, []value.Value) (value.Value, error) {
		return value.Undefined(), nil
	}))

	tests := []struct {
		name     string
		template string
		args     []value.Value
		want     string
	}{
		{"no args", "hi #{0}", nil, "hi #{0}"},
		{"record", "#{name} is #{age}", []value.Value{value.FromRecord(user)}, "ann is 30"},
		{"positional", "#{0}-#{1}-#{2}", []value.Value{value.FromString("a"), value.FromInt(2), value.True()}, "a-2-true"},
		{"single primitive", "#{0}!", []value.Value{value.FromString("x")}, "x!"},
		{"single seq", "#{1}#{0}", []value.Value{value.FromSlice([]value.Value{value.FromString("a"), value.FromString("b")})}, "ba"},
		{"seq length", "#{length}", []value.Value{value.FromSlice([]value.Value{value.Null(), value.Null()})}, "2"},
		{"missing", "[#{nope}]", []value.Value{value.FromRecord(user)}, "[]"},
		{"null", "[#{none}]", []value.Value{value.FromRecord(user)}, "[null]"},
		{"undefined member", "[#{gone}]", []value.Value{value.FromRecord(user)}, "[]"},
		{"inherited", "#{kind}", []value.Value{value.FromRecord(child)}, "inherited"},
		{"callable", "hi #{who}", []value.Value{value.FromRecord(withFn)}, "hi <who>"},
		{"callable undefined", "[#{nothing}]", []value.Value{value.FromRecord(withFn)}, "[]"},
		{"empty key literal", "#{}", []value.Value{value.FromRecord(user)}, "#{}"},
		{"brace key", "#{}}", []value.Value{value.FromString("x")}, ""},
		{"non greedy", "#{name}}", []value.Value{value.FromRecord(user)}, "ann}"},
		{"unterminated", "#{name", []value.Value{value.FromRecord(user)}, "#{name"},
		{"newline in key", "#{na\nme}", []value.Value{value.FromRecord(user)}, "#{na\nme}"},
		{"nested open", "#{#{name}", []value.Value{value.FromRecord(user)}, ""},
		{"two args", "#{0}#{1}", []value.Value{value.FromRecord(user), value.FromInt(1)}, "[object Object]1"},
		{"unicode", "日#{0}本", []value.Value{value.FromString("の")}, "日の本"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.template, tt.args...); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestReplacerError(t *testing.T) {
	boom := errors.New("boom")
	data := value.NewRecord()
	data.Set("bad", value.FromFunc(func(value.Value, []value.Value) (value.Value, error) {
		return value.Undefined(), boom
	}))

	var failed []string
	r := Renderer{
		Logger: &logzap.Logger{L: zaptest.NewLogger(t)},
		OnError: func(key string, err error) {
			if !errors.Is(err, boom) {
				t.Errorf("OnError got %v", err)
			}
			failed = append(failed, key)
		},
	}
	got := r.Format("a#{bad}b#{bad}", value.FromRecord(data))
	if got != "ab" {
		t.Errorf("Format() = %q", got)
	}
	if diff := cmp.Diff([]string{"bad", "bad"}, failed); diff != "" {
		t.Errorf("failed keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSegments(t *testing.T) {
	tpl := Parse("ab\n#{x}c#{y}")
	want := []Segment{
		{Kind: SegmentLiteral, Text: "ab\n", Span: syntax.Span{StartLine: 1, StartCol: 0, StartOffset: 0, EndLine: 2, EndCol: 0, EndOffset: 3}},
		{Kind: SegmentPlaceholder, Text: "x", Span: syntax.Span{StartLine: 2, StartCol: 0, StartOffset: 3, EndLine: 2, EndCol: 4, EndOffset: 7}},
		{Kind: SegmentLiteral, Text: "c", Span: syntax.Span{StartLine: 2, StartCol: 4, StartOffset: 7, EndLine: 2, EndCol: 5, EndOffset: 8}},
		{Kind: SegmentPlaceholder, Text: "y", Span: syntax.Span{StartLine: 2, StartCol: 5, StartOffset: 8, EndLine: 2, EndCol: 9, EndOffset: 12}},
	}
	if diff := cmp.Diff(want, tpl.Segments()); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, tpl.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if tpl.String() != "ab\n#{x}c#{y}" {
		t.Errorf("String() = %q", tpl.String())
	}
}

func TestRenderReuse(t *testing.T) {
	tpl := Parse("#{a}/#{b}")
	var r Renderer
	for i, tc := range []struct {
		a, b value.Value
		want string
	}{
		{value.FromInt(1), value.FromInt(2), "1/2"},
		{value.FromString("x"), value.Undefined(), "x/"},
	} {
		data := value.NewRecord()
		data.Set("a", tc.a)
		data.Set("b", tc.b)
		if got := r.Render(tpl, value.FromRecord(data)); got != tc.want {
			t.Errorf("case %d: Render() = %q, want %q", i, got, tc.want)
		}
	}
}
