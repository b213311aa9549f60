// Package tmpl substitutes "#{key}" placeholders in strings.
//
// Keys are looked up in a data source, which is either a single sequence
// or record argument, or the argument list itself:
//
//	tmpl.Format("#{0} + #{1}", value.FromInt(1), value.FromInt(2))      // "1 + 2"
//	tmpl.Format("hi #{name}", value.FromMap(map[string]value.Value{
//	    "name": value.FromString("ann"),
//	}))                                                                 // "hi ann"
//
// A callable found under a key is called with the key as its only
// argument and its result is substituted.
package tmpl

import (
	"strings"

	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/log/nop"

	"github.com/huiutil/hui-go/value"
)

// Template is a parsed template that can be rendered many times.
type Template struct {
	source   string
	segments []Segment
}

// Parse parses source. Parsing never fails: anything that does not form
// a placeholder is literal text.
func Parse(source string) *Template {
	return &Template{source: source, segments: scan(source)}
}

// Source returns the text the template was parsed from.
func (t *Template) Source() string {
	return t.source
}

func (t *Template) String() string {
	return t.source
}

// Segments returns the parsed segments in source order.
func (t *Template) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Keys returns the placeholder keys in source order, repeated keys
// included.
func (t *Template) Keys() []string {
	var keys []string
	for _, seg := range t.segments {
		if seg.Kind == SegmentPlaceholder {
			keys = append(keys, seg.Text)
		}
	}
	return keys
}

// ErrorHandler is told about replacer callables that fail.
type ErrorHandler func(key string, err error)

// Renderer renders templates. The zero Renderer is ready to use.
type Renderer struct {
	// Logger receives debug events about failing replacers. Nil means no
	// logging.
	Logger log.Logger
	// OnError, when set, is called for every failing replacer.
	OnError ErrorHandler
}

// Format parses template and renders it against args with the zero
// Renderer.
func Format(template string, args ...value.Value) string {
	var r Renderer
	return r.Format(template, args...)
}

// Format parses template and renders it against args. With no arguments
// the template is returned unchanged.
func (r *Renderer) Format(template string, args ...value.Value) string {
	if len(args) == 0 {
		return template
	}
	return r.Render(Parse(template), DataSource(args))
}

// DataSource picks the value placeholders are looked up in: a lone
// sequence or record argument, otherwise a sequence of all arguments.
func DataSource(args []value.Value) value.Value {
	if len(args) == 1 && !args[0].IsBoxed() {
		switch args[0].Kind() {
		case value.KindSeq, value.KindRecord:
			return args[0]
		}
	}
	return value.FromSlice(args)
}

// Render substitutes every placeholder of t with the matching member of
// data. Undefined members render as the empty string, everything else
// through its string conversion.
func (r *Renderer) Render(t *Template, data value.Value) string {
	var sb strings.Builder
	sb.Grow(len(t.source))
	for _, seg := range t.segments {
		if seg.Kind == SegmentLiteral {
			sb.WriteString(seg.Text)
			continue
		}
		sb.WriteString(r.replacement(data, seg.Text))
	}
	return sb.String()
}

func (r *Renderer) replacement(data value.Value, key string) string {
	v := data.Get(key)
	if v.IsCallable() {
		res, err := v.Call(value.Undefined(), value.FromString(key))
		if err != nil {
			r.logger().Debug("template replacer failed",
				log.String("key", key),
				log.Error(err))
			if r.OnError != nil {
				r.OnError(key, err)
			}
			return ""
		}
		v = res
	}
	if v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (r *Renderer) logger() log.Logger {
	if r.Logger == nil {
		return &nop.Logger{}
	}
	return r.Logger
}
