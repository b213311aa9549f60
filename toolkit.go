package hui

import (
	"sync"
	"time"

	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/log/nop"
	"go.ytsaurus.tech/library/go/core/xerrors"

	"github.com/huiutil/hui-go/bind"
	"github.com/huiutil/hui-go/collate"
	"github.com/huiutil/hui-go/datefmt"
	"github.com/huiutil/hui-go/deep"
	"github.com/huiutil/hui-go/proto"
	"github.com/huiutil/hui-go/tmpl"
	"github.com/huiutil/hui-go/value"
)

// Toolkit holds the configuration shared by the utilities and the
// templates registered by name. A Toolkit is safe for concurrent use once
// configured.
type Toolkit struct {
	logger    log.Logger
	cloner    deep.Cloner
	renderer  tmpl.Renderer
	formatter datefmt.Formatter
	parser    datefmt.Parser

	templates   map[string]*tmpl.Template
	templatesMu sync.RWMutex
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithLogger sets the logger every component reports to.
func WithLogger(l log.Logger) Option {
	return func(t *Toolkit) {
		t.logger = l
	}
}

// WithLocation sets the time zone dates are formatted in and parsed
// wall clock fields are read in.
func WithLocation(loc *time.Location) Option {
	return func(t *Toolkit) {
		t.formatter.Location = loc
		t.parser.Location = loc
	}
}

// WithDatePattern replaces datefmt.DefaultPattern.
func WithDatePattern(pattern string) Option {
	return func(t *Toolkit) {
		t.formatter.Pattern = pattern
	}
}

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(t *Toolkit) {
		t.formatter.Now = now
	}
}

// WithOpaqueCopier sets how Clone copies opaque Go payloads.
func WithOpaqueCopier(fn deep.CopyFunc) Option {
	return func(t *Toolkit) {
		t.cloner.CopyOpaque = fn
	}
}

// WithTemplateErrorHandler sets the handler told about failing template
// replacers.
func WithTemplateErrorHandler(h tmpl.ErrorHandler) Option {
	return func(t *Toolkit) {
		t.renderer.OnError = h
	}
}

// New creates a Toolkit.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		logger:    &nop.Logger{},
		templates: make(map[string]*tmpl.Template),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = &nop.Logger{}
	}
	t.cloner.Logger = t.logger
	t.renderer.Logger = t.logger
	t.parser.Logger = t.logger
	return t
}

// Format substitutes the "#{key}" placeholders of template. See
// tmpl.Format.
func (t *Toolkit) Format(template string, args ...value.Value) string {
	return t.renderer.Format(template, args...)
}

// AddTemplate parses source and stores it under name, replacing any
// template of the same name.
func (t *Toolkit) AddTemplate(name, source string) {
	parsed := tmpl.Parse(source)
	t.templatesMu.Lock()
	defer t.templatesMu.Unlock()
	t.templates[name] = parsed
}

// Template returns the template stored under name.
func (t *Toolkit) Template(name string) (*tmpl.Template, error) {
	t.templatesMu.RLock()
	defer t.templatesMu.RUnlock()
	parsed, ok := t.templates[name]
	if !ok {
		return nil, NewError(ErrTemplateNotFound, name)
	}
	return parsed, nil
}

// RenderTemplate renders the template stored under name against args the
// same way Format does.
func (t *Toolkit) RenderTemplate(name string, args ...value.Value) (string, error) {
	parsed, err := t.Template(name)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return parsed.Source(), nil
	}
	return t.renderer.Render(parsed, tmpl.DataSource(args)), nil
}

// SortBy sorts a sequence of records in place by field and returns it.
// order is "asc" or "desc"; anything else means "asc". Values that are
// not sequences are returned unchanged.
func (t *Toolkit) SortBy(list value.Value, field, order string) value.Value {
	if seq, ok := list.AsSeq(); ok {
		collate.SortBy(seq, field, collate.ParseOrder(order))
	}
	return list
}

// Bind returns a callable that calls target with scope as receiver and
// boundArgs prepended. See bind.Bind.
func (t *Toolkit) Bind(target, scope value.Value, boundArgs ...value.Value) (value.Value, error) {
	fn, err := bind.Bind(target, scope, boundArgs...)
	if err != nil {
		t.logger.Warn("bind failed",
			log.String("target", target.Repr()),
			log.Error(err))
		return value.Undefined(), NewError(ErrInvalidArgument, "bind").WithErr(err)
	}
	return fn, nil
}

// Inherit makes child extend parent. See proto.Inherit.
func (t *Toolkit) Inherit(child, parent *value.Class) error {
	if err := proto.Inherit(child, parent); err != nil {
		return t.wrap("inherit", err)
	}
	return nil
}

// ExtendShallow copies every own and inherited key of source onto target.
func (t *Toolkit) ExtendShallow(target, source *value.Record) {
	proto.ExtendShallow(target, source)
}

// Derive fills the keys of obj that are null or undefined from a fresh
// instance of class.
func (t *Toolkit) Derive(obj *value.Record, class *value.Class) error {
	if err := proto.Derive(obj, class); err != nil {
		return t.wrap("derive", err)
	}
	return nil
}

// Clone returns a structurally independent copy of v. See deep.Clone.
func (t *Toolkit) Clone(v value.Value) value.Value {
	return t.cloner.Clone(v)
}

// Equal reports whether a and b are structurally equal. See deep.Equal.
func (t *Toolkit) Equal(a, b value.Value) bool {
	return deep.Equal(a, b)
}

// FormatDate formats d with a letter pattern. A zero d means now and an
// empty pattern means the configured default.
func (t *Toolkit) FormatDate(d time.Time, pattern string) string {
	return t.formatter.Format(d, pattern)
}

// FormatDateValue is FormatDate for time values.
func (t *Toolkit) FormatDateValue(v value.Value, pattern string) string {
	return t.formatter.FormatValue(v, pattern)
}

// ParseDate parses s into a time value, or the invalid time when s is not
// a date.
func (t *Toolkit) ParseDate(s string) value.Value {
	return t.parser.Parse(s)
}

func (t *Toolkit) wrap(op string, err error) error {
	kind := ErrInvalidOperation
	if xerrors.Is(err, proto.ErrInvalidArgument) {
		kind = ErrInvalidArgument
	}
	t.logger.Debug("operation failed",
		log.String("op", op),
		log.Error(err))
	return NewError(kind, op).WithErr(err)
}
