package value

import (
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ErrBadPattern is returned for malformed pattern flags or sources.
var ErrBadPattern = xerrors.NewSentinel("bad pattern")

// PatternFlags is a set of regular expression mode flags.
type PatternFlags uint8

const (
	FlagGlobal PatternFlags = 1 << iota
	FlagIgnoreCase
	FlagMultiline
	FlagDotAll
	FlagUnicode
	FlagSticky
)

var flagLetters = []struct {
	flag   PatternFlags
	letter byte
}{
	{FlagDotAll, 's'},
	{FlagGlobal, 'g'},
	{FlagIgnoreCase, 'i'},
	{FlagMultiline, 'm'},
	{FlagUnicode, 'u'},
	{FlagSticky, 'y'},
}

// ParsePatternFlags parses a flag string such as "gi". Unknown or repeated
// letters are an error.
func ParsePatternFlags(s string) (PatternFlags, error) {
	var flags PatternFlags
	for i := 0; i < len(s); i++ {
		var f PatternFlags
		for _, fl := range flagLetters {
			if fl.letter == s[i] {
				f = fl.flag
			}
		}
		if f == 0 {
			return 0, ErrBadPattern.Wrap(xerrors.Errorf("unknown flag %q", s[i]))
		}
		if flags&f != 0 {
			return 0, ErrBadPattern.Wrap(xerrors.Errorf("repeated flag %q", s[i]))
		}
		flags |= f
	}
	return flags, nil
}

// String returns the flags in canonical letter order.
func (f PatternFlags) String() string {
	var sb strings.Builder
	for _, fl := range []byte("dgimsuy") {
		for _, l := range flagLetters {
			if l.letter == fl && f&l.flag != 0 {
				sb.WriteByte(fl)
			}
		}
	}
	return sb.String()
}

// Pattern is a regular expression value: a source and its mode flags.
//
// The compiled matcher is built lazily on first use. Patterns are
// immutable.
type Pattern struct {
	source string
	flags  PatternFlags

	once sync.Once
	re   *regexp2.Regexp
	err  error
}

// NewPattern creates a pattern from source and a flag string. The source
// is compiled eagerly so that syntax errors surface here.
func NewPattern(source, flags string) (*Pattern, error) {
	f, err := ParsePatternFlags(flags)
	if err != nil {
		return nil, err
	}
	p := &Pattern{source: source, flags: f}
	if _, err := p.compiled(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustPattern is like NewPattern but panics on error.
func MustPattern(source, flags string) *Pattern {
	p, err := NewPattern(source, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// FromPattern creates a Value referencing p.
func FromPattern(p *Pattern) Value {
	if p == nil {
		return Null()
	}
	return Value{data: p}
}

// Source returns the pattern text.
func (p *Pattern) Source() string {
	return p.source
}

// Flags returns the mode flags.
func (p *Pattern) Flags() PatternFlags {
	return p.flags
}

func (p *Pattern) Global() bool     { return p.flags&FlagGlobal != 0 }
func (p *Pattern) IgnoreCase() bool { return p.flags&FlagIgnoreCase != 0 }
func (p *Pattern) Multiline() bool  { return p.flags&FlagMultiline != 0 }

// MatchString reports whether s contains a match.
func (p *Pattern) MatchString(s string) (bool, error) {
	re, err := p.compiled()
	if err != nil {
		return false, err
	}
	return re.MatchString(s)
}

func (p *Pattern) compiled() (*regexp2.Regexp, error) {
	p.once.Do(func() {
		var opts regexp2.RegexOptions
		if p.flags&FlagIgnoreCase != 0 {
			opts |= regexp2.IgnoreCase
		}
		if p.flags&FlagMultiline != 0 {
			opts |= regexp2.Multiline
		}
		// ECMAScript mode cannot be combined with Singleline.
		if p.flags&FlagDotAll != 0 {
			opts |= regexp2.Singleline
		} else {
			opts |= regexp2.ECMAScript
		}
		re, err := regexp2.Compile(p.source, opts)
		if err != nil {
			p.err = ErrBadPattern.Wrap(err)
			return
		}
		p.re = re
	})
	return p.re, p.err
}

// String renders the pattern as a literal, e.g. /ab+c/gi.
func (p *Pattern) String() string {
	src := p.source
	if src == "" {
		src = "(?:)"
	}
	return "/" + src + "/" + p.flags.String()
}
