package datefmt

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/log/nop"

	"github.com/huiutil/hui-go/value"
)

const sep = `[._\-/\\]`

// layout is one fixed input format. build receives the submatches of re.
type layout struct {
	name  string
	re    *regexp.Regexp
	build func(p *Parser, m []int) time.Time
}

// layouts are tried in order; the first match wins.
var layouts = []layout{
	{
		name: "epoch seconds",
		re:   regexp.MustCompile(`^ *(\d{10}) *$`),
		build: func(p *Parser, m []int) time.Time {
			return time.Unix(int64(m[0]), 0).In(p.location())
		},
	},
	{
		name: "epoch milliseconds",
		re:   regexp.MustCompile(`^ *(\d{13}) *$`),
		build: func(p *Parser, m []int) time.Time {
			return time.UnixMilli(int64(m[0])).In(p.location())
		},
	},
	{
		name: "yyyyMMdd",
		re:   regexp.MustCompile(`^ *(\d{4})(\d{2})(\d{2}) *$`),
		build: func(p *Parser, m []int) time.Time {
			return p.wallClock(m[0], m[1], m[2], 0, 0, 0)
		},
	},
	{
		name: "yyyyMMdd HHmm",
		re:   regexp.MustCompile(`^ *(\d{4})(\d{2})(\d{2}) +(\d{2})(\d{2}) *$`),
		build: func(p *Parser, m []int) time.Time {
			return p.wallClock(m[0], m[1], m[2], m[3], m[4], 0)
		},
	},
	{
		name: "yyyy-MM-dd",
		re:   regexp.MustCompile(`^ *(\d{4})` + sep + `(\d{1,2})` + sep + `(\d{1,2}) *$`),
		build: func(p *Parser, m []int) time.Time {
			return p.wallClock(m[0], m[1], m[2], 0, 0, 0)
		},
	},
	{
		name: "yyyy-MM-dd HH:mm",
		re:   regexp.MustCompile(`^ *(\d{4})` + sep + `(\d{1,2})` + sep + `(\d{1,2}) +(\d{1,2}):(\d{1,2}) *$`),
		build: func(p *Parser, m []int) time.Time {
			return p.wallClock(m[0], m[1], m[2], m[3], m[4], 0)
		},
	},
	{
		name: "yyyy-MM-dd HH:mm:ss",
		re:   regexp.MustCompile(`^ *(\d{4})` + sep + `(\d{1,2})` + sep + `(\d{1,2}) +(\d{1,2}):(\d{1,2}):(\d{1,2}) *$`),
		build: func(p *Parser, m []int) time.Time {
			return p.wallClock(m[0], m[1], m[2], m[3], m[4], m[5])
		},
	},
}

// Parser parses dates. The zero Parser reads wall clock times in the
// local time zone and logs nothing.
type Parser struct {
	// Location is the time zone wall clock fields are read in.
	Location *time.Location
	Logger   log.Logger
}

// ParseDate parses s with the zero Parser.
func ParseDate(s string) value.Value {
	var p Parser
	return p.Parse(s)
}

// Parse parses s into a time value. It never fails: input that no layout
// and no generic parse accepts yields value.InvalidTime().
//
// Recognised layouts, tried in order after trimming white space:
//
//	1307499010             epoch seconds (10 digits)
//	1307499010000          epoch milliseconds (13 digits)
//	20110608               yyyyMMdd
//	20110608 1010          yyyyMMdd HHmm
//	2011-6-8               y-M-d
//	2011-6-8 10:10         y-M-d H:m
//	2011-6-8 10:10:10      y-M-d H:m:s
//
// The date separator may be any of ". _ - / \". Out of range fields roll
// over into the next unit, so "2011-13-01" is January 2012, and years
// below 100 are taken as 19xx.
func (p *Parser) Parse(s string) value.Value {
	t, ok := p.ParseTime(s)
	if !ok {
		return value.InvalidTime()
	}
	return value.FromTime(t)
}

// ParseTime is Parse for callers that want a time.Time.
func (p *Parser) ParseTime(s string) (time.Time, bool) {
	s = strings.TrimFunc(s, isTrimSpace)
	for _, l := range layouts {
		sub := l.re.FindStringSubmatch(s)
		if sub == nil {
			continue
		}
		m, ok := atois(sub[1:])
		if !ok {
			continue
		}
		t := l.build(p, m)
		p.logger().Trace("date parsed",
			log.String("input", s),
			log.String("layout", l.name))
		return t, true
	}

	t, err := dateparse.ParseIn(s, p.location())
	if err != nil {
		p.logger().Debug("unparsable date",
			log.String("input", s),
			log.Error(err))
		return time.Time{}, false
	}
	p.logger().Debug("date parsed by generic fallback",
		log.String("input", s),
		log.Time("parsed", t))
	return t, true
}

func (p *Parser) wallClock(year, month, day, hour, minute, second int) time.Time {
	if year >= 0 && year <= 99 {
		year += 1900
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, p.location())
}

func (p *Parser) location() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.Local
}

func (p *Parser) logger() log.Logger {
	if p.Logger == nil {
		return &nop.Logger{}
	}
	return p.Logger
}

func atois(ss []string) ([]int, bool) {
	out := make([]int, len(ss))
	for i, s := range ss {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func isTrimSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
