// Package datefmt formats dates with letter patterns and parses dates
// written in a handful of common fixed layouts.
//
// Pattern letters:
//
//	y+   year; "yyyy" is the full year, shorter runs keep the last digits
//	E+   week day in Chinese; "EE" adds the 周 prefix, "EEE" the 星期 prefix
//	M+   month         d+   day of month
//	h+   hour 1-12     H+   hour 0-23
//	m+   minute        s+   second
//	q+   quarter       S    millisecond
//
// A run of two or more letters is zero padded to two digits. Only the
// first run of each letter is replaced.
package datefmt

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/huiutil/hui-go/value"
)

// DefaultPattern is used when no pattern is given.
const DefaultPattern = "yyyy-MM-dd HH:mm"

var weekDays = [...]string{"日", "一", "二", "三", "四", "五", "六"}

// Formatter formats dates. The zero Formatter formats in the location of
// the given time, uses DefaultPattern and reads the current time from
// time.Now.
type Formatter struct {
	// Location, when set, is the location dates are shown in.
	Location *time.Location
	// Pattern replaces DefaultPattern.
	Pattern string
	// Now returns the time formatted when a zero time is given.
	Now func() time.Time
}

// FormatDate formats t with the zero Formatter.
func FormatDate(t time.Time, pattern string) string {
	var f Formatter
	return f.Format(t, pattern)
}

// Format formats t according to pattern. A zero t means now and an empty
// pattern means the default one.
func (f *Formatter) Format(t time.Time, pattern string) string {
	if t.IsZero() {
		t = f.now()
	}
	if f.Location != nil {
		t = t.In(f.Location)
	}
	return render(f.pattern(pattern), fieldsOf(t))
}

// FormatValue formats a time value. Falsy values mean now. Any other value
// that is not a valid time renders its fields as NaN.
func (f *Formatter) FormatValue(v value.Value, pattern string) string {
	if !v.Truthy() {
		return f.Format(time.Time{}, pattern)
	}
	if t, ok := v.AsTime(); ok {
		return f.Format(t, pattern)
	}
	return render(f.pattern(pattern), invalidFields)
}

func (f *Formatter) pattern(pattern string) string {
	switch {
	case pattern != "":
		return pattern
	case f.Pattern != "":
		return f.Pattern
	default:
		return DefaultPattern
	}
}

func (f *Formatter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

type fields struct {
	year, weekday                    string
	month, day, hour12, hour, minute string
	second, quarter, millisecond     string
}

var invalidFields = fields{
	year:        "NaN",
	weekday:     "undefined",
	month:       "NaN",
	day:         "NaN",
	hour12:      "NaN",
	hour:        "NaN",
	minute:      "NaN",
	second:      "NaN",
	quarter:     "NaN",
	millisecond: "NaN",
}

func fieldsOf(t time.Time) fields {
	hour12 := t.Hour() % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fields{
		year:        itoa(t.Year()),
		weekday:     weekDays[t.Weekday()],
		month:       itoa(t.Month()),
		day:         itoa(t.Day()),
		hour12:      itoa(hour12),
		hour:        itoa(t.Hour()),
		minute:      itoa(t.Minute()),
		second:      itoa(t.Second()),
		quarter:     itoa((t.Month()-1)/3 + 1),
		millisecond: itoa(t.Nanosecond() / int(time.Millisecond)),
	}
}

func itoa[T constraints.Integer](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func render(pattern string, f fields) string {
	if run := firstRun(pattern, 'y'); run != "" {
		pattern = strings.Replace(pattern, run, substr(f.year, 4-len(run)), 1)
	}
	if run := firstRun(pattern, 'E'); run != "" {
		prefix := ""
		switch {
		case len(run) > 2:
			prefix = "星期"
		case len(run) > 1:
			prefix = "周"
		}
		pattern = strings.Replace(pattern, run, prefix+f.weekday, 1)
	}
	for _, tok := range []struct {
		letter byte
		val    string
	}{
		{'M', f.month},
		{'d', f.day},
		{'h', f.hour12},
		{'H', f.hour},
		{'m', f.minute},
		{'s', f.second},
		{'q', f.quarter},
	} {
		if run := firstRun(pattern, tok.letter); run != "" {
			pattern = strings.Replace(pattern, run, pad(tok.val, len(run)), 1)
		}
	}
	return strings.Replace(pattern, "S", f.millisecond, 1)
}

// firstRun returns the first run of letter in s, or "".
func firstRun(s string, letter byte) string {
	i := strings.IndexByte(s, letter)
	if i < 0 {
		return ""
	}
	j := i
	for j < len(s) && s[j] == letter {
		j++
	}
	return s[i:j]
}

// pad zero pads v and keeps its last two characters, unless the run is a
// single letter.
func pad(v string, run int) string {
	if run == 1 {
		return v
	}
	return ("00" + v)[len(v):]
}

// substr returns s from rune index start on. A negative start counts from
// the end.
func substr(s string, start int) string {
	r := []rune(s)
	if start < 0 {
		start += len(r)
		if start < 0 {
			start = 0
		}
	}
	if start > len(r) {
		return ""
	}
	return string(r[start:])
}
