package value

import (
	"math"
	"time"
)

// timeValue holds a millisecond timestamp and the location it is displayed
// in. An invalid time has valid == false.
type timeValue struct {
	ms    int64
	loc   *time.Location
	valid bool
}

// FromTime creates a time Value. Precision below a millisecond is dropped.
func FromTime(t time.Time) Value {
	return Value{data: timeValue{ms: t.UnixMilli(), loc: t.Location(), valid: true}}
}

// FromUnixMilli creates a time Value from milliseconds since the epoch,
// displayed in loc (UTC when nil).
func FromUnixMilli(ms int64, loc *time.Location) Value {
	if loc == nil {
		loc = time.UTC
	}
	return Value{data: timeValue{ms: ms, loc: loc, valid: true}}
}

// InvalidTime returns the invalid date. It is of KindTime, has no
// timestamp, and is not equal to any value including itself.
func InvalidTime() Value {
	return Value{data: timeValue{}}
}

// AsTime returns the time if the value is a valid time.
func (v Value) AsTime() (time.Time, bool) {
	tv, ok := v.data.(timeValue)
	if !ok || !tv.valid {
		return time.Time{}, false
	}
	return tv.time(), true
}

// IsInvalidTime reports whether v is the invalid date.
func (v Value) IsInvalidTime() bool {
	tv, ok := v.data.(timeValue)
	return ok && !tv.valid
}

// UnixMilli returns the timestamp of a time value in milliseconds, NaN for
// the invalid date and for values that are not times.
func (v Value) UnixMilli() float64 {
	tv, ok := v.data.(timeValue)
	if !ok || !tv.valid {
		return math.NaN()
	}
	return float64(tv.ms)
}

func (tv timeValue) time() time.Time {
	loc := tv.loc
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(tv.ms).In(loc)
}

func (tv timeValue) String() string {
	if !tv.valid {
		return "Invalid Date"
	}
	return tv.time().Format("2006-01-02T15:04:05.000Z07:00")
}
