// Package collate sorts sequences of records by a field.
package collate

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/exp/slices"

	"github.com/huiutil/hui-go/value"
)

// Order is a sort direction.
type Order int

const (
	Asc Order = iota
	Desc
)

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// ParseOrder maps "desc" to Desc. Every other string, the empty one
// included, is Asc.
func ParseOrder(s string) Order {
	if s == "desc" {
		return Desc
	}
	return Asc
}

// SortBy sorts list in place by the field of its elements and returns it.
//
// The sort key of an element is the lowercased string conversion of its
// field, so a missing field sorts as "undefined". Two keys that both read
// as canonical non-negative integers ("0", "42", but not "007" or "-1")
// compare as numbers; any other pair compares as strings. The sort is
// stable. A nil or empty list is returned as is.
func SortBy(list *value.Seq, field string, order Order) *value.Seq {
	if list == nil || list.Len() == 0 {
		return list
	}
	items := list.Items()
	type keyed struct {
		key  sortKey
		item value.Value
	}
	tmp := make([]keyed, len(items))
	for i, item := range items {
		tmp[i] = keyed{key: makeKey(item.Get(field)), item: item}
	}
	slices.SortStableFunc(tmp, func(a, b keyed) int {
		c := compareKeys(a.key, b.key)
		if order == Desc {
			return -c
		}
		return c
	})
	for i := range tmp {
		items[i] = tmp[i].item
	}
	return list
}

type sortKey struct {
	text    string
	num     float64
	numeric bool
}

func makeKey(v value.Value) sortKey {
	text := strings.ToLower(v.String())
	num, ok := canonicalInt(text)
	return sortKey{text: text, num: num, numeric: ok}
}

// canonicalInt reports whether s is a run of decimal digits that prints
// back exactly as itself once read as a number.
func canonicalInt(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, value.FormatNumber(f) == s
}

func compareKeys(a, b sortKey) int {
	if a.numeric && b.numeric {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}
	return compareUTF16(a.text, b.text)
}

// compareUTF16 orders strings by UTF-16 code units rather than by bytes.
func compareUTF16(a, b string) int {
	if a == b {
		return 0
	}
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	default:
		return 0
	}
}
