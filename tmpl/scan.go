package tmpl

import (
	"strings"
	"unicode/utf8"

	"github.com/huiutil/hui-go/syntax"
)

// SegmentKind tells literal text from placeholders.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentPlaceholder
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLiteral:
		return "literal"
	case SegmentPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Segment is one piece of a parsed template.
type Segment struct {
	Kind SegmentKind
	// Text is the literal text, or the key of a placeholder.
	Text string
	Span syntax.Span
}

// scan splits source into literal and placeholder segments.
//
// A placeholder is "#{" followed by the shortest run of at least one
// character up to the next "}", none of which may be a line terminator.
// The first character may itself be "}", so "#{}}" has the key "}" while
// "#{}" is literal text.
func scan(source string) []Segment {
	var segments []Segment
	cur := syntax.NewCursor(source)
	cur.MarkStart()
	litStart := 0

	flush := func() {
		if cur.Pos() > litStart {
			segments = append(segments, Segment{
				Kind: SegmentLiteral,
				Text: source[litStart:cur.Pos()],
				Span: cur.Span(),
			})
		}
	}

	for !cur.AtEnd() {
		rest := cur.Rest()
		if key, n, ok := matchPlaceholder(rest); ok {
			flush()
			cur.MarkStart()
			cur.Advance(n)
			segments = append(segments, Segment{
				Kind: SegmentPlaceholder,
				Text: key,
				Span: cur.Span(),
			})
			cur.MarkStart()
			litStart = cur.Pos()
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		cur.Advance(size)
	}
	flush()
	return segments
}

// matchPlaceholder matches a placeholder at the start of s and returns its
// key and byte length.
func matchPlaceholder(s string) (string, int, bool) {
	if !strings.HasPrefix(s, "#{") {
		return "", 0, false
	}
	i := 2
	first := true
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isLineTerminator(r) {
			return "", 0, false
		}
		if r == '}' && !first {
			return s[2:i], i + 1, true
		}
		first = false
		i += size
	}
	return "", 0, false
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}
