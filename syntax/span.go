// Package syntax holds source positions shared by the template scanner.
package syntax

import "fmt"

// Span represents a location range in source code.
type Span struct {
	StartLine   uint16
	StartCol    uint16
	StartOffset uint32
	EndLine     uint16
	EndCol      uint16
	EndOffset   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Cursor walks a source string and tracks line and column. Lines are
// 1-indexed, columns count runes from 0 at the start of a line.
type Cursor struct {
	source    string
	pos       int
	line      uint16
	col       uint16
	start     int
	startLine uint16
	startCol  uint16
}

// NewCursor creates a cursor at the start of source.
func NewCursor(source string) *Cursor {
	return &Cursor{source: source, line: 1, startLine: 1}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// AtEnd reports whether the whole source has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.source)
}

// Rest returns the unconsumed source.
func (c *Cursor) Rest() string {
	return c.source[c.pos:]
}

// Advance consumes n bytes and returns them.
func (c *Cursor) Advance(n int) string {
	if n <= 0 {
		return ""
	}
	start := c.pos
	end := c.pos + n
	if end > len(c.source) {
		end = len(c.source)
	}

	skipped := c.source[start:end]
	for _, r := range skipped {
		if r == '\n' {
			c.line++
			c.col = 0
		} else if c.col < 65535 {
			c.col++
		}
	}
	c.pos = end
	return skipped
}

// MarkStart records the current position as the start of the next span.
func (c *Cursor) MarkStart() {
	c.start = c.pos
	c.startLine = c.line
	c.startCol = c.col
}

// Span returns the range from the last MarkStart to the current position.
func (c *Cursor) Span() Span {
	return Span{
		StartLine:   c.startLine,
		StartCol:    c.startCol,
		StartOffset: uint32(c.start),
		EndLine:     c.line,
		EndCol:      c.col,
		EndOffset:   uint32(c.pos),
	}
}
