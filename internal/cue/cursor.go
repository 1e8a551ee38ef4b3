// Package cue implements the incremental cue sheet parser used for
// embedded cue sheets: a line cursor over the raw sheet text and a
// state machine that emits completed tracks one at a time.
package cue

import "strings"

// Cursor owns a cue sheet's raw text and a forward-only read position.
//
// The zero position is the start of the text. A Cursor is exhausted once
// the position reaches the end of the text; an exhausted Cursor keeps
// returning nothing and never repeats content.
type Cursor struct {
	text string
	pos  int
}

// NewCursor creates a Cursor over the given sheet text.
func NewCursor(text string) *Cursor {
	return &Cursor{text: text}
}

// Next returns the next line of the sheet and true, or ("", false) when
// the text is exhausted.
//
// Lines are split on any CR or LF byte; the terminator is not part of
// the returned line. Runs of adjacent terminators (CRLF pairs, blank
// lines in any encoding) are consumed as a single break. A final line
// without a trailing terminator is still returned.
func (c *Cursor) Next() (string, bool) {
	if c.pos >= len(c.text) {
		return "", false
	}

	rest := c.text[c.pos:]
	i := strings.IndexAny(rest, "\r\n")
	if i < 0 {
		// Undelimited last line.
		c.pos = len(c.text)
		return rest, true
	}

	c.pos += i + 1
	for c.pos < len(c.text) && (c.text[c.pos] == '\r' || c.text[c.pos] == '\n') {
		c.pos++
	}
	return rest[:i], true
}
