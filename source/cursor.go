// Package source implements the character-stream navigator the lexer
// scans over, tracking line and column as it advances.
package source

import "github.com/jstankevicius/albatross-jit/token"

// sentinel is returned by Current/PeekOneAhead once the cursor has run
// past the end of the text. It never matches any character the lexer
// dispatches on.
const sentinel = rune(-1)

// A Cursor walks a source string one rune at a time, maintaining the
// (line, column) of the next unread character. Lines are 1-based;
// columns reset to 1 after a line break. A "\r\n" pair is treated as
// a single line break.
type Cursor struct {
	text []rune
	idx  int
	line int
	col  int
}

// New returns a Cursor positioned at the start of text.
func New(text string) *Cursor {
	return &Cursor{text: []rune(text), line: 1, col: 1}
}

// Done reports whether the cursor has consumed the entire text.
func (c *Cursor) Done() bool {
	return c.idx >= len(c.text)
}

// Current returns the rune at the cursor without advancing, or the
// sentinel if the cursor is Done.
func (c *Cursor) Current() rune {
	if c.Done() {
		return sentinel
	}
	return c.text[c.idx]
}

// PeekOneAhead returns the rune one position past Current, or the
// sentinel if that would run past the end of the text.
func (c *Cursor) PeekOneAhead() rune {
	if c.idx+1 >= len(c.text) {
		return sentinel
	}
	return c.text[c.idx+1]
}

// Pos returns the position of the next unread character.
func (c *Cursor) Pos() token.Pos {
	return token.Pos{Line: c.line, Col: c.col}
}

// Advance consumes the current character, updating line and column.
// A newline ("\n", or "\r" followed by "\n") resets col to 1 and
// increments line exactly once; the pair is consumed together so a
// "\r\n" sequence is never mistaken for two line breaks.
func (c *Cursor) Advance() {
	if c.Done() {
		return
	}
	cur := c.text[c.idx]
	c.idx++
	crlf := cur == '\r' && c.Current() == '\n'
	if crlf {
		c.idx++
	}
	if cur == '\n' || crlf {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
}

// Next consumes and returns the current character.
func (c *Cursor) Next() rune {
	r := c.Current()
	c.Advance()
	return r
}

// SkipWhitespace advances past a run of space, tab, carriage-return,
// and newline characters.
func (c *Cursor) SkipWhitespace() {
	for isWhitespace(c.Current()) {
		c.Advance()
	}
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
