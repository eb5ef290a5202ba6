package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"sharplint/internal/source"
)

// Cursor is a forward-only byte position in one file. It is rewound only to
// a Mark taken earlier in the same token.
type Cursor struct {
	src  []byte
	file source.FileID
	end  uint32
	Off  uint32
}

// Mark is a saved Cursor offset.
type Mark uint32

// NewCursor positions a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: %s does not fit 32-bit offsets: %w", f.Path, err))
	}
	return Cursor{src: f.Content, file: f.ID, end: end}
}

// EOF reports whether every byte has been consumed.
func (c *Cursor) EOF() bool { return c.Off >= c.end }

// Rest is the unread tail of the content.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.src[c.Off:c.end]
}

// Peek returns the current byte, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// Peek2 returns the current and the next byte; ok is false when fewer than
// two bytes are left.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.end {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

// Bump consumes one byte and returns it, 0 at EOF.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes the current byte when it equals b.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// SpanFrom covers the bytes consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
