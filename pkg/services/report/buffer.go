package report

import (
	"errors"
	"strings"
)

// ErrEmptyBuffer is returned when a line is popped from an exhausted buffer.
var ErrEmptyBuffer = errors.New("line buffer is empty")

// LineBuffer is a destructive cursor over the lines of one input file.
// Lines are stored with terminators stripped; consuming only advances the
// cursor, so peeking is free.
type LineBuffer struct {
	lines []string
	pos   int
}

// NewLineBuffer wraps raw file content. CRLF and LF terminated input are
// both accepted; terminators are not retained.
func NewLineBuffer(content string) *LineBuffer {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	return &LineBuffer{lines: lines}
}

// FromLines wraps an already split line sequence.
func FromLines(lines []string) *LineBuffer {
	buf := make([]string, len(lines))
	copy(buf, lines)
	return &LineBuffer{lines: buf}
}

func (b *LineBuffer) IsEmpty() bool {
	return b.pos >= len(b.lines)
}

// PeekFront returns the front line without consuming it. Callers must check
// IsEmpty first.
func (b *LineBuffer) PeekFront() string {
	return b.lines[b.pos]
}

func (b *LineBuffer) PopFront() (string, error) {
	if b.IsEmpty() {
		return "", ErrEmptyBuffer
	}
	line := b.lines[b.pos]
	b.pos++
	return line, nil
}

// ReplaceFront rewrites the front line in place. Used to strip a leading
// page-break marker without consuming the header text behind it.
func (b *LineBuffer) ReplaceFront(line string) {
	if !b.IsEmpty() {
		b.lines[b.pos] = line
	}
}

// DropLeadingBlankLines consumes all-whitespace lines from the front and
// returns how many were dropped.
func (b *LineBuffer) DropLeadingBlankLines() int {
	dropped := 0
	for !b.IsEmpty() && strings.TrimSpace(b.lines[b.pos]) == "" {
		b.pos++
		dropped++
	}
	return dropped
}
