package stream

import (
	"bufio"
	"context"
	"io"
)

// MaxLineSize bounds a single line of a line-oriented format.
const MaxLineSize = 16 << 20

// Lines scans r line by line and tracks the 1-based line number.
type Lines struct {
	sc   *bufio.Scanner
	ctx  context.Context
	line int
}

// NewLines returns a line scanner over r.
func NewLines(ctx context.Context, r io.Reader) *Lines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Lines{sc: sc, ctx: ctx}
}

// Next advances to the next line. It returns false at the end of input,
// on a read error and once the context is done; Err tells them apart.
func (l *Lines) Next() bool {
	if l.ctx.Err() != nil {
		return false
	}
	if !l.sc.Scan() {
		return false
	}
	l.line++
	return true
}

// Bytes returns the current line without its terminator. The slice is
// reused by the next call to Next.
func (l *Lines) Bytes() []byte { return l.sc.Bytes() }

// Line returns the current line number.
func (l *Lines) Line() int { return l.line }

// Err returns the first non-EOF error.
func (l *Lines) Err() error {
	if err := l.ctx.Err(); err != nil {
		return err
	}
	return l.sc.Err()
}
