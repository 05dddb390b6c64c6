package slides

import (
	"unicode/utf8"
)

// outputBuffer is the body under construction. It satisfies goldmark's
// util.BufWriter so the renderer writes into it directly, and it supports
// checkpoints so a fragment can be sliced out and the buffer truncated.
type outputBuffer struct {
	buf []byte
}

func newOutputBuffer(size int) *outputBuffer {
	return &outputBuffer{buf: make([]byte, 0, size)}
}

func (b *outputBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *outputBuffer) WriteString(s string) (int, error) {
	b.buf = append(b.buf, s...)
	return len(s), nil
}

func (b *outputBuffer) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

func (b *outputBuffer) WriteRune(r rune) (int, error) {
	n := len(b.buf)
	b.buf = utf8.AppendRune(b.buf, r)
	return len(b.buf) - n, nil
}

// Available always reports the free capacity; the buffer grows on demand.
func (b *outputBuffer) Available() int {
	return cap(b.buf) - len(b.buf)
}

func (b *outputBuffer) Buffered() int {
	return len(b.buf)
}

// Flush is a no-op; nothing is held back.
func (b *outputBuffer) Flush() error {
	return nil
}

// Checkpoint returns the current write position.
func (b *outputBuffer) Checkpoint() int {
	return len(b.buf)
}

// Since returns everything written after pos.
func (b *outputBuffer) Since(pos int) string {
	if pos < 0 || pos > len(b.buf) {
		return ""
	}
	return string(b.buf[pos:])
}

// Slice returns the bytes written between from and to.
func (b *outputBuffer) Slice(from, to int) string {
	if from < 0 || to > len(b.buf) || from > to {
		return ""
	}
	return string(b.buf[from:to])
}

// Truncate discards everything written after pos.
func (b *outputBuffer) Truncate(pos int) {
	if pos >= 0 && pos <= len(b.buf) {
		b.buf = b.buf[:pos]
	}
}

func (b *outputBuffer) String() string {
	return string(b.buf)
}
