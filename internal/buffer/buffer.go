// Package buffer holds the lines of the document being viewed.
package buffer

// Buffer is an ordered, append-only sequence of text lines. Lines are
// stored without their terminators.
type Buffer struct {
	lines []string
}

// New creates an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds line to the end of the buffer.
func (b *Buffer) Append(line string) {
	b.lines = append(b.lines, line)
}

// IsEmpty reports whether the buffer holds no lines.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Get returns the line at row i, or false if i is out of range.
func (b *Buffer) Get(i int) (string, bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i], true
}
