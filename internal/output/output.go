// Package output holds the text accumulator shared by the evaluator, the
// routine executor, and the host CLI: the evaluator appends to it as
// PRINT/TELL-family operations fire, and the CLI drains it once per turn.
// There is exactly one owned instance per running game; everything else
// holds a reference to it, never a copy.
package output

import "strings"

// Buffer accumulates game text between turn boundaries.
type Buffer struct {
	b strings.Builder
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Write appends text with no trailing newline.
func (b *Buffer) Write(text string) {
	b.b.WriteString(text)
}

// WriteLine appends text followed by a newline.
func (b *Buffer) WriteLine(text string) {
	b.b.WriteString(text)
	b.b.WriteByte('\n')
}

// String returns the buffer's current contents without clearing it.
func (b *Buffer) String() string {
	return b.b.String()
}

// Flush returns the buffer's contents and clears it, for the CLI to print
// once per completed command.
func (b *Buffer) Flush() string {
	s := b.b.String()
	b.b.Reset()
	return s
}

// Clear discards the buffer's contents without returning them.
func (b *Buffer) Clear() {
	b.b.Reset()
}
