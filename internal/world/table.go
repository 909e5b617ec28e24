package world

import "github.com/dekarrin/zil/internal/zerrors"

// Table is a named, fixed-length vector of 16-bit words. GET/PUT address
// words; GETB/PUTB address individual bytes within the same backing
// storage, big-endian packed (byte 0 is the high byte of word 0).
type Table struct {
	Name  string
	Words []uint16
}

// NewTable allocates a table of the given word length, zero-filled.
func NewTable(name string, length int) *Table {
	return &Table{Name: name, Words: make([]uint16, length)}
}

// NewTableFromWords wraps an existing word slice as a table, e.g. for
// tables declared with initial contents in source.
func NewTableFromWords(name string, words []uint16) *Table {
	return &Table{Name: name, Words: words}
}

// GetWord returns the word at index i.
func (t *Table) GetWord(i int) (uint16, error) {
	if i < 0 || i >= len(t.Words) {
		return 0, zerrors.IndexOutOfRange(t.Name, i)
	}
	return t.Words[i], nil
}

// PutWord sets the word at index i.
func (t *Table) PutWord(i int, v uint16) error {
	if i < 0 || i >= len(t.Words) {
		return zerrors.IndexOutOfRange(t.Name, i)
	}
	t.Words[i] = v
	return nil
}

// GetByte returns the byte at byte-index i, treating the word vector as a
// big-endian byte stream (byte 0 = high byte of word 0, byte 1 = low byte
// of word 0, byte 2 = high byte of word 1, ...).
func (t *Table) GetByte(i int) (byte, error) {
	wordIdx, hi := i/2, i%2 == 0
	if i < 0 || wordIdx >= len(t.Words) {
		return 0, zerrors.IndexOutOfRange(t.Name, i)
	}
	w := t.Words[wordIdx]
	if hi {
		return byte(w >> 8), nil
	}
	return byte(w & 0xFF), nil
}

// PutByte sets the byte at byte-index i, leaving the other byte of the same
// word untouched.
func (t *Table) PutByte(i int, v byte) error {
	wordIdx, hi := i/2, i%2 == 0
	if i < 0 || wordIdx >= len(t.Words) {
		return zerrors.IndexOutOfRange(t.Name, i)
	}
	w := t.Words[wordIdx]
	if hi {
		w = (w & 0x00FF) | (uint16(v) << 8)
	} else {
		w = (w & 0xFF00) | uint16(v)
	}
	t.Words[wordIdx] = w
	return nil
}

// Len returns the word count.
func (t *Table) Len() int { return len(t.Words) }
