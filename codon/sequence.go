package codon

import (
	"bytes"
	"fmt"
)

// Sequence is a mutable nucleotide buffer. Codons are replaced in
// place, the length never changes after creation.
type Sequence struct {
	nt []byte
}

// NewSequence creates a sequence from a nucleotide string. The
// string is lower-cased and copied.
func NewSequence(s string) *Sequence {
	return &Sequence{nt: bytes.ToLower([]byte(s))}
}

// Len returns the sequence length in nucleotides.
func (seq *Sequence) Len() int {
	return len(seq.nt)
}

// NCodons returns the number of complete codons.
func (seq *Sequence) NCodons() int {
	return len(seq.nt) / 3
}

// CodonAt returns three nucleotides starting at pos.
func (seq *Sequence) CodonAt(pos int) string {
	return string(seq.nt[pos : pos+3])
}

// SetCodonAt overwrites three nucleotides starting at pos.
func (seq *Sequence) SetCodonAt(pos int, codon string) {
	if len(codon) != 3 {
		panic(fmt.Sprintf("codon of length %d", len(codon)))
	}
	copy(seq.nt[pos:pos+3], codon)
}

// Index returns the first occurrence of the pattern at or after
// from, or -1. An empty pattern is never found.
func (seq *Sequence) Index(pattern []byte, from int) int {
	if len(pattern) == 0 || from > len(seq.nt) {
		return -1
	}
	i := bytes.Index(seq.nt[from:], pattern)
	if i < 0 {
		return -1
	}
	return i + from
}

// Slice returns a copy of the nucleotides in [start, end).
func (seq *Sequence) Slice(start, end int) string {
	if end > len(seq.nt) {
		end = len(seq.nt)
	}
	return string(seq.nt[start:end])
}

// Bytes returns the underlying buffer. It must not be modified by
// the caller.
func (seq *Sequence) Bytes() []byte {
	return seq.nt
}

func (seq *Sequence) String() string {
	return string(seq.nt)
}
