// Package scan finds forbidden motifs and short repeats in a
// nucleotide sequence and maps the hits onto reading frame codons.
package scan

import (
	"bytes"
	"strings"
)

// Motif is a forbidden nucleotide pattern.
type Motif struct {
	// Name is the enzyme or junction name, may be empty.
	Name string `json:"name,omitempty" yaml:"name"`
	// Pattern is the lower case nucleotide pattern.
	Pattern string `json:"pattern" yaml:"pattern"`
}

// NewMotif creates a motif, the pattern is lower-cased.
func NewMotif(name, pattern string) Motif {
	return Motif{Name: name, Pattern: strings.ToLower(pattern)}
}

func (m Motif) String() string {
	if m.Name == "" {
		return m.Pattern
	}
	return m.Name + "(" + m.Pattern + ")"
}

// Frame returns the start positions of the codons overlapping a hit
// of the given length at offset. The first codon starts at the
// codon boundary at or before offset; length/3 codons are returned.
func Frame(offset, length int) []int {
	n := length / 3
	res := make([]int, n)
	start := offset - offset%3
	for i := range res {
		res[i] = start + 3*i
	}
	return res
}

// LastWindow returns the last window start examined for repeats
// of the given width in a sequence of length n: a window must
// leave at least one nucleotide after it. The result is negative
// if the sequence is too short.
func LastWindow(n, width int) int {
	return n - (width + 1)
}

// Duplicate looks for another occurrence of the width-long window
// starting at a. Only occurrences starting strictly after a are
// considered. It returns the position of the first one, or -1.
func Duplicate(nt []byte, a, width int) int {
	if a < 0 || a+width > len(nt) {
		return -1
	}
	i := bytes.Index(nt[a+1:], nt[a:a+width])
	if i < 0 {
		return -1
	}
	return a + 1 + i
}
