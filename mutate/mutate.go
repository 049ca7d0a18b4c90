// Package mutate replaces codons with random synonymous codons.
package mutate

import (
	"github.com/op/go-logging"

	"github.com/mrrlab/brickgen/codon"
)

// log is the global logging variable.
var log = logging.MustGetLogger("mutate")

// Source is a source of uniformly distributed numbers in [0, 1).
// *rand.Rand implements it.
type Source interface {
	Float64() float64
}

// Mutator draws synonymous codons from a table.
type Mutator struct {
	table *codon.Table
	rnd   Source
}

// New creates a new mutator.
func New(table *codon.Table, rnd Source) *Mutator {
	return &Mutator{table: table, rnd: rnd}
}

// Mutate returns a codon encoding the same amino acid as c. Up to
// attempts random ranks are drawn; the first codon different from c
// is returned with true. If every draw gives c back, the last draw
// is returned with false. Amino acids encoded by a single codon
// (methionine and tryptophan) are never changed.
func (m *Mutator) Mutate(c string, attempts int) (string, bool) {
	aa, ok := m.table.AminoAcidOf(c)
	if !ok {
		log.Warningf("cannot mutate %q: not in codon table", c)
		return c, false
	}
	if m.table.Synonyms(aa) < 2 {
		return c, false
	}
	next := c
	for i := 0; i < attempts; i++ {
		next = m.table.CodonForRank(aa, m.rnd.Float64())
		if next != c {
			return next, true
		}
	}
	return next, false
}
