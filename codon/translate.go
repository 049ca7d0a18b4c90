package codon

import (
	"fmt"
	"strings"
)

// ReverseTranslate encodes a protein using the most used codon for
// every residue. Letters missing from the table are encoded as
// alanine.
func (t *Table) ReverseTranslate(protein string) *Sequence {
	nt := make([]byte, 0, len(protein)*3)
	for i := 0; i < len(protein); i++ {
		aa := t.Normalize(protein[i])
		if aa == Unknown {
			log.Debugf("residue %q at %d encoded as alanine", protein[i], i)
		}
		nt = append(nt, t.CodonForRank(aa, 0)...)
	}
	return &Sequence{nt: nt}
}

// Translate translates a nucleotide sequence into a protein. Only
// complete codons are translated, a trailing partial codon is
// ignored. Case is ignored.
func (t *Table) Translate(nt string) (string, error) {
	var b strings.Builder
	b.Grow(len(nt) / 3)
	for i := 0; i+3 <= len(nt); i += 3 {
		aa, ok := t.AminoAcidOf(nt[i : i+3])
		if !ok {
			return b.String(), fmt.Errorf("%w: %q at %d", ErrUnknownCodon, nt[i:i+3], i)
		}
		b.WriteByte(byte(aa))
	}
	return b.String(), nil
}

// CountUnknown returns the number of residues that are not in the
// table and therefore change on a round trip.
func (t *Table) CountUnknown(protein string) (n int) {
	for i := 0; i < len(protein); i++ {
		if t.Normalize(protein[i]) == Unknown {
			n++
		}
	}
	return
}
