package codon

import (
	"github.com/bebop/poly/checks"
	"gonum.org/v1/gonum/stat"
)

// NRanks is the number of rank buckets tallied by Usage. Codons
// ranked lower than NRanks are not counted.
const NRanks = 6

// Usage is a codon rank histogram of a sequence.
type Usage struct {
	// Ranks[i] is the number of codons with rank i.
	Ranks [NRanks]int `json:"ranks"`
	// Codons is the number of complete codons in the sequence.
	Codons int `json:"codons"`
	// MeanRank is the average rank of the tallied codons.
	MeanRank float64 `json:"meanRank"`
	// GC is the fraction of g and c nucleotides.
	GC float64 `json:"gc"`
}

// Total returns the number of tallied codons.
func (u Usage) Total() (n int) {
	for _, c := range u.Ranks {
		n += c
	}
	return
}

// Usage tallies the codons of the sequence by their rank.
func (t *Table) Usage(seq *Sequence) (u Usage) {
	u.Codons = seq.NCodons()
	ranks := make([]float64, 0, u.Codons)
	for pos := 0; pos+3 <= seq.Len(); pos += 3 {
		r := t.RankOf(seq.CodonAt(pos))
		if r < 0 || r >= NRanks {
			continue
		}
		u.Ranks[r]++
		ranks = append(ranks, float64(r))
	}
	if len(ranks) > 0 {
		u.MeanRank = stat.Mean(ranks, nil)
	}
	u.GC = GC(seq.Bytes())
	return
}

// GC returns the fraction of g and c in the nucleotide sequence, 0
// for an empty sequence.
func GC(nt []byte) float64 {
	if len(nt) == 0 {
		return 0
	}
	return checks.GcContent(string(nt))
}
