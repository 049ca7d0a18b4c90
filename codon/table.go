// Package codon provides the ranked codon table, reverse and forward
// translation and the mutable nucleotide sequence used while
// rewriting a coding sequence.
package codon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("codon")

// AminoAcid is a one-letter amino acid code.
type AminoAcid byte

const (
	// Stop is the stop signal.
	Stop AminoAcid = '*'
	// Unknown is used for every letter not present in the table.
	Unknown AminoAcid = 'X'
	// Alanine is the residue Unknown is encoded as.
	Alanine AminoAcid = 'A'
)

var (
	// ErrUnknownCodon is returned when a triplet has no owner in
	// the table.
	ErrUnknownCodon = errors.New("codon not found in table")
	// ErrOverlap is returned when a codon is assigned to more than
	// one amino acid.
	ErrOverlap = errors.New("codon assigned to more than one amino acid")
)

// Entry is a single row of a codon table: amino acid and its codons
// ordered by decreasing usage.
type Entry struct {
	AminoAcid AminoAcid
	Codons    []string
}

// Table maps amino acids to ranked codons. It is never modified
// after creation and may be shared between goroutines.
type Table struct {
	Name   string
	order  []AminoAcid
	codons map[AminoAcid][]string
	owner  map[string]AminoAcid
	rank   map[string]int
}

// NewTable creates a table from the entries. Codons are lower-cased.
// Unknown always aliases the Alanine row; an explicit Unknown entry
// is ignored.
func NewTable(name string, entries []Entry) (*Table, error) {
	t := &Table{
		Name:   name,
		codons: make(map[AminoAcid][]string, len(entries)+1),
		owner:  make(map[string]AminoAcid, 64),
		rank:   make(map[string]int, 64),
	}
	for _, e := range entries {
		aa := AminoAcid(toUpper(byte(e.AminoAcid)))
		if aa == Unknown {
			continue
		}
		if len(e.Codons) == 0 {
			return nil, fmt.Errorf("amino acid %c has no codons", aa)
		}
		if _, ok := t.codons[aa]; ok {
			return nil, fmt.Errorf("amino acid %c listed twice", aa)
		}
		codons := make([]string, len(e.Codons))
		for i, c := range e.Codons {
			c = strings.ToLower(c)
			if !isCodon(c) {
				return nil, fmt.Errorf("amino acid %c: bad codon %q", aa, c)
			}
			if prev, ok := t.owner[c]; ok {
				return nil, fmt.Errorf("%w: %s (%c, %c)", ErrOverlap, c, prev, aa)
			}
			t.owner[c] = aa
			t.rank[c] = i
			codons[i] = c
		}
		t.codons[aa] = codons
		t.order = append(t.order, aa)
	}
	ala, ok := t.codons[Alanine]
	if !ok {
		return nil, errors.New("table has no alanine row")
	}
	t.codons[Unknown] = ala
	t.order = append(t.order, Unknown)
	return t, nil
}

// MustNewTable is like NewTable but panics on error.
func MustNewTable(name string, entries []Entry) *Table {
	t, err := NewTable(name, entries)
	if err != nil {
		panic(err)
	}
	return t
}

// EColi is the E. coli usage ranked table.
var EColi = MustNewTable("E. coli", []Entry{
	{'M', []string{"atg"}},
	{'G', []string{"ggc", "ggt", "ggg", "gga"}},
	{'A', []string{"gcg", "gcc", "gca", "gct"}},
	{'V', []string{"gtg", "gtt", "gtc", "gta"}},
	{'I', []string{"att", "atc", "ata"}},
	{'L', []string{"ctg", "tta", "ttg", "ctt", "ctc", "cta"}},
	{'S', []string{"agc", "tcg", "agt", "tcc", "tct", "tca"}},
	{'T', []string{"acc", "acg", "act", "aca"}},
	{'N', []string{"aac", "aat"}},
	{'Q', []string{"cag", "caa"}},
	{'D', []string{"gat", "gac"}},
	{'E', []string{"gaa", "gag"}},
	{'H', []string{"cat", "cac"}},
	{'K', []string{"aaa", "aag"}},
	{'R', []string{"cgc", "cgt", "cgg", "cga", "aga", "agg"}},
	{'C', []string{"tgc", "tgt"}},
	{'F', []string{"ttt", "ttc"}},
	{'W', []string{"tgg"}},
	{'Y', []string{"tat", "tac"}},
	{'P', []string{"ccg", "cca", "cct", "ccc"}},
	{Stop, []string{"taa", "tga", "tag"}},
})

// Normalize maps a letter to the amino acid used for it. Lower case
// is accepted, letters missing from the table become Unknown.
func (t *Table) Normalize(l byte) AminoAcid {
	aa := AminoAcid(toUpper(l))
	if _, ok := t.codons[aa]; !ok {
		return Unknown
	}
	return aa
}

// AminoAcids returns the amino acids in table order, Unknown last.
func (t *Table) AminoAcids() []AminoAcid {
	return append([]AminoAcid(nil), t.order...)
}

// Codons returns a copy of the ranked codons of an amino acid.
func (t *Table) Codons(aa AminoAcid) []string {
	return append([]string(nil), t.codons[t.Normalize(byte(aa))]...)
}

// Synonyms returns the number of codons encoding an amino acid.
func (t *Table) Synonyms(aa AminoAcid) int {
	return len(t.codons[t.Normalize(byte(aa))])
}

// CodonForRank returns the codon at floor(fraction*n), where n is
// the number of codons for the amino acid. Fraction is clamped to
// [0, 1]; fraction 1 selects the last codon.
func (t *Table) CodonForRank(aa AminoAcid, fraction float64) string {
	codons := t.codons[t.Normalize(byte(aa))]
	if fraction > 1 {
		fraction = 1
	} else if fraction < 0 {
		fraction = 0
	}
	i := int(fraction * float64(len(codons)))
	if i >= len(codons) {
		i = len(codons) - 1
	}
	return codons[i]
}

// RankOf returns the index of the codon within its amino acid list
// or -1 if the codon is not in the table.
func (t *Table) RankOf(codon string) int {
	r, ok := t.rank[strings.ToLower(codon)]
	if !ok {
		return -1
	}
	return r
}

// AminoAcidOf returns the amino acid encoded by the codon.
func (t *Table) AminoAcidOf(codon string) (AminoAcid, bool) {
	aa, ok := t.owner[strings.ToLower(codon)]
	return aa, ok
}

// String returns the table in the text format read by ReadTable.
func (t *Table) String() string {
	var b strings.Builder
	for _, aa := range t.order {
		if aa == Unknown {
			continue
		}
		b.WriteByte(byte(aa))
		for _, c := range t.codons[aa] {
			b.WriteByte(' ')
			b.WriteString(c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func isCodon(c string) bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		switch c[i] {
		case 'a', 'c', 'g', 't':
		default:
			return false
		}
	}
	return true
}

func toUpper(l byte) byte {
	if l >= 'a' && l <= 'z' {
		return l - 'a' + 'A'
	}
	return l
}
