package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mrrlab/brickgen/codon"
	"github.com/mrrlab/brickgen/rewrite"
)

var result1 = &rewrite.Result{
	Name:            "seq1",
	Protein:         "MGG",
	DNA:             "atgggcggt",
	BackTranslation: "MGG",
	Events: []rewrite.Event{
		{Kind: rewrite.MotifFound, Pattern: "gaattc", Position: 3, Attempt: 1},
		{Kind: rewrite.MotifAbsent, Pattern: "gaattc", Position: -1},
	},
	Usage: codon.Usage{Ranks: [codon.NRanks]int{2, 1}, Codons: 3},
}

const expectedReport = `Job ID# 42

Runtime Information for sequence 1
>seq1
Protein sequence is 3 amino acids long
Found restriction enzyme motif gaattc at position 3
Found no instance of restriction enzyme motif gaattc
2 instances of 1st ranked codons.
1 instances of 2nd ranked codons.
0 instances of 3rd ranked codons.
0 instances of 4th ranked codons.
0 instances of 5th ranked codons.
0 instances of 6th ranked codons.

*

Source Filename: in.fasta
1 sequences retrieved
Assembly Standard chosen: RFC[10]
Prefix and Suffix added
1500 milliseconds of runtime
`

func TestWriter(tst *testing.T) {
	var res, rep, back bytes.Buffer
	w := NewWriter(&res, &rep, &back, Ends{Add: true, Prefix: "GAATTC", Suffix: "CTGCAG"})
	if err := w.Header("42"); err != nil {
		tst.Fatal(err)
	}
	if err := w.Record(1, result1); err != nil {
		tst.Fatal(err)
	}
	err := w.Trailer(Trailer{
		Source:   "in.fasta",
		Records:  1,
		Standard: "RFC[10]",
		AddEnds:  true,
		Runtime:  1500 * time.Millisecond,
	})
	if err != nil {
		tst.Fatal(err)
	}
	if rep.String() != expectedReport {
		tst.Errorf("Report differs:\n%s", rep.String())
	}
	if res.String() != ">seq1\nGAATTCatgggcggtCTGCAG\n\n" {
		tst.Errorf("Wrong result: %q", res.String())
	}
	if back.String() != ">seq1\n\nMGG\n\n" {
		tst.Errorf("Wrong back translation: %q", back.String())
	}
}

func TestWriterNilStreams(tst *testing.T) {
	var res bytes.Buffer
	w := NewWriter(&res, nil, nil, Ends{})
	if err := w.Record(1, result1); err != nil {
		tst.Fatal(err)
	}
	if !strings.Contains(res.String(), "\natgggcggt\n") {
		tst.Errorf("Ends added: %q", res.String())
	}
}

func TestWriterInputNumbers(tst *testing.T) {
	var rep bytes.Buffer
	w := NewWriter(nil, &rep, nil, Ends{})
	if err := w.Record(3, result1); err != nil {
		tst.Fatal(err)
	}
	if !strings.HasPrefix(rep.String(), "Runtime Information for sequence 3\n") {
		tst.Errorf("Wrong record number: %q", rep.String())
	}
}

func TestOrdinal(tst *testing.T) {
	cases := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 21: "21st", 113: "113th"}
	for n, s := range cases {
		if Ordinal(n) != s {
			tst.Errorf("Ordinal(%d)=%s, expected %s", n, Ordinal(n), s)
		}
	}
}

func TestTotals(tst *testing.T) {
	r2 := &rewrite.Result{Usage: codon.Usage{Ranks: [codon.NRanks]int{1, 0, 1}, Codons: 2}}
	u := Totals([]*rewrite.Result{result1, r2, nil})
	expected := [codon.NRanks]int{3, 1, 1}
	if u.Ranks != expected || u.Codons != 5 {
		tst.Errorf("Totals %+v", u)
	}
}

func TestSaveUsagePlot(tst *testing.T) {
	fn := filepath.Join(tst.TempDir(), "usage.png")
	if err := SaveUsagePlot(result1.Usage, "seq1", fn); err != nil {
		tst.Fatal("Error saving plot:", err)
	}
}
