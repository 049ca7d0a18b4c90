// Package report writes processing results as the result, report
// and back translation text streams.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/op/go-logging"

	"github.com/mrrlab/brickgen/codon"
	"github.com/mrrlab/brickgen/rewrite"
)

// log is the global logging variable.
var log = logging.MustGetLogger("report")

// Ends are the flanks added around every coding sequence.
type Ends struct {
	Add    bool
	Prefix string
	Suffix string
}

// Wrap returns dna with the flanks if they are enabled.
func (e Ends) Wrap(dna string) string {
	if !e.Add {
		return dna
	}
	return e.Prefix + dna + e.Suffix
}

// Trailer is the job information written after all records.
type Trailer struct {
	Source   string
	Records  int
	Standard string
	AddEnds  bool
	Runtime  time.Duration
}

// Writer writes the three text streams. Any of them may be nil.
type Writer struct {
	result    io.Writer
	report    io.Writer
	backtrans io.Writer
	ends      Ends
	err       error
}

// NewWriter creates a new writer.
func NewWriter(result, report, backtrans io.Writer, ends Ends) *Writer {
	return &Writer{
		result:    result,
		report:    report,
		backtrans: backtrans,
		ends:      ends,
	}
}

// printf writes to w, remembering the first error.
func (w *Writer) printf(dst io.Writer, format string, args ...interface{}) {
	if dst == nil || w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(dst, format, args...)
}

// Header writes the job header to the report stream.
func (w *Writer) Header(jobID string) error {
	w.printf(w.report, "Job ID# %s\n\n", jobID)
	return w.err
}

// Record writes a single result to all the streams. n is the
// 1-based number of the record in the input.
func (w *Writer) Record(n int, res *rewrite.Result) error {
	w.printf(w.result, ">%s\n%s\n\n", res.Name, w.ends.Wrap(res.DNA))

	w.printf(w.report, "Runtime Information for sequence %d\n", n)
	w.printf(w.report, ">%s\n", res.Name)
	w.printf(w.report, "Protein sequence is %d amino acids long\n", len(res.Protein))
	if res.Substituted > 0 {
		w.printf(w.report, "%d residue(s) not in the codon table were encoded as alanine\n", res.Substituted)
	}
	for _, ev := range res.Events {
		w.printf(w.report, "%s\n", ev.Message())
	}
	for i, c := range res.Usage.Ranks {
		w.printf(w.report, "%d instances of %s ranked codons.\n", c, Ordinal(i+1))
	}
	w.printf(w.report, "\n*\n\n")

	w.printf(w.backtrans, ">%s\n\n%s\n\n", res.Name, res.BackTranslation)
	if w.err != nil {
		log.Errorf("Error writing %s: %v", res.Name, w.err)
	}
	return w.err
}

// Trailer writes the job summary to the report stream.
func (w *Writer) Trailer(t Trailer) error {
	w.printf(w.report, "Source Filename: %s\n", t.Source)
	w.printf(w.report, "%d sequences retrieved\n", t.Records)
	w.printf(w.report, "Assembly Standard chosen: %s\n", t.Standard)
	if t.AddEnds {
		w.printf(w.report, "Prefix and Suffix added\n")
	}
	w.printf(w.report, "%d milliseconds of runtime\n", t.Runtime.Milliseconds())
	return w.err
}

// Ordinal returns 1st, 2nd, 3rd, 4th and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	if n%100 >= 11 && n%100 <= 13 {
		suffix = "th"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// Totals sums usage over several results.
func Totals(results []*rewrite.Result) (u codon.Usage) {
	var ranks float64
	var gc float64
	for _, res := range results {
		if res == nil {
			continue
		}
		for i, n := range res.Usage.Ranks {
			u.Ranks[i] += n
		}
		u.Codons += res.Usage.Codons
		ranks += res.Usage.MeanRank * float64(res.Usage.Total())
		gc += res.Usage.GC * float64(3*res.Usage.Codons)
	}
	if t := u.Total(); t > 0 {
		u.MeanRank = ranks / float64(t)
	}
	if u.Codons > 0 {
		u.GC = gc / float64(3*u.Codons)
	}
	return
}
