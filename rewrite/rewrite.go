// Package rewrite drives a reverse translated sequence to a state
// free of short repeats and forbidden motifs using synonymous codon
// substitutions only.
//
// A sequence is processed in two passes. The repeat pass sweeps
// once over the sequence and mutates the codons under the first
// later copy of every repeated window. The motif pass checks the
// motifs in order; after every fix it restarts from the first motif,
// since a fix may create another motif. Every hit of a motif is
// counted and once the failsafe is reached the motif is left in
// place.
package rewrite

import (
	"fmt"

	"github.com/op/go-logging"

	"github.com/mrrlab/brickgen/codon"
	"github.com/mrrlab/brickgen/mutate"
	"github.com/mrrlab/brickgen/scan"
)

// log is the global logging variable.
var log = logging.MustGetLogger("rewrite")

// Limits are the numeric bounds of the rewriting.
type Limits struct {
	// RepeatWindow is the repeat window width.
	RepeatWindow int `json:"repeatWindow"`
	// MutationAttempts is the number of draws for a codon.
	MutationAttempts int `json:"mutationAttempts"`
	// RetryAttempts is the number of draws once a mutation in
	// the same batch has succeeded.
	RetryAttempts int `json:"retryAttempts"`
	// MotifFailsafe is the number of fixes of a motif before it is
	// left unresolved.
	MotifFailsafe int `json:"motifFailsafe"`
	// PassBudget is the maximum number of fixes in a motif pass,
	// summed over all motifs. Once it is spent, every motif still
	// present is reported unresolved even if its own failsafe
	// counter is below MotifFailsafe.
	PassBudget int `json:"passBudget"`
}

// DefaultLimits returns the default limits.
func DefaultLimits() Limits {
	return Limits{
		RepeatWindow:     8,
		MutationAttempts: 100,
		RetryAttempts:    3,
		MotifFailsafe:    100,
		PassBudget:       10000,
	}
}

// Validate checks that the limits are usable.
func (l Limits) Validate() error {
	switch {
	case l.RepeatWindow < 3:
		return fmt.Errorf("repeat window should be at least 3, got %d", l.RepeatWindow)
	case l.MutationAttempts < 1:
		return fmt.Errorf("mutation attempts should be positive, got %d", l.MutationAttempts)
	case l.RetryAttempts < 1:
		return fmt.Errorf("retry attempts should be positive, got %d", l.RetryAttempts)
	case l.MotifFailsafe < 1:
		return fmt.Errorf("motif failsafe should be positive, got %d", l.MotifFailsafe)
	case l.PassBudget < 1:
		return fmt.Errorf("pass budget should be positive, got %d", l.PassBudget)
	}
	return nil
}

// Engine rewrites sequences. It holds no per-sequence state and
// can be shared between goroutines.
type Engine struct {
	table  *codon.Table
	limits Limits
	motifs []scan.Motif
}

// NewEngine creates an engine for the table, limits and motifs.
func NewEngine(table *codon.Table, limits Limits, motifs []scan.Motif) (*Engine, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	for _, m := range motifs {
		if m.Pattern == "" {
			return nil, fmt.Errorf("motif %q has an empty pattern", m.Name)
		}
	}
	return &Engine{
		table:  table,
		limits: limits,
		motifs: append([]scan.Motif(nil), motifs...),
	}, nil
}

// Motifs returns the motifs checked by the engine.
func (e *Engine) Motifs() []scan.Motif {
	return append([]scan.Motif(nil), e.motifs...)
}

// Limits returns the engine limits.
func (e *Engine) Limits() Limits {
	return e.limits
}

// Result is the outcome of processing a single protein.
type Result struct {
	Name    string `json:"name"`
	Protein string `json:"protein"`
	// DNA is the final coding sequence without flanks.
	DNA string `json:"dna"`
	// BackTranslation is DNA translated back to protein.
	BackTranslation string      `json:"backTranslation"`
	Events          []Event     `json:"events"`
	Usage           codon.Usage `json:"usage"`
	// Unresolved lists the patterns still present in DNA.
	Unresolved []string `json:"unresolved,omitempty"`
	// Substituted is the number of residues encoded as alanine
	// because they are not in the codon table.
	Substituted int `json:"substituted,omitempty"`
	RepeatFixes int `json:"repeatFixes"`
	MotifFixes  int `json:"motifFixes"`
}

// Process reverse translates the protein, removes repeats and
// motifs and collects the diagnostics. An error is only returned if
// the final sequence cannot be translated back.
func (e *Engine) Process(name, protein string, rnd mutate.Source) (*Result, error) {
	res := &Result{
		Name:        name,
		Protein:     protein,
		Substituted: e.table.CountUnknown(protein),
	}
	if res.Substituted > 0 {
		log.Warningf("%s: %d residue(s) not in the codon table, encoded as alanine", name, res.Substituted)
	}
	seq := e.table.ReverseTranslate(protein)
	res.Events = e.Run(seq, rnd)
	for _, ev := range res.Events {
		switch ev.Kind {
		case RepeatFixed:
			res.RepeatFixes++
		case MotifFound:
			res.MotifFixes++
		}
	}
	for _, m := range e.motifs {
		if seq.Index([]byte(m.Pattern), 0) >= 0 {
			res.Unresolved = append(res.Unresolved, m.Pattern)
		}
	}
	res.DNA = seq.String()
	res.Usage = e.table.Usage(seq)

	back, err := e.table.Translate(res.DNA)
	if err != nil {
		return res, fmt.Errorf("%s: back translation: %w", name, err)
	}
	res.BackTranslation = back
	log.Debugf("%s: %d repeat fixes, %d motif fixes, %d unresolved", name, res.RepeatFixes, res.MotifFixes, len(res.Unresolved))
	return res, nil
}

// Run removes repeats and then motifs from the sequence in place
// and returns the events in the order they happened.
func (e *Engine) Run(seq *codon.Sequence, rnd mutate.Source) []Event {
	r := &run{
		Engine: e,
		seq:    seq,
		mut:    mutate.New(e.table, rnd),
	}
	r.repeatPass()
	r.motifPass()
	return r.events
}

// run is the state of processing a single sequence.
type run struct {
	*Engine
	seq    *codon.Sequence
	mut    *mutate.Mutator
	events []Event
}

// fix mutates every codon in positions. Once a mutation in the
// batch succeeds, the remaining codons get fewer attempts.
func (r *run) fix(positions []int) {
	succeeded := false
	for _, pos := range positions {
		if pos < 0 || pos+3 > r.seq.Len() {
			continue
		}
		attempts := r.limits.MutationAttempts
		if succeeded {
			attempts = r.limits.RetryAttempts
		}
		c, ok := r.mut.Mutate(r.seq.CodonAt(pos), attempts)
		r.seq.SetCodonAt(pos, c)
		succeeded = succeeded || ok
	}
}

// repeatPass sweeps once over the sequence, fixing the first later
// copy of every repeated window.
func (r *run) repeatPass() {
	w := r.limits.RepeatWindow
	last := scan.LastWindow(r.seq.Len(), w)
	for a := 0; a <= last; a++ {
		m := scan.Duplicate(r.seq.Bytes(), a, w)
		if m < 0 {
			continue
		}
		pattern := r.seq.Slice(a, a+w)
		r.fix(scan.Frame(m, w))
		ev := Event{
			Kind:     RepeatFixed,
			Pattern:  pattern,
			Position: m,
			Local:    r.seq.Slice(m, m+w),
		}
		log.Debug(ev.Message())
		r.events = append(r.events, ev)
	}
}

// motifPass checks the motifs in order, restarting from the first
// motif after every fix.
func (r *run) motifPass() {
	counters := make([]int, len(r.motifs))
	fixes := 0
	for i := 0; i < len(r.motifs); {
		m := r.motifs[i]
		pos := r.seq.Index([]byte(m.Pattern), 0)
		switch {
		case pos < 0:
			counters[i] = 0
			r.events = append(r.events, Event{Kind: MotifAbsent, Name: m.Name, Pattern: m.Pattern, Position: -1})
			i++
		case counters[i] >= r.limits.MotifFailsafe || fixes >= r.limits.PassBudget:
			ev := Event{Kind: MotifUnresolved, Name: m.Name, Pattern: m.Pattern, Position: pos, Attempt: counters[i]}
			log.Warning(ev.Message())
			r.events = append(r.events, ev)
			i++
		default:
			counters[i]++
			fixes++
			ev := Event{Kind: MotifFound, Name: m.Name, Pattern: m.Pattern, Position: pos, Attempt: counters[i]}
			log.Debug(ev.Message())
			r.events = append(r.events, ev)
			r.fix(scan.Frame(pos, len(m.Pattern)))
			i = 0
		}
	}
}
