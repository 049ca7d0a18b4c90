package main

import (
	"fmt"
	"os"

	"github.com/mrrlab/brickgen/codon"
	"github.com/mrrlab/brickgen/enzyme"
	"github.com/mrrlab/brickgen/rewrite"
)

// settings stores the options of the run command.
type settings struct {
	input    string
	standard string
	sites    []string
	addEnds  bool

	jobID  string
	outDir string
	dbF    string
	plotF  string

	seed     int64
	nThreads int
	limits   rewrite.Limits

	standardsF string
	tableF     string
}

// newSettings initializes settings from global variables
// (command-line arguments).
func newSettings() *settings {
	return &settings{
		input:    *inputF,
		standard: *standard,
		sites:    *sites,
		addEnds:  !*noEnds,

		jobID:  *jobID,
		outDir: *outDir,
		dbF:    *dbF,
		plotF:  *plotF,

		seed:     *seed,
		nThreads: *nThreads,
		limits: rewrite.Limits{
			RepeatWindow:     *window,
			MutationAttempts: *attempts,
			RetryAttempts:    *retry,
			MotifFailsafe:    *failsafe,
			PassBudget:       *budget,
		},

		standardsF: *standardsF,
		tableF:     *tableF,
	}
}

// loadRegistry returns the built-in enzymes and standards extended
// with the standards file.
func loadRegistry(fn string) (*enzyme.Registry, error) {
	reg := enzyme.NewRegistry()
	if fn == "" {
		return reg, nil
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := reg.Load(f); err != nil {
		return nil, err
	}
	log.Infof("Loaded standards from %s", fn)
	return reg, nil
}

// loadTable returns the codon table from a file or the E. coli
// table.
func loadTable(fn string) (*codon.Table, error) {
	if fn == "" {
		return codon.EColi, nil
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := codon.ReadTable(f, fn)
	if err != nil {
		return nil, fmt.Errorf("reading codon table %s: %w", fn, err)
	}
	log.Infof("Loaded codon table from %s", fn)
	log.Debugf("Codon table:\n%s", t)
	return t, nil
}

// create creates the engine and returns it with the chosen
// standard.
func (s *settings) create() (*rewrite.Engine, enzyme.Standard, error) {
	reg, err := loadRegistry(s.standardsF)
	if err != nil {
		return nil, enzyme.Standard{}, err
	}
	std, ok := reg.Standard(s.standard)
	if !ok {
		return nil, std, fmt.Errorf("unknown assembly standard: %s (known: %v)", s.standard, reg.StandardNames())
	}
	log.Infof("Assembly standard: %s", std.Name)

	motifs, err := reg.Motifs(append(append([]string(nil), std.Sites...), s.sites...))
	if err != nil {
		return nil, std, err
	}
	for _, m := range motifs {
		log.Debugf("Motif %s", m)
	}

	table, err := loadTable(s.tableF)
	if err != nil {
		return nil, std, err
	}

	e, err := rewrite.NewEngine(table, s.limits, motifs)
	if err != nil {
		return nil, std, err
	}
	log.Infof("Limits: %+v", s.limits)
	return e, std, nil
}
