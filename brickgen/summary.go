package main

import (
	"encoding/json"
	"os"

	"github.com/mrrlab/brickgen/codon"
	"github.com/mrrlab/brickgen/jobstore"
	"github.com/mrrlab/brickgen/rewrite"
)

// RunSummary is storing brickgen run summary information.
type RunSummary struct {
	// Version stores brickgen version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Job is the job metadata, including the seed.
	Job *jobstore.Job `json:"job"`
	// NThreads is the number of workers used.
	NThreads int `json:"nThreads"`
	// Limits are the rewriting limits.
	Limits rewrite.Limits `json:"limits"`
	// Usage is the codon rank histogram of all records.
	Usage codon.Usage `json:"usage"`
	// Results are the per record results.
	Results []*rewrite.Result `json:"results"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
}

// save writes the summary in json format.
func (s *RunSummary) save(fn string) error {
	j, err := json.Marshal(s)
	if err != nil {
		return err
	}
	log.Debug(string(j))
	return os.WriteFile(fn, j, 0666)
}
