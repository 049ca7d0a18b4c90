package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mrrlab/brickgen/bio"
	"github.com/mrrlab/brickgen/jobstore"
	"github.com/mrrlab/brickgen/report"
	"github.com/mrrlab/brickgen/rewrite"
)

// Output file names inside the job directory.
const (
	resultFile    = "result.txt"
	reportFile    = "report.txt"
	backtransFile = "backtrans.txt"
)

// readFasta reads a FASTA file.
func readFasta(fn string) (bio.Sequences, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	seqs, err := bio.ParseFasta(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fn, err)
	}
	return seqs, nil
}

// createFile creates a buffered output file. The returned function
// flushes and closes it.
func createFile(fn string) (*bufio.Writer, func() error, error) {
	f, err := os.Create(fn)
	if err != nil {
		return nil, nil, err
	}
	w := bufio.NewWriter(f)
	return w, func() error {
		if err := w.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}

// run converts all the records of the input file and writes the
// job files.
func run(s *settings, start time.Time) (*RunSummary, error) {
	e, std, err := s.create()
	if err != nil {
		return nil, err
	}

	records, err := readFasta(s.input)
	if err != nil {
		return nil, err
	}
	log.Infof("Read %d sequences from %s", len(records), s.input)

	job := &jobstore.Job{
		ID:       s.jobID,
		Source:   filepath.Base(s.input),
		Standard: std.Name,
		AddEnds:  s.addEnds,
		Seed:     s.seed,
		Started:  start,
		Records:  len(records),
	}
	if job.ID == "" {
		job.ID = strconv.FormatInt(start.UnixMilli(), 10)
	}
	log.Noticef("Job ID# %s", job.ID)

	dir := s.outDir
	if dir == "" {
		dir = job.ID
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}

	results, errs := e.Batch(records, s.seed, s.nThreads)
	done := make([]*rewrite.Result, 0, len(results))
	for i, err := range errs {
		if err != nil {
			log.Errorf("Sequence %s: %v", records[i].Name, err)
			results[i] = nil
			continue
		}
		done = append(done, results[i])
	}
	if len(done) < len(records) {
		log.Warningf("%d of %d sequences failed", len(records)-len(done), len(records))
	}

	ends := report.Ends{Add: s.addEnds, Prefix: std.Prefix, Suffix: std.Suffix}
	runtime := time.Since(start)
	if err := writeJob(dir, job.ID, results, ends, report.Trailer{
		Source:   job.Source,
		Records:  len(records),
		Standard: std.Name,
		AddEnds:  s.addEnds,
		Runtime:  runtime,
	}); err != nil {
		return nil, err
	}
	job.Runtime = runtime.Seconds()
	log.Infof("Results written to %s", dir)

	if s.dbF != "" {
		if err := storeJob(s.dbF, job, results); err != nil {
			return nil, err
		}
		log.Infof("Job saved to %s", s.dbF)
	}

	usage := report.Totals(done)
	log.Noticef("Mean codon rank: %0.3f, GC: %0.3f", usage.MeanRank, usage.GC)
	if s.plotF != "" {
		if err := report.SaveUsagePlot(usage, "Job "+job.ID, s.plotF); err != nil {
			log.Error("Error saving plot:", err)
		}
	}

	return &RunSummary{
		Job:      job,
		NThreads: s.nThreads,
		Limits:   e.Limits(),
		Usage:    usage,
		Results:  done,
		Time:     time.Since(start).Seconds(),
	}, nil
}

// writeJob writes the result, report and back translation files.
// Failed records are nil in results and are skipped, the others
// keep their input numbers.
func writeJob(dir, jobID string, results []*rewrite.Result, ends report.Ends, t report.Trailer) (err error) {
	var files [3]*bufio.Writer
	for i, name := range []string{resultFile, reportFile, backtransFile} {
		w, closer, cerr := createFile(filepath.Join(dir, name))
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := closer(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		files[i] = w
	}

	w := report.NewWriter(files[0], files[1], files[2], ends)
	if err := w.Header(jobID); err != nil {
		return err
	}
	for i, res := range results {
		if res == nil {
			continue
		}
		if err := w.Record(i+1, res); err != nil {
			return err
		}
	}
	return w.Trailer(t)
}

// storeJob saves the job and its successful results to the database.
func storeJob(fn string, job *jobstore.Job, results []*rewrite.Result) error {
	store, err := jobstore.Open(fn)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.SaveJob(job); err != nil {
		return err
	}
	for i, res := range results {
		if res == nil {
			continue
		}
		if err := store.SaveResult(job.ID, i, res); err != nil {
			return err
		}
	}
	return nil
}

// translate prints protein translations of DNA sequences.
func translate(fn string, w io.Writer) error {
	table, err := loadTable(*tableF)
	if err != nil {
		return err
	}
	seqs, err := readFasta(fn)
	if err != nil {
		return err
	}
	proteins := make(bio.Sequences, 0, len(seqs))
	for _, seq := range seqs {
		p, err := table.Translate(seq.Sequence)
		if err != nil {
			return fmt.Errorf("sequence %s: %w", seq.Name, err)
		}
		proteins = append(proteins, bio.Sequence{Name: seq.Name, Sequence: p})
	}
	_, err = fmt.Fprintln(w, proteins)
	return err
}

// listStandards prints the assembly standards and the enzymes.
func listStandards(w io.Writer) error {
	reg, err := loadRegistry(*standardsF)
	if err != nil {
		return err
	}
	for _, name := range reg.StandardNames() {
		std, _ := reg.Standard(name)
		fmt.Fprintf(w, "%s: %s\n", name, strings.Join(std.Sites, ", "))
		if std.Prefix != "" || std.Suffix != "" {
			fmt.Fprintf(w, "\tprefix: %s\n\tsuffix: %s\n", std.Prefix, std.Suffix)
		}
	}
	fmt.Fprintln(w)
	for _, name := range reg.EnzymeNames() {
		p, _ := reg.Pattern(name)
		if _, err := fmt.Fprintf(w, "%s\t%s\n", name, p); err != nil {
			return err
		}
	}
	return nil
}

// listJobs prints the jobs stored in a database. If show is set,
// results of this job are printed in FASTA format.
func listJobs(fn, show string, w io.Writer) error {
	store, err := jobstore.Open(fn)
	if err != nil {
		return err
	}
	defer store.Close()

	if show != "" {
		job, err := store.LoadJob(show)
		if err != nil {
			return fmt.Errorf("job %s: %w", show, err)
		}
		results, err := store.LoadResults(show)
		if err != nil {
			return err
		}
		log.Infof("Job %s: %d of %d records", job.ID, len(results), job.Records)
		seqs := make(bio.Sequences, len(results))
		for i, res := range results {
			seqs[i] = bio.Sequence{Name: res.Name, Sequence: res.DNA}
		}
		_, err = fmt.Fprintln(w, seqs)
		return err
	}

	ids, err := store.Jobs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		job, err := store.LoadJob(id)
		if err != nil {
			return fmt.Errorf("job %s: %w", id, err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", job.ID,
			job.Started.Format(time.RFC3339), job.Standard, job.Records, job.Source); err != nil {
			return err
		}
	}
	return nil
}
