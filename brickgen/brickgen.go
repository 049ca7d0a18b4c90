/*

Brickgen converts protein sequences into DNA parts for synthesis. The
most used E. coli codon is chosen for every residue, then short
repeats and restriction sites of the chosen assembly standard are
removed by synonymous substitutions.

The basic usage of brickgen looks like this:

	brickgen run proteins.fasta

, this will use the GoldenGate-RFC10 standard and write the result,
report and back translation files to a directory named after the job
ID.

You can change the standard and skip the prefix and suffix:

	brickgen run --standard 'RFC[25]' --no-ends proteins.fasta

To see all the options run:

	brickgen --help

*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"github.com/mrrlab/brickgen/enzyme"
	"github.com/mrrlab/brickgen/rewrite"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("brickgen")
var formatter = logging.MustStringFormatter(`%{message}`)

// loggers are the package loggers which follow -loglevel.
var loggers = []string{"brickgen", "codon", "mutate", "rewrite", "report", "jobstore"}

// command-line options
var (
	// application
	app = kingpin.New("brickgen", "protein to BioBrick DNA converter").Version(version)

	// common options
	standardsF = app.Flag("standards", "YAML file with extra enzymes and standards").ExistingFile()
	tableF     = app.Flag("table", "codon table file (amino acid followed by ranked codons per line), E. coli by default").ExistingFile()
	outLogF    = app.Flag("log", "write log to a file").String()
	logLevel   = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")

	// run command
	runCmd   = app.Command("run", "convert protein sequences into DNA parts")
	inputF   = runCmd.Arg("input", "protein sequences in FASTA format").Required().ExistingFile()
	standard = runCmd.Flag("standard", "assembly standard").Default(enzyme.DefaultStandard).String()
	sites    = runCmd.Flag("site", "additional enzyme site to remove (repeatable)").Strings()
	noEnds   = runCmd.Flag("no-ends", "don't add the standard prefix and suffix").Bool()
	jobID    = runCmd.Flag("job", "job ID, time based by default").String()
	outDir   = runCmd.Flag("outdir", "output directory, job ID by default").String()
	dbF      = runCmd.Flag("db", "save results to a bolt database").String()
	plotF    = runCmd.Flag("plot", "save codon rank histogram (png, svg or pdf)").String()
	jsonF    = runCmd.Flag("json", "write json output to a file").String()
	seed     = runCmd.Flag("seed", "random generator seed, default time based").Default("-1").Int64()
	nThreads = runCmd.Flag("nt", "number of records processed in parallel").Default("1").Int()
	window   = runCmd.Flag("window", "repeat window width").Default(strconv.Itoa(rewrite.DefaultLimits().RepeatWindow)).Int()
	attempts = runCmd.Flag("attempts", "random draws per codon").Default(strconv.Itoa(rewrite.DefaultLimits().MutationAttempts)).Int()
	retry    = runCmd.Flag("retry", "random draws per codon after a successful mutation in the same fix").Default(strconv.Itoa(rewrite.DefaultLimits().RetryAttempts)).Int()
	failsafe = runCmd.Flag("failsafe", "fixes of a single motif before giving up").Default(strconv.Itoa(rewrite.DefaultLimits().MotifFailsafe)).Int()
	budget   = runCmd.Flag("budget", "maximum number of motif fixes per sequence").Default(strconv.Itoa(rewrite.DefaultLimits().PassBudget)).Int()

	// translate command
	translateCmd = app.Command("translate", "translate DNA sequences into proteins")
	dnaF         = translateCmd.Arg("input", "DNA sequences in FASTA format").Required().ExistingFile()

	// standards command
	standardsCmd = app.Command("standards", "list assembly standards and enzymes")

	// jobs command
	jobsCmd  = app.Command("jobs", "list jobs stored in a bolt database")
	jobsDbF  = jobsCmd.Arg("db", "bolt database").Required().ExistingFile()
	jobsShow = jobsCmd.Flag("show", "print results of a job in FASTA format").String()
)

// setupLogging configures formatter, backend and levels. The
// returned function closes the log file.
func setupLogging() func() {
	logging.SetFormatter(formatter)

	closer := func() {}
	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		closer = func() { f.Close() }
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range loggers {
		logging.SetLevel(level, l)
	}
	return closer
}

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	closeLog := setupLogging()
	defer closeLog()

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	switch cmd {
	case runCmd.FullCommand():
		startTime := time.Now()
		if *seed == -1 {
			*seed = startTime.UnixNano()
			log.Debug("Random seed from time")
		}
		log.Infof("Random seed=%v", *seed)

		summary, err := run(newSettings(), startTime)
		if err != nil {
			log.Fatal(err)
		}
		summary.Version = version
		summary.CommandLine = os.Args
		if *jsonF != "" {
			if err := summary.save(*jsonF); err != nil {
				log.Error("Error creating json output file:", err)
			}
		}
	case translateCmd.FullCommand():
		if err := translate(*dnaF, os.Stdout); err != nil {
			log.Fatal(err)
		}
	case standardsCmd.FullCommand():
		if err := listStandards(os.Stdout); err != nil {
			log.Fatal(err)
		}
	case jobsCmd.FullCommand():
		if err := listJobs(*jobsDbF, *jobsShow, os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
}
