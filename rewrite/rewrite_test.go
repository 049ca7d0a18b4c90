package rewrite

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/mrrlab/brickgen/bio"
	"github.com/mrrlab/brickgen/codon"
	"github.com/mrrlab/brickgen/mutate"
	"github.com/mrrlab/brickgen/scan"
)

const (
	residues = "MGAVILSTNQDEHKRCFWYP"
	protein1 = "MKTAYIAKQRQISFVKSHFSRQLEERLGLIEVQAPILSRVGDGTQDNLSGAEKAVQVKVKALPDAQFEVVHSLAKWKRQTLGQHDFSAGEGLYTHMKALRPDEDRLSPLHSVYVDQWDWERVMGDGERQFSTLKSTVEAIWAGIKATEAAVSEEFGLAPFLPDQIHFVHSQELLSRYPDLDAKGRERAIAKDLGAVFLVGIGGKLSDGHRHDVRAPDYDDWUAXLNH"
)

var rfc10 = []scan.Motif{
	scan.NewMotif("EcoRI", "gaattc"),
	scan.NewMotif("XbaI", "tctaga"),
	scan.NewMotif("SpeI", "actagt"),
	scan.NewMotif("PstI", "ctgcag"),
	scan.NewMotif("NotI", "gcggccgc"),
}

func newEngine(tst *testing.T, limits Limits, motifs []scan.Motif) *Engine {
	e, err := NewEngine(codon.EColi, limits, motifs)
	if err != nil {
		tst.Fatal("Error creating engine:", err)
	}
	return e
}

func translate(tst *testing.T, nt string) string {
	p, err := codon.EColi.Translate(nt)
	if err != nil {
		tst.Fatal("Error translating:", err)
	}
	return p
}

func randomProtein(rnd *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = residues[rnd.Intn(len(residues))]
	}
	return string(b)
}

func TestEcoRIRemoved(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), rfc10[:1])
	seq := codon.NewSequence("atggaattcaaa")
	before := translate(tst, seq.String())
	events := e.Run(seq, rand.New(rand.NewSource(1)))

	if strings.Contains(seq.String(), "gaattc") {
		tst.Errorf("EcoRI site still present: %s", seq)
	}
	if after := translate(tst, seq.String()); after != before {
		tst.Errorf("Protein changed: %s -> %s", before, after)
	}
	if len(events) < 2 || events[0].Kind != MotifFound || events[0].Position != 3 {
		tst.Fatalf("Unexpected events: %v", events)
	}
	if last := events[len(events)-1]; last.Kind != MotifAbsent {
		tst.Errorf("Last event should be absent motif, got %v", last)
	}
	if seq.Len() != 12 {
		tst.Errorf("Length changed to %d", seq.Len())
	}
}

func TestRestartFromFirstMotif(tst *testing.T) {
	motifs := []scan.Motif{scan.NewMotif("", "cccccc"), rfc10[0]}
	e := newEngine(tst, DefaultLimits(), motifs)
	seq := codon.NewSequence("atggaattcaaa")
	events := e.Run(seq, rand.New(rand.NewSource(2)))

	kinds := make([]EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	expected := []EventKind{MotifAbsent, MotifFound, MotifAbsent, MotifAbsent}
	if !reflect.DeepEqual(kinds, expected) {
		tst.Errorf("Events %v, expected %v", kinds, expected)
	}
	if events[2].Pattern != "cccccc" || events[3].Pattern != "gaattc" {
		tst.Errorf("Wrong event order: %v", events)
	}
}

func TestGlycineRepeat(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), nil)
	protein := strings.Repeat("G", 10)
	seq := codon.EColi.ReverseTranslate(protein)
	events := e.Run(seq, rand.New(rand.NewSource(3)))

	if len(events) == 0 {
		tst.Fatal("No repeat found")
	}
	ev := events[0]
	if ev.Kind != RepeatFixed || ev.Position != 3 || ev.Pattern != "ggcggcgg" {
		tst.Errorf("Unexpected first event: %+v", ev)
	}
	if ev.Local == ev.Pattern {
		tst.Errorf("Repeat was not mutated: %s", ev.Local)
	}
	if after := translate(tst, seq.String()); after != protein {
		tst.Errorf("Protein changed: %s", after)
	}
}

func TestRepeatWindowBound(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), nil)

	// the only repeated window starts at len-9
	seq := codon.NewSequence("cgtcgatgc" + "aaaaaaaaa")
	events := e.Run(seq, rand.New(rand.NewSource(4)))
	if len(events) != 1 || events[0].Position != 10 || events[0].Pattern != "aaaaaaaa" {
		tst.Errorf("Expected single repeat at 10, got %+v", events)
	}

	seq = codon.NewSequence("cgtcgatgc" + "aaaaaaaa")
	events = e.Run(seq, rand.New(rand.NewSource(4)))
	if len(events) != 0 {
		tst.Errorf("Expected no repeats, got %+v", events)
	}
}

func TestShortSequence(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), rfc10)
	for _, p := range []string{"", "M", "MG"} {
		res, err := e.Process("short", p, rand.New(rand.NewSource(5)))
		if err != nil {
			tst.Fatal(err)
		}
		if res.BackTranslation != p {
			tst.Errorf("Back translation %q, expected %q", res.BackTranslation, p)
		}
	}
}

func TestUnfixableMotif(tst *testing.T) {
	limits := DefaultLimits()
	limits.MotifFailsafe = 5
	e := newEngine(tst, limits, []scan.Motif{scan.NewMotif("MW", "atgtgg")})
	res, err := e.Process("mw", "MWMW", rand.New(rand.NewSource(6)))
	if err != nil {
		tst.Fatal(err)
	}
	if res.DNA != "atgtggatgtgg" {
		tst.Errorf("Unfixable sequence changed: %s", res.DNA)
	}
	if res.MotifFixes != 5 {
		tst.Errorf("Expected 5 attempts, got %d", res.MotifFixes)
	}
	last := res.Events[len(res.Events)-1]
	if last.Kind != MotifUnresolved || last.Attempt != 5 {
		tst.Errorf("Expected unresolved event, got %+v", last)
	}
	if !reflect.DeepEqual(res.Unresolved, []string{"atgtgg"}) {
		tst.Errorf("Unresolved %v", res.Unresolved)
	}
}

func TestDefaultFailsafe(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), []scan.Motif{scan.NewMotif("", "tggatg")})
	res, err := e.Process("wm", "WMWM", rand.New(rand.NewSource(7)))
	if err != nil {
		tst.Fatal(err)
	}
	if res.MotifFixes != 100 {
		tst.Errorf("Expected 100 attempts, got %d", res.MotifFixes)
	}
	if len(res.Events) != 101 {
		tst.Errorf("Expected 101 events, got %d", len(res.Events))
	}
}

func TestPassBudget(tst *testing.T) {
	limits := DefaultLimits()
	limits.PassBudget = 3
	motifs := []scan.Motif{scan.NewMotif("", "atgtgg"), scan.NewMotif("", "tggatg")}
	e := newEngine(tst, limits, motifs)
	res, err := e.Process("budget", "MWMW", rand.New(rand.NewSource(8)))
	if err != nil {
		tst.Fatal(err)
	}
	if res.MotifFixes != 3 {
		tst.Errorf("Expected 3 fixes, got %d", res.MotifFixes)
	}
	if len(res.Unresolved) != 2 {
		tst.Errorf("Expected 2 unresolved motifs, got %v", res.Unresolved)
	}
}

func TestProteinInvariant(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), rfc10)
	rnd := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		p := randomProtein(rnd, 20+rnd.Intn(200))
		res, err := e.Process("random", p, rnd)
		if err != nil {
			tst.Fatal(err)
		}
		if res.BackTranslation != p {
			tst.Fatalf("Protein changed:\n%s\n%s", p, res.BackTranslation)
		}
		if len(res.DNA) != 3*len(p) {
			tst.Errorf("Length %d, expected %d", len(res.DNA), 3*len(p))
		}
		unresolved := map[string]bool{}
		for _, u := range res.Unresolved {
			unresolved[u] = true
		}
		for _, m := range rfc10 {
			if !unresolved[m.Pattern] && strings.Contains(res.DNA, m.Pattern) {
				tst.Errorf("Motif %s present but not reported", m)
			}
		}
		if res.Usage.Total() > len(p) {
			tst.Errorf("Usage total %d larger than %d codons", res.Usage.Total(), len(p))
		}
	}
}

func TestLongProtein(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), rfc10)
	res, err := e.Process("long", protein1, rand.New(rand.NewSource(10)))
	if err != nil {
		tst.Fatal(err)
	}
	expected := strings.NewReplacer("U", "A", "X", "A").Replace(protein1)
	if res.BackTranslation != expected {
		tst.Errorf("Back translation differs:\n%s\n%s", expected, res.BackTranslation)
	}
	if res.Substituted != 2 {
		tst.Errorf("Expected 2 substituted residues, got %d", res.Substituted)
	}
	if res.RepeatFixes == 0 {
		tst.Error("Expected repeat fixes")
	}
}

func TestUnknownResidue(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), nil)
	res, err := e.Process("unknown", "MBG", rand.New(rand.NewSource(11)))
	if err != nil {
		tst.Fatal(err)
	}
	if res.DNA != "atggcgggc" || res.BackTranslation != "MAG" {
		tst.Errorf("Unexpected result %s %s", res.DNA, res.BackTranslation)
	}
}

func TestDeterministic(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), rfc10)
	r1, _ := e.Process("a", protein1, rand.New(rand.NewSource(12)))
	r2, _ := e.Process("a", protein1, rand.New(rand.NewSource(12)))
	if r1.DNA != r2.DNA || !reflect.DeepEqual(r1.Events, r2.Events) {
		tst.Error("Same seed gave different results")
	}
}

func TestBatch(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), rfc10)
	rnd := rand.New(rand.NewSource(13))
	var records bio.Sequences
	for i := 0; i < 12; i++ {
		records = append(records, bio.Sequence{Name: string(rune('a' + i)), Sequence: randomProtein(rnd, 100)})
	}
	res1, errs := e.Batch(records, 42, 1)
	for _, err := range errs {
		if err != nil {
			tst.Fatal(err)
		}
	}
	res4, _ := e.Batch(records, 42, 4)
	for i := range records {
		if res1[i].Name != records[i].Name {
			tst.Errorf("Order changed at %d: %s", i, res1[i].Name)
		}
		if res1[i].DNA != res4[i].DNA {
			tst.Errorf("Record %d differs between thread counts", i)
		}
	}
}

func TestLimitsValidate(tst *testing.T) {
	if err := DefaultLimits().Validate(); err != nil {
		tst.Error(err)
	}
	l := DefaultLimits()
	l.RepeatWindow = 2
	if _, err := NewEngine(codon.EColi, l, nil); err == nil {
		tst.Error("Expected error for small window")
	}
	if _, err := NewEngine(codon.EColi, DefaultLimits(), []scan.Motif{{Name: "empty"}}); err == nil {
		tst.Error("Expected error for empty pattern")
	}
}

func TestEventKindText(tst *testing.T) {
	for _, k := range []EventKind{RepeatFixed, MotifFound, MotifAbsent, MotifUnresolved} {
		b, _ := k.MarshalText()
		var k2 EventKind
		if err := k2.UnmarshalText(b); err != nil || k2 != k {
			tst.Errorf("Kind %v decoded as %v (%v)", k, k2, err)
		}
	}
}

// scripted returns its values in order, then the last one forever.
type scripted struct {
	values []float64
	draws  int
}

func (s *scripted) Float64() float64 {
	s.draws++
	if len(s.values) > 1 {
		v := s.values[0]
		s.values = s.values[1:]
		return v
	}
	return s.values[0]
}

func newRun(e *Engine, nt string, rnd mutate.Source) *run {
	return &run{
		Engine: e,
		seq:    codon.NewSequence(nt),
		mut:    mutate.New(e.table, rnd),
	}
}

func TestFixRetryAttempts(tst *testing.T) {
	e := newEngine(tst, DefaultLimits(), nil)

	// the first codon changes on the first draw, the others keep
	// drawing ggc and get only the retry budget
	src := &scripted{values: []float64{0.5, 0}}
	r := newRun(e, "ggcggcggc", src)
	r.fix([]int{0, 3, 6})
	if expected := 1 + 2*e.limits.RetryAttempts; src.draws != expected {
		tst.Errorf("%d draws, expected %d", src.draws, expected)
	}
	if r.seq.CodonAt(0) == "ggc" || r.seq.Slice(3, 9) != "ggcggc" {
		tst.Errorf("Unexpected sequence %s", r.seq)
	}

	// without a success every codon gets the full budget
	src = &scripted{values: []float64{0}}
	r = newRun(e, "ggcggc", src)
	r.fix([]int{0, 3})
	if expected := 2 * e.limits.MutationAttempts; src.draws != expected {
		tst.Errorf("%d draws, expected %d", src.draws, expected)
	}
	if r.seq.String() != "ggcggc" {
		tst.Errorf("Unexpected sequence %s", r.seq)
	}
}
