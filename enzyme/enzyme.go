// Package enzyme resolves restriction enzyme names and assembly
// standards into forbidden motifs.
package enzyme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mrrlab/brickgen/scan"
)

// patterns maps enzyme names to recognition sites. Reverse
// complements of non-palindromic sites have their own names.
var patterns = map[string]string{
	"EcoRI":    "gaattc",
	"XbaI":     "tctaga",
	"SpeI":     "actagt",
	"PstI":     "ctgcag",
	"NotI":     "gcggccgc",
	"NheI":     "gctagc",
	"PvuII":    "cagctg",
	"XhoI":     "ctcgag",
	"AvrII":    "cctagg",
	"SapI":     "gctcttc",
	"SapIA":    "gaagagc",
	"BglII":    "agatct",
	"BamHI":    "ggatcc",
	"NgoMIV":   "gccggc",
	"AgeI":     "accggt",
	"BsaI":     "ggtctc",
	"BsmBI":    "cgtctc",
	"BsaI-RC":  "gagacc",
	"BsmBI-RC": "gagacg",
}

// Standard is an assembly standard: the sites that must be absent
// from a part and the flanks added around it.
type Standard struct {
	Name   string   `yaml:"name" json:"name"`
	Sites  []string `yaml:"sites" json:"sites"`
	Prefix string   `yaml:"prefix" json:"prefix,omitempty"`
	Suffix string   `yaml:"suffix" json:"suffix,omitempty"`
}

const (
	rfc10Prefix = "GAATTCGCGGCCGCTTCTAG"
	rfc10Suffix = "TACTAGTAGCGGCCGCTGCAG"
)

var rfc10Sites = []string{"EcoRI", "XbaI", "SpeI", "PstI", "NotI"}

// DefaultStandard is the name of the standard used when none is
// given.
const DefaultStandard = "GoldenGate-RFC10"

var standards = map[string]Standard{
	"RFC[10]": {
		Name:   "RFC[10]",
		Sites:  rfc10Sites,
		Prefix: rfc10Prefix,
		Suffix: rfc10Suffix,
	},
	"RFC[12]": {
		Name:   "RFC[12]",
		Sites:  []string{"EcoRI", "XbaI", "SpeI", "PstI", "NotI", "NheI", "PvuII", "XhoI", "AvrII", "SapI", "SapIA"},
		Prefix: "GAATTCGCGGCCGCACTAGT",
		Suffix: "GCTAGCGCGGCCGCTGCAG",
	},
	"RFC[21]": {
		Name:   "RFC[21]",
		Sites:  []string{"EcoRI", "BglII", "BamHI", "XhoI"},
		Prefix: "GAATTCatgAGATCT",
		Suffix: "GGATCCtaaCTCGAG",
	},
	"RFC[23]": {
		Name:   "RFC[23]",
		Sites:  rfc10Sites,
		Prefix: "GAATTCGCGGCCGCTTCTAGA",
		Suffix: "ACTAGTAGCGGCCGCTGCAG",
	},
	"RFC[25]": {
		Name:   "RFC[25]",
		Sites:  []string{"EcoRI", "XbaI", "SpeI", "PstI", "NotI", "NgoMIV", "AgeI"},
		Prefix: "GAATTCGCGGCCGCTTCTAGATGGCCGGC",
		Suffix: "ACCGGTTAATACTAGTAGCGGCCGCTGCAG",
	},
	"GoldenGate-RFC10": {
		Name:   "GoldenGate-RFC10",
		Sites:  []string{"EcoRI", "XbaI", "SpeI", "PstI", "NotI", "BsaI", "BsmBI", "BsaI-RC", "BsmBI-RC"},
		Prefix: rfc10Prefix,
		Suffix: rfc10Suffix,
	},
	"All": {
		Name:  "All",
		Sites: []string{"EcoRI", "XbaI", "SpeI", "PstI", "NotI", "NgoMIV", "AgeI", "BglII", "BamHI", "XhoI", "NheI", "PvuII", "AvrII", "SapI", "SapIA"},
	},
}

// Registry holds enzymes and standards. The zero value is not
// usable, use NewRegistry.
type Registry struct {
	patterns  map[string]string
	standards map[string]Standard
}

// NewRegistry returns a registry with the built-in enzymes and
// standards.
func NewRegistry() *Registry {
	r := &Registry{
		patterns:  make(map[string]string, len(patterns)),
		standards: make(map[string]Standard, len(standards)),
	}
	for k, v := range patterns {
		r.patterns[k] = v
	}
	for k, v := range standards {
		r.standards[k] = v
	}
	return r
}

// Pattern returns the recognition site of an enzyme.
func (r *Registry) Pattern(name string) (string, bool) {
	p, ok := r.patterns[name]
	return p, ok
}

// Standard returns a standard by name.
func (r *Registry) Standard(name string) (Standard, bool) {
	s, ok := r.standards[name]
	return s, ok
}

// AddEnzyme registers or overrides an enzyme.
func (r *Registry) AddEnzyme(name, pattern string) error {
	pattern = strings.ToLower(pattern)
	if name == "" || !isNucleotides(pattern) {
		return fmt.Errorf("bad enzyme %q: %q", name, pattern)
	}
	r.patterns[name] = pattern
	return nil
}

// AddStandard registers or overrides a standard. Every site must be
// a known enzyme.
func (r *Registry) AddStandard(s Standard) error {
	if s.Name == "" {
		return fmt.Errorf("standard without a name")
	}
	if _, err := r.Motifs(s.Sites); err != nil {
		return fmt.Errorf("standard %s: %w", s.Name, err)
	}
	r.standards[s.Name] = s
	return nil
}

// Motifs resolves enzyme names into motifs, keeping the order.
func (r *Registry) Motifs(names []string) ([]scan.Motif, error) {
	motifs := make([]scan.Motif, 0, len(names))
	for _, n := range names {
		p, ok := r.patterns[n]
		if !ok {
			return nil, fmt.Errorf("unknown enzyme: %s", n)
		}
		motifs = append(motifs, scan.NewMotif(n, p))
	}
	return motifs, nil
}

// StandardNames returns sorted standard names.
func (r *Registry) StandardNames() []string {
	names := make([]string, 0, len(r.standards))
	for n := range r.standards {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EnzymeNames returns sorted enzyme names.
func (r *Registry) EnzymeNames() []string {
	names := make([]string, 0, len(r.patterns))
	for n := range r.patterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isNucleotides(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'a', 'c', 'g', 't':
		default:
			return false
		}
	}
	return true
}
