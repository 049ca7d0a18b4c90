package codon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadTable reads a ranked codon table from a reader. Every
// non-empty line holds an amino acid letter followed by its codons
// from the most to the least used. Lines starting with '#' are
// ignored.
func ReadTable(rd io.Reader, name string) (*Table, error) {
	var entries []Entry
	scanner := bufio.NewScanner(rd)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields[0]) != 1 {
			return nil, fmt.Errorf("line %d: amino acid should be a single letter, got %q", n, fields[0])
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: no codons for %s", n, fields[0])
		}
		entries = append(entries, Entry{
			AminoAcid: AminoAcid(fields[0][0]),
			Codons:    fields[1:],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("empty codon table")
	}
	return NewTable(name, entries)
}
