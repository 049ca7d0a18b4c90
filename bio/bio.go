// Package bio provides FASTA reading and writing.
package bio

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Sequence is a type which is intended for storing nucleotide or
// protein sequence with it's name.
type Sequence struct {
	Name     string
	Sequence string
}

// Sequences stores multiple sequences.
type Sequences []Sequence

// ErrNoHeader is returned when sequence data precedes the first
// header line.
var ErrNoHeader = errors.New("sequence w/o prefix")

// blanks is used to remove whitespace inside sequence lines.
var blanks = strings.NewReplacer(" ", "", "\t", "", "\r", "")

// ParseFasta parses FASTA sequences from a reader. Sequence letters
// are converted to upper case, whitespace is removed.
func ParseFasta(rd io.Reader) (seqs Sequences, err error) {
	seqs = make(Sequences, 0, 10)
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			seq := Sequence{Name: strings.TrimSpace(line[1:])}
			seqs = append(seqs, seq)
		} else {
			if len(seqs) == 0 {
				return nil, ErrNoHeader
			}
			seqs[len(seqs)-1].Sequence += Normalize(line)
		}
	}
	return seqs, scanner.Err()
}

// Normalize removes whitespace and converts letters to upper case.
func Normalize(s string) string {
	return strings.ToUpper(blanks.Replace(s))
}

// Wrap inputs a string and wraps it so string length is n characters
// or less.
func Wrap(seq string, n int) (s string) {
	if n <= 0 {
		return seq + "\n"
	}
	var b strings.Builder
	for i := 0; i < len(seq); i += n {
		end := i + n
		if end > len(seq) {
			end = len(seq)
		}
		b.WriteString(seq[i:end])
		b.WriteByte('\n')
	}
	return b.String()
}

// String returns a sequence in FASTA format.
func (seq Sequence) String() (s string) {
	s = ">" + seq.Name + "\n" + Wrap(seq.Sequence, 80)
	return
}

// String returns sequences in FASTA format.
func (seqs Sequences) String() (s string) {
	for _, seq := range seqs {
		s += seq.String()
	}
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}
