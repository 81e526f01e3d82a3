// Package transcribe provides Transcriber implementations: a lexicon
// read from a syllabified word list, an HTTP client for a transcription
// service, and a SQLite cache in front of either.
package transcribe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cours-de-latin/escansion"
)

// ErrUnknownWord is returned by Lexicon.Transcribe for words it does not
// list.
var ErrUnknownWord = errors.New("unknown word")

// lexiconMarker is the stress marker used in lexicon files.
const lexiconMarker = escansion.DefaultStressMarker

type lexKey struct {
	word       string
	exceptions int
}

// Lexicon maps words to their syllables.
type Lexicon struct {
	entries map[lexKey][]string
}

// NewLexicon returns an empty Lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{entries: make(map[lexKey][]string)}
}

// LoadLexicon reads the lexicon file at path.
// Format: "word<TAB>syllables" or "word<TAB>level<TAB>syllables", the
// syllables separated by spaces and the stressed one prefixed with ˈ.
// Lines starting with "!" are comments.
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	return ReadLexicon(f)
}

// ReadLexicon reads lexicon entries from r.
func ReadLexicon(r io.Reader) (*Lexicon, error) {
	lx := NewLexicon()
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		fields := strings.Split(line, "\t")
		level := 1
		switch len(fields) {
		case 2:
		case 3:
			lv, err := strconv.Atoi(strings.TrimSpace(fields[1]))
			if err != nil {
				return nil, fmt.Errorf("lexicon line %d: bad exception level %q", n, fields[1])
			}
			level = lv
		default:
			return nil, fmt.Errorf("lexicon line %d: want 2 or 3 tab-separated fields, got %d", n, len(fields))
		}
		syls := strings.Fields(fields[len(fields)-1])
		if len(syls) == 0 {
			return nil, fmt.Errorf("lexicon line %d: no syllables", n)
		}
		lx.Add(fields[0], level, syls...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return lx, nil
}

// Add records the syllables of word for the given exception level.
func (lx *Lexicon) Add(word string, exceptions int, syllables ...string) {
	key := lexKey{strings.ToLower(strings.TrimSpace(word)), exceptions}
	lx.entries[key] = append([]string(nil), syllables...)
}

// Len returns the number of entries.
func (lx *Lexicon) Len() int {
	return len(lx.entries)
}

// Transcribe looks word up, first at the requested exception level and
// then at level 1, and adapts the entry to opts.
func (lx *Lexicon) Transcribe(_ context.Context, word string, opts escansion.TranscribeOptions) ([]string, error) {
	w := strings.ToLower(word)
	syls, ok := lx.entries[lexKey{w, opts.Exceptions}]
	if !ok {
		syls, ok = lx.entries[lexKey{w, 1}]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return adapt(syls, opts), nil
}

// adapt rewrites lexicon syllables for the requested options: marker
// substitution, unmarked monosyllables and aspiration.
func adapt(syls []string, opts escansion.TranscribeOptions) []string {
	marker := opts.StressMarker
	if marker == "" {
		marker = lexiconMarker
	}
	out := make([]string, len(syls))
	for i, s := range syls {
		if !opts.Aspiration {
			s = strings.ReplaceAll(s, "ʰ", "")
		}
		switch {
		case len(syls) == 1 && !opts.Monosyllables:
			s = strings.ReplaceAll(s, lexiconMarker, "")
		case marker != lexiconMarker:
			s = strings.ReplaceAll(s, lexiconMarker, marker)
		}
		out[i] = s
	}
	return out
}
