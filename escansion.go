// Package escansion scans Spanish verse: it assigns prosodic stress,
// resolves synaloepha and hiatus, fits each line to the nearest
// plausible metre and extracts its rhyme. Tokenization, tagging and
// phonetic transcription are delegated to an Annotator and a
// Transcriber.
package escansion

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoAnnotator   = errors.New("escansion: no annotator")
	ErrNoTranscriber = errors.New("escansion: no transcriber")
)

// Annotator tokenizes and tags a cleaned line.
type Annotator interface {
	Annotate(ctx context.Context, line string) ([]Token, error)
}

// Transcriber returns the phonetic syllables of a word, the stressed one
// prefixed with opts.StressMarker.
type Transcriber interface {
	Transcribe(ctx context.Context, word string, opts TranscribeOptions) ([]string, error)
}

// Scanner holds the collaborators and provides the public API. It is
// safe for concurrent use when its collaborators are.
type Scanner struct {
	annotator   Annotator
	transcriber Transcriber

	// defaults are the lengths tried when a line has no hint.
	defaults []int
	// workers bounds ScanAll concurrency.
	workers int
	marker  string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithDefaultLengths replaces DefaultLengths for this Scanner.
func WithDefaultLengths(lengths ...int) Option {
	return func(s *Scanner) {
		if len(lengths) > 0 {
			s.defaults = append([]int(nil), lengths...)
		}
	}
}

// WithWorkers sets how many lines ScanAll processes at once.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithStressMarker sets the glyph the transcriber uses for primary
// stress.
func WithStressMarker(m string) Option {
	return func(s *Scanner) {
		if m != "" {
			s.marker = m
		}
	}
}

// New returns a Scanner using a and t.
func New(a Annotator, t Transcriber, opts ...Option) (*Scanner, error) {
	if a == nil {
		return nil, ErrNoAnnotator
	}
	if t == nil {
		return nil, ErrNoTranscriber
	}
	s := &Scanner{
		annotator:   a,
		transcriber: t,
		defaults:    DefaultLengths,
		workers:     4,
		marker:      DefaultStressMarker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type scanConfig struct {
	expected []int
	adso     bool
}

// ScanOption configures a single scan.
type ScanOption func(*scanConfig)

// WithExpected gives the lengths the line is expected to have, most
// likely first.
func WithExpected(lengths ...int) ScanOption {
	return func(c *scanConfig) {
		c.expected = append([]int(nil), lengths...)
	}
}

// WithAdso stops "oh" and "ay" from being stressed unconditionally.
func WithAdso(adso bool) ScanOption {
	return func(c *scanConfig) {
		c.adso = adso
	}
}

// Prosody returns the words of line with their stress assigned, before
// any metrical adjustment.
func (s *Scanner) Prosody(ctx context.Context, line string, adso bool) ([]Word, error) {
	cleaned := CleanLine(line)
	if cleaned == "" {
		return nil, nil
	}
	tokens, err := s.annotator.Annotate(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	words, err := s.transcribe(ctx, NormalizeTokens(tokens))
	if err != nil {
		return nil, err
	}
	AssignStress(words, adso, s.marker)
	return dropEmpty(words), nil
}

// dropEmpty removes syllables left empty once the stress marker is
// stripped, and the words that end up with none.
func dropEmpty(words []Word) []Word {
	out := words[:0]
	for _, w := range words {
		w.Syllables = slices.DeleteFunc(w.Syllables, func(syl Syllable) bool { return syl == "" })
		if len(w.Syllables) > 0 {
			out = append(out, w)
		}
	}
	return out
}

func (s *Scanner) transcribe(ctx context.Context, tokens []Token) ([]Word, error) {
	words := make([]Word, 0, len(tokens))
	for _, t := range tokens {
		if !isAlpha(t.Text) {
			continue
		}
		syls, err := s.transcriber.Transcribe(ctx, t.Text, TranscribeOptions{
			Monosyllables: true,
			Epenthesis:    true,
			Aspiration:    true,
			StressMarker:  s.marker,
			Exceptions:    exceptionLevel(t.Text),
		})
		if err != nil {
			return nil, fmt.Errorf("transcribe %q: %w", t.Text, err)
		}
		if len(syls) == 0 {
			continue
		}
		w := Word{Text: t.Text, POS: t.POS, Feats: t.Feats, DepRel: t.DepRel}
		for _, syl := range syls {
			w.Syllables = append(w.Syllables, Syllable(syl))
		}
		words = append(words, w)
	}
	return words, nil
}

// Scan scans a single line. Linguistic input never causes an error: a
// line that cannot be fitted is returned with Resolved unset. Errors
// come only from the collaborators.
func (s *Scanner) Scan(ctx context.Context, line string, opts ...ScanOption) (*Verse, error) {
	var cfg scanConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	verse := &Verse{Line: line}
	words, err := s.Prosody(ctx, line, cfg.adso)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return verse, nil
	}

	chains := make([]Chain, len(words))
	for i := range words {
		chains[i] = words[i].Chain()
	}
	verse.Estimate = lineLength(chains) - likelySynaloephas(FindSynaloephas(chains))
	verse.Candidates = CandidateLengths(verse.Estimate, cfg.expected, s.defaults)
	log.Debug().
		Str("line", line).
		Int("estimate", verse.Estimate).
		Ints("candidates", verse.Candidates).
		Msg("fitting line")

	result, count, ambiguity, ok := Fit(chains, verse.Candidates)
	verse.Syllables = result
	verse.Count = count
	verse.Ambiguity = ambiguity
	verse.Resolved = ok
	if len(result) > 0 {
		rh := FindRhyme(result[len(result)-1])
		verse.Assonance = rh.Assonance
		verse.Consonance = rh.Consonance
	}
	verse.Rhythm = Rhythm(result)
	verse.Nuclei = Nuclei(result)
	return verse, nil
}
