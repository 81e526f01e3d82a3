package escansion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnnotator map[string][]Token

func (a stubAnnotator) Annotate(_ context.Context, line string) ([]Token, error) {
	toks, ok := a[line]
	if !ok {
		return nil, fmt.Errorf("unexpected line %q", line)
	}
	return toks, nil
}

type stubTranscriber struct {
	words map[string][]string
	err   error
}

func (t stubTranscriber) Transcribe(_ context.Context, word string, _ TranscribeOptions) ([]string, error) {
	if t.err != nil {
		return nil, t.err
	}
	syls, ok := t.words[word]
	if !ok {
		return nil, fmt.Errorf("unexpected word %q", word)
	}
	return syls, nil
}

func tok(text string, pos PartOfSpeech, feats string) Token {
	return Token{Text: text, POS: pos, Feats: ParseFeatures(feats)}
}

var testLexicon = map[string][]string{
	"luna":    {"ˈlu", "na"},
	"alta":    {"ˈal", "ta"},
	"sol":     {"ˈsol"},
	"gris":    {"ˈgɾis"},
	"piadoso": {"pja", "ˈdo", "so"},
	"señor":   {"se", "ˈɲoɾ"},
}

var testLines = stubAnnotator{
	"luna alta":      {tok("luna", POSNoun, ""), tok("alta", POSAdjective, "")},
	"sol gris":       {tok("sol", POSNoun, ""), tok("gris", POSAdjective, "")},
	"piadoso señor":  {tok("piadoso", POSAdjective, ""), tok("señor", POSNoun, "")},
	"piadoso señor,": {tok("piadoso", POSAdjective, ""), tok("señor", POSNoun, ""), tok(",", POSPunctuation, "")},
}

func newTestScanner(t *testing.T, opts ...Option) *Scanner {
	t.Helper()
	sc, err := New(testLines, stubTranscriber{words: testLexicon}, opts...)
	require.NoError(t, err)
	return sc
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(nil, stubTranscriber{})
	assert.ErrorIs(t, err, ErrNoAnnotator)
	_, err = New(testLines, nil)
	assert.ErrorIs(t, err, ErrNoTranscriber)
}

func TestScanEmptyLine(t *testing.T) {
	sc := newTestScanner(t)
	for _, line := range []string{"", "  "} {
		v, err := sc.Scan(context.Background(), line)
		require.NoError(t, err)
		assert.Equal(t, line, v.Line)
		assert.Zero(t, v.Count)
		assert.Empty(t, v.Syllables)
		assert.Empty(t, v.Rhythm)
		assert.False(t, v.Resolved)
	}
}

func TestScanSynaloepha(t *testing.T) {
	sc := newTestScanner(t)
	v, err := sc.Scan(context.Background(), "luna alta", WithExpected(3))
	require.NoError(t, err)

	assert.Equal(t, []Chain{{"lU", "nAl", "ta"}}, v.Syllables)
	assert.Equal(t, 3, v.Count)
	assert.Equal(t, 3, v.Estimate)
	assert.Equal(t, []int{3}, v.Candidates)
	assert.Equal(t, AmbiguityNone, v.Ambiguity)
	assert.True(t, v.Resolved)
	assert.Equal(t, "++-", v.Rhythm)
	assert.Equal(t, "aa", v.Assonance)
	assert.Equal(t, "alta", v.Consonance)
	assert.Equal(t, "UAa", v.Nuclei)
}

func TestScanNaturalLength(t *testing.T) {
	sc := newTestScanner(t)
	v, err := sc.Scan(context.Background(), "sol gris")
	require.NoError(t, err)

	// Oxytone ending: two syllables count as three.
	assert.Equal(t, []Chain{{"sOl"}, {"gɾIs"}}, v.Syllables)
	assert.Equal(t, 3, v.Count)
	assert.Equal(t, 3, v.Candidates[0])
	assert.Equal(t, AmbiguityNone, v.Ambiguity)
	assert.Equal(t, "++", v.Rhythm)
	assert.Equal(t, "i", v.Assonance)
	assert.Equal(t, "is", v.Consonance)
}

func TestScanHiatus(t *testing.T) {
	sc := newTestScanner(t)
	for _, line := range []string{"piadoso señor", "piadoso señor,"} {
		v, err := sc.Scan(context.Background(), line, WithExpected(7))
		require.NoError(t, err, line)

		assert.Equal(t, 6, v.Estimate, line)
		assert.Equal(t, []int{7, 11}, v.Candidates, line)
		assert.Equal(t, []Chain{{"pi", "a", "dO", "so"}, {"se", "ɲOɾ"}}, v.Syllables, line)
		assert.Equal(t, 7, v.Count, line)
		assert.Equal(t, AmbiguityLicence, v.Ambiguity, line)
		assert.Equal(t, "--+--+", v.Rhythm, line)
		assert.Equal(t, "o", v.Assonance, line)
	}
}

func TestScanDefaultLengths(t *testing.T) {
	sc := newTestScanner(t, WithDefaultLengths(8, 3))
	v, err := sc.Scan(context.Background(), "sol gris")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 8}, v.Candidates)
}

func TestScanCollaboratorErrors(t *testing.T) {
	boom := errors.New("boom")
	sc, err := New(testLines, stubTranscriber{err: boom})
	require.NoError(t, err)
	_, err = sc.Scan(context.Background(), "sol gris")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `transcribe "sol"`)

	sc = newTestScanner(t)
	_, err = sc.Scan(context.Background(), "verso desconocido")
	assert.ErrorContains(t, err, "annotate:")
}

func TestProsody(t *testing.T) {
	sc := newTestScanner(t)
	words, err := sc.Prosody(context.Background(), "piadoso señor", false)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.True(t, words[0].Stressed)
	assert.Equal(t, []Syllable{"pja", "dO", "so"}, words[0].Syllables)
	assert.Equal(t, []Syllable{"se", "ɲOɾ"}, words[1].Syllables)
}

func TestScanAdso(t *testing.T) {
	lines := stubAnnotator{
		"don oh cielo": {tok("don", POSNoun, ""), tok("oh", POSProperNoun, ""), tok("cielo", POSNoun, "")},
	}
	lex := map[string][]string{
		"don":   {"ˈdon"},
		"oh":    {"ˈo"},
		"cielo": {"ˈθje", "lo"},
	}
	sc, err := New(lines, stubTranscriber{words: lex})
	require.NoError(t, err)

	v, err := sc.Scan(context.Background(), "don oh cielo")
	require.NoError(t, err)
	assert.Equal(t, []Chain{{"don"}, {"O"}, {"θjE", "lo"}}, v.Syllables)
	assert.Equal(t, "-++-", v.Rhythm)

	v, err = sc.Scan(context.Background(), "don oh cielo", WithAdso(true))
	require.NoError(t, err)
	assert.Equal(t, []Chain{{"dOn"}, {"O"}, {"θjE", "lo"}}, v.Syllables)
	assert.Equal(t, "+++-", v.Rhythm)
	assert.Equal(t, 4, v.Count)
}

func TestScanMarkerOnlySyllable(t *testing.T) {
	lines := stubAnnotator{"a b": {tok("a", POSNoun, ""), tok("b", POSNoun, "")}}
	lex := map[string][]string{"a": {"ˈ"}, "b": {"ˈa", ""}}
	sc, err := New(lines, stubTranscriber{words: lex})
	require.NoError(t, err)

	var v *Verse
	require.NotPanics(t, func() {
		v, err = sc.Scan(context.Background(), "a b")
	})
	require.NoError(t, err)
	assert.Equal(t, []Chain{{"A"}}, v.Syllables)
	assert.Equal(t, 2, v.Count)

	words, err := sc.Prosody(context.Background(), "a b", false)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "b", words[0].Text)
}

func TestScanAllKeepsOrder(t *testing.T) {
	sc := newTestScanner(t, WithWorkers(2))
	lines := []string{"sol gris", "luna alta", "piadoso señor", "sol gris"}
	verses, err := sc.ScanAll(context.Background(), lines)
	require.NoError(t, err)
	require.Len(t, verses, len(lines))
	for i, v := range verses {
		assert.Equal(t, lines[i], v.Line)
	}
	assert.Equal(t, verses[0].Syllables, verses[3].Syllables)
}

func TestScanAllError(t *testing.T) {
	sc := newTestScanner(t)
	_, err := sc.ScanAll(context.Background(), []string{"sol gris", "verso desconocido"})
	assert.Error(t, err)
}
