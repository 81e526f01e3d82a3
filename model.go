package escansion

import (
	"strings"
)

// Features holds the morphological features of a token, keyed by UD
// feature name (PronType, Poss, Definite, Case, ...).
type Features map[string]string

// ParseFeatures parses a UD FEATS column such as "Case=Acc|Person=3".
// Both "" and "_" yield an empty set.
func ParseFeatures(s string) Features {
	f := make(Features)
	if s == "" || s == "_" {
		return f
	}
	for _, element := range strings.Split(s, "|") {
		key, value, ok := strings.Cut(element, "=")
		if !ok {
			continue
		}
		f[key] = value
	}
	return f
}

// Get returns the value of key. Missing keys yield "", except Poss
// which defaults to "No".
func (f Features) Get(key string) string {
	if v, ok := f[key]; ok {
		return v
	}
	if key == "Poss" {
		return "No"
	}
	return ""
}

// Has reports whether key was set by the annotator.
func (f Features) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Surface is a token as written in the line. Contractions split by the
// annotator ("del" -> "de" + "el") produce several words sharing one
// Surface.
type Surface struct {
	ID   string
	Text string
}

// Token is one word as returned by the annotator.
type Token struct {
	Text   string
	POS    PartOfSpeech
	Feats  Features
	DepRel string
	// Parent is the surface token this word belongs to. It may be nil.
	Parent *Surface
}

func (t Token) parentText() string {
	if t.Parent == nil {
		return t.Text
	}
	return t.Parent.Text
}

// Word is a normalized token with its phonetic syllables.
type Word struct {
	Text      string
	POS       PartOfSpeech
	Feats     Features
	DepRel    string
	Syllables []Syllable
	// Stressed is set by the stress assigner.
	Stressed bool
}

// Chain returns a copy of the word's syllables.
func (w *Word) Chain() Chain {
	return append(Chain(nil), w.Syllables...)
}

// TranscribeOptions are passed to the transcriber for every word.
type TranscribeOptions struct {
	// Monosyllables asks for a stress mark on monosyllables as well.
	Monosyllables bool
	// Epenthesis inserts epenthetic phonemes where required.
	Epenthesis bool
	// Aspiration marks aspirated word onsets with ʰ.
	Aspiration bool
	// StressMarker is the glyph prefixed to the stressed syllable.
	StressMarker string
	// Exceptions selects the exception level; 2 enables strict
	// diaeresis handling.
	Exceptions int
}
