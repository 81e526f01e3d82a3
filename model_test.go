package escansion

import (
	"testing"
)

func TestParseFeatures(t *testing.T) {
	f := ParseFeatures("Case=Acc|Person=3|PronType=Prs")
	if got := f.Get("Case"); got != "Acc" {
		t.Errorf("Get(Case) = %q, want Acc", got)
	}
	if got := f.Get("Poss"); got != "No" {
		t.Errorf("Get(Poss) = %q, want No", got)
	}
	if f.Has("Poss") {
		t.Error("Has(Poss) = true for a token without Poss")
	}
	if got := f.Get("Definite"); got != "" {
		t.Errorf("Get(Definite) = %q, want empty", got)
	}
	for _, s := range []string{"", "_"} {
		if n := len(ParseFeatures(s)); n != 0 {
			t.Errorf("ParseFeatures(%q) has %d entries", s, n)
		}
	}
}

func TestWordChainIsCopy(t *testing.T) {
	w := Word{Syllables: []Syllable{"ka", "sa"}}
	c := w.Chain()
	c[0] = "kA"
	if w.Syllables[0] != "ka" {
		t.Errorf("Chain shares storage with the word: %q", w.Syllables[0])
	}
}
