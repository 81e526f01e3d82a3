package escansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"¿Quién eres tú?", "Quién eres tú,"},
		{"«Para, amigo»", "Ppara, amigo"},
		{"él—dijo", "él, dijo"},
		{"uno...dos", "uno,dos"},
		{"canción", "canción"},
		{"[la] luna", "la luna"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanLine(tt.in), "CleanLine(%q)", tt.in)
	}
}

func TestNormalizeTokensDropsPunctuation(t *testing.T) {
	got := NormalizeTokens([]Token{
		{Text: "xx", POS: POSOther},
		{Text: "casa", POS: POSNoun},
		{Text: ",", POS: POSPunctuation},
		{Text: ".", POS: POSPunctuation},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "casa", got[0].Text)

	assert.Nil(t, NormalizeTokens([]Token{{Text: ".", POS: POSPunctuation}}))
}

func TestNormalizeTokensRetagsFinalPunctuation(t *testing.T) {
	got := NormalizeTokens([]Token{
		{Text: "oh", POS: POSInterjection},
		{Text: "ay", POS: POSPunctuation},
	})
	require.Len(t, got, 2)
	assert.Equal(t, POSAdjective, got[1].POS)
}

func TestNormalizeTokensMultiword(t *testing.T) {
	del := &Surface{ID: "2-3", Text: "del"}
	got := NormalizeTokens([]Token{
		{Text: "vengo", POS: POSVerb},
		{Text: "de", POS: POSAdposition, Parent: del},
		{Text: "el", POS: POSDeterminer, Parent: del},
		{Text: "campo", POS: POSNoun},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "del", got[1].Text)
	assert.Equal(t, POSAdposition, got[1].POS)
	assert.Equal(t, "campo", got[2].Text)
}

func TestNormalizeTokensFinalPair(t *testing.T) {
	dame := &Surface{ID: "2-3", Text: "dámelo"}
	got := NormalizeTokens([]Token{
		{Text: "ven", POS: POSVerb},
		{Text: "dá", POS: POSVerb, Parent: dame},
		{Text: "melo", POS: POSPronoun, Parent: dame},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "dámelo", got[1].Text)
	assert.Equal(t, POSVerb, got[1].POS)
}

func TestExceptionLevel(t *testing.T) {
	assert.Equal(t, 2, exceptionLevel("pingüino"))
	assert.Equal(t, 1, exceptionLevel("pinguino"))
}
