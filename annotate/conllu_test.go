package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/escansion"
)

func row(cols ...string) string {
	return strings.Join(cols, "\t")
}

var sample = strings.Join([]string{
	"# sent_id = 1",
	"# text = Vengo del campo",
	row("1", "Vengo", "venir", "VERB", "_", "Mood=Ind|Number=Sing|Person=1", "0", "root", "_", "_"),
	row("2-3", "del", "_", "_", "_", "_", "_", "_", "_", "_"),
	row("2", "de", "de", "ADP", "_", "_", "4", "case", "_", "_"),
	row("3", "el", "el", "DET", "_", "Definite=Def|PronType=Art", "4", "det", "_", "_"),
	row("4", "campo", "campo", "NOUN", "_", "Gender=Masc|Number=Sing", "1", "obl", "_", "_"),
	row("4.1", "x", "x", "X", "_", "_", "_", "_", "_", "_"),
	"",
	row("1", "Sol", "sol", "NOUN", "_", "_", "0", "root", "_", "_"),
	row("2", "gris", "gris", "ADJ", "_", "_", "1", "amod", "_", "_"),
	"",
}, "\n")

func TestReadSentences(t *testing.T) {
	sents, err := ReadSentences(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, sents, 2)

	first := sents[0]
	assert.Equal(t, "Vengo del campo", first.Text)
	require.Len(t, first.Tokens, 4)

	de, el := first.Tokens[1], first.Tokens[2]
	assert.Equal(t, escansion.POSAdposition, de.POS)
	assert.Same(t, de.Parent, el.Parent)
	assert.Equal(t, "del", de.Parent.Text)
	assert.Equal(t, "Def", el.Feats.Get("Definite"))
	assert.Equal(t, "det", el.DepRel)

	campo := first.Tokens[3]
	assert.Equal(t, "campo", campo.Parent.Text)
	assert.NotSame(t, el.Parent, campo.Parent)

	assert.Empty(t, sents[1].Text)
	assert.Len(t, sents[1].Tokens, 2)
}

func TestReadSentencesErrors(t *testing.T) {
	_, err := ReadSentences(strings.NewReader("1\tonly\tthree\n"))
	assert.ErrorContains(t, err, "want 10 columns")

	_, err = ReadSentences(strings.NewReader(row("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")))
	assert.ErrorContains(t, err, "bad id")
}

func TestParseCoNLLU(t *testing.T) {
	tokens, err := ParseCoNLLU(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Len(t, tokens, 6)

	words := escansion.NormalizeTokens(tokens[:4])
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	assert.Equal(t, []string{"Vengo", "del", "campo"}, texts)
}
