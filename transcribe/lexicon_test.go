package transcribe

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/escansion"
)

const lexiconData = `! test lexicon
luna	ˈlu na
hoja	ˈʰo xa
sol	ˈsol
pingüino	2	pin ˈgwi no
pingüino	piŋ ˈgi no
`

var defaultOpts = escansion.TranscribeOptions{
	Monosyllables: true,
	Aspiration:    true,
	StressMarker:  escansion.DefaultStressMarker,
	Exceptions:    1,
}

func TestReadLexicon(t *testing.T) {
	lx, err := ReadLexicon(strings.NewReader(lexiconData))
	require.NoError(t, err)
	assert.Equal(t, 5, lx.Len())

	ctx := context.Background()
	got, err := lx.Transcribe(ctx, "Luna", defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, []string{"ˈlu", "na"}, got)

	strict := defaultOpts
	strict.Exceptions = 2
	got, err = lx.Transcribe(ctx, "pingüino", strict)
	require.NoError(t, err)
	assert.Equal(t, []string{"pin", "ˈgwi", "no"}, got)

	got, err = lx.Transcribe(ctx, "luna", strict)
	require.NoError(t, err)
	assert.Equal(t, []string{"ˈlu", "na"}, got)

	_, err = lx.Transcribe(ctx, "estrella", defaultOpts)
	assert.ErrorIs(t, err, ErrUnknownWord)
}

func TestReadLexiconErrors(t *testing.T) {
	_, err := ReadLexicon(strings.NewReader("luna\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = ReadLexicon(strings.NewReader("luna\tx\tˈlu na\n"))
	assert.ErrorContains(t, err, "bad exception level")
}

func TestLexiconOptions(t *testing.T) {
	lx, err := ReadLexicon(strings.NewReader(lexiconData))
	require.NoError(t, err)
	ctx := context.Background()

	opts := defaultOpts
	opts.Aspiration = false
	got, err := lx.Transcribe(ctx, "hoja", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"ˈo", "xa"}, got)

	opts = defaultOpts
	opts.Monosyllables = false
	got, err = lx.Transcribe(ctx, "sol", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"sol"}, got)

	opts = defaultOpts
	opts.StressMarker = "'"
	got, err = lx.Transcribe(ctx, "hoja", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"'ʰo", "xa"}, got)
}

func TestLoadLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.tsv")
	require.NoError(t, os.WriteFile(path, []byte(lexiconData), 0o644))
	lx, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, 5, lx.Len())
}
