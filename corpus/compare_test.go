package corpus

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/escansion"
)

type stubScanner struct {
	mu      sync.Mutex
	rhythms map[string]string
	err     error
	scanned int
}

func (s *stubScanner) Scan(_ context.Context, line string, _ ...escansion.ScanOption) (*escansion.Verse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	s.scanned++
	s.mu.Unlock()
	return &escansion.Verse{Line: line, Rhythm: s.rhythms[line]}, nil
}

func TestCompare(t *testing.T) {
	sc := &stubScanner{rhythms: map[string]string{
		"uno":  "-+---+---+-",
		"dos":  "-+---+---+-+",
		"tres": "--+--+",
	}}
	lines := []Line{
		{N: "1", Met: "-+---+---+-", Text: "uno"},
		{N: "2", Met: "-+---+---+-", Text: "dos"},
		{N: "3", Met: "-+---+-", Text: "tres"},
		{N: "4", Text: "sin met"},
	}
	rep, err := Compare(context.Background(), sc, lines, Options{Workers: 2})
	require.NoError(t, err)

	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, 3, rep.Total)
	assert.Equal(t, 2, rep.Hits)
	require.Len(t, rep.Misses, 1)
	assert.Equal(t, "tres", rep.Misses[0].Line.Text)
	assert.Equal(t, "--+--+", rep.Misses[0].Got)
	assert.Equal(t, 3, rep.Misses[0].Distance)
	assert.InDelta(t, 2.0/3, rep.Accuracy(), 1e-9)
	assert.Equal(t, 3, sc.scanned)
}

func TestCompareError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Compare(context.Background(), &stubScanner{err: boom}, []Line{{Met: "+-", Text: "x"}}, Options{})
	assert.ErrorIs(t, err, boom)
}

func TestAccuracyEmpty(t *testing.T) {
	assert.Zero(t, (&Report{}).Accuracy())
}

func TestWriteMisses(t *testing.T) {
	rep := &Report{Misses: []Miss{
		{Line: Line{N: "7", Met: "-+-", Text: "pan & vino"}},
		{Line: Line{Met: "+-", Text: "sol <gris>"}},
	}}
	var buf bytes.Buffer
	require.NoError(t, rep.WriteMisses(&buf))
	assert.Equal(t,
		"<l n=\"7\" met=\"-+-\">pan &amp; vino</l>\n<l n=\"1\" met=\"+-\">sol &lt;gris&gt;</l>\n",
		buf.String())

	lines, err := ReadTEI(bytes.NewReader(append(append([]byte("<lg>"), buf.Bytes()...), "</lg>"...)))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "sol <gris>", lines[1].Text)
}
