// Package annotate provides Annotator implementations reading CoNLL-U,
// either from an HTTP tagging service or from a pre-parsed treebank.
package annotate

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cours-de-latin/escansion"
)

// CoNLL-U columns.
const (
	colID = iota
	colForm
	colLemma
	colUPOS
	colXPOS
	colFeats
	colHead
	colDepRel
	colDeps
	colMisc
	numCols
)

// Sentence is one CoNLL-U sentence.
type Sentence struct {
	// Text is the "# text =" comment, if present.
	Text   string
	Tokens []escansion.Token
}

// ReadSentences parses CoNLL-U from r. Multiword token ranges ("1-2")
// become the Parent of the words they cover; empty nodes ("1.1") are
// skipped.
func ReadSentences(r io.Reader) ([]Sentence, error) {
	var (
		out   []Sentence
		cur   Sentence
		mwt   *escansion.Surface
		mwtTo int
	)
	flush := func() {
		if len(cur.Tokens) > 0 || cur.Text != "" {
			out = append(out, cur)
		}
		cur, mwt, mwtTo = Sentence{}, nil, 0
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			flush()
			continue
		case strings.HasPrefix(line, "#"):
			if k, v, ok := strings.Cut(strings.TrimPrefix(line, "#"), "="); ok && strings.TrimSpace(k) == "text" {
				cur.Text = strings.TrimSpace(v)
			}
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != numCols {
			return nil, fmt.Errorf("conllu line %d: want %d columns, got %d", n, numCols, len(cols))
		}
		id := cols[colID]
		if strings.Contains(id, ".") {
			continue
		}
		if from, to, ok := strings.Cut(id, "-"); ok {
			var lo, hi int
			if _, err := fmt.Sscanf(from+" "+to, "%d %d", &lo, &hi); err != nil {
				return nil, fmt.Errorf("conllu line %d: bad range %q", n, id)
			}
			mwt = &escansion.Surface{ID: id, Text: cols[colForm]}
			mwtTo = hi
			continue
		}
		var idx int
		if _, err := fmt.Sscanf(id, "%d", &idx); err != nil {
			return nil, fmt.Errorf("conllu line %d: bad id %q", n, id)
		}
		parent := mwt
		if parent == nil || idx > mwtTo {
			parent = &escansion.Surface{ID: id, Text: cols[colForm]}
			mwt = nil
		}
		cur.Tokens = append(cur.Tokens, escansion.Token{
			Text:   cols[colForm],
			POS:    escansion.PartOfSpeech(cols[colUPOS]),
			Feats:  escansion.ParseFeatures(cols[colFeats]),
			DepRel: cols[colDepRel],
			Parent: parent,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read conllu: %w", err)
	}
	flush()
	return out, nil
}

// ParseCoNLLU returns the tokens of every sentence of r in order.
func ParseCoNLLU(r io.Reader) ([]escansion.Token, error) {
	sents, err := ReadSentences(r)
	if err != nil {
		return nil, err
	}
	var tokens []escansion.Token
	for _, s := range sents {
		tokens = append(tokens, s.Tokens...)
	}
	return tokens, nil
}
