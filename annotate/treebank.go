package annotate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cours-de-latin/escansion"
)

// ErrUnknownSentence is returned by Treebank.Annotate for a line the
// treebank does not contain.
var ErrUnknownSentence = errors.New("sentence not in treebank")

// Treebank answers from pre-annotated sentences keyed by their
// "# text =" comment.
type Treebank struct {
	sentences map[string][]escansion.Token
}

// LoadTreebank reads a CoNLL-U file.
func LoadTreebank(path string) (*Treebank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open treebank: %w", err)
	}
	defer f.Close()
	return ReadTreebank(f)
}

// ReadTreebank reads CoNLL-U sentences from r. Sentences without a text
// comment are keyed by their space-joined forms.
func ReadTreebank(r io.Reader) (*Treebank, error) {
	sents, err := ReadSentences(r)
	if err != nil {
		return nil, err
	}
	tb := &Treebank{sentences: make(map[string][]escansion.Token, len(sents))}
	for _, s := range sents {
		text := s.Text
		if text == "" {
			forms := make([]string, len(s.Tokens))
			for i, t := range s.Tokens {
				forms[i] = t.Text
			}
			text = strings.Join(forms, " ")
		}
		tb.sentences[treebankKey(text)] = s.Tokens
	}
	return tb, nil
}

// Len returns the number of sentences.
func (tb *Treebank) Len() int {
	return len(tb.sentences)
}

// Annotate returns the stored tokens for line.
func (tb *Treebank) Annotate(_ context.Context, line string) ([]escansion.Token, error) {
	tokens, ok := tb.sentences[treebankKey(line)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSentence, line)
	}
	return append([]escansion.Token(nil), tokens...), nil
}

func treebankKey(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
