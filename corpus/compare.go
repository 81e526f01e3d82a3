package corpus

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/antzucaro/matchr"
	"github.com/cours-de-latin/escansion"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CompareHints are the lengths suggested to the scanner for every line;
// the annotated corpora are mostly hendecasyllabic with heptasyllables.
var CompareHints = []int{11, 7, 10, 12}

// Scanner is the part of escansion.Scanner used by Compare.
type Scanner interface {
	Scan(ctx context.Context, line string, opts ...escansion.ScanOption) (*escansion.Verse, error)
}

// Options configure Compare.
type Options struct {
	Hints   []int
	Adso    bool
	Workers int
}

// Miss is a line whose scanned rhythm differs from the annotation.
type Miss struct {
	Line      Line              `json:"line"`
	Got       string            `json:"got"`
	Syllables []escansion.Chain `json:"syllables"`
	// Distance is the edit distance between both rhythms.
	Distance int `json:"distance"`
}

// Report summarizes a comparison run.
type Report struct {
	ID     string `json:"id"`
	Total  int    `json:"total"`
	Hits   int    `json:"hits"`
	Misses []Miss `json:"misses"`
}

// Accuracy returns the share of lines scanned as annotated.
func (r *Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Total)
}

// Compare scans every annotated line and checks its rhythm against the
// met attribute. Lines without one are skipped.
func Compare(ctx context.Context, sc Scanner, lines []Line, opts Options) (*Report, error) {
	hints := opts.Hints
	if len(hints) == 0 {
		hints = CompareHints
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	annotated := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Met != "" {
			annotated = append(annotated, l)
		}
	}
	rhythms := make([]*escansion.Verse, len(annotated))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, l := range annotated {
		g.Go(func() error {
			v, err := sc.Scan(gctx, l.Text, escansion.WithExpected(hints...), escansion.WithAdso(opts.Adso))
			if err != nil {
				return fmt.Errorf("scan %q: %w", l.Text, err)
			}
			rhythms[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{ID: uuid.NewString(), Total: len(annotated)}
	for i, l := range annotated {
		got := comparableRhythm(rhythms[i].Rhythm, l.Met)
		if got == l.Met {
			rep.Hits++
			continue
		}
		rep.Misses = append(rep.Misses, Miss{
			Line:      l,
			Got:       rhythms[i].Rhythm,
			Syllables: rhythms[i].Syllables,
			Distance:  matchr.Levenshtein(got, l.Met),
		})
	}
	return rep, nil
}

// comparableRhythm drops the extra final position of an oxytone
// hendecasyllable, which annotators do not count.
func comparableRhythm(rhythm, met string) string {
	if len(met) == 11 && len(rhythm) > len(met) {
		return rhythm[:len(rhythm)-1]
	}
	return rhythm
}

// WriteMisses writes the missed lines as TEI <l> elements so that they
// can be fed back to Compare.
func (r *Report) WriteMisses(w io.Writer) error {
	for _, m := range r.Misses {
		if _, err := fmt.Fprintf(w, "<l n=%q met=%q>", nonEmpty(m.Line.N, "1"), m.Line.Met); err != nil {
			return err
		}
		if err := xml.EscapeText(w, []byte(m.Line.Text)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</l>\n"); err != nil {
			return err
		}
	}
	return nil
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
