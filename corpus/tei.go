// Package corpus reads metrically annotated TEI verse and measures how
// well a scanner reproduces the annotated rhythm.
package corpus

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Line is a TEI <l> element.
type Line struct {
	// N is the line number attribute, if any.
	N string `json:"n,omitempty"`
	// Met is the annotated rhythm, one '+' or '-' per position.
	Met  string `json:"met"`
	Text string `json:"text"`
}

// ReadTEI returns every <l> element of the document in r, in document
// order. Lines without a met attribute are kept with an empty Met.
func ReadTEI(r io.Reader) ([]Line, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse TEI: %w", err)
	}
	nodes, err := xmlquery.QueryAll(doc, "//*[local-name()='l']")
	if err != nil {
		return nil, fmt.Errorf("query TEI: %w", err)
	}
	lines := make([]Line, 0, len(nodes))
	for _, n := range nodes {
		text := strings.Join(strings.Fields(n.InnerText()), " ")
		if text == "" {
			continue
		}
		lines = append(lines, Line{
			N:    n.SelectAttr("n"),
			Met:  n.SelectAttr("met"),
			Text: text,
		})
	}
	return lines, nil
}

// LoadTEI reads the lines of every file in paths.
func LoadTEI(paths ...string) ([]Line, error) {
	var all []Line
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		lines, err := ReadTEI(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		all = append(all, lines...)
	}
	return all, nil
}
