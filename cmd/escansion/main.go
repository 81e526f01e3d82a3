// Command escansion scans Spanish verse from the command line and
// measures accuracy against metrically annotated TEI corpora.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/cours-de-latin/escansion"
	"github.com/cours-de-latin/escansion/config"
	"github.com/cours-de-latin/escansion/corpus"
	"github.com/cours-de-latin/escansion/logging"
)

const version = "1.0.0"

// CLI defines the command-line interface.
var CLI struct {
	config.Flags `embed:""`

	Scan    ScanCmd    `cmd:"" help:"Scan lines given as arguments or read from stdin"`
	Compare CompareCmd `cmd:"" help:"Compare scanned rhythms with TEI met annotations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// setup loads the configuration, configures logging and builds the
// scanner.
func setup() (*config.Config, *escansion.Scanner, func(), error) {
	cfg, err := CLI.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logCloser, err := logging.Setup(cfg.LogPath, string(cfg.LogLevel))
	if err != nil {
		return nil, nil, nil, err
	}
	sc, closeScanner, err := config.BuildScanner(cfg)
	if err != nil {
		logCloser.Close()
		return nil, nil, nil, err
	}
	cleanup := func() {
		if err := closeScanner(); err != nil {
			log.Warn().Err(err).Msg("close transcriber")
		}
		logCloser.Close()
	}
	return cfg, sc, cleanup, nil
}

// ScanCmd scans individual lines.
type ScanCmd struct {
	Lines    []string `arg:"" optional:"" help:"Lines to scan; stdin when omitted"`
	Expected []int    `short:"e" help:"Expected lengths, most likely first"`
	Adso     bool     `help:"Do not stress oh/ay unconditionally"`
	JSON     bool     `name:"json" help:"Print one JSON object per line"`
}

func (cmd *ScanCmd) Run() error {
	cfg, sc, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	lines := cmd.Lines
	if len(lines) == 0 {
		if lines, err = readLines(os.Stdin); err != nil {
			return err
		}
	}
	verses, err := sc.ScanAll(context.Background(), lines,
		escansion.WithExpected(cmd.Expected...),
		escansion.WithAdso(cmd.Adso || cfg.Scansion.Adso))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	for _, v := range verses {
		if cmd.JSON {
			if err := enc.Encode(v); err != nil {
				return err
			}
			continue
		}
		printVerse(os.Stdout, v)
	}
	return nil
}

func printVerse(w io.Writer, v *escansion.Verse) {
	chains := make([]string, len(v.Syllables))
	for i, c := range v.Syllables {
		chains[i] = strings.Join(strings.Fields(c.String()), "-")
	}
	mark := ""
	if !v.Resolved {
		mark = " ?"
	}
	fmt.Fprintf(w, "%s\n\t%s\n\t%d%s amb=%d %s /%s/ %s\n",
		v.Line, strings.Join(chains, " "), v.Count, mark, v.Ambiguity, v.Rhythm, v.Assonance, v.Consonance)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// CompareCmd runs a corpus comparison.
type CompareCmd struct {
	Files   []string `arg:"" help:"TEI files with <l met=\"...\"> lines" type:"existingfile"`
	Hints   []int    `help:"Lengths suggested for every line" default:"11,7,10,12"`
	Adso    bool     `help:"Do not stress oh/ay unconditionally"`
	Workers int      `short:"w" help:"Lines scanned at once" default:"4"`
	Misses  string   `help:"Write missed lines as TEI <l> elements to this file" type:"path"`
}

func (cmd *CompareCmd) Run() error {
	cfg, sc, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	lines, err := corpus.LoadTEI(cmd.Files...)
	if err != nil {
		return err
	}
	rep, err := corpus.Compare(context.Background(), sc, lines, corpus.Options{
		Hints:   cmd.Hints,
		Adso:    cmd.Adso || cfg.Scansion.Adso,
		Workers: cmd.Workers,
	})
	if err != nil {
		return err
	}
	for _, m := range rep.Misses {
		fmt.Printf("%q | o: %q | i: %q (distance %d)\n", m.Line.Text, m.Line.Met, m.Got, m.Distance)
	}
	fmt.Printf("report %s\nV: %d\tA: %d (%.2f %%), F: %d (%.2f %%)\n",
		rep.ID, rep.Total, rep.Hits, rep.Accuracy()*100,
		len(rep.Misses), (1-rep.Accuracy())*100)

	if cmd.Misses == "" {
		return nil
	}
	f, err := os.Create(cmd.Misses)
	if err != nil {
		return err
	}
	if err := rep.WriteMisses(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (cmd *VersionCmd) Run() error {
	fmt.Printf("escansion %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("escansion"),
		kong.Description("Metrical scansion of Spanish verse"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
