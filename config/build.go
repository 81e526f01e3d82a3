package config

import (
	"fmt"

	"github.com/cours-de-latin/escansion"
	"github.com/cours-de-latin/escansion/annotate"
	"github.com/cours-de-latin/escansion/transcribe"
	"github.com/rs/zerolog/log"
)

// BuildAnnotator returns the Annotator selected by cfg.
func BuildAnnotator(cfg AnnotatorConfig) (escansion.Annotator, error) {
	switch cfg.Kind {
	case AnnotatorCoNLLU:
		tb, err := annotate.LoadTreebank(cfg.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Msgf("treebank %s: %d sentences", cfg.Path, tb.Len())
		return tb, nil
	case AnnotatorHTTP:
		return annotate.NewClient(cfg.URL, cfg.Timeout), nil
	}
	return nil, fmt.Errorf("unknown annotator kind %q", cfg.Kind)
}

// BuildTranscriber returns the Transcriber selected by cfg, wrapped in a
// cache when a cache path is set. The returned function releases the
// cache.
func BuildTranscriber(cfg TranscriberConfig) (escansion.Transcriber, func() error, error) {
	noop := func() error { return nil }
	var t escansion.Transcriber
	switch cfg.Kind {
	case TranscriberLexicon:
		lx, err := transcribe.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Msgf("lexicon %s: %d entries", cfg.LexiconPath, lx.Len())
		t = lx
	case TranscriberHTTP:
		t = transcribe.NewClient(cfg.URL, cfg.Timeout)
	default:
		return nil, noop, fmt.Errorf("unknown transcriber kind %q", cfg.Kind)
	}
	if cfg.CachePath == "" {
		return t, noop, nil
	}
	cache, err := transcribe.OpenCache(cfg.CachePath, t)
	if err != nil {
		return nil, noop, err
	}
	return cache, cache.Close, nil
}

// BuildScanner wires a Scanner from cfg.
func BuildScanner(cfg *Config) (*escansion.Scanner, func() error, error) {
	a, err := BuildAnnotator(cfg.Annotator)
	if err != nil {
		return nil, nil, fmt.Errorf("annotator: %w", err)
	}
	t, closeFn, err := BuildTranscriber(cfg.Transcriber)
	if err != nil {
		return nil, nil, fmt.Errorf("transcriber: %w", err)
	}
	sc, err := escansion.New(a, t,
		escansion.WithDefaultLengths(cfg.Scansion.DefaultLengths...),
		escansion.WithWorkers(cfg.Scansion.Workers),
	)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return sc, closeFn, nil
}
