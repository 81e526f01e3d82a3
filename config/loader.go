package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// Config with defaults applied.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and
// validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg, err := decode(r)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	switch {
	case !cfg.Annotator.Kind.IsValid():
		errs = append(errs, fmt.Errorf("annotator.kind %q is invalid; valid values: conllu, http", cfg.Annotator.Kind))
	case cfg.Annotator.Kind == AnnotatorHTTP && cfg.Annotator.URL == "":
		errs = append(errs, errors.New("annotator.url is required when kind is http"))
	case cfg.Annotator.Kind == AnnotatorCoNLLU && cfg.Annotator.Path == "":
		errs = append(errs, errors.New("annotator.path is required when kind is conllu"))
	}

	switch {
	case !cfg.Transcriber.Kind.IsValid():
		errs = append(errs, fmt.Errorf("transcriber.kind %q is invalid; valid values: lexicon, http", cfg.Transcriber.Kind))
	case cfg.Transcriber.Kind == TranscriberHTTP && cfg.Transcriber.URL == "":
		errs = append(errs, errors.New("transcriber.url is required when kind is http"))
	case cfg.Transcriber.Kind == TranscriberLexicon && cfg.Transcriber.LexiconPath == "":
		errs = append(errs, errors.New("transcriber.lexicon_path is required when kind is lexicon"))
	}

	for i, n := range cfg.Scansion.DefaultLengths {
		if n < 1 {
			errs = append(errs, fmt.Errorf("scansion.default_lengths[%d] %d must be positive", i, n))
		}
	}
	if cfg.Scansion.Workers < 0 {
		errs = append(errs, fmt.Errorf("scansion.workers %d must not be negative", cfg.Scansion.Workers))
	}

	return errors.Join(errs...)
}
