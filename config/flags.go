package config

import (
	"fmt"
	"os"
)

// Flags are the command-line settings shared by the binaries. They
// override the configuration file, which is optional.
type Flags struct {
	Config         string `short:"c" help:"YAML configuration file" type:"path"`
	LogLevel       string `name:"log-level" help:"debug, info, warn or error"`
	LogPath        string `name:"log-path" help:"Log file; stderr when empty"`
	AnnotatorURL   string `name:"annotator-url" help:"Tagging service URL"`
	Treebank       string `help:"CoNLL-U treebank used instead of a tagging service" type:"path"`
	TranscriberURL string `name:"transcriber-url" help:"Transcription service URL"`
	Lexicon        string `help:"Syllabified lexicon used instead of a transcription service" type:"path"`
	Cache          string `help:"SQLite transcription cache" type:"path"`
}

// Load reads the configuration file, if any, applies the flags and the
// defaults, and validates the result.
func (f Flags) Load() (*Config, error) {
	cfg := &Config{}
	if f.Config != "" {
		fh, err := os.Open(f.Config)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", f.Config, err)
		}
		defer fh.Close()
		if cfg, err = decode(fh); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", f.Config, err)
		}
	}
	f.apply(cfg)
	cfg.ApplyDefaults()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f Flags) apply(cfg *Config) {
	if f.LogLevel != "" {
		cfg.LogLevel = LogLevel(f.LogLevel)
	}
	if f.LogPath != "" {
		cfg.LogPath = f.LogPath
	}
	switch {
	case f.Treebank != "":
		cfg.Annotator.Kind, cfg.Annotator.Path = AnnotatorCoNLLU, f.Treebank
	case f.AnnotatorURL != "":
		cfg.Annotator.Kind, cfg.Annotator.URL = AnnotatorHTTP, f.AnnotatorURL
	}
	switch {
	case f.Lexicon != "":
		cfg.Transcriber.Kind, cfg.Transcriber.LexiconPath = TranscriberLexicon, f.Lexicon
	case f.TranscriberURL != "":
		cfg.Transcriber.Kind, cfg.Transcriber.URL = TranscriberHTTP, f.TranscriberURL
	}
	if f.Cache != "" {
		cfg.Transcriber.CachePath = f.Cache
	}
}
