// Package config loads the YAML configuration shared by the escansion
// server and command-line tool.
package config

import "time"

// LogLevel is a logging threshold name.
type LogLevel string

const (
	LogDebug   LogLevel = "debug"
	LogInfo    LogLevel = "info"
	LogWarn    LogLevel = "warn"
	LogWarning LogLevel = "warning"
	LogError   LogLevel = "error"
)

// IsValid reports whether l names a known level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogWarning, LogError:
		return true
	}
	return false
}

// AnnotatorKind selects the Annotator implementation.
type AnnotatorKind string

const (
	// AnnotatorCoNLLU answers from a CoNLL-U treebank file.
	AnnotatorCoNLLU AnnotatorKind = "conllu"
	// AnnotatorHTTP calls a tagging service.
	AnnotatorHTTP AnnotatorKind = "http"
)

func (k AnnotatorKind) IsValid() bool {
	return k == AnnotatorCoNLLU || k == AnnotatorHTTP
}

// TranscriberKind selects the Transcriber implementation.
type TranscriberKind string

const (
	TranscriberLexicon TranscriberKind = "lexicon"
	TranscriberHTTP    TranscriberKind = "http"
)

func (k TranscriberKind) IsValid() bool {
	return k == TranscriberLexicon || k == TranscriberHTTP
}

// Config is the root configuration.
type Config struct {
	LogLevel    LogLevel          `yaml:"log_level"`
	LogPath     string            `yaml:"log_path"`
	Annotator   AnnotatorConfig   `yaml:"annotator"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Scansion    ScansionConfig    `yaml:"scansion"`
	Server      ServerConfig      `yaml:"server"`
}

type AnnotatorConfig struct {
	Kind AnnotatorKind `yaml:"kind"`
	// URL of the tagging service, for kind "http".
	URL string `yaml:"url"`
	// Path of the treebank, for kind "conllu".
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

type TranscriberConfig struct {
	Kind        TranscriberKind `yaml:"kind"`
	URL         string          `yaml:"url"`
	LexiconPath string          `yaml:"lexicon_path"`
	// CachePath enables the SQLite transcription cache when set.
	CachePath string        `yaml:"cache_path"`
	Timeout   time.Duration `yaml:"timeout"`
}

type ScansionConfig struct {
	Adso           bool  `yaml:"adso"`
	DefaultLengths []int `yaml:"default_lengths"`
	Workers        int   `yaml:"workers"`
}

type ServerConfig struct {
	ListenAddr  string   `yaml:"listen_addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	Metrics     bool     `yaml:"metrics"`
}

const (
	DfltListenAddr = ":8080"
	DfltWorkers    = 4
	DfltTimeout    = 30 * time.Second
)

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = LogInfo
	}
	if c.Annotator.Kind == "" {
		c.Annotator.Kind = AnnotatorHTTP
	}
	if c.Annotator.Timeout == 0 {
		c.Annotator.Timeout = DfltTimeout
	}
	if c.Transcriber.Kind == "" {
		c.Transcriber.Kind = TranscriberHTTP
	}
	if c.Transcriber.Timeout == 0 {
		c.Transcriber.Timeout = DfltTimeout
	}
	if c.Scansion.Workers == 0 {
		c.Scansion.Workers = DfltWorkers
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DfltListenAddr
	}
}
