// Command server exposes the scanner as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/scan?line=<text>[&expected=11,7][&adso=true]
//	POST /api/scan/batch   body: {"lines":[...],"expected":[...],"adso":false}
//	GET  /api/prosody?line=<text>[&adso=true]
//	GET  /metrics          (when enabled)
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/cours-de-latin/escansion"
	"github.com/cours-de-latin/escansion/config"
	"github.com/cours-de-latin/escansion/logging"
	"github.com/cours-de-latin/escansion/metrics"
)

// maxBatch bounds the lines accepted by one batch request.
const maxBatch = 1000

// ---- JSON request and response types ------------------------------------

type batchRequest struct {
	Lines    []string `json:"lines"`
	Expected []int    `json:"expected"`
	// Adso falls back to the server default when absent.
	Adso     *bool    `json:"adso"`
}

type batchResponse struct {
	Verses []*escansion.Verse `json:"verses"`
}

type wordJSON struct {
	Text      string   `json:"text"`
	POS       string   `json:"pos"`
	Stressed  bool     `json:"stressed"`
	Syllables []string `json:"syllables"`
}

type prosodyResponse struct {
	Line  string     `json:"line"`
	Words []wordJSON `json:"words"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ---- helpers ------------------------------------------------------------

type ctxKey int

const requestIDKey ctxKey = iota

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// withRequestID tags every request with an ID, echoed in the
// X-Request-ID header and in error logs.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode error")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: requestID(r)})
}

// parseExpected parses a comma-separated list of lengths.
func parseExpected(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid length %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func scanFailed(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("request_id", requestID(r)).Msg("scan failed")
	status := http.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		status = http.StatusGatewayTimeout
	}
	writeError(w, r, status, err.Error())
}

// ---- handlers -----------------------------------------------------------

type server struct {
	sc      *escansion.Scanner
	metrics *metrics.Metrics
	// adso is the default when a request does not say.
	adso bool
}

func (s *server) adsoParam(r *http.Request) bool {
	v := r.URL.Query().Get("adso")
	if v == "" {
		return s.adso
	}
	adso, _ := strconv.ParseBool(v)
	return adso
}

func (s *server) record(ctx context.Context, v *escansion.Verse, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordScan(ctx, v, time.Since(start), err)
	}
}

func (s *server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	q := r.URL.Query()
	line := q.Get("line")
	if line == "" {
		writeError(w, r, http.StatusBadRequest, "missing 'line' query parameter")
		return
	}
	expected, err := parseExpected(q.Get("expected"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	adso := s.adsoParam(r)

	start := time.Now()
	v, err := s.sc.Scan(r.Context(), line, escansion.WithExpected(expected...), escansion.WithAdso(adso))
	s.record(r.Context(), v, start, err)
	if err != nil {
		scanFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Lines) == 0 {
		writeError(w, r, http.StatusBadRequest, "body must be JSON with a non-empty 'lines' field")
		return
	}
	if len(body.Lines) > maxBatch {
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d lines per request", maxBatch))
		return
	}

	adso := s.adso
	if body.Adso != nil {
		adso = *body.Adso
	}
	start := time.Now()
	verses, err := s.sc.ScanAll(r.Context(), body.Lines,
		escansion.WithExpected(body.Expected...), escansion.WithAdso(adso))
	if err != nil {
		s.record(r.Context(), nil, start, err)
		scanFailed(w, r, err)
		return
	}
	for _, v := range verses {
		s.record(r.Context(), v, start, nil)
	}
	writeJSON(w, http.StatusOK, batchResponse{Verses: verses})
}

func (s *server) handleProsody(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	line := r.URL.Query().Get("line")
	if line == "" {
		writeError(w, r, http.StatusBadRequest, "missing 'line' query parameter")
		return
	}
	words, err := s.sc.Prosody(r.Context(), line, s.adsoParam(r))
	if err != nil {
		scanFailed(w, r, err)
		return
	}
	out := prosodyResponse{Line: line, Words: make([]wordJSON, 0, len(words))}
	for _, wd := range words {
		syls := make([]string, len(wd.Syllables))
		for i, sy := range wd.Syllables {
			syls[i] = string(sy)
		}
		out.Words = append(out.Words, wordJSON{
			Text:      wd.Text,
			POS:       string(wd.POS),
			Stressed:  wd.Stressed,
			Syllables: syls,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- main ---------------------------------------------------------------

var cli struct {
	config.Flags `embed:""`

	Addr    string `help:"Listen address (overrides server.listen_addr)"`
	Metrics bool   `help:"Serve Prometheus metrics on /metrics"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("escansion-server"),
		kong.Description("JSON API for Spanish verse scansion"),
		kong.UsageOnError(),
	)
	cfg, err := cli.Load()
	kctx.FatalIfErrorf(err)
	if cli.Addr != "" {
		cfg.Server.ListenAddr = cli.Addr
	}
	if cli.Metrics {
		cfg.Server.Metrics = true
	}
	logCloser, err := logging.Setup(cfg.LogPath, string(cfg.LogLevel))
	kctx.FatalIfErrorf(err)
	defer logCloser.Close()

	sc, closeScanner, err := config.BuildScanner(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build scanner")
	}
	defer closeScanner()

	srv := &server{sc: sc, adso: cfg.Scansion.Adso}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan/batch", srv.handleBatch)
	mux.HandleFunc("/api/scan", srv.handleScan)
	mux.HandleFunc("/api/prosody", srv.handleProsody)

	if cfg.Server.Metrics {
		mp, shutdown, err := metrics.InitProvider()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize metrics")
		}
		defer shutdown(context.Background())
		srv.metrics, err = metrics.NewMetrics(mp)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create metrics")
		}
		mux.Handle("/metrics", metrics.Handler())
	}

	var handler http.Handler = mux
	if srv.metrics != nil {
		handler = srv.metrics.Middleware(handler)
	}
	handler = withRequestID(handler)
	if len(cfg.Server.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: cfg.Server.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		}).Handler(handler)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Msgf("listening on %s", cfg.Server.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
