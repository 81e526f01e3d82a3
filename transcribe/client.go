package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cours-de-latin/escansion"
)

// Client calls a transcription service over HTTP.
type Client struct {
	url string
	c   *http.Client
}

// NewClient returns a Client for the service at url.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{url: strings.TrimRight(url, "/"), c: &http.Client{Timeout: timeout}}
}

type transcribeReq struct {
	Word       string `json:"word"`
	Mono       bool   `json:"mono"`
	Epenthesis bool   `json:"epenthesis"`
	Aspiration bool   `json:"aspiration"`
	Stress     string `json:"stress"`
	Exceptions int    `json:"exceptions"`
}

type transcribeResp struct {
	Syllables []string `json:"syllables"`
}

// Transcribe posts word to {url}/transcribe.
func (c *Client) Transcribe(ctx context.Context, word string, opts escansion.TranscribeOptions) ([]string, error) {
	payload, err := json.Marshal(transcribeReq{
		Word:       word,
		Mono:       opts.Monosyllables,
		Epenthesis: opts.Epenthesis,
		Aspiration: opts.Aspiration,
		Stress:     opts.StressMarker,
		Exceptions: opts.Exceptions,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/transcribe", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", c.url, resp.Status)
	}
	var out transcribeResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Syllables, nil
}
