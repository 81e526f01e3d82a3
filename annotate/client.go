package annotate

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

// Client calls a tagging service that answers with CoNLL-U.
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

type annotateReq struct {
	Text string `json:"text"`
}

type annotateResp struct {
	CoNLLU string `json:"conllu"`
}

// Annotate posts line to {url}/annotate and parses the CoNLL-U reply.
func (c *Client) Annotate(ctx context.Context, line string) ([]escansion.Token, error) {
	payload, err := json.Marshal(annotateReq{Text: line})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/annotate", bytes.NewReader(payload))
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
	var out annotateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return ParseCoNLLU(strings.NewReader(out.CoNLLU))
}
