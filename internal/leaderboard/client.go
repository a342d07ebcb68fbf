// Package leaderboard is a best-effort HTTP client for a remote score
// board. Every call is fire-and-forget from the platform's point of view:
// network failures are logged and swallowed, never propagated into a run.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Entry is one remote leaderboard row.
type Entry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Mode   string `json:"mode"`
	Score  int    `json:"score"`
	Level  int    `json:"level"`
	Combo  int    `json:"combo"`
}

// Client talks to a Skyfall leaderboard service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL. An empty URL yields a
// disabled client whose calls all no-op.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Enabled reports whether a remote board is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Submit posts a finished run. Returns true only when the service accepted
// it; any failure is logged and reported as false.
func (c *Client) Submit(ctx context.Context, e Entry) bool {
	if !c.Enabled() {
		return false
	}

	body, err := json.Marshal(e)
	if err != nil {
		log.Warn("leaderboard: cannot encode entry", "err", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		log.Warn("leaderboard: bad request", "err", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("leaderboard: submit failed", "err", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("leaderboard: submit rejected", "status", resp.StatusCode)
		return false
	}
	return true
}

// FetchTop retrieves the top entries for a mode. Failures are logged and an
// empty slice returned so callers can render "no data" without branching.
func (c *Client) FetchTop(ctx context.Context, mode string, limit int) []Entry {
	if !c.Enabled() {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	url := fmt.Sprintf("%s/scores?mode=%s&limit=%d", c.baseURL, mode, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Warn("leaderboard: bad request", "err", err)
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("leaderboard: fetch failed", "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("leaderboard: fetch rejected", "status", resp.StatusCode)
		return nil
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		log.Warn("leaderboard: cannot decode response", "err", err)
		return nil
	}
	return entries
}
