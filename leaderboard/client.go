package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

var ErrStatus = errors.New("leaderboard: unexpected status")

// Client talks to the remote scoring endpoint
// POST {base}/users with {name, score}; GET {base}/users for the list
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Submit registers one entry
func (c *Client) Submit(ctx context.Context, e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/users", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	return nil
}

// Fetch returns the remote ranking sorted by score descending
func (c *Client) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/users", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch scores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, err
	}
	Sort(entries)
	return entries, nil
}

// decodeEntries accepts three response shapes:
// [entry...], {"users": [entry...]}, {"users": {"id": entry...}}
func decodeEntries(raw []byte) ([]Entry, error) {
	var list []Entry
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Users json.RawMessage `json:"users"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	if len(wrapped.Users) == 0 {
		return nil, nil
	}

	if err := json.Unmarshal(wrapped.Users, &list); err == nil {
		return list, nil
	}

	var byID map[string]Entry
	if err := json.Unmarshal(wrapped.Users, &byID); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	list = make([]Entry, 0, len(byID))
	for _, e := range byID {
		list = append(list, e)
	}
	// Map order is random; break score ties by name for a stable result
	slices.SortFunc(list, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return list, nil
}
