// Package facts fetches number trivia for the counter feature's fact
// effect. The service speaks plain text (numbersapi.com dialect): GET
// /<number> returns one sentence about the number.
package facts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Provider is the surface the counter feature depends on. Tests substitute
// a stub; production uses Client.
type Provider interface {
	Fact(ctx context.Context, number int) (string, error)
}

// Client fetches trivia over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Fact returns one sentence of trivia about number.
func (c *Client) Fact(ctx context.Context, number int) (string, error) {
	url := fmt.Sprintf("%s/%d", c.baseURL, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build fact request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch fact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fact service returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("read fact body: %w", err)
	}
	fact := strings.TrimSpace(string(body))
	if fact == "" {
		return "", fmt.Errorf("fact service returned an empty body")
	}
	return fact, nil
}
