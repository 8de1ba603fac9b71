package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aibekm/codeassist-bot/internal/metrics"
)

const lookupTimeout = 10 * time.Second

// Client fetches the quote of the day from a favqs-compatible API.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string) *Client {
	return &Client{url: url, client: &http.Client{}}
}

type apiResponse struct {
	Quote struct {
		Body   string `json:"body"`
		Author string `json:"author"`
	} `json:"quote"`
}

// QuoteOfTheDay returns a formatted quote line, or an error the caller
// recovers into a friendly chat message.
func (c *Client) QuoteOfTheDay(ctx context.Context) (string, error) {
	start := time.Now()
	q, err := c.fetch(ctx)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.LookupDuration.WithLabelValues("quote", outcome).Observe(time.Since(start).Seconds())
	return q, err
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("quote api: unexpected status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if body.Quote.Body == "" {
		return "", fmt.Errorf("quote api: empty quote")
	}

	return fmt.Sprintf("\"%s\" - %s", body.Quote.Body, body.Quote.Author), nil
}
