package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aibekm/codeassist-bot/internal/metrics"
)

const lookupTimeout = 10 * time.Second

// Report is the subset of the weather API response the bot presents.
type Report struct {
	Description string
	TempC       float64
	FeelsLikeC  float64
}

// Format renders the report the way it is delivered in chat.
func (r Report) Format(location string) string {
	return fmt.Sprintf("Weather in %s:\n🌡 Temperature: %.1f°C (Feels like %.1f°C)\n🌤 Condition: %s",
		location, r.TempC, r.FeelsLikeC, r.Description)
}

// Client looks up current weather from an OpenWeatherMap-compatible
// endpoint. The user-entered location is passed through verbatim.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

type apiResponse struct {
	Message string `json:"message"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
}

// Fetch performs the lookup with a bounded timeout. Every failure mode
// (network, non-200, malformed body) comes back as an error for the
// caller to recover locally.
func (c *Client) Fetch(ctx context.Context, location string) (Report, error) {
	start := time.Now()
	report, err := c.fetch(ctx, location)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.LookupDuration.WithLabelValues("weather", outcome).Observe(time.Since(start).Seconds())
	return report, err
}

func (c *Client) fetch(ctx context.Context, location string) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Report{}, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather api: %s (status %d)", body.Message, resp.StatusCode)
	}
	if len(body.Weather) == 0 {
		return Report{}, fmt.Errorf("weather api: empty conditions for %q", location)
	}

	return Report{
		Description: body.Weather[0].Description,
		TempC:       body.Main.Temp,
		FeelsLikeC:  body.Main.FeelsLike,
	}, nil
}
