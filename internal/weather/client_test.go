package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aibekm/codeassist-bot/internal/weather"
)

func TestFetchParsesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Paris" {
			t.Errorf("expected location passed verbatim, got %q", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("expected metric units, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"weather":[{"description":"clear sky"}],"main":{"temp":21.5,"feels_like":20.1}}`))
	}))
	defer srv.Close()

	c := weather.NewClient(srv.URL, "test-key")
	report, err := c.Fetch(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if report.Description != "clear sky" {
		t.Fatalf("description: %q", report.Description)
	}
	if report.TempC != 21.5 || report.FeelsLikeC != 20.1 {
		t.Fatalf("temperatures: %+v", report)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	c := weather.NewClient(srv.URL, "test-key")
	if _, err := c.Fetch(context.Background(), "Nowhere"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := weather.NewClient(srv.URL, "test-key")
	if _, err := c.Fetch(context.Background(), "Paris"); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := weather.NewClient(srv.URL, "test-key")
	if _, err := c.Fetch(context.Background(), "Paris"); err == nil {
		t.Fatal("expected error when server is unreachable")
	}
}
