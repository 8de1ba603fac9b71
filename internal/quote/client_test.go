package quote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aibekm/codeassist-bot/internal/quote"
)

func TestQuoteOfTheDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"qotd_date":"2026-08-31","quote":{"body":"Simplicity is prerequisite for reliability.","author":"Edsger W. Dijkstra"}}`))
	}))
	defer srv.Close()

	c := quote.NewClient(srv.URL)
	got, err := c.QuoteOfTheDay(context.Background())
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	want := "\"Simplicity is prerequisite for reliability.\" - Edsger W. Dijkstra"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestQuoteOfTheDayErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := quote.NewClient(srv.URL)
	if _, err := c.QuoteOfTheDay(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestQuoteOfTheDayEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"quote":{"body":"","author":"Nobody"}}`))
	}))
	defer srv.Close()

	c := quote.NewClient(srv.URL)
	if _, err := c.QuoteOfTheDay(context.Background()); err == nil {
		t.Fatal("expected error for empty quote body")
	}
}
