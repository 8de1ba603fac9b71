package weather_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aibekm/codeassist-bot/internal/domain"
	"github.com/aibekm/codeassist-bot/internal/scheduler"
	"github.com/aibekm/codeassist-bot/internal/weather"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeSender) Send(_ int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, text)
	return nil
}

type fakePrefs struct {
	saved   map[int64]string // userID -> "location at"
	deleted []int64
}

func (p *fakePrefs) Save(_ context.Context, userID int64, location, at string) error {
	if p.saved == nil {
		p.saved = make(map[int64]string)
	}
	p.saved[userID] = location + " " + at
	return nil
}

func (p *fakePrefs) Delete(_ context.Context, userID int64) error {
	p.deleted = append(p.deleted, userID)
	return nil
}

func newTestManager(apiURL string) (*weather.Manager, *scheduler.Scheduler, *fakeSender, *fakePrefs) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := scheduler.New(logger, time.Second)
	sender := &fakeSender{}
	prefs := &fakePrefs{}
	m := weather.NewManager(sched, weather.NewClient(apiURL, "test-key"), sender, prefs, logger)
	return m, sched, sender, prefs
}

func weatherKey(userID int64) domain.JobKey {
	return domain.JobKey{Category: domain.CategoryWeather, Owner: userID}
}

func okWeatherServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"weather":[{"description":"light rain"}],"main":{"temp":14.0,"feels_like":12.5}}`))
	}))
}

func TestSetReplacesSubscription(t *testing.T) {
	srv := okWeatherServer(t)
	defer srv.Close()
	m, sched, _, prefs := newTestManager(srv.URL)
	const userID, chatID = int64(7), int64(70)

	if _, err := m.Set(context.Background(), userID, chatID, "Paris 08:00"); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if _, err := m.Set(context.Background(), userID, chatID, "Tokyo 09:00"); err != nil {
		t.Fatalf("second set: %v", err)
	}

	var subs int
	for _, j := range sched.Snapshot() {
		if j.Key.Category == domain.CategoryWeather {
			subs++
		}
	}
	if subs != 1 {
		t.Fatalf("expected exactly one weather job, got %d", subs)
	}

	job, ok := sched.Find(weatherKey(userID))
	if !ok {
		t.Fatal("weather job missing")
	}
	if job.Payload["location"] != "Tokyo" {
		t.Fatalf("expected replacement location, got %v", job.Payload)
	}
	if job.RunAt.Hour() != 9 || job.RunAt.Minute() != 0 {
		t.Fatalf("expected 09:00 UTC schedule, got %v", job.RunAt)
	}
	if prefs.saved[userID] != "Tokyo 09:00" {
		t.Fatalf("preference not written through: %q", prefs.saved[userID])
	}
}

func TestSetMultiWordLocation(t *testing.T) {
	srv := okWeatherServer(t)
	defer srv.Close()
	m, sched, _, _ := newTestManager(srv.URL)

	sub, err := m.Set(context.Background(), 7, 70, "New York 06:30")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if sub.Location != "New York" {
		t.Fatalf("location: %q", sub.Location)
	}
	job, _ := sched.Find(weatherKey(7))
	if job.Payload["location"] != "New York" {
		t.Fatalf("payload location: %v", job.Payload)
	}
}

func TestSetRejectsBadArgs(t *testing.T) {
	srv := okWeatherServer(t)
	defer srv.Close()
	m, sched, _, _ := newTestManager(srv.URL)

	tests := []struct {
		name string
		args string
		want error
	}{
		{name: "missing time", args: "Paris", want: weather.ErrBadArgs},
		{name: "empty", args: "", want: weather.ErrBadArgs},
		{name: "bad time", args: "Paris 99:99", want: domain.ErrInvalidTimeOfDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Set(context.Background(), 7, 70, tt.args); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(sched.Snapshot()) != 0 {
		t.Fatal("rejected input must not register a job")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	srv := okWeatherServer(t)
	defer srv.Close()
	m, _, _, prefs := newTestManager(srv.URL)
	const userID = int64(7)

	if _, err := m.Set(context.Background(), userID, 70, "Paris 08:00"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !m.Stop(context.Background(), userID) {
		t.Fatal("first stop should report an active subscription")
	}
	if m.Stop(context.Background(), userID) {
		t.Fatal("second stop should report nothing active")
	}
	if len(prefs.deleted) != 1 || prefs.deleted[0] != userID {
		t.Fatalf("preference not deleted: %v", prefs.deleted)
	}
}

func TestDispatchDeliversReport(t *testing.T) {
	srv := okWeatherServer(t)
	defer srv.Close()
	m, sched, sender, _ := newTestManager(srv.URL)

	if _, err := m.Set(context.Background(), 7, 70, "Bishkek 08:00"); err != nil {
		t.Fatalf("set: %v", err)
	}

	sched.Tick(context.Background(), time.Now().UTC().Add(25*time.Hour))

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "Bishkek") || !strings.Contains(sender.sent[0], "light rain") {
		t.Fatalf("unexpected weather message: %q", sender.sent[0])
	}
}

func TestDispatchLookupFailureSendsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"upstream broke"}`))
	}))
	defer srv.Close()
	m, sched, sender, _ := newTestManager(srv.URL)

	if _, err := m.Set(context.Background(), 7, 70, "Paris 08:00"); err != nil {
		t.Fatalf("set: %v", err)
	}

	sched.Tick(context.Background(), time.Now().UTC().Add(25*time.Hour))

	if len(sender.sent) != 1 {
		t.Fatalf("expected fallback message, got %d messages", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "Unable to fetch weather data") {
		t.Fatalf("unexpected fallback text: %q", sender.sent[0])
	}
	if _, ok := sched.Find(weatherKey(7)); !ok {
		t.Fatal("daily job must survive a failed lookup")
	}
}
