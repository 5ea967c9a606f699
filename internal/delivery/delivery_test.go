package delivery_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"plexnote/internal/delivery"
	"plexnote/internal/embedmsg"
)

func newManager(t *testing.T, url string, attempts int, sleeps *[]time.Duration) *delivery.Manager {
	t.Helper()
	return delivery.New(url, attempts, 5*time.Second, 10*time.Second, nil,
		delivery.WithSleep(func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		}))
}

func TestSendSuccess(t *testing.T) {
	var requests atomic.Int64
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var sleeps []time.Duration
	m := newManager(t, server.URL, 3, &sleeps)
	err := m.Send(context.Background(), &embedmsg.Embed{Title: "🎬 Dune"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
	if len(sleeps) != 0 {
		t.Errorf("unexpected sleeps: %v", sleeps)
	}

	var payload struct {
		Embeds []embedmsg.Embed `json:"embeds"`
	}
	if err := json.Unmarshal([]byte(gotBody), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Embeds) != 1 || payload.Embeds[0].Title != "🎬 Dune" {
		t.Errorf("payload = %s", gotBody)
	}
}

func TestSendRateLimitWaitsAndRetries(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var sleeps []time.Duration
	m := newManager(t, server.URL, 3, &sleeps)
	if err := m.Send(context.Background(), &embedmsg.Embed{}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sleeps) != 1 || sleeps[0] != 2*time.Second {
		t.Errorf("sleeps = %v, want [2s]", sleeps)
	}
}

func TestSendRateLimitDefaultWait(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var sleeps []time.Duration
	m := newManager(t, server.URL, 3, &sleeps)
	if err := m.Send(context.Background(), &embedmsg.Embed{}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sleeps) != 1 || sleeps[0] != 5*time.Second {
		t.Errorf("sleeps = %v, want [5s]", sleeps)
	}
}

func TestSendRateLimitDoesNotConsumeAttempt(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var sleeps []time.Duration
	m := newManager(t, server.URL, 1, &sleeps)
	if err := m.Send(context.Background(), &embedmsg.Embed{}); err != nil {
		t.Fatalf("send with single attempt should survive rate limiting: %v", err)
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
}

func TestSendPersistentRateLimitStopsOnCancel(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var sleeps int
	m := delivery.New(server.URL, 3, 5*time.Second, 10*time.Second, nil,
		delivery.WithSleep(func(time.Duration) {
			sleeps++
			if sleeps == 2 {
				cancel()
			}
		}))

	err := m.Send(ctx, &embedmsg.Embed{})
	if err == nil || !strings.Contains(err.Error(), "aborted") {
		t.Fatalf("err = %v, want delivery aborted", err)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
}

func TestSendServerErrorBacksOffLinearly(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var sleeps []time.Duration
	m := newManager(t, server.URL, 3, &sleeps)
	if err := m.Send(context.Background(), &embedmsg.Embed{}); err != nil {
		t.Fatalf("send: %v", err)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(sleeps) != len(want) || sleeps[0] != want[0] || sleeps[1] != want[1] {
		t.Errorf("sleeps = %v, want %v", sleeps, want)
	}
}

func TestSendExhaustsAttempts(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	var sleeps []time.Duration
	m := newManager(t, server.URL, 3, &sleeps)
	err := m.Send(context.Background(), &embedmsg.Embed{})
	if err == nil {
		t.Fatal("expected delivery failure")
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error = %v", err)
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
	// No sleep after the final attempt.
	if len(sleeps) != 2 {
		t.Errorf("sleeps = %v, want 2 entries", sleeps)
	}
}

func TestSendMissingURL(t *testing.T) {
	var sleeps []time.Duration
	m := newManager(t, "", 3, &sleeps)
	if err := m.Send(context.Background(), &embedmsg.Embed{}); err == nil {
		t.Fatal("expected configuration error")
	}
}
