package tvdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"plexnote/internal/services/tvdb"
)

func newClient(t *testing.T, handler http.Handler, opts ...tvdb.Option) *tvdb.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := tvdb.New("key", srv.URL, "https://artworks.thetvdb.com/banners",
		"deu", "eng", 23*time.Hour, 5*time.Second, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func loginAware(t *testing.T, logins *atomic.Int64, rest http.HandlerFunc) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			if r.Method != http.MethodPost {
				t.Errorf("login method = %q", r.Method)
			}
			logins.Add(1)
			w.Write([]byte(`{"data": {"token": "tok-1"}}`))
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("authorization = %q", got)
		}
		rest(w, r)
	})
}

func TestTokenReusedWithinValidityWindow(t *testing.T) {
	var logins atomic.Int64
	client := newClient(t, loginAware(t, &logins, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"name": "Pilot"}}`))
	}))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.EpisodeTitle(ctx, "111"); err != nil {
			t.Fatalf("episode title: %v", err)
		}
	}
	if got := logins.Load(); got != 1 {
		t.Fatalf("expected 1 login, got %d", got)
	}
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	var logins atomic.Int64
	now := time.Now()
	clock := func() time.Time { return now }
	client := newClient(t, loginAware(t, &logins, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"name": "Pilot"}}`))
	}), tvdb.WithClock(func() time.Time { return clock() }))

	ctx := context.Background()
	if _, err := client.EpisodeTitle(ctx, "111"); err != nil {
		t.Fatalf("episode title: %v", err)
	}
	now = now.Add(24 * time.Hour)
	if _, err := client.EpisodeTitle(ctx, "111"); err != nil {
		t.Fatalf("episode title after expiry: %v", err)
	}
	if got := logins.Load(); got != 2 {
		t.Fatalf("expected re-login after expiry, got %d logins", got)
	}
}

func TestTranslationChainFallsBackToEnglish(t *testing.T) {
	var logins atomic.Int64
	client := newClient(t, loginAware(t, &logins, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/episodes/42/translations/deu":
			w.Write([]byte(`{"data": {}}`))
		case "/episodes/42/translations/eng":
			w.Write([]byte(`{"data": {"overview": "english plot"}}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	plot, err := client.EpisodeOverview(context.Background(), "42")
	if err != nil {
		t.Fatalf("episode overview: %v", err)
	}
	if plot != "english plot" {
		t.Fatalf("plot = %q", plot)
	}
}

func TestTranslationChainFallsBackToBaseRecord(t *testing.T) {
	var logins atomic.Int64
	client := newClient(t, loginAware(t, &logins, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/seasons/7/translations/deu", "/seasons/7/translations/eng":
			w.WriteHeader(http.StatusNotFound)
		case "/seasons/7":
			w.Write([]byte(`{"data": {"summary": "base summary"}}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))

	plot, err := client.SeasonOverview(context.Background(), "7")
	if err != nil {
		t.Fatalf("season overview: %v", err)
	}
	if plot != "base summary" {
		t.Fatalf("plot = %q", plot)
	}
}

func TestArtworkURL(t *testing.T) {
	var logins atomic.Int64
	client := newClient(t, loginAware(t, &logins, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artwork/series/81189" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != tvdb.ArtworkFanart {
			t.Errorf("type = %q", got)
		}
		w.Write([]byte(`{"data": [{"fileName": "/fanart/series/81189-1.jpg"}]}`))
	}))

	url, err := client.ArtworkURL(context.Background(), "81189", tvdb.ArtworkFanart)
	if err != nil {
		t.Fatalf("artwork: %v", err)
	}
	want := "https://artworks.thetvdb.com/banners/fanart/series/81189-1.jpg"
	if url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}

func TestArtworkURLEmptyList(t *testing.T) {
	var logins atomic.Int64
	client := newClient(t, loginAware(t, &logins, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))

	url, err := client.ArtworkURL(context.Background(), "81189", tvdb.ArtworkPoster)
	if err != nil {
		t.Fatalf("artwork: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url, got %q", url)
	}
}
