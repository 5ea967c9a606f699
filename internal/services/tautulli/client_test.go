package tautulli_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plexnote/internal/services/tautulli"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *tautulli.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := tautulli.New(srv.URL, "secret", 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return srv, client
}

func TestMetadataDecodesObjectPayload(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cmd"); got != "get_metadata" {
			t.Errorf("cmd = %q, want get_metadata", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "secret" {
			t.Errorf("apikey = %q", got)
		}
		if got := r.URL.Query().Get("rating_key"); got != "42" {
			t.Errorf("rating_key = %q", got)
		}
		w.Write([]byte(`{"response": {"result": "success", "data": {
			"rating_key": 42, "media_type": "movie", "title": "Dune", "year": 2021
		}}}`))
	})

	item, err := client.Metadata(context.Background(), "42", false)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if item.Title != "Dune" || item.Year.Int() != 2021 {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestMetadataUnwrapsListPayload(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"result": "success", "data": [
			{"rating_key": "7", "media_type": "episode", "title": "Pilot"}
		]}}`))
	})

	item, err := client.Metadata(context.Background(), "7", true)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if item.Title != "Pilot" {
		t.Fatalf("title = %q, want Pilot", item.Title)
	}
}

func TestMetadataRejectsEmptyRecord(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"result": "success", "data": {}}}`))
	})

	if _, err := client.Metadata(context.Background(), "42", false); err == nil {
		t.Fatal("expected error for empty metadata record")
	}
}

func TestMetadataSurfacesAPIError(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"result": "error", "message": "invalid apikey"}}`))
	})

	if _, err := client.Metadata(context.Background(), "42", false); err == nil {
		t.Fatal("expected error from api failure")
	}
}

func TestLatestRatingKey(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cmd"); got != "get_recently_added" {
			t.Errorf("cmd = %q, want get_recently_added", got)
		}
		w.Write([]byte(`{"response": {"result": "success", "data": {
			"recently_added": [{"rating_key": 99}]
		}}}`))
	})

	key, err := client.LatestRatingKey(context.Background())
	if err != nil {
		t.Fatalf("latest rating key: %v", err)
	}
	if key != "99" {
		t.Fatalf("key = %q, want 99", key)
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := tautulli.New("", "key", time.Second); err == nil {
		t.Fatal("expected error for missing url")
	}
	if _, err := tautulli.New("http://host", "", time.Second); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
