package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plexnote/internal/services/tmdb"
)

func newClient(t *testing.T, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := tmdb.New("key", srv.URL, "https://image.tmdb.org/t/p", "de-DE", 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestDetailsUsesConfiguredLanguage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/100" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("language"); got != "de-DE" {
			t.Errorf("language = %q, want de-DE", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "key" {
			t.Errorf("api_key = %q", got)
		}
		w.Write([]byte(`{"id": 100, "name": "Dark", "overview": "Ein Riss in der Zeit.", "status": "Ended"}`))
	})

	details, err := client.Details(context.Background(), "100", false, "")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.DisplayName() != "Dark" || details.Status != "Ended" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestDetailsLanguageOverride(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("language"); got != "en-US" {
			t.Errorf("language = %q, want en-US", got)
		}
		w.Write([]byte(`{"id": 1, "title": "Dune"}`))
	})

	if _, err := client.Details(context.Background(), "1", true, "en-US"); err != nil {
		t.Fatalf("details: %v", err)
	}
}

func TestEpisodeDetailsNotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	if _, err := client.EpisodeDetails(context.Background(), "100", 1, 3, ""); err == nil {
		t.Fatal("expected error for missing episode id")
	}
}

func TestBackdropAndPosterURLs(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("include_image_language"); got != "de,null,en" {
			t.Errorf("include_image_language = %q", got)
		}
		w.Write([]byte(`{
			"backdrops": [{"file_path": "/back.jpg"}],
			"posters": [{"file_path": "/poster.jpg"}]
		}`))
	})

	backdrop, err := client.BackdropURL(context.Background(), "1", true)
	if err != nil {
		t.Fatalf("backdrop: %v", err)
	}
	if backdrop != "https://image.tmdb.org/t/p/w780/back.jpg" {
		t.Fatalf("backdrop = %q", backdrop)
	}

	poster, err := client.PosterURL(context.Background(), "1", true)
	if err != nil {
		t.Fatalf("poster: %v", err)
	}
	if poster != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Fatalf("poster = %q", poster)
	}
}

func TestBackdropURLEmptyWhenNoImages(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"backdrops": [], "posters": []}`))
	})

	backdrop, err := client.BackdropURL(context.Background(), "1", false)
	if err != nil {
		t.Fatalf("backdrop: %v", err)
	}
	if backdrop != "" {
		t.Fatalf("expected empty backdrop, got %q", backdrop)
	}
}

func TestSearchTVIDTakesFirstResult(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("first_air_date_year"); got != "2017" {
			t.Errorf("first_air_date_year = %q", got)
		}
		w.Write([]byte(`{"results": [{"id": 70523}, {"id": 999}]}`))
	})

	id, err := client.SearchTVID(context.Background(), "Dark", 2017)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if id != "70523" {
		t.Fatalf("id = %q, want 70523", id)
	}
}

func TestSearchMovieIDNoResults(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	})

	id, err := client.SearchMovieID(context.Background(), "Unbekannt", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
}

func TestFindByTVDB(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find/81189" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("external_source"); got != "tvdb_id" {
			t.Errorf("external_source = %q", got)
		}
		w.Write([]byte(`{"tv_results": [{"id": 1396}]}`))
	})

	id, err := client.FindByTVDB(context.Background(), "81189")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if id != "1396" {
		t.Fatalf("id = %q, want 1396", id)
	}
}

func TestSeasonExists(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tv/100/season/1" {
			w.Write([]byte(`{"id": 5000}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	if !client.SeasonExists(context.Background(), "100", 1) {
		t.Fatal("expected season 1 to exist")
	}
	if client.SeasonExists(context.Background(), "100", 9) {
		t.Fatal("expected season 9 to be missing")
	}
}
