package tvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Artwork kinds accepted by ArtworkURL.
const (
	ArtworkFanart = "fanart"
	ArtworkPoster = "poster"
)

// Client provides access to the TVDB API.
type Client struct {
	apiKey           string
	baseURL          string
	artworkBaseURL   string
	language         string
	fallbackLanguage string
	tokenTTL         time.Duration
	httpClient       *http.Client

	mu          sync.Mutex
	token       string
	tokenIssued time.Time
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithClock overrides the time source used for token expiry (for tests).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a TVDB client. Language codes are three-letter TVDB codes
// such as "deu" and "eng".
func New(apiKey, baseURL, artworkBaseURL, language, fallbackLanguage string, tokenTTL, timeout time.Duration, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tvdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tvdb base url required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 23 * time.Hour
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := &Client{
		apiKey:           apiKey,
		baseURL:          strings.TrimRight(baseURL, "/"),
		artworkBaseURL:   strings.TrimRight(strings.TrimSpace(artworkBaseURL), "/"),
		language:         strings.TrimSpace(language),
		fallbackLanguage: strings.TrimSpace(fallbackLanguage),
		tokenTTL:         tokenTTL,
		httpClient:       &http.Client{Timeout: timeout},
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ensureToken returns a valid bearer token, logging in when the cached one
// is absent or past its validity window.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Sub(c.tokenIssued) < c.tokenTTL {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]string{"apikey": c.apiKey})
	if err != nil {
		return "", fmt.Errorf("encode login payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tvdb login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tvdb login returned %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if payload.Data.Token == "" {
		return "", errors.New("tvdb login returned empty token")
	}
	c.token = payload.Data.Token
	c.tokenIssued = c.now()
	return c.token, nil
}

// record is the subset of TVDB entity payloads the pipeline reads. The base
// record uses overview or summary; translations use name and overview.
type record struct {
	Name     string `json:"name"`
	Overview string `json:"overview"`
	Summary  string `json:"summary"`
}

func (c *Client) getRecord(ctx context.Context, path string, params url.Values) (*record, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse tvdb url: %w", err)
	}
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tvdb %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tvdb %s returned %d", path, resp.StatusCode)
	}

	var payload struct {
		Data record `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tvdb response: %w", err)
	}
	return &payload.Data, nil
}

// translatedText walks the translation chain for one entity and returns the
// first non-empty value of the requested facet.
func (c *Client) translatedText(ctx context.Context, entity, id string, fromRecord func(*record) string) (string, error) {
	if id == "" {
		return "", errors.New("tvdb id required")
	}
	var firstErr error
	for _, lang := range []string{c.language, c.fallbackLanguage} {
		if lang == "" {
			continue
		}
		rec, err := c.getRecord(ctx, fmt.Sprintf("/%s/%s/translations/%s", entity, id, lang), nil)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if text := fromRecord(rec); text != "" {
			return text, nil
		}
	}
	rec, err := c.getRecord(ctx, fmt.Sprintf("/%s/%s", entity, id), nil)
	if err != nil {
		if firstErr != nil {
			return "", firstErr
		}
		return "", err
	}
	return fromRecord(rec), nil
}

func name(r *record) string { return r.Name }

func overview(r *record) string {
	if r.Overview != "" {
		return r.Overview
	}
	return r.Summary
}

// EpisodeTitle returns the translated episode name.
func (c *Client) EpisodeTitle(ctx context.Context, episodeID string) (string, error) {
	return c.translatedText(ctx, "episodes", episodeID, name)
}

// EpisodeOverview returns the translated episode plot.
func (c *Client) EpisodeOverview(ctx context.Context, episodeID string) (string, error) {
	return c.translatedText(ctx, "episodes", episodeID, overview)
}

// SeasonOverview returns the translated season plot.
func (c *Client) SeasonOverview(ctx context.Context, seasonID string) (string, error) {
	return c.translatedText(ctx, "seasons", seasonID, overview)
}

// SeriesOverview returns the translated series plot.
func (c *Client) SeriesOverview(ctx context.Context, seriesID string) (string, error) {
	return c.translatedText(ctx, "series", seriesID, overview)
}

// ArtworkURL returns the first artwork of the requested kind for a series,
// or empty when none exists.
func (c *Client) ArtworkURL(ctx context.Context, seriesID, kind string) (string, error) {
	if seriesID == "" {
		return "", errors.New("tvdb series id required")
	}
	token, err := c.ensureToken(ctx)
	if err != nil {
		return "", err
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/artwork/series/%s", c.baseURL, seriesID))
	if err != nil {
		return "", fmt.Errorf("parse tvdb url: %w", err)
	}
	params := url.Values{}
	params.Set("type", kind)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tvdb artwork: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tvdb artwork returned %d", resp.StatusCode)
	}

	var payload struct {
		Data []struct {
			FileName string `json:"fileName"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode artwork response: %w", err)
	}
	if len(payload.Data) == 0 || payload.Data[0].FileName == "" {
		return "", nil
	}
	return c.artworkBaseURL + "/" + strings.TrimLeft(payload.Data[0].FileName, "/"), nil
}
