package tautulli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"plexnote/internal/media"
)

// MetadataFetcher defines the Tautulli operations used by the pipeline.
type MetadataFetcher interface {
	Metadata(ctx context.Context, ratingKey string, includeChildren bool) (*media.Item, error)
	LatestRatingKey(ctx context.Context) (string, error)
}

// Client calls the Tautulli v2 API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ MetadataFetcher = (*Client)(nil)

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

// New creates a Tautulli client.
func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tautulli base url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tautulli api key required")
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// envelope is the outer Tautulli response wrapper. The data payload is kept
// raw because get_metadata returns an object for single items but a list for
// some library sections.
type envelope struct {
	Response struct {
		Result  string          `json:"result"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	} `json:"response"`
}

func (c *Client) call(ctx context.Context, cmd string, params url.Values) (json.RawMessage, error) {
	endpoint, err := url.Parse(c.baseURL + "/api/v2")
	if err != nil {
		return nil, fmt.Errorf("parse tautulli url: %w", err)
	}
	params.Set("apikey", c.apiKey)
	params.Set("cmd", cmd)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tautulli %s: %w", cmd, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tautulli %s returned %d", cmd, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode tautulli response: %w", err)
	}
	if env.Response.Result != "" && env.Response.Result != "success" {
		return nil, fmt.Errorf("tautulli %s failed: %s", cmd, env.Response.Message)
	}
	return env.Response.Data, nil
}

// Metadata fetches the metadata record for a rating key. With includeChildren
// set, the payload also carries the item's children (episodes of a season).
func (c *Client) Metadata(ctx context.Context, ratingKey string, includeChildren bool) (*media.Item, error) {
	ratingKey = strings.TrimSpace(ratingKey)
	if ratingKey == "" {
		return nil, errors.New("rating key must not be empty")
	}
	params := url.Values{}
	params.Set("rating_key", ratingKey)
	if includeChildren {
		params.Set("include_children", "1")
	}
	data, err := c.call(ctx, "get_metadata", params)
	if err != nil {
		return nil, err
	}

	// Some Tautulli versions wrap the record in a single-element array.
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode metadata list: %w", err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("no metadata for rating key %s", ratingKey)
		}
		data = list[0]
	}

	var item media.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if item.RatingKey == "" {
		return nil, fmt.Errorf("empty metadata for rating key %s", ratingKey)
	}
	return &item, nil
}

// LatestRatingKey returns the rating key of the most recently added item.
func (c *Client) LatestRatingKey(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(1))
	data, err := c.call(ctx, "get_recently_added", params)
	if err != nil {
		return "", err
	}
	var payload struct {
		RecentlyAdded []struct {
			RatingKey media.FlexString `json:"rating_key"`
		} `json:"recently_added"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode recently added: %w", err)
	}
	if len(payload.RecentlyAdded) == 0 {
		return "", errors.New("no recently added items")
	}
	return payload.RecentlyAdded[0].RatingKey.String(), nil
}
