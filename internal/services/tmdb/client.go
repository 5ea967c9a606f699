package tmdb

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
)

// Details is the shared shape of TMDB movie and TV detail records. Movies
// populate Title, series populate Name.
type Details struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Name     string `json:"name"`
	Overview string `json:"overview"`
	Status   string `json:"status"`
	Homepage string `json:"homepage"`
}

// DisplayName returns the title for movies or the name for series.
func (d *Details) DisplayName() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Episode is a TMDB episode record.
type Episode struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Overview string `json:"overview"`
}

// Image is one entry of an images response.
type Image struct {
	FilePath string `json:"file_path"`
}

// Images holds the backdrop and poster lists of a title.
type Images struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}

// CastMember is one billed actor.
type CastMember struct {
	Name string `json:"name"`
}

// CrewMember is one crew credit with its job title.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits holds cast and crew of a title.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is one entry of a videos response.
type Video struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Language string `json:"iso_639_1"`
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
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

// New creates a TMDB client. The language is the default for all lookups;
// individual calls may override it.
func New(apiKey, baseURL, imageBaseURL, language string, timeout time.Duration, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: strings.TrimRight(strings.TrimSpace(imageBaseURL), "/"),
		language:     strings.TrimSpace(language),
		httpClient:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

func (c *Client) langParams(lang string) url.Values {
	params := url.Values{}
	if lang == "" {
		lang = c.language
	}
	if lang != "" {
		params.Set("language", lang)
	}
	return params
}

func mediaPath(isMovie bool) string {
	if isMovie {
		return "movie"
	}
	return "tv"
}

// Details fetches the detail record of a movie or series.
func (c *Client) Details(ctx context.Context, tmdbID string, isMovie bool, lang string) (*Details, error) {
	if tmdbID == "" {
		return nil, errors.New("tmdb id required")
	}
	var d Details
	if err := c.get(ctx, fmt.Sprintf("/%s/%s", mediaPath(isMovie), tmdbID), c.langParams(lang), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// EpisodeDetails fetches one episode of a series.
func (c *Client) EpisodeDetails(ctx context.Context, tmdbID string, season, episode int, lang string) (*Episode, error) {
	if tmdbID == "" || season <= 0 || episode <= 0 {
		return nil, errors.New("tmdb id, season, and episode required")
	}
	var e Episode
	path := fmt.Sprintf("/tv/%s/season/%d/episode/%d", tmdbID, season, episode)
	if err := c.get(ctx, path, c.langParams(lang), &e); err != nil {
		return nil, err
	}
	if e.ID == 0 {
		return nil, fmt.Errorf("tmdb episode s%de%d not found", season, episode)
	}
	return &e, nil
}

// SeasonExists reports whether TMDB knows the given season of a series. Used
// to validate deep links before they are embedded.
func (c *Client) SeasonExists(ctx context.Context, tmdbID string, season int) bool {
	if tmdbID == "" || season <= 0 {
		return false
	}
	var s struct {
		ID int64 `json:"id"`
	}
	path := fmt.Sprintf("/tv/%s/season/%d", tmdbID, season)
	if err := c.get(ctx, path, c.langParams(""), &s); err != nil {
		return false
	}
	return s.ID != 0
}

// EpisodeExists reports whether TMDB knows the given episode.
func (c *Client) EpisodeExists(ctx context.Context, tmdbID string, season, episode int) bool {
	_, err := c.EpisodeDetails(ctx, tmdbID, season, episode, "")
	return err == nil
}

// BackdropURL returns the first localised backdrop of a title in w780, or
// empty when none exists.
func (c *Client) BackdropURL(ctx context.Context, tmdbID string, isMovie bool) (string, error) {
	images, err := c.images(ctx, tmdbID, isMovie)
	if err != nil {
		return "", err
	}
	if len(images.Backdrops) == 0 {
		return "", nil
	}
	return c.imageBaseURL + "/w780" + images.Backdrops[0].FilePath, nil
}

// PosterURL returns the first localised poster of a title in w500, or empty
// when none exists.
func (c *Client) PosterURL(ctx context.Context, tmdbID string, isMovie bool) (string, error) {
	images, err := c.images(ctx, tmdbID, isMovie)
	if err != nil {
		return "", err
	}
	if len(images.Posters) == 0 {
		return "", nil
	}
	return c.imageBaseURL + "/w500" + images.Posters[0].FilePath, nil
}

func (c *Client) images(ctx context.Context, tmdbID string, isMovie bool) (*Images, error) {
	if tmdbID == "" {
		return nil, errors.New("tmdb id required")
	}
	params := url.Values{}
	params.Set("include_image_language", "de,null,en")
	var images Images
	if err := c.get(ctx, fmt.Sprintf("/%s/%s/images", mediaPath(isMovie), tmdbID), params, &images); err != nil {
		return nil, err
	}
	return &images, nil
}

// Credits fetches cast and crew of a title.
func (c *Client) Credits(ctx context.Context, tmdbID string, isMovie bool) (*Credits, error) {
	if tmdbID == "" {
		return nil, errors.New("tmdb id required")
	}
	var credits Credits
	if err := c.get(ctx, fmt.Sprintf("/%s/%s/credits", mediaPath(isMovie), tmdbID), c.langParams(""), &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// AlternativeTitles fetches the alternative title strings of a movie.
func (c *Client) AlternativeTitles(ctx context.Context, tmdbID string) ([]string, error) {
	if tmdbID == "" {
		return nil, errors.New("tmdb id required")
	}
	var payload struct {
		Titles []struct {
			Title string `json:"title"`
		} `json:"titles"`
	}
	if err := c.get(ctx, fmt.Sprintf("/movie/%s/alternative_titles", tmdbID), nil, &payload); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(payload.Titles))
	for _, t := range payload.Titles {
		if t.Title != "" {
			titles = append(titles, t.Title)
		}
	}
	return titles, nil
}

// Videos fetches the video entries (trailers, teasers) of a title.
func (c *Client) Videos(ctx context.Context, tmdbID string, isMovie bool) ([]Video, error) {
	if tmdbID == "" {
		return nil, errors.New("tmdb id required")
	}
	var payload struct {
		Results []Video `json:"results"`
	}
	if err := c.get(ctx, fmt.Sprintf("/%s/%s/videos", mediaPath(isMovie), tmdbID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

type searchResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

// SearchMovieID searches movies by title and optional year and returns the
// first result's ID, or empty when nothing matches.
func (c *Client) SearchMovieID(ctx context.Context, query string, year int) (string, error) {
	return c.searchID(ctx, "/search/movie", query, "year", year)
}

// SearchTVID searches series by name and optional first-air year and returns
// the first result's ID, or empty when nothing matches.
func (c *Client) SearchTVID(ctx context.Context, query string, year int) (string, error) {
	return c.searchID(ctx, "/search/tv", query, "first_air_date_year", year)
}

func (c *Client) searchID(ctx context.Context, path, query, yearParam string, year int) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("query must not be empty")
	}
	params := c.langParams("")
	params.Set("query", query)
	if year > 0 {
		params.Set(yearParam, strconv.Itoa(year))
	}
	var payload searchResponse
	if err := c.get(ctx, path, params, &payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 {
		return "", nil
	}
	return strconv.FormatInt(payload.Results[0].ID, 10), nil
}

// FindByTVDB resolves a TVDB series ID to a TMDB series ID via the external
// ID lookup, or empty when TMDB has no match.
func (c *Client) FindByTVDB(ctx context.Context, tvdbID string) (string, error) {
	if tvdbID == "" {
		return "", errors.New("tvdb id required")
	}
	params := url.Values{}
	params.Set("external_source", "tvdb_id")
	var payload struct {
		TVResults []struct {
			ID int64 `json:"id"`
		} `json:"tv_results"`
	}
	if err := c.get(ctx, "/find/"+tvdbID, params, &payload); err != nil {
		return "", err
	}
	if len(payload.TVResults) == 0 {
		return "", nil
	}
	return strconv.FormatInt(payload.TVResults[0].ID, 10), nil
}
