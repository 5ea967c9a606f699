package media

import (
	"encoding/json"
	"strings"
)

// Kind classifies a library item.
type Kind string

// Item kinds as reported by Tautulli. Unknown values collapse to KindShow.
const (
	KindMovie   Kind = "movie"
	KindShow    Kind = "show"
	KindSeason  Kind = "season"
	KindEpisode Kind = "episode"
)

// Stream describes one audio/video/subtitle stream of a media part.
type Stream struct {
	Type                 FlexInt `json:"type"`
	LanguageCode         string  `json:"languageCode"`
	SubtitleLanguageCode string  `json:"subtitle_language_code"`
	Language             string  `json:"language"`
}

// Part is one physical file of a media item.
type Part struct {
	File    string   `json:"file"`
	Streams []Stream `json:"streams"`
}

// MediaInfo groups the parts of one media version.
type MediaInfo struct {
	Parts []Part `json:"parts"`
}

// Item is a Tautulli metadata record. The Raw field holds the decoded JSON
// tree for structural probes that must see fields the typed model omits.
type Item struct {
	RatingKey            FlexString `json:"rating_key"`
	ParentRatingKey      FlexString `json:"parent_rating_key"`
	GrandparentRatingKey FlexString `json:"grandparent_rating_key"`

	MediaType        string `json:"media_type"`
	Title            string `json:"title"`
	ParentTitle      string `json:"parent_title"`
	GrandparentTitle string `json:"grandparent_title"`
	OriginalTitle    string `json:"original_title"`

	Year                  FlexInt    `json:"year"`
	OriginallyAvailableAt string     `json:"originally_available_at"`
	Duration              FlexInt    `json:"duration"`
	ContentRating         string     `json:"content_rating"`
	Rating                FlexString `json:"rating"`
	AudienceRating        FlexString `json:"audience_rating"`
	UserRating            FlexString `json:"user_rating"`

	Genres    []string `json:"genres"`
	Actors    []string `json:"actors"`
	Writers   []string `json:"writers"`
	Producers []string `json:"producers"`
	Directors []string `json:"directors"`

	Guids            GuidList `json:"guids"`
	ParentGuids      GuidList `json:"parent_guids"`
	GrandparentGuids GuidList `json:"grandparent_guids"`

	MediaIndex       FlexInt `json:"media_index"`
	ParentMediaIndex FlexInt `json:"parent_media_index"`
	Index            FlexInt `json:"index"`

	LibraryName     string `json:"library_name"`
	Studio          string `json:"studio"`
	Summary         string `json:"summary"`
	EditionTitle    string `json:"edition_title"`
	Edition         string `json:"edition"`
	Slug            string `json:"slug"`
	ParentSlug      string `json:"parent_slug"`
	GrandparentSlug string `json:"grandparent_slug"`

	MediaInfo  []MediaInfo `json:"media_info"`
	ChildCount FlexInt     `json:"childCount"`
	Children   []Item      `json:"children"`

	Raw map[string]any `json:"-"`
}

// UnmarshalJSON decodes the typed fields and additionally retains the raw
// JSON tree in Raw.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = Item(p)
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err == nil {
		i.Raw = raw
	}
	return nil
}

// Kind returns the item's kind; unrecognised media types collapse to show.
func (i *Item) Kind() Kind {
	switch strings.ToLower(strings.TrimSpace(i.MediaType)) {
	case "movie":
		return KindMovie
	case "season":
		return KindSeason
	case "episode":
		return KindEpisode
	default:
		return KindShow
	}
}

// SeasonNumber derives the season number from the index fields. Seasons carry
// their own media_index; episodes reference the season via parent_media_index.
func (i *Item) SeasonNumber() int {
	if i.Kind() == KindSeason {
		if n := i.MediaIndex.Int(); n != 0 {
			return n
		}
		return i.Index.Int()
	}
	if n := i.ParentMediaIndex.Int(); n != 0 {
		return n
	}
	return i.Index.Int()
}

// EpisodeNumber returns the episode's index within its season.
func (i *Item) EpisodeNumber() int { return i.MediaIndex.Int() }

// AllGuids returns the item's own guids followed by its parent and
// grandparent guids.
func (i *Item) AllGuids() []string {
	out := make([]string, 0, len(i.Guids)+len(i.ParentGuids)+len(i.GrandparentGuids))
	out = append(out, i.Guids...)
	out = append(out, i.ParentGuids...)
	out = append(out, i.GrandparentGuids...)
	return out
}

// DurationMinutes converts the millisecond duration to whole minutes.
func (i *Item) DurationMinutes() int { return i.Duration.Int() / 60000 }

// ChildrenDurationMinutes sums the durations of all child items in minutes.
// Used for seasons, whose own duration field is usually empty.
func (i *Item) ChildrenDurationMinutes() int {
	total := 0
	for _, c := range i.Children {
		total += c.Duration.Int()
	}
	return total / 60000
}

// SeriesTitle returns the best available series name for the item, falling
// back to a de-slugged parent slug when no title field is populated.
func (i *Item) SeriesTitle() string {
	if i.GrandparentTitle != "" {
		return i.GrandparentTitle
	}
	if i.Kind() == KindSeason && i.ParentTitle != "" {
		return i.ParentTitle
	}
	return ""
}
