package embedmsg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"plexnote/internal/enrich"
	"plexnote/internal/media"
	"plexnote/internal/textutil"
)

// Embed styles.
const (
	StyleBoxed   = "boxed"
	StyleCompact = "compact"
	StyleClassic = "classic"
)

// Subtitle lines break inside this window, measured past the prefix.
const (
	subtitleMaxLen = 40
	subtitleMinLen = 36
)

const subtitlePrefix = "📺 Aus: "

const placeholderPlot = "_Leider liegen zu diesem Titel noch_\n_keine weiteren Informationen vor._"

// Layout carries the text-shaping limits of the embed.
type Layout struct {
	Style           string
	MaxLineLen      int
	MaxLines        int
	PlotLimit       int
	MaxWordSplitLen int
	SingleLineLimit int
}

// Facets are the resolved display values feeding one embed.
type Facets struct {
	Title      string
	SeriesName string
	Plot       string
	Status     string
	ImageURL   string
	Edition    string
	Links      []enrich.Link
	People     enrich.People
	Codec      string
	Resolution string
	Studio     string
}

// Composer renders embeds for one layout configuration.
type Composer struct {
	layout Layout
}

// NewComposer constructs a Composer.
func NewComposer(layout Layout) *Composer {
	return &Composer{layout: layout}
}

// Compose renders the embed for a subject and its resolved facets. The now
// parameter feeds the footer timestamp.
func (c *Composer) Compose(s *enrich.Subject, f Facets, now time.Time) *Embed {
	kind := s.Item.Kind()
	embed := &Embed{
		Title:  c.buildTitle(s, f),
		Color:  colorFor(kind),
		Fields: []Field{},
	}

	lib := coalesce(s, func(it *media.Item) string { return it.LibraryName })
	release := formatRelease(coalesce(s, func(it *media.Item) string { return it.OriginallyAvailableAt }))
	fsk := ratingCode(s)
	ratingStr := formatRating(ratingValue(s))
	duration := formatDuration(durationMinutes(s))
	genre := genreLine(s)
	seriesKind := kind != media.KindMovie

	switch c.layout.Style {
	case StyleCompact:
		c.addCompactInfo(embed, f, lib, release, fsk, ratingStr, duration, genre, seriesKind, kind)
	case StyleClassic:
		c.addClassicInfo(embed, f, lib, release, fsk, ratingStr, duration, genre, seriesKind, kind)
	default:
		c.addBoxedInfo(embed, f, lib, release, fsk, ratingStr, duration, genre, seriesKind)
	}

	c.addPlot(embed, f)
	c.addDetails(embed, s, f)

	if f.ImageURL != "" {
		embed.Image = &Image{URL: f.ImageURL}
	}
	if footer := footerText(f, now); footer != "" {
		embed.Footer = &Footer{Text: footer}
	}
	return embed
}

func colorFor(kind media.Kind) int {
	switch kind {
	case media.KindMovie:
		return ColorMovie
	case media.KindSeason:
		return ColorSeason
	default:
		return ColorShow
	}
}

// buildTitle renders the emoji-prefixed title, appending a broken "Aus:"
// subtitle when the series name is not already part of the title.
func (c *Composer) buildTitle(s *enrich.Subject, f Facets) string {
	title := textutil.ShortenTitle(f.Title, c.layout.SingleLineLimit)

	switch s.Item.Kind() {
	case media.KindMovie:
		return "🎬 " + title
	case media.KindEpisode:
		if f.SeriesName != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(f.SeriesName)) {
			sub := textutil.BreakSubtitle("Aus: "+f.SeriesName, subtitleMaxLen, subtitleMinLen, subtitlePrefix)
			return "🍿 " + title + "\n📺 " + sub
		}
		return "🍿 " + title
	case media.KindSeason:
		season := textutil.StripYearCodes(s.Item.Title)
		serie := f.SeriesName
		if season != "" && serie != "" && !strings.Contains(strings.ToLower(serie), strings.ToLower(season)) {
			sub := textutil.BreakSubtitle("Aus: "+serie, subtitleMaxLen, subtitleMinLen, subtitlePrefix)
			return "📦 " + season + "\n📺 " + sub
		}
		if season == "" {
			season = serie
		}
		return "📦 " + season
	default:
		return "📺 " + title
	}
}

func (c *Composer) addBoxedInfo(embed *Embed, f Facets, lib, release, fsk, rating, duration, genre string, seriesKind bool) {
	var lines []string
	if genre != "" {
		lines = append(lines, "[**Genre**]  "+genre)
	}
	if release != "" {
		lines = append(lines, "[**Jahr**]  "+release)
	}
	if seriesKind && f.Status != "" {
		lines = append(lines, "[**Status**]  "+f.Status)
	}
	if line := ratingLine(fsk, rating); line != "" {
		lines = append(lines, "[**Bewertung**]  "+line)
	}
	if duration != "" {
		lines = append(lines, "[**Dauer**]  "+duration)
	}

	name := "📌 **Media-Info:**"
	if lib != "" {
		name += " " + lib
	}
	embed.Fields = append(embed.Fields, Field{
		Name:  name,
		Value: textutil.IndentBlock(strings.Join(lines, "\n")),
	})
}

func (c *Composer) addCompactInfo(embed *Embed, f Facets, lib, release, fsk, rating, duration, genre string, seriesKind bool, kind media.Kind) {
	bold := func(t string) string { return "**" + t + "**" }
	var lines []string
	if lib != "" {
		lines = append(lines, "Bereich → "+bold(lib))
	}
	if release != "" {
		lines = append(lines, "Release → "+bold(release))
	}
	if fsk != "" || rating != "" {
		lines = append(lines, "Bewertung → "+bold(joinNonEmpty(", ", fsk, rating)))
	}
	if duration != "" {
		lines = append(lines, "Dauer → "+bold(duration))
	}
	if genre != "" {
		lines = append(lines, "Genre → "+bold(genre))
	}
	if seriesKind && f.Status != "" {
		lines = append(lines, "Status → "+bold(f.Status))
	}
	if kind == media.KindMovie && f.People.Actor != "" {
		lines = append(lines, "Starring → "+bold(f.People.Actor))
	}
	if len(lines) > 0 {
		embed.Description = textutil.IndentBlock(strings.Join(lines, "\n"))
	}
}

func (c *Composer) addClassicInfo(embed *Embed, f Facets, lib, release, fsk, rating, duration, genre string, seriesKind bool, kind media.Kind) {
	add := func(name, value string) {
		if value != "" {
			embed.Fields = append(embed.Fields, Field{Name: name, Value: value, Inline: true})
		}
	}
	add("Library", lib)
	add("Veröffentlicht", release)
	add("Bewertung", joinNonEmpty(", ", fsk, rating))
	add("Dauer", duration)
	add("Genre", genre)
	if seriesKind {
		add("Status", f.Status)
	}
	if kind == media.KindMovie {
		add("Starring", f.People.Actor)
	}
}

// addPlot shapes the plot text under the layout limits and marks truncation
// with an ellipsis. An empty plot renders the placeholder.
func (c *Composer) addPlot(embed *Embed, f Facets) {
	value := placeholderPlot
	if f.Plot != "" {
		norm := textutil.Normalize(f.Plot)
		cut, truncated := textutil.Truncate(norm, c.layout.PlotLimit)
		lines, dropped := textutil.Wrap(cut, c.layout.MaxLineLen, c.layout.MaxLines, c.layout.MaxWordSplitLen)
		if truncated || dropped {
			lines = textutil.MarkEllipsis(lines)
		}
		value = strings.Join(lines, "\n")
	}

	name := "📝 Handlung"
	if c.layout.Style == StyleBoxed && f.People.Actor != "" {
		name = "📝 Handlung – Starring ▸ " + f.People.Actor
	}
	embed.Fields = append(embed.Fields, Field{Name: name, Value: textutil.IndentBlock(value)})
}

// addDetails renders the details block: subtitle languages, edition, the
// crew line, and the outbound links.
func (c *Composer) addDetails(embed *Embed, s *enrich.Subject, f Facets) {
	audio, subs := s.Item.Languages()

	label := detailsLabel(s)
	if len(audio) > 0 {
		label += " ← " + strings.Join(audio, ", ")
	}

	var parts []string
	if len(subs) > 0 {
		shown := subs
		if len(shown) > 4 {
			shown = shown[:4]
		}
		line := "Untertitel: " + strings.Join(shown, ", ")
		if rem := len(subs) - len(shown); rem > 0 {
			line += fmt.Sprintf(" + %d weitere", rem)
		}
		parts = append(parts, line)
	}
	if f.Edition != "" {
		parts = append(parts, "Edition: "+f.Edition)
	}

	links := formatLinks(f.Links)
	if crew := crewLine(f.People); crew != "" {
		parts = append(parts, crew+" • "+links)
	} else {
		parts = append(parts, links)
	}

	value := strings.Join(parts, "\n")
	if c.layout.Style != StyleClassic {
		value = textutil.IndentBlock(value)
	}
	embed.Fields = append(embed.Fields, Field{Name: label, Value: value})
}

func detailsLabel(s *enrich.Subject) string {
	seasonTotal := 0
	if s.Series != nil {
		seasonTotal = s.Series.ChildCount.Int()
	}
	switch s.Item.Kind() {
	case media.KindMovie:
		year := ""
		if y := s.Item.Year.Int(); y > 0 {
			year = strconv.Itoa(y)
		}
		return "🎞️ Details – Film → " + year
	case media.KindSeason:
		label := fmt.Sprintf("🎞️ Details – Staffel → %d", s.Item.SeasonNumber())
		if seasonTotal > 0 {
			label += fmt.Sprintf(" von %d", seasonTotal)
		}
		return label
	case media.KindEpisode:
		return fmt.Sprintf("🎞️ Details – Serie → S%02dE%02d", s.Item.SeasonNumber(), s.Item.EpisodeNumber())
	default:
		label := "🎞️ Details – Serie"
		if seasonTotal > 0 {
			label += fmt.Sprintf(" → %d Staffeln", seasonTotal)
		}
		return label
	}
}

// crewLine picks the first available crew credit in display priority.
func crewLine(p enrich.People) string {
	switch {
	case p.Writer != "":
		return "Autor: " + p.Writer
	case p.Producer != "":
		return "Produzent: " + p.Producer
	case p.Director != "":
		return "Regie: " + p.Director
	default:
		return ""
	}
}

func formatLinks(links []enrich.Link) string {
	formatted := make([]string, 0, len(links))
	for _, l := range links {
		switch l.Label {
		case "Trailer", "Plex Trailer":
			formatted = append(formatted, fmt.Sprintf("▶️ [%s](%s)", l.Label, l.URL))
		default:
			formatted = append(formatted, fmt.Sprintf("[%s](%s)", l.Label, l.URL))
		}
	}
	return strings.Join(formatted, " | ")
}

func footerText(f Facets, now time.Time) string {
	return joinNonEmpty(" • ", f.Studio, f.Codec, f.Resolution, now.Format("02.01.2006, 15:04"))
}

// formatRelease rewrites an ISO date as dd.mm.yyyy; other values pass
// through unchanged.
func formatRelease(date string) string {
	if date == "" {
		return ""
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("02.01.2006")
	}
	return date
}

func formatRating(raw string) string {
	if raw == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return fmt.Sprintf("%.1f/10", v)
	}
	return raw
}

func ratingLine(fsk, rating string) string {
	if rating != "" && fsk != "" {
		return rating + " (" + fsk + ")"
	}
	return firstOf(rating, fsk)
}

func formatDuration(mins int) string {
	switch {
	case mins >= 60:
		return fmt.Sprintf("%d Std. %d Min", mins/60, mins%60)
	case mins > 0:
		return fmt.Sprintf("%d Min", mins)
	default:
		return ""
	}
}

func durationMinutes(s *enrich.Subject) int {
	if s.Item.Kind() == media.KindSeason {
		return s.Item.ChildrenDurationMinutes()
	}
	if mins := s.Item.DurationMinutes(); mins > 0 {
		return mins
	}
	if s.Season != nil {
		if mins := s.Season.DurationMinutes(); mins > 0 {
			return mins
		}
	}
	if s.Series != nil {
		return s.Series.DurationMinutes()
	}
	return 0
}

func genreLine(s *enrich.Subject) string {
	genres := s.Item.Genres
	if len(genres) == 0 && s.Season != nil {
		genres = s.Season.Genres
	}
	if len(genres) == 0 && s.Series != nil {
		genres = s.Series.Genres
	}
	if len(genres) > 2 {
		genres = genres[:2]
	}
	return strings.Join(genres, ", ")
}

func ratingCode(s *enrich.Subject) string {
	code := coalesce(s, func(it *media.Item) string { return it.ContentRating })
	if code == "" {
		return ""
	}
	return RatingLabel(strings.TrimSpace(code))
}

func ratingValue(s *enrich.Subject) string {
	pick := func(it *media.Item) string {
		return firstOf(it.Rating.String(), it.AudienceRating.String(), it.UserRating.String())
	}
	return coalesce(s, pick)
}

// coalesce returns the first non-empty value of the item, season, and
// series records.
func coalesce(s *enrich.Subject, pick func(*media.Item) string) string {
	if v := pick(s.Item); v != "" {
		return v
	}
	if s.Season != nil {
		if v := pick(s.Season); v != "" {
			return v
		}
	}
	if s.Series != nil {
		if v := pick(s.Series); v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	var kept []string
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
