package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"plexnote/internal/config"
	"plexnote/internal/delivery"
	"plexnote/internal/embedmsg"
	"plexnote/internal/enrich"
	"plexnote/internal/identity"
	"plexnote/internal/ledger"
	"plexnote/internal/logging"
	"plexnote/internal/media"
	"plexnote/internal/services/tautulli"
	"plexnote/internal/services/tmdb"
	"plexnote/internal/services/tvdb"
)

// Deps bundles the collaborators of a Pipeline. Tests substitute fakes here.
type Deps struct {
	Catalog  tautulli.MetadataFetcher
	Resolver *identity.Resolver
	Enricher *enrich.Enricher
	Composer *embedmsg.Composer
	Ledger   *ledger.Ledger
	Sender   delivery.Sender
}

// Pipeline executes notification runs. One Pipeline serves one process
// invocation; the enricher caches credits per instance.
type Pipeline struct {
	deps   Deps
	style  string
	logger *slog.Logger
	now    func() time.Time
}

// New wires a Pipeline from configuration, constructing the real service
// clients.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	catalog, err := tautulli.New(cfg.Tautulli.URL, cfg.Tautulli.APIKey,
		time.Duration(cfg.Tautulli.RequestTimeout)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("build tautulli client: %w", err)
	}

	var tmdbClient *tmdb.Client
	if cfg.TMDB.APIKey != "" {
		tmdbClient, err = tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL,
			cfg.TMDB.ImageBaseURL, cfg.TMDB.Language,
			time.Duration(cfg.TMDB.RequestTimeout)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("build tmdb client: %w", err)
		}
	}

	var tvdbClient *tvdb.Client
	if cfg.TVDB.APIKey != "" {
		tvdbClient, err = tvdb.New(cfg.TVDB.APIKey, cfg.TVDB.BaseURL,
			cfg.TVDB.ArtworkBaseURL, cfg.TVDB.Language, cfg.TVDB.FallbackLanguage,
			time.Duration(cfg.TVDB.TokenTTLSeconds)*time.Second,
			time.Duration(cfg.TVDB.RequestTimeout)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("build tvdb client: %w", err)
		}
	}

	enrichOpts := enrich.Options{
		PlexBaseURL:      cfg.Plex.BaseURL,
		PlexServerID:     cfg.Plex.ServerID,
		Language:         cfg.TMDB.Language,
		FallbackLanguage: cfg.TMDB.FallbackLanguage,
		PlaceholderImage: cfg.Embed.PlaceholderImage,
		Logger:           logger,
	}
	if tmdbClient != nil {
		enrichOpts.TMDB = tmdbClient
	}
	if tvdbClient != nil {
		enrichOpts.TVDB = tvdbClient
	}

	var resolver *identity.Resolver
	if tmdbClient != nil {
		resolver = identity.NewResolver(tmdbClient, logger)
	} else {
		resolver = identity.NewResolver(nil, logger)
	}

	deps := Deps{
		Catalog:  catalog,
		Resolver: resolver,
		Enricher: enrich.New(enrichOpts),
		Composer: embedmsg.NewComposer(embedmsg.Layout{
			Style:           cfg.Embed.Style,
			MaxLineLen:      cfg.Embed.MaxLineLen,
			MaxLines:        cfg.Embed.MaxLines,
			PlotLimit:       cfg.Embed.PlotLimit,
			MaxWordSplitLen: cfg.Embed.MaxWordSplitLen,
			SingleLineLimit: cfg.Embed.SingleLineLimit,
		}),
		Ledger: ledger.New(cfg.Ledger.Path, cfg.Ledger.MaxRecords, logger),
		Sender: delivery.New(cfg.Webhook.URL, cfg.Webhook.RetryAttempts,
			time.Duration(cfg.Webhook.RetryAfterDefault)*time.Second,
			time.Duration(cfg.Webhook.RequestTimeout)*time.Second, logger),
	}
	return NewWithDeps(deps, cfg.Embed.Style, logger), nil
}

// NewWithDeps wires a Pipeline from pre-built collaborators.
func NewWithDeps(deps Deps, style string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		deps:   deps,
		style:  style,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		now:    time.Now,
	}
}

// Run executes one notification run for the given rating key. An empty key
// falls back to the most recently added library item. A suppressed duplicate
// is not an error; a failed delivery is.
func (p *Pipeline) Run(ctx context.Context, ratingKey string) error {
	logger := p.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

	if ratingKey == "" {
		latest, err := p.deps.Catalog.LatestRatingKey(ctx)
		if err != nil {
			return fmt.Errorf("resolve latest rating key: %w", err)
		}
		ratingKey = latest
		logger.Info("no rating key supplied, using most recent item",
			logging.String("rating_key", ratingKey))
	}

	item, err := p.deps.Catalog.Metadata(ctx, ratingKey, true)
	if err != nil {
		return fmt.Errorf("fetch metadata for %s: %w", ratingKey, err)
	}

	signature := ledger.Signature(item)
	admitted, err := p.deps.Ledger.Admit(ratingKey, signature)
	if err != nil {
		return fmt.Errorf("ledger admission: %w", err)
	}
	if !admitted {
		logger.Info("duplicate suppressed",
			logging.String("rating_key", ratingKey),
			logging.String("signature", signature))
		return nil
	}

	season, series := p.fetchAncestors(ctx, logger, item)
	subject := &enrich.Subject{
		Item:     item,
		Season:   season,
		Series:   series,
		Identity: p.deps.Resolver.Resolve(ctx, item, season, series),
	}

	embed := p.deps.Composer.Compose(subject, p.resolveFacets(ctx, subject), p.now())

	status := ledger.StatusSent
	sendErr := p.deps.Sender.Send(ctx, embed)
	if sendErr != nil {
		status = ledger.StatusFail
	}
	if err := p.deps.Ledger.SetStatus(ratingKey, signature, status); err != nil {
		logger.Warn("ledger status update failed", logging.Error(err))
	}

	if sendErr != nil {
		logger.Error("notification failed",
			logging.String("rating_key", ratingKey),
			logging.String("title", embed.Title),
			logging.Error(sendErr))
		return fmt.Errorf("deliver notification: %w", sendErr)
	}
	logger.Info("notification sent",
		logging.String("rating_key", ratingKey),
		logging.String("media_type", item.MediaType),
		logging.String("title", embed.Title))
	return nil
}

// fetchAncestors loads the season and series records an episode or season
// falls back to. Fetch failures degrade to missing ancestors.
func (p *Pipeline) fetchAncestors(ctx context.Context, logger *slog.Logger, item *media.Item) (season, series *media.Item) {
	fetch := func(key media.FlexString) *media.Item {
		if key.String() == "" {
			return nil
		}
		ancestor, err := p.deps.Catalog.Metadata(ctx, key.String(), false)
		if err != nil {
			logger.Warn("ancestor metadata fetch failed",
				logging.String("rating_key", key.String()), logging.Error(err))
			return nil
		}
		return ancestor
	}

	switch item.Kind() {
	case media.KindEpisode:
		return fetch(item.ParentRatingKey), fetch(item.GrandparentRatingKey)
	case media.KindSeason:
		return nil, fetch(item.ParentRatingKey)
	default:
		return nil, nil
	}
}

// resolveFacets walks every enrichment chain for the subject.
func (p *Pipeline) resolveFacets(ctx context.Context, s *enrich.Subject) embedmsg.Facets {
	e := p.deps.Enricher
	codec, resolution := codecRes(s)
	return embedmsg.Facets{
		Title:      e.Title(ctx, s),
		SeriesName: e.SeriesName(s),
		Plot:       e.Plot(ctx, s),
		Status:     e.Status(ctx, s),
		ImageURL:   e.Image(ctx, s, p.style == embedmsg.StyleCompact),
		Edition:    e.Edition(ctx, s),
		Links:      e.Links(ctx, s),
		People:     e.Credits(ctx, s),
		Codec:      codec,
		Resolution: resolution,
		Studio:     studio(s),
	}
}

// codecRes probes the raw metadata trees for codec and resolution, item
// first, then ancestors.
func codecRes(s *enrich.Subject) (string, string) {
	for _, it := range []*media.Item{s.Item, s.Season, s.Series} {
		if it == nil {
			continue
		}
		if codec, resolution := media.FindCodecRes(it.Raw); codec != "" || resolution != "" {
			return codec, resolution
		}
	}
	return "", ""
}

func studio(s *enrich.Subject) string {
	for _, it := range []*media.Item{s.Item, s.Season, s.Series} {
		if it != nil && it.Studio != "" {
			return it.Studio
		}
	}
	return ""
}
