package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aniscout/pkg/anilist"
	"aniscout/pkg/models"
	"aniscout/pkg/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	trendingFetchCap = 20
	seasonalFetchCap = 30
	topFetchCap      = 20

	// Fallback trend scores used when the catalog reports no signal.
	trendingFallbackScore = 0.5
	seasonalFallbackScore = 0.3
	topFallbackScore      = 0.5

	feedDefaultTrendScore = 0.5
)

// Catalog is the subset of the AniList client used by the research service.
type Catalog interface {
	GetTrending(ctx context.Context, limit, page int) []*models.Anime
	GetSeasonal(ctx context.Context, year int, season string, limit, page int) []*models.Anime
	GetTop(ctx context.Context, sortBy string, limit, page int) []*models.Anime
}

// FeedFetcher is the subset of the RSS aggregator used by the research service.
type FeedFetcher interface {
	FetchAllSources(ctx context.Context, days, limitPerSource int, sources []string) ([]models.FeedItem, *models.FetchStats)
}

// EntityLinker resolves free text to catalog entries.
type EntityLinker interface {
	ExtractAndLink(ctx context.Context, text string, useCache bool) []*models.LinkedEntity
}

// ResearchConfig tunes a ResearchService.
type ResearchConfig struct {
	FetchDays    int
	FetchLimit   int
	LinkEntities bool
}

// ResearchService ingests catalog and feed data into the research store.
type ResearchService struct {
	repo    repository.Repository
	catalog Catalog
	feeds   FeedFetcher
	linker  EntityLinker
	cfg     ResearchConfig
}

// NewResearchService creates a research service with injected collaborators.
// The linker may be nil when entity linking is disabled.
func NewResearchService(repo repository.Repository, catalog Catalog, feeds FeedFetcher, linker EntityLinker, cfg ResearchConfig) *ResearchService {
	if cfg.FetchDays <= 0 {
		cfg.FetchDays = 7
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 50
	}
	return &ResearchService{
		repo:    repo,
		catalog: catalog,
		feeds:   feeds,
		linker:  linker,
		cfg:     cfg,
	}
}

// SyncAniList pulls trending, current-season and top-rated entries from the
// catalog and stores each unseen one as a research item. Entries already
// present (matched by source URL) are skipped. Returns the number of newly
// saved items.
func (s *ResearchService) SyncAniList(ctx context.Context) (int, error) {
	year, season := anilist.CurrentSeason()

	saved := 0

	trending := s.catalog.GetTrending(ctx, minInt(s.cfg.FetchLimit, trendingFetchCap), 1)
	for _, anime := range trending {
		n, err := s.saveCatalogItem(ctx, anime, models.SourceAniListTrending, trendScore(anime.Trending, 1000, trendingFallbackScore))
		if err != nil {
			log.WithError(err).WithField("anilistID", anime.AniListID).Warn("Failed to save trending entry")
			continue
		}
		saved += n
	}

	seasonal := s.catalog.GetSeasonal(ctx, year, season, minInt(s.cfg.FetchLimit, seasonalFetchCap), 1)
	for _, anime := range seasonal {
		n, err := s.saveCatalogItem(ctx, anime, models.SourceAniListSeasonal, trendScore(anime.Popularity, 100000, seasonalFallbackScore))
		if err != nil {
			log.WithError(err).WithField("anilistID", anime.AniListID).Warn("Failed to save seasonal entry")
			continue
		}
		saved += n
	}

	top := s.catalog.GetTop(ctx, "SCORE_DESC", minInt(s.cfg.FetchLimit, topFetchCap), 1)
	for _, anime := range top {
		n, err := s.saveCatalogItem(ctx, anime, models.SourceAniListTop, trendScore(anime.AverageScore, 100, topFallbackScore))
		if err != nil {
			log.WithError(err).WithField("anilistID", anime.AniListID).Warn("Failed to save top entry")
			continue
		}
		saved += n
	}

	log.WithFields(log.Fields{
		"trending": len(trending),
		"seasonal": len(seasonal),
		"top":      len(top),
		"saved":    saved,
	}).Info("AniList sync complete")

	return saved, nil
}

func (s *ResearchService) saveCatalogItem(ctx context.Context, anime *models.Anime, source string, score float64) (int, error) {
	sourceURL := anime.SiteURL
	if sourceURL == "" {
		sourceURL = "https://anilist.co/anime/" + strconv.FormatInt(anime.AniListID, 10)
	}

	existing, err := s.repo.GetResearchItemBySourceURL(sourceURL)
	if err != nil {
		return 0, fmt.Errorf("failed to check for existing item: %w", err)
	}
	if existing != nil {
		return 0, nil
	}

	id := anime.AniListID
	var malID *int64
	if anime.MALID != 0 {
		v := anime.MALID
		malID = &v
	}
	title := anime.BestTitle()

	keywords := append([]string(nil), anime.Genres...)
	for _, tag := range anime.Tags {
		keywords = append(keywords, tag.Name)
	}

	item := &models.ResearchItem{
		ID:               uuid.NewString(),
		Title:            title,
		Summary:          anime.Description,
		SourceURL:        sourceURL,
		Source:           source,
		Category:         "catalog",
		ItemType:         "series",
		Keywords:         keywords,
		Entities:         anime.TitleVariants(),
		TrendScore:       score,
		ReliabilityScore: 1.0,
		RelevanceScore:   score,
		AniListID:        anime.AniListID,
		MALID:            anime.MALID,
		IsActionable:     true,
		IsLinked:         true,
		Status:           "new",
		LinkedSeries: []*models.LinkedEntity{{
			OriginalText:    title,
			NormalizedTitle: title,
			AniListID:       &id,
			MALID:           malID,
			Confidence:      1.0,
			MatchType:       models.MatchExact,
			AnimeData:       anime,
		}},
		PublishedAt: time.Now(),
		CreatedAt:   time.Now(),
	}

	if err := s.repo.SaveResearchItem(item); err != nil {
		return 0, fmt.Errorf("failed to save research item: %w", err)
	}
	return 1, nil
}

// SyncFeeds pulls items from every enabled RSS source and stores each unseen
// one as a research item, optionally running entity linking over its text.
// Returns the number of newly saved items and the per-source fetch stats.
func (s *ResearchService) SyncFeeds(ctx context.Context) (int, *models.FetchStats, error) {
	items, stats := s.feeds.FetchAllSources(ctx, s.cfg.FetchDays, s.cfg.FetchLimit, nil)

	saved := 0
	for i := range items {
		feedItem := &items[i]

		existing, err := s.repo.GetResearchItemBySourceURL(feedItem.Link)
		if err != nil {
			log.WithError(err).WithField("link", feedItem.Link).Warn("Failed to check for existing item")
			continue
		}
		if existing != nil {
			continue
		}

		item := &models.ResearchItem{
			ID:               uuid.NewString(),
			Title:            feedItem.Title,
			Summary:          feedItem.Summary,
			Content:          feedItem.RawText,
			SourceURL:        feedItem.Link,
			Source:           "rss_" + feedItem.Source,
			Category:         "news",
			ItemType:         "news",
			Keywords:         append([]string(nil), feedItem.Categories...),
			TrendScore:       feedDefaultTrendScore,
			ReliabilityScore: feedItem.ReliabilityScore,
			RelevanceScore:   feedItem.ReliabilityScore * feedDefaultTrendScore,
			IsActionable:     true,
			Status:           "new",
			PublishedAt:      feedItem.PublishedAt,
			CreatedAt:        time.Now(),
		}

		if s.cfg.LinkEntities && s.linker != nil {
			text := strings.TrimSpace(feedItem.Title + " " + feedItem.RawText)
			linked := s.linker.ExtractAndLink(ctx, text, true)
			for _, entity := range linked {
				item.Entities = append(item.Entities, entity.OriginalText)
				if entity.IsLinked() {
					item.LinkedSeries = append(item.LinkedSeries, entity)
				}
			}
			item.IsLinked = len(item.LinkedSeries) > 0
			if item.IsLinked {
				first := item.LinkedSeries[0]
				if first.AniListID != nil {
					item.AniListID = *first.AniListID
				}
				if first.MALID != nil {
					item.MALID = *first.MALID
				}
			}
		}

		if err := s.repo.SaveResearchItem(item); err != nil {
			log.WithError(err).WithField("link", feedItem.Link).Warn("Failed to save feed item")
			continue
		}
		saved++
	}

	log.WithFields(log.Fields{
		"fetched": len(items),
		"saved":   saved,
		"failed":  stats.FailedSources,
	}).Info("Feed sync complete")

	return saved, stats, nil
}

// RunResearchSync runs a full ingestion cycle (catalog then feeds) under a
// recorded run log. Phase failures are recorded but never abort the run.
func (s *ResearchService) RunResearchSync(ctx context.Context, triggeredBy string) (*models.RunLog, error) {
	run := &models.RunLog{
		ID:          uuid.NewString(),
		RunType:     "full_sync",
		TriggeredBy: triggeredBy,
		Status:      models.RunStatusRunning,
		StartedAt:   time.Now(),
	}
	if err := s.repo.SaveRunLog(run); err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	log.WithFields(log.Fields{
		"runID":       run.ID,
		"triggeredBy": triggeredBy,
	}).Info("Starting research sync")

	catalogSaved, err := s.SyncAniList(ctx)
	if err != nil {
		run.Errors = append(run.Errors, fmt.Sprintf("anilist sync: %v", err))
	}
	run.CatalogItemsSaved = catalogSaved

	feedSaved, stats, err := s.SyncFeeds(ctx)
	if err != nil {
		run.Errors = append(run.Errors, fmt.Sprintf("feed sync: %v", err))
	}
	run.FeedItemsSaved = feedSaved
	if stats != nil {
		run.FeedSourcesFailed = stats.FailedSources
	}

	run.ItemsSaved = catalogSaved + feedSaved
	run.Status = models.RunStatusCompleted
	if len(run.Errors) > 0 {
		run.Status = models.RunStatusFailed
	}
	run.CompletedAt = time.Now()

	if err := s.repo.SaveRunLog(run); err != nil {
		return run, fmt.Errorf("failed to record run result: %w", err)
	}

	log.WithFields(log.Fields{
		"runID":  run.ID,
		"status": run.Status,
		"saved":  run.ItemsSaved,
	}).Info("Research sync finished")

	return run, nil
}

func trendScore(raw int64, scale float64, fallback float64) float64 {
	if raw > 0 {
		return float64(raw) / scale
	}
	return fallback
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
