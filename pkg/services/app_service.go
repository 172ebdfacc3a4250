package services

import (
	"context"
	"fmt"
	"time"

	"aniscout/pkg/linker"
	"aniscout/pkg/models"
	"aniscout/pkg/repository"
	"aniscout/pkg/rss"

	log "github.com/sirupsen/logrus"
)

// ResearchStats summarizes the state of the research store for the API.
type ResearchStats struct {
	TotalItems int                   `json:"total_items"`
	BySource   map[string]int        `json:"by_source"`
	RecentRuns []*models.RunLog      `json:"recent_runs"`
	Cache      linker.CacheStats     `json:"cache"`
	Sources    map[string]rss.Source `json:"sources"`
}

// AppService coordinates all application services
type AppService struct {
	repo     repository.Repository
	research *ResearchService
	linker   *linker.Linker
	feeds    *rss.Aggregator
}

func NewAppService(
	repo repository.Repository,
	research *ResearchService,
	entityLinker *linker.Linker,
	feeds *rss.Aggregator,
) *AppService {
	return &AppService{
		repo:     repo,
		research: research,
		linker:   entityLinker,
		feeds:    feeds,
	}
}

// Repo exposes the backing repository for read-side handlers.
func (s *AppService) Repo() repository.Repository {
	return s.repo
}

// Linker exposes the entity linker for ad hoc lookups.
func (s *AppService) Linker() *linker.Linker {
	return s.linker
}

// Feeds exposes the RSS source registry.
func (s *AppService) Feeds() *rss.Aggregator {
	return s.feeds
}

// RunTasks executes one full ingestion cycle.
func (s *AppService) RunTasks(ctx context.Context, triggeredBy string) (*models.RunLog, error) {
	log.Info("Starting application tasks")
	startTime := time.Now()

	run, err := s.research.RunResearchSync(ctx, triggeredBy)
	if err != nil {
		log.WithError(err).Error("Failed to run research sync")
		return run, fmt.Errorf("running research sync: %w", err)
	}

	log.WithField("duration", time.Since(startTime)).Info("Successfully completed all application tasks")
	return run, nil
}

// Stats gathers store counts, recent runs and linker cache state.
func (s *AppService) Stats() (*ResearchStats, error) {
	total, err := s.repo.CountResearchItems()
	if err != nil {
		return nil, fmt.Errorf("counting research items: %w", err)
	}

	bySource, err := s.repo.CountBySource()
	if err != nil {
		return nil, fmt.Errorf("counting items by source: %w", err)
	}

	runs, err := s.repo.FindRecentRuns(10)
	if err != nil {
		return nil, fmt.Errorf("listing recent runs: %w", err)
	}

	stats := &ResearchStats{
		TotalItems: total,
		BySource:   bySource,
		RecentRuns: runs,
		Sources:    s.feeds.Sources(),
	}
	if s.linker != nil {
		stats.Cache = s.linker.GetCacheStats()
	}
	return stats, nil
}

// Close releases the backing store.
func (s *AppService) Close() error {
	return s.repo.Close()
}
