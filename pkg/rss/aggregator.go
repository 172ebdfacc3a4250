package rss

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	apperrors "aniscout/pkg/errors"
	"aniscout/pkg/models"
)

const defaultTimeout = 30 * time.Second

// Aggregator fetches feeds from the source registry. Sources are fetched
// strictly sequentially; fail-open semantics are the defining property of
// the aggregate fetch.
type Aggregator struct {
	httpClient *http.Client

	mu      sync.RWMutex
	sources map[string]Source
}

// NewAggregator creates an aggregator seeded with the default registry.
func NewAggregator(timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Aggregator{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sources: DefaultSources(),
	}
}

// Sources returns a copy of the current registry.
func (a *Aggregator) Sources() map[string]Source {
	a.mu.RLock()
	defer a.mu.RUnlock()

	sources := make(map[string]Source, len(a.sources))
	for key, source := range a.sources {
		sources[key] = source
	}
	return sources
}

// AddSource registers a new feed for the lifetime of this instance. The
// reliability score must be within [0, 1]; the new source is enabled.
func (a *Aggregator) AddSource(key, name, url string, reliabilityScore float64, category string) error {
	if reliabilityScore < 0 || reliabilityScore > 1 {
		log.WithFields(log.Fields{
			"source": key,
			"score":  reliabilityScore,
		}).Warn("Rejecting feed source with out-of-range reliability score")
		return apperrors.ErrInvalidReliability
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.sources[key] = Source{
		Name:             name,
		URL:              url,
		ReliabilityScore: reliabilityScore,
		Category:         category,
		Enabled:          true,
	}

	log.WithFields(log.Fields{
		"source": key,
		"name":   name,
	}).Info("Added feed source")
	return nil
}

// RemoveSource deletes a feed from the registry.
func (a *Aggregator) RemoveSource(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.sources[key]; !ok {
		log.WithField("source", key).Warn("Cannot remove unknown feed source")
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownSource, key)
	}

	delete(a.sources, key)
	log.WithField("source", key).Info("Removed feed source")
	return nil
}

func (a *Aggregator) source(key string) (Source, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	source, ok := a.sources[key]
	return source, ok
}

// FetchSource fetches one feed and filters it to items published within
// the last days days; items with no parseable publish date are kept.
// A positive limit truncates after filtering.
//
// Unknown keys and disabled sources are reported through the typed
// sentinels ErrUnknownSource and ErrSourceDisabled so aggregate stats can
// count them apart from transport failures. No call path panics; an empty
// item list always accompanies a non-nil error.
func (a *Aggregator) FetchSource(ctx context.Context, key string, days, limit int) ([]models.FeedItem, error) {
	source, ok := a.source(key)
	if !ok {
		log.WithField("source", key).Warn("Unknown feed source requested")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSource, key)
	}

	if !source.Enabled {
		log.WithFields(log.Fields{
			"source": key,
			"name":   source.Name,
		}).Info("Skipping disabled feed source")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSourceDisabled, key)
	}

	log.WithField("source", source.Name).Debug("Fetching feed")

	items, err := a.fetch(ctx, key, source)
	if err != nil {
		log.WithError(err).WithField("source", source.Name).Warn("Feed fetch failed, skipping source")
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	filtered := make([]models.FeedItem, 0, len(items))
	for _, item := range items {
		if item.PublishedAt.IsZero() || !item.PublishedAt.Before(cutoff) {
			filtered = append(filtered, item)
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	log.WithFields(log.Fields{
		"source": source.Name,
		"items":  len(filtered),
	}).Debug("Fetched feed")

	return filtered, nil
}

func (a *Aggregator) fetch(ctx context.Context, key string, source Source) ([]models.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: received status %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return parseFeed(body, key, source)
}

// FetchAllSources fetches every requested source (default: the full
// registry), fail-open. Disabled sources are skipped up front and counted
// apart from failures. Items from successful sources are concatenated and
// sorted by publish date descending, with undated items sorting oldest.
func (a *Aggregator) FetchAllSources(ctx context.Context, days, limitPerSource int, sources []string) ([]models.FeedItem, *models.FetchStats) {
	keys := sources
	if len(keys) == 0 {
		keys = a.sortedKeys()
	}

	stats := &models.FetchStats{
		TotalSources:  len(keys),
		SourceDetails: make(map[string]models.SourceDetail, len(keys)),
	}

	var allItems []models.FeedItem

	for _, key := range keys {
		items, err := a.FetchSource(ctx, key, days, limitPerSource)

		switch {
		case err == nil:
			stats.SuccessfulSources++
			stats.SourceDetails[key] = models.SourceDetail{
				Status: models.SourceStatusSuccess,
				Items:  len(items),
			}
			allItems = append(allItems, items...)
		case apperrors.IsSourceDisabled(err):
			stats.SkippedSources++
			stats.SourceDetails[key] = models.SourceDetail{Status: models.SourceStatusDisabled}
		default:
			stats.FailedSources++
			stats.SourceDetails[key] = models.SourceDetail{
				Status: models.SourceStatusFailed,
				Error:  err.Error(),
			}
		}
	}

	sort.SliceStable(allItems, func(i, j int) bool {
		return allItems[i].PublishedAt.After(allItems[j].PublishedAt)
	})

	if stats.SuccessfulSources > 0 {
		log.WithFields(log.Fields{
			"items":      len(allItems),
			"successful": stats.SuccessfulSources,
			"failed":     stats.FailedSources,
			"skipped":    stats.SkippedSources,
		}).Info("Fetched feeds")
	} else {
		log.WithFields(log.Fields{
			"failed":  stats.FailedSources,
			"skipped": stats.SkippedSources,
		}).Warn("No feed source could be fetched")
	}

	return allItems, stats
}

func (a *Aggregator) sortedKeys() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	keys := make([]string, 0, len(a.sources))
	for key := range a.sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
