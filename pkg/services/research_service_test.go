package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timshannon/bolthold"

	"aniscout/pkg/models"
	"aniscout/pkg/repository"
)

type fakeCatalog struct {
	trending []*models.Anime
	seasonal []*models.Anime
	top      []*models.Anime
}

func (f *fakeCatalog) GetTrending(ctx context.Context, limit, page int) []*models.Anime {
	return f.trending
}

func (f *fakeCatalog) GetSeasonal(ctx context.Context, year int, season string, limit, page int) []*models.Anime {
	return f.seasonal
}

func (f *fakeCatalog) GetTop(ctx context.Context, sortBy string, limit, page int) []*models.Anime {
	return f.top
}

type fakeFeeds struct {
	items []models.FeedItem
	stats *models.FetchStats
}

func (f *fakeFeeds) FetchAllSources(ctx context.Context, days, limitPerSource int, sources []string) ([]models.FeedItem, *models.FetchStats) {
	stats := f.stats
	if stats == nil {
		stats = &models.FetchStats{TotalSources: 1, SuccessfulSources: 1}
	}
	return f.items, stats
}

type fakeLinker struct {
	entities []*models.LinkedEntity
	calls    int
}

func (f *fakeLinker) ExtractAndLink(ctx context.Context, text string, useCache bool) []*models.LinkedEntity {
	f.calls++
	return f.entities
}

func newTestRepo(t *testing.T) repository.Repository {
	t.Helper()

	store, err := bolthold.Open(filepath.Join(t.TempDir(), "test.db"), 0666, nil)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return repository.NewBoltRepository(store)
}

func catalogAnime(id int64, title string, trending int64) *models.Anime {
	return &models.Anime{
		AniListID:    id,
		TitleEnglish: title,
		Trending:     trending,
		SiteURL:      "https://anilist.co/anime/" + title,
		Genres:       []string{"Action"},
	}
}

func TestSyncAniListSavesAndDedupes(t *testing.T) {
	repo := newTestRepo(t)
	shared := catalogAnime(1, "one", 1500)

	catalog := &fakeCatalog{
		trending: []*models.Anime{shared, catalogAnime(2, "two", 0)},
		top:      []*models.Anime{shared}, // same entry again, must not duplicate
	}

	svc := NewResearchService(repo, catalog, &fakeFeeds{}, nil, ResearchConfig{})
	saved, err := svc.SyncAniList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	item, err := repo.GetResearchItemBySourceURL(shared.SiteURL)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, models.SourceAniListTrending, item.Source, "first phase to see the entry wins")
	assert.InDelta(t, 1.5, item.TrendScore, 1e-9)
	assert.Equal(t, int64(1), item.AniListID)
	assert.True(t, item.IsLinked)
	require.Len(t, item.LinkedSeries, 1)
	assert.Equal(t, models.MatchExact, item.LinkedSeries[0].MatchType)

	// Missing trend signal falls back to the default.
	other, err := repo.GetResearchItemBySourceURL("https://anilist.co/anime/two")
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, 0.5, other.TrendScore)
}

func TestSyncAniListSeasonalAndTopScores(t *testing.T) {
	repo := newTestRepo(t)

	seasonal := catalogAnime(3, "three", 0)
	seasonal.Popularity = 250000
	top := catalogAnime(4, "four", 0)
	top.AverageScore = 90

	catalog := &fakeCatalog{
		seasonal: []*models.Anime{seasonal},
		top:      []*models.Anime{top},
	}

	svc := NewResearchService(repo, catalog, &fakeFeeds{}, nil, ResearchConfig{})
	saved, err := svc.SyncAniList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	seasonalItem, err := repo.GetResearchItemBySourceURL(seasonal.SiteURL)
	require.NoError(t, err)
	require.NotNil(t, seasonalItem)
	assert.InDelta(t, 2.5, seasonalItem.TrendScore, 1e-9)
	assert.Equal(t, models.SourceAniListSeasonal, seasonalItem.Source)

	topItem, err := repo.GetResearchItemBySourceURL(top.SiteURL)
	require.NoError(t, err)
	require.NotNil(t, topItem)
	assert.InDelta(t, 0.9, topItem.TrendScore, 1e-9)
	assert.Equal(t, models.SourceAniListTop, topItem.Source)
}

func feedItemFixture(title, link string) models.FeedItem {
	return models.FeedItem{
		Title:            title,
		Link:             link,
		Source:           "ann",
		RawText:          title + " body",
		ReliabilityScore: 0.95,
		PublishedAt:      time.Now(),
	}
}

func TestSyncFeedsSavesAndLinks(t *testing.T) {
	repo := newTestRepo(t)

	id := int64(16498)
	linker := &fakeLinker{entities: []*models.LinkedEntity{{
		OriginalText: "Attack on Titan",
		AniListID:    &id,
		Confidence:   1.0,
		MatchType:    models.MatchExact,
	}}}

	feeds := &fakeFeeds{items: []models.FeedItem{
		feedItemFixture("Season finale announced", "https://example.com/1"),
		feedItemFixture("Duplicate link", "https://example.com/1"),
		feedItemFixture("Second story", "https://example.com/2"),
	}}

	svc := NewResearchService(repo, &fakeCatalog{}, feeds, linker, ResearchConfig{LinkEntities: true})
	saved, stats, err := svc.SyncFeeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, saved, "duplicate link must be skipped")
	assert.Equal(t, 1, stats.SuccessfulSources)
	assert.Equal(t, 2, linker.calls)

	item, err := repo.GetResearchItemBySourceURL("https://example.com/1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "rss_ann", item.Source)
	assert.Equal(t, "news", item.Category)
	assert.Equal(t, "Season finale announced body", item.Content)
	assert.Equal(t, 0.95, item.ReliabilityScore)
	assert.True(t, item.IsLinked)
	assert.True(t, item.IsActionable)
	assert.Equal(t, int64(16498), item.AniListID)
	assert.Equal(t, []string{"Attack on Titan"}, item.Entities)
}

func TestSyncFeedsLinkingDisabled(t *testing.T) {
	repo := newTestRepo(t)
	linker := &fakeLinker{}
	feeds := &fakeFeeds{items: []models.FeedItem{feedItemFixture("Story", "https://example.com/1")}}

	svc := NewResearchService(repo, &fakeCatalog{}, feeds, linker, ResearchConfig{LinkEntities: false})
	saved, _, err := svc.SyncFeeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.Equal(t, 0, linker.calls)

	item, err := repo.GetResearchItemBySourceURL("https://example.com/1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Story body", item.Content)
	assert.True(t, item.IsActionable, "feed items are actionable even without linking")
	assert.False(t, item.IsLinked)
}

func TestRunResearchSync(t *testing.T) {
	repo := newTestRepo(t)

	catalog := &fakeCatalog{trending: []*models.Anime{catalogAnime(1, "one", 1000)}}
	feeds := &fakeFeeds{
		items: []models.FeedItem{feedItemFixture("Story", "https://example.com/1")},
		stats: &models.FetchStats{TotalSources: 4, SuccessfulSources: 2, FailedSources: 1, SkippedSources: 1},
	}

	svc := NewResearchService(repo, catalog, feeds, nil, ResearchConfig{})
	run, err := svc.RunResearchSync(context.Background(), "test")
	require.NoError(t, err)
	require.NotNil(t, run)

	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, "test", run.TriggeredBy)
	assert.Equal(t, 1, run.CatalogItemsSaved)
	assert.Equal(t, 1, run.FeedItemsSaved)
	assert.Equal(t, 2, run.ItemsSaved)
	assert.Equal(t, 1, run.FeedSourcesFailed)
	assert.False(t, run.CompletedAt.IsZero())

	runs, err := repo.FindRecentRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}
