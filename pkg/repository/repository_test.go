package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/timshannon/bolthold"

	"aniscout/pkg/models"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()

	store, err := bolthold.Open(filepath.Join(t.TempDir(), "test.db"), 0666, nil)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewBoltRepository(store)
}

func testItem(id, source, url string, trendScore float64) *models.ResearchItem {
	return &models.ResearchItem{
		ID:         id,
		Title:      "Item " + id,
		Source:     source,
		SourceURL:  url,
		TrendScore: trendScore,
		Status:     "new",
		CreatedAt:  time.Now(),
	}
}

func TestSaveAndGetResearchItem(t *testing.T) {
	repo := newTestRepo(t)

	item := testItem("a", models.SourceAniListTrending, "https://anilist.co/anime/1", 0.8)
	if err := repo.SaveResearchItem(item); err != nil {
		t.Fatalf("SaveResearchItem() error = %v", err)
	}

	got, err := repo.GetResearchItem("a")
	if err != nil {
		t.Fatalf("GetResearchItem() error = %v", err)
	}
	if got.Title != item.Title || got.SourceURL != item.SourceURL {
		t.Errorf("GetResearchItem() = %+v", got)
	}

	// Upsert with the same key must not create a second record.
	item.Title = "updated"
	if err := repo.SaveResearchItem(item); err != nil {
		t.Fatalf("SaveResearchItem(update) error = %v", err)
	}
	count, err := repo.CountResearchItems()
	if err != nil {
		t.Fatalf("CountResearchItems() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountResearchItems() = %d, want 1", count)
	}
}

func TestGetResearchItemBySourceURL(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.SaveResearchItem(testItem("a", "rss_ann", "https://example.com/news/1", 0.5)); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetResearchItemBySourceURL("https://example.com/news/1")
	if err != nil {
		t.Fatalf("GetResearchItemBySourceURL() error = %v", err)
	}
	if got == nil || got.ID != "a" {
		t.Errorf("GetResearchItemBySourceURL() = %+v", got)
	}

	missing, err := repo.GetResearchItemBySourceURL("https://example.com/absent")
	if err != nil {
		t.Fatalf("GetResearchItemBySourceURL(absent) error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetResearchItemBySourceURL(absent) = %+v, want nil", missing)
	}
}

func TestFindTrending(t *testing.T) {
	repo := newTestRepo(t)

	for _, item := range []*models.ResearchItem{
		testItem("low", models.SourceAniListTop, "u1", 0.2),
		testItem("high", models.SourceAniListTrending, "u2", 0.9),
		testItem("mid", models.SourceAniListSeasonal, "u3", 0.5),
	} {
		if err := repo.SaveResearchItem(item); err != nil {
			t.Fatal(err)
		}
	}

	items, err := repo.FindTrending(0.3, 0)
	if err != nil {
		t.Fatalf("FindTrending() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("FindTrending(0.3) returned %d items, want 2", len(items))
	}
	if items[0].ID != "high" || items[1].ID != "mid" {
		t.Errorf("FindTrending() order = %s, %s", items[0].ID, items[1].ID)
	}

	limited, err := repo.FindTrending(0, 1)
	if err != nil {
		t.Fatalf("FindTrending(limit) error = %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "high" {
		t.Errorf("FindTrending(limit=1) = %+v", limited)
	}
}

func TestFindActionable(t *testing.T) {
	repo := newTestRepo(t)

	actionable := testItem("a", "rss_ann", "u1", 0.5)
	actionable.IsActionable = true
	actionable.RelevanceScore = 0.7
	passive := testItem("b", "rss_ann", "u2", 0.5)

	if err := repo.SaveResearchItem(actionable); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveResearchItem(passive); err != nil {
		t.Fatal(err)
	}

	items, err := repo.FindActionable(0)
	if err != nil {
		t.Fatalf("FindActionable() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Errorf("FindActionable() = %+v", items)
	}
}

func TestFindBySourceAndCounts(t *testing.T) {
	repo := newTestRepo(t)

	for _, item := range []*models.ResearchItem{
		testItem("a", models.SourceAniListTrending, "u1", 0.5),
		testItem("b", models.SourceAniListTrending, "u2", 0.5),
		testItem("c", "rss_ann", "u3", 0.5),
	} {
		if err := repo.SaveResearchItem(item); err != nil {
			t.Fatal(err)
		}
	}

	items, err := repo.FindBySource(models.SourceAniListTrending, 0)
	if err != nil {
		t.Fatalf("FindBySource() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("FindBySource() returned %d items, want 2", len(items))
	}

	counts, err := repo.CountBySource()
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}
	if counts[models.SourceAniListTrending] != 2 || counts["rss_ann"] != 1 {
		t.Errorf("CountBySource() = %v", counts)
	}
}

func TestDeleteResearchItem(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.SaveResearchItem(testItem("a", "rss_ann", "u1", 0.5)); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteResearchItem("a"); err != nil {
		t.Fatalf("DeleteResearchItem() error = %v", err)
	}

	count, err := repo.CountResearchItems()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("CountResearchItems() = %d after delete, want 0", count)
	}
}

func TestRunLogs(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"first", "second", "third"} {
		run := &models.RunLog{
			ID:        id,
			RunType:   "full_sync",
			Status:    models.RunStatusCompleted,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.SaveRunLog(run); err != nil {
			t.Fatalf("SaveRunLog() error = %v", err)
		}
	}

	runs, err := repo.FindRecentRuns(2)
	if err != nil {
		t.Fatalf("FindRecentRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("FindRecentRuns(2) returned %d runs", len(runs))
	}
	if runs[0].ID != "third" || runs[1].ID != "second" {
		t.Errorf("FindRecentRuns() order = %s, %s, want newest first", runs[0].ID, runs[1].ID)
	}
}
