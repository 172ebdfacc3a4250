package repository

import (
	"fmt"

	"github.com/timshannon/bolthold"

	"aniscout/pkg/models"
)

// Repository defines the interface for data access operations
type Repository interface {
	// Research item operations
	SaveResearchItem(item *models.ResearchItem) error
	GetResearchItem(id string) (*models.ResearchItem, error)
	GetResearchItemBySourceURL(url string) (*models.ResearchItem, error)
	FindTrending(minScore float64, limit int) ([]*models.ResearchItem, error)
	FindActionable(limit int) ([]*models.ResearchItem, error)
	FindBySource(source string, limit int) ([]*models.ResearchItem, error)
	CountBySource() (map[string]int, error)
	CountResearchItems() (int, error)
	DeleteResearchItem(id string) error

	// Run log operations
	SaveRunLog(run *models.RunLog) error
	FindRecentRuns(limit int) ([]*models.RunLog, error)

	// Utility operations
	Close() error
}

// BoltRepository implements Repository using BoltDB
type BoltRepository struct {
	store *bolthold.Store
}

func NewBoltRepository(store *bolthold.Store) Repository {
	return &BoltRepository{store: store}
}

// Research item operations

func (r *BoltRepository) SaveResearchItem(item *models.ResearchItem) error {
	if err := r.store.Upsert(item.ID, item); err != nil {
		return fmt.Errorf("failed to save research item: %w", err)
	}
	return nil
}

func (r *BoltRepository) GetResearchItem(id string) (*models.ResearchItem, error) {
	var item models.ResearchItem
	if err := r.store.Get(id, &item); err != nil {
		return nil, fmt.Errorf("failed to get research item: %w", err)
	}
	return &item, nil
}

// GetResearchItemBySourceURL returns the research item with the given
// source URL, or (nil, nil) when none exists. The ingestion pipeline uses
// it to deduplicate fetched records before insert.
func (r *BoltRepository) GetResearchItemBySourceURL(url string) (*models.ResearchItem, error) {
	var items []*models.ResearchItem
	if err := r.store.Find(&items, bolthold.Where("SourceURL").Eq(url).Index("SourceURL").Limit(1)); err != nil {
		return nil, fmt.Errorf("failed to find research item by source url: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (r *BoltRepository) FindTrending(minScore float64, limit int) ([]*models.ResearchItem, error) {
	var items []*models.ResearchItem
	query := bolthold.Where("TrendScore").Ge(minScore).SortBy("TrendScore").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := r.store.Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to find trending research items: %w", err)
	}
	return items, nil
}

func (r *BoltRepository) FindActionable(limit int) ([]*models.ResearchItem, error) {
	var items []*models.ResearchItem
	query := bolthold.Where("IsActionable").Eq(true).SortBy("RelevanceScore").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := r.store.Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to find actionable research items: %w", err)
	}
	return items, nil
}

func (r *BoltRepository) FindBySource(source string, limit int) ([]*models.ResearchItem, error) {
	var items []*models.ResearchItem
	query := bolthold.Where("Source").Eq(source).Index("Source").SortBy("PublishedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := r.store.Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to find research items by source: %w", err)
	}
	return items, nil
}

func (r *BoltRepository) CountBySource() (map[string]int, error) {
	counts := make(map[string]int)
	err := r.store.ForEach(nil, func(item *models.ResearchItem) error {
		counts[item.Source]++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count research items by source: %w", err)
	}
	return counts, nil
}

func (r *BoltRepository) CountResearchItems() (int, error) {
	count, err := r.store.Count(&models.ResearchItem{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count research items: %w", err)
	}
	return count, nil
}

func (r *BoltRepository) DeleteResearchItem(id string) error {
	if err := r.store.Delete(id, &models.ResearchItem{}); err != nil {
		return fmt.Errorf("failed to delete research item: %w", err)
	}
	return nil
}

// Run log operations

func (r *BoltRepository) SaveRunLog(run *models.RunLog) error {
	if err := r.store.Upsert(run.ID, run); err != nil {
		return fmt.Errorf("failed to save run log: %w", err)
	}
	return nil
}

func (r *BoltRepository) FindRecentRuns(limit int) ([]*models.RunLog, error) {
	var runs []*models.RunLog
	query := (&bolthold.Query{}).SortBy("StartedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := r.store.Find(&runs, query); err != nil {
		return nil, fmt.Errorf("failed to find recent runs: %w", err)
	}
	return runs, nil
}

// Utility operations

func (r *BoltRepository) Close() error {
	if err := r.store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
