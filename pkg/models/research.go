package models

import "time"

// Research item sources.
const (
	SourceAniListTrending = "anilist_trending"
	SourceAniListSeasonal = "anilist_seasonal"
	SourceAniListTop      = "anilist_top"
)

// ResearchItem is a persisted research record: one catalog entry or one news
// item, optionally enriched with linked catalog identities.
type ResearchItem struct {
	ID        string `json:"id" boltholdKey:"ID"`
	Title     string `json:"title" validate:"required"`
	Source    string `json:"source" boltholdIndex:"Source"`
	SourceURL string `json:"source_url" boltholdIndex:"SourceURL"`
	Summary   string `json:"summary,omitempty"`
	Content   string `json:"content,omitempty"`

	Keywords []string `json:"keywords,omitempty"`
	Category string   `json:"category,omitempty"`
	ItemType string   `json:"item_type,omitempty"` // trending, seasonal, top_rated, news

	TrendScore       float64 `json:"trend_score"`
	RelevanceScore   float64 `json:"relevance_score"`
	ReliabilityScore float64 `json:"reliability_score"`

	AniListID int64 `json:"anilist_id,omitempty"`
	MALID     int64 `json:"mal_id,omitempty"`

	Entities     []string        `json:"entities,omitempty"` // raw extracted mentions
	LinkedSeries []*LinkedEntity `json:"linked_series,omitempty"`
	IsLinked     bool            `json:"is_linked"`
	IsActionable bool            `json:"is_actionable"`
	Status       string          `json:"status"` // new, reviewed, archived

	PublishedAt time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RunLog statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// RunLog records one execution of the ingestion pipeline with per-phase
// counts.
type RunLog struct {
	ID          string `json:"id" boltholdKey:"ID"`
	RunType     string `json:"run_type"`
	TriggeredBy string `json:"triggered_by"`
	Status      string `json:"status"`

	CatalogItemsSaved int `json:"catalog_items_saved"`
	FeedItemsSaved    int `json:"feed_items_saved"`
	FeedSourcesFailed int `json:"feed_sources_failed"`
	ItemsSaved        int `json:"items_saved"`

	Errors      []string  `json:"errors,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}
