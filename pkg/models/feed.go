package models

import "time"

// FeedItem is one normalized RSS/Atom entry. Items are ephemeral: they are
// constructed per fetch call and handed to the ingestion pipeline, which
// persists its own records.
type FeedItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`      // registry key of the owning source
	SourceName  string    `json:"source_name"` // display name copied from the registry
	PublishedAt time.Time `json:"published_at,omitempty"`
	Summary     string    `json:"summary,omitempty"`  // cleaned text, truncated to 500 chars
	RawText     string    `json:"raw_text,omitempty"` // cleaned text, untruncated
	Categories  []string  `json:"categories,omitempty"`
	Author      string    `json:"author,omitempty"`
	GUID        string    `json:"guid,omitempty"`

	// ReliabilityScore is copied from the owning source's static
	// configuration at fetch time, not taken from the item itself.
	ReliabilityScore float64 `json:"reliability_score"`
}

// SourceStatus values reported per source in FetchStats.
const (
	SourceStatusSuccess  = "success"
	SourceStatusFailed   = "failed"
	SourceStatusDisabled = "disabled"
)

// SourceDetail records the outcome of fetching one source.
type SourceDetail struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
	Error  string `json:"error,omitempty"`
}

// FetchStats summarizes one aggregate fetch across the source registry.
// A failed source is one whose fetch returned an error, not one that
// legitimately had nothing new.
type FetchStats struct {
	TotalSources      int                     `json:"total_sources"`
	SuccessfulSources int                     `json:"successful_sources"`
	FailedSources     int                     `json:"failed_sources"`
	SkippedSources    int                     `json:"skipped_sources"`
	SourceDetails     map[string]SourceDetail `json:"source_details"`
}
