// Package services provides the core business logic for the Aniscout application.
//
// It includes:
//   - Research ingestion: Fetching trending/seasonal/top catalog entries from
//     AniList and news items from the RSS source registry
//   - Entity enrichment: Running extraction and linking over unlinked news text
//   - Run bookkeeping: Recording per-run statistics for every ingestion cycle
//
// The ingestion pipeline inherits fail-open semantics from its collaborators:
// a failed source or catalog query never aborts a run.
package services
