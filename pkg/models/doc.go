// Package models defines the core data structures used throughout the Aniscout application.
//
// It includes:
//   - Anime: Catalog entries fetched from the AniList GraphQL API
//   - FeedItem: Normalized RSS/Atom entries from the news source registry
//   - LinkedEntity: The result of resolving a free-text mention to a catalog identity
//   - ResearchItem: Persisted research records produced by the ingestion pipeline
//   - RunLog: Per-run ingestion bookkeeping
//
// All models include appropriate serialization tags for database storage
// and JSON API responses.
package models
