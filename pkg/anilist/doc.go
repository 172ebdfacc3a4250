// Package anilist provides a client for the AniList GraphQL API.
//
// The client covers the read-only queries the research pipeline needs:
// trending lists, seasonal lists, top-ranked lists, by-id lookups with
// relation/character/staff detail, and free-text search.
//
// Every outbound call is spaced by a shared per-client rate limiter
// (AniList allows 90 requests per minute). Transport failures, non-2xx
// responses and GraphQL-level errors are logged and degrade to empty
// results instead of propagating, so callers keep functioning when the
// catalog is unreachable.
package anilist
