// Package rss fetches and normalizes anime news feeds from a whitelisted
// source registry.
//
// Only official RSS/Atom feeds are used; there is no site scraping. Each
// registry entry carries a reliability score and an enabled flag, and the
// aggregate fetch is fail-open: a broken or unreachable source is counted
// and skipped without aborting the batch. Feed format is auto-detected,
// parsing RSS 2.0 items first and falling back to Atom entries.
package rss
