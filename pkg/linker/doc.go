// Package linker resolves free-text anime mentions to AniList catalog
// identities.
//
// Given a title or a news blurb, it extracts candidate mentions (quoted
// spans and known abbreviations), resolves aliases to canonical titles,
// searches the catalog for candidates, and scores every candidate title
// variant with a difflib-style sequence ratio. A match is accepted only
// when the best score clears the configured minimum confidence.
//
// Results, including negative ones, are stored in a file-backed cache
// with a TTL, so repeated runs do not hammer the catalog for titles it
// has already seen or that are known not to exist there.
package linker
