package linker

import (
	"context"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"aniscout/pkg/models"
)

const (
	// DefaultMinConfidence is the acceptance threshold for a catalog match.
	DefaultMinConfidence = 0.6

	// DefaultCacheTTL is how long cached linking results stay valid.
	DefaultCacheTTL = 24 * time.Hour

	// Classification thresholds for the match-type label. These are
	// informational metadata, independent of the acceptance gate.
	exactThreshold = 0.95
	fuzzyThreshold = 0.7

	// searchLimit bounds the candidate set requested per lookup.
	searchLimit = 5
)

// titlePatterns extract quoted title mentions from prose: ASCII double
// and single quotes, Japanese corner brackets, Japanese double corner
// brackets.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`'([^']+)'`),
	regexp.MustCompile(`「([^」]+)」`),
	regexp.MustCompile(`『([^』]+)』`),
}

// Searcher is the catalog dependency: a free-text search returning match
// candidates. *anilist.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, search string, limit int) []*models.Anime
}

// Config holds linker settings. Zero values fall back to defaults.
type Config struct {
	CacheDir      string
	CacheTTL      time.Duration
	MinConfidence float64
}

// Linker resolves free-text anime mentions against a catalog, caching
// every result (including misses) in a file-backed TTL cache.
type Linker struct {
	catalog       Searcher
	minConfidence float64
	cache         *entityCache

	aliasMu       sync.RWMutex
	aliases       map[string]string
	aliasPatterns map[string]*regexp.Regexp
}

// New creates a Linker around the given catalog searcher.
func New(catalog Searcher, cfg *Config) *Linker {
	cacheDir := filepath.Join("data", "entity_cache")
	ttl := DefaultCacheTTL
	minConfidence := DefaultMinConfidence

	if cfg != nil {
		if cfg.CacheDir != "" {
			cacheDir = cfg.CacheDir
		}
		if cfg.CacheTTL > 0 {
			ttl = cfg.CacheTTL
		}
		if cfg.MinConfidence > 0 {
			minConfidence = cfg.MinConfidence
		}
	}

	l := &Linker{
		catalog:       catalog,
		minConfidence: minConfidence,
		cache:         newEntityCache(cacheDir, ttl),
		aliases:       defaultAliases(),
		aliasPatterns: make(map[string]*regexp.Regexp),
	}

	for alias := range l.aliases {
		l.aliasPatterns[alias] = aliasPattern(alias)
	}

	return l
}

func aliasPattern(alias string) *regexp.Regexp {
	// Word-boundary match so "xyz" does not fire inside "xyzzy".
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\b`)
}

// resolveAlias maps an abbreviation (case-insensitive exact match on the
// normalized form) to its canonical title, or returns the text unchanged.
func (l *Linker) resolveAlias(text string) string {
	normalized := Normalize(text)

	l.aliasMu.RLock()
	defer l.aliasMu.RUnlock()

	if full, ok := l.aliases[normalized]; ok {
		return full
	}
	return text
}

// LinkEntity resolves one free-text mention to a catalog identity. With
// useCache, a fresh cached result is returned without any catalog call;
// results are always written back to the cache, misses included.
func (l *Linker) LinkEntity(ctx context.Context, text string, useCache bool) *models.LinkedEntity {
	key := Normalize(text)

	if useCache {
		if entry, ok := l.cache.get(key); ok {
			log.WithField("text", text).Debug("Entity cache hit")
			return entry.toEntity(text)
		}
	}

	resolved := l.resolveAlias(text)
	candidates := l.catalog.Search(ctx, resolved, searchLimit)

	if len(candidates) == 0 {
		entity := noMatch(text, 0.0)
		l.cache.put(key, entryFromEntity(entity))
		return entity
	}

	var bestMatch *models.Anime
	bestScore := 0.0

	for _, anime := range candidates {
		for _, title := range anime.TitleVariants() {
			if score := Similarity(resolved, title); score > bestScore {
				bestScore = score
				bestMatch = anime
			}
		}
	}

	var entity *models.LinkedEntity
	if bestMatch != nil && bestScore >= l.minConfidence {
		anilistID := bestMatch.AniListID
		entity = &models.LinkedEntity{
			OriginalText:    text,
			NormalizedTitle: bestMatch.BestTitle(),
			AniListID:       &anilistID,
			Confidence:      bestScore,
			MatchType:       classifyMatch(bestScore),
			AnimeData:       bestMatch,
		}
		if bestMatch.MALID != 0 {
			malID := bestMatch.MALID
			entity.MALID = &malID
		}
	} else {
		// Below-threshold lookups keep the best score as confidence so
		// callers can tell "searched but rejected" from "never searched".
		entity = noMatch(text, bestScore)
	}

	l.cache.put(key, entryFromEntity(entity))
	return entity
}

func noMatch(text string, confidence float64) *models.LinkedEntity {
	return &models.LinkedEntity{
		OriginalText:    text,
		NormalizedTitle: text,
		Confidence:      confidence,
		MatchType:       models.MatchNone,
	}
}

func classifyMatch(score float64) string {
	switch {
	case score >= exactThreshold:
		return models.MatchExact
	case score >= fuzzyThreshold:
		return models.MatchFuzzy
	default:
		return models.MatchPartial
	}
}

// LinkEntities maps LinkEntity over texts, preserving order.
func (l *Linker) LinkEntities(ctx context.Context, texts []string, useCache bool) []*models.LinkedEntity {
	results := make([]*models.LinkedEntity, 0, len(texts))
	for _, text := range texts {
		results = append(results, l.LinkEntity(ctx, text, useCache))
	}
	return results
}

// ExtractEntities scans prose for anime-title mentions: quoted spans in
// any of the four supported quote styles, plus known aliases matched as
// whole words anywhere in the text (expanded to their canonical titles).
// The combined list is deduplicated by normalized form, preserving
// first-seen order.
func (l *Linker) ExtractEntities(text string) []string {
	var entities []string

	for _, pattern := range titlePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			entities = append(entities, match[1])
		}
	}

	textLower := strings.ToLower(text)

	l.aliasMu.RLock()
	aliasKeys := make([]string, 0, len(l.aliases))
	for alias := range l.aliases {
		aliasKeys = append(aliasKeys, alias)
	}
	sort.Strings(aliasKeys)

	for _, alias := range aliasKeys {
		if l.aliasPatterns[alias].MatchString(textLower) {
			entities = append(entities, l.aliases[alias])
		}
	}
	l.aliasMu.RUnlock()

	seen := make(map[string]struct{}, len(entities))
	unique := make([]string, 0, len(entities))
	for _, entity := range entities {
		normalized := Normalize(entity)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		unique = append(unique, entity)
	}

	return unique
}

// ExtractAndLink extracts candidate mentions from text and links each of
// them. No catalog call is made when nothing was extracted.
func (l *Linker) ExtractAndLink(ctx context.Context, text string, useCache bool) []*models.LinkedEntity {
	entities := l.ExtractEntities(text)
	if len(entities) == 0 {
		return nil
	}
	return l.LinkEntities(ctx, entities, useCache)
}

// AddAlias registers an abbreviation at runtime. Alias keys are stored
// lower-cased.
func (l *Linker) AddAlias(alias, fullName string) {
	key := strings.ToLower(alias)

	l.aliasMu.Lock()
	l.aliases[key] = fullName
	l.aliasPatterns[key] = aliasPattern(key)
	l.aliasMu.Unlock()

	log.WithFields(log.Fields{
		"alias":     alias,
		"full_name": fullName,
	}).Debug("Added alias")
}

// GetAliases returns a copy of the alias table.
func (l *Linker) GetAliases() map[string]string {
	l.aliasMu.RLock()
	defer l.aliasMu.RUnlock()

	aliases := make(map[string]string, len(l.aliases))
	for alias, full := range l.aliases {
		aliases[alias] = full
	}
	return aliases
}

// ClearCache drops every cached result and removes the backing file.
func (l *Linker) ClearCache() {
	l.cache.clear()
	log.Info("Cleared entity cache")
}

// CacheStats describes the current cache state.
type CacheStats struct {
	TotalEntries  int     `json:"total_entries"`
	CacheFile     string  `json:"cache_file"`
	CacheTTLHours float64 `json:"cache_ttl_hours"`
}

// GetCacheStats reports cache size, location and TTL.
func (l *Linker) GetCacheStats() CacheStats {
	return CacheStats{
		TotalEntries:  l.cache.size(),
		CacheFile:     l.cache.path,
		CacheTTLHours: l.cache.ttl.Hours(),
	}
}
