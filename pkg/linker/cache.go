package linker

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"aniscout/pkg/models"
)

const cacheFileName = "entity_cache.json"

// cacheEntry is the on-disk shape of one cached linking result. CachedAt
// is stamped at write time and drives TTL eviction.
type cacheEntry struct {
	NormalizedTitle string        `json:"normalized_title"`
	AniListID       *int64        `json:"anilist_id"`
	MALID           *int64        `json:"mal_id"`
	Confidence      float64       `json:"confidence"`
	MatchType       string        `json:"match_type"`
	AnimeData       *models.Anime `json:"anime_data"`
	CachedAt        time.Time     `json:"cached_at"`
}

func (e cacheEntry) toEntity(originalText string) *models.LinkedEntity {
	return &models.LinkedEntity{
		OriginalText:    originalText,
		NormalizedTitle: e.NormalizedTitle,
		AniListID:       e.AniListID,
		MALID:           e.MALID,
		Confidence:      e.Confidence,
		MatchType:       e.MatchType,
		AnimeData:       e.AnimeData,
	}
}

func entryFromEntity(entity *models.LinkedEntity) cacheEntry {
	return cacheEntry{
		NormalizedTitle: entity.NormalizedTitle,
		AniListID:       entity.AniListID,
		MALID:           entity.MALID,
		Confidence:      entity.Confidence,
		MatchType:       entity.MatchType,
		AnimeData:       entity.AnimeData,
		CachedAt:        time.Now(),
	}
}

// entityCache is an in-memory map of normalized text to linking results,
// backed by a single JSON file. Every write rewrites the whole file; the
// cache is bounded by distinct title strings seen, not ingestion volume,
// so this stays small. The load/merge/save sequence is serialized by a
// mutex so concurrent callers cannot lose updates.
type entityCache struct {
	mu      sync.Mutex
	path    string
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newEntityCache(dir string, ttl time.Duration) *entityCache {
	cache := &entityCache{
		path:    filepath.Join(dir, cacheFileName),
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).WithField("dir", dir).Warn("Cannot create entity cache directory, cache will not persist")
	}

	cache.load()
	return cache
}

// load reads the backing file, discarding entries older than the TTL
// before making them available. A missing or corrupt file is tolerated.
func (c *entityCache) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("Cannot read entity cache file")
		}
		return
	}

	var stored map[string]cacheEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		log.WithError(err).Warn("Cannot decode entity cache file, starting empty")
		return
	}

	now := time.Now()
	for key, entry := range stored {
		if now.Sub(entry.CachedAt) < c.ttl {
			c.entries[key] = entry
		}
	}

	log.WithField("entries", len(c.entries)).Debug("Loaded entity cache")
}

func (c *entityCache) get(key string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return cacheEntry{}, false
	}
	if time.Since(entry.CachedAt) >= c.ttl {
		return cacheEntry{}, false
	}
	return entry, true
}

// put stores one entry and rewrites the backing file.
func (c *entityCache) put(key string, entry cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	c.save()
}

// save must be called with the mutex held.
func (c *entityCache) save() {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		log.WithError(err).Warn("Cannot encode entity cache")
		return
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		log.WithError(err).Warn("Cannot write entity cache file")
	}
}

func (c *entityCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Cannot remove entity cache file")
	}
}

func (c *entityCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
