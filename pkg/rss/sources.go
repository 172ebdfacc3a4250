package rss

// Source is one whitelisted feed in the registry.
type Source struct {
	Name             string  `json:"name"`
	URL              string  `json:"url"`
	ReliabilityScore float64 `json:"reliability_score"`
	Category         string  `json:"category"`
	Enabled          bool    `json:"enabled"`
}

// DefaultSources returns the built-in feed registry.
func DefaultSources() map[string]Source {
	return map[string]Source{
		"ann": {
			Name:             "Anime News Network",
			URL:              "https://www.animenewsnetwork.com/all/rss.xml",
			ReliabilityScore: 0.95,
			Category:         "news",
			Enabled:          true,
		},
		"ann_interest": {
			Name:             "ANN Interest",
			URL:              "https://www.animenewsnetwork.com/interest/rss.xml",
			ReliabilityScore: 0.90,
			Category:         "interest",
			Enabled:          true,
		},
		"crunchyroll": {
			Name:             "Crunchyroll News",
			URL:              "https://www.crunchyroll.com/newsrss",
			ReliabilityScore: 0.90,
			Category:         "news",
			// URL has returned 404 since 2024.
			Enabled: false,
		},
		"mal_news": {
			Name:             "MyAnimeList News",
			URL:              "https://myanimelist.net/rss/news.xml",
			ReliabilityScore: 0.85,
			Category:         "news",
			Enabled:          true,
		},
	}
}
