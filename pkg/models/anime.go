package models

// Anime represents one catalog entry fetched from AniList. Instances are
// constructed fresh on every API response parse and never mutated afterwards.
type Anime struct {
	AniListID    int64  `json:"anilist_id"`
	MALID        int64  `json:"mal_id,omitempty"`
	TitleRomaji  string `json:"title_romaji,omitempty"`
	TitleEnglish string `json:"title_english,omitempty"`
	TitleNative  string `json:"title_native,omitempty"`
	Description  string `json:"description,omitempty"`
	Format       string `json:"format,omitempty"` // TV, MOVIE, OVA, ONA, SPECIAL, MUSIC
	Status       string `json:"status,omitempty"` // FINISHED, RELEASING, NOT_YET_RELEASED, CANCELLED
	Episodes     int64  `json:"episodes,omitempty"`
	Duration     int64  `json:"duration,omitempty"` // minutes per episode
	Season       string `json:"season,omitempty"`   // WINTER, SPRING, SUMMER, FALL
	SeasonYear   int64  `json:"season_year,omitempty"`
	StartDate    string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      string `json:"end_date,omitempty"`

	Genres       []string    `json:"genres,omitempty"`
	Tags         []AnimeTag  `json:"tags,omitempty"`
	AverageScore int64       `json:"average_score,omitempty"` // 0-100
	Popularity   int64       `json:"popularity,omitempty"`
	Trending     int64       `json:"trending,omitempty"`
	Favourites   int64       `json:"favourites,omitempty"`
	Studios      []string    `json:"studios,omitempty"`
	Source       string      `json:"source,omitempty"` // ORIGINAL, MANGA, LIGHT_NOVEL, ...
	CoverImage   string      `json:"cover_image,omitempty"`
	BannerImage  string      `json:"banner_image,omitempty"`
	SiteURL      string      `json:"site_url"`
	Relations    []Relation  `json:"relations,omitempty"`
	Characters   []CastEntry `json:"characters,omitempty"`
	Staff        []CastEntry `json:"staff,omitempty"`
}

// AnimeTag is a single catalog tag with its rank.
type AnimeTag struct {
	Name string `json:"name"`
	Rank int64  `json:"rank,omitempty"`
}

// Relation links an anime to a related catalog entry.
type Relation struct {
	RelationType string `json:"relation_type,omitempty"`
	AniListID    int64  `json:"anilist_id"`
	Title        string `json:"title,omitempty"`
	Format       string `json:"format,omitempty"`
}

// CastEntry is a character or staff credit.
type CastEntry struct {
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Image string `json:"image,omitempty"`
}

// BestTitle returns the preferred display title: English, then romaji,
// then native, then the "Unknown" sentinel.
func (a *Anime) BestTitle() string {
	switch {
	case a.TitleEnglish != "":
		return a.TitleEnglish
	case a.TitleRomaji != "":
		return a.TitleRomaji
	case a.TitleNative != "":
		return a.TitleNative
	default:
		return "Unknown"
	}
}

// TitleVariants returns the non-empty title variants in romaji, English,
// native order, the order the linker scores candidates in.
func (a *Anime) TitleVariants() []string {
	var titles []string
	for _, t := range []string{a.TitleRomaji, a.TitleEnglish, a.TitleNative} {
		if t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}
