package anilist

// GraphQL wire types. AniList nests list results under Page and single
// results under Media; absent fields arrive as JSON null and decode to
// zero values.

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

type pageData struct {
	Page struct {
		Media []*mediaData `json:"media"`
	} `json:"Page"`
}

type singleData struct {
	Media *mediaData `json:"Media"`
}

type fuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type mediaTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

type mediaTag struct {
	Name string `json:"name"`
	Rank int64  `json:"rank"`
}

type namedNode struct {
	Name string `json:"name"`
}

type relationEdge struct {
	RelationType string `json:"relationType"`
	Node         struct {
		ID     int64      `json:"id"`
		Title  mediaTitle `json:"title"`
		Format string     `json:"format"`
	} `json:"node"`
}

type castEdge struct {
	Role string `json:"role"`
	Node struct {
		Name struct {
			Full string `json:"full"`
		} `json:"name"`
		Image struct {
			Medium string `json:"medium"`
		} `json:"image"`
	} `json:"node"`
}

type mediaData struct {
	ID           int64      `json:"id"`
	IDMal        int64      `json:"idMal"`
	Title        mediaTitle `json:"title"`
	Description  string     `json:"description"`
	Format       string     `json:"format"`
	Status       string     `json:"status"`
	Episodes     int64      `json:"episodes"`
	Duration     int64      `json:"duration"`
	Season       string     `json:"season"`
	SeasonYear   int64      `json:"seasonYear"`
	StartDate    fuzzyDate  `json:"startDate"`
	EndDate      fuzzyDate  `json:"endDate"`
	Genres       []string   `json:"genres"`
	Tags         []mediaTag `json:"tags"`
	AverageScore int64      `json:"averageScore"`
	Popularity   int64      `json:"popularity"`
	Trending     int64      `json:"trending"`
	Favourites   int64      `json:"favourites"`
	Studios      struct {
		Nodes []namedNode `json:"nodes"`
	} `json:"studios"`
	Source     string `json:"source"`
	CoverImage struct {
		Large string `json:"large"`
	} `json:"coverImage"`
	BannerImage string `json:"bannerImage"`
	SiteURL     string `json:"siteUrl"`
	Relations   struct {
		Edges []relationEdge `json:"edges"`
	} `json:"relations"`
	Characters struct {
		Edges []castEdge `json:"edges"`
	} `json:"characters"`
	Staff struct {
		Edges []castEdge `json:"edges"`
	} `json:"staff"`
}
