package models

// Match types classifying how close the best candidate title came to the
// searched text. The classification is informational metadata; acceptance
// is gated separately by the linker's minimum confidence.
const (
	MatchExact   = "exact"
	MatchFuzzy   = "fuzzy"
	MatchPartial = "partial"
	MatchNone    = "none"
)

// LinkedEntity is the result of attempting to resolve one free-text mention
// to a catalog identity. AniListID is set only when a catalog hit cleared the
// linker's confidence threshold; otherwise MatchType is "none" and
// NormalizedTitle falls back to the original text.
type LinkedEntity struct {
	OriginalText    string  `json:"original_text"`
	NormalizedTitle string  `json:"normalized_title"`
	AniListID       *int64  `json:"anilist_id"`
	MALID           *int64  `json:"mal_id"`
	Confidence      float64 `json:"confidence"` // 0.0-1.0
	MatchType       string  `json:"match_type"`
	AnimeData       *Anime  `json:"anime_data"`
}

// IsLinked reports whether the entity resolved to a catalog identity.
func (e *LinkedEntity) IsLinked() bool {
	return e.AniListID != nil
}
