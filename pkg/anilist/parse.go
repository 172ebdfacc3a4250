package anilist

import (
	"fmt"

	"aniscout/pkg/models"
)

// maxNestedEntries caps tag, relation, character and staff lists at the
// first entries returned by the API, without re-sorting.
const maxNestedEntries = 10

func (d fuzzyDate) format() string {
	if d.Year == 0 {
		return ""
	}

	month := d.Month
	if month == 0 {
		month = 1
	}
	day := d.Day
	if day == 0 {
		day = 1
	}

	return fmt.Sprintf("%d-%02d-%02d", d.Year, month, day)
}

// parseAnime converts one GraphQL media object into the immutable Anime
// value the rest of the pipeline consumes.
func parseAnime(m *mediaData) *models.Anime {
	anime := &models.Anime{
		AniListID:    m.ID,
		MALID:        m.IDMal,
		TitleRomaji:  m.Title.Romaji,
		TitleEnglish: m.Title.English,
		TitleNative:  m.Title.Native,
		Description:  m.Description,
		Format:       m.Format,
		Status:       m.Status,
		Episodes:     m.Episodes,
		Duration:     m.Duration,
		Season:       m.Season,
		SeasonYear:   m.SeasonYear,
		StartDate:    m.StartDate.format(),
		EndDate:      m.EndDate.format(),
		Genres:       m.Genres,
		AverageScore: m.AverageScore,
		Popularity:   m.Popularity,
		Trending:     m.Trending,
		Favourites:   m.Favourites,
		Source:       m.Source,
		CoverImage:   m.CoverImage.Large,
		BannerImage:  m.BannerImage,
		SiteURL:      m.SiteURL,
	}

	for i, tag := range m.Tags {
		if i >= maxNestedEntries {
			break
		}
		anime.Tags = append(anime.Tags, models.AnimeTag{Name: tag.Name, Rank: tag.Rank})
	}

	for _, node := range m.Studios.Nodes {
		if node.Name != "" {
			anime.Studios = append(anime.Studios, node.Name)
		}
	}

	for i, edge := range m.Relations.Edges {
		if i >= maxNestedEntries {
			break
		}
		anime.Relations = append(anime.Relations, models.Relation{
			RelationType: edge.RelationType,
			AniListID:    edge.Node.ID,
			Title:        edge.Node.Title.Romaji,
			Format:       edge.Node.Format,
		})
	}

	anime.Characters = parseCast(m.Characters.Edges)
	anime.Staff = parseCast(m.Staff.Edges)

	return anime
}

func parseCast(edges []castEdge) []models.CastEntry {
	var entries []models.CastEntry
	for i, edge := range edges {
		if i >= maxNestedEntries {
			break
		}
		entries = append(entries, models.CastEntry{
			Name:  edge.Node.Name.Full,
			Role:  edge.Role,
			Image: edge.Node.Image.Medium,
		})
	}
	return entries
}

func parseAnimeList(page *pageData) []*models.Anime {
	animes := make([]*models.Anime, 0, len(page.Page.Media))
	for _, m := range page.Page.Media {
		animes = append(animes, parseAnime(m))
	}
	return animes
}
