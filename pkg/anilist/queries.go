package anilist

// mediaFields is the field selection shared by every list query. The
// by-id query extends it with relation, character and staff edges.
const mediaFields = `
    id
    idMal
    title {
        romaji
        english
        native
    }
    description(asHtml: false)
    format
    status
    episodes
    duration
    season
    seasonYear
    startDate { year month day }
    endDate { year month day }
    genres
    tags { name rank }
    averageScore
    popularity
    trending
    favourites
    studios { nodes { name } }
    source
    coverImage { large }
    bannerImage
    siteUrl`

const trendingQuery = `
query ($page: Int, $perPage: Int) {
    Page(page: $page, perPage: $perPage) {
        media(type: ANIME, sort: TRENDING_DESC) {` + mediaFields + `
        }
    }
}`

const seasonalQuery = `
query ($page: Int, $perPage: Int, $season: MediaSeason, $seasonYear: Int) {
    Page(page: $page, perPage: $perPage) {
        media(type: ANIME, season: $season, seasonYear: $seasonYear, sort: POPULARITY_DESC) {` + mediaFields + `
        }
    }
}`

const topQuery = `
query ($page: Int, $perPage: Int, $sort: [MediaSort]) {
    Page(page: $page, perPage: $perPage) {
        media(type: ANIME, sort: $sort) {` + mediaFields + `
        }
    }
}`

const searchQuery = `
query ($search: String, $perPage: Int) {
    Page(perPage: $perPage) {
        media(search: $search, type: ANIME, sort: SEARCH_MATCH) {` + mediaFields + `
        }
    }
}`

const detailsQuery = `
query ($id: Int) {
    Media(id: $id, type: ANIME) {` + mediaFields + `
        relations {
            edges {
                relationType
                node {
                    id
                    title { romaji }
                    format
                }
            }
        }
        characters(sort: ROLE, perPage: 10) {
            edges {
                role
                node {
                    name { full }
                    image { medium }
                }
            }
        }
        staff(perPage: 10) {
            edges {
                role
                node {
                    name { full }
                    image { medium }
                }
            }
        }
    }
}`
