package anilist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	apperrors "aniscout/pkg/errors"
	"aniscout/pkg/models"
)

const (
	// DefaultAPIURL is the public AniList GraphQL endpoint.
	DefaultAPIURL = "https://graphql.anilist.co"

	// rateLimitInterval spaces outbound requests; AniList allows 90
	// requests per minute.
	rateLimitInterval = 700 * time.Millisecond

	defaultTimeout = 30 * time.Second

	maxPerPageList   = 50
	maxPerPageSearch = 25
)

// Config holds AniList client settings.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client queries the AniList GraphQL API. A single shared limiter spaces
// every outbound call from this client instance; calls block until the
// minimum inter-request interval has elapsed.
type Client struct {
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates an AniList client. A nil config uses the public endpoint
// with default timeouts.
func New(cfg *Config) *Client {
	apiURL := DefaultAPIURL
	timeout := defaultTimeout

	if cfg != nil {
		if cfg.URL != "" {
			apiURL = cfg.URL
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	return &Client{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Every(rateLimitInterval), 1),
	}
}

// execute runs one GraphQL query and returns the raw "data" payload.
// Transport errors, non-2xx statuses and GraphQL-level errors all surface
// as errors here; the public methods convert them to empty results.
func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	if variables == nil {
		variables = map[string]interface{}{}
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: received status %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, gqlErr := range envelope.Errors {
			messages = append(messages, gqlErr.Message)
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrExternalService, strings.Join(messages, "; "))
	}

	return envelope.Data, nil
}

// queryPage runs a list query and parses the Page payload, degrading to
// an empty list on any failure.
func (c *Client) queryPage(ctx context.Context, op, query string, variables map[string]interface{}) []*models.Anime {
	data, err := c.execute(ctx, query, variables)
	if err != nil {
		log.WithError(err).WithField("operation", op).Warn("AniList query failed, returning empty result")
		return nil
	}

	var page pageData
	if err := json.Unmarshal(data, &page); err != nil {
		log.WithError(err).WithField("operation", op).Warn("Failed to decode AniList page, returning empty result")
		return nil
	}

	return parseAnimeList(&page)
}

// GetTrending returns up to limit anime sorted by trending signal,
// descending. The per-page hard cap is 50.
func (c *Client) GetTrending(ctx context.Context, limit, page int) []*models.Anime {
	animes := c.queryPage(ctx, "trending", trendingQuery, map[string]interface{}{
		"page":    page,
		"perPage": capLimit(limit, maxPerPageList),
	})

	log.WithField("count", len(animes)).Debug("Fetched trending anime")
	return animes
}

// GetSeasonal returns anime airing in the given season of the given year,
// sorted by popularity. The season is normalized to upper case before the
// call.
func (c *Client) GetSeasonal(ctx context.Context, year int, season string, limit, page int) []*models.Anime {
	animes := c.queryPage(ctx, "seasonal", seasonalQuery, map[string]interface{}{
		"page":       page,
		"perPage":    capLimit(limit, maxPerPageList),
		"season":     strings.ToUpper(season),
		"seasonYear": year,
	})

	log.WithFields(log.Fields{
		"season": strings.ToUpper(season),
		"year":   year,
		"count":  len(animes),
	}).Debug("Fetched seasonal anime")
	return animes
}

// GetTop returns anime sorted by the given MediaSort key, e.g. SCORE_DESC
// or POPULARITY_DESC.
func (c *Client) GetTop(ctx context.Context, sortBy string, limit, page int) []*models.Anime {
	animes := c.queryPage(ctx, "top", topQuery, map[string]interface{}{
		"page":    page,
		"perPage": capLimit(limit, maxPerPageList),
		"sort":    []string{sortBy},
	})

	log.WithFields(log.Fields{
		"sort":  sortBy,
		"count": len(animes),
	}).Debug("Fetched top anime")
	return animes
}

// GetByID returns one anime with extended relation, character and staff
// data, or nil if the lookup failed or found nothing.
func (c *Client) GetByID(ctx context.Context, anilistID int64) *models.Anime {
	data, err := c.execute(ctx, detailsQuery, map[string]interface{}{"id": anilistID})
	if err != nil {
		log.WithError(err).WithField("anilist_id", anilistID).Warn("AniList details query failed")
		return nil
	}

	var single singleData
	if err := json.Unmarshal(data, &single); err != nil {
		log.WithError(err).WithField("anilist_id", anilistID).Warn("Failed to decode AniList details")
		return nil
	}
	if single.Media == nil {
		return nil
	}

	return parseAnime(single.Media)
}

// Search runs a free-text fuzzy search against the catalog. The per-page
// hard cap is 25.
func (c *Client) Search(ctx context.Context, search string, limit int) []*models.Anime {
	animes := c.queryPage(ctx, "search", searchQuery, map[string]interface{}{
		"search":  search,
		"perPage": capLimit(limit, maxPerPageSearch),
	})

	log.WithFields(log.Fields{
		"search": search,
		"count":  len(animes),
	}).Debug("Searched anime")
	return animes
}

func capLimit(limit, max int) int {
	if limit > max {
		return max
	}
	return limit
}
