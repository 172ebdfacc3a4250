package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timshannon/bolthold"

	"aniscout/pkg/linker"
	"aniscout/pkg/models"
	"aniscout/pkg/repository"
	"aniscout/pkg/rss"
	"aniscout/pkg/services"
)

type stubCatalog struct {
	results []*models.Anime
}

func (s *stubCatalog) Search(ctx context.Context, search string, limit int) []*models.Anime {
	return s.results
}

func (s *stubCatalog) GetTrending(ctx context.Context, limit, page int) []*models.Anime {
	return nil
}

func (s *stubCatalog) GetSeasonal(ctx context.Context, year int, season string, limit, page int) []*models.Anime {
	return nil
}

func (s *stubCatalog) GetTop(ctx context.Context, sortBy string, limit, page int) []*models.Anime {
	return nil
}

func newTestHandler(t *testing.T) (*Handler, repository.Repository) {
	t.Helper()

	store, err := bolthold.Open(filepath.Join(t.TempDir(), "test.db"), 0666, nil)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	repo := repository.NewBoltRepository(store)
	catalog := &stubCatalog{results: []*models.Anime{{
		AniListID:    16498,
		TitleEnglish: "Attack on Titan",
	}}}
	feeds := rss.NewAggregator(time.Second)
	entityLinker := linker.New(catalog, &linker.Config{CacheDir: t.TempDir()})

	research := services.NewResearchService(repo, catalog, feeds, entityLinker, services.ResearchConfig{})
	app := services.NewAppService(repo, research, entityLinker, feeds)

	return NewHandler(app), repo
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder) ResponseSuccess {
	t.Helper()
	var resp ResponseSuccess
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestUnknownEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResearchListFilters(t *testing.T) {
	handler, repo := newTestHandler(t)

	err := repo.SaveResearchItem(&models.ResearchItem{
		ID:         "a",
		Title:      "Trending entry",
		Source:     models.SourceAniListTrending,
		SourceURL:  "https://anilist.co/anime/1",
		TrendScore: 0.9,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/research?min_score=0.5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Trending entry")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/research?source=rss_ann", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Trending entry")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/research?limit=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResearchStats(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/research/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSuccess(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "total_items")
	assert.Contains(t, data, "sources")
}

func TestSourcesEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sources", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ann")

	body := strings.NewReader(`{"key":"custom","name":"Custom","url":"https://example.com/feed","reliability_score":0.7,"category":"news"}`)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sources", body))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sources", nil))
	assert.Contains(t, rec.Body.String(), "custom")

	// Out-of-range reliability is rejected.
	body = strings.NewReader(`{"key":"bad","url":"https://example.com/feed","reliability_score":1.5}`)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sources", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/sources?key=custom", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/sources?key=custom", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLinkEntityEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := strings.NewReader(`{"text":"Attack on Titan"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/entities/link", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "16498")
	assert.Contains(t, rec.Body.String(), "exact")
}

func TestLinkEntityRequiresText(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/entities/link", strings.NewReader(`{"text":"  "}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/entities/link", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
