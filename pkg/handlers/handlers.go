package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aniscout/pkg/errors"
	"aniscout/pkg/models"
	"aniscout/pkg/services"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// Handler contains all HTTP handlers
type Handler struct {
	appService *services.AppService
}

func NewHandler(appService *services.AppService) *Handler {
	return &Handler{
		appService: appService,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/research":
		h.handleResearchList(w, r)
	case "/api/research/stats":
		h.handleResearchStats(w, r)
	case "/api/research/refresh":
		h.handleRefresh(w, r)
	case "/api/sources":
		h.handleSources(w, r)
	case "/api/entities/link":
		h.handleLinkEntity(w, r)
	case "/health":
		h.handleHealth(w, r)
	default:
		h.writeErrorResponse(w, http.StatusNotFound, "Not found", "The requested endpoint does not exist")
	}
}

func (h *Handler) SetupRoutes() {
	http.HandleFunc("/api/research", h.handleResearchList)
	http.HandleFunc("/api/research/stats", h.handleResearchStats)
	http.HandleFunc("/api/research/refresh", h.handleRefresh)
	http.HandleFunc("/api/sources", h.handleSources)
	http.HandleFunc("/api/entities/link", h.handleLinkEntity)
	http.HandleFunc("/health", h.handleHealth)
}

// ResponseError represents an error response
type ResponseError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ResponseSuccess represents a success response
type ResponseSuccess struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("Failed to encode JSON response")
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, status int, message, details string) {
	response := ResponseError{
		Error:   message,
		Message: details,
	}
	h.writeJSONResponse(w, status, response)
}

func (h *Handler) writeSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	response := ResponseSuccess{
		Message: message,
		Data:    data,
	}
	h.writeJSONResponse(w, http.StatusOK, response)
}

// handleResearchList lists stored research items, filtered by query
// parameters: source, actionable, min_score, limit.
func (h *Handler) handleResearchList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only GET requests are allowed")
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid parameter", err.Error())
		return
	}

	repo := h.appService.Repo()

	var items []*models.ResearchItem
	switch {
	case r.URL.Query().Get("source") != "":
		items, err = repo.FindBySource(r.URL.Query().Get("source"), limit)
	case r.URL.Query().Get("actionable") == "true":
		items, err = repo.FindActionable(limit)
	default:
		minScore := 0.0
		if raw := r.URL.Query().Get("min_score"); raw != "" {
			minScore, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				h.writeErrorResponse(w, http.StatusBadRequest, "Invalid parameter", "min_score must be a number")
				return
			}
		}
		items, err = repo.FindTrending(minScore, limit)
	}
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to list research items", err.Error())
		return
	}

	h.writeSuccessResponse(w, "Research items retrieved successfully", items)
}

// handleResearchStats handles store statistics requests
func (h *Handler) handleResearchStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only GET requests are allowed")
		return
	}

	stats, err := h.appService.Stats()
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get research stats", err.Error())
		return
	}

	h.writeSuccessResponse(w, "Research statistics retrieved successfully", stats)
}

// handleRefresh triggers a manual ingestion run
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only POST requests are allowed")
		return
	}

	// Run tasks asynchronously; the request context ends when the handler
	// returns, so the run gets its own.
	go func() {
		if _, err := h.appService.RunTasks(context.Background(), "api"); err != nil {
			log.WithError(err).Error("Failed to run refresh tasks")
		}
	}()

	h.writeSuccessResponse(w, "Refresh initiated", nil)
}

type sourceRequest struct {
	Key              string  `json:"key"`
	Name             string  `json:"name"`
	URL              string  `json:"url"`
	ReliabilityScore float64 `json:"reliability_score"`
	Category         string  `json:"category"`
}

// handleSources manages the RSS source registry
func (h *Handler) handleSources(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeSuccessResponse(w, "Sources retrieved successfully", h.appService.Feeds().Sources())

	case http.MethodPost:
		var req sourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", fmt.Sprintf("Failed to parse request body: %v", err))
			return
		}
		defer r.Body.Close()

		if req.Key == "" || req.URL == "" {
			h.writeErrorResponse(w, http.StatusBadRequest, "Missing parameter", "key and url are required")
			return
		}

		if err := h.appService.Feeds().AddSource(req.Key, req.Name, req.URL, req.ReliabilityScore, req.Category); err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "Failed to add source", err.Error())
			return
		}
		h.writeSuccessResponse(w, "Source added", map[string]string{"key": req.Key})

	case http.MethodDelete:
		key := r.URL.Query().Get("key")
		if key == "" {
			h.writeErrorResponse(w, http.StatusBadRequest, "Missing parameter", "key parameter is required")
			return
		}

		if err := h.appService.Feeds().RemoveSource(key); err != nil {
			if errors.IsUnknownSource(err) {
				h.writeErrorResponse(w, http.StatusNotFound, "Unknown source", err.Error())
				return
			}
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to remove source", err.Error())
			return
		}
		h.writeSuccessResponse(w, "Source removed", map[string]string{"key": key})

	default:
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only GET, POST and DELETE requests are allowed")
	}
}

type linkRequest struct {
	Text     string `json:"text"`
	UseCache *bool  `json:"use_cache,omitempty"`
}

// handleLinkEntity resolves a single free-text mention against the catalog
func (h *Handler) handleLinkEntity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only POST requests are allowed")
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", fmt.Sprintf("Failed to parse request body: %v", err))
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Text) == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Missing parameter", "text is required")
		return
	}

	useCache := true
	if req.UseCache != nil {
		useCache = *req.UseCache
	}

	entity := h.appService.Linker().LinkEntity(r.Context(), req.Text, useCache)
	h.writeSuccessResponse(w, "Entity linked", entity)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only GET requests are allowed")
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	h.writeSuccessResponse(w, "Service is healthy", health)
}
