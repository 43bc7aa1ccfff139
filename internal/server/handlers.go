package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/amityadav/helpcenter/internal/adk/tools"
	"github.com/amityadav/helpcenter/internal/zendesk"
)

const maxRequestBody = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"` // upstream status for remote errors
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleListTools(reg *tools.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []toolInfo{}
		if reg != nil {
			for _, t := range reg.GetAll() {
				out = append(out, toolInfo{Name: t.Name(), Description: t.Description()})
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleSearchArticles(s tools.Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var args tools.SearchArticlesArgs
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&args); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "InvalidRequest", Message: "invalid JSON arguments: " + err.Error()})
			return
		}

		if caller, ok := CallerFromContext(r.Context()); ok {
			log.Printf("[Server] search_articles called by %s", caller)
		}

		res, err := tools.SearchArticles(r.Context(), s, args)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// writeError maps search errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *zendesk.ValidationError
		configErr     *zendesk.ConfigurationError
		remoteErr     *zendesk.RemoteServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "ValidationError", Message: validationErr.Error()})
	case errors.As(err, &configErr):
		log.Printf("[Server] Configuration error: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "ConfigurationError", Message: configErr.Error()})
	case errors.As(err, &remoteErr):
		status := http.StatusBadGateway
		if remoteErr.Unauthorized() || remoteErr.RateLimited() {
			status = remoteErr.StatusCode
		}
		if remoteErr.RetryAfter > 0 {
			w.Header().Set("Retry-After", formatSeconds(remoteErr.RetryAfter.Seconds()))
		}
		writeJSON(w, status, errorResponse{
			Error:   "RemoteServiceError",
			Message: "Failed to search articles: " + remoteErr.Body,
			Status:  remoteErr.StatusCode,
		})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{
			Error:   "TimeoutError",
			Message: "Request timed out while searching articles. Try reducing per_page or using more specific filters.",
		})
	default:
		log.Printf("[Server] Unexpected search error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "SearchError", Message: "Failed to search articles: " + err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] Failed to write response: %v", err)
	}
}
