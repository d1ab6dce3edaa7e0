// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/group-swipe/cliparse"
	"github.com/danielhkuo/group-swipe/db"
	"github.com/danielhkuo/group-swipe/middleware"
	"github.com/danielhkuo/group-swipe/models"
	"github.com/danielhkuo/group-swipe/results"
)

type ResultsHandler struct {
	store   *db.Store
	service *results.Service
	cfg     cliparse.Config
}

func NewResultsHandler(conn *sql.DB, cfg cliparse.Config) *ResultsHandler {
	store := db.NewStore(conn)
	return &ResultsHandler{
		store:   store,
		service: newResultsService(store, cfg),
		cfg:     cfg,
	}
}

// GetResults handles GET /results
// Query: group_id (repeatable or comma separated, defaults to every group),
// page (1-based) and limit.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := intParam(query.Get("page"), 1)
	if err != nil || page < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, err := intParam(query.Get("limit"), h.cfg.PageSize)
	if err != nil || limit < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	groups, err := h.groups(r, groupIDs(query["group_id"]))
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		slog.Error("failed to load groups", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	all, err := h.service.LoadCompletedSessions(r.Context(), groups)
	if err != nil {
		slog.Error("failed to load completed sessions", "groups", len(groups), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Could not load results, please try again")
		return
	}

	slog.Debug("results loaded", "groups", len(groups), "sessions", len(all))

	middleware.JSONResponse(w, http.StatusOK, results.Paginate(all, page, limit))
}

func (h *ResultsHandler) groups(r *http.Request, ids []string) ([]models.Group, error) {
	if len(ids) == 0 {
		return h.store.ListGroups(r.Context())
	}
	return h.store.GetGroups(r.Context(), ids)
}

// groupIDs flattens repeated and comma separated group_id values, dropping
// blanks and duplicates while keeping first-seen order.
func groupIDs(values []string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, value := range values {
		for _, id := range strings.Split(value, ",") {
			id = strings.TrimSpace(id)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
