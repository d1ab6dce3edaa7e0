// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/group-swipe/cliparse"
	"github.com/danielhkuo/group-swipe/db"
	"github.com/danielhkuo/group-swipe/middleware"
	"github.com/danielhkuo/group-swipe/models"
)

type GroupHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewGroupHandler(conn *sql.DB, cfg cliparse.Config) *GroupHandler {
	return &GroupHandler{store: db.NewStore(conn), cfg: cfg}
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGroupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	group, err := h.store.CreateGroup(r.Context(), name)
	if err != nil {
		slog.Error("failed to create group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create group")
		return
	}

	slog.Info("group created", "group_id", group.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateGroupResponse{GroupID: group.ID})
}

// ListGroups handles GET /groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListGroups(r.Context())
	if err != nil {
		slog.Error("failed to list groups", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, groups)
}

// GetGroup handles GET /groups/{id}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, ok := findGroup(w, r, h.store)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, group)
}

// findGroup resolves the {id} path parameter. It writes the error response
// itself when the group cannot be loaded.
func findGroup(w http.ResponseWriter, r *http.Request, store *db.Store) (models.Group, bool) {
	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group_id is required")
		return models.Group{}, false
	}

	group, err := store.GetGroup(r.Context(), groupID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return models.Group{}, false
	}
	if err != nil {
		slog.Error("failed to query group", "group_id", groupID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Group{}, false
	}

	return group, true
}
