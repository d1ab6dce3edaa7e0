// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/group-swipe/cliparse"
	"github.com/danielhkuo/group-swipe/db"
	"github.com/danielhkuo/group-swipe/middleware"
	"github.com/danielhkuo/group-swipe/models"
	"github.com/danielhkuo/group-swipe/results"
)

type SessionHandler struct {
	store   *db.Store
	service *results.Service
	cfg     cliparse.Config
}

func NewSessionHandler(conn *sql.DB, cfg cliparse.Config) *SessionHandler {
	store := db.NewStore(conn)
	return &SessionHandler{
		store:   store,
		service: newResultsService(store, cfg),
		cfg:     cfg,
	}
}

func newResultsService(store *db.Store, cfg cliparse.Config) *results.Service {
	return results.NewService(store, store, results.Config{
		Concurrency: cfg.FetchConcurrency,
		StrictIDs:   cfg.StrictIDs,
	})
}

// CreateSession handles POST /groups/{id}/sessions
// The body is stored as-is; the client owns its shape.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	group, ok := findGroup(w, r, h.store)
	if !ok {
		return
	}

	var data models.Record
	if err := middleware.ParseJSONBody(r, &data); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	session, err := h.store.CreateSession(r.Context(), group.ID, data)
	if errors.Is(err, db.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusConflict, "Session already exists")
		return
	}
	if err != nil {
		slog.Error("failed to create session", "group_id", group.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session stored", "group_id", group.ID, "session_id", session.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{SessionID: session.ID})
}

// ListSessions handles GET /groups/{id}/sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	group, ok := findGroup(w, r, h.store)
	if !ok {
		return
	}

	sessions, err := h.store.FetchVotingSessionsByGroup(r.Context(), group.ID)
	if err != nil {
		slog.Error("failed to fetch sessions", "group_id", group.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	summaries := make([]models.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, models.SessionSummary{
			ID:            session.ID,
			GroupID:       session.GroupID,
			Name:          results.SessionName(session),
			Status:        results.SessionStatus(session),
			Completed:     results.IsCompleted(session, now),
			ActivityCount: len(results.Activities(session)),
			SessionDate:   results.SessionDate(session),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetSessionResult handles GET /groups/{id}/sessions/{sid}/results
// Returns the live tally whether or not voting has finished.
func (h *SessionHandler) GetSessionResult(w http.ResponseWriter, r *http.Request) {
	group, ok := findGroup(w, r, h.store)
	if !ok {
		return
	}

	sessionID := r.PathValue("sid")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	result, err := h.service.SessionResult(r.Context(), group, sessionID)
	if errors.Is(err, results.ErrSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to compute session result", "group_id", group.ID, "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
