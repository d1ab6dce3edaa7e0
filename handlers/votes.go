// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/group-swipe/cliparse"
	"github.com/danielhkuo/group-swipe/db"
	"github.com/danielhkuo/group-swipe/middleware"
	"github.com/danielhkuo/group-swipe/models"
)

type VoteHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewVoteHandler(conn *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: db.NewStore(conn), cfg: cfg}
}

// CastVote handles POST /groups/{id}/votes
// Votes are append-only; a user swiping twice on the same activity is
// recorded twice and counted once as a voter.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	group, ok := findGroup(w, r, h.store)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if strings.TrimSpace(req.UserID) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if strings.TrimSpace(req.ActivityID) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity_id is required")
		return
	}
	if req.Vote != models.VoteYes && req.Vote != models.VoteNo {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote must be 'yes' or 'no'")
		return
	}

	vote, err := h.store.CastVote(r.Context(), models.Vote{
		UserID:     req.UserID,
		ActivityID: req.ActivityID,
		GroupID:    group.ID,
		Value:      req.Vote,
	})
	if err != nil {
		slog.Error("failed to cast vote", "group_id", group.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Debug("vote recorded", "group_id", group.ID, "activity_id", vote.ActivityID, "vote", vote.Value)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{VoteID: vote.ID})
}

// ListVotes handles GET /groups/{id}/votes
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	group, ok := findGroup(w, r, h.store)
	if !ok {
		return
	}

	votes, err := h.store.FetchVotes(r.Context(), group.ID)
	if err != nil {
		slog.Error("failed to fetch votes", "group_id", group.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}
