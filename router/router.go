// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/group-swipe/cliparse"
	"github.com/danielhkuo/group-swipe/handlers"
	"github.com/danielhkuo/group-swipe/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	groupHandler := handlers.NewGroupHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Groups
	mux.HandleFunc("POST /groups", middleware.WithLogging(groupHandler.CreateGroup))
	mux.HandleFunc("GET /groups", middleware.WithLogging(groupHandler.ListGroups))
	mux.HandleFunc("GET /groups/{id}", middleware.WithLogging(groupHandler.GetGroup))

	// Voting sessions
	mux.HandleFunc("POST /groups/{id}/sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /groups/{id}/sessions", middleware.WithLogging(sessionHandler.ListSessions))
	mux.HandleFunc("GET /groups/{id}/sessions/{sid}/results", middleware.WithLogging(sessionHandler.GetSessionResult))

	// Votes
	mux.HandleFunc("POST /groups/{id}/votes", middleware.WithLogging(voteHandler.CastVote))
	mux.HandleFunc("GET /groups/{id}/votes", middleware.WithLogging(voteHandler.ListVotes))

	// Completed session feed
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("group-swipe API v1"))
	})

	return mux
}
