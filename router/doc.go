// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Group Swipe API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Groups:

	POST /groups      - Create group
	GET  /groups      - List groups
	GET  /groups/{id} - Get group

Sessions:

	POST /groups/{id}/sessions               - Store a session document
	GET  /groups/{id}/sessions               - List sessions with completion state
	GET  /groups/{id}/sessions/{sid}/results - Live tally for one session

Votes:

	POST /groups/{id}/votes - Cast a yes/no vote
	GET  /groups/{id}/votes - List votes

Results feed:

	GET /results?group_id=&page=&limit= - Completed sessions, newest first

# Handler Initialization

The router creates handler instances with dependency injection:

	groupHandler := handlers.NewGroupHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
