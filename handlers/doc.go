// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Group Swipe API.

# Handler Types

Each handler is a struct built over a db.Store and the server config:

  - GroupHandler: Group creation and lookup
  - SessionHandler: Session documents and single-session tallies
  - VoteHandler: Swipe votes
  - ResultsHandler: The completed-session results feed

Handlers are created via constructor functions that accept *sql.DB and Config:

	resultsHandler := handlers.NewResultsHandler(db, cfg)

# Groups and Sessions

	POST /groups                          → CreateGroup
	GET  /groups                          → ListGroups
	GET  /groups/{id}                     → GetGroup
	POST /groups/{id}/sessions            → CreateSession (raw client document)
	GET  /groups/{id}/sessions            → ListSessions (with completion state)
	GET  /groups/{id}/sessions/{sid}/results → GetSessionResult

Session documents are stored verbatim. Their field names differ between
client versions, so every read goes through the results package.

# Voting

	POST /groups/{id}/votes → CastVote ("yes" or "no")
	GET  /groups/{id}/votes → ListVotes

Votes belong to a group, not a session. The activity_id may be a bare
activity ID or a session-scoped reference such as "<sessionID>_<index>".

# Results Feed

	GET /results?group_id=a,b&page=1&limit=20 → GetResults

Omitting group_id loads every group. Results are computed on each request
and paginated newest first. A group or session that cannot be loaded is
left out or shown with empty tallies rather than failing the request.
*/
package handlers
