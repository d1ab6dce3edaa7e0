// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Raw Records

Voting sessions are stored exactly as the mobile client wrote them. The
document is kept as a Record (map[string]any) because field names and
timestamp encodings differ between app versions:

  - activities, selectedItems or items: the activity list
  - name or title: display name
  - status, endTime, createdAt, completedAt: lifecycle fields

Votes have a stable shape and are typed (Vote).

# Request Types

  - CreateGroupRequest: name
  - CastVoteRequest: user_id, activity_id, vote

# Response Types

  - CreateGroupResponse: group_id
  - CreateSessionResponse: session_id
  - CastVoteResponse: vote_id
  - SessionSummary: session listing entry with derived completion
  - ResultsPage: one page of the completed-session feed
  - ErrorResponse: error, message

# Result Types

  - ActivityResult: per-activity tally and rank
  - SessionResult: winner, totals and ranked activities for one session

# Constants

Vote values:

	VoteYes = "yes"
	VoteNo  = "no"

Session status values that mark a session as finished:

	StatusCompleted, StatusEnded, StatusFinished, StatusClosed
*/
package models
