// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote values
const (
	VoteYes = "yes"
	VoteNo  = "no"
)

// Session status values written by the mobile client
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusEnded     = "ended"
	StatusFinished  = "finished"
	StatusClosed    = "closed"
)

// Record is a loosely typed document as written by the mobile client.
// Field names and value types vary between app versions.
type Record map[string]any

// Request types

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CastVoteRequest struct {
	UserID     string `json:"user_id"`
	ActivityID string `json:"activity_id"`
	Vote       string `json:"vote"`
}

// Response types

type CreateGroupResponse struct {
	GroupID string `json:"group_id"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type CastVoteResponse struct {
	VoteID string `json:"vote_id"`
}

type SessionSummary struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"group_id"`
	Name          string    `json:"name"`
	Status        string    `json:"status,omitempty"`
	Completed     bool      `json:"completed"`
	ActivityCount int       `json:"activity_count"`
	SessionDate   time.Time `json:"session_date"`
}

type ResultsPage struct {
	Results []SessionResult `json:"results"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Total   int             `json:"total"`
	HasMore bool            `json:"has_more"`
}

// Domain types

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a voting session as stored: identity columns plus the raw document.
type Session struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	Data     Record    `json:"data"`
	StoredAt time.Time `json:"stored_at"`
}

type Vote struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ActivityID string    `json:"activity_id"`
	GroupID    string    `json:"group_id"`
	Value      string    `json:"vote"`
	CreatedAt  time.Time `json:"created_at"`
}

// Result types

type ActivityResult struct {
	ActivityID        string `json:"activity_id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	YesVotes          int    `json:"yes_votes"`
	NoVotes           int    `json:"no_votes"`
	TotalVotes        int    `json:"total_votes"`
	VoterCount        int    `json:"voter_count"`
	SupportPercentage int    `json:"support_percentage"`
	Rank              int    `json:"rank"` // 1-indexed ranking
	Votes             []Vote `json:"-"`
}

type SessionResult struct {
	SessionID         string           `json:"session_id"`
	SessionName       string           `json:"session_name"`
	GroupID           string           `json:"group_id"`
	GroupName         string           `json:"group_name"`
	Winner            *ActivityResult  `json:"winner"`
	TotalVotes        int              `json:"total_votes"`
	TotalParticipants int              `json:"total_participants"`
	AllResults        []ActivityResult `json:"all_results"`
	HasVotes          bool             `json:"has_votes"`
	CompletedAt       time.Time        `json:"completed_at"`
	CompletedAgo      string           `json:"completed_ago,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
