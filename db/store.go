// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/group-swipe/models"
	"github.com/danielhkuo/group-swipe/results"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Store reads and writes groups, voting sessions and votes.
type Store struct {
	db *sql.DB
}

var (
	_ results.SessionFetcher = (*Store)(nil)
	_ results.VoteFetcher    = (*Store)(nil)
)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateGroup inserts a new group.
func (s *Store) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	group := models.Group{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voting_group (id, name, created_at)
		VALUES ($1, $2, $3)
	`, group.ID, group.Name, group.CreatedAt)
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to insert group: %w", err)
	}

	return group, nil
}

// GetGroup returns ErrNotFound when the group does not exist.
func (s *Store) GetGroup(ctx context.Context, id string) (models.Group, error) {
	var group models.Group
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM voting_group WHERE id = $1
	`, id).Scan(&group.ID, &group.Name, &group.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Group{}, fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to query group: %w", err)
	}

	return group, nil
}

// GetGroups looks up each ID in order. Any missing ID fails the call.
func (s *Store) GetGroups(ctx context.Context, ids []string) ([]models.Group, error) {
	groups := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// ListGroups returns every group, oldest first.
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM voting_group ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// CreateSession stores a raw session document for a group. A non-empty
// string "id" in the document is kept as the session ID so composite vote
// references written by the client still resolve. Session IDs are unique
// across groups; reusing one returns ErrConflict.
func (s *Store) CreateSession(ctx context.Context, groupID string, data models.Record) (models.Session, error) {
	if data == nil {
		data = models.Record{}
	}

	id, _ := data["id"].(string)
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}

	var existing string
	err := s.db.QueryRowContext(ctx, `
		SELECT group_id FROM voting_session WHERE id = $1
	`, id).Scan(&existing)
	if err == nil {
		return models.Session{}, fmt.Errorf("session %s: %w", id, ErrConflict)
	}
	if err != sql.ErrNoRows {
		return models.Session{}, fmt.Errorf("failed to query session: %w", err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to encode session: %w", err)
	}

	session := models.Session{
		ID:       id,
		GroupID:  groupID,
		Data:     data,
		StoredAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO voting_session (id, group_id, payload, stored_at)
		VALUES ($1, $2, $3, $4)
	`, session.ID, session.GroupID, string(payload), session.StoredAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to insert session: %w", err)
	}

	return session, nil
}

// FetchVotingSessionsByGroup returns all sessions of a group in storage order.
func (s *Store) FetchVotingSessionsByGroup(ctx context.Context, groupID string) ([]models.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, group_id, payload, stored_at
		FROM voting_session
		WHERE group_id = $1
		ORDER BY stored_at, id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var session models.Session
		var payload string
		if err := rows.Scan(&session.ID, &session.GroupID, &payload, &session.StoredAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &session.Data); err != nil {
			return nil, fmt.Errorf("failed to decode session %s: %w", session.ID, err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// CastVote records a vote. Votes are append-only.
func (s *Store) CastVote(ctx context.Context, vote models.Vote) (models.Vote, error) {
	vote.ID = uuid.NewString()
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (id, group_id, user_id, activity_id, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, vote.ID, vote.GroupID, vote.UserID, vote.ActivityID, vote.Value, vote.CreatedAt)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	return vote, nil
}

// FetchVotes returns every vote cast in a group, oldest first.
func (s *Store) FetchVotes(ctx context.Context, groupID string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, group_id, user_id, activity_id, value, created_at
		FROM vote
		WHERE group_id = $1
		ORDER BY created_at, id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.GroupID, &v.UserID, &v.ActivityID, &v.Value, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}
