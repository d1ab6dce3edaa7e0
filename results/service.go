// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/group-swipe/models"
)

var (
	ErrInvalidGroup    = errors.New("group id is required")
	ErrSessionNotFound = errors.New("session not found")
)

// DefaultConcurrency bounds in-flight fetches when Config leaves it unset.
const DefaultConcurrency = 8

// SessionFetcher returns every voting session of a group, in any state.
type SessionFetcher interface {
	FetchVotingSessionsByGroup(ctx context.Context, groupID string) ([]models.Session, error)
}

// VoteFetcher returns every vote ever cast in a group.
type VoteFetcher interface {
	FetchVotes(ctx context.Context, groupID string) ([]models.Vote, error)
}

type Config struct {
	Concurrency int
	StrictIDs   bool
	Now         func() time.Time
}

type Service struct {
	sessions    SessionFetcher
	votes       VoteFetcher
	aggregator  Aggregator
	concurrency int
	now         func() time.Time
}

func NewService(sessions SessionFetcher, votes VoteFetcher, cfg Config) *Service {
	s := &Service{
		sessions:    sessions,
		votes:       votes,
		aggregator:  Aggregator{StrictIDs: cfg.StrictIDs},
		concurrency: cfg.Concurrency,
		now:         cfg.Now,
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultConcurrency
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// LoadCompletedSessions returns results for every completed session of
// the given groups, most recent first.
//
// Groups and the sessions inside each group are processed concurrently.
// A group whose sessions cannot be fetched contributes nothing; a session
// whose votes cannot be fetched or counted contributes an empty result
// carrying its session and group metadata. Neither failure is returned.
// An error is returned only for unusable input or a cancelled context.
func (s *Service) LoadCompletedSessions(ctx context.Context, groups []models.Group) ([]models.SessionResult, error) {
	for _, group := range groups {
		if strings.TrimSpace(group.ID) == "" {
			return nil, ErrInvalidGroup
		}
	}

	now := s.now()
	perGroup := make([][]models.SessionResult, len(groups))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, group := range groups {
		g.Go(func() error {
			err := recovered(func() {
				perGroup[i] = s.loadGroup(ctx, group, now)
			})
			if err != nil {
				slog.Error("failed to load group sessions", "group_id", group.ID, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := []models.SessionResult{}
	for _, results := range perGroup {
		all = append(all, results...)
	}
	sortByRecency(all)

	return all, nil
}

// loadGroup resolves the completed sessions of one group.
func (s *Service) loadGroup(ctx context.Context, group models.Group, now time.Time) []models.SessionResult {
	sessions, err := s.sessions.FetchVotingSessionsByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("failed to fetch voting sessions", "group_id", group.ID, "error", err)
		return nil
	}

	var completed []models.Session
	for _, session := range sessions {
		if IsCompleted(session, now) {
			completed = append(completed, session)
		}
	}
	if len(completed) == 0 {
		return nil
	}

	// Votes are stored per group, so every session shares one fetch.
	fetchVotes := sync.OnceValues(func() ([]models.Vote, error) {
		return s.votes.FetchVotes(ctx, group.ID)
	})

	out := make([]models.SessionResult, len(completed))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, session := range completed {
		g.Go(func() error {
			out[i] = s.resolveSession(group, session, now, fetchVotes)
			return nil
		})
	}
	g.Wait()

	return out
}

// resolveSession never fails; problems degrade to an empty result.
func (s *Service) resolveSession(group models.Group, session models.Session, now time.Time, fetchVotes func() ([]models.Vote, error)) models.SessionResult {
	var result models.SessionResult

	votes, err := fetchVotesSafely(fetchVotes)
	if err == nil {
		err = recovered(func() {
			result = s.aggregator.Aggregate(session, votes)
		})
	}
	if err != nil {
		slog.Warn("session results unavailable",
			"group_id", group.ID,
			"session_id", session.ID,
			"error", err,
		)
		result = emptyResult(session)
	}

	annotate(&result, group, session, now)
	return result
}

func fetchVotesSafely(fetchVotes func() ([]models.Vote, error)) ([]models.Vote, error) {
	var votes []models.Vote
	var fetchErr error
	if err := recovered(func() { votes, fetchErr = fetchVotes() }); err != nil {
		return nil, err
	}
	if fetchErr != nil {
		return nil, fmt.Errorf("failed to fetch votes: %w", fetchErr)
	}
	return votes, nil
}

// SessionResult computes the current tally of a single session, whether or
// not voting has finished.
func (s *Service) SessionResult(ctx context.Context, group models.Group, sessionID string) (models.SessionResult, error) {
	if strings.TrimSpace(group.ID) == "" {
		return models.SessionResult{}, ErrInvalidGroup
	}

	sessions, err := s.sessions.FetchVotingSessionsByGroup(ctx, group.ID)
	if err != nil {
		return models.SessionResult{}, fmt.Errorf("failed to fetch voting sessions: %w", err)
	}

	for _, session := range sessions {
		if session.ID != sessionID {
			continue
		}

		votes, err := s.votes.FetchVotes(ctx, group.ID)
		if err != nil {
			return models.SessionResult{}, fmt.Errorf("failed to fetch votes: %w", err)
		}

		var result models.SessionResult
		if err := recovered(func() { result = s.aggregator.Aggregate(session, votes) }); err != nil {
			return models.SessionResult{}, fmt.Errorf("failed to aggregate session %s: %w", sessionID, err)
		}
		annotate(&result, group, session, s.now())
		return result, nil
	}

	return models.SessionResult{}, ErrSessionNotFound
}

// annotate fills the display metadata the feed needs.
func annotate(result *models.SessionResult, group models.Group, session models.Session, now time.Time) {
	result.SessionID = session.ID
	result.GroupID = group.ID
	result.GroupName = group.Name

	result.CompletedAt = SessionDate(session)
	result.CompletedAgo = ""
	if result.CompletedAt.Unix() != 0 {
		result.CompletedAgo = humanize.RelTime(result.CompletedAt, now, "ago", "from now")
	}
}

// sortByRecency orders results by session date, newest first. Ties fall
// back to session then group ID so output does not depend on which fetch
// finished first.
func sortByRecency(results []models.SessionResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !a.CompletedAt.Equal(b.CompletedAt) {
			return a.CompletedAt.After(b.CompletedAt)
		}
		if a.SessionID != b.SessionID {
			return a.SessionID < b.SessionID
		}
		return a.GroupID < b.GroupID
	})
}

// recovered runs fn and converts a panic into an error.
func recovered(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}
