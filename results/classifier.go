// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"strings"
	"time"

	"github.com/danielhkuo/group-swipe/models"
)

// CompletionAge is how long after creation a session without an end time
// is considered finished.
const CompletionAge = time.Hour

var completedStatuses = map[string]bool{
	models.StatusCompleted: true,
	models.StatusEnded:     true,
	models.StatusFinished:  true,
	models.StatusClosed:    true,
}

// IsCompleted reports whether a session has finished voting.
//
// The first rule that applies decides:
//  1. an explicit status of completed, ended, finished or closed (any case)
//  2. a readable end time, compared against now
//  3. a readable creation time more than CompletionAge before now
//
// Sessions with none of these fields are treated as still running.
func IsCompleted(session models.Session, now time.Time) bool {
	if status, ok := firstString(session.Data, statusKeys...); ok {
		if completedStatuses[strings.ToLower(strings.TrimSpace(status))] {
			return true
		}
	}

	if endTime, ok := firstTime(session.Data, endTimeKeys...); ok {
		return endTime.Before(now)
	}

	if createdAt, ok := firstTime(session.Data, createdAtKeys...); ok {
		return now.Sub(createdAt) > CompletionAge
	}

	return false
}

// SessionDate picks the instant used to order sessions: completion time,
// then end time, then creation time. Sessions with none of them get the
// Unix epoch so they sort last in a most-recent-first feed.
func SessionDate(session models.Session) time.Time {
	for _, keys := range [][]string{completedAtKeys, endTimeKeys, createdAtKeys} {
		if t, ok := firstTime(session.Data, keys...); ok {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

// SessionStatus returns the raw status string, if any.
func SessionStatus(session models.Session) string {
	status, _ := firstString(session.Data, statusKeys...)
	return status
}
