// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/group-swipe/cliparse"
	"github.com/danielhkuo/group-swipe/db"
	"github.com/danielhkuo/group-swipe/models"
)

// TestDBURL is an in-memory SQLite database; each SetupTestDB call gets its own
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(GetTestConfig())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      TestDBURL,
		DatabaseType:     cliparse.DatabaseSQLite,
		FetchConcurrency: 4,
		PageSize:         20,
	}
}

// CreateTestGroup inserts a group and returns it
func CreateTestGroup(t *testing.T, conn *sql.DB, name string) models.Group {
	t.Helper()

	group, err := db.NewStore(conn).CreateGroup(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}

	return group
}

// CreateTestSession stores a raw session document and returns its ID
func CreateTestSession(t *testing.T, conn *sql.DB, groupID string, data models.Record) string {
	t.Helper()

	session, err := db.NewStore(conn).CreateSession(context.Background(), groupID, data)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return session.ID
}

// CompletedSessionData builds a finished session document with one
// activity per name. Activities get index IDs, so votes reference them as
// "<sessionID>_<index>".
func CompletedSessionData(id, name string, endedAt time.Time, activities ...string) models.Record {
	items := make([]any, len(activities))
	for i, activity := range activities {
		items[i] = map[string]any{"name": activity}
	}
	return models.Record{
		"id":         id,
		"name":       name,
		"status":     models.StatusCompleted,
		"endTime":    endedAt.UTC().Format(time.RFC3339),
		"activities": items,
	}
}

// CastTestVote records a vote and returns its ID
func CastTestVote(t *testing.T, conn *sql.DB, groupID, userID, activityID, value string) string {
	t.Helper()

	vote, err := db.NewStore(conn).CastVote(context.Background(), models.Vote{
		GroupID:    groupID,
		UserID:     userID,
		ActivityID: activityID,
		Value:      value,
	})
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return vote.ID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
