// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/group-swipe/models"
	"github.com/danielhkuo/group-swipe/testutil"
)

func TestCreateSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSessionHandler(db, testutil.GetTestConfig())
	group := testutil.CreateTestGroup(t, db, "Roommates")

	tests := []struct {
		name           string
		groupID        string
		body           interface{}
		expectedStatus int
		expectedID     string
	}{
		{
			name:    "client supplied id",
			groupID: group.ID,
			body: map[string]any{
				"id":         "sess-1",
				"name":       "Dinner",
				"activities": []any{map[string]any{"placeId": "p1", "name": "Tacos"}},
			},
			expectedStatus: http.StatusCreated,
			expectedID:     "sess-1",
		},
		{
			name:           "generated id",
			groupID:        group.ID,
			body:           map[string]any{"title": "Movies"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown group",
			groupID:        "missing",
			body:           map[string]any{"name": "Dinner"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/groups/"+tt.groupID+"/sessions", tt.body, nil)
			req.SetPathValue("id", tt.groupID)
			w := httptest.NewRecorder()

			handler.CreateSession(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateSessionResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.SessionID == "" {
					t.Error("Expected session_id in response")
				}
				if tt.expectedID != "" && resp.SessionID != tt.expectedID {
					t.Errorf("Expected session_id %s, got %s", tt.expectedID, resp.SessionID)
				}
			}
		})
	}
}

func TestCreateSession_DuplicateID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSessionHandler(db, testutil.GetTestConfig())
	group := testutil.CreateTestGroup(t, db, "Roommates")
	other := testutil.CreateTestGroup(t, db, "Other")

	testutil.CreateTestSession(t, db, group.ID, models.Record{"id": "sess-1", "name": "Dinner"})

	for _, groupID := range []string{group.ID, other.ID} {
		t.Run(groupID, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/groups/"+groupID+"/sessions", map[string]any{"id": "sess-1"}, nil)
			req.SetPathValue("id", groupID)
			w := httptest.NewRecorder()

			handler.CreateSession(w, req)

			testutil.AssertStatus(t, w, http.StatusConflict)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != "Session already exists" {
				t.Errorf("Expected conflict message, got %q", resp.Message)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSessionHandler(db, testutil.GetTestConfig())
	group := testutil.CreateTestGroup(t, db, "Roommates")

	ended := time.Now().Add(-2 * time.Hour)
	testutil.CreateTestSession(t, db, group.ID,
		testutil.CompletedSessionData("done", "Friday", ended, "Tacos", "Sushi"))
	testutil.CreateTestSession(t, db, group.ID, models.Record{
		"id":     "live",
		"title":  "Saturday",
		"status": "active",
		"items":  []any{"Bowling"},
	})

	req := httptest.NewRequest("GET", "/groups/"+group.ID+"/sessions", nil)
	req.SetPathValue("id", group.ID)
	w := httptest.NewRecorder()

	handler.ListSessions(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var summaries []models.SessionSummary
	testutil.AssertJSON(t, w, &summaries)
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(summaries))
	}

	byID := make(map[string]models.SessionSummary)
	for _, s := range summaries {
		byID[s.ID] = s
	}

	done := byID["done"]
	if !done.Completed || done.Name != "Friday" || done.ActivityCount != 2 {
		t.Errorf("Unexpected completed summary: %+v", done)
	}
	if done.SessionDate.Unix() != ended.Unix() {
		t.Errorf("Expected session date %v, got %v", ended, done.SessionDate)
	}

	live := byID["live"]
	if live.Completed || live.Name != "Saturday" || live.Status != "active" || live.ActivityCount != 1 {
		t.Errorf("Unexpected active summary: %+v", live)
	}
}

func TestGetSessionResult(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSessionHandler(db, testutil.GetTestConfig())
	group := testutil.CreateTestGroup(t, db, "Roommates")

	testutil.CreateTestSession(t, db, group.ID, models.Record{
		"id":     "live",
		"name":   "Saturday",
		"status": "active",
		"items":  []any{"Bowling", "Karaoke"},
	})
	testutil.CastTestVote(t, db, group.ID, "u1", "live_1", models.VoteYes)
	testutil.CastTestVote(t, db, group.ID, "u2", "live_1", models.VoteYes)
	testutil.CastTestVote(t, db, group.ID, "u2", "live_0", models.VoteNo)

	t.Run("in progress session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/groups/"+group.ID+"/sessions/live/results", nil)
		req.SetPathValue("id", group.ID)
		req.SetPathValue("sid", "live")
		w := httptest.NewRecorder()

		handler.GetSessionResult(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var result models.SessionResult
		testutil.AssertJSON(t, w, &result)
		if result.Winner == nil || result.Winner.Name != "Karaoke" {
			t.Fatalf("Expected Karaoke to lead, got %+v", result.Winner)
		}
		if result.TotalVotes != 3 || result.TotalParticipants != 2 {
			t.Errorf("Expected 3 votes from 2 participants, got %d/%d", result.TotalVotes, result.TotalParticipants)
		}
		if result.GroupName != "Roommates" {
			t.Errorf("Expected group name, got %q", result.GroupName)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/groups/"+group.ID+"/sessions/nope/results", nil)
		req.SetPathValue("id", group.ID)
		req.SetPathValue("sid", "nope")
		w := httptest.NewRecorder()

		handler.GetSessionResult(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("unknown group", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/groups/nope/sessions/live/results", nil)
		req.SetPathValue("id", "nope")
		req.SetPathValue("sid", "live")
		w := httptest.NewRecorder()

		handler.GetSessionResult(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
