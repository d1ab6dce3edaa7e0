// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/group-swipe/models"
	"github.com/danielhkuo/group-swipe/testutil"
)

// seedFeed creates two groups with completed sessions and one running
// session, returning the group IDs.
func seedFeed(t *testing.T, db *sql.DB) (string, string) {
	t.Helper()

	now := time.Now()
	roommates := testutil.CreateTestGroup(t, db, "Roommates")
	club := testutil.CreateTestGroup(t, db, "Book club")

	testutil.CreateTestSession(t, db, roommates.ID, models.Record{
		"id":          "r-old",
		"name":        "Last week",
		"status":      "finished",
		"completedAt": now.Add(-7 * 24 * time.Hour).UnixMilli(),
		"activities": []any{
			map[string]any{"placeId": "pizza-place", "name": "Pizza"},
			map[string]any{"placeId": "sushi-place", "name": "Sushi"},
		},
	})
	testutil.CreateTestSession(t, db, roommates.ID,
		testutil.CompletedSessionData("r-new", "Yesterday", now.Add(-24*time.Hour), "Bowling", "Karaoke", "Chess"))
	testutil.CreateTestSession(t, db, roommates.ID, models.Record{
		"id":     "r-live",
		"status": "active",
		"items":  []any{"Hiking"},
	})
	testutil.CreateTestSession(t, db, club.ID,
		testutil.CompletedSessionData("c-1", "Pick a book", now.Add(-3*time.Hour), "Dune", "Emma"))

	testutil.CastTestVote(t, db, roommates.ID, "ana", "r-new_1", models.VoteYes)
	testutil.CastTestVote(t, db, roommates.ID, "ben", "r-new_1", models.VoteYes)
	testutil.CastTestVote(t, db, roommates.ID, "ben", "r-new_0", models.VoteNo)
	testutil.CastTestVote(t, db, club.ID, "cy", "c-1_0", models.VoteNo)

	return roommates.ID, club.ID
}

func getResults(t *testing.T, handler *ResultsHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)
	return w
}

func TestGetResults_AllGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, testutil.GetTestConfig())
	seedFeed(t, db)

	w := getResults(t, handler, "/results")
	testutil.AssertStatus(t, w, http.StatusOK)

	var page models.ResultsPage
	testutil.AssertJSON(t, w, &page)

	if page.Total != 3 {
		t.Fatalf("Expected 3 completed sessions, got %d", page.Total)
	}
	expected := []string{"c-1", "r-new", "r-old"}
	for i, r := range page.Results {
		if r.SessionID != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], r.SessionID)
		}
	}

	newest := page.Results[1]
	if newest.Winner == nil || newest.Winner.Name != "Karaoke" || newest.Winner.SupportPercentage != 100 {
		t.Errorf("Expected Karaoke to win r-new, got %+v", newest.Winner)
	}
	if newest.GroupName != "Roommates" || newest.SessionName != "Yesterday" {
		t.Errorf("Unexpected metadata: %+v", newest)
	}
	if newest.CompletedAgo == "" {
		t.Error("Expected completed_ago to be set")
	}

	club := page.Results[0]
	if club.Winner != nil || !club.HasVotes {
		t.Errorf("Expected all-no session to have votes but no winner, got %+v", club)
	}

	old := page.Results[2]
	if old.HasVotes || len(old.AllResults) != 2 {
		t.Errorf("Expected r-old to list 2 unvoted activities, got %+v", old)
	}
}

func TestGetResults_GroupFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, testutil.GetTestConfig())
	roommates, club := seedFeed(t, db)

	tests := []struct {
		name     string
		target   string
		expected int
	}{
		{"single group", "/results?group_id=" + roommates, 2},
		{"other group", "/results?group_id=" + club, 1},
		{"comma separated", "/results?group_id=" + roommates + "," + club, 3},
		{"repeated param", "/results?group_id=" + roommates + "&group_id=" + club, 3},
		{"duplicates ignored", "/results?group_id=" + club + "," + club, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getResults(t, handler, tt.target)
			testutil.AssertStatus(t, w, http.StatusOK)

			var page models.ResultsPage
			testutil.AssertJSON(t, w, &page)
			if page.Total != tt.expected {
				t.Errorf("Expected %d results, got %d", tt.expected, page.Total)
			}
		})
	}

	w := getResults(t, handler, "/results?group_id=missing")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetResults_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, testutil.GetTestConfig())
	seedFeed(t, db)

	w := getResults(t, handler, "/results?page=1&limit=2")
	testutil.AssertStatus(t, w, http.StatusOK)

	var first models.ResultsPage
	testutil.AssertJSON(t, w, &first)
	if len(first.Results) != 2 || !first.HasMore || first.Limit != 2 {
		t.Errorf("Unexpected first page: %+v", first)
	}

	w = getResults(t, handler, "/results?page=2&limit=2")
	var second models.ResultsPage
	testutil.AssertJSON(t, w, &second)
	if len(second.Results) != 1 || second.HasMore || second.Results[0].SessionID != "r-old" {
		t.Errorf("Unexpected second page: %+v", second)
	}

	w = getResults(t, handler, "/results?page=9")
	var beyond models.ResultsPage
	testutil.AssertJSON(t, w, &beyond)
	if len(beyond.Results) != 0 || beyond.Total != 3 {
		t.Errorf("Expected empty page past the end, got %+v", beyond)
	}
}

func TestGetResults_InvalidParams(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, testutil.GetTestConfig())

	for _, target := range []string{
		"/results?page=0",
		"/results?page=abc",
		"/results?limit=-1",
		"/results?limit=ten",
	} {
		t.Run(target, func(t *testing.T) {
			w := getResults(t, handler, target)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestGetResults_NoGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, testutil.GetTestConfig())

	w := getResults(t, handler, "/results")
	testutil.AssertStatus(t, w, http.StatusOK)

	var page models.ResultsPage
	testutil.AssertJSON(t, w, &page)
	if page.Results == nil || len(page.Results) != 0 || page.Total != 0 {
		t.Errorf("Expected empty feed, got %+v", page)
	}
}

func TestGroupIDs(t *testing.T) {
	got := groupIDs([]string{"a, b", "", "b,c", " ,a"})
	expected := []string{"a", "b", "c"}
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
}
