// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/group-swipe/models"
)

// captureLogs routes the default logger into a buffer of JSON lines for the
// rest of the test.
func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	NewLogger(level, "json", &buf)
	return &buf
}

// logEntries decodes captured log lines, keyed by message.
func logEntries(t *testing.T, buf *bytes.Buffer) map[string]map[string]any {
	t.Helper()

	entries := make(map[string]map[string]any)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to decode log line %q: %v", line, err)
		}
		msg, _ := entry["msg"].(string)
		entries[msg] = entry
	}
	return entries
}

func TestWithLogging_RecordsStatus(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected int
	}{
		{
			name: "explicit created",
			handler: func(w http.ResponseWriter, r *http.Request) {
				JSONResponse(w, http.StatusCreated, models.CreateGroupResponse{GroupID: "g1"})
			},
			expected: http.StatusCreated,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusNotFound, "Group not found")
			},
			expected: http.StatusNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusInternalServerError, "Could not load results, please try again")
			},
			expected: http.StatusInternalServerError,
		},
		{
			name: "implicit ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("OK"))
			},
			expected: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t, "info")

			req := httptest.NewRequest("GET", "/groups/g1/sessions", nil)
			w := httptest.NewRecorder()

			WithLogging(tt.handler)(w, req)

			if w.Code != tt.expected {
				t.Errorf("Expected response status %d, got %d", tt.expected, w.Code)
			}

			completed, ok := logEntries(t, logs)["request completed"]
			if !ok {
				t.Fatalf("Expected a completion log line, got %q", logs.String())
			}
			if status, _ := completed["status"].(float64); int(status) != tt.expected {
				t.Errorf("Expected logged status %d, got %v", tt.expected, completed["status"])
			}
			if completed["method"] != "GET" || completed["path"] != "/groups/g1/sessions" {
				t.Errorf("Unexpected request attributes: %v", completed)
			}
			if _, ok := completed["duration_ms"]; !ok {
				t.Error("Expected duration_ms attribute")
			}
		})
	}
}

func TestWithLogging_StartLineAtDebugOnly(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	logs := captureLogs(t, "debug")
	handler(httptest.NewRecorder(), httptest.NewRequest("POST", "/groups", nil))
	if _, ok := logEntries(t, logs)["request started"]; !ok {
		t.Errorf("Expected start line at debug level, got %q", logs.String())
	}

	logs = captureLogs(t, "info")
	handler(httptest.NewRecorder(), httptest.NewRequest("POST", "/groups", nil))
	if _, ok := logEntries(t, logs)["request started"]; ok {
		t.Error("Expected no start line at info level")
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, "vote must be 'yes' or 'no'"},
		{http.StatusNotFound, "Group not found"},
		{http.StatusConflict, "Session already exists"},
		{http.StatusInternalServerError, "Could not load results, please try again"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorResponse(w, tt.status, tt.message)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected application/json, got %q", ct)
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if len(body) != 2 {
				t.Errorf("Expected only error and message keys, got %v", body)
			}
			if body["error"] != http.StatusText(tt.status) {
				t.Errorf("Expected error %q, got %q", http.StatusText(tt.status), body["error"])
			}
			if body["message"] != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, body["message"])
			}
		})
	}
}

func TestJSONResponse_EmptyListIsArray(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusOK, []models.Group{})

	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestParseJSONBody_SessionDocument(t *testing.T) {
	body := `{"id":"s1","endTime":{"_seconds":1748772000,"_nanoseconds":0},"items":["Tacos",{"tmdbId":550}]}`
	req := httptest.NewRequest("POST", "/groups/g1/sessions", strings.NewReader(body))

	var doc models.Record
	if err := ParseJSONBody(req, &doc); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	items, ok := doc["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("Expected two items, got %v", doc["items"])
	}
	if movie, ok := items[1].(map[string]any); !ok || movie["tmdbId"] != float64(550) {
		t.Errorf("Expected nested activity to decode, got %v", items[1])
	}
	if _, ok := doc["endTime"].(map[string]any); !ok {
		t.Errorf("Expected timestamp object, got %T", doc["endTime"])
	}

	req = httptest.NewRequest("POST", "/groups/g1/sessions", strings.NewReader("{not json"))
	if err := ParseJSONBody(req, &doc); err == nil {
		t.Error("Expected error for malformed document")
	}
}

func TestCORS(t *testing.T) {
	nextCalled := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.Write([]byte("handled"))
	}))

	t.Run("preflight allows Authorization", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest("OPTIONS", "/groups/g1/votes", nil)
		req.Header.Set("Origin", "http://localhost:8081")
		req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK || nextCalled {
			t.Errorf("Expected preflight answered without the handler, got %d (next called: %v)", w.Code, nextCalled)
		}
		allowed := w.Header().Get("Access-Control-Allow-Headers")
		for _, header := range []string{"Authorization", "Content-Type"} {
			if !strings.Contains(allowed, header) {
				t.Errorf("Expected %s in allowed headers, got %q", header, allowed)
			}
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8081" {
			t.Errorf("Expected origin echoed, got %q", w.Header().Get("Access-Control-Allow-Origin"))
		}
	})

	t.Run("request without origin", func(t *testing.T) {
		nextCalled = false
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, httptest.NewRequest("GET", "/results", nil))

		if !nextCalled || w.Body.String() != "handled" {
			t.Error("Expected request to reach the handler")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("Expected wildcard origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
		}
	})
}
