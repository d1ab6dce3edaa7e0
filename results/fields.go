// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/group-swipe/models"
)

// Candidate field names, in priority order
var (
	activityListKeys        = []string{"activities", "selectedItems", "items"}
	sessionNameKeys         = []string{"name", "title"}
	statusKeys              = []string{"status"}
	endTimeKeys             = []string{"endTime"}
	createdAtKeys           = []string{"createdAt"}
	completedAtKeys         = []string{"completedAt"}
	activityIDKeys          = []string{"tmdbId", "placeId", "id", "activityId"}
	activityNameKeys        = []string{"name", "title"}
	activityDescriptionKeys = []string{"description", "overview", "address"}
)

// FirstOf returns the first value in record, in key order, that is present
// and not null.
func FirstOf(record models.Record, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstString returns the first value that coerces to a non-empty string.
func firstString(record models.Record, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := coerceString(record[key]); ok {
			return s, true
		}
	}
	return "", false
}

// coerceString converts scalar JSON values to their string form.
// Numbers are written without a fractional part when they are integral.
func coerceString(v any) (string, bool) {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case json.Number:
		s = val.String()
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case int32:
		s = strconv.FormatInt(int64(val), 10)
	case uint64:
		s = strconv.FormatUint(val, 10)
	default:
		return "", false
	}
	return s, s != ""
}

// timeLayouts are tried in order for string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// timestamper matches structured timestamp values such as protobuf's
// timestamppb.Timestamp.
type timestamper interface {
	AsTime() time.Time
}

// parseTime interprets a timestamp field. It never fails loudly: anything
// it cannot read reports ok=false and is treated as absent by callers.
func parseTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, !val.IsZero()
	case timestamper:
		t := val.AsTime()
		return t, !t.IsZero()
	case string:
		return parseTimeString(val)
	case float64:
		return fromMillis(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromMillis(f)
	case int64:
		return time.UnixMilli(val).UTC(), true
	case int:
		return time.UnixMilli(int64(val)).UTC(), true
	case models.Record:
		return parseSecondsObject(val)
	case map[string]any:
		return parseSecondsObject(val)
	}
	return time.Time{}, false
}

func parseTimeString(s string) (time.Time, bool) {
	s = strings.TrimSpace(stripZoneName(s))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stripZoneName drops the " (Pacific Daylight Time)" suffix JavaScript's
// Date.toString appends after the numeric offset.
func stripZoneName(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, ")") {
		return s
	}
	if i := strings.LastIndex(s, " ("); i > 0 {
		return s[:i]
	}
	return s
}

// fromMillis reads an epoch timestamp in milliseconds.
func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > 8.64e15 {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// parseSecondsObject reads serialized Firestore timestamps, which appear
// as {seconds, nanoseconds} or {_seconds, _nanoseconds}.
func parseSecondsObject(m map[string]any) (time.Time, bool) {
	for _, prefix := range []string{"", "_"} {
		secs, ok := numberValue(m[prefix+"seconds"])
		if !ok {
			continue
		}
		nanos, _ := numberValue(m[prefix+"nanoseconds"])
		return time.Unix(int64(secs), int64(nanos)).UTC(), true
	}
	return time.Time{}, false
}

func numberValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val) && !math.IsInf(val, 0)
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	}
	return 0, false
}

// firstTime returns the first field that parses as a timestamp.
func firstTime(record models.Record, keys ...string) (time.Time, bool) {
	for _, key := range keys {
		if t, ok := parseTime(record[key]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// asRecord converts a decoded JSON object into a Record.
func asRecord(v any) (models.Record, bool) {
	switch val := v.(type) {
	case models.Record:
		return val, true
	case map[string]any:
		return models.Record(val), true
	}
	return nil, false
}
