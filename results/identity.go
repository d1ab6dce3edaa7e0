// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"strconv"
	"strings"

	"github.com/danielhkuo/group-swipe/models"
)

// ResolveActivityID derives the identifier votes use for an activity.
// Activities carry no uniform ID field, so the first non-empty of tmdbId,
// placeId, id and activityId wins; otherwise the activity's position in the
// session list is used.
func ResolveActivityID(activity models.Record, index int) string {
	if id, ok := firstString(activity, activityIDKeys...); ok {
		return id
	}
	return strconv.Itoa(index)
}

// IDsMatch reports whether a vote's activity reference points at the
// candidate activity ID. Older clients wrote composite references such as
// "<sessionID>_<index>", so besides equality it accepts an underscore
// suffix and, for references with three or more segments, a matching last
// segment.
//
// This is a best-effort join. Two activities whose IDs are the same short
// suffix can both claim a vote; callers take the first match in activity
// order. Use IDsMatchStrict when references are known to be well formed.
func IDsMatch(candidate, voteID string) bool {
	if candidate == "" {
		return false
	}
	if voteID == candidate {
		return true
	}
	if strings.HasSuffix(voteID, "_"+candidate) {
		return true
	}
	parts := strings.Split(voteID, "_")
	return len(parts) >= 3 && parts[len(parts)-1] == candidate
}

// IDsMatchStrict accepts only an exact reference or one scoped to the
// given session ("<sessionID>_<candidate>").
func IDsMatchStrict(sessionID, candidate, voteID string) bool {
	if candidate == "" {
		return false
	}
	if voteID == candidate {
		return true
	}
	return sessionID != "" && voteID == sessionID+"_"+candidate
}
