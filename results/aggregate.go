// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielhkuo/group-swipe/models"
)

// Aggregator tallies votes for one session. The zero value uses the loose
// ID matching of IDsMatch.
type Aggregator struct {
	// StrictIDs switches vote matching to IDsMatchStrict.
	StrictIDs bool
}

// Aggregate computes a session result with the default Aggregator.
func Aggregate(session models.Session, groupVotes []models.Vote) models.SessionResult {
	return Aggregator{}.Aggregate(session, groupVotes)
}

// tally accumulates the votes matched to one activity
type tally struct {
	id          string
	name        string
	description string
	yes         int
	no          int
	total       int
	voters      map[string]struct{}
	votes       []models.Vote
}

func (t *tally) yesRatio() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.yes) / float64(t.total)
}

func (t *tally) supportPercentage() int {
	if t.total == 0 {
		return 0
	}
	return int(math.Round(float64(t.yes) / float64(t.total) * 100))
}

// Aggregate tallies groupVotes against the session's activities.
//
// groupVotes may hold votes for every session in the group; only votes
// whose activity reference matches one of this session's activities are
// counted. Activities are ranked by yes votes, then yes ratio, then name.
// The top activity is the winner only if it has at least one yes vote.
func (a Aggregator) Aggregate(session models.Session, groupVotes []models.Vote) models.SessionResult {
	result := emptyResult(session)

	activities := Activities(session)
	if len(activities) == 0 {
		return result
	}

	tallies := make([]*tally, len(activities))
	for i, activity := range activities {
		name, _ := firstString(activity, activityNameKeys...)
		description, _ := firstString(activity, activityDescriptionKeys...)
		tallies[i] = &tally{
			id:          ResolveActivityID(activity, i),
			name:        name,
			description: description,
			voters:      make(map[string]struct{}),
		}
	}

	participants := make(map[string]struct{})
	for _, vote := range groupVotes {
		t := a.match(session.ID, tallies, vote.ActivityID)
		if t == nil {
			continue
		}

		result.TotalVotes++
		participants[vote.UserID] = struct{}{}

		t.total++
		t.voters[vote.UserID] = struct{}{}
		t.votes = append(t.votes, vote)

		switch vote.Value {
		case models.VoteYes:
			t.yes++
		case models.VoteNo:
			t.no++
		}
	}

	rank(tallies)

	result.AllResults = make([]models.ActivityResult, len(tallies))
	for i, t := range tallies {
		result.AllResults[i] = models.ActivityResult{
			ActivityID:        t.id,
			Name:              t.name,
			Description:       t.description,
			YesVotes:          t.yes,
			NoVotes:           t.no,
			TotalVotes:        t.total,
			VoterCount:        len(t.voters),
			SupportPercentage: t.supportPercentage(),
			Rank:              i + 1,
			Votes:             t.votes,
		}
	}

	if top := result.AllResults[0]; top.YesVotes > 0 {
		result.Winner = &top
	}
	result.TotalParticipants = len(participants)
	result.HasVotes = result.TotalVotes > 0

	return result
}

// match returns the first tally whose activity ID matches the reference.
func (a Aggregator) match(sessionID string, tallies []*tally, voteActivityID string) *tally {
	for _, t := range tallies {
		if a.StrictIDs {
			if IDsMatchStrict(sessionID, t.id, voteActivityID) {
				return t
			}
			continue
		}
		if IDsMatch(t.id, voteActivityID) {
			return t
		}
	}
	return nil
}

// rank orders tallies best first
func rank(tallies []*tally) {
	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(language.English)

	sort.SliceStable(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]

		// 1. More yes votes wins
		if a.yes != b.yes {
			return a.yes > b.yes
		}

		// 2. Higher yes ratio wins
		if ra, rb := a.yesRatio(), b.yesRatio(); ra != rb {
			return ra > rb
		}

		// 3. Name, locale order
		return col.CompareString(a.name, b.name) < 0
	})
}

// Activities returns the session's activity list from whichever field the
// client used. Plain string entries are read as activity names; entries of
// any other shape become empty activities so indexes stay aligned.
func Activities(session models.Session) []models.Record {
	raw, ok := FirstOf(session.Data, activityListKeys...)
	if !ok {
		return nil
	}

	var items []any
	switch list := raw.(type) {
	case []any:
		items = list
	case []models.Record:
		out := make([]models.Record, len(list))
		copy(out, list)
		return out
	case []map[string]any:
		out := make([]models.Record, len(list))
		for i, m := range list {
			out[i] = models.Record(m)
		}
		return out
	default:
		return nil
	}

	activities := make([]models.Record, len(items))
	for i, item := range items {
		if record, ok := asRecord(item); ok {
			activities[i] = record
			continue
		}
		if name, ok := item.(string); ok {
			activities[i] = models.Record{"name": name}
			continue
		}
		activities[i] = models.Record{}
	}
	return activities
}

// SessionName returns the session's display name.
func SessionName(session models.Session) string {
	name, _ := firstString(session.Data, sessionNameKeys...)
	return name
}

// emptyResult is the result for a session with nothing to count.
func emptyResult(session models.Session) models.SessionResult {
	return models.SessionResult{
		SessionID:   session.ID,
		SessionName: SessionName(session),
		GroupID:     session.GroupID,
		AllResults:  []models.ActivityResult{},
	}
}
