// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package results turns raw voting sessions and votes into ranked session
results.

# Session Completion

A session is finished when IsCompleted says so:

	results.IsCompleted(session, time.Now())

Explicit status wins, then end time, then a one hour age rule on the
creation time. Unreadable timestamps count as missing. SessionDate picks
the instant used to order the feed.

# Activity Identity

Votes reference activities by a string that may be a provider ID
(tmdbId, placeId), a generic ID, or a composite "<sessionID>_<index>"
reference. ResolveActivityID derives one ID per activity and IDsMatch
joins votes to it. IDsMatchStrict is available for clean data.

# Aggregation

	result := results.Aggregate(session, groupVotes)

Activities are ranked by:

 1. Yes votes (descending)
 2. Yes ratio (descending)
 3. Name (locale order)

The top activity is the winner only when it has at least one yes vote.
TotalParticipants counts distinct voters across every counted vote.

# Completed Session Feed

Service fetches sessions and votes through SessionFetcher and VoteFetcher
and builds the feed for a list of groups:

	svc := results.NewService(store, store, results.Config{Concurrency: 8})
	feed, err := svc.LoadCompletedSessions(ctx, groups)
	page := results.Paginate(feed, 1, 20)

Failures inside a group or a session are logged and degrade to missing or
empty results. Only invalid input or cancellation is returned as an error.
*/
package results
