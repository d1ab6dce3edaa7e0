// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Group Swipe API server.

Group Swipe lets a group of people swipe yes or no on a shared list of
activities (movies, restaurants, places). Once a session is over, the
server turns the raw votes into a ranked result with a winner, and serves
a feed of finished sessions across groups, newest first.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first. Variables already
set in the environment win over it, and flags win over both.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:group-swipe.db)
  - LOG_LEVEL (--log-level): debug, info, warn, error (default: info)
  - LOG_FORMAT (--log-format): text or json (default: text)
  - FETCH_CONCURRENCY (--fetch-concurrency): Concurrent fetches (default: 8)
  - PAGE_SIZE (--page-size): Default results page size (default: 20)
  - STRICT_ACTIVITY_IDS (--strict-ids): Only match session-scoped references

# Architecture

  - results: Session classification, vote matching, aggregation, the feed
  - handlers: HTTP request handlers (groups, sessions, votes, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain, request and response types
  - db: Connection, schema and Store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
