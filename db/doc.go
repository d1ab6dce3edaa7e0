// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the database connection, schema creation and the Store
that reads and writes groups, voting sessions and votes.

# Connecting

Open picks the driver from Config.DatabaseType:

  - sqlite: modernc.org/sqlite (pure Go, default, file or :memory:)
  - postgres: github.com/lib/pq

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

SQLite connections are limited to one open connection.

# Tables

  - voting_group: Groups of people swiping together
  - voting_session: Session documents as the client wrote them (JSON text)
  - vote: Append-only swipe votes, keyed by group

Votes reference activities, not sessions. Matching votes to the activities
of a session happens in the results package.

# Store

Store implements results.SessionFetcher and results.VoteFetcher:

	store := db.NewStore(conn)
	svc := results.NewService(store, store, results.Config{})

GetGroup returns an error wrapping ErrNotFound for unknown IDs.
*/
package db
