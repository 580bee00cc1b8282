// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes the document table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

A single table backs the document store:

  - document: (collection, id) -> JSON payload

Collections in use: users, voting_sessions, invitations, votes. The
payload shape per collection is defined in the models package.

The schema is portable between PostgreSQL and SQLite; updated_at is set
from Go rather than a database default.
*/
package db
