// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Chowdown API server.

Chowdown is a group restaurant-decision service: friends form a voting
session, the server pulls candidate restaurants from a directory near
the chosen spot, and everyone casts ranked votes until a winner emerges.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=chowdown.db CATALOG_BASE_URL=https://... go run main.go

Or with flags:

	go run main.go -p 3319 -d chowdown.db -catalog-url "https://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - CATALOG_BASE_URL (-catalog-url): restaurant directory endpoint

Optional settings:

  - PORT (-p): server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - CATALOG_API_KEY (-catalog-key): directory bearer token
  - TELEGRAM_TOKEN / TELEGRAM_CHAT_ID: post lifecycle events to a chat

# Architecture

The server uses a handler-based architecture with dependency injection:

  - session: the voting session protocol (creation, invitations, votes,
    tally, teardown)
  - store: collection-style document storage with change subscriptions
  - catalog: restaurant directory client
  - relay: lifecycle notifications (log, Telegram)
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain and request/response types
  - auth: token generation
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
