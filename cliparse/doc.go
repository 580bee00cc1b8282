// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags with
environment variable fallback.

Required settings:

  - DATABASE_URL (-d): database connection string
  - CATALOG_BASE_URL (-catalog-url): restaurant catalog endpoint

Optional settings:

  - PORT (-p): server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - CATALOG_API_KEY (-catalog-key): catalog bearer token
  - TELEGRAM_TOKEN / TELEGRAM_CHAT_ID: enable the Telegram relay

A .env file in the working directory is loaded by main before parsing.
*/
package cliparse
