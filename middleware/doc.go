// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: structured request/completion logging
  - CORS: cross-origin headers and preflight handling

# Helpers

  - JSONResponse: write a JSON body with status code
  - ErrorResponse: write a models.ErrorResponse
  - ParseJSONBody: decode a request body
  - GetClientIP: client address from forwarding headers or RemoteAddr
*/
package middleware
