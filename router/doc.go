// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP route mappings using Go 1.22+ routing.

# Routes

User management:

	POST /users
	GET  /users/me
	PUT  /users/me/blacklist

Voting sessions:

	POST /sessions
	GET  /sessions/{id}
	POST /sessions/{id}/votes
	POST /sessions/{id}/leave
	GET  /sessions/{id}/events   (Server-Sent Events; no request logging
	                              wrapper, the stream is long-lived)

Invitations:

	GET  /invitations
	POST /invitations/{key}/respond

Infrastructure:

	GET /health
	GET /
*/
package router
