// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token and ID generation.

# User Tokens

GenerateUserToken creates a 192-bit random token issued at registration:

	token, err := auth.GenerateUserToken()

Clients send it back in the X-User-Token header; handlers resolve it to
the stored user record.

# IDs

GenerateID creates random hex identifiers of a given byte length for
records that need an id outside the store's generated ones.
*/
package auth
