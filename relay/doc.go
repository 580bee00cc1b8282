// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package relay delivers session lifecycle notifications.

The session core publishes three named events:

  - invitation_created: an invitation was fanned out
  - invitation_response: an invitee accepted or declined
  - session_concluded: a winner was decided (or the session abandoned)

Relays are fire-and-forget; Publish never returns an error and never
blocks the voting protocol on delivery.

Implementations:

  - LogRelay: structured log output, always on
  - TelegramRelay: posts to a group chat via the Bot API
  - Multi: fan-out to several relays
*/
package relay
