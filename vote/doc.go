// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote extracts ballot choices from free-text chat messages.

Two policies exist, picked once at startup:

  - numbered (default): the trimmed message must be a bare positive integer
    within [1, len(options)]; it maps to the option at that 1-based position.
    "2" with options [cat dog] records "dog".
  - freeform: any single alphanumeric token is recorded verbatim, so tallies
    may contain write-in entries.

Everything else — empty messages, out-of-range numbers, regular chatter, or
any message while the poll is inactive — is "no vote", returned as a false
second value rather than an error, because non-vote traffic is the common
case on a busy chat.
*/
package vote
