// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - RedisURL: Redis connection URL; empty selects the in-memory store
  - ControlToken: Bearer token for control endpoints (required)
  - PublicKeyPEM: Platform webhook public key override (env only)
  - SkipVerify: Skip webhook signature verification (dev only, off by default)
  - VotePolicy: "numbered" (default) or "freeform"

# CLI Flags

	-p              Server port
	-r              Redis URL
	-control-token  Control bearer token
	-skip-verify    Disable signature verification
	-vote-policy    Vote-acceptance policy

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	REDIS_URL           → -r
	CONTROL_TOKEN       → -control-token
	WEBHOOK_SKIP_VERIFY → -skip-verify (value "true")
	VOTE_POLICY         → -vote-policy
	WEBHOOK_PUBLIC_KEY  (no flag; PEM blocks don't belong on a command line)

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - CONTROL_TOKEN must be provided
  - VOTE_POLICY must be "numbered" or "freeform"
*/
package cliparse
