// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the streamvote API server.

Streamvote runs live chat polls for a streaming broadcaster: the control
surface starts a poll, viewers vote by typing option numbers in chat, the
platform pushes chat events to the webhook endpoint, and the tally engine
reports live counts and a final winner.

# Starting the Server

The server reads environment variables (a local .env is honored) or CLI
flags:

	CONTROL_TOKEN=secret REDIS_URL=redis://... go run main.go

Or with flags:

	go run main.go -p 3318 -r "redis://localhost:6379" -control-token secret

# Configuration

Required settings:

  - CONTROL_TOKEN (-control-token): bearer token for control endpoints

Optional settings:

  - PORT (-p): server port (default: 3318)
  - REDIS_URL (-r): shared state store; empty runs in-memory, single instance
  - WEBHOOK_PUBLIC_KEY: platform signing key override (PEM)
  - WEBHOOK_SKIP_VERIFY (-skip-verify): disable signature checks (dev only)
  - VOTE_POLICY (-vote-policy): "numbered" (default) or "freeform"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (webhook ingestion, poll control)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer auth, JSON helpers
  - models: request/response and domain types
  - signature: webhook signature verification
  - event: webhook event-type classification
  - vote: chat-message ballot parsing
  - store: poll state store (Redis or in-memory)
  - tally: counts, percentages, winner
  - timer: lazy countdown expiry
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
