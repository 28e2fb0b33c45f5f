// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP surface of the poll service.

# Webhook Receiver

WebhookHandler.Receive ingests platform events:

	POST /webhook

Missing event type → 400. Missing signature material or a bad signature →
401 (skipped entirely under the dev bypass). Non-chat events and chat
messages that aren't votes → 200, dropped, because anything but a 200
makes the platform retry the delivery.

# Poll Control

PollHandler exposes the control-surface operations:

	POST   /poll         start a poll (bearer auth)
	GET    /poll-status  live counts, public, runs the lazy expiry check
	PUT    /poll-status  end the poll and report the winner (bearer auth)
	DELETE /poll-status  reset to the empty default (bearer auth)

Handlers receive their dependencies at construction:

	pollHandler := handlers.NewPollHandler(st)
	webhookHandler := handlers.NewWebhookHandler(st, verifier, parser)
*/
package handlers
