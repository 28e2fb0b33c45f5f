// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package event classifies inbound webhook deliveries by event type.
package event

import "github.com/danielhkuo/streamvote/models"

// Classification is the webhook handler's routing decision for an event type.
type Classification int

const (
	// Chat is a chat message; the handler proceeds to vote parsing.
	Chat Classification = iota
	// Ignored is any other event type; the handler acknowledges it without
	// processing so the platform does not retry the delivery.
	Ignored
	// MissingType means the event-type header was absent; the handler
	// rejects with a client error.
	MissingType
)

func (c Classification) String() string {
	switch c {
	case Chat:
		return "chat"
	case Ignored:
		return "ignored"
	case MissingType:
		return "missing-type"
	default:
		return "unknown"
	}
}

// Classify routes an event-type header value.
func Classify(eventType string) Classification {
	switch eventType {
	case "":
		return MissingType
	case models.EventChatMessage:
		return Chat
	default:
		return Ignored
	}
}
