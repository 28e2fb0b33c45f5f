// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - StartPollRequest: question, options, optional timerDuration
  - ChatEvent: webhook chat-message payload (message_id, sender, content)

# Response Types

Types for JSON responses:

  - StartPollResponse: question, options, votingActive, timer fields
  - PollStatusResponse: votes, votingActive, totalVotes, timer fields
  - EndPollResponse: winner, votes, voteDetails, totalVotes
  - MessageResponse: message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - PollState: the single authoritative poll record
  - VoteDetail: one option's count and percentage
  - TallyResult: derived counts, details, and winner (never persisted)

# Constants

Vote-acceptance policies:

	PolicyNumbered = "numbered"
	PolicyFreeform = "freeform"

Webhook event type and headers:

	EventChatMessage = "chat.message.sent"
	HeaderEventType, HeaderMessageID, HeaderMessageTimestamp, HeaderSignature

Accepted countdown durations (seconds): 60, 90, 180.
*/
package models
