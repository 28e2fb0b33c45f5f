// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote-acceptance policies
const (
	PolicyNumbered = "numbered"
	PolicyFreeform = "freeform"
)

// EventChatMessage is the platform event type carrying viewer chat messages.
// All other event types are acknowledged and ignored.
const EventChatMessage = "chat.message.sent"

// Webhook headers sent by the platform with every delivery
const (
	HeaderEventType        = "Kick-Event-Type"
	HeaderMessageID        = "Kick-Event-Message-Id"
	HeaderMessageTimestamp = "Kick-Event-Message-Timestamp"
	HeaderSignature        = "Kick-Event-Signature"
)

// TimerDurations lists the accepted countdown lengths in seconds.
var TimerDurations = []int{60, 90, 180}

// Request types

type StartPollRequest struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	TimerDuration int      `json:"timerDuration,omitempty"`
}

// ChatEvent is the payload of a chat.message.sent webhook delivery.
// Only the fields the vote path needs are decoded.
type ChatEvent struct {
	MessageID string `json:"message_id"`
	Sender    Sender `json:"sender"`
	Content   string `json:"content"`
}

type Sender struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Response types

type StartPollResponse struct {
	Question       string     `json:"question"`
	Options        []string   `json:"options"`
	VotingActive   bool       `json:"votingActive"`
	TimerDuration  int        `json:"timerDuration,omitempty"`
	TimerStartTime *time.Time `json:"timerStartTime,omitempty"`
	TimerEndTime   *time.Time `json:"timerEndTime,omitempty"`
}

type PollStatusResponse struct {
	Votes          map[string]int `json:"votes"`
	VotingActive   bool           `json:"votingActive"`
	TotalVotes     int            `json:"totalVotes"`
	TimerDuration  int            `json:"timerDuration,omitempty"`
	TimerStartTime *time.Time     `json:"timerStartTime,omitempty"`
	TimerEndTime   *time.Time     `json:"timerEndTime,omitempty"`
}

type EndPollResponse struct {
	Winner      *VoteDetail    `json:"winner"`
	Votes       map[string]int `json:"votes"`
	VoteDetails []VoteDetail   `json:"voteDetails"`
	TotalVotes  int            `json:"totalVotes"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

// PollState is the authoritative record of the current poll. A single
// instance exists at a time; starting a poll replaces it wholesale.
type PollState struct {
	ID             string            `json:"id"`
	Question       string            `json:"currentQuestion"`
	Options        []string          `json:"voteOptions"`
	VotingActive   bool              `json:"votingActive"`
	UserVotes      map[string]string `json:"userVotes"`
	TimerDuration  int               `json:"timerDuration,omitempty"`
	TimerStartTime *time.Time        `json:"timerStartTime,omitempty"`
	TimerEndTime   *time.Time        `json:"timerEndTime,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// HasTimer reports whether the poll was started with a countdown.
func (s PollState) HasTimer() bool {
	return s.TimerEndTime != nil
}

// VoteDetail is one row of a tally report.
type VoteDetail struct {
	Option     string `json:"option"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// TallyResult is derived from UserVotes on demand and never persisted.
type TallyResult struct {
	Counts  map[string]int `json:"votes"`
	Total   int            `json:"totalVotes"`
	Details []VoteDetail   `json:"voteDetails"`
	Winner  *VoteDetail    `json:"winner"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
