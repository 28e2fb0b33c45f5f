// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"strings"
	"time"

	"github.com/danielhkuo/streamvote/models"
)

// Option count bounds for a ballot
const (
	MinOptions = 2
	MaxOptions = 6
)

// Store is the poll state store. Exactly one poll record exists; Start
// replaces it wholesale, Reset restores the empty default. Implementations
// must make each operation atomic with respect to concurrent callers.
//
// The in-memory implementation serves single-instance deployments and tests;
// the Redis implementation shares state across serverless-style instances.
type Store interface {
	// Get returns the current poll state. On a storage failure it returns
	// the safe default state along with the error so display paths can
	// degrade instead of breaking.
	Get(ctx context.Context) (models.PollState, error)

	// Start validates the inputs and replaces the poll wholesale: active,
	// no votes, fresh createdAt. timerDuration of 0 means no countdown;
	// otherwise it must be one of models.TimerDurations.
	Start(ctx context.Context, question string, options []string, timerDuration int) (models.PollState, error)

	// RecordVote sets the voter's current choice, overwriting any earlier
	// one. It is a silent no-op when the poll is inactive; webhook retries
	// must not turn into errors.
	RecordVote(ctx context.Context, voterID, option string) error

	// End flips the poll inactive, leaving votes intact for tallying, and
	// returns the final state.
	End(ctx context.Context) (models.PollState, error)

	// Reset clears to the inactive empty default with a fresh createdAt.
	Reset(ctx context.Context) error
}

// ValidationError reports bad Start input; handlers map it to a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErr(msg string) error { return &ValidationError{msg: msg} }

// defaultState is the record served before any poll has been started and
// after Reset: inactive, no question, no votes.
func defaultState(now time.Time) models.PollState {
	return models.PollState{
		Options:   []string{},
		UserVotes: map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// validateStart enforces the ballot shape shared by both implementations.
func validateStart(question string, options []string, timerDuration int) error {
	if strings.TrimSpace(question) == "" {
		return validationErr("question is required")
	}
	if len(options) < MinOptions || len(options) > MaxOptions {
		return validationErr("between 2 and 6 options required")
	}
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return validationErr("options must be non-empty")
		}
	}
	if timerDuration != 0 && !validDuration(timerDuration) {
		return validationErr("timerDuration must be 60, 90, or 180")
	}
	return nil
}

func validDuration(d int) bool {
	for _, allowed := range models.TimerDurations {
		if d == allowed {
			return true
		}
	}
	return false
}

// newPollState builds the replacement record for Start.
func newPollState(id, question string, options []string, timerDuration int, now time.Time) models.PollState {
	state := models.PollState{
		ID:           id,
		Question:     question,
		Options:      append([]string{}, options...),
		VotingActive: true,
		UserVotes:    map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if timerDuration != 0 {
		endsAt := now.Add(time.Duration(timerDuration) * time.Second)
		state.TimerDuration = timerDuration
		state.TimerStartTime = &now
		state.TimerEndTime = &endsAt
	}
	return state
}
