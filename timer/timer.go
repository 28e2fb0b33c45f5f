// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package timer closes timed polls lazily. There is no background
// scheduler: expiry is observed the next time any reader fetches poll
// state, so staleness is bounded by the reader polling interval (the
// control surface polls every few seconds).
package timer

import (
	"context"
	"time"

	"github.com/danielhkuo/streamvote/models"
	"github.com/danielhkuo/streamvote/store"
)

// CheckExpiry ends an active poll whose countdown has run out and returns
// the refreshed state. Polls without a timer, inactive polls, and polls
// still inside their window come back unchanged.
func CheckExpiry(ctx context.Context, s store.Store, state models.PollState, now time.Time) (models.PollState, error) {
	if !state.VotingActive || state.TimerEndTime == nil {
		return state, nil
	}
	if state.TimerEndTime.After(now) {
		return state, nil
	}
	return s.End(ctx)
}
