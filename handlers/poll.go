// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/streamvote/middleware"
	"github.com/danielhkuo/streamvote/models"
	"github.com/danielhkuo/streamvote/store"
	"github.com/danielhkuo/streamvote/tally"
	"github.com/danielhkuo/streamvote/timer"
)

type PollHandler struct {
	store store.Store
}

func NewPollHandler(s store.Store) *PollHandler {
	return &PollHandler{store: s}
}

// StartPoll handles POST /poll
func (h *PollHandler) StartPoll(w http.ResponseWriter, r *http.Request) {
	var req models.StartPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	state, err := h.store.Start(r.Context(), req.Question, req.Options, req.TimerDuration)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
			return
		}
		slog.Error("failed to start poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start poll")
		return
	}

	slog.Info("poll started", "poll_id", state.ID, "question", state.Question, "options", len(state.Options), "timer_s", state.TimerDuration)

	middleware.JSONResponse(w, http.StatusOK, models.StartPollResponse{
		Question:       state.Question,
		Options:        state.Options,
		VotingActive:   state.VotingActive,
		TimerDuration:  state.TimerDuration,
		TimerStartTime: state.TimerStartTime,
		TimerEndTime:   state.TimerEndTime,
	})
}

// GetStatus handles GET /poll-status
//
// A storage outage degrades to the empty default so display surfaces keep
// rendering; expiry of a timed poll is checked lazily right here, which is
// the only place expiry is ever observed.
func (h *PollHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.store.Get(ctx)
	if err != nil {
		slog.Warn("serving default poll state", "error", err)
	}

	state, err = timer.CheckExpiry(ctx, h.store, state, time.Now())
	if err != nil {
		slog.Error("failed to close expired poll", "error", err)
	}

	result := tally.Count(state.UserVotes, state.Options)

	middleware.JSONResponse(w, http.StatusOK, models.PollStatusResponse{
		Votes:          result.Counts,
		VotingActive:   state.VotingActive,
		TotalVotes:     result.Total,
		TimerDuration:  state.TimerDuration,
		TimerStartTime: state.TimerStartTime,
		TimerEndTime:   state.TimerEndTime,
	})
}

// EndPoll handles PUT /poll-status
func (h *PollHandler) EndPoll(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.End(r.Context())
	if err != nil {
		slog.Error("failed to end poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to end poll")
		return
	}

	result := tally.Count(state.UserVotes, state.Options)

	if result.Winner != nil {
		slog.Info("poll ended", "poll_id", state.ID, "winner", result.Winner.Option, "total_votes", result.Total)
	} else {
		slog.Info("poll ended with no votes", "poll_id", state.ID)
	}

	middleware.JSONResponse(w, http.StatusOK, models.EndPollResponse{
		Winner:      result.Winner,
		Votes:       result.Counts,
		VoteDetails: result.Details,
		TotalVotes:  result.Total,
	})
}

// ResetPoll handles DELETE /poll-status
func (h *PollHandler) ResetPoll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		slog.Error("failed to reset poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset poll")
		return
	}

	slog.Info("poll reset")
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Poll reset"})
}
