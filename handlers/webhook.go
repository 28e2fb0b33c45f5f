// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/streamvote/event"
	"github.com/danielhkuo/streamvote/middleware"
	"github.com/danielhkuo/streamvote/models"
	"github.com/danielhkuo/streamvote/signature"
	"github.com/danielhkuo/streamvote/store"
	"github.com/danielhkuo/streamvote/timer"
	"github.com/danielhkuo/streamvote/vote"
)

// maxEventBody caps webhook payload reads; chat events are tiny.
const maxEventBody = 1 << 20

type WebhookHandler struct {
	store    store.Store
	verifier *signature.Verifier
	parser   *vote.Parser
}

func NewWebhookHandler(s store.Store, v *signature.Verifier, p *vote.Parser) *WebhookHandler {
	return &WebhookHandler{store: s, verifier: v, parser: p}
}

// Receive handles POST /webhook.
//
// The platform retries deliveries that don't come back 200, so everything
// that is merely uninteresting — foreign event types, chatter that isn't a
// vote, votes outside the voting window — is acknowledged and dropped.
// Only unauthenticated (401) and malformed (400) deliveries are rejected.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBody))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unreadable body")
		return
	}
	r.Body.Close()

	kind := event.Classify(r.Header.Get(models.HeaderEventType))
	if kind == event.MissingType {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing event type header")
		return
	}

	if !h.verifier.Skip() {
		messageID := r.Header.Get(models.HeaderMessageID)
		timestamp := r.Header.Get(models.HeaderMessageTimestamp)
		sig := r.Header.Get(models.HeaderSignature)
		if messageID == "" || timestamp == "" || sig == "" {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing signature headers")
			return
		}
		if !h.verifier.Verify(messageID, timestamp, body, sig) {
			slog.Warn("webhook signature rejected", "message_id", messageID)
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid signature")
			return
		}
	}

	if kind == event.Ignored {
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Event ignored"})
		return
	}

	var chat models.ChatEvent
	if err := json.Unmarshal(body, &chat); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid event payload")
		return
	}

	ctx := r.Context()

	// Degrade to the default (inactive) state on a store outage: the vote
	// is dropped, the platform gets its 200, nobody retries forever.
	state, err := h.store.Get(ctx)
	if err != nil {
		slog.Warn("serving default poll state", "error", err)
	}

	state, err = timer.CheckExpiry(ctx, h.store, state, time.Now())
	if err != nil {
		slog.Error("failed to close expired poll", "error", err)
	}

	choice, ok := h.parser.Parse(state, chat.Content)
	if !ok || chat.Sender.UserID == 0 {
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Message received"})
		return
	}

	voterID := strconv.FormatInt(chat.Sender.UserID, 10)
	if err := h.store.RecordVote(ctx, voterID, choice); err != nil {
		slog.Error("failed to record vote", "error", err, "voter", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "voter", voterID, "choice", choice)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Vote recorded"})
}
