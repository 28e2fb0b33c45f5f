// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/streamvote/cliparse"
	"github.com/danielhkuo/streamvote/handlers"
	"github.com/danielhkuo/streamvote/middleware"
	"github.com/danielhkuo/streamvote/signature"
	"github.com/danielhkuo/streamvote/store"
	"github.com/danielhkuo/streamvote/vote"
)

func NewRouter(st store.Store, verifier *signature.Verifier, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st)
	webhookHandler := handlers.NewWebhookHandler(st, verifier, vote.NewParser(cfg.VotePolicy))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Inbound platform events
	mux.HandleFunc("POST /webhook", middleware.WithLogging(webhookHandler.Receive))

	// Poll control (bearer auth except the public status read)
	mux.HandleFunc("POST /poll", middleware.WithLogging(middleware.WithAuth(cfg.ControlToken, pollHandler.StartPoll)))
	mux.HandleFunc("GET /poll-status", middleware.WithLogging(pollHandler.GetStatus))
	mux.HandleFunc("PUT /poll-status", middleware.WithLogging(middleware.WithAuth(cfg.ControlToken, pollHandler.EndPoll)))
	mux.HandleFunc("DELETE /poll-status", middleware.WithLogging(middleware.WithAuth(cfg.ControlToken, pollHandler.ResetPoll)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("streamvote API v1"))
	})

	return mux
}
