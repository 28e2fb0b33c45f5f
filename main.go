package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/streamvote/cliparse"
	"github.com/danielhkuo/streamvote/middleware"
	"github.com/danielhkuo/streamvote/router"
	"github.com/danielhkuo/streamvote/signature"
	"github.com/danielhkuo/streamvote/store"
)

func main() {
	var err error

	// Local .env is optional; absence is the normal case in production
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Build the webhook signature verifier
	verifier, err := signature.New(cfg.PublicKeyPEM, cfg.SkipVerify)
	if err != nil {
		slog.Error("invalid webhook public key", "error", err)
		os.Exit(1)
	}
	if cfg.SkipVerify {
		slog.Warn("webhook signature verification DISABLED; never run this in production")
	}

	// Pick the state store: shared Redis when configured, otherwise a
	// single-instance in-memory store
	var st store.Store
	if cfg.RedisURL != "" {
		redisStore, err := store.NewRedisStore(cfg.RedisURL)
		if err != nil {
			slog.Error("redis configuration failed", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()

		// Verify connection
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisStore.Ping(pingCtx); err != nil {
			cancel()
			slog.Error("redis ping failed", "error", err)
			os.Exit(1)
		}
		cancel()
		slog.Info("Redis state store ready")
		st = redisStore
	} else {
		slog.Info("No REDIS_URL set, using in-memory state store")
		st = store.NewMemoryStore()
	}

	// Create router
	mux := router.NewRouter(st, verifier, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "vote_policy", cfg.VotePolicy)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
