package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/danielhkuo/streamvote/models"
)

type Config struct {
	Port         int
	RedisURL     string
	ControlToken string
	PublicKeyPEM string
	SkipVerify   bool
	VotePolicy   string
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("streamvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.RedisURL, "r", "", "Redis URL (empty runs the in-memory store)")
	fs.StringVar(&cfg.VotePolicy, "vote-policy", "", "Vote policy: numbered or freeform")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.ControlToken, "control-token", "", "Bearer token for control endpoints (prefer env)")
	fs.BoolVar(&cfg.SkipVerify, "skip-verify", false, "Skip webhook signature verification (dev only)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if cfg.VotePolicy == "" {
		cfg.VotePolicy = os.Getenv("VOTE_POLICY")
		if cfg.VotePolicy == "" {
			cfg.VotePolicy = models.PolicyNumbered
		}
	}
	if cfg.VotePolicy != models.PolicyNumbered && cfg.VotePolicy != models.PolicyFreeform {
		return Config{}, errors.New("vote policy must be numbered or freeform")
	}

	// Secrets - MUST be provided
	if cfg.ControlToken == "" {
		cfg.ControlToken = os.Getenv("CONTROL_TOKEN")
	}
	if cfg.ControlToken == "" {
		return Config{}, errors.New("CONTROL_TOKEN required")
	}

	// Platform public key overrides the built-in one; env only, PEM is
	// too unwieldy for a flag.
	cfg.PublicKeyPEM = os.Getenv("WEBHOOK_PUBLIC_KEY")

	if !cfg.SkipVerify {
		cfg.SkipVerify = os.Getenv("WEBHOOK_SKIP_VERIFY") == "true"
	}

	return cfg, nil
}
