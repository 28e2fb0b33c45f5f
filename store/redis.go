// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/streamvote/models"
)

// Fixed keys: the metadata record and the voter→choice hash. Votes live
// only in the hash so concurrent voters write independent fields instead
// of racing on a full-record read-modify-write.
const (
	stateKey = "poll:state"
	votesKey = "poll:votes"
)

// recordVoteScript checks the active flag, writes the voter's field, and
// bumps updatedAt in one atomic step, so no vote can land after End commits.
var recordVoteScript = redis.NewScript(`
local raw = redis.call('GET', KEYS[1])
if not raw then return 0 end
local state = cjson.decode(raw)
if not state.votingActive then return 0 end
redis.call('HSET', KEYS[2], ARGV[1], ARGV[2])
state.updatedAt = ARGV[3]
redis.call('SET', KEYS[1], cjson.encode(state))
return 1
`)

// RedisStore persists poll state in a shared Redis so concurrent instances
// observe the same poll.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore parses a redis:// URL and returns the store. It does not
// dial; call Ping to verify the connection at startup.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Get(ctx context.Context) (models.PollState, error) {
	raw, err := r.client.Get(ctx, stateKey).Result()
	if err == redis.Nil {
		return defaultState(time.Now()), nil
	}
	if err != nil {
		return defaultState(time.Now()), fmt.Errorf("loading poll state: %w", err)
	}

	var state models.PollState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return defaultState(time.Now()), fmt.Errorf("decoding poll state: %w", err)
	}
	if state.Options == nil {
		state.Options = []string{}
	}

	votes, err := r.client.HGetAll(ctx, votesKey).Result()
	if err != nil {
		return defaultState(time.Now()), fmt.Errorf("loading votes: %w", err)
	}
	state.UserVotes = votes

	return state, nil
}

func (r *RedisStore) Start(ctx context.Context, question string, options []string, timerDuration int) (models.PollState, error) {
	if err := validateStart(question, options, timerDuration); err != nil {
		return models.PollState{}, err
	}

	state := newPollState(uuid.NewString(), question, options, timerDuration, time.Now())
	if err := r.writeState(ctx, state, true); err != nil {
		return models.PollState{}, fmt.Errorf("starting poll: %w", err)
	}
	return state, nil
}

func (r *RedisStore) RecordVote(ctx context.Context, voterID, option string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if err := recordVoteScript.Run(ctx, r.client, []string{stateKey, votesKey}, voterID, option, now).Err(); err != nil {
		return fmt.Errorf("recording vote: %w", err)
	}
	return nil
}

func (r *RedisStore) End(ctx context.Context) (models.PollState, error) {
	state, err := r.Get(ctx)
	if err != nil {
		return state, err
	}

	state.VotingActive = false
	state.UpdatedAt = time.Now()
	if err := r.writeState(ctx, state, false); err != nil {
		return models.PollState{}, fmt.Errorf("ending poll: %w", err)
	}
	return state, nil
}

func (r *RedisStore) Reset(ctx context.Context) error {
	if err := r.writeState(ctx, defaultState(time.Now()), true); err != nil {
		return fmt.Errorf("resetting poll: %w", err)
	}
	return nil
}

// writeState stores the metadata record, optionally clearing the vote hash
// in the same transaction. Votes are stripped from the record first; the
// hash is their only home.
func (r *RedisStore) writeState(ctx context.Context, state models.PollState, clearVotes bool) error {
	meta := state
	meta.UserVotes = nil

	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, stateKey, raw, 0)
	if clearVotes {
		pipe.Del(ctx, votesKey)
	}
	_, err = pipe.Exec(ctx)
	return err
}
