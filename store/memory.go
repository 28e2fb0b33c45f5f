// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/streamvote/models"
)

// MemoryStore keeps poll state in process memory behind a mutex. State does
// not survive a restart and cannot be shared across instances; use the Redis
// store for multi-instance deployments.
type MemoryStore struct {
	mu    sync.Mutex
	state models.PollState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: defaultState(time.Now())}
}

func (m *MemoryStore) Get(ctx context.Context) (models.PollState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyState(m.state), nil
}

func (m *MemoryStore) Start(ctx context.Context, question string, options []string, timerDuration int) (models.PollState, error) {
	if err := validateStart(question, options, timerDuration); err != nil {
		return models.PollState{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = newPollState(uuid.NewString(), question, options, timerDuration, time.Now())
	return copyState(m.state), nil
}

func (m *MemoryStore) RecordVote(ctx context.Context, voterID, option string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.VotingActive {
		return nil
	}
	m.state.UserVotes[voterID] = option
	m.state.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) End(ctx context.Context) (models.PollState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.VotingActive = false
	m.state.UpdatedAt = time.Now()
	return copyState(m.state), nil
}

func (m *MemoryStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = defaultState(time.Now())
	return nil
}

// copyState returns a state the caller may keep; nothing inside aliases the
// record behind the mutex.
func copyState(s models.PollState) models.PollState {
	out := s
	out.Options = append([]string{}, s.Options...)
	out.UserVotes = make(map[string]string, len(s.UserVotes))
	for k, v := range s.UserVotes {
		out.UserVotes[k] = v
	}
	if s.TimerStartTime != nil {
		t := *s.TimerStartTime
		out.TimerStartTime = &t
	}
	if s.TimerEndTime != nil {
		t := *s.TimerEndTime
		out.TimerEndTime = &t
	}
	return out
}
