// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/streamvote/models"
	"github.com/danielhkuo/streamvote/store"
	"github.com/danielhkuo/streamvote/testutil"
)

func TestStartPoll(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	req := testutil.MakeRequest("POST", "/poll", models.StartPollRequest{
		Question: "Best pet?",
		Options:  []string{"cat", "dog"},
	}, nil)
	w := httptest.NewRecorder()
	h.StartPoll(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.StartPollResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Question != "Best pet?" || !resp.VotingActive || len(resp.Options) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.TimerEndTime != nil {
		t.Error("untimed poll must not report a timer window")
	}
}

func TestStartPoll_WithTimer(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	req := testutil.MakeRequest("POST", "/poll", models.StartPollRequest{
		Question:      "Best pet?",
		Options:       []string{"cat", "dog"},
		TimerDuration: 90,
	}, nil)
	w := httptest.NewRecorder()
	h.StartPoll(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.StartPollResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.TimerDuration != 90 || resp.TimerStartTime == nil || resp.TimerEndTime == nil {
		t.Errorf("expected a populated timer window: %+v", resp)
	}
}

func TestStartPoll_Validation(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	tests := []struct {
		name string
		req  models.StartPollRequest
	}{
		{"empty question", models.StartPollRequest{Options: []string{"a", "b"}}},
		{"one option", models.StartPollRequest{Question: "Q?", Options: []string{"a"}}},
		{"no options", models.StartPollRequest{Question: "Q?"}},
		{"seven options", models.StartPollRequest{Question: "Q?", Options: []string{"a", "b", "c", "d", "e", "f", "g"}}},
		{"bad timer", models.StartPollRequest{Question: "Q?", Options: []string{"a", "b"}, TimerDuration: 45}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.StartPoll(w, testutil.MakeRequest("POST", "/poll", tt.req, nil))
			testutil.AssertStatus(t, w, 400)
		})
	}
}

func TestStartPoll_InvalidJSON(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	req := httptest.NewRequest("POST", "/poll", nil)
	w := httptest.NewRecorder()
	h.StartPoll(w, req)

	testutil.AssertStatus(t, w, 400)
}

func TestGetStatus_Default(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	w := httptest.NewRecorder()
	h.GetStatus(w, testutil.MakeRequest("GET", "/poll-status", nil, nil))

	testutil.AssertStatus(t, w, 200)

	var resp models.PollStatusResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.VotingActive || resp.TotalVotes != 0 {
		t.Errorf("expected the idle default, got %+v", resp)
	}
}

func TestGetStatus_LiveCounts(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	testutil.StartTestPoll(t, st, "Best pet?", []string{"cat", "dog"}, 0)
	testutil.CastTestVotes(t, st, map[string]string{"u1": "cat", "u2": "cat", "u3": "dog"})

	w := httptest.NewRecorder()
	h.GetStatus(w, testutil.MakeRequest("GET", "/poll-status", nil, nil))

	testutil.AssertStatus(t, w, 200)

	var resp models.PollStatusResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Votes["cat"] != 2 || resp.Votes["dog"] != 1 || resp.TotalVotes != 3 {
		t.Errorf("unexpected counts: %+v", resp)
	}
	if !resp.VotingActive {
		t.Error("poll should still be active")
	}
}

// expiredTimerStore serves a state whose countdown has already run out,
// standing in for a record written by an earlier instance.
type expiredTimerStore struct {
	*store.MemoryStore
}

func (s *expiredTimerStore) Get(ctx context.Context) (models.PollState, error) {
	state, err := s.MemoryStore.Get(ctx)
	if state.VotingActive {
		past := time.Now().Add(-time.Minute)
		earlier := past.Add(-60 * time.Second)
		state.TimerDuration = 60
		state.TimerStartTime = &earlier
		state.TimerEndTime = &past
	}
	return state, err
}

func TestGetStatus_LazyExpiry(t *testing.T) {
	st := &expiredTimerStore{MemoryStore: store.NewMemoryStore()}
	h := NewPollHandler(st)

	testutil.StartTestPoll(t, st.MemoryStore, "Q?", []string{"a", "b"}, 60)
	testutil.CastTestVotes(t, st.MemoryStore, map[string]string{"u1": "a"})

	w := httptest.NewRecorder()
	h.GetStatus(w, testutil.MakeRequest("GET", "/poll-status", nil, nil))

	testutil.AssertStatus(t, w, 200)

	var resp models.PollStatusResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.VotingActive {
		t.Error("expired poll must report inactive")
	}
	if resp.TotalVotes != 1 {
		t.Errorf("votes must survive expiry, got %+v", resp)
	}

	// Expiry must have been written through, freezing further votes
	if err := st.RecordVote(context.Background(), "u2", "b"); err != nil {
		t.Fatal(err)
	}
	state, _ := st.MemoryStore.Get(context.Background())
	if len(state.UserVotes) != 1 {
		t.Errorf("vote after expiry must be dropped, got %v", state.UserVotes)
	}
}

// failingStore simulates a store outage
type failingStore struct {
	*store.MemoryStore
}

var errStoreDown = errors.New("store unreachable")

func (s *failingStore) Get(ctx context.Context) (models.PollState, error) {
	return models.PollState{Options: []string{}, UserVotes: map[string]string{}}, errStoreDown
}

func (s *failingStore) End(ctx context.Context) (models.PollState, error) {
	return models.PollState{}, errStoreDown
}

func (s *failingStore) Reset(ctx context.Context) error {
	return errStoreDown
}

func TestGetStatus_DegradesDuringOutage(t *testing.T) {
	h := NewPollHandler(&failingStore{MemoryStore: store.NewMemoryStore()})

	w := httptest.NewRecorder()
	h.GetStatus(w, testutil.MakeRequest("GET", "/poll-status", nil, nil))

	// Read path stays up with the safe default
	testutil.AssertStatus(t, w, 200)

	var resp models.PollStatusResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.VotingActive || resp.TotalVotes != 0 {
		t.Errorf("expected the safe default, got %+v", resp)
	}
}

func TestEndPoll_SurfacesOutage(t *testing.T) {
	h := NewPollHandler(&failingStore{MemoryStore: store.NewMemoryStore()})

	w := httptest.NewRecorder()
	h.EndPoll(w, testutil.MakeRequest("PUT", "/poll-status", nil, nil))

	testutil.AssertStatus(t, w, 500)
}

func TestResetPoll_SurfacesOutage(t *testing.T) {
	h := NewPollHandler(&failingStore{MemoryStore: store.NewMemoryStore()})

	w := httptest.NewRecorder()
	h.ResetPoll(w, testutil.MakeRequest("DELETE", "/poll-status", nil, nil))

	testutil.AssertStatus(t, w, 500)
}

func TestEndPoll_ReportsWinner(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	testutil.StartTestPoll(t, st, "Continue?", []string{"Yes", "No"}, 0)
	testutil.CastTestVotes(t, st, map[string]string{"u1": "Yes", "u2": "Yes", "u3": "No"})

	w := httptest.NewRecorder()
	h.EndPoll(w, testutil.MakeRequest("PUT", "/poll-status", nil, nil))

	testutil.AssertStatus(t, w, 200)

	var resp models.EndPollResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Winner == nil {
		t.Fatal("expected a winner")
	}
	if resp.Winner.Option != "Yes" || resp.Winner.Count != 2 || resp.Winner.Percentage != 67 {
		t.Errorf("unexpected winner: %+v", resp.Winner)
	}
	if resp.TotalVotes != 3 {
		t.Errorf("expected 3 total votes, got %d", resp.TotalVotes)
	}
	if len(resp.VoteDetails) != 2 {
		t.Errorf("expected both options in details, got %+v", resp.VoteDetails)
	}

	// Poll must now refuse votes
	state, _ := st.Get(context.Background())
	if state.VotingActive {
		t.Error("ended poll must be inactive")
	}
}

func TestEndPoll_NoVotes(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	testutil.StartTestPoll(t, st, "Q?", []string{"a", "b"}, 0)

	w := httptest.NewRecorder()
	h.EndPoll(w, testutil.MakeRequest("PUT", "/poll-status", nil, nil))

	testutil.AssertStatus(t, w, 200)

	var resp models.EndPollResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Winner != nil {
		t.Errorf("no votes means no winner, got %+v", resp.Winner)
	}
}

func TestResetPoll(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewPollHandler(st)

	testutil.StartTestPoll(t, st, "Q?", []string{"a", "b"}, 0)
	testutil.CastTestVotes(t, st, map[string]string{"u1": "a"})

	w := httptest.NewRecorder()
	h.ResetPoll(w, testutil.MakeRequest("DELETE", "/poll-status", nil, nil))

	testutil.AssertStatus(t, w, 200)

	state, _ := st.Get(context.Background())
	if state.VotingActive || state.Question != "" || len(state.UserVotes) != 0 {
		t.Errorf("reset must restore the default, got %+v", state)
	}
}
