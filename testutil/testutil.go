// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/streamvote/cliparse"
	"github.com/danielhkuo/streamvote/models"
	"github.com/danielhkuo/streamvote/signature"
	"github.com/danielhkuo/streamvote/store"
)

// TestControlToken authenticates control requests in tests
const TestControlToken = "test-control-token"

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		ControlToken: TestControlToken,
		VotePolicy:   models.PolicyNumbered,
	}
}

// Signer signs webhook payloads the way the platform does, paired with a
// Verifier holding the matching public key.
type Signer struct {
	key *rsa.PrivateKey
}

// NewSignerVerifier generates a keypair and returns both halves
func NewSignerVerifier(t *testing.T) (*Signer, *signature.Verifier) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal public key: %v", err)
	}
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	v, err := signature.New(pemKey, false)
	if err != nil {
		t.Fatalf("Failed to build verifier: %v", err)
	}

	return &Signer{key: key}, v
}

// Sign returns the base64 signature over messageID.timestamp.body
func (s *Signer) Sign(t *testing.T, messageID, timestamp string, body []byte) string {
	t.Helper()

	payload := messageID + "." + timestamp + "." + string(body)
	digest := sha256.Sum256([]byte(payload))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest[:])
	if err != nil {
		t.Fatalf("Failed to sign payload: %v", err)
	}
	return base64.StdEncoding.EncodeToString(sig)
}

// SignedChatRequest builds a POST /webhook request carrying a chat message
// from the given voter, signed so it passes verification.
func SignedChatRequest(t *testing.T, signer *Signer, voterID int64, content string) *http.Request {
	t.Helper()

	body, err := json.Marshal(models.ChatEvent{
		MessageID: "msg-1",
		Sender:    models.Sender{UserID: voterID, Username: "viewer"},
		Content:   content,
	})
	if err != nil {
		t.Fatalf("Failed to marshal chat event: %v", err)
	}

	const messageID = "delivery-1"
	const timestamp = "2025-06-01T12:00:00Z"

	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	req.Header.Set(models.HeaderEventType, models.EventChatMessage)
	req.Header.Set(models.HeaderMessageID, messageID)
	req.Header.Set(models.HeaderMessageTimestamp, timestamp)
	req.Header.Set(models.HeaderSignature, signer.Sign(t, messageID, timestamp, body))
	return req
}

// StartTestPoll starts a poll directly in the store
func StartTestPoll(t *testing.T, s store.Store, question string, options []string, timerDuration int) models.PollState {
	t.Helper()

	state, err := s.Start(context.Background(), question, options, timerDuration)
	if err != nil {
		t.Fatalf("Failed to start test poll: %v", err)
	}
	return state
}

// CastTestVotes records one vote per entry of votes (voter id → option)
func CastTestVotes(t *testing.T, s store.Store, votes map[string]string) {
	t.Helper()

	for voter, option := range votes {
		if err := s.RecordVote(context.Background(), voter, option); err != nil {
			t.Fatalf("Failed to cast test vote for %s: %v", voter, err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
