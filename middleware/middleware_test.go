// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/streamvote/models"
)

func TestWithLogging(t *testing.T) {
	// Create a simple handler that returns OK
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	// Wrap with logging middleware
	wrappedHandler := WithLogging(testHandler)

	// Create test request and recorder
	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	// Execute
	wrappedHandler(w, req)

	// Verify handler was called
	if !handlerCalled {
		t.Error("Expected handler to be called")
	}

	// Verify response was written correctly
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestWithAuth(t *testing.T) {
	const token = "control-secret"

	testCases := []struct {
		name         string
		header       string
		expectStatus int
		expectCalled bool
	}{
		{"bearer token", "Bearer control-secret", http.StatusOK, true},
		{"bare token", "control-secret", http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong token", "Bearer nope", http.StatusUnauthorized, false},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := WithAuth(token, func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("POST", "/poll", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.expectStatus {
				t.Errorf("Expected status %d, got %d", tc.expectStatus, w.Code)
			}
			if called != tc.expectCalled {
				t.Errorf("Expected called=%v, got %v", tc.expectCalled, called)
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "simple struct",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "ack response",
			statusCode: http.StatusOK,
			data:       models.MessageResponse{Message: "Webhook received"},
			expected:   `{"message":"Webhook received"}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			expected:   `{"error":"Bad Request","message":"missing field"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %s", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tc.expected {
				t.Errorf("Expected body %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusUnauthorized, "Invalid token")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != "Unauthorized" || resp.Message != "Invalid token" {
		t.Errorf("Unexpected error payload: %+v", resp)
	}
}

func TestParseJSONBody(t *testing.T) {
	body := `{"question":"Best pet?","options":["cat","dog"]}`
	req := httptest.NewRequest("POST", "/poll", bytes.NewBufferString(body))

	var parsed models.StartPollRequest
	if err := ParseJSONBody(req, &parsed); err != nil {
		t.Fatalf("Expected successful parse, got %v", err)
	}
	if parsed.Question != "Best pet?" || len(parsed.Options) != 2 {
		t.Errorf("Unexpected parse result: %+v", parsed)
	}
}

func TestParseJSONBody_Invalid(t *testing.T) {
	req := httptest.NewRequest("POST", "/poll", bytes.NewBufferString("{not json"))

	var parsed models.StartPollRequest
	if err := ParseJSONBody(req, &parsed); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/poll-status", nil)
	req.Header.Set("Origin", "https://control.example.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://control.example.com" {
		t.Errorf("Expected origin echoed back, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	nextCalled := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest("OPTIONS", "/poll", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if nextCalled {
		t.Error("Preflight must not reach the handler")
	}
}
