package reminder_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmonteiro/pindureta/internal/reminder"
)

func newService(t *testing.T, handler http.HandlerFunc) *reminder.Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return reminder.NewService(reminder.Config{
		APIKey:  "test-key",
		Model:   "gemini-3-flash-preview",
		BaseURL: srv.URL,
		Timeout: time.Second,
	})
}

func TestService_Message(t *testing.T) {
	var gotPrompt string

	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-3-flash-preview:generateContent")
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		gotPrompt = req.Contents[0].Parts[0].Text

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Oi Ana! Tudo bem? 😊"}]}}]}`))
	})

	msg := svc.Message(context.Background(), reminder.Params{
		CustomerName: "Ana",
		Outstanding:  3000,
		RecentDebts: []reminder.Debt{
			{Description: "Arroz", Amount: 5000},
			{Description: "Feijão", Amount: 1200},
			{Description: "Café", Amount: 800},
			{Description: "Açúcar", Amount: 600},
		},
	})

	assert.Equal(t, "Oi Ana! Tudo bem? 😊", msg)
	assert.Contains(t, gotPrompt, "Ana")
	assert.Contains(t, gotPrompt, "R$ 30.00")
	assert.Contains(t, gotPrompt, "Arroz")
	// Only the three most recent debts go into the prompt.
	assert.NotContains(t, gotPrompt, "Açúcar")
}

func TestService_Message_Fallbacks(t *testing.T) {
	type testCase struct {
		name    string
		handler http.HandlerFunc
	}

	tests := []testCase{
		{
			name: "ServerError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "MalformedBody",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "EmptyCandidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates":[]}`))
			},
		},
		{
			name: "BlankCompletion",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.handler)

			msg := svc.Message(context.Background(), reminder.Params{CustomerName: "Ana"})
			assert.Equal(t, reminder.FallbackMessage, msg)
		})
	}
}

func TestService_Message_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"too late"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	svc := reminder.NewService(reminder.Config{
		APIKey:  "test-key",
		Model:   "gemini-3-flash-preview",
		BaseURL: srv.URL,
		Timeout: 20 * time.Millisecond,
	})

	msg := svc.Message(context.Background(), reminder.Params{CustomerName: "Ana"})
	assert.Equal(t, reminder.FallbackMessage, msg)
}

func TestService_Message_NoAPIKey(t *testing.T) {
	called := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	svc := reminder.NewService(reminder.Config{
		BaseURL: srv.URL,
		Model:   "gemini-3-flash-preview",
		Timeout: time.Second,
	})

	msg := svc.Message(context.Background(), reminder.Params{CustomerName: "Ana"})

	assert.Equal(t, reminder.FallbackMessage, msg)
	assert.False(t, called, "no API key configured, the endpoint must not be called")
	assert.False(t, strings.Contains(msg, "Ana"))
}
