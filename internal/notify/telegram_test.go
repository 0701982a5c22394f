package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *TelegramClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTelegramClient(srv.URL, "test-token", "42", 1000, 3, 15000)
}

func TestSendTextOK(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	err := c.SendText(context.Background(), "привет")
	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "привет", gotBody["text"])
	assert.Equal(t, "42", gotBody["chat_id"])
	assert.Equal(t, "HTML", gotBody["parse_mode"])
}

func TestSendPhotoOK(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	err := c.SendPhoto(context.Background(), "https://img.example/1.jpg", "подпись")
	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendPhoto", gotPath)
	assert.Equal(t, "https://img.example/1.jpg", gotBody["photo"])
	assert.Equal(t, "подпись", gotBody["caption"])
}

func TestAPILevelError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	})

	err := c.SendText(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestHTTPLevelError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.SendText(context.Background(), "x")
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	c := NewTelegramClient("", "", "", 0, 0, 0)
	assert.False(t, c.Enabled())

	err := c.SendText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 3; i++ {
		require.Error(t, c.SendText(context.Background(), "x"))
	}
	assert.Equal(t, 3, calls)

	// breaker now open: fails fast without a request
	err := c.SendText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, calls)
}
