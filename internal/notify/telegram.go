package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// ErrUnavailable is returned when the breaker is open and the call is
// skipped without touching the network.
var ErrUnavailable = errors.New("telegram endpoint unavailable")

// TelegramClient talks to the Telegram Bot API. One destination chat,
// parse_mode HTML, no delivery receipts consumed.
type TelegramClient struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
	br      *microBreaker
}

func NewTelegramClient(baseURL, token, chatID string, timeoutMs, failThreshold, openForMs int) *TelegramClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeoutMs <= 0 {
		timeoutMs = 10000
	}

	return &TelegramClient{
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
		br:      newMicroBreaker(failThreshold, time.Duration(openForMs)*time.Millisecond),
	}
}

var _ Notifier = (*TelegramClient)(nil)

// Enabled reports whether credentials are present.
func (c *TelegramClient) Enabled() bool {
	return c.token != "" && c.chatID != ""
}

func (c *TelegramClient) SendText(ctx context.Context, text string) error {
	return c.call(ctx, "sendMessage", map[string]any{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
}

func (c *TelegramClient) SendPhoto(ctx context.Context, photoURL, caption string) error {
	return c.call(ctx, "sendPhoto", map[string]any{
		"chat_id":    c.chatID,
		"photo":      photoURL,
		"caption":    caption,
		"parse_mode": "HTML",
	})
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *TelegramClient) call(ctx context.Context, method string, body map[string]any) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}
	if !c.br.tryAcquire() {
		return ErrUnavailable
	}

	if err := c.post(ctx, method, body); err != nil {
		c.br.onFailure()
		return err
	}

	c.br.onSuccess()

	return nil
}

func (c *TelegramClient) post(ctx context.Context, method string, body map[string]any) error {
	b, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return fmt.Errorf("telegram %s: status=%d", method, res.StatusCode)
	}

	var ar apiResponse
	if err := json.NewDecoder(res.Body).Decode(&ar); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}
	if !ar.OK {
		return fmt.Errorf("telegram %s: api error: %s", method, ar.Description)
	}

	return nil
}
