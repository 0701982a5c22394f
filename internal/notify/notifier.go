package notify

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when the bot token or chat id is missing.
// Callers treat it like any other notification failure: logged, swallowed.
var ErrNotConfigured = errors.New("telegram credentials are not configured")

// Notifier is the advisory notification channel. Failures never affect
// the submission that triggered them.
type Notifier interface {
	SendText(ctx context.Context, text string) error
	SendPhoto(ctx context.Context, photoURL, caption string) error
}
