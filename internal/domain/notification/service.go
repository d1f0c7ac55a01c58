package notification

import (
	"context"
)

// Sender delivers a text message to a chat recipient. It returns an error
// wrapping ErrMissingCredential or ErrDeliveryFailed.
type Sender interface {
	SendMessage(ctx context.Context, recipientID, text string) error
}

// Service defines the notification service interface
type Service interface {
	// SendMessage delivers immediately and reports the outcome
	SendMessage(ctx context.Context, req SendMessageRequest) SendResult

	// Queue hands the message to background workers; outcomes are logged
	Queue(ctx context.Context, req SendMessageRequest) error

	// Lifecycle
	Stop()
}
