package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/pkg/telegram"
)

type telegramSender struct {
	client *telegram.Client
}

// NewTelegramSender adapts the Bot API client to notification.Sender
func NewTelegramSender(client *telegram.Client) notification.Sender {
	return &telegramSender{client: client}
}

func (t *telegramSender) SendMessage(ctx context.Context, recipientID, text string) error {
	err := t.client.SendMessage(ctx, recipientID, text)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, telegram.ErrMissingToken):
		return fmt.Errorf("%w: %v", notification.ErrMissingCredential, err)
	default:
		return fmt.Errorf("%w: %v", notification.ErrDeliveryFailed, err)
	}
}
