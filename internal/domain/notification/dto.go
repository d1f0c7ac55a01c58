package notification

import "github.com/furnishop/shop-backend-go/internal/pkg/validator"

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,max=64"`
	Text        string `json:"text" validate:"required,max=4096"`
}

func (r *SendMessageRequest) Validate() error {
	return validator.Struct(r)
}

// SendResult is the outcome of one delivery attempt. Failures are reported
// here rather than returned as errors.
type SendResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
