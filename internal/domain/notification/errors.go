package notification

import "errors"

// Notification domain errors
var (
	ErrMissingCredential = errors.New("notification credential is not configured")
	ErrDeliveryFailed    = errors.New("notification delivery failed")
	ErrQueueFull         = errors.New("notification queue is full")
)
