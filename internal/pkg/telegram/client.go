// Package telegram sends chat messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/furnishop/shop-backend-go/internal/config"
)

// ErrMissingToken is returned when the bot token environment variable is empty.
var ErrMissingToken = errors.New("telegram bot token is not set")

// Client calls the Bot API sendMessage method.
type Client struct {
	baseURL    string
	tokenEnv   string
	httpClient *http.Client
}

// NewClient creates a client. The token is looked up in cfg.TokenEnv on every
// call so it can be rotated without a restart.
func NewClient(cfg config.TelegramConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	tokenEnv := cfg.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "TELEGRAM_BOT_TOKEN"
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		tokenEnv:   tokenEnv,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError represents a rejected Bot API request
type APIError struct {
	StatusCode  int
	ErrorCode   int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error [%d] %d: %s", e.StatusCode, e.ErrorCode, e.Description)
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SendMessage posts text to chatID. It makes exactly one attempt.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	token := strings.TrimSpace(os.Getenv(c.tokenEnv))
	if token == "" {
		return fmt.Errorf("%w (%s)", ErrMissingToken, c.tokenEnv)
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	endpoint := c.baseURL + "/bot" + token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", redact(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach telegram: %w", redact(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var result apiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		result.Description = strings.TrimSpace(string(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.OK {
		if result.Description == "" {
			result.Description = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			ErrorCode:   result.ErrorCode,
			Description: result.Description,
		}
	}
	return nil
}

// redact drops the request URL, which carries the bot token.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
