package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client delivers short operational messages to the workshop's chat
// webhook. Delivery is best effort; callers treat failures as log-worthy,
// not fatal.
type Client interface {
	SendDigest(ctx context.Context, text string) error
}

type webhookClient struct {
	http   *resty.Client
	url    string
	logger *zap.Logger
}

// NewWebhookClient builds a webhook-backed notifier.
func NewWebhookClient(webhookURL string, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	http := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &webhookClient{http: http, url: webhookURL, logger: logger}
}

func (c *webhookClient) SendDigest(ctx context.Context, text string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("posting digest webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("digest webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}

	c.logger.Info("digest delivered", zap.Int("status", resp.StatusCode()))
	return nil
}
