package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"plexnote/internal/embedmsg"
	"plexnote/internal/logging"
)

const userAgent = "Plexnote-Go/0.1.0"

// Sender is the delivery surface exposed to the pipeline.
type Sender interface {
	Send(ctx context.Context, embed *embedmsg.Embed) error
}

// Manager posts embeds to a single webhook endpoint.
type Manager struct {
	webhookURL        string
	attempts          int
	retryAfterDefault time.Duration
	client            *http.Client
	logger            *slog.Logger
	sleep             func(time.Duration)
}

var _ Sender = (*Manager)(nil)

// Option adjusts optional Manager behavior.
type Option func(*Manager)

// WithHTTPClient overrides the HTTP client used for webhook requests.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.client = client
		}
	}
}

// WithSleep overrides the sleep function used between attempts.
func WithSleep(sleep func(time.Duration)) Option {
	return func(m *Manager) {
		if sleep != nil {
			m.sleep = sleep
		}
	}
}

// New builds a Manager for the given webhook URL. attempts is the total
// number of delivery attempts; retryAfterDefault is the rate-limit wait used
// when the server omits a Retry-After header.
func New(webhookURL string, attempts int, retryAfterDefault, timeout time.Duration, logger *slog.Logger, opts ...Option) *Manager {
	if attempts <= 0 {
		attempts = 3
	}
	if retryAfterDefault <= 0 {
		retryAfterDefault = 5 * time.Second
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		webhookURL:        webhookURL,
		attempts:          attempts,
		retryAfterDefault: retryAfterDefault,
		client:            &http.Client{Timeout: timeout},
		logger:            logging.NewComponentLogger(logger, "delivery"),
		sleep:             time.Sleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type webhookPayload struct {
	Embeds []*embedmsg.Embed `json:"embeds"`
}

// rateLimitError signals a 429 response and carries the wait interval.
type rateLimitError struct {
	retryAfter time.Duration
}

func (e *rateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.retryAfter)
}

// Send delivers the embed, retrying per the configured policy. A rate-limit
// response waits out the interval without consuming an attempt; any other
// failure consumes one and backs off linearly before the next. Because
// rate limits never exhaust the attempt budget, a persistently
// rate-limiting endpoint keeps Send waiting until ctx is cancelled.
func (m *Manager) Send(ctx context.Context, embed *embedmsg.Embed) error {
	if m.webhookURL == "" {
		return errors.New("webhook URL not configured")
	}

	body, err := json.Marshal(webhookPayload{Embeds: []*embedmsg.Embed{embed}})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	attempt := 1
	for attempt <= m.attempts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("webhook delivery aborted: %w", err)
		}

		err := m.post(ctx, body)
		if err == nil {
			m.logger.Info("webhook delivered", logging.Int("attempt", attempt))
			return nil
		}

		var rl *rateLimitError
		if errors.As(err, &rl) {
			m.logger.Warn("webhook rate limited",
				logging.Duration("retry_after", rl.retryAfter))
			m.sleep(rl.retryAfter)
			continue
		}

		m.logger.Warn("webhook delivery failed",
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", m.attempts),
			logging.Error(err))
		if attempt < m.attempts {
			m.sleep(time.Duration(attempt) * 2 * time.Second)
		}
		attempt++
	}
	return fmt.Errorf("webhook delivery failed after %d attempts", m.attempts)
}

func (m *Manager) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &rateLimitError{retryAfter: m.retryAfterWait(resp)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// retryAfterWait reads the Retry-After header in whole seconds, falling back
// to the configured default when absent or unparseable.
func (m *Manager) retryAfterWait(resp *http.Response) time.Duration {
	header := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if header == "" {
		return m.retryAfterDefault
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return m.retryAfterDefault
	}
	return time.Duration(seconds) * time.Second
}
