package webhook

import (
	"MerchantBot/entity"
	"MerchantBot/internal/config"
	"MerchantBot/internal/lib/sl"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// EventListener observes outcome events in-process, independently of webhook
// delivery. The ws hub implements this to stream events to ops clients.
type EventListener interface {
	BroadcastOutcome(event entity.WebhookEvent)
}

// Notifier delivers outcome events to the external webhook receiver.
// Delivery is fire-and-forget: failures are logged and reported as a boolean,
// never raised to the conversation.
type Notifier struct {
	url      string
	enabled  bool
	http     *http.Client
	log      *slog.Logger
	listener EventListener
}

// NewNotifier creates a notifier from config.
func NewNotifier(conf *config.Config, logger *slog.Logger) *Notifier {
	timeout := time.Duration(conf.Webhook.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 9 * time.Second
	}
	return &Notifier{
		url:     conf.Webhook.Url,
		enabled: conf.Webhook.Enabled && conf.Webhook.Url != "",
		http:    &http.Client{Timeout: timeout},
		log:     logger.With(sl.Module("webhook")),
	}
}

// SetListener attaches an in-process event listener.
func (n *Notifier) SetListener(l EventListener) {
	n.listener = l
}

// Notify builds and delivers one outcome event. It returns whether delivery
// succeeded and never panics into the caller.
func (n *Notifier) Notify(ctx context.Context, eventType string, user entity.WebhookUserInfo, payload, apiResult any, success bool) bool {
	defer func() {
		if r := recover(); r != nil {
			n.log.With(slog.Any("panic", r)).Error("webhook notify")
		}
	}()

	status := entity.WebhookStatusError
	if success {
		status = entity.WebhookStatusSuccess
	}

	event := entity.WebhookEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now(),
		UserInfo:  user,
		Payload:   payload,
		ApiResult: apiResult,
		Status:    status,
	}

	if n.listener != nil {
		n.listener.BroadcastOutcome(event)
	}

	if !n.enabled {
		return false
	}

	body, err := json.Marshal(event)
	if err != nil {
		n.log.With(sl.Err(err)).Error("marshal webhook event")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.log.With(sl.Err(err)).Error("create webhook request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		n.log.With(sl.Err(err)).Error("send webhook")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.log.With(
			slog.Int("status", resp.StatusCode),
			slog.String("event_type", eventType),
		).Warn("webhook non-200 response")
		return false
	}

	n.log.With(
		slog.String("event_type", eventType),
		slog.String("event_id", event.EventID),
	).Info("webhook delivered")
	return true
}
