package entity

import "time"

// Webhook event types.
const (
	EventInvoiceCreated = "invoice_created"
	EventPayoutCreated  = "payout_created"
	EventUserLogout     = "user_logout"
)

// Webhook statuses.
const (
	WebhookStatusSuccess = "success"
	WebhookStatusError   = "error"
)

// WebhookUserInfo identifies the actor a webhook event belongs to.
type WebhookUserInfo struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	ShopID   string `json:"shop_id"`
}

// WebhookEvent is the payload delivered to the external webhook receiver.
type WebhookEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	UserInfo  WebhookUserInfo `json:"user_info"`
	Payload   any             `json:"payload,omitempty"`
	ApiResult any             `json:"api_result,omitempty"`
	Status    string          `json:"status"`
}
