package payment

import (
	"MerchantBot/internal/config"
	"MerchantBot/internal/lib/sl"
	"log/slog"
	"net/http"
	"time"
)

// Client talks to the Konvert2pay payment provider. Calls never return Go
// errors: transport failures are folded into the provider's structured result
// so callers handle one shape.
type Client struct {
	invoiceURL    string
	withdrawalURL string
	http          *http.Client
	log           *slog.Logger
}

// NewClient creates a payment client from config. The HTTP timeout bounds
// every call; a timed-out call is a failure, never left pending.
func NewClient(conf *config.Config, logger *slog.Logger) *Client {
	timeout := time.Duration(conf.Payment.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 9 * time.Second
	}
	return &Client{
		invoiceURL:    conf.Payment.InvoiceURL,
		withdrawalURL: conf.Payment.WithdrawalURL,
		http:          &http.Client{Timeout: timeout},
		log:           logger.With(sl.Module("payment")),
	}
}
