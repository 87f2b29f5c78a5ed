package payment

import (
	"MerchantBot/entity"
	"MerchantBot/internal/lib/sl"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// CreateInvoice submits an invoice creation request to the provider.
func (c *Client) CreateInvoice(ctx context.Context, req entity.InvoiceRequest) entity.InvoiceResult {
	form := url.Values{}
	form.Set("shop_id", req.ShopID)
	form.Set("method", "oneclickpay")
	form.Set("order_id", req.OrderID)
	form.Set("client_id", req.ClientID)
	form.Set("amount", req.Amount)

	var result entity.InvoiceResult
	if err := c.postForm(ctx, c.invoiceURL, req.ShopApiKey, form, &result); err != nil {
		c.log.Error("invoice request failed", slog.String("order_id", req.OrderID), sl.Err(err))
		result = entity.InvoiceResult{
			Error: &entity.PaymentError{Code: http.StatusInternalServerError, Message: err.Error()},
		}
	}
	return result
}

// postForm sends a form-encoded request authorized by the merchant's api key
// and decodes the JSON response into out.
func (c *Client) postForm(ctx context.Context, endpoint, apiKey string, form url.Values, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
