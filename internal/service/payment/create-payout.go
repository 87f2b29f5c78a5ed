package payment

import (
	"MerchantBot/entity"
	"MerchantBot/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// CreatePayout submits a withdrawal creation request to the provider. The
// provider-side order id combines the request id and the client id.
func (c *Client) CreatePayout(ctx context.Context, req entity.PayoutRequest) entity.PayoutResult {
	form := url.Values{}
	form.Set("shop_id", req.ShopID)
	form.Set("order_id", fmt.Sprintf("%s %s", req.OrderID, req.ClientID))
	form.Set("ibanAccount", req.IbanAccount)
	form.Set("ibanInn", req.IbanInn)
	form.Set("cardholderSurname", req.Surname)
	form.Set("cardholderName", req.Name)
	form.Set("cardholderMiddlename", req.Middlename)
	form.Set("ibanPurpose", req.Purpose)
	form.Set("amount", req.Amount)

	var result entity.PayoutResult
	if err := c.postForm(ctx, c.withdrawalURL, req.ShopApiKey, form, &result); err != nil {
		c.log.Error("payout request failed", slog.String("order_id", req.OrderID), sl.Err(err))
		result = entity.PayoutResult{
			Error: &entity.PaymentError{Code: http.StatusInternalServerError, Message: err.Error()},
		}
	}
	return result
}
