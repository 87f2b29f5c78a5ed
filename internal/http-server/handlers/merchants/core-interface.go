package merchants

import (
	"context"

	"MerchantBot/entity"
)

// Core is the merchant directory surface the handlers depend on.
type Core interface {
	ListMerchants(ctx context.Context) ([]entity.Merchant, error)
	GrantMerchantAccess(ctx context.Context, username, shopID, shopApiKey, orderIDTag string) error
	RevokeMerchantAccess(ctx context.Context, userID int64) error
}
