package entity

import "time"

// Merchant is a bot user together with the merchant settings granted by an
// administrator. Regular users have IsMerchant false and empty settings.
type Merchant struct {
	UserID     int64     `json:"user_id" bson:"user_id"`
	Username   string    `json:"username" bson:"username"`
	IsMerchant bool      `json:"is_merchant" bson:"is_merchant"`
	ShopID     string    `json:"shop_id" bson:"shop_id"`
	ShopApiKey string    `json:"shop_api_key" bson:"shop_api_key"`
	OrderIDTag string    `json:"order_id_tag" bson:"order_id_tag"`
	LastSeen   time.Time `json:"last_seen" bson:"last_seen"`
}

// Settings returns the credentials needed for payment-provider calls.
func (m *Merchant) Settings() MerchantSettings {
	return MerchantSettings{
		ShopID:     m.ShopID,
		ShopApiKey: m.ShopApiKey,
		OrderIDTag: m.OrderIDTag,
	}
}

// MerchantSettings is the provider-facing slice of a merchant record.
type MerchantSettings struct {
	ShopID     string `json:"shop_id" bson:"shop_id"`
	ShopApiKey string `json:"shop_api_key" bson:"shop_api_key"`
	OrderIDTag string `json:"order_id_tag" bson:"order_id_tag"`
}
