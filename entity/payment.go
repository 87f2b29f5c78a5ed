package entity

// InvoiceRequest carries the fields collected by the invoice flow.
type InvoiceRequest struct {
	ShopID     string `json:"shop_id"`
	ShopApiKey string `json:"-"`
	OrderID    string `json:"order_id"`
	ClientID   string `json:"client_id"`
	Amount     string `json:"amount"`
}

// PayoutRequest carries the fields collected by the payout flow.
type PayoutRequest struct {
	ShopID      string `json:"shop_id"`
	ShopApiKey  string `json:"-"`
	OrderID     string `json:"order_id"`
	ClientID    string `json:"client_id"`
	IbanAccount string `json:"iban_account"`
	IbanInn     string `json:"iban_inn"`
	Surname     string `json:"surname"`
	Name        string `json:"name"`
	Middlename  string `json:"middlename"`
	Purpose     string `json:"purpose"`
	Amount      string `json:"amount"`
}

// PaymentError is the provider's structured error payload.
type PaymentError struct {
	Code    int    `json:"Code"`
	Message string `json:"Message"`
}

// InvoiceResult is the provider response for invoice creation.
type InvoiceResult struct {
	Success bool `json:"Success"`
	Data    struct {
		InvoiceID string `json:"invoice_id"`
		PayUrl    string `json:"pay_url"`
		Currency  string `json:"currency"`
	} `json:"Data"`
	Error *PaymentError `json:"Error,omitempty"`
}

// PayoutResult is the provider response for payout creation.
type PayoutResult struct {
	Success bool `json:"Success"`
	Data    struct {
		WithdrawalID string `json:"withdrawal_id"`
		Currency     string `json:"currency"`
	} `json:"Data"`
	Error *PaymentError `json:"Error,omitempty"`
}
