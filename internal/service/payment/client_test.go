package payment

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"MerchantBot/entity"
	"MerchantBot/internal/config"
)

func testClient(invoiceURL, withdrawalURL string) *Client {
	conf := &config.Config{}
	conf.Payment.InvoiceURL = invoiceURL
	conf.Payment.WithdrawalURL = withdrawalURL
	conf.Payment.TimeoutSec = 2
	return NewClient(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_CreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("sends form fields and the api key header", func(t *testing.T) {
		var gotForm url.Values
		var gotAuth, gotContentType string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			gotForm = r.PostForm
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			w.Write([]byte(`{"Success":true,"Data":{"invoice_id":"inv-9","pay_url":"https://pay/inv-9","currency":"UAH"}}`))
		}))
		defer srv.Close()

		result := testClient(srv.URL, "").CreateInvoice(ctx, entity.InvoiceRequest{
			ShopID:     "shop-1",
			ShopApiKey: "secret-key",
			OrderID:    "Tag_5",
			ClientID:   "client-7",
			Amount:     "150.00",
		})

		if !result.Success {
			t.Fatalf("expected success, got %+v", result)
		}
		if result.Data.InvoiceID != "inv-9" || result.Data.PayUrl != "https://pay/inv-9" {
			t.Errorf("wrong data: %+v", result.Data)
		}
		if gotAuth != "secret-key" {
			t.Errorf("Authorization = %q", gotAuth)
		}
		if gotContentType != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", gotContentType)
		}
		for key, want := range map[string]string{
			"shop_id":   "shop-1",
			"method":    "oneclickpay",
			"order_id":  "Tag_5",
			"client_id": "client-7",
			"amount":    "150.00",
		} {
			if got := gotForm.Get(key); got != want {
				t.Errorf("form[%s] = %q, want %q", key, got, want)
			}
		}
		if gotForm.Get("shop_api_key") != "" {
			t.Error("api key must never travel in the form body")
		}
	})

	t.Run("decodes a provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Success":false,"Error":{"Code":422,"Message":"bad amount"}}`))
		}))
		defer srv.Close()

		result := testClient(srv.URL, "").CreateInvoice(ctx, entity.InvoiceRequest{})
		if result.Success {
			t.Fatal("expected failure")
		}
		if result.Error == nil || result.Error.Code != 422 || result.Error.Message != "bad amount" {
			t.Errorf("wrong error: %+v", result.Error)
		}
	})

	t.Run("transport failure folds into the result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse the connection

		result := testClient(srv.URL, "").CreateInvoice(ctx, entity.InvoiceRequest{OrderID: "Tag_1"})
		if result.Success {
			t.Fatal("expected failure")
		}
		if result.Error == nil || result.Error.Code != http.StatusInternalServerError {
			t.Errorf("wrong error: %+v", result.Error)
		}
	})
}

func TestClient_CreatePayout(t *testing.T) {
	ctx := context.Background()

	t.Run("provider order id combines request and client ids", func(t *testing.T) {
		var gotForm url.Values

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			gotForm = r.PostForm
			w.Write([]byte(`{"Success":true,"Data":{"withdrawal_id":"wd-3","currency":"UAH"}}`))
		}))
		defer srv.Close()

		result := testClient("", srv.URL).CreatePayout(ctx, entity.PayoutRequest{
			ShopID:      "shop-1",
			ShopApiKey:  "secret-key",
			OrderID:     "Tag_5",
			ClientID:    "client-7",
			IbanAccount: "UA123",
			IbanInn:     "1234567890",
			Surname:     "Shevchenko",
			Name:        "Taras",
			Middlename:  "Hryhorovych",
			Purpose:     "Переказ коштів",
			Amount:      "500.00",
		})

		if !result.Success || result.Data.WithdrawalID != "wd-3" {
			t.Fatalf("expected success, got %+v", result)
		}
		if got := gotForm.Get("order_id"); got != "Tag_5 client-7" {
			t.Errorf("order_id = %q, want %q", got, "Tag_5 client-7")
		}
		for key, want := range map[string]string{
			"ibanAccount":          "UA123",
			"ibanInn":              "1234567890",
			"cardholderSurname":    "Shevchenko",
			"cardholderName":       "Taras",
			"cardholderMiddlename": "Hryhorovych",
			"ibanPurpose":          "Переказ коштів",
			"amount":               "500.00",
		} {
			if got := gotForm.Get(key); got != want {
				t.Errorf("form[%s] = %q, want %q", key, got, want)
			}
		}
	})
}
