package invoice

import (
	"context"
	"fmt"
	"log/slog"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/entity"
	"MerchantBot/internal/lib/sl"
)

// FlowID identifies the invoice creation flow.
const FlowID flow.FlowID = "invoice_creation"

// Step IDs
const (
	StepOrderID  flow.StepID = "order_id"
	StepClientID flow.StepID = "client_id"
	StepAmount   flow.StepID = "amount"
	StepConfirm  flow.StepID = "confirm"
)

// Field names
const (
	FieldOrderID  = "order_id"
	FieldClientID = "client_id"
	FieldAmount   = "amount"
)

// Directory resolves the acting merchant's provider credentials.
type Directory interface {
	GetMerchantSettings(ctx context.Context, userID int64) (*entity.MerchantSettings, error)
}

// Allocator supplies the next external order identifier for a tag.
type Allocator interface {
	NextOrderID(ctx context.Context, tag string) (string, error)
}

// Payments is the external payment-provider client.
type Payments interface {
	CreateInvoice(ctx context.Context, req entity.InvoiceRequest) entity.InvoiceResult
}

// Notifier delivers the outcome webhook, best effort.
type Notifier interface {
	Notify(ctx context.Context, eventType string, user entity.WebhookUserInfo, payload, apiResult any, success bool) bool
}

const (
	promptOrderID  = "🎰 Укажите ID инвойса"
	promptClientID = "🎰 Укажите ID Клиента"
	promptAmount   = "🎰 Укажите сумму"

	confirmFormat = "🎰 Заявка на инвойс\n\n• ID инвойса: %s\n• ID Клиента: %s\n• Сумма: %s UAH"
	successFormat = "✅ Успех\nИнвойс был создан.\n\n• ID ордера: %s\n• ID инвойса: %s\n• ID Клиента: %s\n• Сумма: %s UAH\n\nСсылка на платежное окно: %s"
	errorFormat   = "⚠️ Ошибка\nИнвойс не был создан. Проверьте данные заявки и попробуйте ещё раз.\n\nКод ошибки: %d\nСтатус: %s"

	rejectEmpty  = "⚠️ Значение не может быть пустым."
	rejectAmount = "⚠️ Сумма должна быть положительным числом."

	noSettings = "❌ Ошибка: Настройки мерчанта не найдены."
)

// New builds the invoice creation flow definition.
func New(directory Directory, allocator Allocator, payments Payments, notifier Notifier, log *slog.Logger) *flow.Definition {
	log = log.With(sl.Module("flows.invoice"))

	return &flow.Definition{
		ID:    FlowID,
		Roles: []flow.Role{flow.RoleMerchant},
		Steps: []flow.Step{
			{
				ID:    StepOrderID,
				Field: FieldOrderID,
				// With a configured order id tag the identifier is allocated
				// automatically and the prompt never shows.
				Auto: func(ctx context.Context, actor flow.Actor, s *flow.Session) (string, bool, error) {
					settings, err := directory.GetMerchantSettings(ctx, actor.UserID)
					if err != nil {
						return "", false, fmt.Errorf("%w: %v", flow.ErrStoreUnavailable, err)
					}
					if settings == nil || settings.OrderIDTag == "" {
						return "", false, nil
					}
					orderID, err := allocator.NextOrderID(ctx, settings.OrderIDTag)
					if err != nil {
						return "", false, fmt.Errorf("%w: %v", flow.ErrStoreUnavailable, err)
					}
					return orderID, true, nil
				},
				Prompt:   textPrompt(promptOrderID),
				Validate: flow.NonEmpty(rejectEmpty),
			},
			{
				ID:       StepClientID,
				Field:    FieldClientID,
				Prompt:   textPrompt(promptClientID),
				Validate: flow.NonEmpty(rejectEmpty),
			},
			{
				ID:       StepAmount,
				Field:    FieldAmount,
				Prompt:   textPrompt(promptAmount),
				Validate: flow.PositiveAmount(rejectAmount),
			},
			{
				ID:      StepConfirm,
				Confirm: true,
				Prompt: func(s *flow.Session) flow.Response {
					return flow.Response{
						Text: fmt.Sprintf(confirmFormat,
							s.Field(FieldOrderID), s.Field(FieldClientID), s.Field(FieldAmount)),
						Inline: [][]flow.InlineButton{{
							{Text: "✅ Подтвердить", Data: flow.ActionConfirm},
							{Text: "❌ Отмена", Data: flow.ActionCancel},
						}},
					}
				},
			},
		},
		OnComplete: complete(directory, payments, notifier, log),
		OnCancel: func(actor flow.Actor) flow.Response {
			return flow.Response{Text: "❌ Действие отменено.", Menu: home.MerchantMenu()}
		},
	}
}

// complete submits the collected request to the provider and reports the
// outcome to the user and, independently, to the webhook receiver.
func complete(directory Directory, payments Payments, notifier Notifier, log *slog.Logger) flow.CompleteFunc {
	return func(ctx context.Context, actor flow.Actor, s *flow.Session) flow.Response {
		settings, err := directory.GetMerchantSettings(ctx, actor.UserID)
		if err != nil || settings == nil {
			if err != nil {
				log.Error("loading merchant settings", sl.Err(err))
			}
			return flow.Response{Text: noSettings, Menu: home.MerchantMenu()}
		}

		req := entity.InvoiceRequest{
			ShopID:     settings.ShopID,
			ShopApiKey: settings.ShopApiKey,
			OrderID:    s.Field(FieldOrderID),
			ClientID:   s.Field(FieldClientID),
			Amount:     s.Field(FieldAmount),
		}

		result := payments.CreateInvoice(ctx, req)

		// The webhook fires whatever the provider answered; a delivery
		// failure is logged inside the notifier and never shown to the user.
		notifier.Notify(ctx, entity.EventInvoiceCreated, entity.WebhookUserInfo{
			UserID:   actor.UserID,
			Username: actor.Username,
			ShopID:   settings.ShopID,
		}, req, result, result.Success)

		if !result.Success {
			code, message := 0, "unknown"
			if result.Error != nil {
				code, message = result.Error.Code, result.Error.Message
			}
			log.Warn("invoice not created",
				slog.Int64("user_id", actor.UserID),
				slog.Int("code", code),
			)
			return flow.Response{
				Text: fmt.Sprintf(errorFormat, code, message),
				Menu: home.MerchantMenu(),
			}
		}

		log.Info("invoice created",
			slog.Int64("user_id", actor.UserID),
			slog.String("invoice_id", result.Data.InvoiceID),
		)
		return flow.Response{
			Text: fmt.Sprintf(successFormat,
				result.Data.InvoiceID, req.OrderID, req.ClientID, req.Amount, result.Data.PayUrl),
			Menu: home.MerchantMenu(),
		}
	}
}

func textPrompt(text string) flow.PromptFunc {
	return func(*flow.Session) flow.Response {
		return flow.Response{
			Text: text,
			Inline: [][]flow.InlineButton{{
				{Text: "❌ Отмена", Data: flow.ActionCancel},
			}},
		}
	}
}
