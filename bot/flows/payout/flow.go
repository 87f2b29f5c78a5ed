package payout

import (
	"context"
	"fmt"
	"log/slog"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/entity"
	"MerchantBot/internal/lib/sl"
)

// FlowID identifies the payout creation flow.
const FlowID flow.FlowID = "payout_creation"

// Step IDs
const (
	StepOrderID     flow.StepID = "order_id"
	StepClientID    flow.StepID = "client_id"
	StepIbanAccount flow.StepID = "iban_account"
	StepIbanInn     flow.StepID = "iban_inn"
	StepSurname     flow.StepID = "surname"
	StepName        flow.StepID = "name"
	StepMiddlename  flow.StepID = "middlename"
	StepPurpose     flow.StepID = "purpose"
	StepAmount      flow.StepID = "amount"
	StepConfirm     flow.StepID = "confirm"
)

// Field names
const (
	FieldOrderID     = "order_id"
	FieldClientID    = "client_id"
	FieldIbanAccount = "iban_account"
	FieldIbanInn     = "iban_inn"
	FieldSurname     = "surname"
	FieldName        = "name"
	FieldMiddlename  = "middlename"
	FieldPurpose     = "purpose"
	FieldAmount      = "amount"
)

// Preset purpose actions and their committed values.
const (
	ActionPurposeTopUp    = "purpose_popovnennya"
	ActionPurposeDebt     = "purpose_povorennya"
	ActionPurposeTransfer = "purpose_perekaz"

	purposeTopUp    = "Поповнення рахунку"
	purposeDebt     = "Повернення боргу"
	purposeTransfer = "Переказ коштів"
)

// Directory resolves the acting merchant's provider credentials.
type Directory interface {
	GetMerchantSettings(ctx context.Context, userID int64) (*entity.MerchantSettings, error)
}

// Payments is the external payment-provider client.
type Payments interface {
	CreatePayout(ctx context.Context, req entity.PayoutRequest) entity.PayoutResult
}

// Notifier delivers the outcome webhook, best effort.
type Notifier interface {
	Notify(ctx context.Context, eventType string, user entity.WebhookUserInfo, payload, apiResult any, success bool) bool
}

const (
	promptOrderID     = "💎 Укажите ID заявки"
	promptClientID    = "💎 Укажите ID Клиента"
	promptIbanAccount = "💎 Укажите IBAN-счет Клиента"
	promptIbanInn     = "💎 Укажите ИНН Клиента"
	promptSurname     = "💎 Укажите фамилию Клиента"
	promptName        = "💎 Укажите имя Клиента"
	promptMiddlename  = "💎 Укажите отчество Клиента"
	promptPurpose     = "💎 Укажите назначение платежа Клиента"
	promptAmount      = "💎 Укажите сумму"

	confirmFormat = "💎 Заявка на выплату\n\n• ID заявки: %s\n• ID Клиента: %s\n• Номер iBAN-счета: %s\n• ИНН: %s\n• ФИО: %s\n• Назначение платежа: %s\n• Сумма: %s UAH"
	successFormat = "✅ Успех\nВыплата была создана.\n\n• ID выплаты: %s\n• ID заявки: %s\n• ID Клиента: %s\n• Номер iBAN-счета: %s\n• ИНН: %s\n• ФИО: %s\n• Назначение платежа: %s\n• Сумма: %s UAH"
	errorFormat   = "⚠️ Ошибка\nВыплата не была создана. Проверьте данные заявки и попробуйте ещё раз.\n\nКод ошибки: %d\nСтатус: %s"

	rejectEmpty  = "⚠️ Значение не может быть пустым."
	rejectAmount = "⚠️ Сумма должна быть положительным числом."

	noSettings = "❌ Ошибка: Настройки мерчанта не найдены."
)

// New builds the payout creation flow definition.
func New(directory Directory, payments Payments, notifier Notifier, log *slog.Logger) *flow.Definition {
	log = log.With(sl.Module("flows.payout"))

	return &flow.Definition{
		ID:    FlowID,
		Roles: []flow.Role{flow.RoleMerchant},
		Steps: []flow.Step{
			textStep(StepOrderID, FieldOrderID, promptOrderID),
			textStep(StepClientID, FieldClientID, promptClientID),
			textStep(StepIbanAccount, FieldIbanAccount, promptIbanAccount),
			textStep(StepIbanInn, FieldIbanInn, promptIbanInn),
			textStep(StepSurname, FieldSurname, promptSurname),
			textStep(StepName, FieldName, promptName),
			textStep(StepMiddlename, FieldMiddlename, promptMiddlename),
			{
				// Free text or one of the preset payment purposes.
				ID:    StepPurpose,
				Field: FieldPurpose,
				Prompt: func(*flow.Session) flow.Response {
					return flow.Response{
						Text: promptPurpose,
						Inline: [][]flow.InlineButton{
							{{Text: purposeTopUp, Data: ActionPurposeTopUp}},
							{{Text: purposeDebt, Data: ActionPurposeDebt}},
							{{Text: purposeTransfer, Data: ActionPurposeTransfer}},
							{{Text: "❌ Отмена", Data: flow.ActionCancel}},
						},
					}
				},
				Validate: flow.NonEmpty(rejectEmpty),
				Options: map[string]string{
					ActionPurposeTopUp:    purposeTopUp,
					ActionPurposeDebt:     purposeDebt,
					ActionPurposeTransfer: purposeTransfer,
				},
			},
			{
				ID:       StepAmount,
				Field:    FieldAmount,
				Prompt:   prompt(promptAmount),
				Validate: flow.PositiveAmount(rejectAmount),
			},
			{
				ID:      StepConfirm,
				Confirm: true,
				Prompt: func(s *flow.Session) flow.Response {
					return flow.Response{
						Text: fmt.Sprintf(confirmFormat,
							s.Field(FieldOrderID), s.Field(FieldClientID),
							s.Field(FieldIbanAccount), s.Field(FieldIbanInn),
							fullName(s), s.Field(FieldPurpose), s.Field(FieldAmount)),
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

func complete(directory Directory, payments Payments, notifier Notifier, log *slog.Logger) flow.CompleteFunc {
	return func(ctx context.Context, actor flow.Actor, s *flow.Session) flow.Response {
		settings, err := directory.GetMerchantSettings(ctx, actor.UserID)
		if err != nil || settings == nil {
			if err != nil {
				log.Error("loading merchant settings", sl.Err(err))
			}
			return flow.Response{Text: noSettings, Menu: home.MerchantMenu()}
		}

		req := entity.PayoutRequest{
			ShopID:      settings.ShopID,
			ShopApiKey:  settings.ShopApiKey,
			OrderID:     s.Field(FieldOrderID),
			ClientID:    s.Field(FieldClientID),
			IbanAccount: s.Field(FieldIbanAccount),
			IbanInn:     s.Field(FieldIbanInn),
			Surname:     s.Field(FieldSurname),
			Name:        s.Field(FieldName),
			Middlename:  s.Field(FieldMiddlename),
			Purpose:     s.Field(FieldPurpose),
			Amount:      s.Field(FieldAmount),
		}

		result := payments.CreatePayout(ctx, req)

		notifier.Notify(ctx, entity.EventPayoutCreated, entity.WebhookUserInfo{
			UserID:   actor.UserID,
			Username: actor.Username,
			ShopID:   settings.ShopID,
		}, req, result, result.Success)

		if !result.Success {
			code, message := 0, "unknown"
			if result.Error != nil {
				code, message = result.Error.Code, result.Error.Message
			}
			log.Warn("payout not created",
				slog.Int64("user_id", actor.UserID),
				slog.Int("code", code),
			)
			return flow.Response{
				Text: fmt.Sprintf(errorFormat, code, message),
				Menu: home.MerchantMenu(),
			}
		}

		log.Info("payout created",
			slog.Int64("user_id", actor.UserID),
			slog.String("withdrawal_id", result.Data.WithdrawalID),
		)
		return flow.Response{
			Text: fmt.Sprintf(successFormat,
				result.Data.WithdrawalID, req.OrderID, req.ClientID,
				req.IbanAccount, req.IbanInn, fullNameOf(req.Surname, req.Name, req.Middlename),
				req.Purpose, req.Amount),
			Menu: home.MerchantMenu(),
		}
	}
}

func fullName(s *flow.Session) string {
	return fullNameOf(s.Field(FieldSurname), s.Field(FieldName), s.Field(FieldMiddlename))
}

func fullNameOf(surname, name, middlename string) string {
	return fmt.Sprintf("%s %s %s", surname, name, middlename)
}

func textStep(id flow.StepID, field, text string) flow.Step {
	return flow.Step{
		ID:       id,
		Field:    field,
		Prompt:   prompt(text),
		Validate: flow.NonEmpty(rejectEmpty),
	}
}

func prompt(text string) flow.PromptFunc {
	return func(*flow.Session) flow.Response {
		return flow.Response{
			Text: text,
			Inline: [][]flow.InlineButton{{
				{Text: "❌ Отмена", Data: flow.ActionCancel},
			}},
		}
	}
}
