package logout

import (
	"context"
	"log/slog"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/entity"
	"MerchantBot/internal/lib/sl"
)

// FlowID identifies the logout confirmation flow.
const FlowID flow.FlowID = "logout_confirmation"

// StepConfirmUsername expects the merchant's own @username echoed back.
const StepConfirmUsername flow.StepID = "confirm_username"

// FieldUsername holds the confirmed username.
const FieldUsername = "username"

// Directory revokes merchant access on confirmation.
type Directory interface {
	RevokeMerchantAccess(ctx context.Context, userID int64) error
}

// Notifier delivers the logout webhook, best effort.
type Notifier interface {
	Notify(ctx context.Context, eventType string, user entity.WebhookUserInfo, payload, apiResult any, success bool) bool
}

const (
	promptConfirm = "❌ Вы действительно хотите отвязать свой аккаунт от Бота?\n\nЧтобы подтвердить действие, отправьте свой @username в следующем сообщении."
	rejectEcho    = "⚠️ Чтобы подтвердить действие, отправьте свой @username."
	success       = "✅ Аккаунт успешно отвязан от бота."
	failure       = "⚠️ Сервис временно недоступен. Попробуйте ещё раз."
)

// New builds the logout confirmation flow. Any input other than the
// merchant's own @username re-prompts; only the cancel action aborts.
func New(directory Directory, notifier Notifier, log *slog.Logger) *flow.Definition {
	log = log.With(sl.Module("flows.logout"))

	return &flow.Definition{
		ID:    FlowID,
		Roles: []flow.Role{flow.RoleMerchant},
		Steps: []flow.Step{
			{
				ID:    StepConfirmUsername,
				Field: FieldUsername,
				Prompt: func(*flow.Session) flow.Response {
					return flow.Response{
						Text: promptConfirm,
						Inline: [][]flow.InlineButton{{
							{Text: "❌ Отмена", Data: flow.ActionCancel},
						}},
					}
				},
				Validate: flow.OwnUsername(rejectEcho),
			},
		},
		OnComplete: func(ctx context.Context, actor flow.Actor, s *flow.Session) flow.Response {
			if err := directory.RevokeMerchantAccess(ctx, actor.UserID); err != nil {
				log.Error("revoking merchant access", sl.Err(err))
				return flow.Response{Text: failure, Menu: home.MerchantMenu()}
			}

			notifier.Notify(ctx, entity.EventUserLogout, entity.WebhookUserInfo{
				UserID:   actor.UserID,
				Username: actor.Username,
			}, nil, nil, true)

			log.Info("merchant logged out", slog.Int64("user_id", actor.UserID))
			return flow.Response{Text: success, RemoveMenu: true}
		},
		OnCancel: func(actor flow.Actor) flow.Response {
			return flow.Response{Text: "❌ Действие отменено.", Menu: home.MerchantMenu()}
		},
	}
}
