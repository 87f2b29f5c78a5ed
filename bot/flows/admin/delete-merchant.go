package admin

import (
	"context"
	"fmt"
	"log/slog"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/internal/lib/sl"
)

// Step IDs of the delete-merchant flow.
const (
	StepDeleteUsername flow.StepID = "username"
	StepDeleteShopID   flow.StepID = "shop_id"
)

const (
	promptDeleteUsername = "❌ Введите @username пользователя для удаления:"
	promptDeleteShopID   = "❌ Для подтверждения действия отправьте shop_id, к которому был привязан пользователь @%s."

	deleteMismatch = "⚠️ Ошибка\nПодтвердить удаление пользователя не удалось. Указанный shop_id не привязан к заявленному username."
	deleteSuccess  = "❌ Пользователь успешно удален"
)

// NewDeleteMerchant builds the flow revoking a merchant: the admin must echo
// the shop_id on record for the username, otherwise nothing is deleted.
func NewDeleteMerchant(directory Directory, log *slog.Logger) *flow.Definition {
	log = log.With(sl.Module("flows.admin.delete"))

	return &flow.Definition{
		ID:    DeleteMerchantFlowID,
		Roles: []flow.Role{flow.RoleAdmin},
		Steps: []flow.Step{
			{
				ID:    StepDeleteUsername,
				Field: FieldUsername,
				Prompt: func(*flow.Session) flow.Response {
					return flow.Response{Text: promptDeleteUsername, Inline: cancelButton()}
				},
				Validate: flow.Username(rejectEmpty),
			},
			{
				ID:    StepDeleteShopID,
				Field: FieldShopID,
				Prompt: func(s *flow.Session) flow.Response {
					return flow.Response{
						Text:   fmt.Sprintf(promptDeleteShopID, s.Field(FieldUsername)),
						Inline: cancelButton(),
					}
				},
				Validate: flow.NonEmpty(rejectEmpty),
			},
		},
		OnComplete: func(ctx context.Context, actor flow.Actor, s *flow.Session) flow.Response {
			username := s.Field(FieldUsername)

			record, err := directory.GetMerchantByUsername(ctx, username)
			if err != nil {
				log.Error("loading merchant record", slog.String("username", username), sl.Err(err))
				return flow.Response{Text: storageFailure, Menu: home.AdminMenu()}
			}
			if record == nil || record.ShopID != s.Field(FieldShopID) {
				log.Warn("delete confirmation mismatch", slog.String("username", username))
				return flow.Response{Text: deleteMismatch, Menu: home.AdminMenu()}
			}

			if err := directory.DeleteMerchant(ctx, username); err != nil {
				log.Error("deleting merchant", slog.String("username", username), sl.Err(err))
				return flow.Response{Text: storageFailure, Menu: home.AdminMenu()}
			}

			log.Info("merchant deleted", slog.String("username", username))
			return flow.Response{Text: deleteSuccess, Menu: home.AdminMenu()}
		},
		OnCancel: adminCancel,
	}
}
