package admin

import (
	"context"
	"fmt"
	"log/slog"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/internal/lib/sl"
)

// Step IDs and field names of the add-merchant flow.
const (
	StepAddUsername flow.StepID = "username"
	StepAddShopID   flow.StepID = "shop_id"
	StepAddApiKey   flow.StepID = "shop_api_key"
	StepAddOrderTag flow.StepID = "order_id_tag"

	FieldUsername   = "username"
	FieldShopID     = "shop_id"
	FieldShopApiKey = "shop_api_key"
	FieldOrderTag   = "order_id_tag"
)

const (
	promptAddUsername = "👤 Введите @username пользователя:"
	promptAddShopID   = "👤 Введите shop_id:"
	promptAddApiKey   = "👤 Введите shop_api_key:"
	promptAddOrderTag = "👤 Укажите значение, которое будет привязано к этому Telegram-аккаунту, как ORDER ID TAG при создании инвойса или выплаты."

	addSuccessFormat = "✅ Пользователь @%s успешно добавлен с доступом к функционалу мерчанта."
)

// NewAddMerchant builds the flow granting merchant access: username, shop
// credentials, and an optional order id tag (skippable with the skip button
// or a "-" reply).
func NewAddMerchant(directory Directory, log *slog.Logger) *flow.Definition {
	log = log.With(sl.Module("flows.admin.add"))

	return &flow.Definition{
		ID:    AddMerchantFlowID,
		Roles: []flow.Role{flow.RoleAdmin},
		Steps: []flow.Step{
			{
				ID:    StepAddUsername,
				Field: FieldUsername,
				Prompt: func(*flow.Session) flow.Response {
					return flow.Response{Text: promptAddUsername, Inline: cancelButton()}
				},
				Validate: flow.Username(rejectEmpty),
			},
			{
				ID:    StepAddShopID,
				Field: FieldShopID,
				Prompt: func(s *flow.Session) flow.Response {
					return flow.Response{
						Text: fmt.Sprintf("Укажите ID Магазина, с которого пользователь @%s сможет создавать инвойсы и выплаты.",
							s.Field(FieldUsername)),
						Inline: cancelButton(),
					}
				},
				Validate: flow.NonEmpty(rejectEmpty),
			},
			{
				ID:    StepAddApiKey,
				Field: FieldShopApiKey,
				Prompt: func(*flow.Session) flow.Response {
					return flow.Response{Text: promptAddApiKey, Inline: cancelButton()}
				},
				Validate: flow.NonEmpty(rejectEmpty),
			},
			{
				ID:    StepAddOrderTag,
				Field: FieldOrderTag,
				Prompt: func(*flow.Session) flow.Response {
					return flow.Response{
						Text: promptAddOrderTag,
						Inline: [][]flow.InlineButton{{
							{Text: "Пропустить", Data: flow.ActionSkip},
							{Text: "❌ Отмена", Data: flow.ActionCancel},
						}},
					}
				},
				Validate: flow.Skippable(flow.NonEmpty(rejectEmpty)),
				Options:  map[string]string{flow.ActionSkip: ""},
			},
		},
		OnComplete: func(ctx context.Context, actor flow.Actor, s *flow.Session) flow.Response {
			username := s.Field(FieldUsername)
			err := directory.GrantMerchantAccess(ctx, username,
				s.Field(FieldShopID), s.Field(FieldShopApiKey), s.Field(FieldOrderTag))
			if err != nil {
				log.Error("granting merchant access", slog.String("username", username), sl.Err(err))
				return flow.Response{Text: storageFailure, Menu: home.AdminMenu()}
			}
			log.Info("merchant access granted", slog.String("username", username))
			return flow.Response{
				Text: fmt.Sprintf(addSuccessFormat, username),
				Menu: home.AdminMenu(),
			}
		},
		OnCancel: adminCancel,
	}
}
