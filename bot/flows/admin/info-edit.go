package admin

import (
	"context"
	"log/slog"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/internal/lib/sl"
)

// StepInfoContent is the single step of the info edit flow.
const StepInfoContent flow.StepID = "content"

// FieldInfoContent holds the new info block content.
const FieldInfoContent = "content"

const (
	promptInfoEdit  = "📄 Отправьте новый текст информационного блока:"
	infoEditSuccess = "✅ Информационный блок обновлен."
)

// NewInfoEdit builds the flow replacing the info block shown to merchants.
func NewInfoEdit(info InfoRepository, log *slog.Logger) *flow.Definition {
	log = log.With(sl.Module("flows.admin.info"))

	return &flow.Definition{
		ID:    InfoEditFlowID,
		Roles: []flow.Role{flow.RoleAdmin},
		Steps: []flow.Step{
			{
				ID:    StepInfoContent,
				Field: FieldInfoContent,
				Prompt: func(*flow.Session) flow.Response {
					return flow.Response{Text: promptInfoEdit, Inline: cancelButton()}
				},
				Validate: flow.NonEmpty(rejectEmpty),
			},
		},
		OnComplete: func(ctx context.Context, actor flow.Actor, s *flow.Session) flow.Response {
			if err := info.UpdateInfoContent(ctx, s.Field(FieldInfoContent)); err != nil {
				log.Error("updating info block", sl.Err(err))
				return flow.Response{Text: storageFailure, Menu: home.AdminMenu()}
			}
			log.Info("info block updated")
			return flow.Response{Text: infoEditSuccess, Menu: home.AdminMenu()}
		},
		OnCancel: adminCancel,
	}
}
