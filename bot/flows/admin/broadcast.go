package admin

import (
	"context"
	"fmt"
	"log/slog"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/internal/lib/sl"
)

// StepBroadcastText is the single step of the broadcast flow.
const StepBroadcastText flow.StepID = "message_text"

// FieldMessageText holds the broadcast message.
const FieldMessageText = "message_text"

const (
	promptBroadcast        = "✉️ Введите текст рассылки:"
	broadcastSuccessFormat = "✅ Рассылка создана\n\nСообщение отправлено %d пользователям."
)

// NewBroadcast builds the flow fanning a message out to every known user.
func NewBroadcast(directory Directory, sender Sender, log *slog.Logger) *flow.Definition {
	log = log.With(sl.Module("flows.admin.broadcast"))

	return &flow.Definition{
		ID:    BroadcastFlowID,
		Roles: []flow.Role{flow.RoleAdmin},
		Steps: []flow.Step{
			{
				ID:    StepBroadcastText,
				Field: FieldMessageText,
				Prompt: func(*flow.Session) flow.Response {
					return flow.Response{Text: promptBroadcast, Inline: cancelButton()}
				},
				Validate: flow.NonEmpty(rejectEmpty),
			},
		},
		OnComplete: func(ctx context.Context, actor flow.Actor, s *flow.Session) flow.Response {
			ids, err := directory.AllUserIDs(ctx)
			if err != nil {
				log.Error("listing broadcast recipients", sl.Err(err))
				return flow.Response{Text: storageFailure, Menu: home.AdminMenu()}
			}

			text := s.Field(FieldMessageText)
			sent := 0
			for _, id := range ids {
				if err := sender.SendText(id, text); err != nil {
					log.Warn("broadcast send failed", slog.Int64("user_id", id), sl.Err(err))
					continue
				}
				sent++
			}

			log.Info("broadcast delivered", slog.Int("recipients", sent))
			return flow.Response{
				Text: fmt.Sprintf(broadcastSuccessFormat, sent),
				Menu: home.AdminMenu(),
			}
		},
		OnCancel: adminCancel,
	}
}
