package admin

import (
	"context"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/entity"
)

// Flow IDs for the administrator flows.
const (
	AddMerchantFlowID    flow.FlowID = "add_merchant"
	DeleteMerchantFlowID flow.FlowID = "delete_merchant"
	BroadcastFlowID      flow.FlowID = "broadcast"
	InfoEditFlowID       flow.FlowID = "info_edit"
)

// Directory manages merchant records.
type Directory interface {
	GetMerchantByUsername(ctx context.Context, username string) (*entity.Merchant, error)
	GrantMerchantAccess(ctx context.Context, username, shopID, shopApiKey, orderIDTag string) error
	DeleteMerchant(ctx context.Context, username string) error
	AllUserIDs(ctx context.Context) ([]int64, error)
}

// InfoRepository stores the admin-editable info block.
type InfoRepository interface {
	UpdateInfoContent(ctx context.Context, content string) error
}

// Sender delivers a plain message to one user, for broadcast fan-out.
type Sender interface {
	SendText(chatID int64, text string) error
}

const (
	rejectEmpty    = "⚠️ Значение не может быть пустым."
	storageFailure = "⚠️ Сервис временно недоступен. Попробуйте ещё раз."
)

func adminCancel(actor flow.Actor) flow.Response {
	return flow.Response{Text: "❌ Действие отменено.", Menu: home.AdminMenu()}
}

func cancelButton() [][]flow.InlineButton {
	return [][]flow.InlineButton{{
		{Text: "❌ Отмена", Data: flow.ActionCancel},
	}}
}
