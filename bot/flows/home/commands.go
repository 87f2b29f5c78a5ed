package home

import (
	"context"
	"fmt"
	"strings"

	"MerchantBot/bot/flow"
	"MerchantBot/entity"
)

// Directory resolves merchant records for the profile and users commands.
type Directory interface {
	GetMerchantSettings(ctx context.Context, userID int64) (*entity.MerchantSettings, error)
	ListMerchants(ctx context.Context) ([]entity.Merchant, error)
}

// InfoRepository supplies the admin-editable info block.
type InfoRepository interface {
	GetInfoContent(ctx context.Context) (string, error)
}

const (
	profileFormat = "👤 Профиль\n\n• Username: @%s\n• Shop ID: %s\n• Shop API Key: %s\n• Order ID Tag: %s"
	profileNoData = "👤 Профиль\n\n• Username: @%s\n\nДанные мерчанта не найдены."
	infoEmpty     = "Информационный блок не настроен."
	usersTitle    = "👤 Пользователи, у которых есть доступ к Боту:"
)

// ActionEditInfo is the inline control that opens the info editing flow for
// administrators.
const ActionEditInfo = "edit_info"

// Commands builds the idle command table entries for the home surface:
// profile, info and the admin user listing.
func Commands(directory Directory, info InfoRepository) []flow.Command {
	return []flow.Command{
		{
			Name:  "profile",
			Roles: []flow.Role{flow.RoleMerchant},
			Match: flow.MatchText(BtnProfile),
			Handle: func(ctx context.Context, actor flow.Actor) (flow.Response, error) {
				settings, err := directory.GetMerchantSettings(ctx, actor.UserID)
				if err != nil {
					return flow.Response{}, fmt.Errorf("%w: %v", flow.ErrStoreUnavailable, err)
				}
				if settings == nil {
					return flow.Response{Text: fmt.Sprintf(profileNoData, actor.Username)}, nil
				}
				tag := settings.OrderIDTag
				if tag == "" {
					tag = "—"
				}
				return flow.Response{
					Text: fmt.Sprintf(profileFormat, actor.Username, settings.ShopID, settings.ShopApiKey, tag),
				}, nil
			},
		},
		{
			Name:  "info",
			Roles: []flow.Role{flow.RoleMerchant, flow.RoleAdmin},
			Match: flow.MatchText(BtnInfo),
			Handle: func(ctx context.Context, actor flow.Actor) (flow.Response, error) {
				content, err := info.GetInfoContent(ctx)
				if err != nil {
					return flow.Response{}, fmt.Errorf("%w: %v", flow.ErrStoreUnavailable, err)
				}
				if content == "" {
					content = infoEmpty
				}
				resp := flow.Response{Text: "📄 Информация\n\n" + content}
				if actor.Role == flow.RoleAdmin {
					resp.Inline = [][]flow.InlineButton{{
						{Text: "✏️ Редактировать", Data: ActionEditInfo},
					}}
				}
				return resp, nil
			},
		},
		{
			Name:  "users",
			Roles: []flow.Role{flow.RoleAdmin},
			Match: flow.MatchText(BtnUsers),
			Handle: func(ctx context.Context, actor flow.Actor) (flow.Response, error) {
				merchants, err := directory.ListMerchants(ctx)
				if err != nil {
					return flow.Response{}, fmt.Errorf("%w: %v", flow.ErrStoreUnavailable, err)
				}
				var b strings.Builder
				b.WriteString(usersTitle)
				for i, m := range merchants {
					fmt.Fprintf(&b, "\n%d) @%s shop_id: %s shop_api_key: %s", i+1, m.Username, m.ShopID, m.ShopApiKey)
				}
				if len(merchants) == 0 {
					b.WriteString("\n—")
				}
				return flow.Response{Text: b.String()}, nil
			},
		},
	}
}
