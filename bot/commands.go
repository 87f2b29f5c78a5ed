package bot

import (
	"context"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/admin"
	"MerchantBot/bot/flows/home"
	"MerchantBot/bot/flows/invoice"
	"MerchantBot/bot/flows/logout"
	"MerchantBot/bot/flows/payout"
)

// Commands builds the full idle command table: the home surface commands plus
// one entry per flow entry point.
func Commands(engine *flow.Engine, directory home.Directory, info home.InfoRepository) []flow.Command {
	start := func(flowID flow.FlowID) func(ctx context.Context, actor flow.Actor) (flow.Response, error) {
		return func(ctx context.Context, actor flow.Actor) (flow.Response, error) {
			return engine.Start(ctx, actor, flowID)
		}
	}

	commands := []flow.Command{
		{
			Name:  "start",
			Match: flow.MatchText("/start"),
			Handle: func(ctx context.Context, actor flow.Actor) (flow.Response, error) {
				return home.Home(actor), nil
			},
		},
		{
			Name:   "create-invoice",
			Roles:  []flow.Role{flow.RoleMerchant},
			Match:  flow.MatchText(home.BtnCreateInvoice),
			Handle: start(invoice.FlowID),
		},
		{
			Name:   "create-payout",
			Roles:  []flow.Role{flow.RoleMerchant},
			Match:  flow.MatchText(home.BtnCreatePayout),
			Handle: start(payout.FlowID),
		},
		{
			Name:   "logout",
			Roles:  []flow.Role{flow.RoleMerchant},
			Match:  flow.MatchText(home.BtnLogout),
			Handle: start(logout.FlowID),
		},
		{
			Name:   "add-merchant",
			Roles:  []flow.Role{flow.RoleAdmin},
			Match:  flow.MatchText(home.BtnAddUser),
			Handle: start(admin.AddMerchantFlowID),
		},
		{
			Name:   "delete-merchant",
			Roles:  []flow.Role{flow.RoleAdmin},
			Match:  flow.MatchText(home.BtnDeleteUser),
			Handle: start(admin.DeleteMerchantFlowID),
		},
		{
			Name:   "broadcast",
			Roles:  []flow.Role{flow.RoleAdmin},
			Match:  flow.MatchText(home.BtnBroadcast),
			Handle: start(admin.BroadcastFlowID),
		},
		{
			Name:   "edit-info",
			Roles:  []flow.Role{flow.RoleAdmin},
			Match:  flow.MatchAction(home.ActionEditInfo),
			Handle: start(admin.InfoEditFlowID),
		},
	}

	return append(commands, home.Commands(directory, info)...)
}
