package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/home"
	"MerchantBot/internal/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
)

// UserDirectory resolves and records users for role gating.
type UserDirectory interface {
	UpsertUser(ctx context.Context, userID int64, username string) error
	IsMerchant(ctx context.Context, userID int64) (bool, error)
}

// TgBot is the Telegram transport: it normalizes incoming updates into
// interactions, resolves the actor's role and renders dispatcher responses
// back through the Bot API.
type TgBot struct {
	log           *slog.Logger
	api           *tgbotapi.Bot
	botUsername   string
	adminUsername string
	dispatcher    *flow.Dispatcher
	directory     UserDirectory
}

// NewTgBot creates a new Telegram bot instance.
func NewTgBot(botName, apiKey, adminUsername string, dispatcher *flow.Dispatcher, directory UserDirectory, log *slog.Logger) (*TgBot, error) {
	bot := &TgBot{
		log:           log.With(sl.Module("tgbot")),
		botUsername:   botName,
		adminUsername: strings.TrimPrefix(adminUsername, "@"),
		dispatcher:    dispatcher,
		directory:     directory,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	bot.api = api

	return bot, nil
}

// Start begins polling for updates and handling them. It blocks until the
// updater stops.
func (b *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCallback(func(cq *tgbotapi.CallbackQuery) bool { return true }, b.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, b.handleMessage))

	err := updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	b.log.Info("bot started", slog.String("username", b.botUsername))

	// Idle, to keep updates coming in
	updater.Idle()

	return nil
}

// SendText delivers a plain message to one chat. Used for broadcast fan-out.
func (b *TgBot) SendText(chatID int64, text string) error {
	_, err := b.api.SendMessage(chatID, text, nil)
	return err
}

// handleMessage normalizes a text message and dispatches it. The main menu
// button labels map to the main-menu control regardless of session state.
func (b *TgBot) handleMessage(bot *tgbotapi.Bot, ctx *ext.Context) error {
	actor, err := b.resolveActor(ctx)
	if err != nil {
		b.log.Error("resolving actor", sl.Err(err))
		return nil
	}

	text := ctx.EffectiveMessage.Text
	in := flow.Text(text)
	if text == home.BtnMainMenu || text == home.BtnAdminMenu {
		in = flow.Action(flow.ActionMainMenu)
	}

	b.handle(actor, in)
	return nil
}

// handleCallback answers the callback query and dispatches its payload as a
// discrete action.
func (b *TgBot) handleCallback(bot *tgbotapi.Bot, ctx *ext.Context) error {
	_, err := ctx.CallbackQuery.Answer(bot, nil)
	if err != nil {
		b.log.Warn("answering callback", sl.Err(err))
	}

	actor, err := b.resolveActor(ctx)
	if err != nil {
		b.log.Error("resolving actor", sl.Err(err))
		return nil
	}

	b.handle(actor, flow.Action(ctx.CallbackQuery.Data))
	return nil
}

// handle runs one interaction through the dispatcher and renders the outcome.
// Unhandled interactions fall back to the role home screen.
func (b *TgBot) handle(actor flow.Actor, in flow.Interaction) {
	logger := b.log.With(
		slog.Int64("user_id", actor.UserID),
		slog.String("role", string(actor.Role)),
	)

	resp, handled, err := b.dispatcher.Dispatch(context.Background(), actor, in)
	if err != nil {
		logger.Error("dispatching interaction", sl.Err(err))
		return
	}
	if !handled {
		resp = home.Home(actor)
	}

	b.respond(actor.ChatID, resp)
}

// resolveActor identifies the user behind an update and resolves the role
// fresh on every turn: admin by configured username, merchant by directory
// lookup, regular otherwise.
func (b *TgBot) resolveActor(ctx *ext.Context) (flow.Actor, error) {
	userID := ctx.EffectiveUser.Id
	username := ctx.EffectiveUser.Username

	if err := b.directory.UpsertUser(context.Background(), userID, username); err != nil {
		b.log.Warn("recording user contact", sl.Err(err))
	}

	actor := flow.Actor{
		UserID:   userID,
		ChatID:   ctx.EffectiveChat.Id,
		Username: username,
		Role:     flow.RoleRegular,
	}

	if username != "" && username == b.adminUsername {
		actor.Role = flow.RoleAdmin
		return actor, nil
	}

	merchant, err := b.directory.IsMerchant(context.Background(), userID)
	if err != nil {
		return flow.Actor{}, fmt.Errorf("checking merchant access: %w", err)
	}
	if merchant {
		actor.Role = flow.RoleMerchant
	}
	return actor, nil
}

// respond renders one response to a chat with the appropriate keyboard markup.
func (b *TgBot) respond(chatID int64, resp flow.Response) {
	if resp.Empty() {
		b.log.With(slog.Int64("id", chatID)).Debug("empty response")
		return
	}

	opts := &tgbotapi.SendMessageOpts{}
	switch {
	case resp.Menu != nil:
		keyboard := make([][]tgbotapi.KeyboardButton, len(resp.Menu))
		for i, row := range resp.Menu {
			keyboard[i] = make([]tgbotapi.KeyboardButton, len(row))
			for j, btn := range row {
				keyboard[i][j] = tgbotapi.KeyboardButton{Text: btn.Text}
			}
		}
		opts.ReplyMarkup = tgbotapi.ReplyKeyboardMarkup{
			Keyboard:       keyboard,
			ResizeKeyboard: true,
		}

	case resp.Inline != nil:
		keyboard := make([][]tgbotapi.InlineKeyboardButton, len(resp.Inline))
		for i, row := range resp.Inline {
			keyboard[i] = make([]tgbotapi.InlineKeyboardButton, len(row))
			for j, btn := range row {
				keyboard[i][j] = tgbotapi.InlineKeyboardButton{
					Text:         btn.Text,
					CallbackData: btn.Data,
				}
			}
		}
		opts.ReplyMarkup = tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: keyboard,
		}

	case resp.RemoveMenu:
		opts.ReplyMarkup = tgbotapi.ReplyKeyboardRemove{RemoveKeyboard: true}
	}

	_, err := b.api.SendMessage(chatID, resp.Text, opts)
	if err != nil {
		b.log.With(slog.Int64("id", chatID)).Error("sending message", sl.Err(err))
	}
}
