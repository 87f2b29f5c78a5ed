package main

import (
	"context"
	"flag"
	"log/slog"

	"MerchantBot/bot"
	"MerchantBot/bot/flow"
	"MerchantBot/bot/flows/admin"
	"MerchantBot/bot/flows/home"
	"MerchantBot/bot/flows/invoice"
	"MerchantBot/bot/flows/logout"
	"MerchantBot/bot/flows/payout"
	"MerchantBot/entity"
	"MerchantBot/internal/config"
	repository "MerchantBot/internal/database"
	"MerchantBot/internal/http-server/api"
	"MerchantBot/internal/lib/logger"
	"MerchantBot/internal/lib/sl"
	"MerchantBot/internal/service/orders"
	"MerchantBot/internal/service/payment"
	"MerchantBot/internal/service/webhook"
	"MerchantBot/internal/ws"
)

// store is the directory, counter and info surface shared by the Mongo and
// in-memory repositories.
type store interface {
	UpsertUser(ctx context.Context, userID int64, username string) error
	GetMerchantSettings(ctx context.Context, userID int64) (*entity.MerchantSettings, error)
	GetMerchantByUsername(ctx context.Context, username string) (*entity.Merchant, error)
	IsMerchant(ctx context.Context, userID int64) (bool, error)
	GrantMerchantAccess(ctx context.Context, username, shopID, shopApiKey, orderIDTag string) error
	RevokeMerchantAccess(ctx context.Context, userID int64) error
	DeleteMerchant(ctx context.Context, username string) error
	ListMerchants(ctx context.Context) ([]entity.Merchant, error)
	AllUserIDs(ctx context.Context) ([]int64, error)
	AllocateCounter(ctx context.Context, tag string) (int64, error)
	GetInfoContent(ctx context.Context) (string, error)
	UpdateInfoContent(ctx context.Context, content string) error
}

// opsHandler aggregates the repository and the order allocator behind the ops
// API surface.
type opsHandler struct {
	store
	*orders.Service
}

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting merchantbot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	var st store
	var sessions flow.SessionStorage

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		st = db
		sessions = flow.NewMongoSessionStorage(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		st = repository.NewMemory()
		sessions = flow.NewMemorySessionStorage()
		lg.Warn("mongo disabled, using in-memory storage")
	}

	allocator := orders.NewService(st, conf.Orders.FallbackTag, lg)
	payments := payment.NewClient(conf, lg)
	notifier := webhook.NewNotifier(conf, lg)

	hub := ws.NewHub(lg)
	go hub.Run()
	notifier.SetListener(hub)

	engine := flow.NewEngine(sessions, lg)
	engine.Register(invoice.New(st, allocator, payments, notifier, lg))
	engine.Register(payout.New(st, payments, notifier, lg))
	engine.Register(logout.New(st, notifier, lg))
	engine.Register(admin.NewAddMerchant(st, lg))
	engine.Register(admin.NewDeleteMerchant(st, lg))
	engine.Register(admin.NewInfoEdit(st, lg))

	dispatcher := flow.NewDispatcher(engine, bot.Commands(engine, st, st), home.Home, lg)

	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminUsername, dispatcher, st, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			// Broadcast fan-out goes through the bot, so the flow is
			// registered once the transport exists.
			engine.Register(admin.NewBroadcast(st, tgBot, lg))

			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
		}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, opsHandler{store: st, Service: allocator}, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
