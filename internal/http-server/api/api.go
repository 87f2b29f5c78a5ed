package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"MerchantBot/internal/config"
	"MerchantBot/internal/http-server/handlers/errors"
	"MerchantBot/internal/http-server/handlers/events"
	"MerchantBot/internal/http-server/handlers/info"
	"MerchantBot/internal/http-server/handlers/merchants"
	"MerchantBot/internal/http-server/handlers/orders"
	"MerchantBot/internal/http-server/middleware/authenticate"
	"MerchantBot/internal/http-server/middleware/timeout"
	"MerchantBot/internal/lib/sl"
	"MerchantBot/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// Handler is the ops surface behind the API.
type Handler interface {
	merchants.Core
	info.Core
	orders.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))
	router.Use(authenticate.New(log, conf.Listen.ApiKey))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/merchants", func(r chi.Router) {
			r.Get("/", merchants.List(log, handler))
			r.Post("/grant", merchants.Grant(log, handler))
			r.Post("/revoke", merchants.Revoke(log, handler))
		})
		v1.Route("/info", func(r chi.Router) {
			r.Get("/", info.Get(log, handler))
			r.Post("/", info.Update(log, handler))
		})
		v1.Route("/orders", func(r chi.Router) {
			r.Post("/allocate", orders.Allocate(log, handler))
		})
		v1.Route("/events", func(r chi.Router) {
			r.Get("/ws", events.Stream(log, hub))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
