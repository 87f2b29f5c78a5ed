package events

import (
	"log/slog"
	"net/http"

	"MerchantBot/internal/lib/sl"
	"MerchantBot/internal/ws"
)

// Stream upgrades the connection and attaches it to the outcome event hub.
// Authentication happens in the router middleware before the upgrade.
func Stream(log *slog.Logger, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(sl.Module("http.handlers.events"))

		if hub == nil {
			logger.Error("event hub not available")
			http.Error(w, "event hub not available", http.StatusServiceUnavailable)
			return
		}

		ws.ServeWs(hub, logger, w, r)
	}
}
