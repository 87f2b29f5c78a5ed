package info

import (
	"log/slog"
	"net/http"

	"MerchantBot/internal/lib/api/response"
	"MerchantBot/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.info")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("info storage not available")
			render.JSON(w, r, response.Error("info storage not available"))
			return
		}

		content, err := handler.GetInfoContent(r.Context())
		if err != nil {
			logger.Error("failed to load info block", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to load info block"))
			return
		}

		render.JSON(w, r, response.Ok(map[string]string{"content": content}))
	}
}
