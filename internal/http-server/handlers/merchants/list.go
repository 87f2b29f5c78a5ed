package merchants

import (
	"log/slog"
	"net/http"

	"MerchantBot/internal/lib/api/response"
	"MerchantBot/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.merchants")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("merchant directory not available")
			render.JSON(w, r, response.Error("merchant directory not available"))
			return
		}

		merchants, err := handler.ListMerchants(r.Context())
		if err != nil {
			logger.Error("failed to list merchants", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list merchants"))
			return
		}

		logger.Debug("merchants listed", slog.Int("count", len(merchants)))
		render.JSON(w, r, response.Ok(merchants))
	}
}
