package merchants

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"MerchantBot/internal/lib/api/response"
	"MerchantBot/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type RevokeRequest struct {
	UserID int64 `json:"user_id"`
}

func Revoke(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req RevokeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if req.UserID == 0 {
			render.JSON(w, r, response.Error("user_id is required"))
			return
		}

		if err := handler.RevokeMerchantAccess(r.Context(), req.UserID); err != nil {
			logger.Error("failed to revoke merchant access", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to revoke merchant access"))
			return
		}

		logger.Info("merchant access revoked", slog.Int64("user_id", req.UserID))
		render.JSON(w, r, response.Ok(nil))
	}
}
