package merchants

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"MerchantBot/internal/lib/api/response"
	"MerchantBot/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type GrantRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	ShopID     string `json:"shop_id" validate:"required"`
	ShopApiKey string `json:"shop_api_key" validate:"required"`
	OrderIDTag string `json:"order_id_tag"`
}

func Grant(log *slog.Logger, handler Core) http.HandlerFunc {
	validate := validator.New()

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

		var req GrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		req.Username = strings.TrimPrefix(strings.TrimSpace(req.Username), "@")

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid grant request", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request: "+err.Error()))
			return
		}

		err := handler.GrantMerchantAccess(r.Context(), req.Username, req.ShopID, req.ShopApiKey, req.OrderIDTag)
		if err != nil {
			logger.Error("failed to grant merchant access", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to grant merchant access"))
			return
		}

		logger.Info("merchant access granted", slog.String("username", req.Username))
		render.JSON(w, r, response.Ok(nil))
	}
}
