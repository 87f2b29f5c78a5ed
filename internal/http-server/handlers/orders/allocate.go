package orders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"MerchantBot/internal/lib/api/response"
	"MerchantBot/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Core allocates external order ids.
type Core interface {
	NextOrderID(ctx context.Context, tag string) (string, error)
}

type AllocateRequest struct {
	OrderIDTag string `json:"order_id_tag"`
}

func Allocate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.orders")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("order allocator not available")
			render.JSON(w, r, response.Error("order allocator not available"))
			return
		}

		var req AllocateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		orderID, err := handler.NextOrderID(r.Context(), req.OrderIDTag)
		if err != nil {
			logger.Error("failed to allocate order id", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to allocate order id"))
			return
		}

		logger.Debug("order id allocated", slog.String("order_id", orderID))
		render.JSON(w, r, response.Ok(map[string]string{"order_id": orderID}))
	}
}
