package info

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"MerchantBot/internal/lib/api/response"
	"MerchantBot/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type UpdateRequest struct {
	Content string `json:"content"`
}

func Update(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			render.JSON(w, r, response.Error("content is required"))
			return
		}

		if err := handler.UpdateInfoContent(r.Context(), req.Content); err != nil {
			logger.Error("failed to update info block", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to update info block"))
			return
		}

		logger.Info("info block updated", slog.Int("length", len(req.Content)))
		render.JSON(w, r, response.Ok(nil))
	}
}
