package handlers

import (
	"context"
	"net/http"
	"time"

	"theinsight/internal/logger"
	"theinsight/internal/utils/helpers"

	"go.uber.org/zap"
)

// Pinger реализуется *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health godoc
// @Summary Проверка работоспособности
// @Tags health
// @Produce json
// @Success 200 {object} helpers.Response
// @Failure 503 {object} helpers.Response
// @Router /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := healthStatus{
		Status:    "OK",
		Message:   "TheInsight Backend API is running",
		Database:  "up",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			logger.WithCtx(r.Context()).Warn("health: база недоступна", zap.Error(err))
			helpers.Error(w, http.StatusServiceUnavailable, "Database is unavailable")
			return
		}
	}
	helpers.JSON(w, http.StatusOK, st)
}
