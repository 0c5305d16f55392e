package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"imperium-server/internal/shared/response"
	"imperium-server/internal/snapshot"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"`
}

type HealthHandler struct {
	store snapshot.Store
}

func NewHealthHandler(store snapshot.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	storeStatus := "disconnected"
	if err := h.store.Ping(r.Context()); err == nil {
		storeStatus = "connected"
	} else {
		logger.Warn("Snapshot store ping failed", "error", err)
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Storage:   storeStatus,
	}

	response.Success(w, http.StatusOK, resp)
}
