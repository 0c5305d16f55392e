package handlers

import (
	"log/slog"
	"net/http"

	"imperium-server/internal/ledger"
	"imperium-server/internal/shared/errors"
	"imperium-server/internal/shared/response"
)

type StateHandler struct {
	ledger *ledger.Ledger
}

func NewStateHandler(l *ledger.Ledger) *StateHandler {
	return &StateHandler{ledger: l}
}

// Get serves the full ledger document for SPA hydration.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "state_get")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	data, err := h.ledger.SnapshotJSON()
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to serialize state", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
