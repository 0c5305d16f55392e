package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"imperium-server/internal/empire"
	"imperium-server/internal/ledger"
	"imperium-server/internal/shared/errors"
	"imperium-server/internal/shared/response"
)

type CreditsHandler struct {
	ledger *ledger.Ledger
}

func NewCreditsHandler(l *ledger.Ledger) *CreditsHandler {
	return &CreditsHandler{ledger: l}
}

type creditsPayload struct {
	EmpireID empire.ID `json:"empireId"`
	Value    int       `json:"value"`
}

// Set overwrites an empire's balance (floored at zero).
func (h *CreditsHandler) Set(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "credits_set")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload creditsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid credits payload", err))
		return
	}
	if !empire.IsValid(payload.EmpireID) {
		response.Error(w, r, logger, errors.Validationf("unknown empire %q", payload.EmpireID))
		return
	}

	h.ledger.SetCredits(payload.EmpireID, payload.Value)
	response.Success(w, http.StatusOK, map[string]int{"credits": h.ledger.Credits(payload.EmpireID)})
}

// Add applies a delta to an empire's balance (clamped at zero).
func (h *CreditsHandler) Add(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "credits_add")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload creditsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid credits payload", err))
		return
	}
	if !empire.IsValid(payload.EmpireID) {
		response.Error(w, r, logger, errors.Validationf("unknown empire %q", payload.EmpireID))
		return
	}

	h.ledger.AddCredits(payload.EmpireID, payload.Value)
	response.Success(w, http.StatusOK, map[string]int{"credits": h.ledger.Credits(payload.EmpireID)})
}
