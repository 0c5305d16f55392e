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

type ShipHandler struct {
	ledger *ledger.Ledger
}

func NewShipHandler(l *ledger.Ledger) *ShipHandler {
	return &ShipHandler{ledger: l}
}

// Create opens a blank ship sheet for an empire.
func (h *ShipHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "ship_create")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload struct {
		EmpireID empire.ID `json:"empireId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid ship payload", err))
		return
	}

	id, ok := h.ledger.CreateShipForEmpire(payload.EmpireID)
	if !ok {
		response.Error(w, r, logger, errors.Validationf("unknown empire %q", payload.EmpireID))
		return
	}

	response.Success(w, http.StatusCreated, map[string]string{"id": id})
}

// Get reads one ship record.
func (h *ShipHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "ship_get")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	ship, ok := h.ledger.Ship(r.PathValue("id"))
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("ship %s not found", r.PathValue("id")))
		return
	}

	response.Success(w, http.StatusOK, ship)
}

// Save merges a partial patch into a ship sheet.
func (h *ShipHandler) Save(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "ship_save")

	if r.Method != http.MethodPatch {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var patch ledger.ShipPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid ship patch", err))
		return
	}

	if !h.ledger.SaveShip(r.PathValue("id"), patch) {
		response.Error(w, r, logger, errors.NotFoundf("ship %s not found", r.PathValue("id")))
		return
	}

	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}

// Buy places the ship into its owner's fleet, deducting its cost.
func (h *ShipHandler) Buy(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "ship_buy")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, h.ledger.BuyShip(r.PathValue("id")))
}

// MarkPR records marked damage, possibly destroying the ship.
func (h *ShipHandler) MarkPR(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "ship_mark_pr")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload struct {
		Marked int `json:"marked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid PR payload", err))
		return
	}

	if !h.ledger.MarkShipPR(r.PathValue("id"), payload.Marked) {
		response.Error(w, r, logger, errors.NotFoundf("ship %s not found", r.PathValue("id")))
		return
	}

	ship, _ := h.ledger.Ship(r.PathValue("id"))
	response.Success(w, http.StatusOK, ship)
}

// Recover reassigns a destroyed ship to an empire with a free fleet slot.
func (h *ShipHandler) Recover(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "ship_recover")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload struct {
		EmpireID empire.ID `json:"empireId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid recover payload", err))
		return
	}

	response.Success(w, http.StatusOK, h.ledger.RecoverShipToEmpire(r.PathValue("id"), payload.EmpireID))
}
