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

type GameHandler struct {
	ledger *ledger.Ledger
}

func NewGameHandler(l *ledger.Ledger) *GameHandler {
	return &GameHandler{ledger: l}
}

// New starts a fresh game from a GameSetup payload.
func (h *GameHandler) New(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_new")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var setup ledger.GameSetup
	if err := json.NewDecoder(r.Body).Decode(&setup); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid game setup payload", err))
		return
	}

	result := h.ledger.NewGame(setup)
	response.Success(w, http.StatusOK, result)
}

// Reset returns the ledger to the pre-game state.
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_reset")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	h.ledger.ResetGame()
	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}

// EndTurn closes the current empire's turn.
func (h *GameHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_end_turn")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	h.ledger.EndTurn()
	response.Success(w, http.StatusOK, h.ledger.Status())
}

// ClearNotice acknowledges a non-terminal game-over notice.
func (h *GameHandler) ClearNotice(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_clear_notice")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	h.ledger.ClearNotice()
	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}

// Status reports the navigation read model.
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_status")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, h.ledger.Status())
}

// CurrentEmpire resolves the empire whose turn it is.
func (h *GameHandler) CurrentEmpire(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_current_empire")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	current, ok := h.ledger.CurrentEmpire()
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("no active turn"))
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"empireId": current,
		"name":     empire.Name(current),
	})
}

// Counts reports an empire's summary row (active ships, owned planets).
func (h *GameHandler) Counts(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_counts")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	emp := empire.ID(r.PathValue("id"))
	if !empire.IsValid(emp) {
		response.Error(w, r, logger, errors.Validationf("unknown empire %q", emp))
		return
	}

	response.Success(w, http.StatusOK, h.ledger.CountsForEmpire(emp))
}

// Toast publishes a transient notification message.
func (h *GameHandler) Toast(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_toast")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid toast payload", err))
		return
	}

	h.ledger.ShowToast(payload.Message)
	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}
