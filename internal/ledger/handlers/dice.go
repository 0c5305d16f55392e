package handlers

import (
	"log/slog"
	"net/http"

	"imperium-server/internal/ledger"
	"imperium-server/internal/shared/errors"
	"imperium-server/internal/shared/response"
)

type DiceHandler struct {
	ledger *ledger.Ledger
}

func NewDiceHandler(l *ledger.Ledger) *DiceHandler {
	return &DiceHandler{ledger: l}
}

// RollOne rolls only the first die.
func (h *DiceHandler) RollOne(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "dice_roll_1")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	v := h.ledger.RollDie1()
	response.Success(w, http.StatusOK, map[string]int{"die1": v})
}

// RollTwo rolls only the second die.
func (h *DiceHandler) RollTwo(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "dice_roll_2")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	v := h.ledger.RollDie2()
	response.Success(w, http.StatusOK, map[string]int{"die2": v})
}

// RollBoth rolls both dice simultaneously.
func (h *DiceHandler) RollBoth(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "dice_roll_both")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	die1, die2 := h.ledger.RollBoth()
	response.Success(w, http.StatusOK, map[string]int{"die1": die1, "die2": die2})
}

// Get reads the persisted faces without rolling.
func (h *DiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "dice_get")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, h.ledger.Dice())
}
