package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"imperium-server/internal/ledger"
	"imperium-server/internal/shared/errors"
	"imperium-server/internal/shared/response"
)

type CharacterHandler struct {
	ledger *ledger.Ledger
}

func NewCharacterHandler(l *ledger.Ledger) *CharacterHandler {
	return &CharacterHandler{ledger: l}
}

// Create opens a blank character sheet.
func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "character_create")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := h.ledger.CreateCharacter()
	response.Success(w, http.StatusCreated, map[string]string{"id": id})
}

// Get reads one character record.
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "character_get")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	ch, ok := h.ledger.Character(r.PathValue("id"))
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("character %s not found", r.PathValue("id")))
		return
	}

	response.Success(w, http.StatusOK, ch)
}

// Save merges a partial patch into a character sheet.
func (h *CharacterHandler) Save(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "character_save")

	if r.Method != http.MethodPatch {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var patch ledger.CharacterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid character patch", err))
		return
	}

	if !h.ledger.SaveCharacter(r.PathValue("id"), patch) {
		response.Error(w, r, logger, errors.NotFoundf("character %s not found", r.PathValue("id")))
		return
	}

	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}

// Hire places the character into the player's roster, deducting its cost.
func (h *CharacterHandler) Hire(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "character_hire")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, h.ledger.HireCharacter(r.PathValue("id")))
}

// Use spends a hired character in combat, freeing the slot.
func (h *CharacterHandler) Use(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "character_use")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	if !h.ledger.UseCharacter(r.PathValue("id")) {
		response.Error(w, r, logger, errors.NotFoundf("character %s not found", r.PathValue("id")))
		return
	}

	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}
