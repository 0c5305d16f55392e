package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"imperium-server/internal/empire"
	"imperium-server/internal/ledger"
	"imperium-server/internal/shared/errors"
	"imperium-server/internal/shared/response"
)

type PlanetHandler struct {
	ledger *ledger.Ledger
}

func NewPlanetHandler(l *ledger.Ledger) *PlanetHandler {
	return &PlanetHandler{ledger: l}
}

// Create opens a blank planet sheet, optionally into a specific slot.
func (h *PlanetHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "planet_create")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload struct {
		EmpireID  empire.ID `json:"empireId"`
		SlotIndex *int      `json:"slotIndex,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid planet payload", err))
		return
	}

	var id string
	var ok bool
	if payload.SlotIndex != nil {
		id, ok = h.ledger.CreatePlanetInSlot(payload.EmpireID, *payload.SlotIndex)
	} else {
		id, ok = h.ledger.CreatePlanetForEmpire(payload.EmpireID)
	}
	if !ok {
		response.Error(w, r, logger, errors.Validationf("unknown empire %q or bad slot index", payload.EmpireID))
		return
	}

	response.Success(w, http.StatusCreated, map[string]string{"id": id})
}

// Get reads one planet record.
func (h *PlanetHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "planet_get")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	planet, ok := h.ledger.Planet(r.PathValue("id"))
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("planet %s not found", r.PathValue("id")))
		return
	}

	response.Success(w, http.StatusOK, planet)
}

// Save merges a partial patch into a planet sheet.
func (h *PlanetHandler) Save(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "planet_save")

	if r.Method != http.MethodPatch {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var patch ledger.PlanetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid planet patch", err))
		return
	}

	if !h.ledger.SavePlanet(r.PathValue("id"), patch) {
		response.Error(w, r, logger, errors.NotFoundf("planet %s not found", r.PathValue("id")))
		return
	}

	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}

// BindNumber assigns or clears the planet's display number. A null or
// absent number clears the binding.
func (h *PlanetHandler) BindNumber(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "planet_bind_number")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload struct {
		Number *int `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid number payload", err))
		return
	}

	response.Success(w, http.StatusOK, h.ledger.BindPlanetNumber(r.PathValue("id"), payload.Number))
}

// Discard removes an unnumbered placeholder, freeing its slot.
func (h *PlanetHandler) Discard(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "planet_discard")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	h.ledger.DiscardPlanetIfUnnumbered(r.PathValue("id"))
	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}

// SetDestroyed marks or unmarks permanent destruction.
func (h *PlanetHandler) SetDestroyed(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "planet_set_destroyed")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload struct {
		Destroyed bool `json:"destroyed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid destroyed payload", err))
		return
	}

	if !h.ledger.SetPlanetDestroyed(r.PathValue("id"), payload.Destroyed) {
		response.Error(w, r, logger, errors.NotFoundf("planet %s not found", r.PathValue("id")))
		return
	}

	response.Success(w, http.StatusOK, ledger.Result{OK: true})
}

// Conquer moves the planet into an empire's holdings.
func (h *PlanetHandler) Conquer(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "planet_conquer")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var payload struct {
		EmpireID empire.ID `json:"empireId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid conquer payload", err))
		return
	}

	response.Success(w, http.StatusOK, h.ledger.ConquerPlanetToEmpire(r.PathValue("id"), payload.EmpireID))
}

// Lookup resolves a planet number to a planet id, creating a free planet
// when the number is unregistered (planetary combat entry point).
func (h *PlanetHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "planet_lookup")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	numberStr := r.PathValue("number")
	number, err := strconv.Atoi(numberStr)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid planet number", err))
		return
	}

	id := h.ledger.LookupOrCreatePlanetByNumber(number)
	response.Success(w, http.StatusOK, map[string]string{"id": id})
}
