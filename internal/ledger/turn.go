package ledger

import (
	"fmt"

	"imperium-server/internal/empire"
)

// NewGame resets the ledger for a fresh game: turn order is player first
// then rivals, every empire gets its natal planet in slot 0, credits drop
// to zero, and the first empire's turn-start production is applied
// immediately.
func (l *Ledger) NewGame(setup GameSetup) Result {
	logger := l.logger.With("component", "ledger", "operation", "new_game", "player", setup.PlayerEmpireID)

	if !empire.IsValid(setup.PlayerEmpireID) {
		return rejected(fmt.Sprintf("Imperio desconocido: %s.", setup.PlayerEmpireID))
	}
	if len(setup.RivalEmpireIDs) == 0 {
		return rejected("Elige al menos un imperio rival.")
	}
	seen := map[empire.ID]bool{setup.PlayerEmpireID: true}
	for _, rival := range setup.RivalEmpireIDs {
		if !empire.IsValid(rival) {
			return rejected(fmt.Sprintf("Imperio desconocido: %s.", rival))
		}
		if seen[rival] {
			return rejected("Los imperios rivales deben ser distintos entre sí y del jugador.")
		}
		seen[rival] = true
	}
	if setup.PlanetsToConquer < 1 {
		return rejected("El objetivo de planetas a conquistar debe ser positivo.")
	}

	l.mu.Lock()

	state := NewState()
	state.Setup = &setup
	state.TurnOrder = append([]empire.ID{setup.PlayerEmpireID}, setup.RivalEmpireIDs...)

	// Every empire starts with its natal planet bound to its static number
	// in slot 0, participants or not: rival sheets stay usable for manual
	// reference during combat.
	for _, e := range empire.Empires {
		natal := newBlankPlanet(PlanetOwner(e.ID))
		n := e.NatalPlanetNumber
		natal.Number = &n
		state.Planets[natal.ID] = natal
		state.PlanetByNumber[n] = natal.ID
		state.EmpirePlanetSlots[e.ID][0] = ref(natal.ID)
	}

	l.state = state

	// The very first turn grants its production before any player input.
	l.startTurnLocked()
	l.persist()
	l.mu.Unlock()

	logger.Info("New game started",
		"rivals", len(setup.RivalEmpireIDs),
		"planets_to_conquer", setup.PlanetsToConquer,
	)
	return accepted()
}

// ResetGame returns to the pre-game state, clearing setup, turn state,
// notices and dice. Catalogs are left in place, as the original does; a
// following NewGame replaces them wholesale.
func (l *Ledger) ResetGame() {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	s.Setup = nil
	s.TurnOrder = []empire.ID{}
	s.CurrentTurnIndex = 0
	s.TurnNumber = 1
	s.WinnerEmpireID = nil
	s.GameOverMessage = ""
	s.EliminatedEmpireID = nil
	s.ToastMessage = ""
	s.ToastNonce = 0
	s.Die1 = nil
	s.Die2 = nil

	l.persist()
	l.logger.Info("Game reset", "component", "ledger")
}

// CurrentEmpire resolves the empire whose turn it is.
func (l *Ledger) CurrentEmpire() (empire.ID, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentEmpireLocked()
}

func (l *Ledger) currentEmpireLocked() (empire.ID, bool) {
	s := l.state
	if len(s.TurnOrder) == 0 || s.CurrentTurnIndex >= len(s.TurnOrder) {
		return "", false
	}
	return s.TurnOrder[s.CurrentTurnIndex], true
}

// StartTurnForCurrentEmpire adds the current empire's total planet
// production to its credit balance. Invoked once at the start of every
// empire's turn, including the very first.
func (l *Ledger) StartTurnForCurrentEmpire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startTurnLocked()
	l.persist()
}

func (l *Ledger) startTurnLocked() {
	current, ok := l.currentEmpireLocked()
	if !ok {
		return
	}
	prod := l.sumProductionLocked(current)
	l.state.Credits[current] += prod

	l.logger.Debug("Turn-start production applied",
		"component", "ledger",
		"empire", current,
		"production", prod,
		"balance", l.state.Credits[current],
	)
}

// sumProductionLocked totals prod over the empire's slotted planets that it
// still owns and that are not permanently destroyed.
func (l *Ledger) sumProductionLocked(emp empire.ID) int {
	sum := 0
	for _, slot := range l.state.EmpirePlanetSlots[emp] {
		if slot == nil {
			continue
		}
		planet, ok := l.state.Planets[*slot]
		if !ok {
			continue
		}
		if planet.Owner != PlanetOwner(emp) || planet.DestroyedPermanently {
			continue
		}
		if planet.Prod != nil {
			sum += *planet.Prod
		}
	}
	return sum
}

// countOwnedPlanetsLocked counts the empire's slotted planets with a
// confirmed number, still owned and not permanently destroyed. Unnumbered
// placeholders do not count.
func (l *Ledger) countOwnedPlanetsLocked(emp empire.ID) int {
	n := 0
	for _, slot := range l.state.EmpirePlanetSlots[emp] {
		if slot == nil {
			continue
		}
		planet, ok := l.state.Planets[*slot]
		if !ok || planet.Number == nil {
			continue
		}
		if planet.Owner == PlanetOwner(emp) && !planet.DestroyedPermanently {
			n++
		}
	}
	return n
}

// countActiveShipsLocked counts non-destroyed slotted ships.
func (l *Ledger) countActiveShipsLocked(emp empire.ID) int {
	n := 0
	for _, slot := range l.state.EmpireFleetSlots[emp] {
		if slot == nil {
			continue
		}
		if ship, ok := l.state.Ships[*slot]; ok && !ship.Destroyed {
			n++
		}
	}
	return n
}

// EndTurn closes the current empire's turn: elimination first, then the
// conquest-target victory check, then single-survivor victory, and only
// then cyclic advancement. The next empire's production accrual runs on
// the ledger's task queue, not inline; readers immediately after EndTurn
// may observe the pre-accrual balance (see WaitIdle).
func (l *Ledger) EndTurn() {
	l.mu.Lock()

	s := l.state
	if s.WinnerEmpireID != nil || s.GameOverMessage != "" || len(s.TurnOrder) == 0 {
		l.mu.Unlock()
		return
	}
	current, ok := l.currentEmpireLocked()
	if !ok {
		l.mu.Unlock()
		return
	}
	logger := l.logger.With("component", "ledger", "operation", "end_turn", "empire", current)

	var playerID empire.ID
	if s.Setup != nil {
		playerID = s.Setup.PlayerEmpireID
	}

	// 1) Elimination: ending a turn with zero owned planets removes the
	// empire from the game. Elimination consumes the end-turn call.
	owned := l.countOwnedPlanetsLocked(current)
	if owned <= 0 {
		if playerID != "" && current == playerID {
			// Terminal: the player's own elimination ends the game.
			elim := current
			s.EliminatedEmpireID = &elim
			s.GameOverMessage = "Este imperio ha sido eliminado. La partida termina."
			l.persist()
			l.mu.Unlock()
			logger.Info("Player empire eliminated, game over")
			return
		}

		remaining := make([]empire.ID, 0, len(s.TurnOrder)-1)
		for _, e := range s.TurnOrder {
			if e != current {
				remaining = append(remaining, e)
			}
		}

		if len(remaining) == 0 {
			elim := current
			s.EliminatedEmpireID = &elim
			s.GameOverMessage = "Este imperio ha sido eliminado."
			l.persist()
			l.mu.Unlock()
			logger.Info("Last empire eliminated")
			return
		}

		if playerID != "" && len(remaining) == 1 && remaining[0] == playerID {
			winner := playerID
			s.WinnerEmpireID = &winner
			s.GameOverMessage = ""
			s.EliminatedEmpireID = nil
			l.persist()
			l.mu.Unlock()
			logger.Info("Player wins as sole survivor")
			return
		}

		// Keep the same numeric index, clamped to the shorter order. The
		// notice is non-terminal: ClearNotice lets the game continue.
		newIndex := s.CurrentTurnIndex
		if newIndex > len(remaining)-1 {
			newIndex = len(remaining) - 1
		}
		elim := current
		s.TurnOrder = remaining
		s.CurrentTurnIndex = newIndex
		s.EliminatedEmpireID = &elim
		s.GameOverMessage = "Este imperio ha sido eliminado."
		l.persist()
		l.mu.Unlock()
		logger.Info("Empire eliminated", "remaining", len(remaining))
		return
	}

	// 2) Conquest-target victory at end of turn.
	if s.Setup != nil && s.Setup.PlanetsToConquer > 0 && owned >= s.Setup.PlanetsToConquer {
		winner := current
		s.WinnerEmpireID = &winner
		l.persist()
		l.mu.Unlock()
		logger.Info("Empire wins by conquest target", "owned_planets", owned)
		return
	}

	// 3) A lone remaining empire wins outright.
	if len(s.TurnOrder) == 1 {
		winner := s.TurnOrder[0]
		s.WinnerEmpireID = &winner
		l.persist()
		l.mu.Unlock()
		logger.Info("Sole remaining empire wins")
		return
	}

	nextIndex := (s.CurrentTurnIndex + 1) % len(s.TurnOrder)
	if nextIndex == 0 {
		s.TurnNumber++
	}
	s.CurrentTurnIndex = nextIndex
	next := s.TurnOrder[nextIndex]
	l.persist()
	l.mu.Unlock()

	logger.Debug("Turn advanced", "next", next)

	// Deferred: the new empire's production lands on the next tick. This
	// runs unlocked, so it must be scheduled after releasing the mutex.
	l.schedule(l.StartTurnForCurrentEmpire)
}

// ClearNotice acknowledges a non-terminal game-over notice so turn flow can
// continue.
func (l *Ledger) ClearNotice() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.GameOverMessage = ""
	l.state.EliminatedEmpireID = nil
	l.persist()
}

// ShowToast publishes a transient notification. The nonce increments on
// every call, empty-string clears included, so identical messages still
// re-trigger the display.
func (l *Ledger) ShowToast(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.ToastMessage = message
	l.state.ToastNonce++
	l.persist()
}

// EmpireCounts is the read model for an empire's summary row.
type EmpireCounts struct {
	Ships   int `json:"ships"`
	Planets int `json:"planets"`
}

// CountsForEmpire reports active slotted ships and owned numbered planets.
func (l *Ledger) CountsForEmpire(emp empire.ID) EmpireCounts {
	l.mu.Lock()
	defer l.mu.Unlock()
	return EmpireCounts{
		Ships:   l.countActiveShipsLocked(emp),
		Planets: l.countOwnedPlanetsLocked(emp),
	}
}
