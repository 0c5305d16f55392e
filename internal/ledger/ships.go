package ledger

import "imperium-server/internal/empire"

// CreateShipForEmpire inserts a blank ship sheet into the catalog. The ship
// is a draft: it occupies no fleet slot until bought.
func (l *Ledger) CreateShipForEmpire(emp empire.ID) (string, bool) {
	if !empire.IsValid(emp) {
		return "", false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ship := newBlankShip(emp)
	l.state.Ships[ship.ID] = ship
	l.persist()

	l.logger.Debug("Ship created", "component", "ledger", "ship_id", ship.ID, "owner", emp)
	return ship.ID, true
}

// SaveShip merges a partial patch into a ship record. Patching a missing id
// mutates nothing; the false return lets callers surface it.
func (l *Ledger) SaveShip(shipID string, patch ShipPatch) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ship, ok := l.state.Ships[shipID]
	if !ok {
		return false
	}
	patch.apply(ship)
	l.persist()
	return true
}

// Ship returns a copy of a ship record.
func (l *Ledger) Ship(shipID string) (Ship, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ship, ok := l.state.Ships[shipID]
	if !ok {
		return Ship{}, false
	}
	return *ship, true
}

// lockedShipIDsLocked collects the ids of ships that are "in play": slotted
// in any fleet or listed as destroyed. Only these block a number.
func (l *Ledger) lockedShipIDsLocked() map[string]bool {
	locked := map[string]bool{}
	for _, slots := range l.state.EmpireFleetSlots {
		for _, slot := range slots {
			if slot != nil {
				locked[*slot] = true
			}
		}
	}
	for _, ids := range l.state.EmpireDestroyedShipIDs {
		for _, id := range ids {
			locked[id] = true
		}
	}
	return locked
}

// BuyShip places a ship into its owner's fleet and deducts its cost. Every
// check runs before any mutation; a rejection leaves the ledger untouched.
func (l *Ledger) BuyShip(shipID string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	ship, ok := s.Ships[shipID]
	if !ok {
		return rejected(reasonShipNotFound)
	}
	if ship.Destroyed {
		return rejected(reasonShipDestroyed)
	}
	if ship.Number == nil {
		return rejected(reasonShipNoNumber)
	}

	for _, slots := range s.EmpireFleetSlots {
		if slotsContain(slots, shipID) {
			return rejected(reasonShipAlreadyInFleet)
		}
	}

	// Number uniqueness applies only among ships already in play; draft
	// sheets never block a number.
	locked := l.lockedShipIDsLocked()
	for id, other := range s.Ships {
		if id == shipID || other.Number == nil {
			continue
		}
		if *other.Number == *ship.Number && (locked[id] || other.Destroyed) {
			return rejected(reasonShipNumberTaken)
		}
	}

	cost := 0
	if ship.Cost != nil {
		cost = *ship.Cost
	}
	if s.Credits[ship.Owner] < cost {
		return rejected(reasonNoCredits)
	}

	slots := s.EmpireFleetSlots[ship.Owner]
	idx := firstFreeSlot(slots)
	if idx == -1 {
		return rejected(reasonNoFleetSlots)
	}

	slots[idx] = ref(shipID)
	s.Credits[ship.Owner] -= cost
	l.persist()

	l.logger.Info("Ship bought",
		"component", "ledger",
		"ship_id", shipID,
		"owner", ship.Owner,
		"slot", idx,
		"cost", cost,
	)
	return accepted()
}

// MarkShipPR sets the marked damage, clamped to [0, prMax], and recomputes
// the destroyed flag: destroyed iff prMax > 0 and the mark reached it. A
// ship that becomes destroyed leaves its fleet slot and joins its owner's
// destroyed list.
func (l *Ledger) MarkShipPR(shipID string, marked int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	ship, ok := s.Ships[shipID]
	if !ok {
		return false
	}

	prMax := 0
	if ship.PRMax != nil {
		prMax = *ship.PRMax
	}
	if marked < 0 {
		marked = 0
	}
	if marked > prMax {
		marked = prMax
	}
	ship.PRMarked = marked
	ship.Destroyed = prMax > 0 && marked >= prMax

	if ship.Destroyed {
		removeFromSlots(s.EmpireFleetSlots[ship.Owner], shipID)
		if !containsString(s.EmpireDestroyedShipIDs[ship.Owner], shipID) {
			s.EmpireDestroyedShipIDs[ship.Owner] = append(s.EmpireDestroyedShipIDs[ship.Owner], shipID)
		}
		l.logger.Info("Ship destroyed", "component", "ledger", "ship_id", shipID, "owner", ship.Owner)
	}

	l.persist()
	return true
}

// RecoverShipToEmpire returns a destroyed ship to play under a new owner:
// damage resets, the destroyed flag clears, and the ship takes the target's
// first free fleet slot. The transfer is unconditional and free.
func (l *Ledger) RecoverShipToEmpire(shipID string, target empire.ID) Result {
	if !empire.IsValid(target) {
		return rejected("Imperio desconocido.")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	ship, ok := s.Ships[shipID]
	if !ok {
		return rejected(reasonShipNotFound)
	}

	targetSlots := s.EmpireFleetSlots[target]
	idx := firstFreeSlot(targetSlots)
	if idx == -1 {
		return rejected(reasonTargetFleetFull)
	}

	prevOwner := ship.Owner
	s.EmpireDestroyedShipIDs[prevOwner] = removeString(s.EmpireDestroyedShipIDs[prevOwner], shipID)

	targetSlots[idx] = ref(shipID)
	ship.Owner = target
	ship.Destroyed = false
	ship.PRMarked = 0
	l.persist()

	l.logger.Info("Ship recovered",
		"component", "ledger",
		"ship_id", shipID,
		"previous_owner", prevOwner,
		"owner", target,
		"slot", idx,
	)
	return accepted()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
