package ledger

import (
	"fmt"

	"imperium-server/internal/empire"
)

// CreatePlanetForEmpire inserts a blank, unnumbered planet sheet owned by
// the empire. It occupies no slot.
func (l *Ledger) CreatePlanetForEmpire(emp empire.ID) (string, bool) {
	if !empire.IsValid(emp) {
		return "", false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	planet := newBlankPlanet(PlanetOwner(emp))
	l.state.Planets[planet.ID] = planet
	l.persist()

	l.logger.Debug("Planet created", "component", "ledger", "planet_id", planet.ID, "owner", emp)
	return planet.ID, true
}

// CreatePlanetInSlot opens a specific planet slot with a fresh placeholder.
// An occupied slot returns its current occupant instead of creating
// anything.
func (l *Ledger) CreatePlanetInSlot(emp empire.ID, slotIndex int) (string, bool) {
	if !empire.IsValid(emp) || slotIndex < 0 || slotIndex >= PlanetSlotCount {
		return "", false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	slots := l.state.EmpirePlanetSlots[emp]
	if existing := slots[slotIndex]; existing != nil {
		return *existing, true
	}

	planet := newBlankPlanet(PlanetOwner(emp))
	slots[slotIndex] = ref(planet.ID)
	l.state.Planets[planet.ID] = planet
	l.persist()

	l.logger.Debug("Planet created in slot",
		"component", "ledger",
		"planet_id", planet.ID,
		"owner", emp,
		"slot", slotIndex,
	)
	return planet.ID, true
}

// SavePlanet merges a partial patch into a planet record, keeping the node
// lists reconciled. Patching a missing id mutates nothing.
func (l *Ledger) SavePlanet(planetID string, patch PlanetPatch) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	planet, ok := l.state.Planets[planetID]
	if !ok {
		return false
	}
	patch.apply(planet)
	l.persist()
	return true
}

// Planet returns a copy of a planet record.
func (l *Ledger) Planet(planetID string) (Planet, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	planet, ok := l.state.Planets[planetID]
	if !ok {
		return Planet{}, false
	}
	return *planet, true
}

// BindPlanetNumber assigns or clears a planet's display number against the
// global registry. Clearing (nil) always succeeds and frees the previous
// entry. Assigning a number already registered to a different planet is
// rejected without touching either planet or the registry; the original
// silently dropped the request, this reports it.
func (l *Ledger) BindPlanetNumber(planetID string, number *int) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	planet, ok := s.Planets[planetID]
	if !ok {
		return rejected(reasonPlanetNotFound)
	}

	prev := planet.Number

	if number == nil {
		if prev != nil {
			delete(s.PlanetByNumber, *prev)
			planet.Number = nil
			l.persist()
		}
		return accepted()
	}

	next := *number
	if existingID, taken := s.PlanetByNumber[next]; taken && existingID != planetID {
		return rejected(reasonPlanetNumberTaken)
	}

	// Free the previous number so edits do not leave stale entries behind.
	if prev != nil && *prev != next {
		delete(s.PlanetByNumber, *prev)
	}
	planet.Number = &next
	s.PlanetByNumber[next] = planetID
	l.persist()

	l.logger.Debug("Planet number bound", "component", "ledger", "planet_id", planetID, "number", next)
	return accepted()
}

// DiscardPlanetIfUnnumbered hard-deletes a placeholder that never got a
// confirmed number, freeing any slot referencing it. Planets with a number
// are untouched. This is the only hard delete in the system.
func (l *Ledger) DiscardPlanetIfUnnumbered(planetID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	planet, ok := s.Planets[planetID]
	if !ok || planet.Number != nil {
		return
	}

	for _, e := range empire.Empires {
		removeFromSlots(s.EmpirePlanetSlots[e.ID], planetID)
	}

	// The registry cannot hold an unnumbered planet, but sweep it anyway.
	for n, id := range s.PlanetByNumber {
		if id == planetID {
			delete(s.PlanetByNumber, n)
		}
	}

	delete(s.Planets, planetID)
	l.persist()

	l.logger.Debug("Unnumbered planet discarded", "component", "ledger", "planet_id", planetID)
}

// SetPlanetDestroyed marks or unmarks permanent destruction. Destruction
// evicts the planet from every empire's slots and forces the "destroyed"
// owner; its number stays registered forever, so no other planet can take
// it. Unsetting only clears the flag; slot placement returns via conquest.
func (l *Ledger) SetPlanetDestroyed(planetID string, destroyed bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	planet, ok := s.Planets[planetID]
	if !ok {
		return false
	}

	if !destroyed {
		planet.DestroyedPermanently = false
		l.persist()
		return true
	}

	for _, e := range empire.Empires {
		removeFromSlots(s.EmpirePlanetSlots[e.ID], planetID)
	}
	planet.DestroyedPermanently = true
	planet.Owner = PlanetOwnerDestroyed
	l.persist()

	l.logger.Info("Planet permanently destroyed", "component", "ledger", "planet_id", planetID)
	return true
}

// ConquerPlanetToEmpire moves a planet into the target empire's holdings.
// Conquering a planet the empire already holds is idempotent success. The
// natal slot (index 0) is reclaimed first when free.
func (l *Ledger) ConquerPlanetToEmpire(planetID string, emp empire.ID) Result {
	if !empire.IsValid(emp) {
		return rejected("Imperio desconocido.")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	planet, ok := s.Planets[planetID]
	if !ok {
		return rejected(reasonPlanetNotFound)
	}
	if planet.DestroyedPermanently || planet.Owner == PlanetOwnerDestroyed {
		return rejected(reasonPlanetDestroyed)
	}

	slots := s.EmpirePlanetSlots[emp]

	// Already held: correct a stale owner field but never insert a second
	// reference.
	if slotsContain(slots, planetID) {
		if planet.Owner != PlanetOwner(emp) {
			planet.Owner = PlanetOwner(emp)
			l.persist()
		}
		return accepted()
	}

	// One empire must not hold two different records with the same
	// visible number, even if the registry drifted.
	if planet.Number != nil {
		for _, slot := range slots {
			if slot == nil || *slot == planetID {
				continue
			}
			if other, exists := s.Planets[*slot]; exists && other.Number != nil && *other.Number == *planet.Number {
				return rejected(fmt.Sprintf("Este imperio ya tiene el planeta %d.", *planet.Number))
			}
		}
	}

	idx := firstFreePlanetSlot(slots)
	if idx == -1 {
		return rejected(reasonNoPlanetSlots)
	}

	prevOwner := planet.Owner
	if prevEmp, isEmpire := prevOwner.Empire(); isEmpire && prevEmp != emp {
		removeFromSlots(s.EmpirePlanetSlots[prevEmp], planetID)
	}

	slots[idx] = ref(planetID)
	planet.Owner = PlanetOwner(emp)
	l.persist()

	l.logger.Info("Planet conquered",
		"component", "ledger",
		"planet_id", planetID,
		"owner", emp,
		"previous_owner", prevOwner,
		"slot", idx,
	)
	return accepted()
}

// LookupOrCreatePlanetByNumber resolves a planet number entered during
// planetary combat. An unregistered number creates a free planet bound to
// it, so the sheet exists before anyone owns it.
func (l *Ledger) LookupOrCreatePlanetByNumber(number int) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	if id, ok := s.PlanetByNumber[number]; ok {
		return id
	}

	planet := newBlankPlanet(PlanetOwnerFree)
	n := number
	planet.Number = &n
	s.Planets[planet.ID] = planet
	s.PlanetByNumber[number] = planet.ID
	l.persist()

	l.logger.Debug("Free planet created for number",
		"component", "ledger",
		"planet_id", planet.ID,
		"number", number,
	)
	return planet.ID
}
