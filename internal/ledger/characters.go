package ledger

// Characters are meaningful only for the player's empire; rivals never hire.

// CreateCharacter inserts a blank character sheet into the catalog.
func (l *Ledger) CreateCharacter() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := newBlankCharacter()
	l.state.Characters[ch.ID] = ch
	l.persist()

	l.logger.Debug("Character created", "component", "ledger", "character_id", ch.ID)
	return ch.ID
}

// SaveCharacter merges a partial patch into a character record. Patching a
// missing id mutates nothing.
func (l *Ledger) SaveCharacter(charID string, patch CharacterPatch) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.state.Characters[charID]
	if !ok {
		return false
	}
	patch.apply(ch)
	l.persist()
	return true
}

// Character returns a copy of a character record.
func (l *Ledger) Character(charID string) (Character, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.state.Characters[charID]
	if !ok {
		return Character{}, false
	}
	return *ch, true
}

// HireCharacter places a character into the player's first free character
// slot and deducts its cost. The number must be unique among currently
// hired characters and, when a type is set, fall inside that type's range.
// All checks run before any mutation.
func (l *Ledger) HireCharacter(charID string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	if s.Setup == nil {
		return rejected(reasonGameNotStarted)
	}
	player := s.Setup.PlayerEmpireID

	ch, ok := s.Characters[charID]
	if !ok {
		return rejected(reasonCharacterNotFound)
	}
	if ch.Number == nil {
		return rejected(reasonCharacterNoNumber)
	}

	// Each type owns a disjoint card range; a number outside the range of
	// the declared type cannot exist on a physical card.
	if ch.Type != nil {
		if min, max, known := CharacterNumberRange(*ch.Type); known {
			if *ch.Number < min || *ch.Number > max {
				return rejected(reasonCharacterBadRange)
			}
		}
	}

	// Uniqueness applies among hired characters only, whatever their
	// status; an evicted record never blocks its number.
	for _, slotArr := range s.EmpireCharacterSlots {
		for _, slot := range slotArr {
			if slot == nil || *slot == charID {
				continue
			}
			if other, exists := s.Characters[*slot]; exists && other.Number != nil && *other.Number == *ch.Number {
				return rejected(reasonCharacterNumberTaken)
			}
		}
	}

	cost := 0
	if ch.Cost != nil {
		cost = *ch.Cost
	}
	if s.Credits[player] < cost {
		return rejected(reasonNoCredits)
	}

	slots := s.EmpireCharacterSlots[player]
	idx := firstFreeSlot(slots)
	if idx == -1 {
		return rejected(reasonNoCharacterSlots)
	}

	slots[idx] = ref(charID)
	s.Credits[player] -= cost
	l.persist()

	l.logger.Info("Character hired",
		"component", "ledger",
		"character_id", charID,
		"slot", idx,
		"cost", cost,
	)
	return accepted()
}

// UseCharacter spends a hired character in combat: the slot frees up and
// the record is marked used. The record persists and can be hired again
// later under the same number; status stays "used".
func (l *Ledger) UseCharacter(charID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.state
	if s.Setup == nil {
		return false
	}
	ch, ok := s.Characters[charID]
	if !ok {
		return false
	}

	removeFromSlots(s.EmpireCharacterSlots[s.Setup.PlayerEmpireID], charID)
	ch.Status = CharacterStatusUsed
	l.persist()

	l.logger.Debug("Character used", "component", "ledger", "character_id", charID)
	return true
}
