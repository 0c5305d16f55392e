package ledger

import "imperium-server/internal/empire"

// SetCredits sets an empire's balance outright, floored at zero. Manual
// adjustment mirrors the physical credit track.
func (l *Ledger) SetCredits(emp empire.ID, value int) {
	if !empire.IsValid(emp) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if value < 0 {
		value = 0
	}
	l.state.Credits[emp] = value
	l.persist()
}

// AddCredits applies a delta to an empire's balance, clamped at zero.
func (l *Ledger) AddCredits(emp empire.ID, delta int) {
	if !empire.IsValid(emp) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.state.Credits[emp] + delta
	if next < 0 {
		next = 0
	}
	l.state.Credits[emp] = next
	l.persist()
}

// Credits reads an empire's balance. Never-touched empires read as zero.
func (l *Ledger) Credits(emp empire.ID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Credits[emp]
}
