package ledger

// Dice are part of the persisted state so the last roll survives a reload.

// DiceRoll reports the current face of both dice; a nil face has never
// been rolled this game.
type DiceRoll struct {
	Die1 *int `json:"die1,omitempty"`
	Die2 *int `json:"die2,omitempty"`
}

func (l *Ledger) d6() int {
	return 1 + l.rng.Intn(6)
}

// RollDie1 rolls only the first die, overwriting only its persisted value.
func (l *Ledger) RollDie1() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	v := l.d6()
	l.state.Die1 = &v
	l.persist()
	return v
}

// RollDie2 rolls only the second die.
func (l *Ledger) RollDie2() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	v := l.d6()
	l.state.Die2 = &v
	l.persist()
	return v
}

// RollBoth rolls both dice simultaneously.
func (l *Ledger) RollBoth() (die1, die2 int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	die1 = l.d6()
	die2 = l.d6()
	l.state.Die1 = &die1
	l.state.Die2 = &die2
	l.persist()
	return die1, die2
}

// Dice reads the persisted faces without rolling.
func (l *Ledger) Dice() DiceRoll {
	l.mu.Lock()
	defer l.mu.Unlock()
	return DiceRoll{Die1: l.state.Die1, Die2: l.state.Die2}
}
