package ledger

import "imperium-server/internal/empire"

// Status is the navigation read model: enough state for the presentation
// layer to decide which screen is reachable. The ledger itself never
// navigates.
type Status struct {
	HasSetup           bool       `json:"hasSetup"`
	TurnNumber         int        `json:"turnNumber"`
	CurrentEmpireID    *empire.ID `json:"currentEmpireId,omitempty"`
	WinnerEmpireID     *empire.ID `json:"winnerEmpireId,omitempty"`
	GameOverMessage    string     `json:"gameOverMessage,omitempty"`
	EliminatedEmpireID *empire.ID `json:"eliminatedEmpireId,omitempty"`
}

func (l *Ledger) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := Status{
		HasSetup:           l.state.Setup != nil,
		TurnNumber:         l.state.TurnNumber,
		WinnerEmpireID:     l.state.WinnerEmpireID,
		GameOverMessage:    l.state.GameOverMessage,
		EliminatedEmpireID: l.state.EliminatedEmpireID,
	}
	if current, ok := l.currentEmpireLocked(); ok {
		st.CurrentEmpireID = &current
	}
	return st
}
