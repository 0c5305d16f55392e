package ledger

import (
	"testing"

	"imperium-server/internal/empire"
)

func TestNewGameValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup GameSetup
	}{
		{
			name:  "unknown player",
			setup: GameSetup{PlayerEmpireID: "zorg", RivalEmpireIDs: []empire.ID{empire.Xilnah}, PlanetsToConquer: 3},
		},
		{
			name:  "no rivals",
			setup: GameSetup{PlayerEmpireID: empire.Primus, PlanetsToConquer: 3},
		},
		{
			name:  "unknown rival",
			setup: GameSetup{PlayerEmpireID: empire.Primus, RivalEmpireIDs: []empire.ID{"zorg"}, PlanetsToConquer: 3},
		},
		{
			name:  "rival equals player",
			setup: GameSetup{PlayerEmpireID: empire.Primus, RivalEmpireIDs: []empire.ID{empire.Primus}, PlanetsToConquer: 3},
		},
		{
			name:  "duplicate rivals",
			setup: GameSetup{PlayerEmpireID: empire.Primus, RivalEmpireIDs: []empire.ID{empire.Xilnah, empire.Xilnah}, PlanetsToConquer: 3},
		},
		{
			name:  "non-positive target",
			setup: GameSetup{PlayerEmpireID: empire.Primus, RivalEmpireIDs: []empire.ID{empire.Xilnah}, PlanetsToConquer: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			result := l.NewGame(tt.setup)
			if result.OK {
				t.Fatal("NewGame accepted an invalid setup")
			}
			if result.Reason == "" {
				t.Fatal("rejection carries no reason")
			}
			if _, ok := l.CurrentEmpire(); ok {
				t.Fatal("rejected NewGame left a turn order behind")
			}
		})
	}
}

func TestNewGameSeedsNatalPlanets(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)

	for _, e := range empire.Empires {
		id := natalPlanetID(t, l, e.ID)
		planet, ok := l.Planet(id)
		if !ok {
			t.Fatalf("natal planet of %s missing from catalog", e.ID)
		}
		if planet.Owner != PlanetOwner(e.ID) {
			t.Fatalf("natal planet of %s owned by %q", e.ID, planet.Owner)
		}
		if planet.Number == nil || *planet.Number != e.NatalPlanetNumber {
			t.Fatalf("natal planet of %s has number %v, want %d", e.ID, planet.Number, e.NatalPlanetNumber)
		}

		l.mu.Lock()
		slot0 := l.state.EmpirePlanetSlots[e.ID][0]
		l.mu.Unlock()
		if slot0 == nil || *slot0 != id {
			t.Fatalf("natal planet of %s not in slot 0", e.ID)
		}
	}

	current, ok := l.CurrentEmpire()
	if !ok || current != empire.Primus {
		t.Fatalf("current empire = %q, want player first", current)
	}
	status := l.Status()
	if status.TurnNumber != 1 {
		t.Fatalf("turn number = %d, want 1", status.TurnNumber)
	}
}

func TestEndTurnAdvancesAndAccruesProduction(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)

	primusNatal := natalPlanetID(t, l, empire.Primus)
	xilnahNatal := natalPlanetID(t, l, empire.Xilnah)
	if !l.SavePlanet(primusNatal, PlanetPatch{Prod: setInt(5)}) {
		t.Fatal("SavePlanet failed for primus natal")
	}
	if !l.SavePlanet(xilnahNatal, PlanetPatch{Prod: setInt(4)}) {
		t.Fatal("SavePlanet failed for xilnah natal")
	}

	// First turn production was granted during NewGame, before prod was set.
	if got := l.Credits(empire.Primus); got != 0 {
		t.Fatalf("primus credits after setup = %d, want 0", got)
	}

	l.EndTurn()
	l.WaitIdle()

	current, _ := l.CurrentEmpire()
	if current != empire.Xilnah {
		t.Fatalf("current empire after EndTurn = %q, want xilnah", current)
	}
	if got := l.Credits(empire.Xilnah); got != 4 {
		t.Fatalf("xilnah credits after turn start = %d, want 4", got)
	}

	l.EndTurn()
	l.WaitIdle()

	current, _ = l.CurrentEmpire()
	if current != empire.Primus {
		t.Fatalf("current empire after wrap = %q, want primus", current)
	}
	if got := l.Status().TurnNumber; got != 2 {
		t.Fatalf("turn number after wrap = %d, want 2", got)
	}
	if got := l.Credits(empire.Primus); got != 5 {
		t.Fatalf("primus credits after second turn start = %d, want 5", got)
	}
}

func TestEndTurnPlayerEliminationEndsGame(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)

	// Unbinding the natal number leaves the player without a countable
	// planet.
	primusNatal := natalPlanetID(t, l, empire.Primus)
	if result := l.BindPlanetNumber(primusNatal, nil); !result.OK {
		t.Fatalf("BindPlanetNumber(nil) rejected: %s", result.Reason)
	}

	l.EndTurn()
	l.WaitIdle()

	status := l.Status()
	if status.GameOverMessage != "Este imperio ha sido eliminado. La partida termina." {
		t.Fatalf("game over message = %q", status.GameOverMessage)
	}
	if status.EliminatedEmpireID == nil || *status.EliminatedEmpireID != empire.Primus {
		t.Fatalf("eliminated empire = %v, want primus", status.EliminatedEmpireID)
	}
	if status.WinnerEmpireID != nil {
		t.Fatal("player elimination must not declare a winner")
	}

	// Terminal: further end-turn calls change nothing.
	before, _ := l.CurrentEmpire()
	l.EndTurn()
	l.WaitIdle()
	after, _ := l.CurrentEmpire()
	if before != after {
		t.Fatal("EndTurn advanced after game over")
	}
}

func TestEndTurnRivalEliminationContinuesGame(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah, empire.Navui)

	xilnahNatal := natalPlanetID(t, l, empire.Xilnah)
	if result := l.BindPlanetNumber(xilnahNatal, nil); !result.OK {
		t.Fatalf("BindPlanetNumber(nil) rejected: %s", result.Reason)
	}

	// Player's turn ends normally, then xilnah ends its turn with nothing.
	l.EndTurn()
	l.WaitIdle()
	l.EndTurn()
	l.WaitIdle()

	status := l.Status()
	if status.GameOverMessage != "Este imperio ha sido eliminado." {
		t.Fatalf("notice = %q", status.GameOverMessage)
	}
	if status.EliminatedEmpireID == nil || *status.EliminatedEmpireID != empire.Xilnah {
		t.Fatalf("eliminated empire = %v, want xilnah", status.EliminatedEmpireID)
	}
	if status.WinnerEmpireID != nil {
		t.Fatal("rival elimination with two survivors must not declare a winner")
	}

	current, ok := l.CurrentEmpire()
	if !ok || current != empire.Navui {
		t.Fatalf("current empire = %q, want navui", current)
	}

	l.ClearNotice()
	status = l.Status()
	if status.GameOverMessage != "" || status.EliminatedEmpireID != nil {
		t.Fatal("ClearNotice did not clear the elimination notice")
	}
}

func TestEndTurnSoleSurvivorPlayerWins(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)

	xilnahNatal := natalPlanetID(t, l, empire.Xilnah)
	if result := l.BindPlanetNumber(xilnahNatal, nil); !result.OK {
		t.Fatalf("BindPlanetNumber(nil) rejected: %s", result.Reason)
	}

	l.EndTurn() // primus
	l.WaitIdle()
	l.EndTurn() // xilnah, eliminated leaving only the player
	l.WaitIdle()

	status := l.Status()
	if status.WinnerEmpireID == nil || *status.WinnerEmpireID != empire.Primus {
		t.Fatalf("winner = %v, want primus", status.WinnerEmpireID)
	}
	if status.GameOverMessage != "" {
		t.Fatalf("victory must not carry an elimination notice, got %q", status.GameOverMessage)
	}
}

func TestEndTurnConquestTargetVictory(t *testing.T) {
	l := newTestLedger(t)
	result := l.NewGame(GameSetup{
		PlayerEmpireID:   empire.Primus,
		RivalEmpireIDs:   []empire.ID{empire.Xilnah},
		PlanetsToConquer: 1,
	})
	if !result.OK {
		t.Fatalf("NewGame rejected: %s", result.Reason)
	}

	// The natal planet alone meets a target of one.
	l.EndTurn()
	l.WaitIdle()

	status := l.Status()
	if status.WinnerEmpireID == nil || *status.WinnerEmpireID != empire.Primus {
		t.Fatalf("winner = %v, want primus", status.WinnerEmpireID)
	}
}

func TestResetGame(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)

	l.RollBoth()
	l.ShowToast("hola")
	l.ResetGame()

	status := l.Status()
	if status.HasSetup {
		t.Fatal("reset left the setup in place")
	}
	if status.TurnNumber != 1 {
		t.Fatalf("turn number after reset = %d, want 1", status.TurnNumber)
	}
	if _, ok := l.CurrentEmpire(); ok {
		t.Fatal("reset left a current empire")
	}
	dice := l.Dice()
	if dice.Die1 != nil || dice.Die2 != nil {
		t.Fatal("reset left dice faces")
	}

	// Catalogs survive a reset; the next NewGame replaces them.
	primusNatal := natalPlanetID(t, l, empire.Primus)
	if _, ok := l.Planet(primusNatal); !ok {
		t.Fatal("reset deleted the planet catalog")
	}
}

func TestShowToastNonceAlwaysIncrements(t *testing.T) {
	l := newTestLedger(t)

	l.ShowToast("mensaje")
	l.ShowToast("mensaje")
	l.ShowToast("")
	l.WaitIdle()

	l.mu.Lock()
	nonce, msg := l.state.ToastNonce, l.state.ToastMessage
	l.mu.Unlock()
	if nonce != 3 {
		t.Fatalf("toast nonce = %d, want 3", nonce)
	}
	if msg != "" {
		t.Fatalf("toast message = %q, want cleared", msg)
	}
}

func TestCountsForEmpire(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)
	l.SetCredits(empire.Primus, 10)

	shipID, _ := l.CreateShipForEmpire(empire.Primus)
	l.SaveShip(shipID, ShipPatch{Number: setInt(1), Cost: setInt(0), PRMax: setInt(2)})
	if result := l.BuyShip(shipID); !result.OK {
		t.Fatalf("BuyShip rejected: %s", result.Reason)
	}

	counts := l.CountsForEmpire(empire.Primus)
	if counts.Ships != 1 || counts.Planets != 1 {
		t.Fatalf("counts = %+v, want 1 ship and 1 planet", counts)
	}

	// A destroyed ship leaves the active count; an unnumbered planet never
	// entered the planet count.
	l.MarkShipPR(shipID, 2)
	counts = l.CountsForEmpire(empire.Primus)
	if counts.Ships != 0 {
		t.Fatalf("active ships after destruction = %d, want 0", counts.Ships)
	}
}
