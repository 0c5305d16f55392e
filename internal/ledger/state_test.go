package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"imperium-server/internal/empire"
	"imperium-server/internal/snapshot"
)

func TestRestoreNormalizesSnapshot(t *testing.T) {
	// A hand-damaged document: short and oversized slot arrays, a node
	// active list longer than its points, negative credits, missing maps.
	raw := []byte(`{
		"turnNumber": 0,
		"turnOrder": ["primus", "xilnah"],
		"currentTurnIndex": 9,
		"credits": {"primus": -4},
		"planets": {
			"p1": {
				"id": "p1",
				"owner": "primus",
				"nodePoints": [{"x": 0.1, "y": 0.2}],
				"nodeActive": [true, true, false]
			}
		},
		"empireFleetSlots": {"primus": [null, null]},
		"empirePlanetSlots": {"xilnah": [null, null, null, null, null, null, null, null, null, null, null, null]}
	}`)

	store := snapshot.NewMemoryStore()
	if err := store.Save(context.Background(), raw); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	l, err := New(store, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer l.Close()

	l.mu.Lock()
	s := l.state
	if s.TurnNumber != 1 {
		t.Errorf("turnNumber = %d, want floored to 1", s.TurnNumber)
	}
	if s.CurrentTurnIndex != 1 {
		t.Errorf("currentTurnIndex = %d, want clamped to 1", s.CurrentTurnIndex)
	}
	if s.Credits[empire.Primus] != 0 {
		t.Errorf("negative credits survived: %d", s.Credits[empire.Primus])
	}
	for _, e := range empire.Empires {
		if got := len(s.EmpireFleetSlots[e.ID]); got != FleetSlotCount {
			t.Errorf("fleet slots of %s = %d, want %d", e.ID, got, FleetSlotCount)
		}
		if got := len(s.EmpirePlanetSlots[e.ID]); got != PlanetSlotCount {
			t.Errorf("planet slots of %s = %d, want %d", e.ID, got, PlanetSlotCount)
		}
		if got := len(s.EmpireCharacterSlots[e.ID]); got != CharacterSlotCount {
			t.Errorf("character slots of %s = %d, want %d", e.ID, got, CharacterSlotCount)
		}
	}
	planet := s.Planets["p1"]
	if planet == nil {
		t.Fatal("planet p1 missing after restore")
	}
	if len(planet.NodeActive) != len(planet.NodePoints) {
		t.Errorf("nodeActive length %d, want %d", len(planet.NodeActive), len(planet.NodePoints))
	}
	if s.Ships == nil || s.Characters == nil || s.PlanetByNumber == nil {
		t.Error("missing maps were not replaced")
	}
	l.mu.Unlock()
}

func TestRestoreRoundTrip(t *testing.T) {
	store := snapshot.NewMemoryStore()

	first, err := New(store, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	startGame(t, first, empire.Xilnah)
	first.SetCredits(empire.Primus, 7)
	shipID, _ := first.CreateShipForEmpire(empire.Primus)
	first.SaveShip(shipID, ShipPatch{Number: setInt(1), Cost: setInt(2)})
	if result := first.BuyShip(shipID); !result.OK {
		t.Fatalf("BuyShip rejected: %s", result.Reason)
	}
	first.Close()

	second, err := New(store, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	defer second.Close()

	if got := second.Credits(empire.Primus); got != 5 {
		t.Fatalf("credits after reload = %d, want 5", got)
	}
	ship, ok := second.Ship(shipID)
	if !ok {
		t.Fatal("ship missing after reload")
	}
	if ship.Number == nil || *ship.Number != 1 {
		t.Fatalf("ship number after reload = %v, want 1", ship.Number)
	}
	current, ok := second.CurrentEmpire()
	if !ok || current != empire.Primus {
		t.Fatalf("current empire after reload = %q, want primus", current)
	}
}

func TestCorruptSnapshotStartsFresh(t *testing.T) {
	store := snapshot.NewMemoryStore()
	if err := store.Save(context.Background(), []byte("not a document")); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	l, err := New(store, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New() must start fresh over a corrupt snapshot, got %v", err)
	}
	defer l.Close()

	status := l.Status()
	if status.HasSetup || status.TurnNumber != 1 {
		t.Fatalf("fresh state expected, got %+v", status)
	}
}

func TestSnapshotJSONShape(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)

	data, err := l.SnapshotJSON()
	if err != nil {
		t.Fatalf("SnapshotJSON failed: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("snapshot is not a JSON object: %v", err)
	}
	for _, key := range []string{"setup", "turnOrder", "credits", "ships", "planets", "characters", "empireFleetSlots", "empirePlanetSlots", "empireCharacterSlots", "planetByNumber"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("snapshot missing %q", key)
		}
	}
}
