package ledger

import (
	"testing"

	"imperium-server/internal/empire"
)

func TestHireCharacterDeductsCost(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)
	l.SetCredits(empire.Primus, 5)

	charID := l.CreateCharacter()
	l.SaveCharacter(charID, CharacterPatch{
		Type:   setValue(CharacterTypeEspia),
		Number: setInt(7),
		Cost:   setInt(3),
	})

	if result := l.HireCharacter(charID); !result.OK {
		t.Fatalf("HireCharacter rejected: %s", result.Reason)
	}
	if got := l.Credits(empire.Primus); got != 2 {
		t.Fatalf("credits after hire = %d, want 2", got)
	}

	l.mu.Lock()
	slot0 := l.state.EmpireCharacterSlots[empire.Primus][0]
	l.mu.Unlock()
	if slot0 == nil || *slot0 != charID {
		t.Fatal("hired character is not in the first slot")
	}

	// A second hire the player cannot afford leaves the balance alone.
	secondID := l.CreateCharacter()
	l.SaveCharacter(secondID, CharacterPatch{
		Type:   setValue(CharacterTypeEspia),
		Number: setInt(8),
		Cost:   setInt(3),
	})
	result := l.HireCharacter(secondID)
	if result.OK || result.Reason != reasonNoCredits {
		t.Fatalf("result = %+v, want %q", result, reasonNoCredits)
	}
	if got := l.Credits(empire.Primus); got != 2 {
		t.Fatalf("rejected hire changed the balance: %d", got)
	}
}

func TestHireCharacterRejections(t *testing.T) {
	tests := []struct {
		name       string
		prepare    func(t *testing.T, l *Ledger) string
		wantReason string
	}{
		{
			name: "missing character",
			prepare: func(t *testing.T, l *Ledger) string {
				return "no-such-id"
			},
			wantReason: reasonCharacterNotFound,
		},
		{
			name: "no number",
			prepare: func(t *testing.T, l *Ledger) string {
				id := l.CreateCharacter()
				l.SaveCharacter(id, CharacterPatch{Cost: setInt(1)})
				return id
			},
			wantReason: reasonCharacterNoNumber,
		},
		{
			name: "number outside the type range",
			prepare: func(t *testing.T, l *Ledger) string {
				id := l.CreateCharacter()
				l.SaveCharacter(id, CharacterPatch{
					Type:   setValue(CharacterTypeGeneral),
					Number: setInt(7),
					Cost:   setInt(0),
				})
				return id
			},
			wantReason: reasonCharacterBadRange,
		},
		{
			name: "number already hired",
			prepare: func(t *testing.T, l *Ledger) string {
				first := l.CreateCharacter()
				l.SaveCharacter(first, CharacterPatch{Number: setInt(7), Cost: setInt(0)})
				if result := l.HireCharacter(first); !result.OK {
					t.Fatalf("setup hire rejected: %s", result.Reason)
				}
				second := l.CreateCharacter()
				l.SaveCharacter(second, CharacterPatch{Number: setInt(7), Cost: setInt(0)})
				return second
			},
			wantReason: reasonCharacterNumberTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			startGame(t, l, empire.Xilnah)
			l.SetCredits(empire.Primus, 10)

			charID := tt.prepare(t, l)
			result := l.HireCharacter(charID)
			if result.OK {
				t.Fatal("HireCharacter accepted")
			}
			if result.Reason != tt.wantReason {
				t.Fatalf("reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if got := l.Credits(empire.Primus); got != 10 {
				t.Fatalf("rejected hire changed the balance: %d", got)
			}
		})
	}
}

func TestHireCharacterRequiresGame(t *testing.T) {
	l := newTestLedger(t)

	charID := l.CreateCharacter()
	l.SaveCharacter(charID, CharacterPatch{Number: setInt(1), Cost: setInt(0)})

	result := l.HireCharacter(charID)
	if result.OK || result.Reason != reasonGameNotStarted {
		t.Fatalf("result = %+v, want %q", result, reasonGameNotStarted)
	}
}

func TestHireCharacterSlotsFull(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)

	for i := 1; i <= CharacterSlotCount; i++ {
		id := l.CreateCharacter()
		l.SaveCharacter(id, CharacterPatch{Number: setInt(i), Cost: setInt(0)})
		if result := l.HireCharacter(id); !result.OK {
			t.Fatalf("fill hire %d rejected: %s", i, result.Reason)
		}
	}

	extra := l.CreateCharacter()
	l.SaveCharacter(extra, CharacterPatch{Number: setInt(CharacterSlotCount + 1), Cost: setInt(0)})
	result := l.HireCharacter(extra)
	if result.OK || result.Reason != reasonNoCharacterSlots {
		t.Fatalf("result = %+v, want %q", result, reasonNoCharacterSlots)
	}
}

func TestUseCharacterFreesSlotAndKeepsRecord(t *testing.T) {
	l := newTestLedger(t)
	startGame(t, l, empire.Xilnah)

	charID := l.CreateCharacter()
	l.SaveCharacter(charID, CharacterPatch{Number: setInt(7), Cost: setInt(0)})
	if result := l.HireCharacter(charID); !result.OK {
		t.Fatalf("setup hire rejected: %s", result.Reason)
	}

	if !l.UseCharacter(charID) {
		t.Fatal("UseCharacter reported a missing character")
	}

	ch, ok := l.Character(charID)
	if !ok {
		t.Fatal("used character left the catalog")
	}
	if ch.Status != CharacterStatusUsed {
		t.Fatalf("status = %q, want used", ch.Status)
	}
	l.mu.Lock()
	slotted := slotsContain(l.state.EmpireCharacterSlots[empire.Primus], charID)
	l.mu.Unlock()
	if slotted {
		t.Fatal("used character still occupies a slot")
	}

	// The freed number can be taken again, including by the same record; a
	// re-hire keeps the used status.
	if result := l.HireCharacter(charID); !result.OK {
		t.Fatalf("re-hire rejected: %s", result.Reason)
	}
	ch, _ = l.Character(charID)
	if ch.Status != CharacterStatusUsed {
		t.Fatalf("re-hire reset status to %q", ch.Status)
	}

	if l.UseCharacter("no-such-id") {
		t.Fatal("UseCharacter reported success for a missing id")
	}
}

func TestCharacterNumberRange(t *testing.T) {
	tests := []struct {
		t        CharacterType
		min, max int
		ok       bool
	}{
		{CharacterTypeGeneral, 1, 6, true},
		{CharacterTypeEspia, 7, 12, true},
		{CharacterTypeDiplomatico, 13, 18, true},
		{CharacterType("Pirata"), 0, 0, false},
	}

	for _, tt := range tests {
		min, max, ok := CharacterNumberRange(tt.t)
		if min != tt.min || max != tt.max || ok != tt.ok {
			t.Fatalf("CharacterNumberRange(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.t, min, max, ok, tt.min, tt.max, tt.ok)
		}
	}
}
