package ledger

import "encoding/json"

// Optional distinguishes "field absent from the patch" from "field set to
// null". An absent field leaves the record untouched; an explicit null
// clears it. Keeps a stored zero (cost 0 is real) distinct from unset.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// ShipPatch carries the sheet-editable ship fields. Ownership, fleet
// placement and the destroyed flag only change through their dedicated
// commands (BuyShip, MarkShipPR, RecoverShipToEmpire).
type ShipPatch struct {
	Number          Optional[int]              `json:"number"`
	Type            Optional[ShipType]         `json:"type"`
	Name            Optional[string]           `json:"name"`
	Cost            Optional[int]              `json:"cost"`
	AtkBase         Optional[int]              `json:"atkBase"`
	DefBase         Optional[int]              `json:"defBase"`
	PRMax           Optional[int]              `json:"prMax"`
	Level1          Optional[ShipUpgradeTrack] `json:"level1"`
	Level2          Optional[ShipUpgradeTrack] `json:"level2"`
	SpecialUnlocked Optional[bool]             `json:"specialUnlocked"`
	SpecialNodes    Optional[int]              `json:"specialNodes"`
	SpecialNote     Optional[string]           `json:"specialNote"`
}

func (p ShipPatch) apply(s *Ship) {
	if p.Number.Set {
		s.Number = p.Number.Value
	}
	if p.Type.Set {
		s.Type = p.Type.Value
	}
	if p.Name.Set {
		s.Name = stringOrEmpty(p.Name.Value)
	}
	if p.Cost.Set {
		s.Cost = p.Cost.Value
	}
	if p.AtkBase.Set {
		s.AtkBase = p.AtkBase.Value
	}
	if p.DefBase.Set {
		s.DefBase = p.DefBase.Value
	}
	if p.PRMax.Set {
		s.PRMax = p.PRMax.Value
	}
	if p.Level1.Set && p.Level1.Value != nil {
		s.Level1 = *p.Level1.Value
	}
	if p.Level2.Set && p.Level2.Value != nil {
		s.Level2 = *p.Level2.Value
	}
	if p.SpecialUnlocked.Set {
		s.SpecialUnlocked = boolOrFalse(p.SpecialUnlocked.Value)
	}
	if p.SpecialNodes.Set {
		s.SpecialNodes = intOrZero(p.SpecialNodes.Value)
	}
	if p.SpecialNote.Set {
		s.SpecialNote = stringOrEmpty(p.SpecialNote.Value)
	}
}

// PlanetPatch carries the sheet-editable planet fields. Number binding,
// ownership and permanent destruction go through their dedicated commands
// so the global number registry and slot arrays stay consistent.
type PlanetPatch struct {
	Prod        Optional[int]         `json:"prod"`
	Atk         Optional[int]         `json:"atk"`
	Def         Optional[int]         `json:"def"`
	PRMax       Optional[int]         `json:"prMax"`
	PRMarked    Optional[int]         `json:"prMarked"`
	AbilityText Optional[string]      `json:"abilityText"`
	NodePoints  Optional[[]NodePoint] `json:"nodePoints"`
	NodeActive  Optional[[]bool]      `json:"nodeActive"`
}

func (p PlanetPatch) apply(pl *Planet) {
	if p.Prod.Set {
		pl.Prod = p.Prod.Value
	}
	if p.Atk.Set {
		pl.Atk = p.Atk.Value
	}
	if p.Def.Set {
		pl.Def = p.Def.Value
	}
	if p.PRMax.Set {
		pl.PRMax = p.PRMax.Value
	}
	if p.PRMarked.Set {
		pl.PRMarked = intOrZero(p.PRMarked.Value)
	}
	if p.AbilityText.Set {
		pl.AbilityText = stringOrEmpty(p.AbilityText.Value)
	}
	if p.NodePoints.Set {
		if p.NodePoints.Value != nil {
			pl.NodePoints = *p.NodePoints.Value
		} else {
			pl.NodePoints = []NodePoint{}
		}
	}
	if p.NodeActive.Set {
		if p.NodeActive.Value != nil {
			pl.NodeActive = *p.NodeActive.Value
		} else {
			pl.NodeActive = []bool{}
		}
	}
	// Whatever the patch did, the active list follows the points list.
	pl.normalizeNodes()
}

type CharacterPatch struct {
	Type   Optional[CharacterType] `json:"type"`
	Level  Optional[int]           `json:"level"`
	Number Optional[int]           `json:"number"`
	Cost   Optional[int]           `json:"cost"`
	Note   Optional[string]        `json:"note"`
}

func (p CharacterPatch) apply(c *Character) {
	if p.Type.Set {
		c.Type = p.Type.Value
	}
	if p.Level.Set {
		c.Level = p.Level.Value
	}
	if p.Number.Set {
		c.Number = p.Number.Value
	}
	if p.Cost.Set {
		c.Cost = p.Cost.Value
	}
	if p.Note.Set {
		c.Note = stringOrEmpty(p.Note.Value)
	}
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func boolOrFalse(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
