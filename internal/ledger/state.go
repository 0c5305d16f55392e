package ledger

import (
	"github.com/google/uuid"

	"imperium-server/internal/empire"
)

// Slot capacities mirror the physical sheets: a fleet tracks up to ten
// ships, an empire holds up to ten planets, the player hires up to six
// characters.
const (
	FleetSlotCount     = 10
	PlanetSlotCount    = 10
	CharacterSlotCount = 6
)

type ShipType string

const (
	ShipTypeFragata    ShipType = "Fragata"
	ShipTypeCanonero   ShipType = "Cañonero"
	ShipTypeCrucero    ShipType = "Crucero"
	ShipTypeDestructor ShipType = "Destructor"
	ShipTypeApoyo      ShipType = "Nave de apoyo"
	ShipTypeCapital    ShipType = "Nave capital"
)

type CharacterType string

const (
	CharacterTypeGeneral     CharacterType = "General"
	CharacterTypeEspia       CharacterType = "Espía"
	CharacterTypeDiplomatico CharacterType = "Diplomático"
)

// CharacterNumberRange returns the inclusive number range owned by a
// character type. Each type owns a disjoint range on the physical cards.
func CharacterNumberRange(t CharacterType) (min, max int, ok bool) {
	switch t {
	case CharacterTypeGeneral:
		return 1, 6, true
	case CharacterTypeEspia:
		return 7, 12, true
	case CharacterTypeDiplomatico:
		return 13, 18, true
	}
	return 0, 0, false
}

type CharacterStatus string

const (
	CharacterStatusAvailable CharacterStatus = "available"
	CharacterStatusUsed      CharacterStatus = "used"
)

// ShipUpgradeTrack counts the activated upgrade nodes of one track level.
type ShipUpgradeTrack struct {
	AttackNodes      int    `json:"attackNodes"`
	DefenseNodes     int    `json:"defenseNodes"`
	AttackBonusNote  string `json:"attackBonusNote"`
	DefenseBonusNote string `json:"defenseBonusNote"`
}

// Ship is one fleet record. Optional fields are nil until the player fills
// them in on the sheet; a ship number of 0 is therefore distinct from unset.
type Ship struct {
	ID              string           `json:"id"`
	Owner           empire.ID        `json:"owner"`
	Number          *int             `json:"number,omitempty"`
	Type            *ShipType        `json:"type,omitempty"`
	Name            string           `json:"name"`
	Cost            *int             `json:"cost,omitempty"`
	AtkBase         *int             `json:"atkBase,omitempty"`
	DefBase         *int             `json:"defBase,omitempty"`
	PRMax           *int             `json:"prMax,omitempty"`
	PRMarked        int              `json:"prMarked"`
	Level1          ShipUpgradeTrack `json:"level1"`
	Level2          ShipUpgradeTrack `json:"level2"`
	SpecialUnlocked bool             `json:"specialUnlocked"`
	SpecialNodes    int              `json:"specialNodes"`
	SpecialNote     string           `json:"specialNote"`
	Destroyed       bool             `json:"destroyed"`
}

// PlanetOwner is either an empire id or one of the two special owners.
type PlanetOwner string

const (
	PlanetOwnerFree      PlanetOwner = "free"
	PlanetOwnerDestroyed PlanetOwner = "destroyed"
)

func (o PlanetOwner) Empire() (empire.ID, bool) {
	if o == PlanetOwnerFree || o == PlanetOwnerDestroyed {
		return "", false
	}
	return empire.ID(o), true
}

// NodePoint is a calibration point on the planet reference image,
// normalized to the 0..1 box.
type NodePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Planet struct {
	ID          string      `json:"id"`
	Number      *int        `json:"number,omitempty"`
	Owner       PlanetOwner `json:"owner"`
	Prod        *int        `json:"prod,omitempty"`
	Atk         *int        `json:"atk,omitempty"`
	Def         *int        `json:"def,omitempty"`
	PRMax       *int        `json:"prMax,omitempty"`
	PRMarked    int         `json:"prMarked"`
	AbilityText string      `json:"abilityText"`
	// NodeActive always has the same length as NodePoints; savePlanet and
	// snapshot loading reconcile the two.
	NodePoints           []NodePoint `json:"nodePoints"`
	NodeActive           []bool      `json:"nodeActive"`
	DestroyedPermanently bool        `json:"destroyedPermanently"`
}

type Character struct {
	ID     string          `json:"id"`
	Type   *CharacterType  `json:"type,omitempty"`
	Level  *int            `json:"level,omitempty"`
	Number *int            `json:"number,omitempty"`
	Cost   *int            `json:"cost,omitempty"`
	Note   string          `json:"note"`
	Status CharacterStatus `json:"status"`
}

// GameSetup is chosen once at game start and immutable for the game's
// duration.
type GameSetup struct {
	PlayerEmpireID   empire.ID   `json:"playerEmpireId"`
	RivalEmpireIDs   []empire.ID `json:"rivalEmpireIds"`
	PlanetsToConquer int         `json:"planetsToConquer"`
}

// State is the full ledger document. It serializes as-is into the snapshot
// stored under the fixed storage key.
type State struct {
	Setup            *GameSetup  `json:"setup,omitempty"`
	TurnOrder        []empire.ID `json:"turnOrder"`
	CurrentTurnIndex int         `json:"currentTurnIndex"`
	TurnNumber       int         `json:"turnNumber"`
	WinnerEmpireID   *empire.ID  `json:"winnerEmpireId,omitempty"`

	GameOverMessage    string     `json:"gameOverMessage,omitempty"`
	EliminatedEmpireID *empire.ID `json:"eliminatedEmpireId,omitempty"`

	ToastMessage string `json:"toastMessage,omitempty"`
	ToastNonce   int    `json:"toastNonce"`

	Die1 *int `json:"die1,omitempty"`
	Die2 *int `json:"die2,omitempty"`

	Credits map[empire.ID]int `json:"credits"`

	Ships      map[string]*Ship      `json:"ships"`
	Planets    map[string]*Planet    `json:"planets"`
	Characters map[string]*Character `json:"characters"`

	// Slot arrays hold nil for a free slot. Character slots are only
	// meaningful for the player empire.
	EmpireFleetSlots       map[empire.ID][]*string `json:"empireFleetSlots"`
	EmpireDestroyedShipIDs map[empire.ID][]string  `json:"empireDestroyedShipIds"`
	EmpirePlanetSlots      map[empire.ID][]*string `json:"empirePlanetSlots"`
	EmpireCharacterSlots   map[empire.ID][]*string `json:"empireCharacterSlots"`

	// PlanetByNumber enforces global uniqueness of planet numbers. Entries
	// for permanently destroyed planets are never released.
	PlanetByNumber map[int]string `json:"planetByNumber"`
}

func emptySlots(n int) []*string {
	return make([]*string, n)
}

// NewState returns the pre-game document: no setup, empty catalogs, zeroed
// credits for every empire.
func NewState() *State {
	s := &State{
		TurnOrder:              []empire.ID{},
		CurrentTurnIndex:       0,
		TurnNumber:             1,
		Credits:                map[empire.ID]int{},
		Ships:                  map[string]*Ship{},
		Planets:                map[string]*Planet{},
		Characters:             map[string]*Character{},
		EmpireFleetSlots:       map[empire.ID][]*string{},
		EmpireDestroyedShipIDs: map[empire.ID][]string{},
		EmpirePlanetSlots:      map[empire.ID][]*string{},
		EmpireCharacterSlots:   map[empire.ID][]*string{},
		PlanetByNumber:         map[int]string{},
	}
	for _, e := range empire.Empires {
		s.Credits[e.ID] = 0
		s.EmpireFleetSlots[e.ID] = emptySlots(FleetSlotCount)
		s.EmpireDestroyedShipIDs[e.ID] = []string{}
		s.EmpirePlanetSlots[e.ID] = emptySlots(PlanetSlotCount)
		s.EmpireCharacterSlots[e.ID] = emptySlots(CharacterSlotCount)
	}
	return s
}

func newBlankShip(owner empire.ID) *Ship {
	return &Ship{
		ID:    uuid.NewString(),
		Owner: owner,
	}
}

func newBlankPlanet(owner PlanetOwner) *Planet {
	return &Planet{
		ID:                   uuid.NewString(),
		Owner:                owner,
		NodePoints:           []NodePoint{},
		NodeActive:           []bool{},
		DestroyedPermanently: owner == PlanetOwnerDestroyed,
	}
}

func newBlankCharacter() *Character {
	return &Character{
		ID:     uuid.NewString(),
		Status: CharacterStatusAvailable,
	}
}

// normalize repairs a loaded snapshot: missing maps become empty, slot
// arrays are brought back to their fixed capacities, and planet node lists
// are reconciled. Stored lengths are never trusted.
func (s *State) normalize() {
	if s.TurnOrder == nil {
		s.TurnOrder = []empire.ID{}
	}
	if s.TurnNumber < 1 {
		s.TurnNumber = 1
	}
	if s.Credits == nil {
		s.Credits = map[empire.ID]int{}
	}
	if s.Ships == nil {
		s.Ships = map[string]*Ship{}
	}
	if s.Planets == nil {
		s.Planets = map[string]*Planet{}
	}
	if s.Characters == nil {
		s.Characters = map[string]*Character{}
	}
	if s.EmpireFleetSlots == nil {
		s.EmpireFleetSlots = map[empire.ID][]*string{}
	}
	if s.EmpireDestroyedShipIDs == nil {
		s.EmpireDestroyedShipIDs = map[empire.ID][]string{}
	}
	if s.EmpirePlanetSlots == nil {
		s.EmpirePlanetSlots = map[empire.ID][]*string{}
	}
	if s.EmpireCharacterSlots == nil {
		s.EmpireCharacterSlots = map[empire.ID][]*string{}
	}
	if s.PlanetByNumber == nil {
		s.PlanetByNumber = map[int]string{}
	}

	for _, e := range empire.Empires {
		if _, ok := s.Credits[e.ID]; !ok {
			s.Credits[e.ID] = 0
		}
		if s.Credits[e.ID] < 0 {
			s.Credits[e.ID] = 0
		}
		s.EmpireFleetSlots[e.ID] = fixSlots(s.EmpireFleetSlots[e.ID], FleetSlotCount)
		s.EmpirePlanetSlots[e.ID] = fixSlots(s.EmpirePlanetSlots[e.ID], PlanetSlotCount)
		s.EmpireCharacterSlots[e.ID] = fixSlots(s.EmpireCharacterSlots[e.ID], CharacterSlotCount)
		if s.EmpireDestroyedShipIDs[e.ID] == nil {
			s.EmpireDestroyedShipIDs[e.ID] = []string{}
		}
	}

	for _, p := range s.Planets {
		p.normalizeNodes()
	}

	if len(s.TurnOrder) > 0 {
		if s.CurrentTurnIndex < 0 {
			s.CurrentTurnIndex = 0
		}
		if s.CurrentTurnIndex >= len(s.TurnOrder) {
			s.CurrentTurnIndex = len(s.TurnOrder) - 1
		}
	} else {
		s.CurrentTurnIndex = 0
	}
}

func fixSlots(slots []*string, capacity int) []*string {
	if slots == nil {
		return emptySlots(capacity)
	}
	if len(slots) > capacity {
		return slots[:capacity]
	}
	for len(slots) < capacity {
		slots = append(slots, nil)
	}
	return slots
}

// normalizeNodes forces the active list to the points list length.
func (p *Planet) normalizeNodes() {
	if p.NodePoints == nil {
		p.NodePoints = []NodePoint{}
	}
	fixed := make([]bool, len(p.NodePoints))
	for i := range fixed {
		if i < len(p.NodeActive) {
			fixed[i] = p.NodeActive[i]
		}
	}
	p.NodeActive = fixed
}
