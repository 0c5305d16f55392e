// Package empire defines the five fixed playable factions of Imperium.
// Empires are never created or destroyed; only their participation in the
// active turn order changes.
package empire

// ID identifies one of the five factions.
type ID string

const (
	Primus ID = "primus"
	Xilnah ID = "xilnah"
	Navui  ID = "navui"
	Tora   ID = "tora"
	Miradu ID = "miradu"
)

// Config holds the static per-empire attributes assigned at game start.
type Config struct {
	ID                ID     `json:"id"`
	Name              string `json:"name"`
	NatalPlanetNumber int    `json:"natalPlanetNumber"`
}

// Empires is the closed set of factions, in the order the physical game
// presents them.
var Empires = []Config{
	{ID: Primus, Name: "Humanos", NatalPlanetNumber: 11},
	{ID: Xilnah, Name: "Robotiránidos", NatalPlanetNumber: 12},
	{ID: Navui, Name: "Nómadas", NatalPlanetNumber: 13},
	{ID: Tora, Name: "Legión de Hierro", NatalPlanetNumber: 14},
	{ID: Miradu, Name: "Mercaderes", NatalPlanetNumber: 15},
}

// ByID returns the static config for an empire, or false if the id is not
// one of the five factions.
func ByID(id ID) (Config, bool) {
	for _, e := range Empires {
		if e.ID == id {
			return e, true
		}
	}
	return Config{}, false
}

// IsValid reports whether id names one of the five factions.
func IsValid(id ID) bool {
	_, ok := ByID(id)
	return ok
}

// Name returns the display name for an empire, falling back to the raw id.
func Name(id ID) string {
	if e, ok := ByID(id); ok {
		return e.Name
	}
	return string(id)
}
