package ledger

// Result is the discriminated outcome every mutating command returns to the
// presentation layer. A rejection carries a user-facing reason and
// guarantees no mutation took place.
type Result struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func accepted() Result {
	return Result{OK: true}
}

func rejected(reason string) Result {
	return Result{OK: false, Reason: reason}
}

// User-facing rejection reasons, kept as the original product strings.
const (
	reasonShipNotFound       = "Nave no encontrada."
	reasonShipDestroyed      = "Esta nave está destruida. Debes recuperarla antes."
	reasonShipNoNumber       = "Introduce el número de la nave antes de comprarla."
	reasonShipAlreadyInFleet = "Esta nave ya está asignada a una flota."
	reasonShipNumberTaken    = "Ese número de nave ya existe en la partida (asignada o destruida)."
	reasonNoCredits          = "No hay créditos suficientes."
	reasonNoFleetSlots       = "No hay huecos libres en la flota."
	reasonTargetFleetFull    = "El imperio elegido no tiene huecos libres en su flota."

	reasonPlanetNotFound    = "Planeta no encontrado."
	reasonPlanetDestroyed   = "Este planeta está destruido y no puede conquistarse."
	reasonPlanetNumberTaken = "Ese número de planeta ya pertenece a otro planeta."
	reasonNoPlanetSlots     = "No puedes conquistar más planetas (sin huecos libres)."

	reasonGameNotStarted       = "Partida no inicializada."
	reasonCharacterNotFound    = "Personaje no encontrado."
	reasonCharacterNoNumber    = "Introduce el número del personaje."
	reasonCharacterNumberTaken = "Ese número de personaje ya está contratado."
	reasonCharacterBadRange    = "Ese número no corresponde al tipo de personaje."
	reasonNoCharacterSlots     = "No hay huecos libres de personajes."
)
