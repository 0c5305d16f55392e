package server

import (
	"log/slog"
	"net/http"

	authHandlers "imperium-server/internal/auth/handlers"
	"imperium-server/internal/ledger"
	ledgerHandlers "imperium-server/internal/ledger/handlers"
	"imperium-server/internal/middleware"
	serverHandlers "imperium-server/internal/server/handlers"
	"imperium-server/internal/snapshot"
)

type Routes struct {
	ledger *ledger.Ledger
	store  snapshot.Store
	logger *slog.Logger
}

func NewRoutes(l *ledger.Ledger, store snapshot.Store, logger *slog.Logger) *Routes {
	return &Routes{
		ledger: l,
		store:  store,
		logger: logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.store)
	sessionHandler := authHandlers.NewSessionHandler()
	stateHandler := ledgerHandlers.NewStateHandler(r.ledger)
	gameHandler := ledgerHandlers.NewGameHandler(r.ledger)
	diceHandler := ledgerHandlers.NewDiceHandler(r.ledger)
	creditsHandler := ledgerHandlers.NewCreditsHandler(r.ledger)
	shipHandler := ledgerHandlers.NewShipHandler(r.ledger)
	planetHandler := ledgerHandlers.NewPlanetHandler(r.ledger)
	characterHandler := ledgerHandlers.NewCharacterHandler(r.ledger)

	// Public endpoints
	mux.Handle("/api/health", healthHandler)
	mux.HandleFunc("/api/auth/login", sessionHandler.Login)
	mux.HandleFunc("/api/auth/logout", sessionHandler.Logout)
	mux.HandleFunc("GET /api/state", stateHandler.Get)
	mux.HandleFunc("GET /api/game/status", gameHandler.Status)
	mux.HandleFunc("GET /api/game/current-empire", gameHandler.CurrentEmpire)
	mux.HandleFunc("GET /api/empires/{id}/counts", gameHandler.Counts)
	mux.HandleFunc("GET /api/dice", diceHandler.Get)
	mux.HandleFunc("GET /api/ships/{id}", shipHandler.Get)
	mux.HandleFunc("GET /api/planets/{id}", planetHandler.Get)
	mux.HandleFunc("GET /api/characters/{id}", characterHandler.Get)

	// Mutating endpoints; guarded when an access code is configured
	protect := func(h http.HandlerFunc) http.Handler {
		return middleware.SessionMiddleware(h)
	}

	mux.Handle("POST /api/game/new", protect(gameHandler.New))
	mux.Handle("POST /api/game/end-turn", protect(gameHandler.EndTurn))
	mux.Handle("POST /api/game/clear-notice", protect(gameHandler.ClearNotice))
	mux.Handle("POST /api/game/reset", protect(gameHandler.Reset))
	mux.Handle("POST /api/toast", protect(gameHandler.Toast))

	mux.Handle("POST /api/dice/roll-1", protect(diceHandler.RollOne))
	mux.Handle("POST /api/dice/roll-2", protect(diceHandler.RollTwo))
	mux.Handle("POST /api/dice/roll", protect(diceHandler.RollBoth))

	mux.Handle("POST /api/credits/set", protect(creditsHandler.Set))
	mux.Handle("POST /api/credits/add", protect(creditsHandler.Add))

	mux.Handle("POST /api/ships", protect(shipHandler.Create))
	mux.Handle("PATCH /api/ships/{id}", protect(shipHandler.Save))
	mux.Handle("POST /api/ships/{id}/buy", protect(shipHandler.Buy))
	mux.Handle("POST /api/ships/{id}/pr", protect(shipHandler.MarkPR))
	mux.Handle("POST /api/ships/{id}/recover", protect(shipHandler.Recover))

	mux.Handle("POST /api/planets", protect(planetHandler.Create))
	mux.Handle("PATCH /api/planets/{id}", protect(planetHandler.Save))
	mux.Handle("POST /api/planets/{id}/number", protect(planetHandler.BindNumber))
	mux.Handle("POST /api/planets/{id}/discard", protect(planetHandler.Discard))
	mux.Handle("POST /api/planets/{id}/destroyed", protect(planetHandler.SetDestroyed))
	mux.Handle("POST /api/planets/{id}/conquer", protect(planetHandler.Conquer))
	mux.Handle("POST /api/planets/lookup/{number}", protect(planetHandler.Lookup))

	mux.Handle("POST /api/characters", protect(characterHandler.Create))
	mux.Handle("PATCH /api/characters/{id}", protect(characterHandler.Save))
	mux.Handle("POST /api/characters/{id}/hire", protect(characterHandler.Hire))
	mux.Handle("POST /api/characters/{id}/use", protect(characterHandler.Use))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/health", "/api/state", "/api/game/status", "/api/game/current-empire", "/api/dice"},
		"auth_endpoints", []string{"/api/auth/login", "/api/auth/logout"},
	)

	return mux
}
