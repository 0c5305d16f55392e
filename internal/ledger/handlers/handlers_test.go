package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"imperium-server/internal/empire"
	"imperium-server/internal/ledger"
	"imperium-server/internal/snapshot"
)

func newTestServer(t *testing.T) (*httptest.Server, *ledger.Ledger) {
	t.Helper()

	l, err := ledger.New(snapshot.NewMemoryStore(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("ledger.New failed: %v", err)
	}
	t.Cleanup(l.Close)

	gameHandler := NewGameHandler(l)
	shipHandler := NewShipHandler(l)
	planetHandler := NewPlanetHandler(l)
	stateHandler := NewStateHandler(l)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", stateHandler.Get)
	mux.HandleFunc("GET /api/game/status", gameHandler.Status)
	mux.HandleFunc("POST /api/game/new", gameHandler.New)
	mux.HandleFunc("POST /api/ships", shipHandler.Create)
	mux.HandleFunc("GET /api/ships/{id}", shipHandler.Get)
	mux.HandleFunc("PATCH /api/ships/{id}", shipHandler.Save)
	mux.HandleFunc("POST /api/ships/{id}/buy", shipHandler.Buy)
	mux.HandleFunc("POST /api/planets/lookup/{number}", planetHandler.Lookup)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, l
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestShipLifecycleOverHTTP(t *testing.T) {
	srv, l := newTestServer(t)

	setup := ledger.GameSetup{
		PlayerEmpireID:   empire.Primus,
		RivalEmpireIDs:   []empire.ID{empire.Xilnah},
		PlanetsToConquer: 3,
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/game/new", setup)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("game/new status = %d", resp.StatusCode)
	}
	if result := decodeBody[ledger.Result](t, resp); !result.OK {
		t.Fatalf("game/new rejected: %s", result.Reason)
	}
	l.SetCredits(empire.Primus, 10)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/ships", map[string]string{"empireId": "primus"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("ships create status = %d", resp.StatusCode)
	}
	created := decodeBody[map[string]string](t, resp)
	shipID := created["id"]
	if shipID == "" {
		t.Fatal("create returned no id")
	}

	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/ships/"+shipID, map[string]any{
		"number": 1,
		"cost":   4,
		"name":   "Estrella",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ships patch status = %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/ships/"+shipID+"/buy", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ships buy status = %d", resp.StatusCode)
	}
	if result := decodeBody[ledger.Result](t, resp); !result.OK {
		t.Fatalf("buy rejected: %s", result.Reason)
	}
	if got := l.Credits(empire.Primus); got != 6 {
		t.Fatalf("credits after HTTP buy = %d, want 6", got)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/ships/"+shipID, nil)
	ship := decodeBody[ledger.Ship](t, resp)
	if ship.Name != "Estrella" {
		t.Fatalf("ship name over HTTP = %q", ship.Name)
	}
}

func TestDomainRejectionIsOKStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	// A domain rejection is not a transport error: 200 with ok:false.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/game/new", ledger.GameSetup{
		PlayerEmpireID:   empire.Primus,
		PlanetsToConquer: 3,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a domain rejection", resp.StatusCode)
	}
	result := decodeBody[ledger.Result](t, resp)
	if result.OK || result.Reason == "" {
		t.Fatalf("result = %+v, want rejection with reason", result)
	}
}

func TestTransportErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/ships/no-such-id", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing ship status = %d, want 404", resp.StatusCode)
	}
	body := decodeBody[map[string]any](t, resp)
	if body["error"] != "not_found" {
		t.Fatalf("error type = %v, want not_found", body["error"])
	}

	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/ships/abc", "not an object")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad patch status = %d, want 400", resp.StatusCode)
	}
}

func TestPlanetLookupPath(t *testing.T) {
	srv, l := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/planets/lookup/42", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lookup status = %d", resp.StatusCode)
	}
	body := decodeBody[map[string]string](t, resp)
	id := body["id"]
	if id == "" {
		t.Fatal("lookup returned no id")
	}
	if _, ok := l.Planet(id); !ok {
		t.Fatal("lookup id does not resolve in the ledger")
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/planets/lookup/not-a-number", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad number status = %d, want 400", resp.StatusCode)
	}
}

func TestStateDocumentOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/state", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state status = %d", resp.StatusCode)
	}
	doc := decodeBody[map[string]json.RawMessage](t, resp)
	for _, key := range []string{"turnOrder", "credits", "ships", "planets"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("state document missing %q", key)
		}
	}
}
