package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ywen250/finsim-backend/internal/catalog"
	"github.com/ywen250/finsim-backend/internal/recorder"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cat, err := catalog.New(catalog.BuildDefault())
	if err != nil {
		t.Fatal(err)
	}
	return New(cat, recorder.Noop{}, nil, Options{SeedSessions: true})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid JSON response: %v", method, path, err)
		}
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	s := testServer(t)
	rec, out := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || out["ok"] != true {
		t.Fatalf("healthz: code=%d body=%v", rec.Code, out)
	}
}

func TestStartOffersCommitFlow(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	rec, out := doJSON(t, h, http.MethodPost, "/api/start", map[string]any{
		"name": "Avery", "segment_key": "early_career", "mood": "optimistic",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("start: code=%d body=%v", rec.Code, out)
	}
	sessionID, _ := out["session_id"].(string)
	if sessionID == "" {
		t.Fatal("start returned no session_id")
	}
	if out["day"].(float64) != 1 {
		t.Fatalf("start day: %v", out["day"])
	}
	if out["balance"].(float64) != 1500 {
		t.Fatalf("default base balance: %v", out["balance"])
	}
	offers, ok := out["offers"].([]any)
	if !ok || len(offers) == 0 {
		t.Fatal("day 1 must carry offers (the paycheck at minimum)")
	}
	hud, ok := out["hud"].(map[string]any)
	if !ok || hud["month"].(float64) != 1 || hud["health"].(float64) != 65 {
		t.Fatalf("start hud: %v", hud)
	}

	rec, out = doJSON(t, h, http.MethodGet, "/api/offers?session_id="+sessionID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("offers: code=%d body=%v", rec.Code, out)
	}
	if got := len(out["offers"].([]any)); got != len(offers) {
		t.Fatalf("offers changed between start and fetch: %d vs %d", got, len(offers))
	}

	// Commit with no explicit choices; defaults resolve every offer.
	rec, out = doJSON(t, h, http.MethodPost, "/api/commit", map[string]any{
		"session_id": sessionID,
		"choices":    map[string]string{},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("commit: code=%d body=%v", rec.Code, out)
	}
	if out["day"].(float64) != 2 {
		t.Fatalf("commit must advance to day 2, got %v", out["day"])
	}
	if _, ok := out["next_offers"]; !ok {
		t.Fatal("commit response missing next_offers")
	}
	committed, ok := out["committed"].([]any)
	if !ok || len(committed) == 0 {
		t.Fatal("commit response missing committed events")
	}

	rec, out = doJSON(t, h, http.MethodGet, "/api/state?session_id="+sessionID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("state: code=%d body=%v", rec.Code, out)
	}
	if history, ok := out["history"].([]any); !ok || len(history) != len(committed) {
		t.Fatalf("state history: %v", out["history"])
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	rec, _ := doJSON(t, h, http.MethodGet, "/api/offers?session_id=ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("offers for unknown session: %d", rec.Code)
	}
	rec, _ = doJSON(t, h, http.MethodPost, "/api/commit", map[string]any{
		"session_id": "ghost", "choices": map[string]string{},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("commit for unknown session: %d", rec.Code)
	}
}

func TestStartRejectsUnknownSegment(t *testing.T) {
	s := testServer(t)
	rec, out := doJSON(t, s.Handler(), http.MethodPost, "/api/start", map[string]any{
		"segment_key": "lunar_colonist",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown segment: code=%d body=%v", rec.Code, out)
	}
}

func TestMeta(t *testing.T) {
	s := testServer(t)
	rec, out := doJSON(t, s.Handler(), http.MethodGet, "/api/meta", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("meta: %d", rec.Code)
	}
	segments, ok := out["segments"].(map[string]any)
	if !ok || len(segments) == 0 {
		t.Fatal("meta missing segments")
	}
	if _, ok := segments["early_career"]; !ok {
		t.Fatal("meta missing early_career segment")
	}
	if moods, ok := out["moods"].([]any); !ok || len(moods) == 0 {
		t.Fatal("meta missing moods")
	}
}

func TestInvestSimulateEndpoint(t *testing.T) {
	s := testServer(t)
	rec, out := doJSON(t, s.Handler(), http.MethodPost, "/api/investing/simulate", map[string]any{
		"profile": "balanced", "startValue": 10000, "years": 5,
		"contribMonthly": 500, "feesBps": 50, "rebalance": "annual",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("simulate: code=%d body=%v", rec.Code, out)
	}
	if out["success"] != true {
		t.Fatal("simulate response missing success flag")
	}
	stats, ok := out["stats"].(map[string]any)
	if !ok || stats["endValue"].(float64) <= 0 {
		t.Fatalf("simulate stats: %v", out["stats"])
	}
	if path, ok := out["path"].([]any); !ok || len(path) != 60 {
		t.Fatalf("simulate path: %v", out["path"])
	}

	rec, _ = doJSON(t, s.Handler(), http.MethodPost, "/api/investing/simulate", map[string]any{
		"profile": "yolo", "startValue": 1, "years": 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad profile should 400, got %d", rec.Code)
	}
}

func TestInvestMonteCarloEndpoint(t *testing.T) {
	s := testServer(t)
	rec, out := doJSON(t, s.Handler(), http.MethodPost, "/api/investing/montecarlo", map[string]any{
		"profile": "balanced", "startValue": 10000, "years": 10,
		"runs": 100, "targetAmount": 20000, "contribMonthly": 300,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("montecarlo: code=%d body=%v", rec.Code, out)
	}
	prob, ok := out["successProb"].(float64)
	if !ok || prob < 0 || prob > 1 {
		t.Fatalf("successProb: %v", out["successProb"])
	}
	if bands, ok := out["bands"].([]any); !ok || len(bands) != 120 {
		t.Fatalf("bands: %v", out["bands"])
	}
}

func TestSwapCatalogAffectsNewSessionsOnly(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	_, out := doJSON(t, h, http.MethodPost, "/api/start", map[string]any{})
	sessionID := out["session_id"].(string)

	small, err := catalog.New([]*catalog.ScenarioDefinition{{
		ID: "scn_paycheck", Name: "Paycheck", Category: catalog.CategoryIncome,
		Tags:          []string{"salary"},
		Amount:        catalog.AmountSpec{Dist: "fixed", Value: 2000},
		Deterministic: true,
		Schedule:      &catalog.ScheduleRule{Type: "pay_cycle"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	s.SwapCatalog(small)

	// The old session still answers.
	rec, _ := doJSON(t, h, http.MethodGet, "/api/offers?session_id="+sessionID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("existing session broken by catalog swap: %d", rec.Code)
	}

	// New sessions see the new catalog.
	if got := s.currentCatalog().Len(); got != small.Len() {
		t.Fatalf("current catalog not swapped: %d", got)
	}
}
