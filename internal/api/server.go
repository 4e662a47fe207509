// Package api exposes the simulation over HTTP: session lifecycle
// (start / offers / commit / state), catalog metadata, and the investing
// sandbox endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ywen250/finsim-backend/internal/catalog"
	"github.com/ywen250/finsim-backend/internal/engine"
	"github.com/ywen250/finsim-backend/internal/invest"
	"github.com/ywen250/finsim-backend/internal/recorder"
)

// ErrSessionNotFound maps to 404 on the session endpoints.
var ErrSessionNotFound = errors.New("invalid session_id")

// Options configure the server beyond its collaborators.
type Options struct {
	// SeedSessions derives each session's random source from its id so a
	// given session replays identically.
	SeedSessions bool
}

// sessionHandle serializes access to one session. Offers for the current
// day live here between propose and commit.
type sessionHandle struct {
	mu      sync.Mutex
	session *engine.Session
	offers  []*engine.Offer
}

// Server is the HTTP front of the simulation.
type Server struct {
	log  *slog.Logger
	rec  recorder.Recorder
	opts Options
	mux  *chi.Mux

	mu       sync.RWMutex
	catalog  *catalog.Catalog
	sessions map[string]*sessionHandle
}

// New builds a server around a catalog and recorder. A nil recorder
// disables persistence; a nil logger falls back to slog.Default.
func New(cat *catalog.Catalog, rec recorder.Recorder, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if rec == nil {
		rec = recorder.Noop{}
	}
	s := &Server{
		log:      logger,
		rec:      rec,
		opts:     opts,
		mux:      chi.NewRouter(),
		catalog:  cat,
		sessions: make(map[string]*sessionHandle),
	}
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// SwapCatalog replaces the catalog used for new sessions. Running
// sessions keep the catalog they started with.
func (s *Server) SwapCatalog(cat *catalog.Catalog) {
	s.mu.Lock()
	s.catalog = cat
	s.mu.Unlock()
	s.log.Info("catalog swapped", "scenarios", cat.Len())
}

func (s *Server) currentCatalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/meta", s.handleMeta)
		r.Post("/start", s.handleStart)
		r.Get("/offers", s.handleOffers)
		r.Post("/commit", s.handleCommit)
		r.Get("/state", s.handleState)

		r.Route("/investing", func(r chi.Router) {
			r.Post("/simulate", s.handleInvestSimulate)
			r.Post("/montecarlo", s.handleInvestMonteCarlo)
		})
	})
}

// StartRequest creates a session. Every field is optional.
type StartRequest struct {
	Name            string             `json:"name"`
	SegmentKey      string             `json:"segment_key"`
	Mood            string             `json:"mood"`
	PayType         string             `json:"pay_type"`
	PayStartDay     int                `json:"pay_start_day"`
	PayAmount       float64            `json:"pay_amount"`
	BaseBalance     *float64           `json:"base_balance"`
	Predispositions map[string]float64 `json:"predispositions"`
}

func (req *StartRequest) profile() engine.UserProfile {
	if req.Name == "" {
		req.Name = "Player"
	}
	if req.SegmentKey == "" {
		req.SegmentKey = "early_career"
	}
	if req.Mood == "" {
		req.Mood = "optimistic"
	}
	if req.PayType == "" {
		req.PayType = "biweekly"
	}
	if req.PayStartDay <= 0 {
		req.PayStartDay = 1
	}
	if req.PayAmount <= 0 {
		req.PayAmount = 2200
	}
	balance := 1500.0
	if req.BaseBalance != nil {
		balance = *req.BaseBalance
	}
	return engine.UserProfile{
		Name:       req.Name,
		SegmentKey: req.SegmentKey,
		Mood:       req.Mood,
		PayCycle: engine.PayCycle{
			Type:     req.PayType,
			StartDay: req.PayStartDay,
			Amount:   req.PayAmount,
		},
		Predispositions: req.Predispositions,
		BaseBalance:     balance,
	}
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	profile := req.profile()
	if _, ok := catalog.Segments[profile.SegmentKey]; !ok {
		writeError(w, http.StatusBadRequest, "unknown segment_key "+profile.SegmentKey)
		return
	}
	if _, ok := catalog.Moods[profile.Mood]; !ok {
		writeError(w, http.StatusBadRequest, "unknown mood "+profile.Mood)
		return
	}

	sessionID := uuid.NewString()
	var rng engine.RandomSource
	if s.opts.SeedSessions {
		rng = engine.NewSeededRNG(engine.SeedFromID(sessionID))
	}
	session := engine.NewSession(s.currentCatalog(), profile, rng)

	offers, err := session.ProposeDay(session.Day())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h := &sessionHandle{session: session, offers: offers}
	s.mu.Lock()
	s.sessions[sessionID] = h
	s.mu.Unlock()

	s.log.Info("session started", "session_id", sessionID,
		"segment", profile.SegmentKey, "mood", profile.Mood)

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"day":        session.Day(),
		"balance":    session.Balance(),
		"offers":     offers,
		"hud":        session.HUD(),
		"user":       profile,
	})
}

func (s *Server) lookup(sessionID string) (*sessionHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return h, nil
}

func (s *Server) handleOffers(w http.ResponseWriter, r *http.Request) {
	h, err := s.lookup(r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"day":     h.session.Day(),
		"balance": h.session.Balance(),
		"offers":  h.offers,
		"hud":     h.session.HUD(),
	})
}

// CommitRequest resolves the current day. Choices map offer ids to option
// codes; omitted offers take their first option.
type CommitRequest struct {
	SessionID string            `json:"session_id"`
	Choices   map[string]string `json:"choices"`
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	var req CommitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h, err := s.lookup(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	day := h.session.Day()
	committed, err := h.session.CommitDay(day, req.Choices)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if recErr := s.rec.RecordCommit(req.SessionID, day, committed, h.session.Ledger()); recErr != nil {
		s.log.Error("record commit failed", "session_id", req.SessionID, "day", day, "err", recErr)
	}

	next, err := h.session.ProposeDay(h.session.Day())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	h.offers = next

	writeJSON(w, http.StatusOK, map[string]any{
		"committed":   committed,
		"balance":     h.session.Balance(),
		"day":         h.session.Day(),
		"next_offers": next,
		"hud":         h.session.HUD(),
	})
}

const historyWindow = 100

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	h, err := s.lookup(r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	history := h.session.History()
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"day":     h.session.Day(),
		"balance": h.session.Balance(),
		"history": history,
		"plans":   h.session.Plans(),
		"hud":     h.session.HUD(),
	})
}

func (s *Server) handleMeta(w http.ResponseWriter, _ *http.Request) {
	segments := make(map[string]map[string]string, len(catalog.Segments))
	for key, seg := range catalog.Segments {
		segments[key] = map[string]string{"name": seg.Name, "description": seg.Description}
	}
	moods := make([]string, 0, len(catalog.Moods))
	for m := range catalog.Moods {
		moods = append(moods, m)
	}
	sort.Strings(moods)

	writeJSON(w, http.StatusOK, map[string]any{
		"segments":  segments,
		"moods":     moods,
		"scenarios": s.currentCatalog().Len(),
		"defaults": map[string]any{
			"segment_key":   "early_career",
			"mood":          "optimistic",
			"pay_type":      "biweekly",
			"pay_start_day": 1,
			"pay_amount":    2200.0,
			"base_balance":  1500.0,
		},
	})
}

func (s *Server) handleInvestSimulate(w http.ResponseWriter, r *http.Request) {
	var params invest.SimParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := invest.Simulate(params, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   res.Stats,
		"path":    res.Path,
		"trades":  res.Trades,
	})
}

func (s *Server) handleInvestMonteCarlo(w http.ResponseWriter, r *http.Request) {
	var params invest.MCParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := invest.RunMonteCarlo(params, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"successProb": res.SuccessProb,
		"bands":       res.Bands,
		"endValues":   res.EndValues,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNoPendingOffers):
		return http.StatusConflict
	case errors.Is(err, engine.ErrUnknownScenario):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
