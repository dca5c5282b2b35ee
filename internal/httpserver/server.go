// internal/httpserver/server.go
//
// HTTP server wiring for the bowling backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/samples".
//   - Game endpoints (optional auth): POST /game/new, POST /game/throw,
//     GET /game/{id}, POST /game/score.
//   - Scores endpoints: mounted under /scores.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Live games are held in the session store; every throw is also written
//     to SQLite so a game can be restored after a restart. Finished games
//     leave the store once their row is saved and are read back from SQLite.
//   - Throws for the same game are serialised; different games run in parallel.
//   - Only the game's owner (user, or anonymous cookie for guests) may throw.
//   - Persistence after a throw is best effort: failures are logged, the
//     throw still counts.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bowling/internal/bowling"
	"github.com/robalobadob/bowling/internal/config"
	"github.com/robalobadob/bowling/internal/game"
	"github.com/robalobadob/bowling/internal/scores"
	"github.com/robalobadob/bowling/internal/sheet"
	"github.com/robalobadob/bowling/internal/store"
)

// Server bundles router, session store, DB handle and metrics.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	db      *sql.DB
	scores  *scores.Store
	metrics *metrics

	locksMu sync.Mutex
	locks   map[string]*gameLock // held only while a request uses the game
}

// gameLock is a per-game mutex with the number of requests holding or
// waiting on it.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		store:  st,
		db:     db,
		scores: scores.NewStore(db),
		locks:  make(map[string]*gameLock),
	}
	s.metrics = newMetrics(st)

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"bowling-go","endpoints":["/health","POST /game/new","POST /game/throw","GET /game/{id}","POST /game/score","/scores/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.PingContext(r.Context()); err != nil {
			http.Error(w, `{"ok":false}`, http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/samples", s.handleSamples)
	s.r.Handle("/metrics", s.metrics.handler())

	// Game endpoints: optional auth, guests can play
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/throw", s.handleThrow)
		r.Get("/game/{id}", s.handleGetGame)
		r.Post("/game/score", s.handleScoreSheet)
	})

	s.mountScores()
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Player string `json:"player"`
}
type newGameRes struct {
	GameID string `json:"gameId"`
}

// handleNewGame creates a new session and persists its owner row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	me := userFrom(r.Context())
	if req.Player == "" && me != nil {
		req.Player = me.Username
	}
	sess := game.New(req.Player)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.metrics.gamesStarted.Inc()

	userID, anonID := s.owner(w, r)
	if err := s.scores.SaveGame(r.Context(), gameRow(sess, userID, anonID)); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert game row")
	}

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID})
}

// throwReq is the payload for POST /game/throw.
type throwReq struct {
	GameID string `json:"gameId"`
	Pins   *int   `json:"pins"`
}

// progressRes is a progress snapshot plus the sheet notation.
type progressRes struct {
	game.Progress
	Player string `json:"player"`
	Sheet  string `json:"sheet"`
}

// handleThrow records one ball for a game, persists the throw log, and
// (if the game just ended) records the result and updates user stats.
func (s *Server) handleThrow(w http.ResponseWriter, r *http.Request) {
	var req throwReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pins == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	unlock := s.lockGame(req.GameID)
	defer unlock()

	sess, err := s.session(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	userID, anonID := s.owner(w, r)
	if err := s.checkOwner(r.Context(), sess.ID, userID, anonID); err != nil {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}
	wasFinished := sess.Finished()
	p, err := sess.ApplyThrow(*req.Pins)
	if err != nil {
		s.metrics.throws.WithLabelValues("rejected").Inc()
		status, code := throwError(err)
		http.Error(w, `{"error":"`+code+`"}`, status)
		return
	}
	s.metrics.throws.WithLabelValues("ok").Inc()
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	saved := s.persistProgress(r.Context(), sess, userID, anonID, !wasFinished && sess.Finished())
	if saved && sess.Finished() {
		if err := s.store.Delete(r.Context(), sess.ID); err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("drop finished session")
		}
	}
	_ = json.NewEncoder(w).Encode(progressRes{Progress: p, Player: sess.Player, Sheet: sheet.Format(p.Frames)})
}

// persistProgress writes the throw log and, on the final ball, the result row
// and user stats. Failures are logged and swallowed; the return value reports
// whether the games row was written.
func (s *Server) persistProgress(ctx context.Context, sess *game.Session, userID, anonID string, justFinished bool) bool {
	row := gameRow(sess, userID, anonID)
	saved := true
	if err := s.scores.SaveGame(ctx, row); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("update game row")
		saved = false
	}
	if !justFinished {
		return saved
	}

	score := sess.Game.Score()
	s.metrics.gamesFinished.Inc()
	s.metrics.finalScores.Observe(float64(score))

	strikes, spares := scores.Marks(sess.Game.Frames())
	if err := s.scores.InsertResult(ctx, scores.Result{
		GameID:  sess.ID,
		UserID:  row.UserID,
		Player:  sess.Player,
		Date:    scores.DateKey(time.Now()),
		Score:   score,
		Strikes: strikes,
		Spares:  spares,
	}); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert result")
	}
	if row.UserID != "" {
		if err := s.bumpStats(ctx, row.UserID, score); err != nil {
			log.Warn().Err(err).Str("user", row.UserID).Msg("bump stats")
		}
	}
	log.Info().Str("gameId", sess.ID).Str("player", sess.Player).Int("score", score).Msg("game finished")
	return saved
}

// owner identifies the caller: the signed-in user, or the anonymous cookie
// (set on first use) for guests. Exactly one of the two is non-empty.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (userID, anonID string) {
	if me := userFrom(r.Context()); me != nil {
		return me.ID, ""
	}
	return "", s.ensureAnonID(w, r)
}

// checkOwner fails with scores.ErrNotOwner when the persisted game belongs to
// someone else. Games without a row yet, or an unreadable row, are allowed.
func (s *Server) checkOwner(ctx context.Context, id, userID, anonID string) error {
	row, err := s.scores.LoadGame(ctx, id)
	if errors.Is(err, scores.ErrNotFound) {
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("load game owner")
		return nil
	}
	if !row.OwnedBy(userID, anonID) {
		return scores.ErrNotOwner
	}
	return nil
}

// gameRow builds the games-table row for a session and its owner.
func gameRow(sess *game.Session, userID, anonID string) scores.GameRow {
	row := scores.GameRow{
		ID:          sess.ID,
		UserID:      userID,
		AnonymousID: anonID,
		Player:      sess.Player,
		Throws:      sess.Game.Throws(),
		Score:       sess.Game.Score(),
		Status:      string(sess.State()),
		StartedAt:   sess.StartedAt,
	}
	if sess.Finished() {
		now := time.Now().UTC()
		row.FinishedAt = &now
	}
	return row
}

// handleGetGame returns the current progress of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := s.lockGame(id)
	defer unlock()

	sess, err := s.session(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	p := sess.Snapshot()
	_ = json.NewEncoder(w).Encode(progressRes{Progress: p, Player: sess.Player, Sheet: sheet.Format(p.Frames)})
}

// scoreReq/Res payloads for POST /game/score.
type scoreReq struct {
	Sheet string `json:"sheet"`
}
type scoreRes struct {
	Score    int             `json:"score"`
	Complete bool            `json:"complete"`
	Sheet    string          `json:"sheet"`
	Frames   []bowling.Frame `json:"frames"`
}

// handleScoreSheet scores a whole sheet without creating a session.
func (s *Server) handleScoreSheet(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	pins, err := sheet.Parse(req.Sheet)
	if err != nil {
		status, code := throwError(err)
		http.Error(w, `{"error":"`+code+`"}`, status)
		return
	}
	g, err := bowling.Replay(pins)
	if err != nil {
		status, code := throwError(err)
		http.Error(w, `{"error":"`+code+`"}`, status)
		return
	}
	frames := g.Frames()
	_ = json.NewEncoder(w).Encode(scoreRes{
		Score:    g.Score(),
		Complete: g.IsComplete(),
		Sheet:    sheet.Format(frames),
		Frames:   frames,
	})
}

// handleSamples lists the embedded sample games with their checked scores.
func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	list, err := sheet.Samples()
	if err != nil {
		http.Error(w, `{"error":"samples_unavailable"}`, http.StatusInternalServerError)
		return
	}
	type sampleRow struct {
		sheet.Sample
		OK bool `json:"ok"`
	}
	out := make([]sampleRow, 0, len(list))
	for _, sm := range list {
		_, err := sm.Check()
		out = append(out, sampleRow{Sample: sm, OK: err == nil})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// throwError maps scoring and notation errors to an HTTP status and code.
func throwError(err error) (int, string) {
	switch {
	case errors.Is(err, bowling.ErrInvalidPinCount):
		return http.StatusBadRequest, "invalid_pin_count"
	case errors.Is(err, sheet.ErrBadNotation):
		return http.StatusBadRequest, "bad_notation"
	case errors.Is(err, bowling.ErrTurnAlreadyComplete):
		return http.StatusConflict, "turn_already_complete"
	case errors.Is(err, bowling.ErrGameAlreadyComplete):
		return http.StatusConflict, "game_already_complete"
	}
	return http.StatusInternalServerError, "internal"
}

// session looks a game up in the live store, falling back to the persisted
// throw log (e.g. after a restart). Restored games go back into the store
// only while they are still being played.
func (s *Server) session(ctx context.Context, id string) (*game.Session, error) {
	if id == "" {
		return nil, store.ErrNotFound
	}
	sess, err := s.store.Get(ctx, id)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	row, err := s.scores.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	sess, err = game.Restore(row.ID, row.Player, row.StartedAt, row.Throws)
	if err != nil {
		return nil, err
	}
	if sess.Finished() {
		return sess, nil
	}
	log.Info().Str("gameId", id).Int("throws", len(row.Throws)).Msg("restored game")
	return sess, s.store.Save(ctx, sess)
}

// lockGame serialises requests for one game and returns the unlock func.
// The map entry is dropped when the last holder unlocks.
func (s *Server) lockGame(id string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &gameLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}
