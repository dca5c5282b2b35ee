// internal/scores/store.go
//
// SQLite-backed store for hosted games and finished results.
// Responsibilities:
//   - Upsert the games row (throw log, score, status) after every ball.
//   - Only the owning user or anonymous id may update an existing row.
//   - Record one result per finished game; serve the leaderboard and
//     personal bests.
//   - Move a guest's games and results to an account on login.

package scores

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a game row does not exist.
	ErrNotFound = errors.New("scores: not found")
	// ErrNotOwner is returned when a caller updates a game it does not own.
	ErrNotOwner = errors.New("scores: not game owner")
)

// GameRow mirrors the games table.
type GameRow struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	AnonymousID string     `json:"-"`
	Player      string     `json:"player"`
	Throws      []int      `json:"throws"`
	Score       int        `json:"score"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}

// Result is a finished game on the leaderboard.
type Result struct {
	GameID  string `json:"gameId"`
	UserID  string `json:"-"`
	Player  string `json:"player"`
	Date    string `json:"date"`
	Score   int    `json:"score"`
	Strikes int    `json:"strikes"`
	Spares  int    `json:"spares"`
}

// OwnedBy reports whether the row belongs to the given user, or to the
// anonymous id when the row has no user.
func (g GameRow) OwnedBy(userID, anonID string) bool {
	if g.UserID != "" {
		return g.UserID == userID
	}
	return g.AnonymousID == anonID
}

// Store reads and writes the games and results tables.
type Store struct{ db *sql.DB }

// NewStore wraps an open, migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// SaveGame inserts the row or updates its progress columns. An existing row
// is only updated for its owner; otherwise nothing changes and ErrNotOwner
// is returned.
func (s *Store) SaveGame(ctx context.Context, g GameRow) error {
	var finished any
	if g.FinishedAt != nil {
		finished = g.FinishedAt.UTC().Format(time.RFC3339)
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO games (id, user_id, anonymous_id, player, throws, score, status, started_at, finished_at)
        VALUES (?,?,?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            throws=excluded.throws,
            score=excluded.score,
            status=excluded.status,
            finished_at=excluded.finished_at
        WHERE (games.user_id IS NOT NULL AND games.user_id IS excluded.user_id)
           OR (games.user_id IS NULL AND games.anonymous_id IS excluded.anonymous_id)`,
		g.ID, nullable(g.UserID), nullable(g.AnonymousID), g.Player, EncodeThrows(g.Throws),
		g.Score, g.Status, g.StartedAt.UTC().Format(time.RFC3339), finished,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotOwner
	}
	return nil
}

// LoadGame fetches one game row by ID.
func (s *Store) LoadGame(ctx context.Context, id string) (*GameRow, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, COALESCE(user_id,''), COALESCE(anonymous_id,''), player, throws, score, status,
               started_at, COALESCE(finished_at,'')
        FROM games WHERE id=?`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

// ListGames returns the owner's most recent games, newest first.
// Exactly one of userID or anonID is expected to be set.
func (s *Store) ListGames(ctx context.Context, userID, anonID string, limit int) ([]GameRow, error) {
	if limit <= 0 {
		limit = 50
	}
	clause, arg := `user_id=?`, userID
	if userID == "" {
		clause, arg = `anonymous_id=?`, anonID
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, COALESCE(user_id,''), COALESCE(anonymous_id,''), player, throws, score, status,
               started_at, COALESCE(finished_at,'')
        FROM games WHERE `+clause+` ORDER BY started_at DESC LIMIT ?`, arg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRow{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// ClaimAnonymous moves a guest's games and results to a user account.
func (s *Store) ClaimAnonymous(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `
        UPDATE results SET user_id=? WHERE game_id IN (SELECT id FROM games WHERE anonymous_id=?)`,
		userID, anonID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertResult records a finished game; a second insert for the same game is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results (game_id, user_id, player, date, score, strikes, spares)
        VALUES (?,?,?,?,?,?,?)`,
		r.GameID, nullable(r.UserID), r.Player, r.Date, r.Score, r.Strikes, r.Spares,
	)
	return err
}

// Leaderboard fetches the top results for a date: highest score first, then
// the earliest to finish.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT game_id, COALESCE(user_id,''), player, date, score, strikes, spares
        FROM results
        WHERE date=?
        ORDER BY score DESC, created_at ASC, id ASC
        LIMIT ?`, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.GameID, &r.UserID, &r.Player, &r.Date, &r.Score, &r.Strikes, &r.Spares); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PersonalBest returns the user's highest scoring result.
func (s *Store) PersonalBest(ctx context.Context, userID string) (*Result, error) {
	var r Result
	err := s.db.QueryRowContext(ctx, `
        SELECT game_id, COALESCE(user_id,''), player, date, score, strikes, spares
        FROM results WHERE user_id=?
        ORDER BY score DESC, created_at ASC, id ASC
        LIMIT 1`, userID,
	).Scan(&r.GameID, &r.UserID, &r.Player, &r.Date, &r.Score, &r.Strikes, &r.Spares)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*GameRow, error) {
	var (
		g                 GameRow
		throws            string
		started, finished string
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.AnonymousID, &g.Player, &throws, &g.Score, &g.Status,
		&started, &finished); err != nil {
		return nil, err
	}
	pins, err := DecodeThrows(throws)
	if err != nil {
		return nil, err
	}
	g.Throws = pins
	g.StartedAt, _ = time.Parse(time.RFC3339, started)
	if finished != "" {
		t, _ := time.Parse(time.RFC3339, finished)
		g.FinishedAt = &t
	}
	return &g, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
