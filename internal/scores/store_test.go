package scores

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bowling/internal/bowling"
	"github.com/robalobadob/bowling/internal/db"
)

func newTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(conn))
	return NewStore(conn), conn
}

func addUser(t *testing.T, conn *sql.DB, id string) {
	t.Helper()
	_, err := conn.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, "user_"+id, "x", time.Now().UTC().Format(time.RFC3339))
	require.NoError(t, err)
}

func TestStore_SaveAndLoadGame(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	started := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	row := GameRow{ID: "g1", AnonymousID: "anon1", Player: "ada", Throws: []int{10, 7}, Score: 24,
		Status: "playing", StartedAt: started}
	require.NoError(t, st.SaveGame(ctx, row))

	row.Throws = []int{10, 7, 2}
	row.Score = 28
	require.NoError(t, st.SaveGame(ctx, row))

	got, err := st.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 7, 2}, got.Throws)
	assert.Equal(t, 28, got.Score)
	assert.Equal(t, "anon1", got.AnonymousID)
	assert.Equal(t, started, got.StartedAt)
	assert.Nil(t, got.FinishedAt)

	_, err = st.LoadGame(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SaveGameOwnerGuard(t *testing.T) {
	ctx := context.Background()
	st, conn := newTestStore(t)
	addUser(t, conn, "u1")
	started := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	guest := GameRow{ID: "g1", AnonymousID: "anon1", Player: "ada", Throws: []int{7}, Score: 7,
		Status: "playing", StartedAt: started}
	require.NoError(t, st.SaveGame(ctx, guest))

	other := guest
	other.AnonymousID = "anon2"
	other.Throws, other.Score = []int{0}, 0
	assert.ErrorIs(t, st.SaveGame(ctx, other), ErrNotOwner)

	user := guest
	user.AnonymousID, user.UserID = "", "u1"
	assert.ErrorIs(t, st.SaveGame(ctx, user), ErrNotOwner)

	got, err := st.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, got.Throws)
	assert.True(t, got.OwnedBy("", "anon1"))
	assert.False(t, got.OwnedBy("u1", ""))

	// after a claim only the account may write
	require.NoError(t, st.ClaimAnonymous(ctx, "anon1", "u1"))
	assert.ErrorIs(t, st.SaveGame(ctx, guest), ErrNotOwner)
	user.Throws, user.Score = []int{7, 2}, 9
	require.NoError(t, st.SaveGame(ctx, user))

	got, err = st.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 2}, got.Throws)
	assert.True(t, got.OwnedBy("u1", ""))
}

func TestStore_ListAndClaim(t *testing.T) {
	ctx := context.Background()
	st, conn := newTestStore(t)
	addUser(t, conn, "u1")

	base := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, st.SaveGame(ctx, GameRow{ID: id, AnonymousID: "anon", Player: "ada",
			Status: "playing", StartedAt: base.Add(time.Duration(i) * time.Minute)}))
	}
	require.NoError(t, st.InsertResult(ctx, Result{GameID: "a", Player: "ada", Date: "2026-05-01", Score: 100}))

	games, err := st.ListGames(ctx, "", "anon", 10)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "c", games[0].ID, "newest first")

	require.NoError(t, st.ClaimAnonymous(ctx, "anon", "u1"))
	games, err = st.ListGames(ctx, "", "anon", 10)
	require.NoError(t, err)
	assert.Empty(t, games)

	games, err = st.ListGames(ctx, "u1", "", 2)
	require.NoError(t, err)
	assert.Len(t, games, 2)

	best, err := st.PersonalBest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 100, best.Score)
}

func TestStore_Leaderboard(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	started := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	results := []Result{
		{GameID: "g1", Player: "ada", Date: "2026-05-01", Score: 150},
		{GameID: "g2", Player: "bob", Date: "2026-05-01", Score: 300},
		{GameID: "g3", Player: "cy", Date: "2026-05-01", Score: 150},
		{GameID: "g4", Player: "dee", Date: "2026-05-02", Score: 280},
	}
	for _, r := range results {
		require.NoError(t, st.SaveGame(ctx, GameRow{ID: r.GameID, Player: r.Player, Status: "finished", StartedAt: started}))
		require.NoError(t, st.InsertResult(ctx, r))
	}
	// duplicate insert is ignored
	require.NoError(t, st.InsertResult(ctx, Result{GameID: "g1", Player: "ada", Date: "2026-05-01", Score: 0}))

	top, err := st.Leaderboard(ctx, "2026-05-01", 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"bob", "ada", "cy"}, []string{top[0].Player, top[1].Player, top[2].Player})
	assert.Equal(t, 150, top[1].Score)

	_, err = st.PersonalBest(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThrowsEncoding(t *testing.T) {
	assert.Equal(t, "10,7,2", EncodeThrows([]int{10, 7, 2}))
	assert.Equal(t, "", EncodeThrows(nil))

	pins, err := DecodeThrows("10,7,2")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 7, 2}, pins)

	pins, err = DecodeThrows("")
	require.NoError(t, err)
	assert.Nil(t, pins)

	_, err = DecodeThrows("1,x")
	assert.Error(t, err)
}

func TestMarks(t *testing.T) {
	g, err := bowling.Replay([]int{10, 7, 3, 9, 0, 10})
	require.NoError(t, err)
	strikes, spares := Marks(g.Frames())
	assert.Equal(t, 2, strikes)
	assert.Equal(t, 1, spares)
	assert.Equal(t, "2026-05-01", DateKey(time.Date(2026, 5, 1, 23, 30, 0, 0, time.FixedZone("x", 3600))))
}
