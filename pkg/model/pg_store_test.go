package model

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
)

// pgStore returns a store on the database named by PG_DSN, or skips the test
func pgStore(t *testing.T) *PGStore {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN is not set")
	}

	dbh, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })

	driver, err := postgres.WithInstance(dbh, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../sql", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err)
	}

	return NewPGStore(dbh)
}

func TestPGStore_accounts(t *testing.T) {
	store := pgStore(t)
	a := assert.New(t)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, "pg account", 5000)
	require.NoError(t, err)
	a.NotZero(u.ID)
	a.Equal(5000, u.Money)

	_, err = store.Debit(ctx, u.ID, 5001)
	a.Equal(ErrInsufficientFunds, err)

	u, err = store.Debit(ctx, u.ID, 2000)
	a.NoError(err)
	a.Equal(3000, u.Money)

	u, err = store.Credit(ctx, u.ID, 500)
	a.NoError(err)
	a.Equal(3500, u.Money)

	_, err = store.Debit(ctx, -1, 1)
	a.ErrorIs(err, ErrUserNotFound)

	_, err = store.FindUser(ctx, -1)
	a.ErrorIs(err, ErrNotFound)
}

func TestPGStore_tables(t *testing.T) {
	store := pgStore(t)
	a := assert.New(t)
	ctx := context.Background()

	u1, err := store.CreateUser(ctx, "pg one", 100000)
	require.NoError(t, err)
	u2, err := store.CreateUser(ctx, "pg two", 100000)
	require.NoError(t, err)

	// a blind nobody else uses keeps other runs out of the way
	blind := int(time.Now().UnixNano()%1000000) + 1000000
	tbl := NewTable(blind)
	p1 := NewPlayer(u1, 50000)
	p1.Position = 3
	tbl.AddPlayer(p1)
	require.NoError(t, store.SaveTable(ctx, tbl))

	found, err := store.FindJoinable(ctx, blind, u2.ID)
	a.NoError(err)
	a.Equal(tbl.ID, found.ID)

	_, err = store.FindJoinable(ctx, blind, u1.ID)
	a.ErrorIs(err, ErrTableNotFound, "the user is already seated")

	_, err = store.FindJoinable(ctx, blind, u2.ID, tbl.ID)
	a.ErrorIs(err, ErrTableNotFound)

	p2 := NewPlayer(u2, 40000)
	p2.Position = 0
	tbl.AddPlayer(p2)
	tbl.Phase = PhaseFlop
	tbl.GameSeq = 4
	tbl.Button = 3
	tbl.Pot = 2000
	tbl.Community = [CommunitySize]int{1, 2, 3, 4, 5}
	tbl.TotalCallSize = [SeatCount]int{1000, 0, 0, 1000, 0, 0}
	p1.Hole = [2]int{6, 7}
	p1.Status = PlayerStatusInHand
	p1.PhaseCallSize = 500
	p1.Acted = true
	tbl.Touch()
	require.NoError(t, store.SaveTable(ctx, tbl))

	loaded, err := store.LoadTable(ctx, tbl.ID)
	require.NoError(t, err)
	a.Equal(PhaseFlop, loaded.Phase)
	a.Equal(int64(4), loaded.GameSeq)
	a.Equal(2, loaded.TotalPlayer)
	a.Equal(tbl.Community, loaded.Community)
	a.Equal(tbl.TotalCallSize, loaded.TotalCallSize)
	if a.Len(loaded.Players, 2) {
		a.Equal(0, loaded.Players[0].Position)
		a.Equal(u1.ID, loaded.Players[1].UserID)
		a.Equal([2]int{6, 7}, loaded.Players[1].Hole)
		a.Equal(500, loaded.Players[1].PhaseCallSize)
		a.True(loaded.Players[1].Acted)
		a.Equal(PlayerStatusInHand, loaded.Players[1].Status)
	}

	tables, err := store.ListTables(ctx, blind)
	a.NoError(err)
	a.Len(tables, 1)

	tables, err = store.TablesForUser(ctx, u2.ID)
	a.NoError(err)
	a.Len(tables, 1)

	h := NewHandHistory(loaded)
	h.Winners[u1.ID] = 2000
	h.Finished = time.Now().UTC()
	a.NoError(store.SaveHandHistory(ctx, h))
	a.NotZero(h.ID)

	_, err = store.LoadTable(ctx, "00000000-0000-0000-0000-000000000000")
	a.ErrorIs(err, ErrTableNotFound)
}
