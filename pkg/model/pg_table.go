package model

import (
	"context"
	"database/sql"
	"pokerv2-server/pkg/db"
	"time"

	"github.com/lib/pq"
)

const tableColumns = `
tables.id,
tables.game_seq,
tables.blind,
tables.total_player,
tables.pot,
tables.button,
tables.betting_pos,
tables.action_pos,
tables.phase,
tables.betting_size,
tables.min_raise,
tables.community,
tables.total_call_size,
tables.last_action_time,
tables.created,
tables.updated`

const playerColumns = `
players.id,
players.table_id,
players.user_id,
players.display_name,
players.position,
players.stack,
players.phase_call_size,
players.status,
players.hole,
players.acted,
players.created`

func getTableByRow(row db.Scanner) (*Table, error) {
	var t Table
	var community, totalCallSize []int64
	var lastAction sql.NullTime
	if err := row.Scan(
		&t.ID,
		&t.GameSeq,
		&t.Blind,
		&t.TotalPlayer,
		&t.Pot,
		&t.Button,
		&t.BettingPos,
		&t.ActionPos,
		&t.Phase,
		&t.BettingSize,
		&t.MinRaise,
		pq.Array(&community),
		pq.Array(&totalCallSize),
		&lastAction,
		&t.Created,
		&t.Updated,
	); err != nil {
		return nil, err
	}

	if err := copyInts(t.Community[:], community); err != nil {
		return nil, err
	}

	if err := copyInts(t.TotalCallSize[:], totalCallSize); err != nil {
		return nil, err
	}

	if lastAction.Valid {
		t.LastActionTime = lastAction.Time
	}

	t.Players = make([]*Player, 0, SeatCount)
	return &t, nil
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var p Player
	var hole []int64
	if err := row.Scan(
		&p.ID,
		&p.TableID,
		&p.UserID,
		&p.DisplayName,
		&p.Position,
		&p.Stack,
		&p.PhaseCallSize,
		&p.Status,
		pq.Array(&hole),
		&p.Acted,
		&p.Created,
	); err != nil {
		return nil, err
	}

	if err := copyInts(p.Hole[:], hole); err != nil {
		return nil, err
	}

	return &p, nil
}

// LoadTable returns the table and its seated players
func (s *PGStore) LoadTable(ctx context.Context, tableID string) (*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE id = $1`

	t, err := getTableByRow(s.db.QueryRowContext(ctx, query, tableID))
	if err != nil {
		return nil, translateError(err, ErrTableNotFound)
	}

	if err := s.loadPlayers(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *PGStore) loadPlayers(ctx context.Context, t *Table) error {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE table_id = $1
ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query, t.ID)
	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		p, err := getPlayerByRow(rows)
		if err != nil {
			return err
		}

		t.Players = append(t.Players, p)
	}

	return rows.Err()
}

// SaveTable upserts the table and replaces its players
func (s *PGStore) SaveTable(ctx context.Context, t *Table) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			rollback(tx)
			err = translateError(err, ErrTableNotFound)
			return
		}

		err = tx.Commit()
	}()

	t.Updated = time.Now().UTC()
	const query = `
INSERT INTO tables (id, game_seq, blind, total_player, pot, button, betting_pos, action_pos, phase, betting_size,
                    min_raise, community, total_call_size, last_action_time, created, updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (id) DO UPDATE
    SET game_seq         = excluded.game_seq,
        blind            = excluded.blind,
        total_player     = excluded.total_player,
        pot              = excluded.pot,
        button           = excluded.button,
        betting_pos      = excluded.betting_pos,
        action_pos       = excluded.action_pos,
        phase            = excluded.phase,
        betting_size     = excluded.betting_size,
        min_raise        = excluded.min_raise,
        community        = excluded.community,
        total_call_size  = excluded.total_call_size,
        last_action_time = excluded.last_action_time,
        updated          = excluded.updated`

	if _, err = tx.ExecContext(ctx, query,
		t.ID,
		t.GameSeq,
		t.Blind,
		t.TotalPlayer,
		t.Pot,
		t.Button,
		t.BettingPos,
		t.ActionPos,
		t.Phase,
		t.BettingSize,
		t.MinRaise,
		pq.Array(toInt64s(t.Community[:])),
		pq.Array(toInt64s(t.TotalCallSize[:])),
		nullTime(t.LastActionTime),
		t.Created,
		t.Updated,
	); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM players WHERE table_id = $1`, t.ID); err != nil {
		return err
	}

	if len(t.Players) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO players (id, table_id, user_id, display_name, position, stack, phase_call_size, status, hole, acted, created)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`)
	if err != nil {
		return err
	}

	defer stmt.Close()

	for _, p := range t.Players {
		if _, err = stmt.ExecContext(ctx,
			p.ID,
			t.ID,
			p.UserID,
			p.DisplayName,
			p.Position,
			p.Stack,
			p.PhaseCallSize,
			p.Status,
			pq.Array(toInt64s(p.Hole[:])),
			p.Acted,
			p.Created,
		); err != nil {
			return err
		}
	}

	return nil
}

// FindJoinable returns the oldest waiting table with a free seat the user is not at
func (s *PGStore) FindJoinable(ctx context.Context, blind int, userID int64, exclude ...string) (*Table, error) {
	if exclude == nil {
		exclude = []string{}
	}

	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE phase = $1
  AND blind = $2
  AND total_player < $3
  AND NOT EXISTS(SELECT 1 FROM players WHERE players.table_id = tables.id AND players.user_id = $4)
  AND NOT (tables.id::text = ANY ($5))
ORDER BY created
LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, PhaseWaiting, blind, SeatCount, userID, pq.Array(exclude))
	t, err := getTableByRow(row)
	if err != nil {
		return nil, translateError(err, ErrTableNotFound)
	}

	if err := s.loadPlayers(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// ListTables returns every table with the blind, or all tables when blind is 0
func (s *PGStore) ListTables(ctx context.Context, blind int) ([]*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE $1 = 0 OR blind = $1
ORDER BY created`

	return s.queryTables(ctx, query, blind)
}

// TablesForUser returns the tables the user is seated at
func (s *PGStore) TablesForUser(ctx context.Context, userID int64) ([]*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
INNER JOIN players ON tables.id = players.table_id
WHERE players.user_id = $1
ORDER BY tables.created`

	return s.queryTables(ctx, query, userID)
}

func (s *PGStore) queryTables(ctx context.Context, query string, args ...interface{}) ([]*Table, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	tables := make([]*Table, 0)
	for rows.Next() {
		t, err := getTableByRow(rows)
		if err != nil {
			return nil, err
		}

		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range tables {
		if err := s.loadPlayers(ctx, t); err != nil {
			return nil, err
		}
	}

	return tables, nil
}
