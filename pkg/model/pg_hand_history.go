package model

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"
)

// SaveHandHistory inserts the record of a finished hand
func (s *PGStore) SaveHandHistory(ctx context.Context, h *HandHistory) error {
	winners, err := json.Marshal(h.Winners)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO hand_histories (table_id, game_seq, button, pot_pre_flop, pot_flop, pot_turn, pot_river, community,
                            positions, cards, showdown_user_ids, winners, finished)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, created`

	row := s.db.QueryRowContext(ctx, query,
		h.TableID,
		h.GameSeq,
		h.Button,
		h.PotPreFlop,
		h.PotFlop,
		h.PotTurn,
		h.PotRiver,
		pq.Array(toInt64s(h.Community[:])),
		pq.Array(toInt64s(h.Positions)),
		pq.Array(toInt64s(h.Cards)),
		pq.Array(h.ShowdownUserIDs),
		winners,
		h.Finished,
	)

	if err := row.Scan(&h.ID, &h.Created); err != nil {
		return translateError(err, ErrTableNotFound)
	}

	return nil
}
