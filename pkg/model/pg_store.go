package model

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// errInvalidAmount happens when a negative amount is moved between accounts
var errInvalidAmount = errors.New("amount must not be negative")

// PGStore is a Store backed by Postgres
type PGStore struct {
	db *sql.DB
}

var _ Store = (*PGStore)(nil)

// NewPGStore returns a Store on top of the database
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}

// translateError maps driver errors onto the package sentinels
func translateError(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Constraint)
	}

	return err
}

func toInt64s(values []int) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}

	return out
}

// copyInts copies scanned database values into a fixed-size destination
func copyInts(dst []int, src []int64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("expected %d values, got %d", len(dst), len(src))
	}

	for i, v := range src {
		dst[i] = int(v)
	}

	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{
		Time:  t,
		Valid: !t.IsZero(),
	}
}
