package model

import (
	"context"
	"pokerv2-server/pkg/db"
)

const userColumns = `
users.id,
users.name,
users.money,
users.created,
users.updated`

func getUserByRow(row db.Scanner) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Money, &u.Created, &u.Updated); err != nil {
		return nil, err
	}

	return &u, nil
}

// FindUser returns the account by its ID
func (s *PGStore) FindUser(ctx context.Context, userID int64) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	u, err := getUserByRow(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, translateError(err, ErrUserNotFound)
	}

	return u, nil
}

// Debit takes money from the account if the balance covers it
func (s *PGStore) Debit(ctx context.Context, userID int64, amount int) (*User, error) {
	if amount < 0 {
		return nil, errInvalidAmount
	}

	const query = `
UPDATE users
SET money = money - $2,
    updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $1
  AND money >= $2
RETURNING ` + userColumns

	u, err := getUserByRow(s.db.QueryRowContext(ctx, query, userID, amount))
	if err == nil {
		return u, nil
	}

	if err := translateError(err, ErrInsufficientFunds); err != ErrInsufficientFunds {
		return nil, err
	}

	// nothing was updated, either the user is missing or the balance is short
	if _, err := s.FindUser(ctx, userID); err != nil {
		return nil, err
	}

	return nil, ErrInsufficientFunds
}

// Credit adds money to the account
func (s *PGStore) Credit(ctx context.Context, userID int64, amount int) (*User, error) {
	if amount < 0 {
		return nil, errInvalidAmount
	}

	const query = `
UPDATE users
SET money = money + $2,
    updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $1
RETURNING ` + userColumns

	u, err := getUserByRow(s.db.QueryRowContext(ctx, query, userID, amount))
	if err != nil {
		return nil, translateError(err, ErrUserNotFound)
	}

	return u, nil
}

// CreateUser opens an account with the starting balance
func (s *PGStore) CreateUser(ctx context.Context, name string, money int) (*User, error) {
	if money < 0 {
		return nil, errInvalidAmount
	}

	const query = `
INSERT INTO users (name, money)
VALUES ($1, $2)
RETURNING ` + userColumns

	u, err := getUserByRow(s.db.QueryRowContext(ctx, query, name, money))
	if err != nil {
		return nil, translateError(err, ErrUserNotFound)
	}

	return u, nil
}
