package model

import (
	"errors"
	"fmt"
)

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrNotFound is the parent of every not-found error
var ErrNotFound = errors.New("not found")

// ErrTableNotFound happens when a table does not exist
var ErrTableNotFound = fmt.Errorf("table %w", ErrNotFound)

// ErrPlayerNotFound happens when the user is not seated at the table
var ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)

// ErrUserNotFound happens when the account does not exist
var ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

// ErrInsufficientFunds happens when a buy-in or a forced bet cannot be covered
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrTableFull happens when every seat is taken
var ErrTableFull = errors.New("table is full")

// ErrNoPlayers happens when the button is moved on an empty table
// This is a programming error. It should never be retried.
var ErrNoPlayers = errors.New("no players at the table")

// ErrNotEnoughPlayers happens when a hand is started with fewer than two players holding chips
var ErrNotEnoughPlayers = errors.New("not enough players to start a hand")

// ErrAlreadySeated happens when the user joins a table they are already seated at
var ErrAlreadySeated = errors.New("user is already seated at the table")

// ErrDuplicateKey happens on a unique constraint violation
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrHandInProgress happens when a table can only be joined between hands
var ErrHandInProgress = UserError("a hand is in progress")
