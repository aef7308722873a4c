package model

import "context"

// AccountStore holds the user accounts whose money buys into tables
type AccountStore interface {
	FindUser(ctx context.Context, userID int64) (*User, error)
	// Debit takes money from the account, failing with ErrInsufficientFunds
	Debit(ctx context.Context, userID int64, amount int) (*User, error)
	Credit(ctx context.Context, userID int64, amount int) (*User, error)
	CreateUser(ctx context.Context, name string, money int) (*User, error)
}

// TableStore persists table aggregates
type TableStore interface {
	LoadTable(ctx context.Context, tableID string) (*Table, error)
	SaveTable(ctx context.Context, table *Table) error
	// FindJoinable returns the oldest waiting table with a free seat that userID is not seated at
	// Tables in exclude are skipped.
	FindJoinable(ctx context.Context, blind int, userID int64, exclude ...string) (*Table, error)
	ListTables(ctx context.Context, blind int) ([]*Table, error)
	TablesForUser(ctx context.Context, userID int64) ([]*Table, error)
	SaveHandHistory(ctx context.Context, history *HandHistory) error
}

// Store is the full persistence layer
type Store interface {
	AccountStore
	TableStore
}
