// Package holdem holds the rules of No-Limit Texas Hold'em as operations on a model.Table
//
// Nothing here is safe for concurrent use. Callers serialize access to a table and
// work on a clone so a failed operation can be thrown away.
package holdem
