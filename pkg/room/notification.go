package room

import (
	"pokerv2-server/pkg/model"
)

// EventKind names a change to a table
type EventKind string

// constants for EventKind
const (
	PlayerJoin   EventKind = "PLAYER_JOIN"
	PlayerExit   EventKind = "PLAYER_EXIT"
	GameStart    EventKind = "GAME_START"
	PlayerAction EventKind = "PLAYER_ACTION"
	NextPhase    EventKind = "NEXT_PHASE"
	HandEnd      EventKind = "HAND_END"

	// TableState is sent once to a websocket client when it subscribes
	TableState EventKind = "TABLE_STATE"
)

// Topic returns the topic notifications for the table are published on
func Topic(tableID string) string {
	return "/topic/board/" + tableID
}

// Notification is a change to a table
// Table is a copy taken when the change happened and may be read freely.
type Notification struct {
	Kind  EventKind
	Table *model.Table
	Data  interface{}
}

// Message is a notification as a single viewer may see it
type Message struct {
	Kind  EventKind        `json:"kind"`
	Table *model.TableView `json:"table"`
	Data  interface{}      `json:"data,omitempty"`
}

// MessageFor masks the notification for the user
func (n *Notification) MessageFor(userID int64) *Message {
	return &Message{
		Kind:  n.Kind,
		Table: n.Table.Snapshot(userID),
		Data:  n.Data,
	}
}
