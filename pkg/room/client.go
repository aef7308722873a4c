package room

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// CloseError contains the reason why the connection was closed
	CloseError error

	userID  int64
	tableID string
}

// NewClient returns a new client object
// userID is 0 for spectators.
func NewClient(conn *websocket.Conn, userID int64, tableID string) *Client {
	return &Client{
		send:    make(chan interface{}, 256),
		Conn:    conn,
		userID:  userID,
		tableID: tableID,
	}
}

// Send send a message to the web client
// Returns false if the client is not keeping up and the message was dropped.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// UserID returns the user the client connected as
func (c *Client) UserID() int64 {
	return c.userID
}

// String returns a traceable identifier for the user and table
func (c *Client) String() string {
	return fmt.Sprintf("%d:%s", c.userID, c.tableID)
}
