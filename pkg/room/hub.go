package room

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub fans notifications out to websocket clients subscribed to a topic
type Hub struct {
	clients map[string]map[*Client]bool
	lock    sync.RWMutex
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]bool),
	}
}

// Subscribe adds the client to the topic
func (h *Hub) Subscribe(topic string, client *Client) {
	h.lock.Lock()
	defer h.lock.Unlock()

	clients, ok := h.clients[topic]
	if !ok {
		clients = make(map[*Client]bool)
		h.clients[topic] = clients
	}

	clients[client] = true
	logrus.WithField("client", client.String()).Debug("client subscribed")
}

// Unsubscribe removes the client from the topic
func (h *Hub) Unsubscribe(topic string, client *Client) {
	h.lock.Lock()
	defer h.lock.Unlock()

	clients, ok := h.clients[topic]
	if !ok {
		return
	}

	delete(clients, client)
	if len(clients) == 0 {
		delete(h.clients, topic)
	}

	logrus.WithField("client", client.String()).Debug("client unsubscribed")
}

// Clients returns the clients subscribed (at the time) to the topic
func (h *Hub) Clients(topic string) []*Client {
	h.lock.RLock()
	defer h.lock.RUnlock()

	clients := make([]*Client, 0, len(h.clients[topic]))
	for client := range h.clients[topic] {
		clients = append(clients, client)
	}

	return clients
}

// Publish implements Publisher
// Every client gets the table as its user is allowed to see it. Publish never blocks on a slow client.
func (h *Hub) Publish(topic string, n *Notification) error {
	dropped := 0
	clients := h.Clients(topic)
	for _, client := range clients {
		if !client.Send(n.MessageFor(client.userID)) {
			dropped++
		}
	}

	if dropped > 0 {
		return fmt.Errorf("%d of %d clients dropped %s", dropped, len(clients), n.Kind)
	}

	return nil
}
