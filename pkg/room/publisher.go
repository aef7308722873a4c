package room

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Publisher delivers notifications
// Delivery is best effort. An error is logged by the caller and never undoes a change.
type Publisher interface {
	Publish(topic string, n *Notification) error
}

// LogPublisher writes every notification to the log
type LogPublisher struct{}

// Publish implements Publisher
func (LogPublisher) Publish(topic string, n *Notification) error {
	logrus.WithFields(logrus.Fields{
		"topic":   topic,
		"kind":    n.Kind,
		"phase":   n.Table.Phase.String(),
		"players": n.Table.TotalPlayer,
	}).Debug("table notification")
	return nil
}

// MultiPublisher publishes to every publisher in order
type MultiPublisher []Publisher

// Publish implements Publisher
func (m MultiPublisher) Publish(topic string, n *Notification) error {
	var failures []string
	for _, p := range m {
		if err := p.Publish(topic, n); err != nil {
			failures = append(failures, err.Error())
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("publish failed: %s", strings.Join(failures, "; "))
	}

	return nil
}
