package mux

import (
	"encoding/json"
	"net/http"
	"pokerv2-server/pkg/room"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

func (m *Mux) getTableUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		tbl := currentTable(r)
		user := currentUser(r)
		client := room.NewClient(conn, user.ID, tbl.ID)
		topic := room.Topic(tbl.ID)

		m.hub.Subscribe(topic, client)

		// the state is read after subscribing so no notification falls in between
		if state, err := m.pitBoss.Get(r.Context(), tbl.ID, user.ID); err == nil {
			client.Send(&room.Message{Kind: room.TableState, Table: state})
		}

		waitForCloseFrame := make(chan bool)
		defer func() {
			m.hub.Unsubscribe(topic, client)
			_ = conn.Close()
			close(waitForCloseFrame)
		}()

		go m.webSocketWriteLoop(client, waitForCloseFrame)
		m.webSocketReadLoop(r, client)
		logrus.WithError(client.CloseError).WithField("client", client.String()).Debug("client disconnected")
	}
}

func (m *Mux) webSocketWriteLoop(client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-waitForCloseFrame:
			return
		case msg, ok := <-client.SendChan():
			if !ok {
				return
			}

			if logrus.IsLevelEnabled(logrus.TraceLevel) {
				msgBytes, _ := json.Marshal(msg)
				logrus.WithField("message", string(msgBytes)).WithField("client", client.String()).Trace("sending message to client")
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		}
	}
}

// webSocketReadLoop takes betting actions from the client until the connection closes
// Errors go back to the client only, the table notification carries the result of a good action.
func (m *Mux) webSocketReadLoop(r *http.Request, client *room.Client) {
	for {
		var msg actionPayload
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Error("could not read message")
			}

			client.CloseError = err
			return
		}

		if _, err := m.act(r, currentTable(r).ID, msg); err != nil {
			code := statusCode(err)
			message := err.Error()
			if code >= 500 {
				logrus.WithError(err).WithField("client", client.String()).Error("could not apply action")
				message = http.StatusText(code)
			}

			client.Send(errorResponse{Message: message, StatusCode: code})
		}
	}
}
