package mux

import (
	"encoding/json"
	"fmt"
	"pokerv2-server/pkg/deck"
	"pokerv2-server/pkg/model"
	"pokerv2-server/pkg/room"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startingMoney = 1000000

func Test_postTableJoin(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	u1 := ts.user(t, startingMoney)
	u2 := ts.user(t, startingMoney)

	var jr joinResponse
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100}, &jr, 201, u1.ID)
	a.Equal(1, jr.Table.TotalPlayer)
	a.Equal(1000, jr.Table.Blind)
	a.Equal(model.PhaseWaiting, jr.Table.Phase)
	a.Equal(0, jr.Player.Position)
	a.Equal(100000, jr.Player.Stack)

	tableID := jr.Table.ID
	jr = joinResponse{}
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100, Blind: 1000}, &jr, 201, u2.ID)
	a.Equal(tableID, jr.Table.ID)
	a.Equal(model.PhasePreFlop, jr.Table.Phase)
	a.Equal(2, jr.Table.TotalPlayer)

	var errObj errorResponse
	poor := ts.user(t, 10)
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100}, &errObj, 409, poor.ID)
	a.Equal("insufficient funds", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 0}, &errObj, 400, poor.ID)
	a.Equal("buy-in must be at least one big blind", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 4, Blind: 1 << 62}, &errObj, 400, u1.ID)
	a.Equal("buy-in is too large", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts.Server, "/table/join", "{", &errObj, 400, poor.ID)

	var profile model.User
	assertGet(t, ts.Server, "/user/profile", &profile, 200, u1.ID)
	a.Equal(startingMoney-100000, profile.Money)
}

func Test_getTable(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	u1 := ts.user(t, startingMoney)
	u2 := ts.user(t, startingMoney)

	var jr joinResponse
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100}, &jr, 201, u1.ID)
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100, Blind: 2000}, nil, 201, u1.ID)
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100}, nil, 201, u2.ID)

	var tables []*model.TableView
	assertGet(t, ts.Server, "/table", &tables, 200, u2.ID)
	a.Len(tables, 2)

	assertGet(t, ts.Server, "/table?blind=2000", &tables, 200, u2.ID)
	if a.Len(tables, 1) {
		a.Equal(2000, tables[0].Blind)
	}

	assertGet(t, ts.Server, "/table?rows=1&start=1", &tables, 200, u2.ID)
	a.Len(tables, 1)

	assertGet(t, ts.Server, "/table/context", &tables, 200, u1.ID)
	a.Len(tables, 2)
	assertGet(t, ts.Server, "/table/context", &tables, 200, u2.ID)
	a.Len(tables, 1)

	var errObj errorResponse
	assertGet(t, ts.Server, "/table?blind=lots", &errObj, 400, u2.ID)
	a.Equal("blind must be a positive number", errObj.Message)

	errObj = errorResponse{}
	assertGet(t, ts.Server, "/table?start=-1", &errObj, 400, u2.ID)
	a.Equal("start cannot be less than zero", errObj.Message)

	// hole cards are only shown to their owner
	var tbl model.TableView
	assertGet(t, ts.Server, "/table/"+jr.Table.ID, &tbl, 200, u1.ID)
	a.Equal(model.PhasePreFlop, tbl.Phase)
	for _, p := range tbl.Players {
		if p.UserID == u1.ID {
			a.NotEqual(deck.NoCard, p.Hole[0])
		} else {
			a.Equal([2]int{deck.NoCard, deck.NoCard}, p.Hole)
		}
	}

	a.Equal([model.CommunitySize]int{deck.NoCard, deck.NoCard, deck.NoCard, deck.NoCard, deck.NoCard}, tbl.Community)

	errObj = errorResponse{}
	assertGet(t, ts.Server, "/table/00000000-0000-0000-0000-000000000000", &errObj, 404, u1.ID)
	a.Equal("table not found", errObj.Message)
}

func Test_tableLifecycle(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	u1 := ts.user(t, startingMoney)
	u2 := ts.user(t, startingMoney)

	var jr joinResponse
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100}, &jr, 201, u1.ID)
	path := "/table/" + jr.Table.ID
	assertPost(t, ts.Server, path+"/join", joinPayload{BuyInBB: 100}, &jr, 201, u2.ID)
	a.Equal(model.PhasePreFlop, jr.Table.Phase)
	a.Equal(1, jr.Player.Position)

	var errObj errorResponse
	assertPost(t, ts.Server, path+"/join", joinPayload{BuyInBB: 100}, &errObj, 409, u2.ID)
	a.Equal("user is already seated at the table", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts.Server, path+"/action", actionPayload{Action: "call"}, &errObj, 400, u2.ID)
	a.Equal("it is not your turn", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts.Server, path+"/action", actionPayload{Action: "dance"}, &errObj, 400, u1.ID)
	a.Equal("unknown action for identifier: dance", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts.Server, path+"/action", actionPayload{Action: "check"}, &errObj, 400, u1.ID)
	a.Equal("cannot check: there is a bet to call", errObj.Message)

	var tbl model.TableView
	assertPost(t, ts.Server, path+"/action", actionPayload{Action: "call"}, &tbl, 200, u1.ID)
	a.Equal(1, tbl.ActionPos)

	assertPost(t, ts.Server, path+"/action", actionPayload{Action: "check"}, &tbl, 200, u2.ID)
	a.Equal(model.PhaseFlop, tbl.Phase)
	a.Equal(2000, tbl.Pot)
	a.NotEqual(deck.NoCard, tbl.Community[2])
	a.Equal(deck.NoCard, tbl.Community[3])

	assertPost(t, ts.Server, path+"/next-phase", nil, &tbl, 200, u1.ID)
	a.Equal(model.PhaseTurn, tbl.Phase)

	errObj = errorResponse{}
	assertPost(t, ts.Server, path+"/start", nil, &errObj, 409, u1.ID)
	a.Equal("a hand is in progress", errObj.Message)

	// leaving hands the pot to the last player
	assertPost(t, ts.Server, path+"/exit", nil, &tbl, 200, u2.ID)
	a.Equal(model.PhaseWaiting, tbl.Phase)
	if a.Len(tbl.Players, 1) {
		a.Equal(101000, tbl.Players[0].Stack)
	}

	errObj = errorResponse{}
	assertPost(t, ts.Server, path+"/exit", nil, &errObj, 404, u2.ID)
	a.Equal("player not found", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts.Server, path+"/start", nil, &errObj, 400, u1.ID)
	a.Equal("not enough players to start a hand", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts.Server, path+"/next-phase", nil, &errObj, 400, u1.ID)
	a.Equal("no betting round in progress", errObj.Message)

	u3 := ts.user(t, startingMoney)
	assertPost(t, ts.Server, path+"/join", joinPayload{BuyInBB: 100}, &jr, 201, u3.ID)
	a.Equal(model.PhasePreFlop, jr.Table.Phase, "a second player starts the hand")
	a.Equal(int64(2), jr.Table.GameSeq)
}

type wsMessage struct {
	Kind       room.EventKind   `json:"kind"`
	Table      *model.TableView `json:"table"`
	Data       json.RawMessage  `json:"data"`
	Message    string           `json:"message"`
	StatusCode int              `json:"statusCode"`
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func Test_getTableUUIDWS(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	u1 := ts.user(t, startingMoney)
	u2 := ts.user(t, startingMoney)

	var jr joinResponse
	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100}, &jr, 201, u1.ID)

	wsURL := fmt.Sprintf("ws%s/table/%s/ws?user_id=%d", strings.TrimPrefix(ts.URL, "http"), jr.Table.ID, u1.ID)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	a.Equal(room.TableState, msg.Kind)
	a.Equal(1, msg.Table.TotalPlayer)

	assertPost(t, ts.Server, "/table/join", joinPayload{BuyInBB: 100}, nil, 201, u2.ID)

	msg = readMessage(t, conn)
	a.Equal(room.PlayerJoin, msg.Kind)
	a.Equal(2, msg.Table.TotalPlayer)

	msg = readMessage(t, conn)
	a.Equal(room.GameStart, msg.Kind)
	a.Equal(model.PhasePreFlop, msg.Table.Phase)
	for _, p := range msg.Table.Players {
		if p.UserID == u1.ID {
			a.NotEqual(deck.NoCard, p.Hole[0])
		} else {
			a.Equal([2]int{deck.NoCard, deck.NoCard}, p.Hole)
		}
	}

	// actions can be sent over the socket
	require.NoError(t, conn.WriteJSON(actionPayload{Action: "check"}))
	msg = readMessage(t, conn)
	a.Equal(400, msg.StatusCode)
	a.Equal("cannot check: there is a bet to call", msg.Message)

	require.NoError(t, conn.WriteJSON(actionPayload{Action: "call"}))
	msg = readMessage(t, conn)
	a.Equal(room.PlayerAction, msg.Kind)
	a.Equal(1, msg.Table.ActionPos)
	a.Contains(string(msg.Data), `"amount":1000`)

	assertGet(t, ts.Server, "/table/"+jr.Table.ID+"/ws", nil, 401)
}
