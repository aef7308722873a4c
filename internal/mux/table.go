package mux

import (
	"errors"
	"net/http"
	"pokerv2-server/pkg/holdem"
	"pokerv2-server/pkg/model"
	"strconv"
)

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		blind := 0
		if blindStr := r.FormValue("blind"); blindStr != "" {
			blind, err = strconv.Atoi(blindStr)
			if err != nil || blind < 0 {
				writeJSONError(w, http.StatusBadRequest, errors.New("blind must be a positive number"))
				return
			}
		}

		tables, err := m.pitBoss.List(r.Context(), blind)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, paginate(tables, start, rows))
	}
}

func (m *Mux) getTableContext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables, err := m.pitBoss.Context(r.Context(), currentUser(r).ID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tables)
	}
}

type joinPayload struct {
	BuyInBB int `json:"buyInBB"`
	Blind   int `json:"blind"`
}

type joinResponse struct {
	Table  *model.TableView `json:"table"`
	Player *model.Player    `json:"player"`
}

func (m *Mux) postTableJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var jp joinPayload
		if !decodeRequest(w, r, &jp) {
			return
		}

		tbl, player, err := m.pitBoss.Join(r.Context(), currentUser(r).ID, jp.BuyInBB, jp.Blind)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, joinResponse{Table: tbl, Player: player})
	}
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentTable(r))
	}
}

func (m *Mux) postTableUUIDJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var jp joinPayload
		if !decodeRequest(w, r, &jp) {
			return
		}

		tbl, player, err := m.pitBoss.JoinTable(r.Context(), currentTable(r).ID, currentUser(r).ID, jp.BuyInBB)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, joinResponse{Table: tbl, Player: player})
	}
}

func (m *Mux) postTableUUIDStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := m.pitBoss.StartGame(r.Context(), currentTable(r).ID); err != nil {
			writeError(w, err)
			return
		}

		m.writeTable(w, r)
	}
}

func (m *Mux) postTableUUIDExit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tbl, err := m.pitBoss.Exit(r.Context(), currentTable(r).ID, currentUser(r).ID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tbl)
	}
}

type actionPayload struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (m *Mux) postTableUUIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ap actionPayload
		if !decodeRequest(w, r, &ap) {
			return
		}

		tbl, err := m.act(r, currentTable(r).ID, ap)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tbl)
	}
}

func (m *Mux) act(r *http.Request, tableID string, ap actionPayload) (*model.TableView, error) {
	action, err := holdem.ActionFromString(ap.Action)
	if err != nil {
		return nil, model.UserError(err.Error())
	}

	return m.pitBoss.Act(r.Context(), tableID, currentUser(r).ID, action, ap.Amount)
}

func (m *Mux) postTableUUIDNextPhase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := m.pitBoss.NextPhase(r.Context(), currentTable(r).ID); err != nil {
			writeError(w, err)
			return
		}

		m.writeTable(w, r)
	}
}

// writeTable responds with the table as the caller sees it
func (m *Mux) writeTable(w http.ResponseWriter, r *http.Request) {
	tbl, err := m.pitBoss.Get(r.Context(), currentTable(r).ID, currentUser(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tbl)
}
