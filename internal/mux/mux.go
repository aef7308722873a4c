package mux

import (
	"context"
	"errors"
	"net/http"
	"pokerv2-server/pkg/model"
	"pokerv2-server/pkg/room"
	"strconv"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// UserHeader identifies the caller
const UserHeader = "Poker-User-ID"

type ctxKey int

const (
	ctxUserKey ctxKey = iota
	ctxTableKey
)

var errMissingUser = errors.New("missing or invalid " + UserHeader)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	pitBoss  *room.PitBoss
	hub      *room.Hub
	accounts model.AccountStore

	// store for testing purposes
	userRouter *gmux.Router
}

// NewMux returns a new HTTP mux
// The hub must be the (or one of the) publishers the pit boss was created with for
// websocket clients to receive table notifications.
func NewMux(version string, pitBoss *room.PitBoss, hub *room.Hub, accounts model.AccountStore) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		pitBoss:  pitBoss,
		hub:      hub,
		accounts: accounts,
	}

	this.userRouter = this.Router.NewRoute().Subrouter()
	this.userRouter.Use(this.userMiddleware)

	// unidentified endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires the user header
	{
		r := this.userRouter

		r.Methods(http.MethodGet).Path("/user/profile").Handler(this.getUserProfile())

		r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
		r.Methods(http.MethodGet).Path("/table/context").Handler(this.getTableContext())
		r.Methods(http.MethodPost).Path("/table/join").Handler(this.postTableJoin())

		tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Use(this.tableMiddleware)

		tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
		tr.Methods(http.MethodPost).Path("/join").Handler(this.postTableUUIDJoin())
		tr.Methods(http.MethodPost).Path("/start").Handler(this.postTableUUIDStart())
		tr.Methods(http.MethodPost).Path("/exit").Handler(this.postTableUUIDExit())
		tr.Methods(http.MethodPost).Path("/action").Handler(this.postTableUUIDAction())
		tr.Methods(http.MethodPost).Path("/next-phase").Handler(this.postTableUUIDNextPhase())
	}

	return this
}

// userMiddleware loads the caller's account
// Browsers cannot set headers on a websocket upgrade, so the user_id query parameter is accepted too.
func (m *Mux) userMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get(UserHeader)
		if idStr == "" {
			idStr = r.FormValue("user_id")
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			writeJSONError(w, http.StatusUnauthorized, errMissingUser)
			return
		}

		user, err := m.accounts.FindUser(r.Context(), id)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			logrus.WithFields(logrus.Fields{
				"userID":     id,
				"remoteAddr": remoteAddr(r),
			}).Warn("unknown user")
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxUserKey, user)
		w.Header().Set(UserHeader, strconv.FormatInt(user.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// tableMiddleware requires userMiddleware to execute first
func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		tbl, err := m.pitBoss.Get(r.Context(), gmux.Vars(r)["uuid"], user.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, tbl)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func currentUser(r *http.Request) *model.User {
	return r.Context().Value(ctxUserKey).(*model.User)
}

func currentTable(r *http.Request) *model.TableView {
	return r.Context().Value(ctxTableKey).(*model.TableView)
}
