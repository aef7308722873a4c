package mux

import "net/http"

func (m *Mux) getUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := m.accounts.FindUser(r.Context(), currentUser(r).ID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
