package handler

import (
	"net/http"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/middleware"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.accounts.Dashboard(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboard(dash))
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	res, err := h.accounts.DeleteAccount(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*cascadeResponse{"deleted": toCascade(res)})
}
