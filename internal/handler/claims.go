package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/middleware"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/service"
)

func (h *Handler) claim(w http.ResponseWriter, r *http.Request) {
	res, err := h.claims.Claim(
		r.Context(),
		chi.URLParam(r, "groupID"),
		chi.URLParam(r, "itemID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if res.Outcome == service.OutcomeClaimed {
		status = http.StatusCreated
		h.metrics.ClaimsCreated.Inc()
	}
	writeJSON(w, status, outcomeResponse{Outcome: res.Outcome, Claim: toClaim(res.Claim)})
}

func (h *Handler) unclaim(w http.ResponseWriter, r *http.Request) {
	res, err := h.claims.Unclaim(
		r.Context(),
		chi.URLParam(r, "groupID"),
		chi.URLParam(r, "itemID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcomeResponse{Outcome: res.Outcome})
}
