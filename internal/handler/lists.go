package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/middleware"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/service"
)

type createListRequest struct {
	Name string `json:"name"`
}

type itemRequest struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Notes        string `json:"notes"`
	HighPriority bool   `json:"high_priority"`
}

type surpriseItemRequest struct {
	GroupID string `json:"group_id"`
	itemRequest
}

func (req itemRequest) input() service.ItemInput {
	return service.ItemInput{
		Name:         req.Name,
		URL:          req.URL,
		Notes:        req.Notes,
		HighPriority: req.HighPriority,
	}
}

func (h *Handler) createList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	list, err := h.lists.CreateList(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toList(list))
}

func (h *Handler) myLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.MyLists(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLists(lists))
}

func (h *Handler) listView(w http.ResponseWriter, r *http.Request) {
	list, items, err := h.lists.ListView(
		r.Context(),
		chi.URLParam(r, "listID"),
		middleware.GetUserID(r.Context()),
		r.URL.Query().Get("group"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listWithItemsResponse{List: toList(list), Items: toItems(items)})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	item, err := h.lists.AddItem(r.Context(), chi.URLParam(r, "listID"), middleware.GetUserID(r.Context()), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItem(item))
}

func (h *Handler) hideItem(w http.ResponseWriter, r *http.Request) {
	err := h.lists.HideItem(
		r.Context(),
		chi.URLParam(r, "listID"),
		chi.URLParam(r, "itemID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addSurpriseItem(w http.ResponseWriter, r *http.Request) {
	var req surpriseItemRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	item, err := h.lists.AddSurpriseItem(
		r.Context(),
		chi.URLParam(r, "listID"),
		req.GroupID,
		middleware.GetUserID(r.Context()),
		req.input(),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	h.metrics.ClaimsCreated.Inc()
	writeJSON(w, http.StatusCreated, toItem(item))
}
