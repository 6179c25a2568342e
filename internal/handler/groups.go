package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/middleware"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/service"
)

type createGroupRequest struct {
	Name   string `json:"name"`
	ListID string `json:"list_id"`
}

type listSelectionRequest struct {
	ListID string `json:"list_id"`
}

type inviteRequest struct {
	// Identifier is the invitee's username or email.
	Identifier string `json:"identifier"`
}

type memberTargetRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	group, err := h.groups.Create(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.ListID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.metrics.GroupsCreated.Inc()
	writeJSON(w, http.StatusCreated, toGroup(group))
}

func (h *Handler) myGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.MyGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroups(groups))
}

// searchGroups resolves an exact id or name first, then falls back to a
// substring search, so the join form takes either.
func (h *Handler) searchGroups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	if group, err := h.groups.Resolve(r.Context(), q); err == nil {
		writeJSON(w, http.StatusOK, toGroups([]*models.Group{group}))
		return
	} else if !errors.Is(err, service.ErrNotFound) {
		writeError(w, err)
		return
	}

	groups, err := h.groups.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroups(groups))
}

func (h *Handler) groupView(w http.ResponseWriter, r *http.Request) {
	view, err := h.groups.View(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupView(view))
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	res, err := h.groups.Delete(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*cascadeResponse{"deleted": toCascade(res)})
}

func (h *Handler) manageGroup(w http.ResponseWriter, r *http.Request) {
	view, err := h.memberships.Manage(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, manageViewResponse{
		Group:    toGroup(view.Group),
		Pending:  toMemberEntries(view.Pending),
		Approved: toMemberEntries(view.Approved),
	})
}

func (h *Handler) requestJoin(w http.ResponseWriter, r *http.Request) {
	var req listSelectionRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	res, err := h.memberships.Request(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()), req.ListID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMembershipOutcome(w, res)
}

func (h *Handler) invite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	res, err := h.memberships.Invite(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()), req.Identifier)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMembershipOutcome(w, res)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	var req memberTargetRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	res, err := h.memberships.Approve(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMembershipOutcome(w, res)
}

func (h *Handler) deny(w http.ResponseWriter, r *http.Request) {
	var req memberTargetRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	res, err := h.memberships.Deny(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMembershipOutcome(w, res)
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	var req listSelectionRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	res, err := h.memberships.Accept(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()), req.ListID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMembershipOutcome(w, res)
}

func (h *Handler) decline(w http.ResponseWriter, r *http.Request) {
	res, err := h.memberships.Decline(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeRemovalOutcome(w, res)
}

func (h *Handler) leave(w http.ResponseWriter, r *http.Request) {
	res, err := h.memberships.Leave(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeRemovalOutcome(w, res)
}

func (h *Handler) kick(w http.ResponseWriter, r *http.Request) {
	var req memberTargetRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	res, err := h.memberships.Kick(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRemovalOutcome(w, res)
}

func writeMembershipOutcome(w http.ResponseWriter, res *service.MembershipResult) {
	writeJSON(w, http.StatusOK, outcomeResponse{
		Outcome:    res.Outcome,
		Membership: toMembership(res.Membership),
	})
}

func writeRemovalOutcome(w http.ResponseWriter, res *service.RemovalResult) {
	writeJSON(w, http.StatusOK, outcomeResponse{
		Outcome: res.Outcome,
		Deleted: toCascade(res.Cascade),
	})
}
