// Package handler exposes the service layer as a JSON HTTP API over chi.
//
// Handlers stay thin: decode, delegate, map errors to status codes. The
// caller identity always comes from the authenticated token in the request
// context, never from the payload.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/auth"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/metrics"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/middleware"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/service"
)

// Handler holds the services the HTTP API delegates to.
type Handler struct {
	auth        auth.Authenticator
	tokens      *auth.JWTManager
	accounts    *service.AccountService
	lists       *service.ListService
	groups      *service.GroupService
	memberships *service.MembershipService
	claims      *service.ClaimService
	metrics     *metrics.Metrics
}

// New creates a Handler wired to the given services.
func New(
	authenticator auth.Authenticator,
	tokens *auth.JWTManager,
	accounts *service.AccountService,
	lists *service.ListService,
	groups *service.GroupService,
	memberships *service.MembershipService,
	claims *service.ClaimService,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		auth:        authenticator,
		tokens:      tokens,
		accounts:    accounts,
		lists:       lists,
		groups:      groups,
		memberships: memberships,
		claims:      claims,
		metrics:     m,
	}
}

// Routes builds the full router: public auth endpoints, the authenticated
// API, and the operational endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", h.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Logging)
		r.Post("/auth/signup", h.signup)
		r.Post("/auth/login", h.login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens), middleware.Logging)

		r.Get("/me", h.dashboard)
		r.Delete("/me", h.deleteAccount)

		r.Route("/lists", func(r chi.Router) {
			r.Post("/", h.createList)
			r.Get("/", h.myLists)
			r.Get("/{listID}", h.listView)
			r.Post("/{listID}/items", h.addItem)
			r.Delete("/{listID}/items/{itemID}", h.hideItem)
			r.Post("/{listID}/surprise", h.addSurpriseItem)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", h.createGroup)
			r.Get("/", h.myGroups)
			r.Get("/search", h.searchGroups)
			r.Get("/{groupID}", h.groupView)
			r.Delete("/{groupID}", h.deleteGroup)
			r.Get("/{groupID}/manage", h.manageGroup)

			r.Post("/{groupID}/request", h.requestJoin)
			r.Post("/{groupID}/invite", h.invite)
			r.Post("/{groupID}/approve", h.approve)
			r.Post("/{groupID}/deny", h.deny)
			r.Post("/{groupID}/accept", h.accept)
			r.Post("/{groupID}/decline", h.decline)
			r.Post("/{groupID}/leave", h.leave)
			r.Post("/{groupID}/kick", h.kick)

			r.Post("/{groupID}/claims/{itemID}", h.claim)
			r.Delete("/{groupID}/claims/{itemID}", h.unclaim)
		})
	})

	return r
}
