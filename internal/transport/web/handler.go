// Package web serves the console pages: one handler file per screen,
// each fetching through the backend client, rendering an embedded
// template and submitting validated forms back to the backend.
package web

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"congeadmin/internal/backend"
	"congeadmin/internal/session"
	"congeadmin/internal/transport/web/middleware"
)

type Handler struct {
	api             *backend.Client
	sessions        *session.Manager
	templates       map[string]*template.Template
	pageSize        int
	bulkConcurrency int
}

func NewHandler(api *backend.Client, sessions *session.Manager, pageSize, bulkConcurrency int) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		api:             api,
		sessions:        sessions,
		templates:       templates,
		pageSize:        pageSize,
		bulkConcurrency: bulkConcurrency,
	}, nil
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()

	router.Get("/login", h.handleLoginPage)
	router.Post("/login", h.handleLogin)
	router.Post("/logout", h.handleLogout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(h.sessions))

		r.Get("/", h.handleDashboard)

		r.Route("/employes", func(r chi.Router) {
			r.Get("/", h.handleEmployesList)
			r.Get("/nouveau", h.handleEmployeForm)
			r.Post("/nouveau", h.handleEmployeCreate)
			r.Get("/{id}/modifier", h.handleEmployeForm)
			r.Post("/{id}/modifier", h.handleEmployeUpdate)
			r.Post("/{id}/supprimer", h.handleEmployeDelete)
			r.Get("/export", h.handleEmployesExport)
		})

		r.Route("/structure", func(r chi.Router) {
			r.Get("/", h.handleStructure)
			r.Post("/sous-directions", h.handleSousDirectionCreate)
			r.Post("/sous-directions/{id}/modifier", h.handleSousDirectionUpdate)
			r.Post("/sous-directions/{id}/supprimer", h.handleSousDirectionDelete)
			r.Post("/services", h.handleServiceCreate)
			r.Post("/services/{id}/modifier", h.handleServiceUpdate)
			r.Post("/services/{id}/supprimer", h.handleServiceDelete)
		})

		r.Route("/conges", func(r chi.Router) {
			r.Get("/", h.handleCongesList)
			r.Post("/", h.handleCongeCreate)
			r.Post("/{id}/decision", h.handleCongeDecision)
			r.Post("/{id}/supprimer", h.handleCongeDelete)
		})

		r.Route("/ica", func(r chi.Router) {
			r.Get("/", h.handleSuiviICA)
			r.Post("/recalculer", h.handleRecalculerTout)
			r.Get("/export", h.handleSuiviICAExport)
		})

		r.Route("/historique", func(r chi.Router) {
			r.Get("/", h.handleHistoriqueList)
			r.Post("/", h.handleHistoriqueCreate)
			r.Post("/{id}/modifier", h.handleHistoriqueUpdate)
			r.Post("/{id}/supprimer", h.handleHistoriqueDelete)
			r.Get("/{id}/ajuster", h.handleAjustementForm)
			r.Post("/{id}/ajuster", h.handleAjustementSubmit)
			r.Get("/{id}/apercu", h.handleAjustementPreview)
			r.Get("/{id}/releve.pdf", h.handleHistoriquePDF)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.handleUsersList)
			r.Post("/", h.handleUserCreate)
			r.Post("/{id}/role", h.handleUserRole)
			r.Post("/{id}/activation", h.handleUserActivation)
			r.Post("/{id}/supprimer", h.handleUserDelete)
		})

		r.Route("/audit", func(r chi.Router) {
			r.Get("/", h.handleAudit)
			r.Post("/recherche", h.handleAuditSearch)
		})
	})

	return router
}

func currentSession(r *http.Request) (session.Session, bool) {
	return middleware.GetSession(r.Context())
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
