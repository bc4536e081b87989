package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"congeadmin/internal/backend"
	"congeadmin/internal/domain/dateinput"
	"congeadmin/internal/domain/ledger"
	"congeadmin/internal/session"
	"congeadmin/internal/transport/web/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

const flashCookieName = "conge_notice"

type Flash struct {
	Kind    string
	Message string
}

// pageData is the single view model handed to every template. Each screen
// fills the fields it needs.
type pageData struct {
	Title   string
	Active  string
	Session session.Session
	Flash   *Flash
	Errors  map[string]string
	Values  map[string]string

	Page       int
	TotalPages int
	TotalCount int64
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
	Search     string

	Employes       []backend.Employee
	Employe        *backend.Employee
	SousDirections []backend.SousDirection
	Services       []backend.Service
	Demandes       []backend.DemandeConge
	Suivi          []backend.SuiviICA
	Stats          *backend.StatistiquesICA
	Historique     []backend.HistoriqueConge
	Record         *backend.HistoriqueConge
	Preview        *ledger.Preview
	PreviewErr     string
	Users          []backend.User
	Audit          []backend.AuditEntry

	Calendar *dateinput.Month
	CalPrev  string
	CalNext  string
	CalField string
}

// PageDisplay converts the backend's zero-based page number for display.
func (p pageData) PageDisplay() int {
	return p.Page + 1
}

func parseTemplates() (map[string]*template.Template, error) {
	pages := []string{
		"login", "dashboard", "employes", "employe_form", "structure",
		"conges", "ica", "historique", "ajustement", "users", "audit",
	}

	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		parsed[page] = tmpl
	}
	return parsed, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	if sess, ok := middleware.GetSession(r.Context()); ok {
		data.Session = sess
	}
	if data.Flash == nil {
		data.Flash = h.popFlash(w, r)
	}

	tmpl, ok := h.templates[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "page indisponible", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template render failed", "page", page, "err", err,
			"requestId", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", MaxAge: -1})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, found := strings.Cut(decoded, "|")
	if !found {
		return &Flash{Kind: "info", Message: decoded}
	}
	return &Flash{Kind: kind, Message: message}
}

// renderError keeps a list page up when its fetch failed: the page renders
// empty with the matching notice. A 401 ends the session on the spot.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error, page string, data pageData) {
	if backend.IsUnauthorized(err) {
		h.sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	slog.Warn("page fetch failed", "err", err,
		"path", r.URL.Path, "requestId", middleware.GetRequestID(r.Context()))
	data.Flash = &Flash{Kind: "error", Message: backend.Notice(err)}
	h.render(w, r, page, data)
}

// fail turns a backend error into the matching user notice. A 401 ends the
// session on the spot.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if backend.IsUnauthorized(err) {
		h.sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	slog.Error("backend call failed", "err", err,
		"path", r.URL.Path, "requestId", middleware.GetRequestID(r.Context()))
	h.setFlash(w, "error", backend.Notice(err))
	http.Redirect(w, r, fallback, http.StatusFound)
}
