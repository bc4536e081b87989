package web

import (
	"net/http"
	"strings"

	"congeadmin/internal/backend"
	"congeadmin/internal/transport/web/forms"
)

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Journal d'audit", Active: "audit", Values: map[string]string{}}

	entries, err := h.api.RecentAudit(r.Context())
	if err != nil {
		h.renderError(w, r, err, "audit", data)
		return
	}
	data.Audit = entries
	h.render(w, r, "audit", data)
}

func (h *Handler) handleAuditSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/audit")
		return
	}

	form := forms.AuditSearch{
		Utilisateur: strings.TrimSpace(r.FormValue("utilisateur")),
		Action:      strings.TrimSpace(r.FormValue("action")),
		Ressource:   strings.TrimSpace(r.FormValue("ressource")),
		DateDebut:   strings.TrimSpace(r.FormValue("dateDebut")),
		DateFin:     strings.TrimSpace(r.FormValue("dateFin")),
	}

	issues := forms.Check(form)
	filter := backend.AuditFilter{
		Utilisateur: form.Utilisateur,
		Action:      form.Action,
		Ressource:   form.Ressource,
	}
	if form.DateDebut != "" {
		if iso, err := frToISO(form.DateDebut); err != nil {
			issues = addIssue(issues, "DateDebut", err.Error())
		} else {
			filter.DateDebut = iso
		}
	}
	if form.DateFin != "" {
		if iso, err := frToISO(form.DateFin); err != nil {
			issues = addIssue(issues, "DateFin", err.Error())
		} else {
			filter.DateFin = iso
		}
	}

	data := pageData{
		Title:  "Journal d'audit",
		Active: "audit",
		Values: map[string]string{
			"Utilisateur": form.Utilisateur,
			"Action":      form.Action,
			"Ressource":   form.Ressource,
			"DateDebut":   form.DateDebut,
			"DateFin":     form.DateFin,
		},
	}
	if issues != nil {
		data.Errors = issues
		h.render(w, r, "audit", data)
		return
	}

	entries, err := h.api.SearchAudit(r.Context(), filter)
	if err != nil {
		h.renderError(w, r, err, "audit", data)
		return
	}
	data.Audit = entries
	data.Search = "1"
	h.render(w, r, "audit", data)
}
