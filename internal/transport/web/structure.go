package web

import (
	"net/http"
	"strconv"
	"strings"

	"congeadmin/internal/backend"
	"congeadmin/internal/transport/web/forms"
)

func (h *Handler) handleStructure(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Organisation", Active: "structure"}

	sousDirections, err := h.api.ListSousDirections(r.Context())
	if err != nil {
		h.renderError(w, r, err, "structure", data)
		return
	}
	services, err := h.api.ListServices(r.Context())
	if err != nil {
		h.renderError(w, r, err, "structure", data)
		return
	}

	data.SousDirections = sousDirections
	data.Services = services
	h.render(w, r, "structure", data)
}

func (h *Handler) handleSousDirectionCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	form := forms.SousDirection{
		Code: strings.TrimSpace(r.FormValue("code")),
		Nom:  strings.TrimSpace(r.FormValue("nom")),
	}
	if issues := forms.Check(form); issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, "/structure", http.StatusFound)
		return
	}

	if _, err := h.api.CreateSousDirection(r.Context(), backend.SousDirectionInput(form)); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	h.setFlash(w, "success", "Sous-direction créée.")
	http.Redirect(w, r, "/structure", http.StatusFound)
}

func (h *Handler) handleSousDirectionUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	form := forms.SousDirection{
		Code: strings.TrimSpace(r.FormValue("code")),
		Nom:  strings.TrimSpace(r.FormValue("nom")),
	}
	if issues := forms.Check(form); issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, "/structure", http.StatusFound)
		return
	}

	if _, err := h.api.UpdateSousDirection(r.Context(), id, backend.SousDirectionInput(form)); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	h.setFlash(w, "success", "Sous-direction mise à jour.")
	http.Redirect(w, r, "/structure", http.StatusFound)
}

func (h *Handler) handleSousDirectionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteSousDirection(r.Context(), id); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	h.setFlash(w, "success", "Sous-direction supprimée.")
	http.Redirect(w, r, "/structure", http.StatusFound)
}

func (h *Handler) handleServiceCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	form := forms.Service{Nom: strings.TrimSpace(r.FormValue("nom"))}
	if id, err := strconv.ParseInt(r.FormValue("sousDirectionId"), 10, 64); err == nil {
		form.SousDirectionID = id
	}
	if issues := forms.Check(form); issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, "/structure", http.StatusFound)
		return
	}

	if _, err := h.api.CreateService(r.Context(), backend.ServiceInput(form)); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	h.setFlash(w, "success", "Service créé.")
	http.Redirect(w, r, "/structure", http.StatusFound)
}

func (h *Handler) handleServiceUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	form := forms.Service{Nom: strings.TrimSpace(r.FormValue("nom"))}
	if parsed, err := strconv.ParseInt(r.FormValue("sousDirectionId"), 10, 64); err == nil {
		form.SousDirectionID = parsed
	}
	if issues := forms.Check(form); issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, "/structure", http.StatusFound)
		return
	}

	if _, err := h.api.UpdateService(r.Context(), id, backend.ServiceInput(form)); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	h.setFlash(w, "success", "Service mis à jour.")
	http.Redirect(w, r, "/structure", http.StatusFound)
}

func (h *Handler) handleServiceDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteService(r.Context(), id); err != nil {
		h.fail(w, r, err, "/structure")
		return
	}
	h.setFlash(w, "success", "Service supprimé.")
	http.Redirect(w, r, "/structure", http.StatusFound)
}

func firstIssue(issues map[string]string) string {
	for field, message := range issues {
		if field == "" {
			return message
		}
		return field + " : " + message
	}
	return "formulaire invalide"
}
