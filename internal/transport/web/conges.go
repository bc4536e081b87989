package web

import (
	"net/http"
	"strconv"
	"strings"

	"congeadmin/internal/backend"
	"congeadmin/internal/domain/dateinput"
	"congeadmin/internal/transport/web/forms"
)

func (h *Handler) congesPageData(r *http.Request) (pageData, error) {
	data := pageData{Title: "Demandes de congé", Active: "conges", Values: map[string]string{}}

	page := queryPage(r)
	result, err := h.api.ListDemandes(r.Context(), page, h.pageSize)
	if err != nil {
		return data, err
	}
	data.Demandes = result.Content
	data.Page = result.Number
	data.TotalPages = result.TotalPages
	data.TotalCount = result.TotalElements
	data.HasPrev = result.Number > 0
	data.HasNext = result.Number < result.TotalPages-1
	data.PrevPage = result.Number - 1
	data.NextPage = result.Number + 1

	if employees, err := h.api.SearchEmployees(r.Context(), ""); err == nil {
		data.Employes = employees
	}

	if picked := r.URL.Query().Get("date"); picked != "" {
		field := r.URL.Query().Get("champ")
		if field != "DateFin" {
			field = "DateDebut"
		}
		data.Values[field] = picked
	}
	data.Calendar, data.CalPrev, data.CalNext = buildCalendar(r, dateinput.Bounds{})
	data.CalField = "DateDebut"
	return data, nil
}

func (h *Handler) handleCongesList(w http.ResponseWriter, r *http.Request) {
	data, err := h.congesPageData(r)
	if err != nil {
		h.renderError(w, r, err, "conges", data)
		return
	}
	h.render(w, r, "conges", data)
}

func (h *Handler) handleCongeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/conges")
		return
	}

	form := forms.Demande{
		DateDebut: strings.TrimSpace(r.FormValue("dateDebut")),
		DateFin:   strings.TrimSpace(r.FormValue("dateFin")),
		Motif:     strings.TrimSpace(r.FormValue("motif")),
	}
	if id, err := strconv.ParseInt(r.FormValue("employeId"), 10, 64); err == nil {
		form.EmployeID = id
	}

	issues := forms.Check(form)
	var debut, fin string
	if form.DateDebut != "" {
		if iso, err := frToISO(form.DateDebut); err != nil {
			issues = addIssue(issues, "DateDebut", err.Error())
		} else {
			debut = iso
		}
	}
	if form.DateFin != "" {
		if iso, err := frToISO(form.DateFin); err != nil {
			issues = addIssue(issues, "DateFin", err.Error())
		} else {
			fin = iso
		}
	}
	if issues == nil && fin < debut {
		issues = addIssue(issues, "DateFin", "doit être postérieure à la date de début")
	}

	if issues != nil {
		data, dataErr := h.congesPageData(r)
		if dataErr != nil {
			h.renderError(w, r, dataErr, "conges", data)
			return
		}
		data.Errors = issues
		data.Values["EmployeID"] = r.FormValue("employeId")
		data.Values["DateDebut"] = form.DateDebut
		data.Values["DateFin"] = form.DateFin
		data.Values["Motif"] = form.Motif
		h.render(w, r, "conges", data)
		return
	}

	input := backend.DemandeCongeInput{
		EmployeID: form.EmployeID,
		DateDebut: debut,
		DateFin:   fin,
		Motif:     form.Motif,
	}
	if _, err := h.api.CreateDemande(r.Context(), input); err != nil {
		h.fail(w, r, err, "/conges")
		return
	}
	h.setFlash(w, "success", "Demande de congé enregistrée.")
	http.Redirect(w, r, "/conges", http.StatusFound)
}

// handleCongeDecision applies a workflow transition. The backend enforces
// the lifecycle; the console only refuses submissions it already knows are
// invalid, like a rejection without remark.
func (h *Handler) handleCongeDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/conges")
		return
	}

	form := forms.Decision{
		Statut:   strings.TrimSpace(r.FormValue("statut")),
		Remarque: strings.TrimSpace(r.FormValue("remarque")),
	}
	if issues := forms.Check(form); issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, "/conges", http.StatusFound)
		return
	}

	if _, err := h.api.UpdateDemandeStatut(r.Context(), id, form.Statut, form.Remarque); err != nil {
		h.fail(w, r, err, "/conges")
		return
	}
	h.setFlash(w, "success", "Décision enregistrée.")
	http.Redirect(w, r, "/conges", http.StatusFound)
}

func (h *Handler) handleCongeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteDemande(r.Context(), id); err != nil {
		h.fail(w, r, err, "/conges")
		return
	}
	h.setFlash(w, "success", "Demande supprimée.")
	http.Redirect(w, r, "/conges", http.StatusFound)
}

func addIssue(issues map[string]string, field, message string) map[string]string {
	if issues == nil {
		issues = map[string]string{}
	}
	if _, exists := issues[field]; !exists {
		issues[field] = message
	}
	return issues
}
