package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"congeadmin/internal/backend"
	"congeadmin/internal/domain/ledger"
	"congeadmin/internal/export"
	"congeadmin/internal/transport/web/forms"
)

func (h *Handler) handleHistoriqueList(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Historique des congés", Active: "historique", Values: map[string]string{}}

	page := queryPage(r)
	result, err := h.api.ListHistorique(r.Context(), page, h.pageSize)
	if err != nil {
		h.renderError(w, r, err, "historique", data)
		return
	}
	data.Historique = result.Content
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
	h.render(w, r, "historique", data)
}

func (h *Handler) handleHistoriqueCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/historique")
		return
	}

	form := forms.Historique{}
	if id, err := strconv.ParseInt(r.FormValue("employeId"), 10, 64); err == nil {
		form.EmployeID = id
	}
	if annee, err := strconv.Atoi(r.FormValue("annee")); err == nil {
		form.Annee = annee
	}
	if jours, err := strconv.ParseFloat(r.FormValue("joursAttribues"), 64); err == nil {
		form.JoursAttribues = jours
	}
	if jours, err := strconv.ParseFloat(r.FormValue("joursConsommes"), 64); err == nil {
		form.JoursConsommes = jours
	}

	if issues := forms.Check(form); issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, "/historique", http.StatusFound)
		return
	}

	if _, err := h.api.CreateHistorique(r.Context(), backend.HistoriqueCongeInput(form)); err != nil {
		h.fail(w, r, err, "/historique")
		return
	}
	h.setFlash(w, "success", "Historique créé.")
	http.Redirect(w, r, "/historique", http.StatusFound)
}

func (h *Handler) handleHistoriqueUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/historique")
		return
	}

	form := forms.Historique{}
	if employeID, err := strconv.ParseInt(r.FormValue("employeId"), 10, 64); err == nil {
		form.EmployeID = employeID
	}
	if annee, err := strconv.Atoi(r.FormValue("annee")); err == nil {
		form.Annee = annee
	}
	if jours, err := strconv.ParseFloat(r.FormValue("joursAttribues"), 64); err == nil {
		form.JoursAttribues = jours
	}
	if jours, err := strconv.ParseFloat(r.FormValue("joursConsommes"), 64); err == nil {
		form.JoursConsommes = jours
	}

	if issues := forms.Check(form); issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, "/historique", http.StatusFound)
		return
	}

	if _, err := h.api.UpdateHistorique(r.Context(), id, backend.HistoriqueCongeInput(form)); err != nil {
		h.fail(w, r, err, "/historique")
		return
	}
	h.setFlash(w, "success", "Historique mis à jour.")
	http.Redirect(w, r, "/historique", http.StatusFound)
}

func (h *Handler) handleHistoriqueDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteHistorique(r.Context(), id); err != nil {
		h.fail(w, r, err, "/historique")
		return
	}
	h.setFlash(w, "success", "Historique supprimé.")
	http.Redirect(w, r, "/historique", http.StatusFound)
}

// handleAjustementForm shows the adjustment dialog. When the query carries
// a candidate adjustment (type + jours) the resulting balance is computed
// locally and shown before anything is submitted.
func (h *Handler) handleAjustementForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	record, err := h.api.GetHistorique(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "/historique")
		return
	}

	data := pageData{
		Title:  "Ajuster le solde",
		Active: "historique",
		Record: &record,
		Values: map[string]string{
			"Type":     r.URL.Query().Get("type"),
			"Jours":    r.URL.Query().Get("jours"),
			"Remarque": r.URL.Query().Get("remarque"),
		},
	}

	if data.Values["Type"] != "" && data.Values["Jours"] != "" {
		jours, parseErr := strconv.ParseFloat(data.Values["Jours"], 64)
		if parseErr != nil {
			data.PreviewErr = "nombre de jours illisible"
		} else {
			preview, err := ledger.Compute(record.JoursAttribues, record.JoursConsommes,
				ledger.AdjustmentKind(data.Values["Type"]), jours)
			if err != nil {
				data.PreviewErr = err.Error()
			} else {
				data.Preview = &preview
			}
		}
	}

	h.render(w, r, "ajustement", data)
}

// handleAjustementPreview is the JSON endpoint behind the live preview in
// the dialog. Pure arithmetic, no backend call.
func (h *Handler) handleAjustementPreview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	record, err := h.api.GetHistorique(r.Context(), id)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": backend.Notice(err)})
		return
	}

	jours, parseErr := strconv.ParseFloat(r.URL.Query().Get("jours"), 64)
	w.Header().Set("Content-Type", "application/json")
	if parseErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "nombre de jours illisible"})
		return
	}

	preview, err := ledger.Compute(record.JoursAttribues, record.JoursConsommes,
		ledger.AdjustmentKind(r.URL.Query().Get("type")), jours)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(preview)
}

func (h *Handler) handleAjustementSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/historique")
		return
	}

	form := forms.Ajustement{
		Type:     strings.TrimSpace(r.FormValue("type")),
		Remarque: strings.TrimSpace(r.FormValue("remarque")),
	}
	if jours, err := strconv.ParseFloat(r.FormValue("jours"), 64); err == nil {
		form.Jours = jours
	}

	issues := forms.Check(form)
	if issues == nil {
		if err := ledger.ValidateDays(form.Jours); err != nil {
			issues = addIssue(issues, "Jours", err.Error())
		}
	}
	if issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, fmt.Sprintf("/historique/%d/ajuster", id), http.StatusFound)
		return
	}

	// Only the signed delta travels to the backend; its recomputed figures
	// replace whatever the preview showed.
	delta := form.Jours
	if form.Type == string(ledger.Removal) {
		delta = -delta
	}
	if _, err := h.api.AjusterHistorique(r.Context(), id, delta, form.Remarque); err != nil {
		h.fail(w, r, err, fmt.Sprintf("/historique/%d/ajuster", id))
		return
	}
	h.setFlash(w, "success", "Ajustement enregistré.")
	http.Redirect(w, r, "/historique", http.StatusFound)
}

func (h *Handler) handleHistoriquePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	record, err := h.api.GetHistorique(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "/historique")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="releve-conges-%d-%d.pdf"`, record.EmployeID, record.Annee))
	if err := export.HistoriquePDF(w, record); err != nil {
		h.fail(w, r, err, "/historique")
	}
}
