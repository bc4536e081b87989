package web

import (
	"net/http"
	"strconv"
	"strings"

	"congeadmin/internal/backend"
	"congeadmin/internal/domain/dateinput"
	"congeadmin/internal/export"
	"congeadmin/internal/transport/web/forms"
)

func (h *Handler) handleEmployesList(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Employés", Active: "employes"}

	if keyword := strings.TrimSpace(r.URL.Query().Get("q")); keyword != "" {
		data.Search = keyword
		results, err := h.api.SearchEmployees(r.Context(), keyword)
		if err != nil {
			h.renderError(w, r, err, "employes", data)
			return
		}
		data.Employes = results
		data.TotalCount = int64(len(results))
		h.render(w, r, "employes", data)
		return
	}

	page := queryPage(r)
	result, err := h.api.ListEmployees(r.Context(), page, h.pageSize)
	if err != nil {
		h.renderError(w, r, err, "employes", data)
		return
	}

	data.Employes = result.Content
	data.Page = result.Number
	data.TotalPages = result.TotalPages
	data.TotalCount = result.TotalElements
	data.HasPrev = result.Number > 0
	data.HasNext = result.Number < result.TotalPages-1
	data.PrevPage = result.Number - 1
	data.NextPage = result.Number + 1
	h.render(w, r, "employes", data)
}

func (h *Handler) handleEmployeForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Nouvel employé", Active: "employes", Values: map[string]string{}}

	services, err := h.api.ListServices(r.Context())
	if err != nil {
		h.renderError(w, r, err, "employe_form", data)
		return
	}
	data.Services = services

	if id, ok := pathID(r); ok {
		employee, err := h.api.GetEmployee(r.Context(), id)
		if err != nil {
			h.fail(w, r, err, "/employes")
			return
		}
		data.Title = "Modifier l'employé"
		data.Employe = &employee
		data.Values["Matricule"] = employee.Matricule
		data.Values["Nom"] = employee.Nom
		data.Values["Prenom"] = employee.Prenom
		data.Values["Email"] = employee.Email
		data.Values["Fonction"] = employee.Fonction
		data.Values["DateRecrutement"] = isoToFR(employee.DateRecrutement)
		data.Values["ServiceID"] = strconv.FormatInt(employee.ServiceID, 10)
	}

	// A day picked in the calendar pre-fills the typed field.
	if picked := r.URL.Query().Get("date"); picked != "" {
		data.Values["DateRecrutement"] = picked
	}
	data.Calendar, data.CalPrev, data.CalNext = buildCalendar(r, dateinput.Bounds{})
	data.CalField = "DateRecrutement"

	h.render(w, r, "employe_form", data)
}

func (h *Handler) employeFormFromRequest(r *http.Request) (forms.Employee, map[string]string) {
	form := forms.Employee{
		Matricule:       strings.TrimSpace(r.FormValue("matricule")),
		Nom:             strings.TrimSpace(r.FormValue("nom")),
		Prenom:          strings.TrimSpace(r.FormValue("prenom")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Fonction:        strings.TrimSpace(r.FormValue("fonction")),
		DateRecrutement: strings.TrimSpace(r.FormValue("dateRecrutement")),
	}
	if id, err := strconv.ParseInt(r.FormValue("serviceId"), 10, 64); err == nil {
		form.ServiceID = id
	}

	issues := forms.Check(form)
	if form.DateRecrutement != "" {
		iso, err := frToISO(form.DateRecrutement)
		if err != nil {
			if issues == nil {
				issues = map[string]string{}
			}
			issues["DateRecrutement"] = err.Error()
		} else {
			form.DateRecrutement = iso
		}
	}
	return form, issues
}

func (h *Handler) renderEmployeFormIssues(w http.ResponseWriter, r *http.Request, form forms.Employee, issues map[string]string) {
	data := pageData{
		Title:  "Employé",
		Active: "employes",
		Errors: issues,
		Values: map[string]string{
			"Matricule":       form.Matricule,
			"Nom":             form.Nom,
			"Prenom":          form.Prenom,
			"Email":           form.Email,
			"Fonction":        form.Fonction,
			"DateRecrutement": strings.TrimSpace(r.FormValue("dateRecrutement")),
			"ServiceID":       r.FormValue("serviceId"),
		},
	}
	if services, err := h.api.ListServices(r.Context()); err == nil {
		data.Services = services
	}
	data.Calendar, data.CalPrev, data.CalNext = buildCalendar(r, dateinput.Bounds{})
	data.CalField = "DateRecrutement"
	h.render(w, r, "employe_form", data)
}

func (h *Handler) handleEmployeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/employes")
		return
	}
	form, issues := h.employeFormFromRequest(r)
	if issues != nil {
		h.renderEmployeFormIssues(w, r, form, issues)
		return
	}

	if _, err := h.api.CreateEmployee(r.Context(), backend.EmployeeInput(form)); err != nil {
		h.fail(w, r, err, "/employes/nouveau")
		return
	}
	h.setFlash(w, "success", "Employé créé.")
	http.Redirect(w, r, "/employes", http.StatusFound)
}

func (h *Handler) handleEmployeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/employes")
		return
	}
	form, issues := h.employeFormFromRequest(r)
	if issues != nil {
		h.renderEmployeFormIssues(w, r, form, issues)
		return
	}

	if _, err := h.api.UpdateEmployee(r.Context(), id, backend.EmployeeInput(form)); err != nil {
		h.fail(w, r, err, "/employes")
		return
	}
	h.setFlash(w, "success", "Employé mis à jour.")
	http.Redirect(w, r, "/employes", http.StatusFound)
}

func (h *Handler) handleEmployeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.api.DeleteEmployee(r.Context(), id); err != nil {
		h.fail(w, r, err, "/employes")
		return
	}
	h.setFlash(w, "success", "Employé supprimé.")
	http.Redirect(w, r, "/employes", http.StatusFound)
}

func (h *Handler) handleEmployesExport(w http.ResponseWriter, r *http.Request) {
	// Exports want the full list, not one screen page.
	result, err := h.api.ListEmployees(r.Context(), 0, 10000)
	if err != nil {
		h.fail(w, r, err, "/employes")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="employes.xlsx"`)
	if err := export.EmployeesExcel(w, result.Content); err != nil {
		h.fail(w, r, err, "/employes")
	}
}
