package web

import (
	"net/http"
	"strings"

	"congeadmin/internal/backend"
	"congeadmin/internal/transport/web/forms"
)

func (h *Handler) handleUsersList(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Utilisateurs", Active: "users"}

	users, err := h.api.ListUsers(r.Context())
	if err != nil {
		h.renderError(w, r, err, "users", data)
		return
	}
	data.Users = users
	h.render(w, r, "users", data)
}

func (h *Handler) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/users")
		return
	}

	form := forms.User{
		Username: strings.TrimSpace(r.FormValue("username")),
		NomAgent: strings.TrimSpace(r.FormValue("nomAgent")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		Role:     strings.TrimSpace(r.FormValue("role")),
	}
	issues := forms.Check(form)
	if form.Password == "" {
		issues = addIssue(issues, "Password", "champ obligatoire")
	}
	if issues != nil {
		h.setFlash(w, "error", firstIssue(issues))
		http.Redirect(w, r, "/users", http.StatusFound)
		return
	}

	input := backend.UserInput{
		Username: form.Username,
		NomAgent: form.NomAgent,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
		Actif:    true,
	}
	if _, err := h.api.CreateUser(r.Context(), input); err != nil {
		h.fail(w, r, err, "/users")
		return
	}
	h.setFlash(w, "success", "Utilisateur créé.")
	http.Redirect(w, r, "/users", http.StatusFound)
}

func (h *Handler) handleUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/users")
		return
	}

	role := strings.TrimSpace(r.FormValue("role"))
	switch role {
	case backend.RoleAdmin, backend.RoleRH, backend.RoleConsultation:
	default:
		h.setFlash(w, "error", "Rôle inconnu.")
		http.Redirect(w, r, "/users", http.StatusFound)
		return
	}

	if _, err := h.api.UpdateUserRole(r.Context(), id, role); err != nil {
		h.fail(w, r, err, "/users")
		return
	}
	h.setFlash(w, "success", "Rôle mis à jour.")
	http.Redirect(w, r, "/users", http.StatusFound)
}

// handleUserActivation flips the active flag. The backend expects the full
// user payload on update, so the form carries the current values along.
func (h *Handler) handleUserActivation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, "/users")
		return
	}

	input := backend.UserInput{
		Username: strings.TrimSpace(r.FormValue("username")),
		NomAgent: strings.TrimSpace(r.FormValue("nomAgent")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Role:     strings.TrimSpace(r.FormValue("role")),
		Actif:    r.FormValue("actif") == "true",
	}
	if _, err := h.api.UpdateUser(r.Context(), id, input); err != nil {
		h.fail(w, r, err, "/users")
		return
	}
	if input.Actif {
		h.setFlash(w, "success", "Compte activé.")
	} else {
		h.setFlash(w, "success", "Compte désactivé.")
	}
	http.Redirect(w, r, "/users", http.StatusFound)
}

func (h *Handler) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if sess, ok := currentSession(r); ok && sess.Username == r.FormValue("username") {
		h.setFlash(w, "error", "Impossible de supprimer votre propre compte.")
		http.Redirect(w, r, "/users", http.StatusFound)
		return
	}

	if err := h.api.DeleteUser(r.Context(), id); err != nil {
		h.fail(w, r, err, "/users")
		return
	}
	h.setFlash(w, "success", "Utilisateur supprimé.")
	http.Redirect(w, r, "/users", http.StatusFound)
}
