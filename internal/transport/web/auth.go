package web

import (
	"net/http"
	"strings"

	"congeadmin/internal/backend"
	"congeadmin/internal/transport/web/forms"
)

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Read(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, r, "login", pageData{Title: "Connexion"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, "error", "Formulaire invalide.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	form := forms.Login{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}
	if issues := forms.Check(form); issues != nil {
		h.render(w, r, "login", pageData{
			Title:  "Connexion",
			Errors: issues,
			Values: map[string]string{"Username": form.Username},
		})
		return
	}

	result, err := h.api.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		message := backend.Notice(err)
		if backend.IsUnauthorized(err) {
			message = "Identifiants incorrects."
		}
		h.render(w, r, "login", pageData{
			Title:  "Connexion",
			Flash:  &Flash{Kind: "error", Message: message},
			Values: map[string]string{"Username": form.Username},
		})
		return
	}

	h.sessions.Issue(w, result.Token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
