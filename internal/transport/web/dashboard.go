package web

import "net/http"

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Tableau de bord", Active: "dashboard"}

	stats, err := h.api.GetStatistiquesICA(r.Context())
	if err != nil {
		h.renderError(w, r, err, "dashboard", data)
		return
	}
	data.Stats = &stats

	// The audit feed is decoration on the dashboard; an error there must
	// not take the whole page down.
	if recent, err := h.api.RecentAudit(r.Context()); err == nil {
		if len(recent) > 10 {
			recent = recent[:10]
		}
		data.Audit = recent
	}

	h.render(w, r, "dashboard", data)
}
