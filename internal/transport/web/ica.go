package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"congeadmin/internal/domain/ica"
	"congeadmin/internal/export"
)

func queryAnnee(r *http.Request) int {
	annee, err := strconv.Atoi(r.URL.Query().Get("annee"))
	if err != nil || annee < 2000 || annee > 2100 {
		return time.Now().Year()
	}
	return annee
}

func (h *Handler) handleSuiviICA(w http.ResponseWriter, r *http.Request) {
	annee := queryAnnee(r)
	data := pageData{
		Title:  "Suivi ICA",
		Active: "ica",
		Values: map[string]string{"Annee": strconv.Itoa(annee)},
	}

	suivi, err := h.api.GetSuiviICA(r.Context(), annee)
	if err != nil {
		h.renderError(w, r, err, "ica", data)
		return
	}
	data.Suivi = suivi
	data.TotalCount = int64(len(suivi))

	if stats, err := h.api.GetStatistiquesICA(r.Context()); err == nil {
		data.Stats = &stats
	}
	h.render(w, r, "ica", data)
}

// handleRecalculerTout triggers one backend recalculation per tracked
// record. The backend has no bulk endpoint, so partial failure is normal:
// the outcome is reported as counts, never as an all-or-nothing error.
func (h *Handler) handleRecalculerTout(w http.ResponseWriter, r *http.Request) {
	annee := queryAnnee(r)
	suivi, err := h.api.GetSuiviICA(r.Context(), annee)
	if err != nil {
		h.fail(w, r, err, "/ica")
		return
	}

	recordIDs := make([]int64, 0, len(suivi))
	for _, row := range suivi {
		recordIDs = append(recordIDs, row.HistoriqueID)
	}

	result, err := ica.RecalculateAll(r.Context(), recordIDs, h.bulkConcurrency, h.api.RecalculerICA)
	if err != nil {
		h.fail(w, r, err, "/ica")
		return
	}

	// One invalidation for the whole batch.
	h.api.Invalidate("ica")
	h.api.Invalidate("historique-conges")

	if result.Failed() == 0 {
		h.setFlash(w, "success", fmt.Sprintf("Recalcul terminé : %d enregistrements traités.", result.Succeeded))
	} else {
		h.setFlash(w, "warning", fmt.Sprintf("Recalcul terminé : %d réussites, %d échecs.", result.Succeeded, result.Failed()))
	}
	http.Redirect(w, r, "/ica?annee="+strconv.Itoa(annee), http.StatusFound)
}

func (h *Handler) handleSuiviICAExport(w http.ResponseWriter, r *http.Request) {
	annee := queryAnnee(r)
	suivi, err := h.api.GetSuiviICA(r.Context(), annee)
	if err != nil {
		h.fail(w, r, err, "/ica")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="suivi-ica-%d.xlsx"`, annee))
	if err := export.SuiviICAExcel(w, suivi); err != nil {
		h.fail(w, r, err, "/ica")
	}
}
