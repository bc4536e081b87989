package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const resourceDemandes = "demandes-conges"

// Leave request lifecycle: EN_ATTENTE -> APPROUVEE | REJETEE | REPORTEE.
const (
	StatutEnAttente = "EN_ATTENTE"
	StatutApprouvee = "APPROUVEE"
	StatutRejetee   = "REJETEE"
	StatutReportee  = "REPORTEE"
)

type DemandeConge struct {
	ID         int64   `json:"id"`
	EmployeID  int64   `json:"employeId"`
	EmployeNom string  `json:"employeNom"`
	Matricule  string  `json:"matricule"`
	DateDebut  string  `json:"dateDebut"`
	DateFin    string  `json:"dateFin"`
	NbJours    float64 `json:"nbJours"`
	Motif      string  `json:"motif"`
	Statut     string  `json:"statut"`
	Remarque   string  `json:"remarque"`
	CreeLe     string  `json:"creeLe"`
}

type DemandeCongeInput struct {
	EmployeID int64  `json:"employeId"`
	DateDebut string `json:"dateDebut"`
	DateFin   string `json:"dateFin"`
	Motif     string `json:"motif"`
}

func (c *Client) ListDemandes(ctx context.Context, page, size int) (Page[DemandeConge], error) {
	key := fmt.Sprintf("list:%d:%d", page, size)
	return cached(ctx, c, resourceDemandes, key, func(ctx context.Context) (Page[DemandeConge], error) {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(size))
		var result Page[DemandeConge]
		err := c.get(ctx, "/demandes-conges", query, &result)
		return result, err
	})
}

func (c *Client) CreateDemande(ctx context.Context, input DemandeCongeInput) (DemandeConge, error) {
	var result DemandeConge
	if err := c.post(ctx, "/demandes-conges", nil, input, &result); err != nil {
		return DemandeConge{}, err
	}
	c.Invalidate(resourceDemandes)
	return result, nil
}

func (c *Client) DeleteDemande(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/demandes-conges/%d", id)); err != nil {
		return err
	}
	c.Invalidate(resourceDemandes)
	return nil
}

// UpdateDemandeStatut decides a pending request. The backend rejects a
// REJETEE transition without a remark; callers validate that before
// submitting.
func (c *Client) UpdateDemandeStatut(ctx context.Context, id int64, statut, remarque string) (DemandeConge, error) {
	query := url.Values{}
	query.Set("statut", statut)
	if remarque != "" {
		query.Set("remarque", remarque)
	}
	var result DemandeConge
	if err := c.put(ctx, fmt.Sprintf("/demandes-conges/%d/statut", id), query, nil, &result); err != nil {
		return DemandeConge{}, err
	}
	c.Invalidate(resourceDemandes)
	// A decision consumes or releases days, so history and ICA views are stale.
	c.Invalidate(resourceHistorique)
	c.Invalidate(resourceICA)
	return result, nil
}
