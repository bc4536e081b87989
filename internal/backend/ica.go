package backend

import (
	"context"
	"net/url"
	"strconv"
)

const resourceICA = "ica"

// SuiviICA is one row of the annual eligibility tracker. Eligibility is
// computed server-side and only displayed here.
type SuiviICA struct {
	HistoriqueID   int64   `json:"historiqueId"`
	EmployeID      int64   `json:"employeId"`
	EmployeNom     string  `json:"employeNom"`
	Matricule      string  `json:"matricule"`
	ServiceNom     string  `json:"serviceNom"`
	Annee          int     `json:"annee"`
	JoursAttribues float64 `json:"joursAttribues"`
	JoursConsommes float64 `json:"joursConsommes"`
	JoursRestants  float64 `json:"joursRestants"`
	Eligible       bool    `json:"eligible"`
}

type StatistiquesICA struct {
	TotalAgents     int     `json:"totalAgents"`
	Eligibles       int     `json:"eligibles"`
	NonEligibles    int     `json:"nonEligibles"`
	TauxEligibilite float64 `json:"tauxEligibilite"`
	Annee           int     `json:"annee"`
}

func (c *Client) GetSuiviICA(ctx context.Context, annee int) ([]SuiviICA, error) {
	key := "suivi:" + strconv.Itoa(annee)
	return cached(ctx, c, resourceICA, key, func(ctx context.Context) ([]SuiviICA, error) {
		query := url.Values{}
		if annee > 0 {
			query.Set("annee", strconv.Itoa(annee))
		}
		var result []SuiviICA
		err := c.get(ctx, "/ica/suivi", query, &result)
		return result, err
	})
}

func (c *Client) GetStatistiquesICA(ctx context.Context) (StatistiquesICA, error) {
	return cached(ctx, c, resourceICA, "statistiques", func(ctx context.Context) (StatistiquesICA, error) {
		var result StatistiquesICA
		err := c.get(ctx, "/ica/statistiques", nil, &result)
		return result, err
	})
}
