package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const resourceHistorique = "historique-conges"

type HistoriqueConge struct {
	ID             int64   `json:"id"`
	EmployeID      int64   `json:"employeId"`
	EmployeNom     string  `json:"employeNom"`
	Matricule      string  `json:"matricule"`
	Annee          int     `json:"annee"`
	JoursAttribues float64 `json:"joursAttribues"`
	JoursConsommes float64 `json:"joursConsommes"`
	JoursRestants  float64 `json:"joursRestants"`
	EligibleICA    bool    `json:"eligibleIca"`
}

type HistoriqueCongeInput struct {
	EmployeID      int64   `json:"employeId"`
	Annee          int     `json:"annee"`
	JoursAttribues float64 `json:"joursAttribues"`
	JoursConsommes float64 `json:"joursConsommes"`
}

func (c *Client) ListHistorique(ctx context.Context, page, size int) (Page[HistoriqueConge], error) {
	key := fmt.Sprintf("list:%d:%d", page, size)
	return cached(ctx, c, resourceHistorique, key, func(ctx context.Context) (Page[HistoriqueConge], error) {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(size))
		var result Page[HistoriqueConge]
		err := c.get(ctx, "/historique-conges", query, &result)
		return result, err
	})
}

func (c *Client) GetHistorique(ctx context.Context, id int64) (HistoriqueConge, error) {
	key := fmt.Sprintf("id:%d", id)
	return cached(ctx, c, resourceHistorique, key, func(ctx context.Context) (HistoriqueConge, error) {
		var result HistoriqueConge
		err := c.get(ctx, fmt.Sprintf("/historique-conges/%d", id), nil, &result)
		return result, err
	})
}

func (c *Client) CreateHistorique(ctx context.Context, input HistoriqueCongeInput) (HistoriqueConge, error) {
	var result HistoriqueConge
	if err := c.post(ctx, "/historique-conges", nil, input, &result); err != nil {
		return HistoriqueConge{}, err
	}
	c.Invalidate(resourceHistorique)
	c.Invalidate(resourceICA)
	return result, nil
}

func (c *Client) UpdateHistorique(ctx context.Context, id int64, input HistoriqueCongeInput) (HistoriqueConge, error) {
	var result HistoriqueConge
	if err := c.put(ctx, fmt.Sprintf("/historique-conges/%d", id), nil, input, &result); err != nil {
		return HistoriqueConge{}, err
	}
	c.Invalidate(resourceHistorique)
	c.Invalidate(resourceICA)
	return result, nil
}

func (c *Client) DeleteHistorique(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/historique-conges/%d", id)); err != nil {
		return err
	}
	c.Invalidate(resourceHistorique)
	c.Invalidate(resourceICA)
	return nil
}

// AjusterHistorique submits the signed day delta of a manual adjustment.
// Positive gives days back (ajout, correction), negative takes days away
// (retrait). The response carries the server-recomputed balance, which is
// the authoritative one.
func (c *Client) AjusterHistorique(ctx context.Context, id int64, ajustement float64, remarque string) (HistoriqueConge, error) {
	query := url.Values{}
	query.Set("ajustement", strconv.FormatFloat(ajustement, 'f', -1, 64))
	query.Set("remarque", remarque)
	var result HistoriqueConge
	if err := c.put(ctx, fmt.Sprintf("/historique-conges/%d/ajuster", id), query, nil, &result); err != nil {
		return HistoriqueConge{}, err
	}
	c.Invalidate(resourceHistorique)
	c.Invalidate(resourceICA)
	return result, nil
}

// RecalculerICA asks the backend to recompute one record's ICA eligibility.
// Cache invalidation is the caller's concern: the bulk path invalidates once
// after the whole fan-out instead of after every record.
func (c *Client) RecalculerICA(ctx context.Context, id int64) error {
	return c.put(ctx, fmt.Sprintf("/historique-conges/%d/recalculer-ica", id), nil, nil, nil)
}
