package backend

import "context"

const resourceAudit = "audit"

type AuditEntry struct {
	ID          int64  `json:"id"`
	Utilisateur string `json:"utilisateur"`
	Action      string `json:"action"`
	Ressource   string `json:"ressource"`
	RessourceID string `json:"ressourceId"`
	Details     string `json:"details"`
	Horodatage  string `json:"horodatage"`
}

type AuditFilter struct {
	Utilisateur string `json:"utilisateur,omitempty"`
	Action      string `json:"action,omitempty"`
	Ressource   string `json:"ressource,omitempty"`
	DateDebut   string `json:"dateDebut,omitempty"`
	DateFin     string `json:"dateFin,omitempty"`
}

func (c *Client) RecentAudit(ctx context.Context) ([]AuditEntry, error) {
	return cached(ctx, c, resourceAudit, "recent", func(ctx context.Context) ([]AuditEntry, error) {
		var result []AuditEntry
		err := c.get(ctx, "/audit/recent", nil, &result)
		return result, err
	})
}

// SearchAudit is a POST by backend design (the filter body outgrew query
// strings) but is still a read; it is not cached because filters vary.
func (c *Client) SearchAudit(ctx context.Context, filter AuditFilter) ([]AuditEntry, error) {
	var result []AuditEntry
	err := c.post(ctx, "/audit/search", nil, filter, &result)
	return result, err
}
