package backend

import (
	"context"
	"fmt"
)

const (
	resourceSousDirections = "sous-directions"
	resourceServices       = "services"
)

type SousDirection struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Nom  string `json:"nom"`
}

type Service struct {
	ID               int64  `json:"id"`
	Nom              string `json:"nom"`
	SousDirectionID  int64  `json:"sousDirectionId"`
	SousDirectionNom string `json:"sousDirectionNom"`
}

type SousDirectionInput struct {
	Code string `json:"code"`
	Nom  string `json:"nom"`
}

type ServiceInput struct {
	Nom             string `json:"nom"`
	SousDirectionID int64  `json:"sousDirectionId"`
}

func (c *Client) ListSousDirections(ctx context.Context) ([]SousDirection, error) {
	return cached(ctx, c, resourceSousDirections, "list", func(ctx context.Context) ([]SousDirection, error) {
		var result []SousDirection
		err := c.get(ctx, "/sous-directions", nil, &result)
		return result, err
	})
}

func (c *Client) CreateSousDirection(ctx context.Context, input SousDirectionInput) (SousDirection, error) {
	var result SousDirection
	if err := c.post(ctx, "/sous-directions", nil, input, &result); err != nil {
		return SousDirection{}, err
	}
	c.Invalidate(resourceSousDirections)
	return result, nil
}

func (c *Client) UpdateSousDirection(ctx context.Context, id int64, input SousDirectionInput) (SousDirection, error) {
	var result SousDirection
	if err := c.put(ctx, fmt.Sprintf("/sous-directions/%d", id), nil, input, &result); err != nil {
		return SousDirection{}, err
	}
	c.Invalidate(resourceSousDirections)
	return result, nil
}

func (c *Client) DeleteSousDirection(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/sous-directions/%d", id)); err != nil {
		return err
	}
	c.Invalidate(resourceSousDirections)
	// Services embed their sous-direction name; drop them too.
	c.Invalidate(resourceServices)
	return nil
}

func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	return cached(ctx, c, resourceServices, "list", func(ctx context.Context) ([]Service, error) {
		var result []Service
		err := c.get(ctx, "/services", nil, &result)
		return result, err
	})
}

func (c *Client) CreateService(ctx context.Context, input ServiceInput) (Service, error) {
	var result Service
	if err := c.post(ctx, "/services", nil, input, &result); err != nil {
		return Service{}, err
	}
	c.Invalidate(resourceServices)
	return result, nil
}

func (c *Client) UpdateService(ctx context.Context, id int64, input ServiceInput) (Service, error) {
	var result Service
	if err := c.put(ctx, fmt.Sprintf("/services/%d", id), nil, input, &result); err != nil {
		return Service{}, err
	}
	c.Invalidate(resourceServices)
	return result, nil
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/services/%d", id)); err != nil {
		return err
	}
	c.Invalidate(resourceServices)
	return nil
}
