package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const resourceEmployees = "employes"

type Employee struct {
	ID               int64  `json:"id"`
	Matricule        string `json:"matricule"`
	Nom              string `json:"nom"`
	Prenom           string `json:"prenom"`
	Email            string `json:"email"`
	Fonction         string `json:"fonction"`
	DateRecrutement  string `json:"dateRecrutement"`
	ServiceID        int64  `json:"serviceId"`
	ServiceNom       string `json:"serviceNom"`
	SousDirectionID  int64  `json:"sousDirectionId"`
	SousDirectionNom string `json:"sousDirectionNom"`
}

type EmployeeInput struct {
	Matricule       string `json:"matricule"`
	Nom             string `json:"nom"`
	Prenom          string `json:"prenom"`
	Email           string `json:"email"`
	Fonction        string `json:"fonction"`
	DateRecrutement string `json:"dateRecrutement"`
	ServiceID       int64  `json:"serviceId"`
}

func (c *Client) ListEmployees(ctx context.Context, page, size int) (Page[Employee], error) {
	key := fmt.Sprintf("list:%d:%d", page, size)
	return cached(ctx, c, resourceEmployees, key, func(ctx context.Context) (Page[Employee], error) {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(size))
		var result Page[Employee]
		err := c.get(ctx, "/employes", query, &result)
		return result, err
	})
}

// SearchEmployees bypasses the cache: keyword queries are too varied to be
// worth keeping.
func (c *Client) SearchEmployees(ctx context.Context, keyword string) ([]Employee, error) {
	query := url.Values{}
	query.Set("keyword", keyword)
	var result []Employee
	err := c.get(ctx, "/employes/search", query, &result)
	return result, err
}

func (c *Client) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	key := fmt.Sprintf("id:%d", id)
	return cached(ctx, c, resourceEmployees, key, func(ctx context.Context) (Employee, error) {
		var result Employee
		err := c.get(ctx, fmt.Sprintf("/employes/%d", id), nil, &result)
		return result, err
	})
}

func (c *Client) CreateEmployee(ctx context.Context, input EmployeeInput) (Employee, error) {
	var result Employee
	if err := c.post(ctx, "/employes", nil, input, &result); err != nil {
		return Employee{}, err
	}
	c.Invalidate(resourceEmployees)
	return result, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, input EmployeeInput) (Employee, error) {
	var result Employee
	if err := c.put(ctx, fmt.Sprintf("/employes/%d", id), nil, input, &result); err != nil {
		return Employee{}, err
	}
	c.Invalidate(resourceEmployees)
	return result, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/employes/%d", id)); err != nil {
		return err
	}
	c.Invalidate(resourceEmployees)
	return nil
}
