package backend

import (
	"context"
	"fmt"
	"net/url"
)

const resourceUsers = "users"

const (
	RoleAdmin        = "ADMIN"
	RoleRH           = "RH"
	RoleConsultation = "CONSULTATION"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	NomAgent string `json:"nomAgent"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Actif    bool   `json:"actif"`
}

type UserInput struct {
	Username string `json:"username"`
	NomAgent string `json:"nomAgent"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Actif    bool   `json:"actif"`
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return cached(ctx, c, resourceUsers, "list", func(ctx context.Context) ([]User, error) {
		var result []User
		err := c.get(ctx, "/users", nil, &result)
		return result, err
	})
}

func (c *Client) CreateUser(ctx context.Context, input UserInput) (User, error) {
	var result User
	if err := c.post(ctx, "/users", nil, input, &result); err != nil {
		return User{}, err
	}
	c.Invalidate(resourceUsers)
	return result, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) (User, error) {
	var result User
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), nil, input, &result); err != nil {
		return User{}, err
	}
	c.Invalidate(resourceUsers)
	return result, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/users/%d", id)); err != nil {
		return err
	}
	c.Invalidate(resourceUsers)
	return nil
}

func (c *Client) UpdateUserRole(ctx context.Context, id int64, role string) (User, error) {
	query := url.Values{}
	query.Set("role", role)
	var result User
	if err := c.put(ctx, fmt.Sprintf("/users/%d/role", id), query, nil, &result); err != nil {
		return User{}, err
	}
	c.Invalidate(resourceUsers)
	return result, nil
}
