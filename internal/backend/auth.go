package backend

import "context"

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a bearer token. It is the only call made
// without a token in the request context.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var result LoginResult
	err := c.post(ctx, "/auth/login", nil, Credentials{Username: username, Password: password}, &result)
	return result, err
}
