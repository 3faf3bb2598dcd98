package client

import "context"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and registration
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Login authenticates with email and password. On success the token is
// stored on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp AuthResponse
	if err := c.doRequest(ctx, "POST", "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}

// Register creates a new account and stores the returned token
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doRequest(ctx, "POST", "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}

// GetCurrentUser retrieves the currently authenticated account
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.doRequest(ctx, "GET", "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
