package api

import (
	"context"
	"net/http"
)

// Credentials is the admin login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. The server sets the session
// cookie on the response; the transport's jar keeps it for later requests,
// so there is nothing to return beyond success or failure.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	return c.sendJSON(ctx, "admin login", http.MethodPost, "/api/admin/login", creds, nil)
}
