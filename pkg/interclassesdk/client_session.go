package interclassesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Login authenticates this browser. When the browser is already logged in the
// returned error is an *APIError with ErrorCodeAlreadyLoggedIn.
func (c *Client) Login(ctx context.Context, email, password string) (*SessionResponse, error) {
	resp, err := c.postForm(ctx, "/v1/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if err != nil {
		return nil, err
	}
	var s SessionResponse
	if err := decodeJSON(resp, &s, http.StatusOK); err != nil {
		return nil, err
	}
	return &s, nil
}

// Logout ends the session. With keepDevice the remembered copy survives and
// the next request from a new tab restores it.
func (c *Client) Logout(ctx context.Context, keepDevice bool) error {
	path := "/v1/logout"
	if keepDevice {
		path += "?keep=true"
	}
	resp, err := c.doRequest(ctx, http.MethodPost, path, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// GetSession returns the current session, restoring a remembered one if any.
func (c *Client) GetSession(ctx context.Context) (*SessionResponse, error) {
	var s SessionResponse
	if err := c.getJSON(ctx, "/v1/session", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// HasPermission asks whether the current session covers role.
func (c *Client) HasPermission(ctx context.Context, role string) (bool, error) {
	var p PermissionResponse
	if err := c.getJSON(ctx, "/v1/session/permissions/"+url.PathEscape(role), &p); err != nil {
		return false, err
	}
	return p.Allowed, nil
}
