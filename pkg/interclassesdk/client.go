package interclassesdk

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Cookie names carrying the signed browser scopes.
const (
	SessionCookie = "interclasse_session"
	DeviceCookie  = "interclasse_device"
)

// Client talks to the service as a single browser. It is safe for concurrent
// use, but concurrent calls share the same scopes.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client with its own cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// ForgetTab drops the session cookie and keeps the device cookie, like a
// browser closing its last tab.
func (c *Client) ForgetTab() error {
	return c.dropCookie(SessionCookie)
}

// ForgetDevice drops both cookies.
func (c *Client) ForgetDevice() error {
	if err := c.dropCookie(SessionCookie); err != nil {
		return err
	}
	return c.dropCookie(DeviceCookie)
}

func (c *Client) dropCookie(name string) error {
	if c.HTTPClient.Jar == nil {
		return nil
	}
	u, err := url.Parse(c.BaseURL + "/")
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	c.HTTPClient.Jar.SetCookies(u, []*http.Cookie{{Name: name, Path: "/", MaxAge: -1}})
	return nil
}
