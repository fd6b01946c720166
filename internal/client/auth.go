// Package client talks to the storefront's REST API: authentication, the
// address directory and the review endpoint.
package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/utafrali/EcommerceGo/seeder/pkg/httpclient"
)

const authService = "auth"

// ErrNoToken is returned when a login succeeds but the body carries no token.
var ErrNoToken = errors.New("login response has no access_token")

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthClient obtains bearer tokens for admins and customers.
type AuthClient struct {
	baseURL string
	http    httpclient.Doer
}

// NewAuthClient creates an auth client rooted at baseURL.
func NewAuthClient(baseURL string, doer httpclient.Doer) *AuthClient {
	return &AuthClient{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

// AdminLogin signs in to the admin API.
func (c *AuthClient) AdminLogin(ctx context.Context, email, password string) (string, error) {
	return c.login(ctx, "/api/v1/admin/auth/login", email, password)
}

// CustomerLogin signs in as a storefront customer.
func (c *AuthClient) CustomerLogin(ctx context.Context, email, password string) (string, error) {
	return c.login(ctx, "/api/v1/auth/login", email, password)
}

func (c *AuthClient) login(ctx context.Context, path, email, password string) (string, error) {
	var out tokenResponse
	err := httpclient.DoJSON(ctx, c.http, httpclient.JSONRequest{
		Method:  http.MethodPost,
		URL:     c.baseURL + path,
		Body:    credentials{Email: email, Password: password},
		Service: authService,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", ErrNoToken
	}
	return out.AccessToken, nil
}
