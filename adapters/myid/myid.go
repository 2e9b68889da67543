package myid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/sardor-dev/myid-auth/core"
)

const (
	authorizationPath = "/api/v1/oauth2/authorization"
	accessTokenPath   = "/api/v1/oauth2/access-token"
	profilePath       = "/api/v1/users/me"

	// MyID expects a single comma-separated scope value, not the
	// space-separated list standard OAuth2 uses.
	defaultScope = "address,contacts,doc_data,common_data"

	defaultTimeout = 15 * time.Second

	// maxErrorBody caps how much of a provider error response is
	// carried in the returned error.
	maxErrorBody = 4 << 10
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	// Optional config
	Scope   string
	Timeout time.Duration
}

// Client talks to the MyID identity provider. It implements
// core.IdentityProvider and is the only place that knows the provider's
// paths, parameter names and response shapes.
type Client struct {
	oauth      *oauth2.Config
	profileURL string
	http       *http.Client
}

var _ core.IdentityProvider = (*Client)(nil)

func New(config Config) *Client {
	base := strings.TrimRight(config.BaseURL, "/")

	scope := config.Scope
	if scope == "" {
		scope = defaultScope
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Scopes:       []string{scope},
			Endpoint: oauth2.Endpoint{
				AuthURL:  base + authorizationPath,
				TokenURL: base + accessTokenPath,
				// client_id/client_secret go in the POST body.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		profileURL: base + profilePath,
		http:       &http.Client{Timeout: timeout},
	}
}

// AuthorizationURL builds the provider's authorization endpoint URL for
// the given anti-replay state value.
func (c *Client) AuthorizationURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("method", "strong"))
}

// ExchangeCode exchanges an authorization code for provider tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*core.TokenResponse, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("%w: provider returned %s", core.ErrExchangeFailed, retrieveErr.Response.Status)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrExchangeFailed, err)
	}

	scope, _ := token.Extra("scope").(string)

	return &core.TokenResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Scope:        scope,
	}, nil
}

// FetchProfile retrieves the authenticated user's raw profile document.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrProfileFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrProfileFetchFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: provider returned %s: %s", core.ErrProfileFetchFailed, res.Status, body)
	}

	var doc map[string]any
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrProfileFetchFailed, err)
	}

	return doc, nil
}
