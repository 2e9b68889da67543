package core

import "context"

// IdentityProvider isolates all HTTP-shape knowledge of the external
// identity provider. The rest of the system only deals with these
// three contracts.
type IdentityProvider interface {
	// AuthorizationURL builds the provider's authorization endpoint URL
	// for the given anti-replay state value.
	AuthorizationURL(state string) string

	// ExchangeCode exchanges an authorization code for provider tokens.
	// Non-success responses and transport errors yield ErrExchangeFailed.
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)

	// FetchProfile retrieves the authenticated user's raw profile
	// document. Non-success responses yield ErrProfileFetchFailed
	// carrying the raw response body.
	FetchProfile(ctx context.Context, accessToken string) (map[string]any, error)
}
