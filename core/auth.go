package core

import "context"

// AuthHandler provides the enrollment and lookup operations for HTTP
// adapters.
type AuthHandler interface {
	// Begin starts an enrollment: it issues a state value and returns
	// the provider authorization URL to redirect the caller to.
	Begin() (string, error)

	// Complete finishes an enrollment from the provider callback:
	// validates state, exchanges the code, fetches and projects the
	// profile, and persists the user and credential.
	Complete(ctx context.Context, code, state string) (*EnrollmentResult, error)

	// GetUserInfo returns the local identity, local token and current
	// provider profile for a PINFL, creating the user on first sight.
	GetUserInfo(ctx context.Context, pinfl string) (*UserInfo, error)
}
