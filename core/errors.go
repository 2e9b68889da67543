package core

import "errors"

// Provider-facing errors
var (
	ErrExchangeFailed     = errors.New("authorization code exchange failed")  // token endpoint returned non-success
	ErrProfileFetchFailed = errors.New("provider profile fetch failed")       // profile endpoint returned non-success
	ErrMalformedProfile   = errors.New("malformed provider profile")          // expected field missing or wrong type
	ErrStateMismatch      = errors.New("unknown or expired oauth state")      // callback state not issued by us
)

// Storage errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrNoCredential       = errors.New("no provider credential on file")
	ErrTokenNotFound      = errors.New("access token not found")
	ErrTokenExists        = errors.New("access token already exists") // unique violation, caller should re-read
)
