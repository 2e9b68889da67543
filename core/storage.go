package core

import "context"

type UserStorage interface {
	// UpsertUserByPINFL returns the user for pinfl, creating it if it
	// does not exist yet. Implementations must make this atomic
	// (insert-on-conflict-return-existing) so concurrent calls for the
	// same unseen pinfl converge on a single row.
	UpsertUserByPINFL(ctx context.Context, pinfl string) (*User, error)

	GetUserByID(ctx context.Context, id int64) (*User, error)
}

type CredentialStorage interface {
	// CreateCredential inserts a new credential row. Rows are never
	// deduplicated or superseded; rotation is by insertion.
	CreateCredential(ctx context.Context, c *Credential) error

	// GetLatestCredential returns the credential with the highest id
	// for the user, or ErrCredentialNotFound.
	GetLatestCredential(ctx context.Context, userID int64) (*Credential, error)
}

type TokenStorage interface {
	// CreateAccessToken persists a freshly generated token. A unique
	// violation on user_id maps to ErrTokenExists so the caller can
	// fall back to reading the winning row.
	CreateAccessToken(ctx context.Context, t *AccessToken) error

	// GetAccessTokenByUser returns the user's token, or ErrTokenNotFound.
	GetAccessTokenByUser(ctx context.Context, userID int64) (*AccessToken, error)

	// GetAccessTokenByValue resolves a presented token back to its
	// record, or ErrTokenNotFound.
	GetAccessTokenByValue(ctx context.Context, token string) (*AccessToken, error)
}

type AuthStorage interface {
	UserStorage
	CredentialStorage
	TokenStorage
}
